package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/hybridrag/internal/core/model"
)

type MockRetriever struct {
	Docs    []model.Document
	Err     error
	Queries []string
}

func (m *MockRetriever) Retrieve(ctx context.Context, query string) ([]model.Document, error) {
	m.Queries = append(m.Queries, query)
	return m.Docs, m.Err
}

func newTestRouter(r Retriever) *gin.Engine {
	gin.SetMode(gin.TestMode)
	return NewServer(r).SetupRouter()
}

func TestHealth(t *testing.T) {
	router := newTestRouter(&MockRetriever{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get(RequestIDHeader))
}

func TestRetrieve_ReturnsDocuments(t *testing.T) {
	mock := &MockRetriever{Docs: []model.Document{
		{Content: "Vector result", SourceType: model.SourceVector, SourceName: "documents"},
		{Content: "name: John", SourceType: model.SourceGraph, SourceName: model.KnowledgeGraphSource},
	}}
	router := newTestRouter(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/retrieve", strings.NewReader(`{"query":"Who is John?"}`))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(RequestIDHeader, "req-1")
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "req-1", w.Header().Get(RequestIDHeader))
	assert.Equal(t, []string{"Who is John?"}, mock.Queries)

	var resp RetrieveResponse
	require.NoError(t, jsoniter.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Documents, 2)
	assert.Equal(t, "Vector result", resp.Documents[0].Content)
	assert.Equal(t, model.SourceGraph, resp.Documents[1].SourceType)
}

func TestRetrieve_EmptyResultIsArray(t *testing.T) {
	router := newTestRouter(&MockRetriever{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/retrieve", strings.NewReader(`{"query":""}`))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"documents":[]}`, w.Body.String())
}

func TestRetrieve_BadRequest(t *testing.T) {
	mock := &MockRetriever{}
	router := newTestRouter(mock)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/retrieve", strings.NewReader(`{"query":`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, mock.Queries)
}

func TestRetrieve_Error(t *testing.T) {
	router := newTestRouter(&MockRetriever{Err: errors.New("embedding service down")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/retrieve", strings.NewReader(`{"query":"q"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "embedding service down")
}

type failingCloser struct{ err error }

func (f failingCloser) Close() error { return f.err }

func TestComponentsClose_AggregatesErrors(t *testing.T) {
	c := &Components{closers: []io.Closer{
		failingCloser{err: errors.New("chroma")},
		failingCloser{},
		failingCloser{err: errors.New("gemini")},
	}}

	err := c.Close(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chroma")
	assert.Contains(t, err.Error(), "gemini")

	assert.NoError(t, (&Components{}).Close(context.Background()))
}
