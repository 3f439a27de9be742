package vectorstore

import (
	"context"
	"errors"
	"testing"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/hybridrag/internal/core/model"
	"github.com/agenthands/hybridrag/internal/driver"
)

type MockDriver struct {
	QueryExecuted string
	QueryParams   map[string]interface{}
	MockResult    neo4j.EagerResult
	Err           error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.QueryExecuted = query
	m.QueryParams = params
	if m.Err != nil {
		return neo4j.EagerResult{}, m.Err
	}
	return m.MockResult, nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}

func TestMemgraphStore_SimilaritySearch(t *testing.T) {
	mockDriver := &MockDriver{
		MockResult: neo4j.EagerResult{
			Records: []*neo4j.Record{
				{
					Keys: []string{"content", "properties", "similarity"},
					Values: []interface{}{
						"John works at Acme.",
						map[string]interface{}{
							"content":   "John works at Acme.",
							"title":     "bio",
							"embedding": []interface{}{0.1, 0.2},
						},
						0.93,
					},
				},
			},
		},
	}

	store := NewMemgraphStore(mockDriver, "doc_index", "", 4)
	vec := []float32{0.1, 0.2}

	docs, err := store.SimilaritySearch(context.Background(), vec)
	require.NoError(t, err)
	require.Len(t, docs, 1)

	assert.Equal(t, driver.VectorSearchQuery, mockDriver.QueryExecuted)
	assert.Equal(t, "doc_index", mockDriver.QueryParams["index"])
	assert.Equal(t, 4, mockDriver.QueryParams["limit"])
	assert.Equal(t, vec, mockDriver.QueryParams["embedding"])
	assert.Equal(t, "content", mockDriver.QueryParams["content_property"])

	assert.Equal(t, model.Document{
		Content:    "John works at Acme.",
		SourceType: model.SourceVector,
		SourceName: "memgraph_vector_index",
		Metadata:   map[string]interface{}{"title": "bio", "similarity": 0.93},
	}, docs[0])
}

func TestMemgraphStore_Error(t *testing.T) {
	store := NewMemgraphStore(&MockDriver{Err: errors.New("no such index")}, "missing", "text", 3)

	_, err := store.SimilaritySearch(context.Background(), []float32{1})
	assert.ErrorContains(t, err, "vector search on index 'missing' failed")
	assert.ErrorContains(t, err, "no such index")
}
