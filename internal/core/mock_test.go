package core

import (
	"context"
	"sync"

	"github.com/agenthands/hybridrag/internal/core/model"
	"github.com/agenthands/hybridrag/internal/driver"
	"github.com/agenthands/hybridrag/internal/llm"
)

type MockEmbedder struct {
	Vector []float32
	Err    error
}

func (m *MockEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Vector, nil
}

type MockVectorStore struct {
	Docs       []model.Document
	Err        error
	SeenVector []float32
}

func (m *MockVectorStore) SimilaritySearch(ctx context.Context, vector []float32) ([]model.Document, error) {
	m.SeenVector = vector
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Docs, nil
}

type MockGraphStore struct {
	SchemaText string
	SchemaErr  error
	Columns    []string
	Rows       []driver.Record
	QueryErr   error

	mu      sync.Mutex
	Queries []string
}

func (m *MockGraphStore) Schema(ctx context.Context) (string, error) {
	if m.SchemaErr != nil {
		return "", m.SchemaErr
	}
	return m.SchemaText, nil
}

func (m *MockGraphStore) Query(ctx context.Context, statement string) (driver.Result, error) {
	m.mu.Lock()
	m.Queries = append(m.Queries, statement)
	m.mu.Unlock()
	if m.QueryErr != nil {
		return driver.Result{}, m.QueryErr
	}
	return driver.Result{Columns: m.Columns, Rows: m.Rows}, nil
}

type MockLLM struct {
	Response string
	Err      error

	mu      sync.Mutex
	Prompts []string
}

func (m *MockLLM) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	m.mu.Lock()
	for _, msg := range messages {
		m.Prompts = append(m.Prompts, msg.Content)
	}
	m.mu.Unlock()
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
