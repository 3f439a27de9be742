package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

// MockDriver answers each query from Results keyed by the exact query text,
// falling back to MockResult.
type MockDriver struct {
	QueryExecuted string
	Results       map[string]neo4j.EagerResult
	MockResult    neo4j.EagerResult
	Errs          map[string]error
}

func (m *MockDriver) ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error) {
	m.QueryExecuted = query
	if err, ok := m.Errs[query]; ok {
		return neo4j.EagerResult{}, err
	}
	if res, ok := m.Results[query]; ok {
		return res, nil
	}
	return m.MockResult, nil
}

func (m *MockDriver) Close(ctx context.Context) error {
	return nil
}
