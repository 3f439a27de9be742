package driver

import (
	"context"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
)

type GraphDriver interface {
	ExecuteQuery(ctx context.Context, query string, params map[string]interface{}) (neo4j.EagerResult, error)
	Close(ctx context.Context) error
}

// Record is one result row keyed by column name. Values are plain Go values:
// scalars, maps and slices.
type Record map[string]interface{}

// Result is the rows of one statement plus the column order of its RETURN
// clause.
type Result struct {
	Columns []string
	Rows    []Record
}

// GraphStore is the structured-retrieval capability used by the retriever.
type GraphStore interface {
	Schema(ctx context.Context) (string, error)
	Query(ctx context.Context, statement string) (Result, error)
}
