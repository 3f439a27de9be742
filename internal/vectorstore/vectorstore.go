package vectorstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/agenthands/hybridrag/internal/config"
	"github.com/agenthands/hybridrag/internal/core/model"
	"github.com/agenthands/hybridrag/internal/driver"
)

// VectorStore returns the documents nearest to a query embedding, best first.
type VectorStore interface {
	SimilaritySearch(ctx context.Context, vector []float32) ([]model.Document, error)
}

// New builds the configured backend. The Memgraph backend reuses the graph
// driver; Chroma opens its own HTTP client.
func New(ctx context.Context, cfg config.VectorConfig, graph driver.GraphDriver) (VectorStore, error) {
	switch strings.ToLower(cfg.Backend) {
	case config.VectorBackendChroma:
		return NewChromaStore(ctx, cfg.Chroma.URL, cfg.Chroma.Collection, cfg.TopK)
	case config.VectorBackendMemgraph:
		if graph == nil {
			return nil, fmt.Errorf("memgraph vector backend requires a graph driver")
		}
		return NewMemgraphStore(graph, cfg.Memgraph.Index, cfg.Memgraph.ContentProperty, cfg.TopK), nil
	default:
		return nil, fmt.Errorf("unsupported vector backend: %s", cfg.Backend)
	}
}
