package vectorstore

import (
	"context"
	"fmt"

	"github.com/agenthands/hybridrag/internal/core/model"
	"github.com/agenthands/hybridrag/internal/driver"
)

const memgraphSourceName = "memgraph_vector_index"

// MemgraphStore runs similarity search against a Memgraph vector index,
// reading document text from ContentProperty on the matched nodes.
type MemgraphStore struct {
	Driver          driver.GraphDriver
	Index           string
	ContentProperty string
	TopK            int
}

func NewMemgraphStore(d driver.GraphDriver, index, contentProperty string, topK int) *MemgraphStore {
	if contentProperty == "" {
		contentProperty = "content"
	}
	return &MemgraphStore{
		Driver:          d,
		Index:           index,
		ContentProperty: contentProperty,
		TopK:            topK,
	}
}

func (s *MemgraphStore) SimilaritySearch(ctx context.Context, vector []float32) ([]model.Document, error) {
	params := map[string]interface{}{
		"index":            s.Index,
		"limit":            s.TopK,
		"embedding":        vector,
		"content_property": s.ContentProperty,
	}

	result, err := s.Driver.ExecuteQuery(ctx, driver.VectorSearchQuery, params)
	if err != nil {
		return nil, fmt.Errorf("vector search on index '%s' failed: %w", s.Index, err)
	}

	docs := make([]model.Document, 0, len(result.Records))
	for _, rec := range result.Records {
		content, _ := rec.Get("content")
		text, _ := content.(string)

		metadata := map[string]interface{}{}
		if props, ok := rec.Get("properties"); ok {
			if m, ok := props.(map[string]interface{}); ok {
				for k, v := range m {
					// skip stored embeddings
					if k == s.ContentProperty || isVector(v) {
						continue
					}
					metadata[k] = v
				}
			}
		}
		if sim, ok := rec.Get("similarity"); ok {
			metadata["similarity"] = sim
		}

		docs = append(docs, model.Document{
			Content:    text,
			SourceType: model.SourceVector,
			SourceName: memgraphSourceName,
			Metadata:   metadata,
		})
	}
	return docs, nil
}

func isVector(v interface{}) bool {
	items, ok := v.([]interface{})
	if !ok || len(items) == 0 {
		return false
	}
	_, ok = items[0].(float64)
	return ok
}
