package vectorstore

import (
	"context"
	"fmt"

	chromago "github.com/amikos-tech/chroma-go/pkg/api/v2"
	"github.com/amikos-tech/chroma-go/pkg/embeddings"
	jsoniter "github.com/json-iterator/go"
	"github.com/sirupsen/logrus"

	"github.com/agenthands/hybridrag/internal/core/model"
)

// ChromaStore searches a single Chroma collection with precomputed query
// embeddings.
type ChromaStore struct {
	client     chromago.Client
	collection chromago.Collection
	name       string
	topK       int
}

func NewChromaStore(ctx context.Context, baseURL, collectionName string, topK int) (*ChromaStore, error) {
	var opts []chromago.ClientOption
	if baseURL != "" {
		opts = append(opts, chromago.WithBaseURL(baseURL))
	}
	client, err := chromago.NewHTTPClient(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create chroma client: %w", err)
	}

	collection, err := client.GetOrCreateCollection(ctx, collectionName)
	if err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to open collection '%s': %w", collectionName, err)
	}

	logrus.WithFields(logrus.Fields{"url": baseURL, "collection": collectionName}).Info("Connected to Chroma")
	store := NewChromaStoreWithCollection(collection, collectionName, topK)
	store.client = client
	return store, nil
}

// NewChromaStoreWithCollection wraps an already opened collection.
func NewChromaStoreWithCollection(collection chromago.Collection, name string, topK int) *ChromaStore {
	return &ChromaStore{collection: collection, name: name, topK: topK}
}

func (s *ChromaStore) SimilaritySearch(ctx context.Context, vector []float32) ([]model.Document, error) {
	results, err := s.collection.Query(
		ctx,
		chromago.WithQueryEmbeddings(embeddings.NewEmbeddingFromFloat32(vector)),
		chromago.WithNResults(s.topK),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query chromadb: %w", err)
	}

	documentGroups := results.GetDocumentsGroups()
	if len(documentGroups) == 0 {
		return nil, nil
	}
	metadataGroups := results.GetMetadatasGroups()
	idGroups := results.GetIDGroups()

	docs := make([]model.Document, 0, len(documentGroups[0]))
	for i, doc := range documentGroups[0] {
		metadata := map[string]interface{}{}
		if len(metadataGroups) > 0 && i < len(metadataGroups[0]) && metadataGroups[0][i] != nil {
			metadata = metadataToMap(metadataGroups[0][i])
		}
		if len(idGroups) > 0 && i < len(idGroups[0]) {
			metadata["id"] = string(idGroups[0][i])
		}

		docs = append(docs, model.Document{
			Content:    doc.ContentString(),
			SourceType: model.SourceVector,
			SourceName: s.name,
			Metadata:   metadata,
		})
	}
	return docs, nil
}

func (s *ChromaStore) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// metadataToMap round-trips Chroma metadata through JSON; the v2 metadata
// type has no public accessor for all values.
func metadataToMap(metadata chromago.DocumentMetadata) map[string]interface{} {
	out := map[string]interface{}{}
	raw, err := jsoniter.Marshal(metadata)
	if err != nil {
		logrus.WithError(err).Warn("could not marshal chroma metadata")
		return out
	}
	if err := jsoniter.Unmarshal(raw, &out); err != nil {
		logrus.WithError(err).Warn("could not unmarshal chroma metadata")
		return map[string]interface{}{}
	}
	return out
}
