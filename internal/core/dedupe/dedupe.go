package dedupe

import (
	"github.com/agenthands/hybridrag/internal/core/common"
	"github.com/agenthands/hybridrag/internal/core/model"
)

// ByContent keeps the first document seen for each distinct content
// fingerprint, in order of first occurrence. Documents with empty content are
// dropped.
func ByContent(docs []model.Document) []model.Document {
	seen := make(map[string]struct{}, len(docs))
	result := make([]model.Document, 0, len(docs))

	for _, doc := range docs {
		if doc.Content == "" {
			continue
		}
		fp := common.Fingerprint(doc.Content)
		if _, exists := seen[fp]; exists {
			continue
		}
		seen[fp] = struct{}{}
		result = append(result, doc)
	}

	return result
}

// Fuse concatenates the vector-path documents ahead of the graph-path
// documents and deduplicates the result.
func Fuse(vector, graph []model.Document) []model.Document {
	fused := make([]model.Document, 0, len(vector)+len(graph))
	fused = append(fused, vector...)
	fused = append(fused, graph...)
	return ByContent(fused)
}
