package model

// SourceType tags which retrieval path produced a Document.
type SourceType string

const (
	SourceVector SourceType = "vector"
	SourceGraph  SourceType = "graph"
)

// KnowledgeGraphSource is the SourceName of every graph-origin document.
const KnowledgeGraphSource = "knowledge_graph"

type Document struct {
	Content    string                 `json:"content"`
	SourceType SourceType             `json:"source_type"`
	SourceName string                 `json:"source_name"`
	Metadata   map[string]interface{} `json:"metadata,omitempty"`
}
