package driver

const (
	NodeSchemaQuery = `
		MATCH (n)
		UNWIND labels(n) AS label
		UNWIND keys(n) AS property
		RETURN label, collect(DISTINCT property) AS properties
		ORDER BY label
	`

	RelationshipSchemaQuery = `
		MATCH (source)-[r]->(target)
		UNWIND labels(source) AS source_label
		UNWIND labels(target) AS target_label
		RETURN DISTINCT source_label, type(r) AS relationship, target_label
		ORDER BY source_label, relationship, target_label
	`

	// VectorSearchQuery uses Memgraph's vector_search module. The content
	// property is bound as a parameter so the same query serves any label.
	VectorSearchQuery = `
		CALL vector_search.search($index, $limit, $embedding)
		YIELD node, similarity
		RETURN node[$content_property] AS content, properties(node) AS properties, similarity
		ORDER BY similarity DESC
	`
)
