package translation

import "github.com/agenthands/hybridrag/internal/core/model"

// defaultExamples covers the query shapes most questions reduce to: direct
// neighbors, a typed relationship in both directions, shortest path and a
// bounded-hop neighborhood.
var defaultExamples = [...]model.Example{
	{
		Question: "Who is connected to John?",
		Query:    "MATCH (p {name: 'John'})--(connected) RETURN connected",
	},
	{
		Question: "Which company does John work for?",
		Query:    "MATCH (p:Person {name: 'John'})-[:WORKS_FOR]->(c:Company) RETURN c.name",
	},
	{
		Question: "Who works for Acme?",
		Query:    "MATCH (p:Person)-[:WORKS_FOR]->(c:Company {name: 'Acme'}) RETURN p.name",
	},
	{
		Question: "How is John related to Jane?",
		Query:    "MATCH path = shortestPath((a {name: 'John'})-[*]-(b {name: 'Jane'})) RETURN path",
	},
	{
		Question: "What is within two hops of John?",
		Query:    "MATCH (p {name: 'John'})-[*1..2]-(related) RETURN DISTINCT related",
	},
}

// DefaultExamples returns a copy of the built-in few-shot examples.
func DefaultExamples() []model.Example {
	out := make([]model.Example, len(defaultExamples))
	copy(out, defaultExamples[:])
	return out
}
