package driver

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
)

// CypherStore exposes a GraphDriver as a GraphStore: a schema description
// for prompting and raw statement execution.
type CypherStore struct {
	Driver GraphDriver
}

func NewCypherStore(d GraphDriver) *CypherStore {
	return &CypherStore{Driver: d}
}

// Schema renders the labels, their properties and the relationship patterns
// present in the graph.
func (s *CypherStore) Schema(ctx context.Context) (string, error) {
	nodes, err := s.Driver.ExecuteQuery(ctx, NodeSchemaQuery, nil)
	if err != nil {
		return "", fmt.Errorf("failed to read node schema: %w", err)
	}
	rels, err := s.Driver.ExecuteQuery(ctx, RelationshipSchemaQuery, nil)
	if err != nil {
		return "", fmt.Errorf("failed to read relationship schema: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("Node properties:\n")
	for _, rec := range nodes.Records {
		label, _ := rec.Get("label")
		props, _ := rec.Get("properties")
		fmt.Fprintf(&sb, "%v {%s}\n", label, strings.Join(toStrings(props), ", "))
	}

	sb.WriteString("Relationships:\n")
	for _, rec := range rels.Records {
		source, _ := rec.Get("source_label")
		rel, _ := rec.Get("relationship")
		target, _ := rec.Get("target_label")
		fmt.Fprintf(&sb, "(:%v)-[:%v]->(:%v)\n", source, rel, target)
	}

	return strings.TrimRight(sb.String(), "\n"), nil
}

func (s *CypherStore) Query(ctx context.Context, statement string) (Result, error) {
	result, err := s.Driver.ExecuteQuery(ctx, statement, nil)
	if err != nil {
		return Result{}, err
	}

	columns := result.Keys
	if len(columns) == 0 && len(result.Records) > 0 {
		columns = result.Records[0].Keys
	}
	return Result{Columns: columns, Rows: ToRecords(result.Records)}, nil
}

// ToRecords converts driver records into plain maps, flattening graph
// entities so they can be serialized.
func ToRecords(records []*neo4j.Record) []Record {
	out := make([]Record, 0, len(records))
	for _, rec := range records {
		row := make(Record, len(rec.Keys))
		for i, key := range rec.Keys {
			if i < len(rec.Values) {
				row[key] = plainValue(rec.Values[i])
			}
		}
		out = append(out, row)
	}
	return out
}

func plainValue(v interface{}) interface{} {
	switch val := v.(type) {
	case dbtype.Node:
		return nodeValue(val)
	case dbtype.Relationship:
		return relationshipValue(val)
	case dbtype.Path:
		nodes := make([]interface{}, 0, len(val.Nodes))
		for _, n := range val.Nodes {
			nodes = append(nodes, nodeValue(n))
		}
		rels := make([]interface{}, 0, len(val.Relationships))
		for _, r := range val.Relationships {
			rels = append(rels, relationshipValue(r))
		}
		return map[string]interface{}{"nodes": nodes, "relationships": rels}
	case dbtype.Date, dbtype.LocalTime, dbtype.LocalDateTime, dbtype.Time, dbtype.Duration:
		return fmt.Sprint(val)
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = plainValue(item)
		}
		return out
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = plainValue(item)
		}
		return out
	default:
		return v
	}
}

func nodeValue(n dbtype.Node) map[string]interface{} {
	return map[string]interface{}{
		"labels":     n.Labels,
		"properties": plainValue(n.Props),
	}
}

func relationshipValue(r dbtype.Relationship) map[string]interface{} {
	return map[string]interface{}{
		"type":       r.Type,
		"properties": plainValue(r.Props),
	}
}

func toStrings(v interface{}) []string {
	items, ok := v.([]interface{})
	if !ok {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, item := range items {
		out = append(out, fmt.Sprint(item))
	}
	sort.Strings(out)
	return out
}
