package core

import (
	"fmt"
	"reflect"
	"sort"
	"strings"

	"github.com/agenthands/hybridrag/internal/core/common"
	"github.com/agenthands/hybridrag/internal/core/model"
	"github.com/agenthands/hybridrag/internal/driver"
)

const fieldDelimiter = "\n"

// NormalizeRecords turns graph rows into graph-sourced documents. Rows that
// render to empty text are skipped; row_index keeps the original position.
func NormalizeRecords(query string, result driver.Result) ([]model.Document, error) {
	docs := make([]model.Document, 0, len(result.Rows))
	for i, row := range result.Rows {
		content, err := RecordContent(row, result.Columns)
		if err != nil {
			return nil, newError(KindSerialization, "normalize", fmt.Sprintf("failed to render row %d", i), err)
		}
		if content == "" {
			continue
		}
		docs = append(docs, model.Document{
			Content:    content,
			SourceType: model.SourceGraph,
			SourceName: model.KnowledgeGraphSource,
			Metadata: map[string]interface{}{
				"query":     query,
				"row_index": i,
			},
		})
	}
	return docs, nil
}

// RecordContent renders a row as "key: value" lines, following columns and
// then any remaining keys in sorted order. Nested values are encoded as
// compact JSON.
func RecordContent(row driver.Record, columns []string) (string, error) {
	keys := orderedKeys(row, columns)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		value, err := formatValue(row[k])
		if err != nil {
			return "", fmt.Errorf("field '%s': %w", k, err)
		}
		parts = append(parts, k+": "+value)
	}
	return strings.Join(parts, fieldDelimiter), nil
}

func orderedKeys(row driver.Record, columns []string) []string {
	keys := make([]string, 0, len(row))
	seen := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		if _, ok := row[col]; !ok {
			continue
		}
		if _, dup := seen[col]; dup {
			continue
		}
		seen[col] = struct{}{}
		keys = append(keys, col)
	}

	var rest []string
	for k := range row {
		if _, ok := seen[k]; !ok {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

func formatValue(v interface{}) (string, error) {
	if v == nil {
		return "null", nil
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Ptr {
		if rv.IsNil() {
			return "null", nil
		}
		return formatValue(rv.Elem().Interface())
	}

	switch rv.Kind() {
	case reflect.Map, reflect.Slice, reflect.Array:
		return common.CompactJSON(v)
	case reflect.Struct:
		if s, ok := v.(fmt.Stringer); ok {
			return s.String(), nil
		}
		return common.CompactJSON(v)
	default:
		return fmt.Sprint(v), nil
	}
}
