package translation

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agenthands/hybridrag/internal/core/model"
	"github.com/agenthands/hybridrag/internal/llm"
)

const testSchema = "Node properties:\nPerson {age, name}\nRelationships:\n(:Person)-[:KNOWS]->(:Person)"

func TestConvert_DefaultExamples(t *testing.T) {
	mockLLM := &MockLLMClient{Response: "```cypher\nMATCH (p:Person {name: 'John'}) RETURN p\n```"}
	translator := NewTranslator(mockLLM, testSchema)

	query, err := translator.Convert(context.Background(), "Tell me about John", nil)

	require.NoError(t, err)
	assert.Equal(t, "MATCH (p:Person {name: 'John'}) RETURN p", query)

	// exactly one single-turn user message
	require.Len(t, mockLLM.Calls, 1)
	require.Len(t, mockLLM.Calls[0], 1)
	assert.Equal(t, llm.RoleUser, mockLLM.Calls[0][0].Role)

	prompt := mockLLM.Calls[0][0].Content
	for _, ex := range DefaultExamples() {
		assert.Contains(t, prompt, "Question: "+ex.Question+"\nQuery: "+ex.Query)
	}
	assert.Len(t, DefaultExamples(), 5)
}

func TestConvert_CustomExamplesReplaceDefaults(t *testing.T) {
	mockLLM := &MockLLMClient{Response: "MATCH (n) RETURN n"}
	translator := NewTranslator(mockLLM, testSchema)

	_, err := translator.Convert(context.Background(), "Anything?", []model.Example{{Question: "Q", Query: "R"}})
	require.NoError(t, err)

	prompt := mockLLM.Calls[0][0].Content
	assert.Contains(t, prompt, "Question: Q\nQuery: R")
	for _, ex := range DefaultExamples() {
		assert.NotContains(t, prompt, ex.Question)
		assert.NotContains(t, prompt, ex.Query)
	}
}

func TestBuildPrompt_Order(t *testing.T) {
	translator := NewTranslator(&MockLLMClient{}, testSchema)
	prompt := translator.BuildPrompt("Who knows Jane?", []model.Example{{Question: "Q1", Query: "R1"}})

	framing := strings.Index(prompt, "Cypher queries for a graph database")
	schema := strings.Index(prompt, testSchema)
	guidelines := strings.Index(prompt, "Use MATCH clauses")
	example := strings.Index(prompt, "Question: Q1")
	question := strings.Index(prompt, "Question: Who knows Jane?")

	require.True(t, framing >= 0 && schema >= 0 && guidelines >= 0 && example >= 0 && question >= 0, prompt)
	assert.Less(t, framing, schema)
	assert.Less(t, schema, guidelines)
	assert.Less(t, guidelines, example)
	assert.Less(t, example, question)
	assert.True(t, strings.HasSuffix(prompt, "Question: Who knows Jane?\nQuery:"))

	for _, rule := range []string{
		"Use WHERE clauses to filter when needed.",
		"Return exactly one Cypher statement.",
		"Do not wrap the statement in markdown code fences.",
		"Do not prefix the statement with the language name.",
	} {
		assert.Contains(t, prompt, rule)
	}
}

func TestBuildPrompt_Dialect(t *testing.T) {
	translator := NewTranslator(&MockLLMClient{}, "schema", WithDialect("openCypher"))
	prompt := translator.BuildPrompt("q", DefaultExamples())
	assert.Contains(t, prompt, "openCypher queries")
	assert.Contains(t, prompt, "Return exactly one openCypher statement.")

	assert.Equal(t, DefaultDialect, NewTranslator(&MockLLMClient{}, "", WithDialect("")).Dialect)
}

func TestConvert_ProviderError(t *testing.T) {
	translator := NewTranslator(&MockLLMClient{Err: errors.New("context length exceeded")}, testSchema)

	_, err := translator.Convert(context.Background(), "q", nil)
	assert.ErrorContains(t, err, "failed to generate query")
	assert.ErrorContains(t, err, "context length exceeded")
}

func TestConvert_EmptyAfterSanitize(t *testing.T) {
	translator := NewTranslator(&MockLLMClient{Response: "```\n```"}, testSchema)

	query, err := translator.Convert(context.Background(), "q", nil)
	assert.NoError(t, err)
	assert.Equal(t, "", query)
}

func TestSanitize(t *testing.T) {
	cases := map[string]string{
		"```cypher\nMATCH (n) RETURN n\n```":   "MATCH (n) RETURN n",
		"```\nMATCH (n) RETURN n\n```":         "MATCH (n) RETURN n",
		"  MATCH (n) RETURN n  ":               "MATCH (n) RETURN n",
		"```MATCH (n) RETURN n```":             "MATCH (n) RETURN n",
		"```Cypher \r\nMATCH (n)\nRETURN n```": "MATCH (n)\nRETURN n",
		"MATCH (n) RETURN n\n```":              "MATCH (n) RETURN n",
		"```cypher MATCH (n) RETURN n```":      "MATCH (n) RETURN n",
		"```cypher MATCH (n) RETURN n\n```":    "MATCH (n) RETURN n",
		"```\tCypher\tMATCH (n) RETURN n```":   "MATCH (n) RETURN n",
		"```match (n) return n```":             "match (n) return n",
		"cypher MATCH (n) RETURN n":            "cypher MATCH (n) RETURN n",
		"```":                                  "",
		"":                                     "",
	}
	for in, want := range cases {
		assert.Equal(t, want, Sanitize(in), "input %q", in)
	}
}

func TestConvert_StripsDialectTag(t *testing.T) {
	translator := NewTranslator(&MockLLMClient{Response: "```memgraphql MATCH (n) RETURN n```"}, testSchema,
		WithDialect("MemgraphQL"))

	query, err := translator.Convert(context.Background(), "q", nil)
	assert.NoError(t, err)
	assert.Equal(t, "MATCH (n) RETURN n", query)

	assert.Equal(t, "memgraphql MATCH (n) RETURN n", Sanitize("```memgraphql MATCH (n) RETURN n```"))
}

func TestDefaultExamples_ReturnsCopy(t *testing.T) {
	ex := DefaultExamples()
	ex[0].Question = "mutated"
	assert.NotEqual(t, "mutated", DefaultExamples()[0].Question)
}
