package translation

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/agenthands/hybridrag/internal/core/model"
	"github.com/agenthands/hybridrag/internal/llm"
)

const DefaultDialect = "Cypher"

var (
	leadingFence  = regexp.MustCompile("^```(?:[A-Za-z0-9_+-]*[ \t]*(?:\r?\n|$))?")
	trailingFence = regexp.MustCompile("```$")
)

// languageTags are fence labels a model may put on the same line as the
// statement, e.g. "```cypher MATCH ...".
var languageTags = []string{"cypher", "opencypher", "gql", "sql"}

// Translator turns natural-language questions into a single graph query
// statement for one schema.
type Translator struct {
	LLM     llm.LLMClient
	Schema  string
	Dialect string
}

type Option func(*Translator)

// WithDialect names the query language in the prompt. Empty keeps the default.
func WithDialect(dialect string) Option {
	return func(t *Translator) {
		if dialect != "" {
			t.Dialect = dialect
		}
	}
}

func NewTranslator(llmClient llm.LLMClient, schema string, opts ...Option) *Translator {
	t := &Translator{
		LLM:     llmClient,
		Schema:  schema,
		Dialect: DefaultDialect,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Convert asks the model for one statement answering question. Empty
// examples selects the built-in set; otherwise examples are used as given.
// The result may be empty if the model answered with fences only.
func (t *Translator) Convert(ctx context.Context, question string, examples []model.Example) (string, error) {
	if len(examples) == 0 {
		examples = defaultExamples[:]
	}

	response, err := t.LLM.Chat(ctx, llm.UserMessage(t.BuildPrompt(question, examples)))
	if err != nil {
		return "", fmt.Errorf("failed to generate query: %w", err)
	}

	return sanitize(response, t.Dialect), nil
}

// BuildPrompt renders the few-shot prompt. The trailing "Query:" cue makes
// the completion start with the statement itself.
func (t *Translator) BuildPrompt(question string, examples []model.Example) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "You are an expert at writing %s queries for a graph database. "+
		"Translate the question into a %s statement.\n\n", t.Dialect, t.Dialect)

	sb.WriteString("Schema:\n")
	sb.WriteString(t.Schema)
	sb.WriteString("\n\n")

	fmt.Fprintf(&sb, `Guidelines:
- Use MATCH clauses to retrieve data.
- Use WHERE clauses to filter when needed.
- Return exactly one %[1]s statement.
- Do not include explanations or any other text.
- Do not wrap the statement in markdown code fences.
- Do not prefix the statement with the language name.

`, t.Dialect)

	sb.WriteString("Examples:\n")
	for _, ex := range examples {
		fmt.Fprintf(&sb, "Question: %s\nQuery: %s\n\n", ex.Question, ex.Query)
	}

	fmt.Fprintf(&sb, "Question: %s\nQuery:", question)
	return sb.String()
}

// Sanitize strips one leading code fence, optionally tagged with a language,
// and one trailing fence, then trims whitespace. It does not validate the
// statement.
func Sanitize(raw string) string {
	return sanitize(raw, DefaultDialect)
}

func sanitize(raw, dialect string) string {
	s := strings.TrimSpace(raw)
	fenced := strings.HasPrefix(s, "```")
	s = leadingFence.ReplaceAllString(s, "")
	s = strings.TrimSpace(s)
	if fenced {
		s = stripLanguageTag(s, dialect)
	}
	s = trailingFence.ReplaceAllString(s, "")
	return strings.TrimSpace(s)
}

// stripLanguageTag drops a language label followed by spaces or tabs. Only
// known labels and the dialect count, since a lowercase first word may be
// part of the statement ("match (n) ...").
func stripLanguageTag(s, dialect string) string {
	i := strings.IndexAny(s, " \t")
	if i <= 0 {
		return s
	}
	if !isLanguageTag(s[:i], dialect) {
		return s
	}
	return strings.TrimSpace(s[i:])
}

func isLanguageTag(tag, dialect string) bool {
	if dialect != "" && strings.EqualFold(tag, dialect) {
		return true
	}
	for _, known := range languageTags {
		if strings.EqualFold(tag, known) {
			return true
		}
	}
	return false
}
