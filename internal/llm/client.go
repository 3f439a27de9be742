package llm

import (
	"context"
)

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

type Message struct {
	Role    Role
	Content string
}

// UserMessage builds the single-turn conversation used by prompt-style callers.
func UserMessage(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

type LLMClient interface {
	Chat(ctx context.Context, messages []Message) (string, error)
}

type EmbedderClient interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}
