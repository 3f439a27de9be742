package translation

import (
	"context"

	"github.com/agenthands/hybridrag/internal/llm"
)

type MockLLMClient struct {
	Response string
	Err      error
	Calls    [][]llm.Message
}

func (m *MockLLMClient) Chat(ctx context.Context, messages []llm.Message) (string, error) {
	m.Calls = append(m.Calls, messages)
	if m.Err != nil {
		return "", m.Err
	}
	return m.Response, nil
}
