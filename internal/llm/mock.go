package llm

import (
	"context"
	"sync"
)

// MockClient is a test double that records prompts and replays canned
// responses in order.
type MockClient struct {
	mu        sync.Mutex
	Responses []string
	Err       error
	Calls     []MockCall
}

// MockCall captures the prompts of a single Complete invocation.
type MockCall struct {
	SystemPrompt string
	UserPrompt   string
}

// Complete returns the next canned response, or Err if set.
func (m *MockClient) Complete(_ context.Context, systemPrompt, userPrompt string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, MockCall{SystemPrompt: systemPrompt, UserPrompt: userPrompt})

	if m.Err != nil {
		return "", m.Err
	}

	if len(m.Responses) == 0 {
		return "", nil
	}

	next := m.Responses[0]
	if len(m.Responses) > 1 {
		m.Responses = m.Responses[1:]
	}
	return next, nil
}
