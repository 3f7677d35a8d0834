// Package llm provides the language-model completion collaborator used by
// downstream proposal features. The extraction core itself never calls it.
package llm

import (
	"context"
	"strings"
)

// Client defines the interface for LLM providers: a system instruction and a
// user instruction in, generated text out.
type Client interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Config holds provider settings.
type Config struct {
	Provider    string
	APIKey      string
	Model       string
	Temperature float64
	MaxTokens   int
}

// CleanMarkdownWrapper strips markdown code fences that models wrap around
// JSON replies despite instructions not to.
func CleanMarkdownWrapper(content string) string {
	content = strings.TrimSpace(content)

	for _, prefix := range []string{"```json", "```"} {
		if strings.HasPrefix(content, prefix) {
			content = strings.TrimPrefix(content, prefix)
			content = strings.TrimSuffix(strings.TrimSpace(content), "```")
			return strings.TrimSpace(content)
		}
	}

	return content
}
