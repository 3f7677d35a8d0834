// Package proposal turns validated project records into LLM-drafted proposal
// documents. Rendering to PDF/DOCX is a downstream collaborator and out of
// scope here; this package stops at the structured document.
package proposal

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/propflow/propflow/internal/common"
	"github.com/propflow/propflow/internal/llm"
	"github.com/propflow/propflow/internal/model"
)

// Section is one heading/body pair of a proposal document.
type Section struct {
	Heading string `json:"heading"`
	Body    string `json:"body"`
}

// Proposal is the structured document produced from a parsed project.
type Proposal struct {
	Title           string    `json:"title"`
	Summary         string    `json:"summary"`
	Sections        []Section `json:"sections"`
	EstimatedBudget float64   `json:"estimatedBudget,omitempty"`
	TimelineDays    int       `json:"timelineDays,omitempty"`
}

// Generator drafts proposals through an LLM client.
type Generator struct {
	client llm.Client
	retry  common.RetryOptions
}

// NewGenerator creates a Generator using the given LLM client.
func NewGenerator(client llm.Client) *Generator {
	return &Generator{
		client: client,
		retry:  common.RetryOptions{MaxAttempts: 3},
	}
}

// Generate drafts a proposal for one parsed project.
func (g *Generator) Generate(ctx context.Context, project model.ParsedProject) (Proposal, error) {
	if strings.TrimSpace(project.Title) == "" {
		return Proposal{}, fmt.Errorf("project has no title")
	}

	var content string
	err := common.WithRetry(ctx, func() error {
		var completeErr error
		content, completeErr = g.client.Complete(ctx, systemPrompt, buildUserPrompt(project))
		return completeErr
	}, g.retry)
	if err != nil {
		return Proposal{}, fmt.Errorf("proposal generation failed: %w", err)
	}

	return parseProposal(content)
}

// parseProposal decodes the LLM reply, tolerating markdown-fenced JSON.
func parseProposal(content string) (Proposal, error) {
	cleaned := llm.CleanMarkdownWrapper(content)

	var p Proposal
	if err := json.Unmarshal([]byte(cleaned), &p); err != nil {
		return Proposal{}, fmt.Errorf("failed to parse proposal JSON: %w", err)
	}

	if p.Title == "" {
		return Proposal{}, fmt.Errorf("proposal reply has no title")
	}

	return p, nil
}
