package proposal

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propflow/propflow/internal/llm"
	"github.com/propflow/propflow/internal/model"
)

func sampleProject() model.ParsedProject {
	budget := 8000.0
	days := 42
	return model.ParsedProject{
		Title:           "Website Redesign",
		ClientName:      "Jane Smith",
		ClientCompany:   "Brew & Bean LLC",
		Description:     "Modern responsive site for a local coffee shop.",
		Deliverables:    []string{"Homepage", "Order flow"},
		EstimatedBudget: &budget,
		TimelineDays:    &days,
	}
}

func TestGenerator_Generate(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{`{
		"title": "Website Redesign Proposal",
		"summary": "A modern site for Brew & Bean.",
		"sections": [{"heading": "Approach", "body": "Iterative delivery."}],
		"estimatedBudget": 8000,
		"timelineDays": 42
	}`}}

	doc, err := NewGenerator(mock).Generate(context.Background(), sampleProject())
	require.NoError(t, err)

	assert.Equal(t, "Website Redesign Proposal", doc.Title)
	assert.Equal(t, "A modern site for Brew & Bean.", doc.Summary)
	require.Len(t, doc.Sections, 1)
	assert.Equal(t, "Approach", doc.Sections[0].Heading)
	assert.InDelta(t, 8000, doc.EstimatedBudget, 1e-9)
	assert.Equal(t, 42, doc.TimelineDays)

	// The prompt carries the project facts.
	require.Len(t, mock.Calls, 1)
	assert.Contains(t, mock.Calls[0].UserPrompt, "Website Redesign")
	assert.Contains(t, mock.Calls[0].UserPrompt, "Jane Smith")
	assert.Contains(t, mock.Calls[0].UserPrompt, "- Homepage")
	assert.Contains(t, mock.Calls[0].SystemPrompt, "JSON")
}

func TestGenerator_Generate_FencedReply(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{"```json\n{\"title\": \"Fenced Proposal\", \"summary\": \"ok\"}\n```"}}

	doc, err := NewGenerator(mock).Generate(context.Background(), sampleProject())
	require.NoError(t, err)
	assert.Equal(t, "Fenced Proposal", doc.Title)
}

func TestGenerator_Generate_UntitledProject(t *testing.T) {
	mock := &llm.MockClient{}
	p := sampleProject()
	p.Title = "   "

	_, err := NewGenerator(mock).Generate(context.Background(), p)
	require.Error(t, err)
	assert.Empty(t, mock.Calls)
}

func TestGenerator_Generate_MalformedReply(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{"sorry, I cannot do that"}}

	_, err := NewGenerator(mock).Generate(context.Background(), sampleProject())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse proposal JSON")
}

func TestGenerator_Generate_ReplyWithoutTitle(t *testing.T) {
	mock := &llm.MockClient{Responses: []string{`{"summary": "no title here"}`}}

	_, err := NewGenerator(mock).Generate(context.Background(), sampleProject())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no title")
}
