package parser

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propflow/propflow/internal/common"
	"github.com/propflow/propflow/internal/model"
)

func extractWebhook(t *testing.T, body string) ([]model.ParsedProject, error) {
	t.Helper()
	e := &webhookExtractor{}
	return e.Extract(context.Background(), model.Payload{APIResponse: json.RawMessage(body)}, model.ParsingContext{
		Source: model.SourceGenericWebhook,
	})
}

func TestWebhookExtractor_DataArray(t *testing.T) {
	body := `{"data": [
		{"title": "CRM Rollout", "person_name": "Ada Byron", "org_name": "Analytical Engines", "value": 15000, "status": "open"},
		{"dealname": "Support Retainer", "contact_email": "ops@client.io", "amount": "2,500 USD"}
	]}`

	projects, err := extractWebhook(t, body)
	require.NoError(t, err)
	require.Len(t, projects, 2)

	first := projects[0]
	assert.Equal(t, "CRM Rollout", first.Title)
	assert.Equal(t, "Ada Byron", first.ClientName)
	assert.Equal(t, "Analytical Engines", first.ClientCompany)
	assert.Equal(t, model.StatusActive, first.Status)
	require.NotNil(t, first.EstimatedBudget)
	assert.InDelta(t, 15000, *first.EstimatedBudget, 1e-9)

	second := projects[1]
	assert.Equal(t, "Support Retainer", second.Title)
	assert.Equal(t, "ops@client.io", second.ClientEmail)
	require.NotNil(t, second.EstimatedBudget)
	assert.InDelta(t, 2500, *second.EstimatedBudget, 1e-9)
}

func TestWebhookExtractor_PropertiesObject(t *testing.T) {
	body := `{"properties": {"name": "Website Audit", "email": "info@studio.example", "budget": 3000, "priority": "high"}}`

	projects, err := extractWebhook(t, body)
	require.NoError(t, err)
	require.Len(t, projects, 1)

	p := projects[0]
	assert.Equal(t, "Website Audit", p.Title)
	assert.Equal(t, "info@studio.example", p.ClientEmail)
	assert.Equal(t, model.PriorityHigh, p.Priority)
	require.NotNil(t, p.EstimatedBudget)
	assert.InDelta(t, 3000, *p.EstimatedBudget, 1e-9)
}

func TestWebhookExtractor_EmptyDealsSkipped(t *testing.T) {
	body := `{"data": [{}, {"title": "Only Real Deal"}]}`

	projects, err := extractWebhook(t, body)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "Only Real Deal", projects[0].Title)
}

func TestWebhookExtractor_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr error
	}{
		{name: "neither shape", body: `{"event": "deal.updated"}`, wantErr: common.ErrMalformedPayload},
		{name: "invalid json", body: `{not json`, wantErr: common.ErrMalformedPayload},
		{name: "empty arrays", body: `{"data": [], "properties": {}}`, wantErr: common.ErrMalformedPayload},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := extractWebhook(t, tt.body)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestWebhookExtractor_EmptyPayload(t *testing.T) {
	e := &webhookExtractor{}
	_, err := e.Extract(context.Background(), model.Payload{}, model.ParsingContext{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrEmptyPayload)
}
