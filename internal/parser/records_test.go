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

func TestRecordStoreExtractor(t *testing.T) {
	body := `{"records": [
		{"id": "rec1", "fields": {"Name": "Inventory System", "Client": "Bob Lee", "Budget": 20000, "Deliverables": ["API", "Dashboard"]}},
		{"id": "rec2", "fields": {}},
		{"id": "rec3", "fields": {"Title": "Landing Page"}}
	]}`

	e := &recordStoreExtractor{}
	projects, err := e.Extract(context.Background(), model.Payload{APIResponse: json.RawMessage(body)}, model.ParsingContext{})
	require.NoError(t, err)
	require.Len(t, projects, 2)

	first := projects[0]
	assert.Equal(t, "Inventory System", first.Title)
	assert.Equal(t, "Bob Lee", first.ClientName)
	require.NotNil(t, first.EstimatedBudget)
	assert.InDelta(t, 20000, *first.EstimatedBudget, 1e-9)
	assert.Equal(t, []string{"API", "Dashboard"}, first.Deliverables)

	assert.Equal(t, "Landing Page", projects[1].Title)
}

func TestRecordStoreExtractor_EmptyRecordsIsNotAnError(t *testing.T) {
	e := &recordStoreExtractor{}

	projects, err := e.Extract(context.Background(), model.Payload{APIResponse: json.RawMessage(`{"records": []}`)}, model.ParsingContext{})
	require.NoError(t, err)
	assert.Empty(t, projects)
}

func TestRecordStoreExtractor_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "bare array is not an export", body: `[1,2]`},
		{name: "object without records key", body: `{"unrelated": true}`},
		{name: "records is not an array", body: `{"records": "nope"}`},
	}

	e := &recordStoreExtractor{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Extract(context.Background(), model.Payload{APIResponse: json.RawMessage(tt.body)}, model.ParsingContext{})
			require.Error(t, err)
			assert.ErrorIs(t, err, common.ErrMalformedPayload)
		})
	}

	_, err := e.Extract(context.Background(), model.Payload{}, model.ParsingContext{})
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrEmptyPayload)
}
