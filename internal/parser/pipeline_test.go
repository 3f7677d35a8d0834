package parser

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/propflow/propflow/internal/language"
	"github.com/propflow/propflow/internal/model"
)

func TestParser_Parse_UnsupportedSource(t *testing.T) {
	p := New()

	resp := p.Parse(context.Background(), model.Source("carrier_pigeon"), model.Payload{Content: "x"}, Options{})

	assert.False(t, resp.Success)
	assert.Empty(t, resp.Projects)
	require.NotEmpty(t, resp.Errors)
	assert.Contains(t, resp.Errors[0], "unsupported source")
}

func TestParser_Parse_MalformedPayloadIsBatchFatal(t *testing.T) {
	p := New()

	resp := p.Parse(context.Background(), model.SourceGenericWebhook,
		model.Payload{APIResponse: json.RawMessage(`{"unrelated": true}`)}, Options{})

	assert.False(t, resp.Success)
	assert.Empty(t, resp.Projects)
	assert.NotEmpty(t, resp.Errors)
	assert.False(t, resp.Metadata.ParsedAt.IsZero())
}

func TestParser_Parse_Tabular(t *testing.T) {
	p := New()
	content := `Project Name,Client,Email,Budget,Timeline,Description
Website Redesign,jane smith,JANE@coffeeshop.com,$8000,6 weeks,Modern responsive site for a local coffee shop`

	resp := p.Parse(context.Background(), model.SourceTabular, model.Payload{Content: content}, Options{})

	require.True(t, resp.Success)
	require.Len(t, resp.Projects, 1)
	assert.Equal(t, 1, resp.Metadata.ItemCount)
	assert.Equal(t, model.SourceTabular, resp.Metadata.Source)
	assert.Equal(t, "en", resp.Metadata.Language)
	assert.Greater(t, resp.Metadata.Confidence, 0.5)

	record := resp.Projects[0]
	// Normalization runs inside the pipeline.
	assert.Equal(t, "Jane Smith", record.ClientName)
	assert.Equal(t, "jane@coffeeshop.com", record.ClientEmail)

	result, ok := record.CustomFields["validation"].(model.ValidationResult)
	require.True(t, ok)
	assert.True(t, result.IsValid)
}

func TestParser_Parse_InvalidRecordsAreStillReturned(t *testing.T) {
	p := New()
	content := "Title,Email,Description\nAlpha,broken-email,some longer description text"

	resp := p.Parse(context.Background(), model.SourceTabular, model.Payload{Content: content}, Options{})

	require.True(t, resp.Success)
	require.Len(t, resp.Projects, 1)

	result, ok := resp.Projects[0].CustomFields["validation"].(model.ValidationResult)
	require.True(t, ok)
	assert.False(t, result.IsValid)
	assert.Contains(t, result.Errors, "Invalid email format")
}

func TestParser_Parse_DropsRecordsWithoutSignal(t *testing.T) {
	p := New()
	payload := model.Payload{APIResponse: json.RawMessage(`{"results": [
		{"Name": "Real Project", "Description": "a description with enough text"},
		{"Budget": "5000"}
	]}`)}

	resp := p.Parse(context.Background(), model.SourceDatabaseExport, payload, Options{})

	require.True(t, resp.Success)
	require.Len(t, resp.Projects, 1)
	assert.Equal(t, "Real Project", resp.Projects[0].Title)
}

func TestParser_Parse_MaxItems(t *testing.T) {
	p := New()
	content := "Title,Description\nAlpha,first row of text\nBeta,second row of text\nGamma,third row of text"

	resp := p.Parse(context.Background(), model.SourceTabular, model.Payload{Content: content}, Options{MaxItems: 2})

	require.True(t, resp.Success)
	require.Len(t, resp.Projects, 2)
	assert.Equal(t, "Alpha", resp.Projects[0].Title)
	assert.Equal(t, "Beta", resp.Projects[1].Title)
}

func TestParser_Parse_Idempotent(t *testing.T) {
	p := New()
	content := "Title,Budget,Description\nAlpha,8000,descriptive enough text here"
	payload := model.Payload{Content: content}

	first := p.Parse(context.Background(), model.SourceTabular, payload, Options{})
	second := p.Parse(context.Background(), model.SourceTabular, payload, Options{})

	assert.Equal(t, first.Projects, second.Projects)
	assert.Equal(t, first.Metadata.Confidence, second.Metadata.Confidence)
}

func TestParser_Parse_MeanConfidence(t *testing.T) {
	p := New()
	content := "Title,Description\nAlpha,long enough description text\nBeta,another long description text"

	resp := p.Parse(context.Background(), model.SourceTabular, model.Payload{Content: content}, Options{})

	require.True(t, resp.Success)
	require.Len(t, resp.Projects, 2)

	var sum float64
	for _, record := range resp.Projects {
		result, ok := record.CustomFields["validation"].(model.ValidationResult)
		require.True(t, ok)
		sum += result.Confidence
	}
	assert.InDelta(t, sum/2, resp.Metadata.Confidence, 1e-9)
}

func TestParser_Parse_EmptyDeliverablesArePruned(t *testing.T) {
	p := New()
	content := "Title,Description,Deliverables\nAlpha,long enough description text,Homepage;  ;Checkout"

	resp := p.Parse(context.Background(), model.SourceTabular, model.Payload{Content: content}, Options{})

	require.True(t, resp.Success)
	require.Len(t, resp.Projects, 1)
	assert.Equal(t, []string{"Homepage", "Checkout"}, resp.Projects[0].Deliverables)
}

func TestParser_Parse_LanguageOverride(t *testing.T) {
	mapper := language.NewMapper()
	p := NewWithMapper(mapper)

	content := "Назва проекту,Бюджет,Опис\nСайт,50000,детальний опис проекту тут"

	resp := p.Parse(context.Background(), model.SourceTabular, model.Payload{Content: content},
		Options{Language: language.Ukrainian})

	require.True(t, resp.Success)
	assert.Equal(t, "uk", resp.Metadata.Language)
	require.Len(t, resp.Projects, 1)
	assert.Equal(t, "Сайт", resp.Projects[0].Title)
}
