package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// Source identifies which extractor handles a payload.
type Source string

// Supported source tags.
const (
	SourceDatabaseExport Source = "database_export"
	SourceTabular        Source = "tabular"
	SourceRecordStore    Source = "record_store"
	SourceCardBoard      Source = "card_board"
	SourceFreeText       Source = "free_text"
	SourceGenericWebhook Source = "generic_webhook"
)

// ParseSource converts a string tag to a Source, rejecting unknown tags.
func ParseSource(s string) (Source, error) {
	switch Source(s) {
	case SourceDatabaseExport, SourceTabular, SourceRecordStore,
		SourceCardBoard, SourceFreeText, SourceGenericWebhook:
		return Source(s), nil
	default:
		return "", fmt.Errorf("unsupported source: %q", s)
	}
}

// Payload is the loosely-typed input handed to an extractor. Content carries
// raw text for text-based sources; APIResponse carries the JSON body for
// structured sources.
type Payload struct {
	URL         string          `json:"url,omitempty"`
	Content     string          `json:"content,omitempty"`
	APIResponse json.RawMessage `json:"apiResponse,omitempty"`
}

// ParsingContext carries per-invocation state into an extractor.
type ParsingContext struct {
	Source        Source
	Language      string
	FieldMappings map[string][]string
}

// ParseMetadata describes a completed parse batch.
type ParseMetadata struct {
	Source     Source    `json:"source"`
	ParsedAt   time.Time `json:"parsedAt"`
	ItemCount  int       `json:"itemCount"`
	Language   string    `json:"language"`
	Confidence float64   `json:"confidence"`
}

// ParseResponse is the pipeline output envelope. Catastrophic failures
// degrade to Success=false with an Errors slice and an empty project list;
// they are never surfaced as a panic or a raw error to the caller.
type ParseResponse struct {
	Success  bool            `json:"success"`
	Projects []ParsedProject `json:"projects"`
	Metadata ParseMetadata   `json:"metadata"`
	Errors   []string        `json:"errors,omitempty"`
	Warnings []string        `json:"warnings,omitempty"`
}
