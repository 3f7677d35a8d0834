package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/propflow/propflow/internal/common"
	"github.com/propflow/propflow/internal/model"
)

// recordStoreExtractor handles record-store exports (Airtable-style): a
// "records" array whose items carry a flat "fields" map.
type recordStoreExtractor struct{}

func (e *recordStoreExtractor) Name() string { return "record_store" }

type storeRecord struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

func (e *recordStoreExtractor) Extract(_ context.Context, payload model.Payload, _ model.ParsingContext) ([]model.ParsedProject, error) {
	if len(payload.APIResponse) == 0 {
		return nil, fmt.Errorf("%w: record_store source requires a JSON payload", common.ErrEmptyPayload)
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(payload.APIResponse, &envelope); err != nil {
		return nil, fmt.Errorf("%w: invalid record store JSON: %v", common.ErrMalformedPayload, err)
	}

	// An object without a records key matches no known export shape.
	raw, ok := envelope["records"]
	if !ok {
		return nil, fmt.Errorf("%w: record store export has no records array", common.ErrMalformedPayload)
	}

	var records []storeRecord
	if err := json.Unmarshal(raw, &records); err != nil {
		return nil, fmt.Errorf("%w: invalid records array: %v", common.ErrMalformedPayload, err)
	}

	var projects []model.ParsedProject
	for _, record := range records {
		if len(record.Fields) == 0 {
			slog.Warn("Skipping record without fields", "record_id", record.ID)
			continue
		}
		projects = append(projects, projectFromProperties(record.Fields))
	}

	return projects, nil
}
