package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/propflow/propflow/internal/common"
	"github.com/propflow/propflow/internal/model"
)

// databaseExtractor handles structured database exports (Notion-style API
// responses). Property values may be plain scalars or rich property objects;
// extraction is best-effort field by field, tolerant of missing keys.
type databaseExtractor struct{}

func (e *databaseExtractor) Name() string { return "database_export" }

func (e *databaseExtractor) Extract(_ context.Context, payload model.Payload, _ model.ParsingContext) ([]model.ParsedProject, error) {
	if len(payload.APIResponse) == 0 {
		return nil, fmt.Errorf("%w: database_export source requires a JSON payload", common.ErrEmptyPayload)
	}

	results, err := decodeDatabaseExport(payload.APIResponse)
	if err != nil {
		return nil, err
	}

	var projects []model.ParsedProject
	for i, raw := range results {
		var item map[string]any
		if err := json.Unmarshal(raw, &item); err != nil {
			slog.Warn("Skipping malformed database export item", "index", i, "error", err)
			continue
		}

		props, ok := item["properties"].(map[string]any)
		if !ok {
			props = item
		}

		projects = append(projects, projectFromProperties(props))
	}

	return projects, nil
}

// decodeDatabaseExport accepts {"results": [...]} envelopes and bare arrays.
// An object without a results key matches no known export shape and is
// rejected rather than silently yielding zero records.
func decodeDatabaseExport(data json.RawMessage) ([]json.RawMessage, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(data, &envelope); err == nil {
		raw, ok := envelope["results"]
		if !ok {
			return nil, fmt.Errorf("%w: database export has no results array", common.ErrMalformedPayload)
		}
		var results []json.RawMessage
		if err := json.Unmarshal(raw, &results); err != nil {
			return nil, fmt.Errorf("%w: invalid results array: %v", common.ErrMalformedPayload, err)
		}
		return results, nil
	}

	var bare []json.RawMessage
	if err := json.Unmarshal(data, &bare); err != nil {
		return nil, fmt.Errorf("%w: invalid database export JSON: %v", common.ErrMalformedPayload, err)
	}
	return bare, nil
}

// projectFromProperties extracts a record from a property map using known
// alternate key names.
func projectFromProperties(props map[string]any) model.ParsedProject {
	var project model.ParsedProject

	project.Title = firstProperty(props, "Name", "Title", "Project Name", "Project")
	project.ClientName = firstProperty(props, "Client", "Client Name", "Customer", "Contact")
	project.ClientEmail = firstProperty(props, "Email", "Client Email", "Contact Email")
	project.ClientCompany = firstProperty(props, "Company", "Organization", "Client Company")
	project.Description = firstProperty(props, "Description", "Details", "Summary", "Notes")
	project.Industry = firstProperty(props, "Industry", "Sector")
	project.Priority = normalizePriority(firstProperty(props, "Priority"))
	project.Status = normalizeStatus(firstProperty(props, "Status"))

	if raw := firstProperty(props, "Budget", "Estimated Budget", "Cost", "Price"); raw != "" {
		if amount, ok := parseBudgetValue(raw); ok {
			project.EstimatedBudget = &amount
		}
	}
	if raw := firstProperty(props, "Timeline", "Duration", "Deadline"); raw != "" {
		if days, ok := parseTimelineValue(raw); ok {
			project.TimelineDays = &days
		}
	}
	if v, ok := props["Tags"]; ok {
		project.Tags = stringList(decodeProperty(v))
	}
	if v, ok := props["Deliverables"]; ok {
		project.Deliverables = stringList(decodeProperty(v))
	}

	return project
}

// firstProperty returns the first non-empty decoded value among the keys.
func firstProperty(props map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := props[key]; ok {
			if s := anyToString(decodeProperty(v)); s != "" {
				return s
			}
		}
	}
	return ""
}

// decodeProperty unwraps rich property objects down to scalar or list values:
// {"title": [{"plain_text": ...}]}, {"rich_text": [...]}, {"email": ...},
// {"number": ...}, {"select": {"name": ...}}, {"multi_select": [...]}.
// Plain scalars pass through unchanged.
func decodeProperty(v any) any {
	obj, ok := v.(map[string]any)
	if !ok {
		return v
	}

	for _, key := range []string{"title", "rich_text"} {
		if fragments, ok := obj[key].([]any); ok {
			var text string
			for _, frag := range fragments {
				if m, ok := frag.(map[string]any); ok {
					text += anyToString(m["plain_text"])
				}
			}
			return text
		}
	}

	if email, ok := obj["email"]; ok {
		return email
	}
	if number, ok := obj["number"]; ok {
		return number
	}
	if sel, ok := obj["select"].(map[string]any); ok {
		return sel["name"]
	}
	if multi, ok := obj["multi_select"]; ok {
		return multi
	}

	return v
}
