package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/propflow/propflow/internal/common"
	"github.com/propflow/propflow/internal/model"
)

// webhookExtractor handles generic CRM webhook payloads. The payload is a
// small tagged union validated at the boundary: either a "data" array of
// deal-like records or a "properties" object describing a single record.
// Payloads matching neither shape are a batch-fatal error rather than a
// silent empty record.
type webhookExtractor struct{}

func (e *webhookExtractor) Name() string { return "generic_webhook" }

type webhookEnvelope struct {
	Data       []map[string]any `json:"data"`
	Properties map[string]any   `json:"properties"`
}

func (e *webhookExtractor) Extract(_ context.Context, payload model.Payload, _ model.ParsingContext) ([]model.ParsedProject, error) {
	if len(payload.APIResponse) == 0 {
		return nil, fmt.Errorf("%w: generic_webhook source requires a JSON payload", common.ErrEmptyPayload)
	}

	var envelope webhookEnvelope
	if err := json.Unmarshal(payload.APIResponse, &envelope); err != nil {
		return nil, fmt.Errorf("%w: invalid webhook JSON: %v", common.ErrMalformedPayload, err)
	}

	switch {
	case len(envelope.Data) > 0:
		var projects []model.ParsedProject
		for i, deal := range envelope.Data {
			if len(deal) == 0 {
				slog.Warn("Skipping empty webhook deal", "index", i)
				continue
			}
			projects = append(projects, projectFromDeal(deal))
		}
		return projects, nil

	case len(envelope.Properties) > 0:
		return []model.ParsedProject{projectFromDeal(envelope.Properties)}, nil

	default:
		return nil, fmt.Errorf("%w: webhook payload has neither a data array nor a properties object", common.ErrMalformedPayload)
	}
}

// projectFromDeal maps provider-specific deal keys onto canonical fields.
func projectFromDeal(deal map[string]any) model.ParsedProject {
	var project model.ParsedProject

	project.Title = firstString(deal, "title", "name", "deal_name", "dealname")
	project.ClientName = firstString(deal, "person_name", "contact_name", "client_name")
	project.ClientEmail = firstString(deal, "email", "person_email", "contact_email")
	project.ClientCompany = firstString(deal, "org_name", "company_name", "company")
	project.Description = firstString(deal, "description", "notes", "summary")
	project.Status = normalizeStatus(firstString(deal, "status", "stage"))
	project.Priority = normalizePriority(firstString(deal, "priority"))

	if amount, ok := firstNumber(deal, "value", "amount", "budget"); ok {
		project.EstimatedBudget = &amount
	}

	return project
}
