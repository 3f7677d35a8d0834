package parser

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/propflow/propflow/internal/common"
	"github.com/propflow/propflow/internal/language"
	"github.com/propflow/propflow/internal/model"
)

// tabularExtractor parses CSV-like text. The first line is a header row whose
// names are resolved to canonical fields through the language mapper; rows
// without a mappable title are dropped.
type tabularExtractor struct {
	mapper *language.Mapper
}

func (e *tabularExtractor) Name() string { return "tabular" }

func (e *tabularExtractor) Extract(_ context.Context, payload model.Payload, pctx model.ParsingContext) ([]model.ParsedProject, error) {
	content := strings.TrimSpace(payload.Content)
	if content == "" {
		return nil, fmt.Errorf("%w: tabular source requires text content", common.ErrEmptyPayload)
	}

	lines := strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	if len(lines) < 2 {
		return nil, fmt.Errorf("%w: tabular content has no data rows", common.ErrMalformedPayload)
	}

	lang, ok := language.Parse(pctx.Language)
	if !ok {
		lang = language.English
	}

	columns := e.mapColumns(splitDelimitedRow(lines[0]), lang)
	if len(columns) == 0 {
		return nil, fmt.Errorf("%w: no recognizable column headers", common.ErrMalformedPayload)
	}

	var projects []model.ParsedProject
	for i, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}

		project, ok := buildRowProject(splitDelimitedRow(line), columns)
		if !ok {
			slog.Warn("Skipping tabular row without a mappable title", "row", i+2)
			continue
		}
		projects = append(projects, project)
	}

	return projects, nil
}

// mapColumns resolves header names to canonical fields. The first column
// claiming a canonical field wins; later duplicates are ignored.
func (e *tabularExtractor) mapColumns(headers []string, lang language.Language) map[int]string {
	columns := make(map[int]string, len(headers))
	claimed := make(map[string]bool, len(headers))

	for i, header := range headers {
		field, ok := e.mapper.Map(header, lang)
		if !ok || claimed[field] {
			continue
		}
		columns[i] = field
		claimed[field] = true
	}

	return columns
}

func buildRowProject(fields []string, columns map[int]string) (model.ParsedProject, bool) {
	var project model.ParsedProject

	for i, value := range fields {
		canonical, ok := columns[i]
		if !ok || value == "" {
			continue
		}

		switch canonical {
		case language.FieldTitle:
			project.Title = value
		case language.FieldClientName:
			project.ClientName = value
		case language.FieldClientEmail:
			project.ClientEmail = value
		case language.FieldClientCompany:
			project.ClientCompany = value
		case language.FieldDescription:
			project.Description = value
		case language.FieldBudget:
			if amount, ok := parseBudgetValue(value); ok {
				project.EstimatedBudget = &amount
			}
		case language.FieldTimeline:
			if days, ok := parseTimelineValue(value); ok {
				project.TimelineDays = &days
			}
		case language.FieldIndustry:
			project.Industry = value
		case language.FieldPriority:
			project.Priority = normalizePriority(value)
		case language.FieldStatus:
			project.Status = normalizeStatus(value)
		case language.FieldTags:
			project.Tags = splitList(value)
		case language.FieldDeliverables:
			project.Deliverables = splitList(value)
		}
	}

	if strings.TrimSpace(project.Title) == "" {
		return model.ParsedProject{}, false
	}

	return project, true
}

func normalizePriority(value string) model.Priority {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "high", "urgent", "critical":
		return model.PriorityHigh
	case "medium", "normal":
		return model.PriorityMedium
	case "low":
		return model.PriorityLow
	default:
		return ""
	}
}

func normalizeStatus(value string) model.Status {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "draft", "new":
		return model.StatusDraft
	case "active", "open", "in progress", "in_progress":
		return model.StatusActive
	case "on hold", "on_hold", "paused":
		return model.StatusOnHold
	case "completed", "done", "closed":
		return model.StatusCompleted
	case "archived":
		return model.StatusArchived
	default:
		return ""
	}
}
