package parser

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/propflow/propflow/internal/common"
	"github.com/propflow/propflow/internal/model"
)

// cardBoardExtractor handles card-board exports (Trello-style): each card
// becomes one candidate record, with checklist items as deliverables and
// labels as tags.
type cardBoardExtractor struct{}

func (e *cardBoardExtractor) Name() string { return "card_board" }

type cardBoardExport struct {
	Cards []struct {
		Name       string `json:"name"`
		Desc       string `json:"desc"`
		Labels     []any  `json:"labels"`
		Checklists []struct {
			CheckItems []struct {
				Name string `json:"name"`
			} `json:"checkItems"`
		} `json:"checklists"`
	} `json:"cards"`
}

func (e *cardBoardExtractor) Extract(_ context.Context, payload model.Payload, _ model.ParsingContext) ([]model.ParsedProject, error) {
	if len(payload.APIResponse) == 0 {
		return nil, fmt.Errorf("%w: card_board source requires a JSON payload", common.ErrEmptyPayload)
	}

	var export cardBoardExport
	if err := json.Unmarshal(payload.APIResponse, &export); err != nil {
		return nil, fmt.Errorf("%w: invalid card board JSON: %v", common.ErrMalformedPayload, err)
	}

	var projects []model.ParsedProject
	for _, card := range export.Cards {
		project := model.ParsedProject{
			Title:       card.Name,
			Description: card.Desc,
			Tags:        stringList(card.Labels),
		}

		for _, checklist := range card.Checklists {
			for _, item := range checklist.CheckItems {
				if trimmed := strings.TrimSpace(item.Name); trimmed != "" {
					project.Deliverables = append(project.Deliverables, trimmed)
				}
			}
		}

		// Card descriptions often carry the budget inline.
		if amount, ok := parseBudgetValue(card.Desc); ok {
			project.EstimatedBudget = &amount
		}

		projects = append(projects, project)
	}

	return projects, nil
}
