package parser

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/propflow/propflow/internal/common"
	"github.com/propflow/propflow/internal/model"
)

// Substantial-line bounds for fallback title extraction.
const (
	minTitleLineLen = 10
	maxTitleLineLen = 100
)

var (
	titlePrefixRegex  = regexp.MustCompile(`(?i)^\s*(?:project|title|name)\s*:\s*(.+)$`)
	clientPrefixRegex = regexp.MustCompile(`(?i)^\s*client\s*:\s*(.+)$`)
	timelineLineRegex = regexp.MustCompile(`(?i)^\s*(?:timeline|deadline|duration)\s*:\s*(.+)$`)
	bulletLineRegex   = regexp.MustCompile(`^\s*(?:[-*•]|\d+[.)])\s*(.+)$`)
	deliverableWords  = []string{"deliverable", "scope", "feature", "requirement"}
	parentheticalRe   = regexp.MustCompile(`\s*\(.*\)\s*`)
)

// freeTextExtractor mines a single candidate record out of unstructured text
// using line prefixes and the entity scanner.
type freeTextExtractor struct{}

func (e *freeTextExtractor) Name() string { return "free_text" }

func (e *freeTextExtractor) Extract(_ context.Context, payload model.Payload, _ model.ParsingContext) ([]model.ParsedProject, error) {
	text := payload.Content
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("%w: free_text source requires text content", common.ErrEmptyPayload)
	}

	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	project := model.ParsedProject{
		Title:        extractTitle(lines),
		Description:  strings.TrimSpace(text),
		Deliverables: extractDeliverables(lines),
	}

	for _, line := range lines {
		if m := clientPrefixRegex.FindStringSubmatch(line); m != nil && project.ClientName == "" {
			// "Client: John Smith (john@example.com)" keeps only the name.
			project.ClientName = strings.TrimSpace(stripParenthetical(m[1]))
		}
		if m := timelineLineRegex.FindStringSubmatch(line); m != nil && project.TimelineDays == nil {
			if days, ok := parseTimelineValue(m[1]); ok {
				project.TimelineDays = &days
			}
		}
	}

	for _, entity := range ExtractEntities(text) {
		switch entity.Kind {
		case EntityEmail:
			if project.ClientEmail == "" {
				project.ClientEmail = entity.Text
			}
		case EntityCurrency:
			if project.EstimatedBudget == nil {
				if amount, ok := parseBudgetValue(entity.Text); ok {
					project.EstimatedBudget = &amount
				}
			}
		case EntityCompany:
			if project.ClientCompany == "" {
				project.ClientCompany = entity.Text
			}
		}
	}

	return []model.ParsedProject{project}, nil
}

func stripParenthetical(s string) string {
	return parentheticalRe.ReplaceAllString(s, " ")
}

// extractTitle prefers an explicit "Project:"/"Title:"/"Name:" line, falling
// back to the first substantial line (10-100 chars, not a bullet).
func extractTitle(lines []string) string {
	for _, line := range lines {
		if m := titlePrefixRegex.FindStringSubmatch(line); m != nil {
			return strings.TrimSpace(m[1])
		}
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if len(trimmed) < minTitleLineLen || len(trimmed) > maxTitleLineLen {
			continue
		}
		if bulletLineRegex.MatchString(trimmed) {
			continue
		}
		return trimmed
	}

	return ""
}

// extractDeliverables collects bullet or numbered lines following a keyword
// trigger line. The section ends at the first blank line after the trigger;
// multi-paragraph deliverable lists are intentionally truncated there.
func extractDeliverables(lines []string) []string {
	triggered := false
	var deliverables []string

	for _, line := range lines {
		if !triggered {
			lower := strings.ToLower(line)
			for _, word := range deliverableWords {
				if strings.Contains(lower, word) {
					triggered = true
					break
				}
			}
			continue
		}

		if strings.TrimSpace(line) == "" {
			break
		}
		if m := bulletLineRegex.FindStringSubmatch(line); m != nil {
			deliverables = append(deliverables, strings.TrimSpace(m[1]))
		}
	}

	return deliverables
}
