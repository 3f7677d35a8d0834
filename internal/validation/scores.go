package validation

import (
	"math"
	"strings"

	"github.com/propflow/propflow/internal/model"
)

// Completeness weights per field. They sum to 1.0.
const (
	weightTitle        = 0.2
	weightDescription  = 0.2
	weightClientName   = 0.1
	weightClientEmail  = 0.1
	weightCompany      = 0.05
	weightBudget       = 0.15
	weightTimeline     = 0.1
	weightDeliverables = 0.1
)

// CompletenessScore returns the weighted fraction of expected fields that are
// populated. The email weight is only awarded for a valid address.
func CompletenessScore(p model.ParsedProject) float64 {
	var score float64

	if strings.TrimSpace(p.Title) != "" {
		score += weightTitle
	}
	if strings.TrimSpace(p.Description) != "" {
		score += weightDescription
	}
	if strings.TrimSpace(p.ClientName) != "" {
		score += weightClientName
	}
	if p.ClientEmail != "" && IsValidEmail(p.ClientEmail).Valid {
		score += weightClientEmail
	}
	if strings.TrimSpace(p.ClientCompany) != "" {
		score += weightCompany
	}
	if p.EstimatedBudget != nil && *p.EstimatedBudget > 0 {
		score += weightBudget
	}
	if p.TimelineDays != nil && *p.TimelineDays > 0 {
		score += weightTimeline
	}
	if countNonEmpty(p.Deliverables) > 0 {
		score += weightDeliverables
	}

	return score
}

// Quality point budget, 100 points total.
const (
	qualityTitleMax        = 20
	qualityDescriptionMax  = 25
	qualityClientMax       = 20
	qualityDetailsMax      = 20
	qualityDeliverablesMax = 15
)

// QualityScore returns a 0-1 score for how well-formed the populated fields
// are, independent of completeness. Tiers reward text of a useful size rather
// than bare presence.
func QualityScore(p model.ParsedProject) float64 {
	var points float64

	titleLen := len(strings.TrimSpace(p.Title))
	switch {
	case titleLen >= 10 && titleLen <= 100:
		points += qualityTitleMax
	case titleLen >= 5:
		points += 12
	default:
		points += 5
	}

	descLen := len(strings.TrimSpace(p.Description))
	switch {
	case descLen >= 50 && descLen <= 1000:
		points += qualityDescriptionMax
	case descLen >= 20:
		points += 18
	case descLen >= 10:
		points += 10
	default:
		points += 4
	}

	if p.ClientName != "" && IsValidClientName(p.ClientName).Valid {
		points += 7
	}
	if p.ClientEmail != "" && IsValidEmail(p.ClientEmail).Valid {
		points += 8
	}
	if strings.TrimSpace(p.ClientCompany) != "" {
		points += 5
	}

	if p.EstimatedBudget != nil && *p.EstimatedBudget > 0 {
		points += 10
	}
	if p.TimelineDays != nil && *p.TimelineDays > 0 {
		points += 10
	}

	switch n := countNonEmpty(p.Deliverables); {
	case n >= 3:
		points += qualityDeliverablesMax
	case n >= 1:
		points += 8
	}

	total := float64(qualityTitleMax + qualityDescriptionMax + qualityClientMax +
		qualityDetailsMax + qualityDeliverablesMax)

	return math.Round(points/total*100) / 100
}

func countNonEmpty(items []string) int {
	n := 0
	for _, item := range items {
		if strings.TrimSpace(item) != "" {
			n++
		}
	}
	return n
}
