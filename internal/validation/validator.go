// Package validation checks field-level validity of parsed projects and
// computes the confidence, completeness, and quality scores attached to every
// record. Checks never fail hard: invalid data produces flags and score
// penalties, and the record is always returned to the caller.
package validation

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/propflow/propflow/internal/model"
)

// Plausibility ceilings. Values above them are well-formed but flagged.
const (
	maxPlausibleBudget   = 10_000_000
	maxPlausibleTimeline = 1095 // days, roughly three years
)

// Length bounds for text fields (trimmed).
const (
	minTitleLen       = 3
	maxTitleLen       = 200
	minDescriptionLen = 10
	maxDescriptionLen = 5000
	minClientNameLen  = 2
	maxClientNameLen  = 100
)

// Confidence penalties per defect and the completeness bonus scale.
const (
	penaltyMissingTitle     = 0.3
	penaltyMissingDesc      = 0.2
	penaltyInvalidEmail     = 0.2
	penaltySoftWarning      = 0.1
	penaltyDeliverables     = 0.05
	completenessBonusScale  = 0.2
	completenessBonusCenter = 0.5
)

// RFC-light: local@domain.tld with no unicode or quoting edge cases.
var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Check is the outcome of a single field check.
type Check struct {
	Valid   bool
	Message string
}

func valid() Check {
	return Check{Valid: true}
}

func invalid(msg string) Check {
	return Check{Valid: false, Message: msg}
}

// IsValidEmail checks basic email format.
func IsValidEmail(email string) Check {
	if !emailRegex.MatchString(strings.TrimSpace(email)) {
		return invalid("Invalid email format")
	}
	return valid()
}

// IsValidBudget checks that a budget is positive and plausible.
func IsValidBudget(budget float64) Check {
	if budget <= 0 {
		return invalid("Budget must be a positive number")
	}
	if budget > maxPlausibleBudget {
		return invalid("Budget seems unrealistically high")
	}
	return valid()
}

// IsValidTimeline checks that a timeline in days is positive and plausible.
func IsValidTimeline(days int) Check {
	if days <= 0 {
		return invalid("Timeline must be a positive number of days")
	}
	if days > maxPlausibleTimeline {
		return invalid("Timeline seems unrealistically long")
	}
	return valid()
}

// IsValidTitle checks the trimmed title length.
func IsValidTitle(title string) Check {
	trimmed := strings.TrimSpace(title)
	if len(trimmed) < minTitleLen {
		return invalid("Title must be at least 3 characters")
	}
	if len(trimmed) > maxTitleLen {
		return invalid("Title must be at most 200 characters")
	}
	return valid()
}

// IsValidDescription checks the trimmed description length.
func IsValidDescription(description string) Check {
	trimmed := strings.TrimSpace(description)
	if len(trimmed) < minDescriptionLen {
		return invalid("Description must be at least 10 characters")
	}
	if len(trimmed) > maxDescriptionLen {
		return invalid("Description must be at most 5000 characters")
	}
	return valid()
}

// IsValidClientName checks the trimmed client name length and rejects values
// that are purely numeric.
func IsValidClientName(name string) Check {
	trimmed := strings.TrimSpace(name)
	if len(trimmed) < minClientNameLen {
		return invalid("Client name must be at least 2 characters")
	}
	if len(trimmed) > maxClientNameLen {
		return invalid("Client name must be at most 100 characters")
	}
	if isOnlyNumbers(trimmed) {
		return invalid("Client name cannot be only numbers")
	}
	return valid()
}

func isOnlyNumbers(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) && !unicode.IsSpace(r) {
			return false
		}
	}
	return true
}

// ValidateProject validates a record and computes its confidence score.
// Confidence starts at 1.0, is decremented by fixed penalties per defect,
// nudged by a completeness bonus, and clamped to [0,1]. Warnings never block
// validity; IsValid is true iff there are no errors.
func ValidateProject(p model.ParsedProject) model.ValidationResult {
	var errs, warnings []string
	confidence := 1.0

	title := strings.TrimSpace(p.Title)
	if title == "" {
		errs = append(errs, "Project title is required")
		confidence -= penaltyMissingTitle
	} else if c := IsValidTitle(title); !c.Valid {
		errs = append(errs, c.Message)
		confidence -= penaltyMissingTitle
	}

	description := strings.TrimSpace(p.Description)
	if description == "" {
		errs = append(errs, "Project description is required")
		confidence -= penaltyMissingDesc
	} else if c := IsValidDescription(description); !c.Valid {
		warnings = append(warnings, c.Message)
		confidence -= penaltySoftWarning
	}

	if p.ClientName != "" {
		if c := IsValidClientName(p.ClientName); !c.Valid {
			warnings = append(warnings, c.Message)
			confidence -= penaltySoftWarning
		}
	}

	if p.ClientEmail != "" {
		if c := IsValidEmail(p.ClientEmail); !c.Valid {
			errs = append(errs, c.Message)
			confidence -= penaltyInvalidEmail
		}
	}

	if p.EstimatedBudget != nil {
		if c := IsValidBudget(*p.EstimatedBudget); !c.Valid {
			warnings = append(warnings, c.Message)
			confidence -= penaltySoftWarning
		}
	}

	if p.TimelineDays != nil {
		if c := IsValidTimeline(*p.TimelineDays); !c.Valid {
			warnings = append(warnings, c.Message)
			confidence -= penaltySoftWarning
		}
	}

	if len(p.Deliverables) == 0 {
		warnings = append(warnings, "Project has no deliverables")
		confidence -= penaltyDeliverables
	} else {
		for _, d := range p.Deliverables {
			if strings.TrimSpace(d) == "" {
				warnings = append(warnings, "Project has empty deliverable entries")
				confidence -= penaltyDeliverables
				break
			}
		}
	}

	// Reward unusually complete records, penalize unusually sparse ones,
	// scaled down so it cannot overpower the defect penalties.
	bonus := (CompletenessScore(p) - completenessBonusCenter) * completenessBonusScale
	confidence = clamp01(minFloat(1, confidence+bonus))

	return model.ValidationResult{
		IsValid:    len(errs) == 0,
		Errors:     errs,
		Warnings:   warnings,
		Confidence: confidence,
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func minFloat(a, b float64) float64 {
	if a < b {
		return a
	}
	return b
}
