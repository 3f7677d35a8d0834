package parser

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/propflow/propflow/internal/validation"
)

var timelineRegex = regexp.MustCompile(`(?i)(\d+)\s*(weeks?|wks?|months?|days?)?`)

// Day multipliers for timeline units.
const (
	daysPerWeek  = 7
	daysPerMonth = 30
)

// parseTimelineDays converts timeline text like "6 weeks", "2 months", or
// "45" into a day count. Bare numbers are taken as days.
func parseTimelineDays(text string) (int, bool) {
	m := timelineRegex.FindStringSubmatch(text)
	if m == nil {
		return 0, false
	}

	n, err := strconv.Atoi(m[1])
	if err != nil || n <= 0 {
		return 0, false
	}

	unit := strings.ToLower(m[2])
	switch {
	case strings.HasPrefix(unit, "week"), strings.HasPrefix(unit, "wk"):
		return n * daysPerWeek, true
	case strings.HasPrefix(unit, "month"):
		return n * daysPerMonth, true
	default:
		return n, true
	}
}

// parseTimelineValue converts a timeline-ish value to a day count. Date
// values like "2026-09-01" are deadlines and become the days remaining until
// that date; without the date check the duration regex would grab the year as
// the day count. Past deadlines are dropped. Everything else goes through
// parseTimelineDays.
func parseTimelineValue(text string) (int, bool) {
	if deadline, err := validation.ParseDate(text); err == nil {
		days := int(math.Ceil(time.Until(deadline).Hours() / 24))
		if days <= 0 {
			return 0, false
		}
		return days, true
	}
	return parseTimelineDays(text)
}

// parseBudgetValue extracts a budget from text that may carry a currency
// marker ("$8,000", "8000 USD") or be a plain number.
func parseBudgetValue(text string) (float64, bool) {
	if amount, ok := validation.ExtractCurrencyAmount(text); ok {
		return amount, true
	}

	cleaned := strings.ReplaceAll(strings.TrimSpace(text), ",", "")
	amount, err := strconv.ParseFloat(cleaned, 64)
	if err != nil || amount <= 0 {
		return 0, false
	}
	return amount, true
}

// splitDelimitedRow splits a comma-separated row honoring double-quote
// enclosed commas. A doubled quote inside a quoted field is an escaped quote.
// Hand-rolled instead of encoding/csv because a malformed row must be
// recoverable per-row, not abort the whole stream.
func splitDelimitedRow(line string) []string {
	var fields []string
	var current strings.Builder
	inQuotes := false

	runes := []rune(line)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		switch {
		case r == '"':
			if inQuotes && i+1 < len(runes) && runes[i+1] == '"' {
				current.WriteRune('"')
				i++
				continue
			}
			inQuotes = !inQuotes
		case r == ',' && !inQuotes:
			fields = append(fields, strings.TrimSpace(current.String()))
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}
	fields = append(fields, strings.TrimSpace(current.String()))

	return fields
}

// splitList splits a multi-value cell on semicolons, falling back to commas.
func splitList(text string) []string {
	sep := ";"
	if !strings.Contains(text, sep) {
		sep = ","
	}

	var items []string
	for _, item := range strings.Split(text, sep) {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}
	return items
}

// firstString returns the first non-empty string value found under any of the
// given keys, tolerating missing keys and non-string scalars.
func firstString(m map[string]any, keys ...string) string {
	for _, key := range keys {
		if v, ok := m[key]; ok {
			if s := anyToString(v); s != "" {
				return s
			}
		}
	}
	return ""
}

// firstNumber returns the first positive numeric value found under any of the
// given keys, accepting JSON numbers and numeric strings.
func firstNumber(m map[string]any, keys ...string) (float64, bool) {
	for _, key := range keys {
		v, ok := m[key]
		if !ok {
			continue
		}
		switch n := v.(type) {
		case float64:
			if n > 0 {
				return n, true
			}
		case string:
			if amount, ok := parseBudgetValue(n); ok {
				return amount, true
			}
		}
	}
	return 0, false
}

// anyToString renders a scalar JSON value as a string.
func anyToString(v any) string {
	switch s := v.(type) {
	case string:
		return strings.TrimSpace(s)
	case float64:
		return strconv.FormatFloat(s, 'f', -1, 64)
	default:
		return ""
	}
}

// stringList renders a JSON value that may be an array of strings, an array
// of named objects, or a delimited string as a flat string list.
func stringList(v any) []string {
	switch items := v.(type) {
	case []any:
		var out []string
		for _, item := range items {
			switch entry := item.(type) {
			case string:
				if trimmed := strings.TrimSpace(entry); trimmed != "" {
					out = append(out, trimmed)
				}
			case map[string]any:
				if name := firstString(entry, "name", "Name", "value"); name != "" {
					out = append(out, name)
				}
			}
		}
		return out
	case string:
		return splitList(items)
	default:
		return nil
	}
}
