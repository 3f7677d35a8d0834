package validation

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// legalSuffixes are entity suffixes kept fully uppercased during name casing.
var legalSuffixes = map[string]bool{
	"LLC":  true,
	"INC":  true,
	"LTD":  true,
	"CORP": true,
	"CO":   true,
}

// lowercaseWords stay lowercase when they are not the first word.
var lowercaseWords = map[string]bool{
	"and": true,
	"of":  true,
	"the": true,
	"for": true,
}

// NormalizeClientName title-cases a client or company name, uppercasing legal
// entity suffixes and lowercasing short connective words.
func NormalizeClientName(name string) string {
	words := strings.Fields(name)
	for i, word := range words {
		bare := strings.Trim(word, ".,")
		upper := strings.ToUpper(bare)
		lower := strings.ToLower(bare)

		switch {
		case legalSuffixes[upper]:
			words[i] = strings.Replace(word, bare, upper, 1)
		case i > 0 && lowercaseWords[lower]:
			words[i] = strings.Replace(word, bare, lower, 1)
		default:
			words[i] = titleCaseWord(word)
		}
	}
	return strings.Join(words, " ")
}

func titleCaseWord(word string) string {
	runes := []rune(strings.ToLower(word))
	for i, r := range runes {
		if unicode.IsLetter(r) {
			runes[i] = unicode.ToUpper(r)
			break
		}
	}
	return string(runes)
}

// allowedPunct is the conservative punctuation allow-list for SanitizeText.
const allowedPunct = `.,;:!?'"()-–/&@#$%€£₴+`

// SanitizeText collapses whitespace and strips characters outside a
// conservative allow-list of letters, digits, and common punctuation.
func SanitizeText(text string) string {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return r
		case unicode.IsSpace(r):
			return ' '
		case strings.ContainsRune(allowedPunct, r):
			return r
		default:
			return -1
		}
	}, text)

	return strings.Join(strings.Fields(cleaned), " ")
}

var (
	currencyPrefixRegex = regexp.MustCompile(`[$€£₴]\s?([\d][\d,]*(?:\.\d+)?)`)
	currencySuffixRegex = regexp.MustCompile(`([\d][\d,]*(?:\.\d+)?)\s?(?:USD|EUR|GBP|UAH)\b`)
)

// ExtractCurrencyAmount finds the first currency amount in text, recognizing
// $, €, £, ₴ prefixes or an ISO-code suffix. Returns false when no amount is
// present.
func ExtractCurrencyAmount(text string) (float64, bool) {
	var raw string
	if m := currencyPrefixRegex.FindStringSubmatch(text); m != nil {
		raw = m[1]
	} else if m := currencySuffixRegex.FindStringSubmatch(text); m != nil {
		raw = m[1]
	} else {
		return 0, false
	}

	amount, err := strconv.ParseFloat(strings.ReplaceAll(raw, ",", ""), 64)
	if err != nil {
		return 0, false
	}
	return amount, true
}

// dateLayouts are tried in order. Day-first dot format is common in the
// German and Ukrainian exports this pipeline sees.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02",
	"01/02/2006",
	"2006/01/02",
	"02.01.2006",
	"2006.01.02",
}

// ParseDate parses a date across ISO, slash, and dot-delimited formats.
func ParseDate(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date format: %q", s)
}
