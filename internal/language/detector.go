// Package language detects the dominant language of project text among four
// supported languages and maps localized column headers to canonical field
// names. The detector is a deterministic keyword-frequency and script
// heuristic, not a statistical model: the accuracy bar is modest and
// reproducible behavior is worth more than calibrated probabilities.
package language

import (
	"strings"
	"unicode"
)

// Baseline confidence reported when no keyword or script signal is present.
const baselineConfidence = 0.25

// Script boost weights. The Cyrillic ratio boost is capped at cyrillicWeight;
// per-character boosts accumulate on top of it.
const (
	cyrillicWeight  = 2.0
	ukrainianWeight = 0.5
	germanWeight    = 0.3
)

// Alternative is a non-winning language with its normalized score.
type Alternative struct {
	Language   Language `json:"language"`
	Confidence float64  `json:"confidence"`
}

// Detection is the result of language detection. Confidence is a relative
// ranking score in [0,1], not a probability.
type Detection struct {
	Language     Language      `json:"language"`
	Confidence   float64       `json:"confidence"`
	Alternatives []Alternative `json:"alternatives,omitempty"`
}

// Detect determines the dominant language of the given text.
func Detect(text string) Detection {
	lower := strings.ToLower(text)
	counts := wordCounts(lower)

	scores := make(map[Language]float64, len(Order))
	for _, lang := range Order {
		for _, kw := range domainKeywords[lang] {
			scores[lang] += float64(counts[kw])
		}
	}

	applyScriptBoost(lower, scores)

	var total float64
	for _, lang := range Order {
		total += scores[lang]
	}

	if total == 0 {
		return Detection{Language: English, Confidence: baselineConfidence}
	}

	// Strictly-greater comparison keeps the first language in enumeration
	// order on ties.
	winner := English
	best := -1.0
	for _, lang := range Order {
		if scores[lang] > best {
			winner = lang
			best = scores[lang]
		}
	}

	det := Detection{
		Language:   winner,
		Confidence: best / total,
	}

	for _, lang := range Order {
		if lang == winner || scores[lang] == 0 {
			continue
		}
		det.Alternatives = append(det.Alternatives, Alternative{
			Language:   lang,
			Confidence: scores[lang] / total,
		})
	}
	// Highest-scoring alternatives first; insertion order is already the
	// fixed enumeration order, so a stable sort keeps ties deterministic.
	for i := 0; i < len(det.Alternatives)-1; i++ {
		for j := i + 1; j < len(det.Alternatives); j++ {
			if det.Alternatives[j].Confidence > det.Alternatives[i].Confidence {
				det.Alternatives[i], det.Alternatives[j] = det.Alternatives[j], det.Alternatives[i]
			}
		}
	}
	if len(det.Alternatives) > 2 {
		det.Alternatives = det.Alternatives[:2]
	}

	return det
}

// DetectFromHeaders detects the language of a set of column headers.
func DetectFromHeaders(headers []string) Detection {
	return Detect(strings.Join(headers, " "))
}

// applyScriptBoost adds character-script evidence on top of keyword counts.
func applyScriptBoost(lower string, scores map[Language]float64) {
	var cyrillic, latin, ukSpecific, deSpecific int

	for _, r := range lower {
		switch {
		case r >= 'a' && r <= 'z':
			latin++
		case unicode.Is(unicode.Cyrillic, r):
			cyrillic++
		}
		if ukrainianLetters[r] {
			ukSpecific++
		}
		if germanLetters[r] {
			deSpecific++
		}
	}

	if cyrillic > 0 {
		ratio := float64(cyrillic) / float64(cyrillic+latin)
		if ukSpecific > 0 {
			scores[Ukrainian] += ratio*cyrillicWeight + float64(ukSpecific)*ukrainianWeight
		} else {
			scores[Russian] += ratio * cyrillicWeight
		}
	}

	if deSpecific > 0 {
		scores[German] += float64(deSpecific) * germanWeight
	}
}

// wordCounts tokenizes lowercased text into whole words and counts them.
func wordCounts(lower string) map[string]int {
	counts := make(map[string]int)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '\''
	})
	for _, w := range words {
		counts[w]++
	}
	return counts
}

// Parse converts a string tag into a supported Language.
func Parse(s string) (Language, bool) {
	switch Language(strings.ToLower(strings.TrimSpace(s))) {
	case English:
		return English, true
	case German:
		return German, true
	case Ukrainian:
		return Ukrainian, true
	case Russian:
		return Russian, true
	default:
		return "", false
	}
}
