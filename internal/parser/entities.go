package parser

import "regexp"

// EntityKind classifies an extracted free-text entity.
type EntityKind string

// Entity kinds recognized by the free-text scanner.
const (
	EntityEmail    EntityKind = "email"
	EntityCurrency EntityKind = "currency"
	EntityCompany  EntityKind = "company"
)

// Fixed per-kind confidences. Email patterns are nearly unambiguous;
// company-suffix matches are the loosest heuristic.
const (
	emailEntityConfidence    = 0.95
	currencyEntityConfidence = 0.9
	companyEntityConfidence  = 0.8
)

// Entity is a single pattern match found in free text. Keeping extraction as
// pure functions over text makes the heuristic nature explicit and testable
// in isolation.
type Entity struct {
	Text       string     `json:"text"`
	Kind       EntityKind `json:"kind"`
	Confidence float64    `json:"confidence"`
}

var (
	emailEntityRegex    = regexp.MustCompile(`[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}`)
	currencyEntityRegex = regexp.MustCompile(`\$\s?\d[\d,]*(?:\.\d+)?`)
	companyEntityRegex  = regexp.MustCompile(`[A-Z][A-Za-z&'\-]*(?:\s+[A-Z][A-Za-z&'\-]*)*\s+(?:LLC|Inc\.?|Ltd\.?|Corp\.?)`)
)

// ExtractEntities scans text for email addresses, currency amounts, and
// company-suffix phrases, each tagged with its fixed confidence.
func ExtractEntities(text string) []Entity {
	var entities []Entity

	for _, match := range emailEntityRegex.FindAllString(text, -1) {
		entities = append(entities, Entity{Text: match, Kind: EntityEmail, Confidence: emailEntityConfidence})
	}
	for _, match := range currencyEntityRegex.FindAllString(text, -1) {
		entities = append(entities, Entity{Text: match, Kind: EntityCurrency, Confidence: currencyEntityConfidence})
	}
	for _, match := range companyEntityRegex.FindAllString(text, -1) {
		entities = append(entities, Entity{Text: match, Kind: EntityCompany, Confidence: companyEntityConfidence})
	}

	return entities
}
