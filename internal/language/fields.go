package language

import (
	"fmt"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
)

// Canonical field names that all source-specific header variants map onto.
const (
	FieldTitle         = "title"
	FieldClientEmail   = "clientEmail"
	FieldClientName    = "clientName"
	FieldClientCompany = "clientCompany"
	FieldDescription   = "description"
	FieldBudget        = "budget"
	FieldTimeline      = "timeline"
	FieldIndustry      = "industry"
	FieldPriority      = "priority"
	FieldStatus        = "status"
	FieldTags          = "tags"
	FieldDeliverables  = "deliverables"
)

// fieldOrder fixes the first-match precedence between canonical fields.
// clientEmail precedes clientName so that a "Client Email" header is not
// swallowed by the bare "client" synonym.
var fieldOrder = []string{
	FieldTitle,
	FieldClientEmail,
	FieldClientName,
	FieldClientCompany,
	FieldDescription,
	FieldBudget,
	FieldTimeline,
	FieldIndustry,
	FieldPriority,
	FieldStatus,
	FieldTags,
	FieldDeliverables,
}

// fieldSynonyms maps each language to its canonical-field header synonyms.
// Matching is substring-based on the normalized header, so multi-word
// synonyms are listed in full.
var fieldSynonyms = map[Language]map[string][]string{
	English: {
		FieldTitle:         {"project name", "project title", "project", "title"},
		FieldClientEmail:   {"client email", "e-mail", "email", "mail"},
		FieldClientName:    {"client name", "client", "customer", "contact"},
		FieldClientCompany: {"company name", "company", "organization", "organisation"},
		FieldDescription:   {"description", "details", "summary", "overview"},
		FieldBudget:        {"estimated budget", "budget", "cost", "price", "value", "amount"},
		FieldTimeline:      {"timeline", "duration", "deadline", "timeframe"},
		FieldIndustry:      {"industry", "sector"},
		FieldPriority:      {"priority", "importance", "urgency"},
		FieldStatus:        {"status", "state", "stage"},
		FieldTags:          {"tags", "labels", "keywords"},
		FieldDeliverables:  {"deliverables", "scope", "features", "requirements"},
	},
	German: {
		FieldTitle:         {"projektname", "projekttitel", "projekt", "titel"},
		FieldClientEmail:   {"e-mail", "email", "mail"},
		FieldClientName:    {"kundenname", "kunde", "auftraggeber", "ansprechpartner"},
		FieldClientCompany: {"firmenname", "firma", "unternehmen"},
		FieldDescription:   {"beschreibung", "zusammenfassung", "details"},
		FieldBudget:        {"budget", "kosten", "preis", "betrag"},
		FieldTimeline:      {"zeitplan", "zeitrahmen", "dauer", "frist", "laufzeit"},
		FieldIndustry:      {"branche", "sektor"},
		FieldPriority:      {"priorität", "wichtigkeit", "dringlichkeit"},
		FieldStatus:        {"status", "stand", "phase"},
		FieldTags:          {"schlagworte", "stichworte", "tags"},
		FieldDeliverables:  {"leistungen", "lieferumfang", "umfang", "anforderungen"},
	},
	Ukrainian: {
		FieldTitle:         {"назва проекту", "назва проєкту", "проект", "проєкт"},
		FieldClientEmail:   {"електронна пошта", "пошта", "email"},
		FieldClientName:    {"ім'я клієнта", "клієнт", "замовник", "контактна особа"},
		FieldClientCompany: {"назва компанії", "компанія", "організація"},
		FieldDescription:   {"опис", "деталі", "резюме"},
		FieldBudget:        {"бюджет", "вартість", "ціна", "сума"},
		FieldTimeline:      {"термін", "терміни", "тривалість", "строк"},
		FieldIndustry:      {"галузь", "сфера"},
		FieldPriority:      {"пріоритет", "важливість"},
		FieldStatus:        {"статус", "стан", "етап"},
		FieldTags:          {"теги", "мітки"},
		FieldDeliverables:  {"результати", "обсяг робіт", "послуги", "вимоги"},
	},
	Russian: {
		FieldTitle:         {"название проекта", "проект", "наименование"},
		FieldClientEmail:   {"электронная почта", "почта", "email"},
		FieldClientName:    {"имя клиента", "клиент", "заказчик", "контактное лицо"},
		FieldClientCompany: {"название компании", "компания", "организация"},
		FieldDescription:   {"описание", "детали", "резюме"},
		FieldBudget:        {"бюджет", "стоимость", "цена", "сумма"},
		FieldTimeline:      {"срок", "сроки", "длительность", "продолжительность"},
		FieldIndustry:      {"отрасль", "сфера"},
		FieldPriority:      {"приоритет", "важность"},
		FieldStatus:        {"статус", "состояние", "этап"},
		FieldTags:          {"теги", "метки"},
		FieldDeliverables:  {"результаты", "объем работ", "услуги", "требования"},
	},
}

// Mapper resolves localized column headers to canonical field names. The
// synonym tables are fixed at construction; Map is safe for concurrent use.
type Mapper struct {
	synonyms map[Language]map[string][]string
}

// NewMapper creates a Mapper backed by the built-in synonym tables.
func NewMapper() *Mapper {
	return &Mapper{synonyms: fieldSynonyms}
}

// NewMapperWithOverrides creates a Mapper whose synonym lists are extended by
// a user-supplied overrides file. Override synonyms are appended after the
// built-in lists so built-in precedence is unchanged.
func NewMapperWithOverrides(path string) (*Mapper, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read mapping overrides: %w", err)
	}

	var overrides map[string]map[string][]string
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return nil, fmt.Errorf("failed to parse mapping overrides: %w", err)
	}

	merged := make(map[Language]map[string][]string, len(fieldSynonyms))
	for lang, fields := range fieldSynonyms {
		langMerged := make(map[string][]string, len(fields))
		for field, syns := range fields {
			langMerged[field] = append(append([]string(nil), syns...), overrides[string(lang)][field]...)
		}
		merged[lang] = langMerged
	}

	for langTag := range overrides {
		if _, ok := Parse(langTag); !ok {
			return nil, fmt.Errorf("mapping overrides reference unsupported language: %q", langTag)
		}
	}

	return &Mapper{synonyms: merged}, nil
}

// Map resolves a header to a canonical field name. The first canonical field
// (in declaration order) with a matching synonym wins; ok is false when no
// synonym matches.
func (m *Mapper) Map(header string, lang Language) (field string, ok bool) {
	normalized := strings.ToLower(strings.TrimSpace(header))
	if normalized == "" {
		return "", false
	}

	fields, ok := m.synonyms[lang]
	if !ok {
		fields = m.synonyms[English]
	}

	for _, canonical := range fieldOrder {
		for _, syn := range fields[canonical] {
			if strings.Contains(normalized, syn) {
				return canonical, true
			}
		}
	}

	return "", false
}

// Synonyms returns the active synonym list for one canonical field. Callers
// must not mutate the returned slice.
func (m *Mapper) Synonyms(lang Language, field string) []string {
	return m.synonyms[lang][field]
}
