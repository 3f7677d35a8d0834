package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractEntities(t *testing.T) {
	text := "Contact john@example.com at Globex Corp. Budget is $25,000 for phase one."

	entities := ExtractEntities(text)
	require.Len(t, entities, 3)

	byKind := make(map[EntityKind]Entity, len(entities))
	for _, e := range entities {
		byKind[e.Kind] = e
	}

	email := byKind[EntityEmail]
	assert.Equal(t, "john@example.com", email.Text)
	assert.InDelta(t, 0.95, email.Confidence, 1e-9)

	currency := byKind[EntityCurrency]
	assert.Equal(t, "$25,000", currency.Text)
	assert.InDelta(t, 0.9, currency.Confidence, 1e-9)

	company := byKind[EntityCompany]
	assert.Contains(t, company.Text, "Globex Corp")
	assert.InDelta(t, 0.8, company.Confidence, 1e-9)
}

func TestExtractEntities_MultipleMatches(t *testing.T) {
	text := "Send to a@b.co and c@d.org, budgets $1,000 then $2,000."

	var emails, amounts int
	for _, e := range ExtractEntities(text) {
		switch e.Kind {
		case EntityEmail:
			emails++
		case EntityCurrency:
			amounts++
		}
	}

	assert.Equal(t, 2, emails)
	assert.Equal(t, 2, amounts)
}

func TestExtractEntities_NoMatches(t *testing.T) {
	assert.Empty(t, ExtractEntities("nothing interesting here"))
	assert.Empty(t, ExtractEntities(""))
}

func TestExtractEntities_CompanySuffixes(t *testing.T) {
	for _, text := range []string{
		"Acme LLC",
		"Hooli Inc.",
		"Initech Ltd",
		"Vandelay Industries Corp",
	} {
		entities := ExtractEntities(text)
		require.Len(t, entities, 1, "text: %q", text)
		assert.Equal(t, EntityCompany, entities[0].Kind, "text: %q", text)
	}
}
