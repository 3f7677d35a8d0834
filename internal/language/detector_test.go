package language

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Language
	}{
		{
			name: "english project brief",
			text: "The project budget is $8,000 and the client wants a new website design with clear deliverables.",
			want: English,
		},
		{
			name: "german project brief",
			text: "Das Projekt für den Kunden: Budget und Zeitplan sind abgestimmt, die Anforderungen stehen im Angebot.",
			want: German,
		},
		{
			name: "ukrainian project brief",
			text: "Проект для клієнта: бюджет 50000 грн, термін виконання два місяці, опис додається.",
			want: Ukrainian,
		},
		{
			name: "russian project brief",
			text: "Проект для клиента: бюджет согласован, сроки и описание в приложении.",
			want: Russian,
		},
		{
			name: "cyrillic without ukrainian letters leans russian",
			text: "Новая задача по разработке сайта для заказчика",
			want: Russian,
		},
		{
			name: "ukrainian specific letters win within cyrillic",
			text: "Вимоги до дизайну від замовника, кінцеві терміни і ціна",
			want: Ukrainian,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			det := Detect(tt.text)
			assert.Equal(t, tt.want, det.Language)
			assert.Greater(t, det.Confidence, 0.0)
			assert.LessOrEqual(t, det.Confidence, 1.0)
			assert.LessOrEqual(t, len(det.Alternatives), 2)
		})
	}
}

func TestDetect_NoSignalDefaultsToEnglish(t *testing.T) {
	for _, text := range []string{"", "12345 67890", "lorem ipsum dolor"} {
		det := Detect(text)
		assert.Equal(t, English, det.Language, "text: %q", text)
		assert.InDelta(t, 0.25, det.Confidence, 1e-9)
		assert.Empty(t, det.Alternatives)
	}
}

func TestDetect_Deterministic(t *testing.T) {
	text := "Проект: бюджет і терміни для клієнта, опис додається"

	first := Detect(text)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Detect(text))
	}
}

func TestDetect_AlternativesRanked(t *testing.T) {
	// Mixed text scores both English and German keywords.
	det := Detect("Projekt budget: der Kunde wants a website, Kosten und price to be confirmed")

	require.NotEmpty(t, det.Alternatives)
	prev := det.Confidence
	for _, alt := range det.Alternatives {
		assert.LessOrEqual(t, alt.Confidence, prev)
		assert.NotEqual(t, det.Language, alt.Language)
		prev = alt.Confidence
	}
}

func TestDetectFromHeaders(t *testing.T) {
	tests := []struct {
		name    string
		headers []string
		want    Language
	}{
		{
			name:    "english headers",
			headers: []string{"Project Name", "Client", "Budget", "Timeline", "Description"},
			want:    English,
		},
		{
			name:    "ukrainian headers",
			headers: []string{"Назва проекту", "Клієнт", "Бюджет", "Термін"},
			want:    Ukrainian,
		},
		{
			name:    "german headers",
			headers: []string{"Projektname", "Kunde", "Budget", "Zeitplan"},
			want:    German,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectFromHeaders(tt.headers).Language)
		})
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		input  string
		want   Language
		wantOK bool
	}{
		{"en", English, true},
		{"DE", German, true},
		{" uk ", Ukrainian, true},
		{"ru", Russian, true},
		{"fr", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := Parse(tt.input)
		assert.Equal(t, tt.wantOK, ok, "input: %q", tt.input)
		assert.Equal(t, tt.want, got, "input: %q", tt.input)
	}
}
