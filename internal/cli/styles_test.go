package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatHelpers(t *testing.T) {
	tests := []struct {
		name   string
		format func(string) string
		icon   string
	}{
		{"success", FormatSuccess, SuccessIcon},
		{"error", FormatError, ErrorIcon},
		{"warning", FormatWarning, WarningIcon},
		{"info", FormatInfo, InfoIcon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.format("saved 3 records")
			assert.Contains(t, got, tt.icon)
			assert.Contains(t, got, "saved 3 records")
		})
	}
}

func TestFormatTitle(t *testing.T) {
	assert.Contains(t, FormatTitle("Parse runs"), "Parse runs")
}

func TestRenderStyles(t *testing.T) {
	// Each exported style must render its input text.
	assert.Contains(t, SubtleStyle.Render("run-id"), "run-id")
	assert.Contains(t, TableHeaderStyle.Render("ID  SOURCE"), "ID  SOURCE")
}
