package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetupLogger(t *testing.T) {
	for _, level := range []string{"debug", "info", "warn", "error"} {
		for _, format := range []string{"console", "json"} {
			require.NoError(t, SetupLogger(level, format), "level=%s format=%s", level, format)
		}
	}

	assert.Error(t, SetupLogger("verbose", "console"))
	assert.Error(t, SetupLogger("info", "xml"))
	assert.Error(t, SetupLogger("", ""))
}
