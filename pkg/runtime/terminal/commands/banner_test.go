package commands

import (
	"bytes"
	"testing"

	"github.com/de-tools/tzlab/pkg/services/tasks"
	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBanner(t *testing.T) {
	color.NoColor = true

	tests := []struct {
		format   tasks.OutputFormat
		expected string
	}{
		{tasks.Verbose, "Begin: Zones\nDone: Zones\n"},
		{tasks.Terse, "Done: Zones\n"},
		{tasks.Quiet, ""},
	}

	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			var out bytes.Buffer
			banner := NewBanner(&out, tt.format)

			banner.Begin("Zones")
			banner.Done("Zones")

			assert.Equal(t, tt.expected, out.String())
		})
	}
}

func TestNewLogger(t *testing.T) {
	var out bytes.Buffer

	logger, err := NewLogger(&out, "warn")
	require.NoError(t, err)
	logger.Info().Msg("hidden")
	logger.Warn().Msg("shown")

	assert.NotContains(t, out.String(), "hidden")
	assert.Contains(t, out.String(), "shown")

	_, err = NewLogger(&out, "loud")
	assert.ErrorContains(t, err, "invalid log level")
}
