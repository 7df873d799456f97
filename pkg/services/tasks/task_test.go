package tasks

import (
	"errors"
	"fmt"
	"testing"

	"github.com/de-tools/tzlab/pkg/services/cases"
	"github.com/de-tools/tzlab/pkg/zones"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTask(t *testing.T) {
	tests := []struct {
		in   string
		want Task
	}{
		{"", All},
		{"all", All},
		{"EnumTimeZones", EnumTimeZones},
		{"enumtimezones", EnumTimeZones},
		{"ANYTIMEZONETOUTC", AnyTimeZoneToUTC},
		{"AnyTimeZoneToLocalTime", AnyTimeZoneToLocalTime},
		{"anytimezonetoanyothertimezone", AnyTimeZoneToAnyOtherTimeZone},
		{" EnumerateTimeZoneAdjustments ", EnumerateTimeZoneAdjustments},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTask(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseTask("Teleport")
	assert.ErrorIs(t, err, ErrInvalidTask)
	assert.Contains(t, err.Error(), "Teleport")
}

func TestParseOutputFormat(t *testing.T) {
	for in, want := range map[string]OutputFormat{
		"":        Verbose,
		"V":       Verbose,
		"verbose": Verbose,
		"t":       Terse,
		"Terse":   Terse,
		"q":       Quiet,
		"none":    Quiet,
		"N":       Quiet,
	} {
		got, err := ParseOutputFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseOutputFormat("loud")
	assert.Error(t, err)
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{nil, ExitSuccess},
		{errors.New("boom"), ExitRuntime},
		{fmt.Errorf("wrapped: %w", ErrInvalidTask), ExitInvalidTask},
		{ErrUnimplementedTask, ExitUnimplementedTask},
		{cases.ErrInputFileMissing, ExitCaseFileNameMissing},
		{fmt.Errorf("%w: x.tsv", cases.ErrInputFileNotFound), ExitCaseFileNotFound},
		{ErrMissingZoneID, ExitMissingZoneID},
		{fmt.Errorf("%w: Mars/Base", zones.ErrZoneNotFound), ExitInvalidZoneID},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ExitCode(tt.err), "%v", tt.err)
	}
}

func TestTask_String(t *testing.T) {
	assert.Equal(t, "EnumTimeZones", EnumTimeZones.String())
	assert.Equal(t, "Task(42)", Task(42).String())
	assert.Len(t, Tasks(), 5)
}
