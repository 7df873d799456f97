package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tzlab.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadSettings_Defaults(t *testing.T) {
	cfg, err := LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, "testcases.tsv", cfg.Cases.InputFile)
	assert.Equal(t, "America/Denver", cfg.Cases.FromZone)
	assert.Equal(t, "America/Chicago", cfg.Cases.ToZone)
	assert.Equal(t, "Local", cfg.Adjustments.Zone)
	assert.Equal(t, 1, cfg.Adjustments.Years)
	assert.Equal(t, '-', cfg.Report.Guide)
	assert.Equal(t, 8192, cfg.Report.BufferSize)
	assert.Equal(t, 1024, cfg.Zones.CacheSize)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, ":8080", cfg.Server.Addr())
	assert.Nil(t, cfg.Report.FileEncoding())
}

func TestLoadSettings_File(t *testing.T) {
	path := writeConfig(t, `
cases:
  input_file: edge.tsv
  to_zone: Europe/Berlin
report:
  guide_char: "="
  encoding: utf-16
server:
  host: 127.0.0.1
  port: 9090
  shutdown_timeout: 3s
labels:
  enumtimezones: Zones
`)

	cfg, err := LoadSettings(path)
	require.NoError(t, err)

	assert.Equal(t, "edge.tsv", cfg.Cases.InputFile)
	assert.Equal(t, "America/Denver", cfg.Cases.FromZone, "defaults survive a partial file")
	assert.Equal(t, "Europe/Berlin", cfg.Cases.ToZone)
	assert.Equal(t, '=', cfg.Report.Guide)
	assert.Equal(t, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM), cfg.Report.FileEncoding())
	assert.Equal(t, "127.0.0.1:9090", cfg.Server.Addr())
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "Zones", cfg.Label("EnumTimeZones"))
}

func TestLoadSettings_Env(t *testing.T) {
	t.Setenv("TZLAB_CASES_FROM_ZONE", "Asia/Tokyo")
	t.Setenv("TZLAB_ADJUSTMENTS_YEARS", "3")

	cfg, err := LoadSettings("")
	require.NoError(t, err)

	assert.Equal(t, "Asia/Tokyo", cfg.Cases.FromZone)
	assert.Equal(t, 3, cfg.Adjustments.Years)
}

func TestLoadSettings_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		message string
	}{
		{
			name:    "guide is more than one character",
			content: "report:\n  guide_char: ab\n",
			message: "single character",
		},
		{
			name:    "unknown encoding",
			content: "report:\n  encoding: latin-1\n",
			message: "Settings.Report.Encoding",
		},
		{
			name:    "years out of range",
			content: "adjustments:\n  years: 0\n",
			message: "Settings.Adjustments.Years",
		},
		{
			name:    "unknown log level",
			content: "log:\n  level: loud\n",
			message: "Settings.Log.Level",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSettings(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestLoadSettings_MissingFile(t *testing.T) {
	_, err := LoadSettings(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestFileEncoding(t *testing.T) {
	tests := []struct {
		encoding string
		want     any
	}{
		{"utf-8", nil},
		{"UTF-16LE", unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
		{"utf-16be", unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
	}
	for _, tt := range tests {
		t.Run(tt.encoding, func(t *testing.T) {
			got := ReportSettings{Encoding: tt.encoding}.FileEncoding()
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLabel(t *testing.T) {
	cfg := &Settings{Labels: map[string]string{"anytimezonetoutc": "To UTC", "enumtimezones": ""}}

	assert.Equal(t, "To UTC", cfg.Label("AnyTimeZoneToUTC"))
	assert.Equal(t, "EnumTimeZones", cfg.Label("EnumTimeZones"))
	assert.Equal(t, "All", cfg.Label("All"))
}
