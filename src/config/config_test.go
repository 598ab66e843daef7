package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -----------------------------------------------------------------------------

const validYAML = `
name: "lotus-ge"
host: "127.0.0.1"
port: 8585
log_level: "INFO"
storage:
  db_type: "sqlite"
  db_path: "./data/test.db"
network:
  timeout: 30
  request_delay_seconds: 2
  user_agent: "test agent"
collector:
  update_interval_seconds: 300
`

// -----------------------------------------------------------------------------

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

// -----------------------------------------------------------------------------

func TestNewConfigLoadsAndDefaults(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, validYAML))
	require.NoError(t, err)

	assert.Equal(t, "lotus-ge", cfg.Name)
	assert.Equal(t, 8585, cfg.Port)
	assert.Equal(t, "sqlite", cfg.Storage.DBType)
	assert.Equal(t, 2, cfg.Network.RequestDelaySeconds)

	// Defaults fill what the file left out.
	assert.Equal(t, "https://prices.runescape.wiki/api/v1/osrs/", cfg.Collector.BaseURL)
	assert.Equal(t, int64(86400), cfg.Collector.MappingMaxAgeSeconds)
}

// -----------------------------------------------------------------------------

func TestNewConfigMissingFile(t *testing.T) {
	_, err := NewConfig("/nonexistent/config.yaml")
	assert.Error(t, err)
}

// -----------------------------------------------------------------------------

func TestValidateRejectsBadConfigs(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(content string) string
	}{
		{"empty name", func(c string) string { return replaceLine(c, `name: "lotus-ge"`, `name: ""`) }},
		{"privileged port", func(c string) string { return replaceLine(c, "port: 8585", "port: 80") }},
		{"missing user agent", func(c string) string { return replaceLine(c, `user_agent: "test agent"`, `user_agent: ""`) }},
		{"zero timeout", func(c string) string { return replaceLine(c, "timeout: 30", "timeout: 0") }},
		{"zero update interval", func(c string) string {
			return replaceLine(c, "update_interval_seconds: 300", "update_interval_seconds: 0")
		}},
		{"sqlite without path", func(c string) string { return replaceLine(c, `db_path: "./data/test.db"`, `db_path: ""`) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewConfig(writeConfig(t, tt.mutate(validYAML)))
			assert.Error(t, err)
		})
	}
}

// -----------------------------------------------------------------------------

func TestValidateRequiresPostgresConnectionString(t *testing.T) {
	content := replaceLine(validYAML, `db_type: "sqlite"`, `db_type: "postgres"`)
	_, err := NewConfig(writeConfig(t, content))
	assert.Error(t, err)
}

// -----------------------------------------------------------------------------

func TestSaveRoundTrip(t *testing.T) {
	cfg, err := NewConfig(writeConfig(t, validYAML))
	require.NoError(t, err)

	out := filepath.Join(t.TempDir(), "saved.yaml")
	require.NoError(t, cfg.Save(out))

	reloaded, err := NewConfig(out)
	require.NoError(t, err)
	assert.Equal(t, cfg.Name, reloaded.Name)
	assert.Equal(t, cfg.Collector.BaseURL, reloaded.Collector.BaseURL)
}

// -----------------------------------------------------------------------------

func replaceLine(content, old, new string) string {
	return strings.Replace(content, old, new, 1)
}
