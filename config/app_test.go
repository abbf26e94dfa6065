package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_EmptyPathUsesDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.HTTP.Port)
	assert.Equal(t, 25, cfg.Pagination.DefaultPageSize)
	assert.Equal(t, 500, cfg.Pagination.MaxPageSize)
	assert.Equal(t, 256, cfg.CacheSize())
	assert.Equal(t, "local", cfg.Logging.Env)
	assert.Equal(t, 0.2, cfg.Search.CutoffRatio)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
http:
  port: 9090
data:
  path: /srv/voters.json
  watch: true
logging:
  env: prod
  level: warn
cache:
  size: 0
search:
  threshold: 0.25
  field_weights:
    - field: name
      weight: 3
    - field: voter_no
      weight: 1
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.HTTP.Port)
	assert.Equal(t, "/srv/voters.json", cfg.Data.Path)
	assert.True(t, cfg.Data.Watch)
	assert.Equal(t, "prod", cfg.Logging.Env)
	assert.Equal(t, 0, cfg.CacheSize(), "explicit zero disables the cache")
	assert.Equal(t, 0.25, cfg.Search.Threshold)
	require.Len(t, cfg.Search.FieldWeights, 2)
	assert.Equal(t, "voter_no", cfg.Search.FieldWeights[1].Field)
	assert.Equal(t, 0.3, cfg.Search.QualityGate, "unset search values get defaults")
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("VOTER_PORT", "7000")
	path := writeConfig(t, `
http:
  port: ${VOTER_PORT}
data:
  path: ${VOTER_DATA_UNSET:-fallback.json}
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.HTTP.Port)
	assert.Equal(t, "fallback.json", cfg.Data.Path)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed yaml", "http: [unclosed"},
		{"port out of range", "http:\n  port: 70000\n"},
		{"bad logging env", "logging:\n  env: staging\n"},
		{"page size above max", "pagination:\n  default_page_size: 50\n  max_page_size: 10\n"},
		{"bad search settings", "search:\n  threshold: 4\n"},
		{"negative cache", "cache:\n  size: -1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
