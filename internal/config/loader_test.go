package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string, perm os.FileMode) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 9180, cfg.Server.Port)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "gpt-4o-mini", cfg.Generation.Model)
	assert.InDelta(t, 0.7, cfg.Generation.Temperature, 1e-9)
	assert.Equal(t, 20, cfg.Generation.RequestsPerMinute)
	assert.Equal(t, "alignd", cfg.Observability.ServiceName)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.NotEmpty(t, cfg.Store.Path)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := writeConfigFile(t, `
server:
  http_port: 8181
store:
  path: /tmp/alignd-test.db
generation:
  model: gpt-4o
logging:
  level: debug
  format: console
`, 0600)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8181, cfg.Server.Port)
	assert.Equal(t, "/tmp/alignd-test.db", cfg.Store.Path)
	assert.Equal(t, "gpt-4o", cfg.Generation.Model)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	// Untouched sections keep defaults.
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.InDelta(t, 0.7, cfg.Generation.Temperature, 1e-9)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "server:\n  http_port: 8181\n", 0600)

	t.Setenv("SERVER_HTTP_PORT", "8282")
	t.Setenv("GENERATION_MODEL", "gpt-4o")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8282, cfg.Server.Port)
	assert.Equal(t, "gpt-4o", cfg.Generation.Model)
}

func TestLoad_RejectsInsecurePermissions(t *testing.T) {
	path := writeConfigFile(t, "server:\n  http_port: 8181\n", 0644)

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insecure config file permissions")
}

func TestLoad_RejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad port", "server:\n  http_port: 70000\n", "invalid server port"},
		{"bad temperature", "generation:\n  temperature: 3.5\n", "invalid temperature"},
		{"bad format", "logging:\n  format: xml\n", "invalid logging format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfigFile(t, tt.yaml, 0600)
			_, err := Load(path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_Direct(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	require.NoError(t, cfg.Validate())

	cfg.Server.ShutdownTimeout = 0
	assert.Error(t, cfg.Validate())
}
