package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jmgilman/go/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ghissues.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "ghp_test")

	cfg, err := Load("")

	require.NoError(t, err)
	assert.Equal(t, "ghp_test", cfg.Token)
	assert.Equal(t, ProviderSDK, cfg.Provider)
	assert.Equal(t, OutputYAML, cfg.Output)
	assert.Equal(t, 60*time.Second, cfg.Timeout)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, 100, cfg.Logging.MaxSize)
	assert.True(t, cfg.Logging.Compress)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, "ghissues", cfg.Tracing.ServiceName)
	assert.InDelta(t, 1.0, cfg.Tracing.SamplingRate, 0)
	assert.Equal(t, "ghissues", cfg.Metrics.Job)
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
provider: cli
hostname: ghe.example.com
output: json
timeout: 2m
logging:
  level: debug
  format: json
  file: /tmp/ghissues.log
tracing:
  enabled: true
  endpoint: http://localhost:4318
metrics:
  enabled: true
`)

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ProviderCLI, cfg.Provider)
	assert.Equal(t, "ghe.example.com", cfg.Hostname)
	assert.Equal(t, OutputJSON, cfg.Output)
	assert.Equal(t, 2*time.Minute, cfg.Timeout)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "/tmp/ghissues.log", cfg.Logging.File)
	assert.True(t, cfg.Tracing.Enabled)
	assert.Equal(t, "http://localhost:4318", cfg.Tracing.Endpoint)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "provider: cli\noutput: json\n")
	t.Setenv("GHISSUES_PROVIDER", "sdk")

	cfg, err := Load(path)

	require.NoError(t, err)
	assert.Equal(t, ProviderSDK, cfg.Provider)
	assert.Equal(t, OutputJSON, cfg.Output)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "unknown provider", content: "provider: rest\n", field: "Config.Provider"},
		{name: "unknown output", content: "output: xml\n", field: "Config.Output"},
		{name: "bad log level", content: "logging:\n  level: trace\n", field: "Config.Logging.Level"},
		{name: "tracing without endpoint", content: "tracing:\n  enabled: true\n", field: "Config.Tracing.Endpoint"},
		{name: "sampling rate out of range", content: "tracing:\n  samplingRate: 2\n", field: "Config.Tracing.SamplingRate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))

			require.Error(t, err)
			assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))

			var platformErr errors.PlatformError
			require.True(t, errors.As(err, &platformErr))
			assert.Equal(t, tt.field, platformErr.Context()["field"])
		})
	}

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))

		require.Error(t, err)
		assert.Equal(t, errors.CodeInvalidConfig, errors.GetCode(err))
	})
}

func TestUsage(t *testing.T) {
	t.Parallel()

	usage, err := Usage()

	require.NoError(t, err)
	assert.Contains(t, usage, "GITHUB_TOKEN")
	assert.Contains(t, usage, "GHISSUES_PROVIDER")
}
