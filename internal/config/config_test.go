package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	return path
}

func TestLoadConfigDefaults(t *testing.T) {
	path := writeConfig(t, "backend:\n  url: \"http://thanos:9090\"\n")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://thanos:9090", cfg.Backend.URL)
	assert.Equal(t, DefaultUpdatePeriod, cfg.Collector.UpdatePeriod)
	assert.Equal(t, DefaultTimeRange, cfg.Collector.TimeRange)
	assert.Equal(t, DefaultExporterPort, cfg.Exporter.Port)
	assert.Equal(t, DefaultQueryTimeout, cfg.Backend.QueryTimeout)
	assert.Equal(t, 5*time.Second, cfg.QueryTimeoutDuration())
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.NATS.Enabled)
	assert.Equal(t, time.Second, cfg.UpdateInterval())
}

func TestLoadConfigMissingFileUsesEnv(t *testing.T) {
	t.Setenv("BACKEND_URL", "http://env-backend:9090")
	t.Setenv("UPDATE_PERIOD", "3")
	t.Setenv("TIME_RANGE", "30s")

	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://env-backend:9090", cfg.Backend.URL)
	assert.Equal(t, 3, cfg.Collector.UpdatePeriod)
	assert.Equal(t, "30s", cfg.Collector.TimeRange)
	assert.Equal(t, 3*time.Second, cfg.UpdateInterval())
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "backend:\n  url: \"http://file-backend:9090\"\ncollector:\n  update_period: 10\n")
	t.Setenv("BACKEND_URL", "http://env-backend:9090")

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "http://env-backend:9090", cfg.Backend.URL)
	assert.Equal(t, 10, cfg.Collector.UpdatePeriod)
}

func TestLoadConfigRequiresBackendURL(t *testing.T) {
	t.Setenv("BACKEND_URL", "")
	_, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}

func TestLoadConfigRejectsBadPeriod(t *testing.T) {
	path := writeConfig(t, "backend:\n  url: \"http://thanos:9090\"\ncollector:\n  update_period: 0\n")
	_, err := LoadConfig(path)
	assert.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	tests := []struct {
		level   string
		want    zerolog.Level
		wantErr bool
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "info", want: zerolog.InfoLevel},
		{level: "warning", want: zerolog.WarnLevel},
		{level: "warn", want: zerolog.WarnLevel},
		{level: "error", want: zerolog.ErrorLevel},
		{level: "critical", want: zerolog.FatalLevel},
		{level: "shout", wantErr: true},
	}

	for _, test := range tests {
		t.Run(test.level, func(t *testing.T) {
			cfg := &Config{Log: LogConfig{Level: test.level}}
			got, err := cfg.LogLevel()
			if test.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.want, got)
		})
	}
}
