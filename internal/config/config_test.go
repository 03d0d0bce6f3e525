package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSourceURL = "https://docs.google.com/spreadsheets/d/abc/export?format=csv"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Empty(t, cfg.SourceURL)
	assert.Equal(t, 10*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 2*time.Minute, cfg.RefreshTimeout)
	assert.Equal(t, 30*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 3, cfg.FetchAttempts)
	assert.Equal(t, 4, cfg.NormalizeWorkers)
	assert.Empty(t, cfg.GazetteerFile)
	assert.Equal(t, 1000, cfg.ResolverCacheSize)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.False(t, cfg.KafkaEnabled)
	assert.Empty(t, cfg.KafkaBrokers)
	assert.Equal(t, "normalized-incidents", cfg.KafkaSinkTopic)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("SOURCE_CSV_URL", testSourceURL)
	t.Setenv("REFRESH_INTERVAL", "5m")
	t.Setenv("REFRESH_TIMEOUT", "90s")
	t.Setenv("FETCH_TIMEOUT", "10s")
	t.Setenv("FETCH_ATTEMPTS", "5")
	t.Setenv("NORMALIZE_WORKERS", "8")
	t.Setenv("GAZETTEER_FILE", "/etc/incident-etl/gazetteer.toml")
	t.Setenv("RESOLVER_CACHE_SIZE", "500")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("KAFKA_BROKERS", "broker1:9092,broker2:9092")
	t.Setenv("KAFKA_SINK_TOPIC", "custom-sink")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, testSourceURL, cfg.SourceURL)
	assert.Equal(t, 5*time.Minute, cfg.RefreshInterval)
	assert.Equal(t, 90*time.Second, cfg.RefreshTimeout)
	assert.Equal(t, 10*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 5, cfg.FetchAttempts)
	assert.Equal(t, 8, cfg.NormalizeWorkers)
	assert.Equal(t, "/etc/incident-etl/gazetteer.toml", cfg.GazetteerFile)
	assert.Equal(t, 500, cfg.ResolverCacheSize)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.True(t, cfg.KafkaEnabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, cfg.KafkaBrokers)
	assert.Equal(t, "custom-sink", cfg.KafkaSinkTopic)
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		key   string
		value string
	}{
		{"SHUTDOWN_TIMEOUT", "not-a-duration"},
		{"SHUTDOWN_TIMEOUT", "-1s"},
		{"REFRESH_INTERVAL", "soon"},
		{"REFRESH_INTERVAL", "0s"},
		{"REFRESH_TIMEOUT", "-1m"},
		{"FETCH_TIMEOUT", "bad"},
		{"FETCH_ATTEMPTS", "0"},
		{"FETCH_ATTEMPTS", "three"},
		{"NORMALIZE_WORKERS", "-2"},
		{"RESOLVER_CACHE_SIZE", "x"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.key)
		})
	}
}

func TestLoad_KafkaEnabledWithoutBrokers(t *testing.T) {
	t.Setenv("KAFKA_ENABLED", "true")
	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "KAFKA_BROKERS")
}

func TestLoad_KafkaExplicitlyDisabled(t *testing.T) {
	t.Setenv("KAFKA_BROKERS", "localhost:9092")
	t.Setenv("KAFKA_ENABLED", "false")
	cfg, err := Load()
	require.NoError(t, err)
	assert.False(t, cfg.KafkaEnabled)
}

func TestLoad_DotEnv(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("SOURCE_CSV_URL="+testSourceURL+"\nHTTP_ADDR=:7070\n"), 0o600))
	t.Chdir(dir)

	// godotenv sets variables directly; register them so they are restored.
	t.Setenv("SOURCE_CSV_URL", "")
	require.NoError(t, os.Unsetenv("SOURCE_CSV_URL"))
	t.Setenv("HTTP_ADDR", ":9999")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, testSourceURL, cfg.SourceURL)
	assert.Equal(t, ":9999", cfg.HTTPAddr, "environment wins over .env")
}
