package observability

import (
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/couchcryptid/incident-data-etl/internal/config"
)

func TestNewLogger_FromConfig(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	logger := NewLogger(&config.Config{LogLevel: "warn", LogFormat: "text"})
	assert.False(t, logger.Enabled(t.Context(), slog.LevelInfo))
	assert.True(t, logger.Enabled(t.Context(), slog.LevelWarn))
}

func TestNewLogger_SetsDefault(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	NewLogger(&config.Config{LogLevel: "error", LogFormat: "json"})
	assert.False(t, slog.Default().Enabled(t.Context(), slog.LevelWarn))
	assert.True(t, slog.Default().Enabled(t.Context(), slog.LevelError))
}

func TestMetrics_ForTesting(t *testing.T) {
	m := NewMetricsForTesting()
	assert.Len(t, m.collectors(), 14)
	m.RowsRejected.WithLabelValues("date").Inc()
	m.Refreshes.WithLabelValues("success").Inc()
}
