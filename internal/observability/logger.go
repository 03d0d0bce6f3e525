package observability

import (
	"log/slog"

	sharedobs "github.com/couchcryptid/storm-data-shared/observability"

	"github.com/couchcryptid/incident-data-etl/internal/config"
)

// NewLogger builds the service logger from LOG_LEVEL and LOG_FORMAT, writes to
// stdout and installs it as the slog default.
func NewLogger(cfg *config.Config) *slog.Logger {
	logger := sharedobs.NewLogger(cfg.LogLevel, cfg.LogFormat).With("service", "incident-etl")
	slog.SetDefault(logger)
	return logger
}
