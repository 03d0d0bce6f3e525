package domain

import "errors"

var (
	// ErrSourceUnavailable marks a failed fetch of the raw export.
	ErrSourceUnavailable = errors.New("source unavailable")

	// ErrConfigurationMissing marks a refresh attempted without a source URL.
	ErrConfigurationMissing = errors.New("configuration missing")
)
