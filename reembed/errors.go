package reembed

import "errors"

var (
	// ErrMissingProject is returned when no project ID was given
	ErrMissingProject = errors.New("project id is required")

	// ErrInvalidBatchSize is returned when Config.BatchSize is <= 0
	ErrInvalidBatchSize = errors.New("batch size must be greater than 0")

	// ErrInvalidReportInterval is returned when Config.ReportInterval is <= 0
	ErrInvalidReportInterval = errors.New("report interval must be greater than 0")

	// ErrInvalidMaxRetries is returned when Config.MaxRetries is <= 0
	ErrInvalidMaxRetries = errors.New("max retries must be greater than 0")

	// ErrInvalidRetryDelay is returned when Config.RetryDelay is negative
	ErrInvalidRetryDelay = errors.New("retry delay must not be negative")
)
