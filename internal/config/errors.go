package config

import "errors"

// Configuration validation errors.
// These errors are returned by Config.Validate() and File.Apply() and
// provide specific information about what is wrong with the configuration.
var (
	// ErrInvalidSeparator is returned when the summary separator is empty.
	ErrInvalidSeparator = errors.New("invalid separator: must not be empty")

	// ErrUnknownSortKey is returned when the sort key is not recognised.
	ErrUnknownSortKey = errors.New("unknown sort key: use insertion or fine-desc")

	// ErrUnknownPolicy is returned when the toggle policy is not recognised.
	ErrUnknownPolicy = errors.New("unknown toggle policy: use stack or toggle")

	// ErrInvalidTimezone is returned when the reference timezone cannot be loaded.
	ErrInvalidTimezone = errors.New("invalid timezone: use an IANA name or an offset like +02:00")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified. Only one output format can be used at a time.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrUnknownCategory is returned when a label or catalog entry names a
	// category code that does not exist.
	ErrUnknownCategory = errors.New("unknown category code")
)
