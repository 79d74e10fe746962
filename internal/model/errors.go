package model

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidTimestamp is returned when a briefing date and time cannot
	// be combined into an instant. Reports are not rendered in that case.
	ErrInvalidTimestamp = errors.New("invalid timestamp")

	// ErrUnknownPolicy is returned by ParseTogglePolicy for unsupported names.
	ErrUnknownPolicy = errors.New("unknown toggle policy: use 'stack' or 'toggle'")

	// ErrUnknownBriefingField is returned by ParseBriefingField for unsupported keys.
	ErrUnknownBriefingField = errors.New("unknown briefing field")
)

// TimestampError describes the date and time that failed to parse.
// It matches ErrInvalidTimestamp with errors.Is.
type TimestampError struct {
	Date string
	Time string
	Err  error
}

// Error implements the error interface.
func (e *TimestampError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: date=%q time=%q", ErrInvalidTimestamp, e.Date, e.Time)
	}
	return fmt.Sprintf("%s: date=%q time=%q: %v", ErrInvalidTimestamp, e.Date, e.Time, e.Err)
}

// Is reports whether target is ErrInvalidTimestamp.
func (e *TimestampError) Is(target error) bool {
	return target == ErrInvalidTimestamp
}

// Unwrap returns the underlying parse error.
func (e *TimestampError) Unwrap() error {
	return e.Err
}
