package flightdata

import (
	"errors"
	"fmt"
)

// Error categories. Every error returned by Load or Read matches exactly one
// of these with errors.Is.
var (
	// ErrDataAccess reports a file that is missing or cannot be read.
	ErrDataAccess = errors.New("telemetry data access failed")
	// ErrSchema reports a file whose contents do not form a telemetry table.
	ErrSchema = errors.New("telemetry schema mismatch")
)

// MissingColumnError names a required column absent from the header.
type MissingColumnError struct {
	Column string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("missing required column %q", e.Column)
}

// Is reports ErrSchema membership.
func (e *MissingColumnError) Is(target error) bool {
	return target == ErrSchema
}

// ParseError reports a required cell that is not a number.
// Row is 1-based and counts data rows only.
type ParseError struct {
	Row    int
	Column string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("row %d column %q: invalid number %q: %v", e.Row, e.Column, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Is reports ErrSchema membership.
func (e *ParseError) Is(target error) bool {
	return target == ErrSchema
}
