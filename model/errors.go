package model

import (
	"errors"
	"fmt"

	"github.com/hexforge/hexforge/diag"
)

// Sentinel errors returned by resolution operations.
var (
	// ErrNilSpec is returned when Resolve receives a nil module spec.
	ErrNilSpec = errors.New("model: nil module spec")

	// ErrValidationFailed is returned when one or more aggregates fail
	// structural validation. The accompanying ResolvedModel still carries
	// the aggregates that resolved cleanly.
	ErrValidationFailed = errors.New("model: validation failed")
)

// ValidationError reports that structural validation failed. It wraps
// ErrValidationFailed and carries the full diagnostics report.
type ValidationError struct {
	// Report holds every diagnostic recorded during the resolution pass.
	Report *diag.Report
}

// Error returns a summary of the validation failure.
func (e *ValidationError) Error() string {
	count := 0
	if e.Report != nil {
		count = len(e.Report.Errors())
	}
	if count == 1 {
		return "model: validation failed: 1 error"
	}
	return fmt.Sprintf("model: validation failed: %d errors", count)
}

// Unwrap returns ErrValidationFailed so callers can test with errors.Is.
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// IsValidationFailed reports whether err indicates structural validation
// failure.
func IsValidationFailed(err error) bool {
	return errors.Is(err, ErrValidationFailed)
}
