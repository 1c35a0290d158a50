/*
errors.go - Centralized error types for the scheduling engine

PURPOSE:
  All engine error types in one place. Every failure in this layer is local
  and recoverable: a malformed assignment is excluded and reported, never
  fatal to the surrounding application.

ERROR CATEGORIES:
  1. Input errors - Unparseable dates, inverted ranges, kind mismatches
  2. Lookup errors - Missing employees/assignments/holidays (store layer)

USAGE:
  Callers branch with errors.Is:

    if errors.Is(err, schedule.ErrInvertedRange) {
        // flag upstream data corruption
    }

SEE ALSO:
  - types.go: Assignment.Validate produces InvalidAssignmentError
  - hours.go: Skipped assignments carry these errors in the report
*/
package schedule

import (
	"errors"
	"fmt"
)

// =============================================================================
// SENTINEL ERRORS - Use with errors.Is()
// =============================================================================

var (
	// ErrInvalidDate is returned when a date is missing or unparseable.
	ErrInvalidDate = errors.New("invalid date")

	// ErrInvertedRange is returned when an assignment's toDate precedes its
	// fromDate. This indicates upstream data corruption the engine does not
	// attempt to repair.
	ErrInvertedRange = errors.New("inverted range: toDate before fromDate")

	// ErrUnknownKind is returned for an assignment kind outside
	// project/course/timeOff.
	ErrUnknownKind = errors.New("unknown assignment kind")

	// ErrKindMismatch is returned when an assignment's kind payload does not
	// match its Kind tag.
	ErrKindMismatch = errors.New("assignment kind/payload mismatch")

	// ErrInvalidHours is returned for a negative per-day hour allocation.
	ErrInvalidHours = errors.New("invalid hours")

	// ErrUnknownGranularity is returned for a granularity outside
	// week/month/quarter.
	ErrUnknownGranularity = errors.New("unknown granularity")

	// ErrEmployeeNotFound is returned when a referenced employee doesn't exist.
	ErrEmployeeNotFound = errors.New("employee not found")

	// ErrAssignmentNotFound is returned when a referenced assignment doesn't exist.
	ErrAssignmentNotFound = errors.New("assignment not found")

	// ErrHolidayNotFound is returned when a referenced holiday doesn't exist.
	ErrHolidayNotFound = errors.New("holiday not found")
)

// =============================================================================
// STRUCTURED ERRORS - Carry additional context
// =============================================================================

// DateParseError reports the offending input alongside the parse failure.
type DateParseError struct {
	Input string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("invalid date %q: %v", e.Input, e.Err)
}

func (e *DateParseError) Unwrap() error { return ErrInvalidDate }

// InvalidAssignmentError describes why an assignment was excluded from
// aggregation or layout.
type InvalidAssignmentError struct {
	AssignmentID string
	Reason       string
	Err          error
}

func (e *InvalidAssignmentError) Error() string {
	return fmt.Sprintf("invalid assignment %s: %s", e.AssignmentID, e.Reason)
}

func (e *InvalidAssignmentError) Unwrap() error { return e.Err }

// =============================================================================
// ERROR HELPERS
// =============================================================================

// IsClientError returns true if the error is due to invalid caller input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidDate) ||
		errors.Is(err, ErrInvertedRange) ||
		errors.Is(err, ErrUnknownKind) ||
		errors.Is(err, ErrKindMismatch) ||
		errors.Is(err, ErrInvalidHours) ||
		errors.Is(err, ErrUnknownGranularity)
}

// IsNotFound returns true if the error indicates a missing record.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrEmployeeNotFound) ||
		errors.Is(err, ErrAssignmentNotFound) ||
		errors.Is(err, ErrHolidayNotFound)
}
