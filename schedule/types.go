/*
Package schedule provides the availability and scheduling engine.

PURPOSE:
  This package contains the pure, date-driven algorithms behind the staffing
  board: computing how many hours an employee is available, assigned, or off
  in a visible period, detecting overlaps between assignments and time off,
  and laying assignments out onto a calendar grid.

KEY CONCEPTS IN THIS FILE (types.go):
  - Employee: An allocatable person with a daily hour budget
  - Assignment: A tagged variant binding an employee to a project, course,
    or time-off period for a date range
  - Holiday: A company-wide non-working calendar day

DESIGN PRINCIPLES:
  1. Purity: Every operation is a deterministic function of its inputs.
     There is no wall-clock access; "now" is always injected by the caller.
  2. Precision: Hour and money amounts use decimal.Decimal to avoid
     floating-point errors.
  3. Exhaustiveness: Assignment kinds are a closed enum; kind-specific
     payloads live in dedicated structs so a mismatch is detectable.
  4. Recoverability: Malformed input (bad dates, inverted ranges) is
     excluded and reported, never silently miscounted and never fatal.

USAGE:
  window := schedule.RangeConfig{}.Resolve(schedule.GranularityMonth, anchor)
  report := schedule.AggregateHours(employee, window, holidays)
  layout := schedule.Layout(visible, window.Days(), schedule.GranularityMonth)

SEE ALSO:
  - calendar.go: Date type and calendar predicates
  - range.go:    Visible window resolution and navigation
  - hours.go:    Hour aggregation
  - grid.go:     Grid layout
*/
package schedule

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// ASSIGNMENT - Tagged variant over project / course / timeOff
// =============================================================================

// Kind discriminates the assignment variants.
type Kind string

const (
	KindProject Kind = "project"
	KindCourse  Kind = "course"
	KindTimeOff Kind = "timeOff"
)

// Valid reports whether k is one of the known assignment kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindProject, KindCourse, KindTimeOff:
		return true
	}
	return false
}

// RateType describes how a project engagement is billed.
type RateType string

const (
	RateHourly RateType = "hourly"
	RateFixed  RateType = "fixed"
)

// TimeOffType distinguishes kinds of absence. Optional; empty means
// unspecified.
type TimeOffType string

const (
	TimeOffVacation TimeOffType = "vacation"
	TimeOffSick     TimeOffType = "sick"
	TimeOffOther    TimeOffType = "other"
)

// Assignment binds an employee to a project, course, or time-off period.
//
// Common fields are always set. Exactly one of the kind payloads is non-nil,
// matching Kind: Project for KindProject, TimeOff for KindTimeOff. Course
// assignments carry no payload beyond the common fields.
//
// Hours is the per-day allocation for project and course assignments and is
// ignored for time off: an employee on time off is fully off for every
// business day of the interval, whatever Hours says.
type Assignment struct {
	ID           string
	Kind         Kind
	From         Date
	To           Date
	Hours        int
	AssignableID string
	Notes        string

	Project *ProjectDetail
	TimeOff *TimeOffDetail
}

// ProjectDetail is the payload specific to project assignments.
type ProjectDetail struct {
	RateType   RateType
	HourlyRate decimal.Decimal
	Role       string
}

// TimeOffDetail is the payload specific to time-off assignments.
type TimeOffDetail struct {
	Type TimeOffType
}

// NewProjectAssignment builds a project assignment.
func NewProjectAssignment(id string, from, to Date, hours int, assignableID string, detail ProjectDetail) Assignment {
	return Assignment{
		ID:           id,
		Kind:         KindProject,
		From:         from,
		To:           to,
		Hours:        hours,
		AssignableID: assignableID,
		Project:      &detail,
	}
}

// NewCourseAssignment builds a course assignment.
func NewCourseAssignment(id string, from, to Date, hours int, assignableID string) Assignment {
	return Assignment{
		ID:           id,
		Kind:         KindCourse,
		From:         from,
		To:           to,
		Hours:        hours,
		AssignableID: assignableID,
	}
}

// NewTimeOffAssignment builds a time-off assignment.
func NewTimeOffAssignment(id string, from, to Date, offType TimeOffType) Assignment {
	return Assignment{
		ID:      id,
		Kind:    KindTimeOff,
		From:    from,
		To:      to,
		TimeOff: &TimeOffDetail{Type: offType},
	}
}

// Interval returns the assignment's inclusive date range.
func (a Assignment) Interval() DateRange {
	return DateRange{Start: a.From, End: a.To}
}

// Validate checks the structural invariants of an assignment. It returns an
// *InvalidAssignmentError describing the first violation, or nil.
//
// The engine calls this before counting an assignment; callers creating
// assignments should call it too so corruption is caught at the boundary.
func (a Assignment) Validate() error {
	switch {
	case !a.Kind.Valid():
		return &InvalidAssignmentError{AssignmentID: a.ID, Reason: "unknown kind " + string(a.Kind), Err: ErrUnknownKind}
	case a.From.IsZero() || a.To.IsZero():
		return &InvalidAssignmentError{AssignmentID: a.ID, Reason: "missing from/to date", Err: ErrInvalidDate}
	case a.To.Before(a.From):
		return &InvalidAssignmentError{AssignmentID: a.ID, Reason: "toDate before fromDate", Err: ErrInvertedRange}
	case a.Kind == KindProject && a.Project == nil:
		return &InvalidAssignmentError{AssignmentID: a.ID, Reason: "project assignment without project detail", Err: ErrKindMismatch}
	case a.Kind != KindProject && a.Project != nil:
		return &InvalidAssignmentError{AssignmentID: a.ID, Reason: "project detail on non-project assignment", Err: ErrKindMismatch}
	case a.Kind == KindTimeOff && a.TimeOff == nil:
		return &InvalidAssignmentError{AssignmentID: a.ID, Reason: "time-off assignment without time-off detail", Err: ErrKindMismatch}
	case a.Kind != KindTimeOff && a.TimeOff != nil:
		return &InvalidAssignmentError{AssignmentID: a.ID, Reason: "time-off detail on non-time-off assignment", Err: ErrKindMismatch}
	case a.Kind != KindTimeOff && a.Hours < 0:
		return &InvalidAssignmentError{AssignmentID: a.ID, Reason: "negative hours", Err: ErrInvalidHours}
	}
	return nil
}

// =============================================================================
// EMPLOYEE
// =============================================================================

// Employee is an allocatable person. DailyHours is the number of hours worked
// per business day; Assignments is the ordered collection supplied by the
// data layer, treated as an immutable snapshot for one engine invocation.
type Employee struct {
	ID          string
	Name        string
	DailyHours  int
	Assignments []Assignment
}

// AssignmentsOfKind returns the employee's assignments of one kind, in input
// order.
func (e Employee) AssignmentsOfKind(k Kind) []Assignment {
	var out []Assignment
	for _, a := range e.Assignments {
		if a.Kind == k {
			out = append(out, a)
		}
	}
	return out
}

// =============================================================================
// HOLIDAY
// =============================================================================

// Holiday is a company-wide non-working day.
type Holiday struct {
	ID   string
	Date Date
	Name string
}
