/*
hours.go - Period hour aggregation

PURPOSE:
  Combines workday counts with an employee's daily-hours rate and assignment
  list into the period figures the board displays: total working hours,
  assigned hours, time-off hours, and what remains assignable.

CALCULATION:
  1. timeOffDays   = union of business days covered by time-off assignments
                     intersecting the period
  2. workdays      = business days in the period net of timeOffDays
  3. offHours      = |timeOffDays| x dailyHours
  4. monthlyHours  = (workdays + |timeOffDays|) x dailyHours
                     (the gross budget: weekends/holidays excluded, time off
                     still part of the budget)
  5. assignedHours = sum over non-time-off assignments of overlapping
                     business days (clipped to the period, net of time off)
                     x per-day hours
  6. assignable    = monthlyHours - assignedHours - offHours

  The identity monthlyHours = assignedHours + offHours + assignableHours
  holds exactly by construction. Assignable may be negative: over-allocation
  is a reportable condition, never clamped.

ERROR HANDLING:
  Assignments failing Validate are excluded from every figure and listed in
  the report's Skipped slice, so nothing is silently miscounted.

SEE ALSO:
  - workdays.go: CountWorkdays / ExpandTimeOffDays
  - overlap.go:  window filtering and conflict detection
*/
package schedule

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// HOURS REPORT
// =============================================================================

// HoursReport is the aggregated hour summary for one employee over one
// period. All amounts are decimal so the budget identity holds exactly.
type HoursReport struct {
	EmployeeID string
	Period     DateRange

	// MonthlyHours is the gross working-hour budget for the period:
	// dailyHours for every business day, whether or not the employee is off.
	MonthlyHours decimal.Decimal

	// MonthlyAssignedHours is the total allocated to project and course
	// assignments, prorated to overlapping business days.
	MonthlyAssignedHours decimal.Decimal

	// MonthlyOffHours is the budget consumed by time off.
	MonthlyOffHours decimal.Decimal

	// AssignableHours is what remains. Negative means over-allocated; the
	// presentation layer flags it.
	AssignableHours decimal.Decimal

	// Workdays is the business-day count net of time off; TimeOffDayCount
	// the number of business days the employee is off.
	Workdays        int
	TimeOffDayCount int

	// Skipped lists assignments excluded for malformed input.
	Skipped []SkippedAssignment
}

// SkippedAssignment records an excluded assignment and why.
type SkippedAssignment struct {
	AssignmentID string
	Err          error
}

// OverAllocated reports whether more hours are assigned than the period
// allows.
func (r HoursReport) OverAllocated() bool {
	return r.AssignableHours.IsNegative()
}

// =============================================================================
// AGGREGATION
// =============================================================================

// AggregateHours computes the hour report for one employee over a period.
// The inputs are treated as an immutable snapshot; the call is pure and
// deterministic. A zero DailyHours yields zeros throughout, and an invalid
// period degrades to the empty report rather than failing.
func AggregateHours(e Employee, period DateRange, holidays HolidaySet) HoursReport {
	report := HoursReport{EmployeeID: e.ID, Period: period}
	if !period.IsValid() {
		return report
	}

	daily := decimal.NewFromInt(int64(e.DailyHours))

	valid, skipped := partitionValid(e.Assignments)
	report.Skipped = skipped

	offDays := timeOffDaySetOf(valid, holidays, period)
	report.TimeOffDayCount = offDays.Len()
	report.Workdays = CountWorkdays(period.Start, period.End, holidays, offDays)

	report.MonthlyOffHours = daily.Mul(decimal.NewFromInt(int64(report.TimeOffDayCount)))
	report.MonthlyHours = daily.Mul(decimal.NewFromInt(int64(report.Workdays + report.TimeOffDayCount)))

	assigned := decimal.Zero
	for _, a := range valid {
		assigned = assigned.Add(assignedHours(a, period, holidays, offDays))
	}
	report.MonthlyAssignedHours = assigned

	report.AssignableHours = report.MonthlyHours.
		Sub(report.MonthlyAssignedHours).
		Sub(report.MonthlyOffHours)

	return report
}

// assignedHours prorates one non-time-off assignment to the business days it
// overlaps within the period, net of the employee's time-off days. An
// assignment that misses the period contributes zero.
func assignedHours(a Assignment, period DateRange, holidays HolidaySet, offDays DateSet) decimal.Decimal {
	if a.Kind == KindTimeOff {
		return decimal.Zero
	}
	clipped, ok := a.Interval().Intersect(period)
	if !ok {
		return decimal.Zero
	}
	days := CountWorkdays(clipped.Start, clipped.End, holidays, offDays)
	return decimal.NewFromInt(int64(a.Hours)).Mul(decimal.NewFromInt(int64(days)))
}

func partitionValid(assignments []Assignment) (valid []Assignment, skipped []SkippedAssignment) {
	for _, a := range assignments {
		if err := a.Validate(); err != nil {
			skipped = append(skipped, SkippedAssignment{AssignmentID: a.ID, Err: err})
			continue
		}
		valid = append(valid, a)
	}
	return valid, skipped
}

func timeOffDaySetOf(assignments []Assignment, holidays HolidaySet, period DateRange) DateSet {
	set := make(DateSet)
	for _, a := range assignments {
		if a.Kind != KindTimeOff {
			continue
		}
		for _, d := range ExpandTimeOffDays(a, holidays, period) {
			set.Add(d)
		}
	}
	return set
}

// =============================================================================
// COST REPORT - Billing view over project assignments
// =============================================================================

// CostLine prices one hourly-rated project assignment for the period.
type CostLine struct {
	AssignmentID  string
	AssignableID  string
	Role          string
	AssignedHours decimal.Decimal
	HourlyRate    decimal.Decimal
	Cost          decimal.Decimal
}

// CostReport totals the period cost of an employee's hourly project work.
// Fixed-rate and unrated assignments are left out of the lines.
type CostReport struct {
	EmployeeID string
	Period     DateRange
	Lines      []CostLine
	Total      decimal.Decimal
}

// ProjectCosts prices the employee's hourly project assignments over the
// period, using the same proration as AggregateHours.
func ProjectCosts(e Employee, period DateRange, holidays HolidaySet) CostReport {
	report := CostReport{EmployeeID: e.ID, Period: period, Total: decimal.Zero}
	if !period.IsValid() {
		return report
	}

	valid, _ := partitionValid(e.Assignments)
	offDays := timeOffDaySetOf(valid, holidays, period)

	for _, a := range valid {
		if a.Kind != KindProject || a.Project.RateType != RateHourly {
			continue
		}
		hours := assignedHours(a, period, holidays, offDays)
		if hours.IsZero() {
			continue
		}
		cost := hours.Mul(a.Project.HourlyRate)
		report.Lines = append(report.Lines, CostLine{
			AssignmentID:  a.ID,
			AssignableID:  a.AssignableID,
			Role:          a.Project.Role,
			AssignedHours: hours,
			HourlyRate:    a.Project.HourlyRate,
			Cost:          cost,
		})
		report.Total = report.Total.Add(cost)
	}
	return report
}
