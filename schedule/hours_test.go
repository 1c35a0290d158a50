package schedule_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/warp/staffing-engine/schedule"
)

func march2024() schedule.DateRange {
	return rng("2024-03-01", "2024-03-31")
}

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func checkIdentity(t *testing.T, r schedule.HoursReport) {
	t.Helper()
	sum := r.MonthlyAssignedHours.Add(r.MonthlyOffHours).Add(r.AssignableHours)
	if !r.MonthlyHours.Equal(sum) {
		t.Errorf("budget identity broken: monthly %v != assigned %v + off %v + assignable %v",
			r.MonthlyHours, r.MonthlyAssignedHours, r.MonthlyOffHours, r.AssignableHours)
	}
}

func TestAggregateHours_SingleProjectWeek(t *testing.T) {
	// GIVEN: dailyHours=8, project 2024-03-04..08 at 8h/day, no holidays
	// WHEN: Aggregating over March 2024 (21 business days)
	// THEN: assigned=40, off=0, monthly=168, assignable=128

	emp := schedule.Employee{
		ID: "emp-1", Name: "Ada", DailyHours: 8,
		Assignments: []schedule.Assignment{
			schedule.NewProjectAssignment("a-1", d("2024-03-04"), d("2024-03-08"), 8, "p-1", schedule.ProjectDetail{Role: "engineer"}),
		},
	}

	r := schedule.AggregateHours(emp, march2024(), nil)

	if !r.MonthlyAssignedHours.Equal(dec(40)) {
		t.Errorf("expected 40 assigned hours, got %v", r.MonthlyAssignedHours)
	}
	if !r.MonthlyOffHours.Equal(dec(0)) {
		t.Errorf("expected 0 off hours, got %v", r.MonthlyOffHours)
	}
	if !r.MonthlyHours.Equal(dec(168)) {
		t.Errorf("expected 168 monthly hours, got %v", r.MonthlyHours)
	}
	if !r.AssignableHours.Equal(dec(128)) {
		t.Errorf("expected 128 assignable hours, got %v", r.AssignableHours)
	}
	if r.Workdays != 21 {
		t.Errorf("expected 21 workdays, got %d", r.Workdays)
	}
	checkIdentity(t, r)
}

func TestAggregateHours_TimeOffConsumesBudget(t *testing.T) {
	// GIVEN: Same employee plus time off Mon 03-11 .. Tue 03-12
	// THEN: timeOffDayCount=2, off=16, and the two days leave the workday
	//       count used for assignable hours

	emp := schedule.Employee{
		ID: "emp-1", Name: "Ada", DailyHours: 8,
		Assignments: []schedule.Assignment{
			schedule.NewProjectAssignment("a-1", d("2024-03-04"), d("2024-03-08"), 8, "p-1", schedule.ProjectDetail{}),
			schedule.NewTimeOffAssignment("a-2", d("2024-03-11"), d("2024-03-12"), schedule.TimeOffVacation),
		},
	}

	r := schedule.AggregateHours(emp, march2024(), nil)

	if r.TimeOffDayCount != 2 {
		t.Errorf("expected 2 time-off days, got %d", r.TimeOffDayCount)
	}
	if !r.MonthlyOffHours.Equal(dec(16)) {
		t.Errorf("expected 16 off hours, got %v", r.MonthlyOffHours)
	}
	if r.Workdays != 19 {
		t.Errorf("expected 19 net workdays, got %d", r.Workdays)
	}
	if !r.MonthlyHours.Equal(dec(168)) {
		t.Errorf("gross budget should stay 168, got %v", r.MonthlyHours)
	}
	if !r.AssignableHours.Equal(dec(112)) {
		t.Errorf("expected 112 assignable hours, got %v", r.AssignableHours)
	}
	checkIdentity(t, r)
}

func TestAggregateHours_AssignmentOverlappingTimeOffNotDoubleCounted(t *testing.T) {
	// GIVEN: Project 03-04..03-08 and time off 03-05..03-06 inside it
	// THEN: The project is only credited for its 3 remaining business days

	emp := schedule.Employee{
		ID: "emp-1", DailyHours: 8,
		Assignments: []schedule.Assignment{
			schedule.NewProjectAssignment("a-1", d("2024-03-04"), d("2024-03-08"), 8, "p-1", schedule.ProjectDetail{}),
			schedule.NewTimeOffAssignment("a-2", d("2024-03-05"), d("2024-03-06"), schedule.TimeOffSick),
		},
	}

	r := schedule.AggregateHours(emp, march2024(), nil)

	if !r.MonthlyAssignedHours.Equal(dec(24)) {
		t.Errorf("expected 24 assigned hours (3 days x 8h), got %v", r.MonthlyAssignedHours)
	}
	checkIdentity(t, r)
}

func TestAggregateHours_PartialOverlapProratedOnly(t *testing.T) {
	// GIVEN: Assignment running 2024-02-26 .. 2024-03-01 at 4h/day
	// WHEN: Aggregating over March
	// THEN: Only Fri 03-01 counts: 4 hours, nothing from February

	emp := schedule.Employee{
		ID: "emp-1", DailyHours: 8,
		Assignments: []schedule.Assignment{
			schedule.NewCourseAssignment("a-1", d("2024-02-26"), d("2024-03-01"), 4, "c-1"),
		},
	}

	r := schedule.AggregateHours(emp, march2024(), nil)

	if !r.MonthlyAssignedHours.Equal(dec(4)) {
		t.Errorf("expected 4 assigned hours, got %v", r.MonthlyAssignedHours)
	}
	checkIdentity(t, r)
}

func TestAggregateHours_DisjointAssignmentContributesZero(t *testing.T) {
	emp := schedule.Employee{
		ID: "emp-1", DailyHours: 8,
		Assignments: []schedule.Assignment{
			schedule.NewProjectAssignment("a-1", d("2024-04-01"), d("2024-04-05"), 8, "p-1", schedule.ProjectDetail{}),
		},
	}

	r := schedule.AggregateHours(emp, march2024(), nil)
	if !r.MonthlyAssignedHours.Equal(dec(0)) {
		t.Errorf("expected 0 assigned hours, got %v", r.MonthlyAssignedHours)
	}
}

func TestAggregateHours_OverAllocationReportedNotClamped(t *testing.T) {
	// GIVEN: Two full-time projects covering every business day
	// THEN: AssignableHours goes negative and is surfaced as-is

	emp := schedule.Employee{
		ID: "emp-1", DailyHours: 8,
		Assignments: []schedule.Assignment{
			schedule.NewProjectAssignment("a-1", d("2024-03-01"), d("2024-03-31"), 8, "p-1", schedule.ProjectDetail{}),
			schedule.NewProjectAssignment("a-2", d("2024-03-01"), d("2024-03-31"), 8, "p-2", schedule.ProjectDetail{}),
		},
	}

	r := schedule.AggregateHours(emp, march2024(), nil)

	if !r.AssignableHours.Equal(dec(-168)) {
		t.Errorf("expected -168 assignable hours, got %v", r.AssignableHours)
	}
	if !r.OverAllocated() {
		t.Error("over-allocation should be flagged")
	}
	checkIdentity(t, r)
}

func TestAggregateHours_ZeroDailyHours(t *testing.T) {
	// Zero dailyHours must yield zero everywhere without division errors.
	emp := schedule.Employee{
		ID: "emp-1", DailyHours: 0,
		Assignments: []schedule.Assignment{
			schedule.NewProjectAssignment("a-1", d("2024-03-04"), d("2024-03-08"), 0, "p-1", schedule.ProjectDetail{}),
			schedule.NewTimeOffAssignment("a-2", d("2024-03-11"), d("2024-03-12"), schedule.TimeOffVacation),
		},
	}

	r := schedule.AggregateHours(emp, march2024(), nil)

	for name, v := range map[string]decimal.Decimal{
		"monthly":    r.MonthlyHours,
		"assigned":   r.MonthlyAssignedHours,
		"off":        r.MonthlyOffHours,
		"assignable": r.AssignableHours,
	} {
		if !v.IsZero() {
			t.Errorf("expected zero %s hours, got %v", name, v)
		}
	}
	checkIdentity(t, r)
}

func TestAggregateHours_EmptyInputDegradesToZero(t *testing.T) {
	r := schedule.AggregateHours(schedule.Employee{ID: "emp-1", DailyHours: 8}, march2024(), nil)

	if !r.MonthlyAssignedHours.IsZero() || !r.MonthlyOffHours.IsZero() {
		t.Error("no assignments should mean zero assigned/off hours")
	}
	if !r.MonthlyHours.Equal(dec(168)) {
		t.Errorf("budget should still be 168, got %v", r.MonthlyHours)
	}
	checkIdentity(t, r)
}

func TestAggregateHours_InvertedAssignmentSkippedAndFlagged(t *testing.T) {
	// GIVEN: An assignment with toDate before fromDate
	// THEN: It contributes 0 and appears in Skipped with ErrInvertedRange

	bad := schedule.NewProjectAssignment("a-bad", d("2024-03-08"), d("2024-03-04"), 8, "p-1", schedule.ProjectDetail{})
	emp := schedule.Employee{ID: "emp-1", DailyHours: 8, Assignments: []schedule.Assignment{bad}}

	r := schedule.AggregateHours(emp, march2024(), nil)

	if !r.MonthlyAssignedHours.IsZero() {
		t.Errorf("inverted assignment must contribute 0, got %v", r.MonthlyAssignedHours)
	}
	if len(r.Skipped) != 1 || r.Skipped[0].AssignmentID != "a-bad" {
		t.Fatalf("expected a-bad in Skipped, got %v", r.Skipped)
	}
	if !errors.Is(r.Skipped[0].Err, schedule.ErrInvertedRange) {
		t.Errorf("expected ErrInvertedRange, got %v", r.Skipped[0].Err)
	}
	checkIdentity(t, r)
}

func TestAggregateHours_HolidaysNeverAssignable(t *testing.T) {
	// A project spanning Good Friday gets no hours for the holiday.
	emp := schedule.Employee{
		ID: "emp-1", DailyHours: 8,
		Assignments: []schedule.Assignment{
			schedule.NewProjectAssignment("a-1", d("2024-03-25"), d("2024-03-29"), 8, "p-1", schedule.ProjectDetail{}),
		},
	}

	r := schedule.AggregateHours(emp, march2024(), marchHolidays())

	if !r.MonthlyAssignedHours.Equal(dec(32)) {
		t.Errorf("expected 32 assigned hours (4 days), got %v", r.MonthlyAssignedHours)
	}
	if !r.MonthlyHours.Equal(dec(160)) {
		t.Errorf("expected 160 monthly hours (20 business days), got %v", r.MonthlyHours)
	}
	checkIdentity(t, r)
}

// =============================================================================
// COST REPORT
// =============================================================================

func TestProjectCosts_HourlyProjectsOnly(t *testing.T) {
	// GIVEN: One hourly project, one fixed project, one course
	// THEN: Only the hourly project is priced

	hourly := schedule.NewProjectAssignment("a-1", d("2024-03-04"), d("2024-03-08"), 8, "p-1",
		schedule.ProjectDetail{RateType: schedule.RateHourly, HourlyRate: decimal.NewFromFloat(95.50), Role: "engineer"})
	fixed := schedule.NewProjectAssignment("a-2", d("2024-03-11"), d("2024-03-15"), 8, "p-2",
		schedule.ProjectDetail{RateType: schedule.RateFixed, Role: "consultant"})
	course := schedule.NewCourseAssignment("a-3", d("2024-03-18"), d("2024-03-19"), 8, "c-1")

	emp := schedule.Employee{ID: "emp-1", DailyHours: 8,
		Assignments: []schedule.Assignment{hourly, fixed, course}}

	costs := schedule.ProjectCosts(emp, march2024(), nil)

	if len(costs.Lines) != 1 {
		t.Fatalf("expected 1 cost line, got %d", len(costs.Lines))
	}
	line := costs.Lines[0]
	if line.AssignmentID != "a-1" || line.Role != "engineer" {
		t.Errorf("unexpected line: %+v", line)
	}
	want := decimal.NewFromFloat(95.50).Mul(dec(40)) // 40h x 95.50
	if !line.Cost.Equal(want) || !costs.Total.Equal(want) {
		t.Errorf("expected cost %v, got line %v total %v", want, line.Cost, costs.Total)
	}
}

func TestProjectCosts_TimeOffReducesBilledHours(t *testing.T) {
	hourly := schedule.NewProjectAssignment("a-1", d("2024-03-04"), d("2024-03-08"), 8, "p-1",
		schedule.ProjectDetail{RateType: schedule.RateHourly, HourlyRate: dec(100)})
	off := schedule.NewTimeOffAssignment("a-2", d("2024-03-06"), d("2024-03-06"), schedule.TimeOffSick)

	emp := schedule.Employee{ID: "emp-1", DailyHours: 8,
		Assignments: []schedule.Assignment{hourly, off}}

	costs := schedule.ProjectCosts(emp, march2024(), nil)

	if !costs.Total.Equal(dec(3200)) { // 4 days x 8h x 100
		t.Errorf("expected total 3200, got %v", costs.Total)
	}
}
