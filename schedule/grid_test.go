package schedule_test

import (
	"testing"

	"github.com/warp/staffing-engine/schedule"
)

func monthDays() []schedule.Date {
	return rng("2024-03-01", "2024-03-31").Days()
}

func placementByID(t *testing.T, l schedule.GridLayout, id string) schedule.Placement {
	t.Helper()
	for _, p := range l.Placements {
		if p.AssignmentID == id {
			return p
		}
	}
	t.Fatalf("placement %s not found in %+v", id, l.Placements)
	return schedule.Placement{}
}

func TestLayout_SingleDaySpansExactlyOneColumn(t *testing.T) {
	// Property: fromDate == toDate occupies exactly one grid column.
	a := schedule.NewProjectAssignment("a-1", d("2024-03-06"), d("2024-03-06"), 8, "p-1", schedule.ProjectDetail{})

	l := schedule.Layout([]schedule.Assignment{a}, monthDays(), schedule.GranularityMonth)

	p := placementByID(t, l, "a-1")
	if p.ColumnStart != 6 || p.ColumnEnd != 7 {
		t.Errorf("expected columns [6,7), got [%d,%d)", p.ColumnStart, p.ColumnEnd)
	}
	if p.Span() != 1 {
		t.Errorf("single-day assignment must span 1 column, got %d", p.Span())
	}
	if !p.Compact {
		t.Error("a 1-column month bar renders icon-only")
	}
	if p.Hidden {
		t.Error("month granularity never hides bars")
	}
}

func TestLayout_ColumnsAreOneBasedDayIndices(t *testing.T) {
	a := schedule.NewProjectAssignment("a-1", d("2024-03-04"), d("2024-03-08"), 8, "p-1", schedule.ProjectDetail{})

	l := schedule.Layout([]schedule.Assignment{a}, monthDays(), schedule.GranularityMonth)

	p := placementByID(t, l, "a-1")
	if p.ColumnStart != 4 || p.ColumnEnd != 9 {
		t.Errorf("expected columns [4,9), got [%d,%d)", p.ColumnStart, p.ColumnEnd)
	}
	if l.TotalColumns != 31 {
		t.Errorf("expected 31 columns for March, got %d", l.TotalColumns)
	}
}

func TestLayout_BarsClipToWindowEdges(t *testing.T) {
	// GIVEN: An assignment starting before and ending after the window
	// THEN: Columns clip to 1 and TotalColumns+1, with clip markers set

	a := schedule.NewProjectAssignment("a-1", d("2024-02-15"), d("2024-04-15"), 8, "p-1", schedule.ProjectDetail{})

	l := schedule.Layout([]schedule.Assignment{a}, monthDays(), schedule.GranularityMonth)

	p := placementByID(t, l, "a-1")
	if p.ColumnStart != 1 || p.ColumnEnd != 32 {
		t.Errorf("expected full-width [1,32), got [%d,%d)", p.ColumnStart, p.ColumnEnd)
	}
	if !p.ClippedStart || !p.ClippedEnd {
		t.Error("clipping must be marked on both ends")
	}
}

func TestLayout_TimeOffSharesRowOneAboveStackedBars(t *testing.T) {
	// GIVEN: A mix of time off, two projects, and a course
	// THEN: Time off sits on row 1; the rest stack one per row in input order

	assignments := []schedule.Assignment{
		schedule.NewProjectAssignment("proj-1", d("2024-03-04"), d("2024-03-08"), 8, "p-1", schedule.ProjectDetail{}),
		schedule.NewTimeOffAssignment("off-1", d("2024-03-11"), d("2024-03-12"), schedule.TimeOffVacation),
		schedule.NewProjectAssignment("proj-2", d("2024-03-11"), d("2024-03-15"), 8, "p-2", schedule.ProjectDetail{}),
		schedule.NewCourseAssignment("course-1", d("2024-03-18"), d("2024-03-19"), 4, "c-1"),
	}

	l := schedule.Layout(assignments, monthDays(), schedule.GranularityMonth)

	if placementByID(t, l, "off-1").Row != 1 {
		t.Error("time off belongs on row 1")
	}
	if placementByID(t, l, "proj-1").Row != 2 ||
		placementByID(t, l, "proj-2").Row != 3 ||
		placementByID(t, l, "course-1").Row != 4 {
		t.Errorf("non-time-off bars must stack in input order: %+v", l.Placements)
	}
	if l.Rows != 4 {
		t.Errorf("expected 4 rows (1 shared + 3 stacked), got %d", l.Rows)
	}
}

func TestLayout_TimeOffDrawsFirst(t *testing.T) {
	// Time off sorts to the front of the placement list regardless of input
	// order, so it draws topmost.
	assignments := []schedule.Assignment{
		schedule.NewProjectAssignment("proj-1", d("2024-03-04"), d("2024-03-08"), 8, "p-1", schedule.ProjectDetail{}),
		schedule.NewTimeOffAssignment("off-1", d("2024-03-06"), d("2024-03-07"), schedule.TimeOffVacation),
	}

	l := schedule.Layout(assignments, monthDays(), schedule.GranularityMonth)

	if l.Placements[0].AssignmentID != "off-1" {
		t.Errorf("time off must be first, got %s", l.Placements[0].AssignmentID)
	}
}

func TestLayout_SingleKindSharesOneRow(t *testing.T) {
	// Only projects visible: all bars share row 1 to collapse vertical space.
	assignments := []schedule.Assignment{
		schedule.NewProjectAssignment("proj-1", d("2024-03-04"), d("2024-03-08"), 8, "p-1", schedule.ProjectDetail{}),
		schedule.NewProjectAssignment("proj-2", d("2024-03-11"), d("2024-03-15"), 8, "p-2", schedule.ProjectDetail{}),
	}

	l := schedule.Layout(assignments, monthDays(), schedule.GranularityMonth)

	for _, p := range l.Placements {
		if p.Row != 1 {
			t.Errorf("single-kind set shares row 1, got row %d for %s", p.Row, p.AssignmentID)
		}
	}
	if l.Rows != 1 {
		t.Errorf("expected 1 row, got %d", l.Rows)
	}
}

func TestLayout_QuarterUsesWeekBucketColumns(t *testing.T) {
	// GIVEN: A 13-week quarter window starting Sunday 2024-03-03
	// THEN: Columns are week buckets, and short bars compact/hide

	window := schedule.RangeConfig{}.Resolve(schedule.GranularityQuarter, d("2024-03-06"))
	days := window.Days()

	assignments := []schedule.Assignment{
		// Weeks 1-5 (2024-03-04 is in bucket 1).
		schedule.NewProjectAssignment("long", d("2024-03-04"), d("2024-04-05"), 8, "p-1", schedule.ProjectDetail{}),
		// Within a single week bucket.
		schedule.NewCourseAssignment("short", d("2024-03-11"), d("2024-03-13"), 4, "c-1"),
	}

	l := schedule.Layout(assignments, days, schedule.GranularityQuarter)

	if l.TotalColumns != 13 {
		t.Fatalf("expected 13 bucket columns, got %d", l.TotalColumns)
	}

	long := placementByID(t, l, "long")
	if long.ColumnStart != 1 || long.ColumnEnd != 6 {
		t.Errorf("expected long bar [1,6), got [%d,%d)", long.ColumnStart, long.ColumnEnd)
	}
	if long.Compact || long.Hidden {
		t.Error("a 5-bucket bar shows full detail")
	}

	short := placementByID(t, l, "short")
	if short.Span() != 1 {
		t.Errorf("expected 1-bucket span, got %d", short.Span())
	}
	if !short.Compact || !short.Hidden {
		t.Error("a 1-bucket quarter bar is compact and hidden")
	}
}

func TestLayout_QuarterThreeBucketBarCompactButVisible(t *testing.T) {
	window := schedule.RangeConfig{}.Resolve(schedule.GranularityQuarter, d("2024-03-06"))

	a := schedule.NewProjectAssignment("mid", d("2024-03-04"), d("2024-03-20"), 8, "p-1", schedule.ProjectDetail{})
	l := schedule.Layout([]schedule.Assignment{a}, window.Days(), schedule.GranularityQuarter)

	p := placementByID(t, l, "mid")
	if p.Span() != 3 {
		t.Fatalf("expected 3-bucket span, got %d", p.Span())
	}
	if !p.Compact {
		t.Error("a 3-bucket quarter bar drops detail text")
	}
	if p.Hidden {
		t.Error("a 3-bucket quarter bar still shows its icon")
	}
}

func TestLayout_EmptyInputs(t *testing.T) {
	if l := schedule.Layout(nil, monthDays(), schedule.GranularityMonth); l.Rows != 0 || len(l.Placements) != 0 {
		t.Errorf("no assignments should mean an empty layout, got %+v", l)
	}
	if l := schedule.Layout(nil, nil, schedule.GranularityMonth); l.TotalColumns != 0 {
		t.Errorf("no days should mean a zero grid, got %+v", l)
	}
}

func TestLayout_AssignmentOutsideWindowExcluded(t *testing.T) {
	a := schedule.NewProjectAssignment("a-1", d("2024-05-01"), d("2024-05-03"), 8, "p-1", schedule.ProjectDetail{})

	l := schedule.Layout([]schedule.Assignment{a}, monthDays(), schedule.GranularityMonth)
	if len(l.Placements) != 0 {
		t.Errorf("disjoint assignment must not be placed, got %+v", l.Placements)
	}
}
