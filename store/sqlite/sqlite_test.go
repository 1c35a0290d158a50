package sqlite

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/warp/staffing-engine/schedule"
)

func newStore(t *testing.T) *Store {
	t.Helper()
	s, err := New(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestEmployeeRoundTrip(t *testing.T) {
	// GIVEN: A saved employee
	// WHEN: Reading it back directly and via the listing
	// THEN: Identity fields survive and the missing case is (nil, nil)
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveEmployee(ctx, schedule.Employee{ID: "emp-1", Name: "Kara Silva", DailyHours: 8}))

	got, err := s.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Kara Silva", got.Name)
	assert.Equal(t, 8, got.DailyHours)
	assert.Empty(t, got.Assignments)

	missing, err := s.GetEmployee(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSaveEmployee_UpdatesInPlace(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveEmployee(ctx, schedule.Employee{ID: "emp-1", Name: "Kara", DailyHours: 8}))
	require.NoError(t, s.SaveEmployee(ctx, schedule.Employee{ID: "emp-1", Name: "Kara Silva", DailyHours: 6}))

	got, err := s.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	assert.Equal(t, "Kara Silva", got.Name)
	assert.Equal(t, 6, got.DailyHours)

	all, err := s.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestAssignmentRoundTrip_PreservesKindPayloads(t *testing.T) {
	// GIVEN: One assignment of each kind with its payload populated
	// WHEN: Loading the employee
	// THEN: Every assignment validates and carries the exact payload back
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveEmployee(ctx, schedule.Employee{ID: "emp-1", Name: "Kara Silva", DailyHours: 8}))

	project := schedule.NewProjectAssignment("a-1",
		schedule.MustParseDate("2024-03-04"), schedule.MustParseDate("2024-03-08"),
		40, "proj-1", schedule.ProjectDetail{
			RateType:   schedule.RateHourly,
			HourlyRate: decimal.RequireFromString("95.50"),
			Role:       "backend",
		})
	project.Notes = "ramp-up week"
	course := schedule.NewCourseAssignment("a-2",
		schedule.MustParseDate("2024-03-11"), schedule.MustParseDate("2024-03-12"),
		16, "course-1")
	off := schedule.NewTimeOffAssignment("a-3",
		schedule.MustParseDate("2024-03-13"), schedule.MustParseDate("2024-03-15"),
		schedule.TimeOffSick)

	for _, a := range []schedule.Assignment{project, course, off} {
		require.NoError(t, s.SaveAssignment(ctx, "emp-1", a))
	}

	got, err := s.GetEmployee(ctx, "emp-1")
	require.NoError(t, err)
	require.Len(t, got.Assignments, 3)

	for _, a := range got.Assignments {
		assert.NoError(t, a.Validate(), "loaded assignment %s must validate", a.ID)
	}

	p := got.Assignments[0]
	assert.Equal(t, schedule.KindProject, p.Kind)
	require.NotNil(t, p.Project)
	assert.Equal(t, schedule.RateHourly, p.Project.RateType)
	assert.True(t, p.Project.HourlyRate.Equal(decimal.RequireFromString("95.50")))
	assert.Equal(t, "backend", p.Project.Role)
	assert.Equal(t, "ramp-up week", p.Notes)
	assert.Equal(t, "2024-03-04", p.From.String())

	c := got.Assignments[1]
	assert.Equal(t, schedule.KindCourse, c.Kind)
	assert.Nil(t, c.Project)
	assert.Nil(t, c.TimeOff)
	assert.Equal(t, 16, c.Hours)

	o := got.Assignments[2]
	assert.Equal(t, schedule.KindTimeOff, o.Kind)
	require.NotNil(t, o.TimeOff)
	assert.Equal(t, schedule.TimeOffSick, o.TimeOff.Type)
}

func TestDeleteEmployee_CascadesToAssignments(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveEmployee(ctx, schedule.Employee{ID: "emp-1", Name: "Kara", DailyHours: 8}))
	require.NoError(t, s.SaveAssignment(ctx, "emp-1", schedule.NewCourseAssignment("a-1",
		schedule.MustParseDate("2024-03-04"), schedule.MustParseDate("2024-03-08"), 20, "course-1")))

	require.NoError(t, s.DeleteEmployee(ctx, "emp-1"))

	err := s.DeleteAssignment(ctx, "a-1")
	assert.ErrorIs(t, err, schedule.ErrAssignmentNotFound)
}

func TestDelete_NotFoundSentinels(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	assert.ErrorIs(t, s.DeleteEmployee(ctx, "ghost"), schedule.ErrEmployeeNotFound)
	assert.ErrorIs(t, s.DeleteAssignment(ctx, "ghost"), schedule.ErrAssignmentNotFound)
	assert.ErrorIs(t, s.DeleteHoliday(ctx, "ghost"), schedule.ErrHolidayNotFound)
}

func TestHolidays_OrderedByDate(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.SaveHoliday(ctx, schedule.Holiday{ID: "h-2", Date: schedule.MustParseDate("2024-12-25"), Name: "Christmas"}))
	require.NoError(t, s.SaveHoliday(ctx, schedule.Holiday{ID: "h-1", Date: schedule.MustParseDate("2024-03-29"), Name: "Good Friday"}))

	holidays, err := s.ListHolidays(ctx)
	require.NoError(t, err)
	require.Len(t, holidays, 2)
	assert.Equal(t, "Good Friday", holidays[0].Name)
	assert.Equal(t, "Christmas", holidays[1].Name)
}

func TestReset_WipesEverything(t *testing.T) {
	s := newStore(t)
	ctx := context.Background()
	require.NoError(t, s.SaveEmployee(ctx, schedule.Employee{ID: "emp-1", Name: "Kara", DailyHours: 8}))
	require.NoError(t, s.SaveHoliday(ctx, schedule.Holiday{ID: "h-1", Date: schedule.MustParseDate("2024-03-29"), Name: "Good Friday"}))

	require.NoError(t, s.Reset(ctx))

	employees, err := s.ListEmployees(ctx)
	require.NoError(t, err)
	assert.Empty(t, employees)
	holidays, err := s.ListHolidays(ctx)
	require.NoError(t, err)
	assert.Empty(t, holidays)
}
