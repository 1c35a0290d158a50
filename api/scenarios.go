/*
scenarios.go - Demo scenario loaders for testing and demonstrations

PURPOSE:

	Provides pre-built scenarios that populate the database with realistic
	data for testing and demos. Each scenario creates employees, assignments,
	and holidays that demonstrate specific board features.

AVAILABLE SCENARIOS:

	small-team:      Three employees, mixed projects and courses
	vacation-season: Heavy time off with project overlap conflicts
	crunch-quarter:  Over-allocated quarter with hourly billing

HOW SCENARIOS WORK:
 1. Reset database (clear all data)
 2. Create employees
 3. Add assignments per employee
 4. Register holidays

NOTE:

	Scenarios reset the database. Only use in development/demo environments.

SEE ALSO:
  - handlers.go: Shared response helpers
  - server.go: Scenario routes
*/
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/warp/staffing-engine/schedule"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

// ScenarioDTO describes one loadable demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects the scenario to load.
type LoadScenarioRequest struct {
	ScenarioID string `json:"scenario_id"`
}

var scenarios = []ScenarioDTO{
	{
		ID:          "small-team",
		Name:        "Small Team",
		Description: "Three employees with mixed project and course assignments",
	},
	{
		ID:          "vacation-season",
		Name:        "Vacation Season",
		Description: "Heavy time off with projects booked over vacations",
	},
	{
		ID:          "crunch-quarter",
		Name:        "Crunch Quarter",
		Description: "Over-allocated employees with hourly billing",
	},
}

// ListScenarios returns the available scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, scenarios)
}

// LoadScenario resets the database and loads one scenario's data.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	rs, ok := h.Store.(Resetter)
	if !ok {
		writeError(w, http.StatusNotImplemented, "Store does not support scenarios", nil)
		return
	}
	if err := rs.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}

	var load func(context.Context, schedule.Store) error
	switch req.ScenarioID {
	case "small-team":
		load = loadSmallTeam
	case "vacation-season":
		load = loadVacationSeason
	case "crunch-quarter":
		load = loadCrunchQuarter
	default:
		writeError(w, http.StatusBadRequest, "Unknown scenario", nil)
		return
	}
	if err := load(r.Context(), h.Store); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}

	h.Log.Info("scenario loaded", zap.String("scenario", req.ScenarioID))
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// SCENARIO LOADERS
// =============================================================================

func loadSmallTeam(ctx context.Context, store schedule.Store) error {
	employees := []schedule.Employee{
		{ID: "emp-kara", Name: "Kara Silva", DailyHours: 8},
		{ID: "emp-tom", Name: "Tom Reyes", DailyHours: 8},
		{ID: "emp-mina", Name: "Mina Okafor", DailyHours: 6},
	}
	for _, e := range employees {
		if err := store.SaveEmployee(ctx, e); err != nil {
			return err
		}
	}

	// Hours are per business day and stay within each employee's daily budget.
	assignments := map[string][]schedule.Assignment{
		"emp-kara": {
			schedule.NewProjectAssignment("sc-1", day("2024-03-04"), day("2024-03-22"), 6, "proj-atlas",
				schedule.ProjectDetail{RateType: schedule.RateFixed, Role: "backend"}),
			schedule.NewCourseAssignment("sc-2", day("2024-03-25"), day("2024-03-27"), 6, "course-go"),
		},
		"emp-tom": {
			schedule.NewProjectAssignment("sc-3", day("2024-03-11"), day("2024-03-29"), 8, "proj-atlas",
				schedule.ProjectDetail{RateType: schedule.RateFixed, Role: "frontend"}),
		},
		"emp-mina": {
			schedule.NewCourseAssignment("sc-4", day("2024-03-04"), day("2024-03-08"), 6, "course-sql"),
			schedule.NewProjectAssignment("sc-5", day("2024-03-18"), day("2024-03-29"), 4, "proj-beacon",
				schedule.ProjectDetail{RateType: schedule.RateFixed, Role: "data"}),
		},
	}
	if err := saveAll(ctx, store, assignments); err != nil {
		return err
	}

	return store.SaveHoliday(ctx, schedule.Holiday{ID: "hol-gf", Date: day("2024-03-29"), Name: "Good Friday"})
}

func loadVacationSeason(ctx context.Context, store schedule.Store) error {
	employees := []schedule.Employee{
		{ID: "emp-kara", Name: "Kara Silva", DailyHours: 8},
		{ID: "emp-tom", Name: "Tom Reyes", DailyHours: 8},
	}
	for _, e := range employees {
		if err := store.SaveEmployee(ctx, e); err != nil {
			return err
		}
	}

	assignments := map[string][]schedule.Assignment{
		"emp-kara": {
			schedule.NewTimeOffAssignment("sc-1", day("2024-07-01"), day("2024-07-12"), schedule.TimeOffVacation),
			// booked over the vacation: shows up as a conflict warning
			schedule.NewProjectAssignment("sc-2", day("2024-07-08"), day("2024-07-26"), 8, "proj-atlas",
				schedule.ProjectDetail{RateType: schedule.RateFixed, Role: "backend"}),
		},
		"emp-tom": {
			schedule.NewTimeOffAssignment("sc-3", day("2024-07-15"), day("2024-07-19"), schedule.TimeOffVacation),
			schedule.NewTimeOffAssignment("sc-4", day("2024-07-29"), day("2024-07-31"), schedule.TimeOffSick),
		},
	}
	if err := saveAll(ctx, store, assignments); err != nil {
		return err
	}

	return store.SaveHoliday(ctx, schedule.Holiday{ID: "hol-4j", Date: day("2024-07-04"), Name: "Independence Day"})
}

func loadCrunchQuarter(ctx context.Context, store schedule.Store) error {
	if err := store.SaveEmployee(ctx, schedule.Employee{ID: "emp-kara", Name: "Kara Silva", DailyHours: 8}); err != nil {
		return err
	}

	// Two full-day-rate projects overlap for six weeks, so the report runs
	// negative on purpose.
	assignments := map[string][]schedule.Assignment{
		"emp-kara": {
			schedule.NewProjectAssignment("sc-1", day("2024-01-08"), day("2024-03-29"), 8, "proj-atlas",
				schedule.ProjectDetail{RateType: schedule.RateHourly, HourlyRate: decimal.RequireFromString("95.50"), Role: "backend"}),
			schedule.NewProjectAssignment("sc-2", day("2024-02-05"), day("2024-03-15"), 6, "proj-beacon",
				schedule.ProjectDetail{RateType: schedule.RateHourly, HourlyRate: decimal.RequireFromString("110.00"), Role: "consulting"}),
		},
	}
	return saveAll(ctx, store, assignments)
}

func saveAll(ctx context.Context, store schedule.Store, byEmployee map[string][]schedule.Assignment) error {
	for employeeID, list := range byEmployee {
		for _, a := range list {
			if err := store.SaveAssignment(ctx, employeeID, a); err != nil {
				return err
			}
		}
	}
	return nil
}

func day(s string) schedule.Date { return schedule.MustParseDate(s) }
