/*
handlers.go - HTTP API handlers for the staffing board

PURPOSE:
  Exposes the scheduling engine via REST API. Handles HTTP request/response,
  JSON serialization, and delegates to the pure engine in schedule/.

ENDPOINTS:
  Employees:
    GET    /api/employees                     List all employees
    POST   /api/employees                     Create employee
    GET    /api/employees/{id}                Get employee with assignments
    DELETE /api/employees/{id}                Remove employee
    POST   /api/employees/{id}/assignments    Add assignment (warns on time-off conflicts)
    GET    /api/employees/{id}/report         Hour report for a window
    GET    /api/employees/{id}/costs          Hourly project costs for a window

  Assignments:
    DELETE /api/assignments/{id}              Remove assignment

  Board:
    GET    /api/board                         Full board: range, lanes, placements
    GET    /api/range                         Resolve or shift a visible window

  Holidays:
    GET    /api/holidays                      List holidays
    POST   /api/holidays                      Create holiday
    DELETE /api/holidays/{id}                 Remove holiday

  Conflicts:
    POST   /api/conflicts/check               Check interval against time off

WINDOW PARAMETERS:
  Window-scoped endpoints accept ?granularity=week|month|quarter and
  ?anchor=YYYY-MM-DD. A missing or malformed anchor falls back to the
  server's current date and the response flags the fallback.

REQUEST FLOW:
  1. Parse HTTP request
  2. Validate input
  3. Call engine logic (resolver, aggregator, layout, conflicts)
  4. Serialize response
  5. Handle errors

ERROR HANDLING:
  Errors are returned as JSON with appropriate HTTP status:
  - 400: Validation errors, invalid input
  - 404: Resource not found
  - 500: Internal errors

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/warp/staffing-engine/metrics"
	"github.com/warp/staffing-engine/schedule"
)

// =============================================================================
// HANDLER CONTEXT
// =============================================================================

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store  schedule.Store
	Ranges schedule.RangeConfig
	Log    *zap.Logger

	// Now supplies the current date for anchor fallback. Overridable in tests.
	Now func() schedule.Date
}

// NewHandler creates a new handler with the given store.
func NewHandler(store schedule.Store, ranges schedule.RangeConfig, log *zap.Logger) *Handler {
	return &Handler{
		Store:  store,
		Ranges: ranges,
		Log:    log,
		Now:    func() schedule.Date { return schedule.DateOf(time.Now()) },
	}
}

// Resetter is implemented by stores that support a destructive dev reset.
type Resetter interface {
	Reset(ctx context.Context) error
}

// ResetDatabase wipes all data. Dev only; returns 501 when the store does
// not support resets.
func (h *Handler) ResetDatabase(w http.ResponseWriter, r *http.Request) {
	rs, ok := h.Store.(Resetter)
	if !ok {
		writeError(w, http.StatusNotImplemented, "Store does not support reset", nil)
		return
	}
	if err := rs.Reset(r.Context()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reset database", err)
		return
	}
	h.Log.Warn("database reset")
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// EMPLOYEE HANDLERS
// =============================================================================

// ListEmployees returns all employees with their assignments.
func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}

	dtos := make([]EmployeeDTO, len(employees))
	for i, e := range employees {
		dtos[i] = toEmployeeDTO(e, true)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// CreateEmployee creates a new employee.
func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var req CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}
	if req.DailyHours < 0 || req.DailyHours > 24 {
		writeError(w, http.StatusBadRequest, "Daily hours must be between 0 and 24", nil)
		return
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}

	emp := schedule.Employee{ID: req.ID, Name: req.Name, DailyHours: req.DailyHours}
	if err := h.Store.SaveEmployee(r.Context(), emp); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save employee", err)
		return
	}

	h.Log.Info("employee created", zap.String("id", emp.ID), zap.String("name", emp.Name))
	writeJSON(w, http.StatusCreated, toEmployeeDTO(emp, false))
}

// GetEmployee returns a single employee with assignments.
func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.loadEmployee(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toEmployeeDTO(*emp, true))
}

// DeleteEmployee removes an employee and their assignments.
func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteEmployee(r.Context(), id); err != nil {
		if schedule.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Employee not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete employee", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// ASSIGNMENT HANDLERS
// =============================================================================

// CreateAssignment adds an assignment to an employee. When a project or
// course overlaps the employee's time off the assignment is still stored
// and the response carries the conflicts as warnings.
func (h *Handler) CreateAssignment(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.loadEmployee(w, r)
	if !ok {
		return
	}

	var req CreateAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	a, err := assignmentFromRequest(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid assignment", err)
		return
	}
	if err := a.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid assignment", err)
		return
	}

	var warnings []ConflictDTO
	if a.Kind != schedule.KindTimeOff {
		conflicts := schedule.DetectConflicts(a.Interval(), *emp)
		if len(conflicts) > 0 {
			warnings = toConflictDTOs(conflicts)
			metrics.ConflictChecks.WithLabelValues("conflict").Inc()
		} else {
			metrics.ConflictChecks.WithLabelValues("clean").Inc()
		}
	}

	if err := h.Store.SaveAssignment(r.Context(), emp.ID, a); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save assignment", err)
		return
	}

	h.Log.Info("assignment created",
		zap.String("employee_id", emp.ID),
		zap.String("assignment_id", a.ID),
		zap.String("kind", string(a.Kind)),
		zap.Int("conflicts", len(warnings)))
	writeJSON(w, http.StatusCreated, CreateAssignmentResponse{
		Assignment: toAssignmentDTO(a),
		Warnings:   warnings,
	})
}

// DeleteAssignment removes an assignment by ID.
func (h *Handler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteAssignment(r.Context(), id); err != nil {
		if schedule.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Assignment not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete assignment", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// REPORT / COST HANDLERS
// =============================================================================

// GetReport returns the hour report for one employee over the requested
// window.
func (h *Handler) GetReport(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.loadEmployee(w, r)
	if !ok {
		return
	}
	g, window, fellBack, ok := h.resolveWindow(w, r)
	if !ok {
		return
	}
	holidays, ok := h.loadHolidaySet(w, r)
	if !ok {
		return
	}

	report := schedule.AggregateHours(*emp, window, holidays)
	metrics.ReportsComputed.WithLabelValues(string(g)).Inc()
	metrics.SkippedAssignments.Add(float64(len(report.Skipped)))

	dto := toReportDTO(report)
	writeJSON(w, http.StatusOK, struct {
		Range  RangeDTO  `json:"range"`
		Report ReportDTO `json:"report"`
	}{toRangeDTO(g, window, fellBack), dto})
}

// GetCosts returns the hourly project cost breakdown for one employee.
func (h *Handler) GetCosts(w http.ResponseWriter, r *http.Request) {
	emp, ok := h.loadEmployee(w, r)
	if !ok {
		return
	}
	g, window, fellBack, ok := h.resolveWindow(w, r)
	if !ok {
		return
	}
	holidays, ok := h.loadHolidaySet(w, r)
	if !ok {
		return
	}

	costs := schedule.ProjectCosts(*emp, window, holidays)
	writeJSON(w, http.StatusOK, toCostReportDTO(costs, toRangeDTO(g, window, fellBack)))
}

// =============================================================================
// BOARD HANDLERS
// =============================================================================

// GetBoard returns the complete board for a window: the resolved range,
// visible days, holidays, and one lane per employee with grid placements
// and the employee's hour report.
func (h *Handler) GetBoard(w http.ResponseWriter, r *http.Request) {
	g, window, fellBack, ok := h.resolveWindow(w, r)
	if !ok {
		return
	}

	employees, err := h.Store.ListEmployees(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list employees", err)
		return
	}
	holidayRecords, err := h.Store.ListHolidays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}
	holidays := schedule.NewHolidaySet(holidayRecords)

	days := window.Days()
	board := BoardDTO{
		Range:    toRangeDTO(g, window, fellBack),
		Days:     make([]string, len(days)),
		Holidays: toHolidayDTOs(holidayRecords),
		Lanes:    make([]LaneDTO, 0, len(employees)),
	}
	for i, day := range days {
		board.Days[i] = day.String()
	}

	for _, e := range employees {
		layout := schedule.Layout(e.Assignments, days, g)
		report := schedule.AggregateHours(e, window, holidays)
		metrics.SkippedAssignments.Add(float64(len(report.Skipped)))

		board.TotalColumns = layout.TotalColumns
		board.Lanes = append(board.Lanes, LaneDTO{
			Employee:   toEmployeeDTO(e, false),
			Report:     toReportDTO(report),
			Rows:       layout.Rows,
			Placements: toPlacementDTOs(layout.Placements),
		})
	}
	if board.TotalColumns == 0 {
		board.TotalColumns = totalColumnsFor(g, len(days))
	}
	metrics.LayoutsComputed.WithLabelValues(string(g)).Inc()
	metrics.ReportsComputed.WithLabelValues(string(g)).Inc()

	writeJSON(w, http.StatusOK, board)
}

// GetRange resolves a visible window, optionally shifted. ?shift=next or
// ?shift=prev moves one period from the anchor's window.
func (h *Handler) GetRange(w http.ResponseWriter, r *http.Request) {
	g, window, fellBack, ok := h.resolveWindow(w, r)
	if !ok {
		return
	}

	switch r.URL.Query().Get("shift") {
	case "":
	case "next":
		window = h.Ranges.Shift(window, g, schedule.Forward)
	case "prev":
		window = h.Ranges.Shift(window, g, schedule.Backward)
	default:
		writeError(w, http.StatusBadRequest, "Shift must be next or prev", nil)
		return
	}

	writeJSON(w, http.StatusOK, toRangeDTO(g, window, fellBack))
}

// =============================================================================
// HOLIDAY HANDLERS
// =============================================================================

// ListHolidays returns all holidays ordered by date.
func (h *Handler) ListHolidays(w http.ResponseWriter, r *http.Request) {
	holidays, err := h.Store.ListHolidays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return
	}
	writeJSON(w, http.StatusOK, toHolidayDTOs(holidays))
}

// CreateHoliday creates a holiday.
func (h *Handler) CreateHoliday(w http.ResponseWriter, r *http.Request) {
	var req CreateHolidayRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required", nil)
		return
	}
	date, err := schedule.ParseDate(req.Date)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	holiday := schedule.Holiday{ID: uuid.NewString(), Date: date, Name: req.Name}
	if err := h.Store.SaveHoliday(r.Context(), holiday); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save holiday", err)
		return
	}
	writeJSON(w, http.StatusCreated, HolidayDTO{ID: holiday.ID, Date: holiday.Date.String(), Name: holiday.Name})
}

// DeleteHoliday removes a holiday by ID.
func (h *Handler) DeleteHoliday(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.Store.DeleteHoliday(r.Context(), id); err != nil {
		if schedule.IsNotFound(err) {
			writeError(w, http.StatusNotFound, "Holiday not found", nil)
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to delete holiday", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// =============================================================================
// CONFLICT HANDLERS
// =============================================================================

// CheckConflicts reports which of an employee's time-off entries overlap a
// candidate interval.
func (h *Handler) CheckConflicts(w http.ResponseWriter, r *http.Request) {
	var req ConflictCheckRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	emp, err := h.Store.GetEmployee(r.Context(), req.EmployeeID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return
	}

	from, err := schedule.ParseDate(req.FromDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid from_date", err)
		return
	}
	to, err := schedule.ParseDate(req.ToDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid to_date", err)
		return
	}

	conflicts := schedule.DetectConflicts(schedule.DateRange{Start: from, End: to}, *emp)
	if len(conflicts) > 0 {
		metrics.ConflictChecks.WithLabelValues("conflict").Inc()
	} else {
		metrics.ConflictChecks.WithLabelValues("clean").Inc()
	}

	writeJSON(w, http.StatusOK, ConflictCheckResponse{Conflicts: toConflictDTOs(conflicts)})
}

// =============================================================================
// SHARED HELPERS
// =============================================================================

// loadEmployee fetches the {id} employee, writing the error response itself.
func (h *Handler) loadEmployee(w http.ResponseWriter, r *http.Request) (*schedule.Employee, bool) {
	id := chi.URLParam(r, "id")
	emp, err := h.Store.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to get employee", err)
		return nil, false
	}
	if emp == nil {
		writeError(w, http.StatusNotFound, "Employee not found", nil)
		return nil, false
	}
	return emp, true
}

// resolveWindow reads granularity and anchor query parameters and resolves
// the visible window. Missing granularity defaults to month.
func (h *Handler) resolveWindow(w http.ResponseWriter, r *http.Request) (schedule.Granularity, schedule.DateRange, bool, bool) {
	raw := r.URL.Query().Get("granularity")
	if raw == "" {
		raw = string(schedule.GranularityMonth)
	}
	g, err := schedule.ParseGranularity(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid granularity", err)
		return "", schedule.DateRange{}, false, false
	}

	anchor, fellBack := schedule.ResolveAnchor(r.URL.Query().Get("anchor"), h.Now())
	return g, h.Ranges.Resolve(g, anchor), fellBack, true
}

func (h *Handler) loadHolidaySet(w http.ResponseWriter, r *http.Request) (schedule.HolidaySet, bool) {
	holidays, err := h.Store.ListHolidays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list holidays", err)
		return nil, false
	}
	return schedule.NewHolidaySet(holidays), true
}

// assignmentFromRequest builds a domain assignment from the request body.
// Generates the ID; date parse failures surface as client errors.
func assignmentFromRequest(req CreateAssignmentRequest) (schedule.Assignment, error) {
	from, err := schedule.ParseDate(req.FromDate)
	if err != nil {
		return schedule.Assignment{}, err
	}
	to, err := schedule.ParseDate(req.ToDate)
	if err != nil {
		return schedule.Assignment{}, err
	}

	id := uuid.NewString()
	switch schedule.Kind(req.Type) {
	case schedule.KindProject:
		detail := schedule.ProjectDetail{
			RateType: schedule.RateType(req.RateType),
			Role:     req.Role,
		}
		if detail.RateType == "" {
			detail.RateType = schedule.RateFixed
		}
		if req.HourlyRate != nil {
			detail.HourlyRate = decimal.NewFromFloat(*req.HourlyRate)
		}
		a := schedule.NewProjectAssignment(id, from, to, req.Hours, req.AssignableID, detail)
		a.Notes = req.Notes
		return a, nil
	case schedule.KindCourse:
		a := schedule.NewCourseAssignment(id, from, to, req.Hours, req.AssignableID)
		a.Notes = req.Notes
		return a, nil
	case schedule.KindTimeOff:
		offType := schedule.TimeOffType(req.TimeOffType)
		if offType == "" {
			offType = schedule.TimeOffVacation
		}
		a := schedule.NewTimeOffAssignment(id, from, to, offType)
		a.Notes = req.Notes
		return a, nil
	default:
		return schedule.Assignment{}, schedule.ErrUnknownKind
	}
}

// totalColumnsFor mirrors the layout engine's column count for an empty
// board so the grid still renders.
func totalColumnsFor(g schedule.Granularity, dayCount int) int {
	if g == schedule.GranularityQuarter {
		return (dayCount + 6) / 7
	}
	return dayCount
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := ErrorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
		var inv *schedule.InvalidAssignmentError
		if errors.As(err, &inv) {
			resp.Code = "invalid_assignment"
		}
	}
	writeJSON(w, status, resp)
}
