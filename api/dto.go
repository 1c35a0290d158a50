/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Defines the JSON structures for API communication. These types decouple
  the engine's domain model from the external API contract: dates travel as
  ISO calendar-date strings, decimal amounts as JSON numbers.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
  - *Response: Complex response wrappers

VALIDATION:
  Validation is done in handlers and in schedule.Assignment.Validate.
  DTOs are pure data carriers.

SEE ALSO:
  - handlers.go: Uses these types
  - schedule/types.go: The domain model behind them
*/
package api

import (
	"github.com/shopspring/decimal"

	"github.com/warp/staffing-engine/schedule"
)

// =============================================================================
// EMPLOYEE / ASSIGNMENT / HOLIDAY
// =============================================================================

// EmployeeDTO represents an employee in API responses.
type EmployeeDTO struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	DailyHours  int             `json:"daily_hours"`
	Assignments []AssignmentDTO `json:"assignments,omitempty"`
}

// CreateEmployeeRequest is the request to create an employee.
type CreateEmployeeRequest struct {
	ID         string `json:"id,omitempty"`
	Name       string `json:"name"`
	DailyHours int    `json:"daily_hours"`
}

// AssignmentDTO represents an assignment. Kind-specific fields are omitted
// when they do not apply.
type AssignmentDTO struct {
	ID           string   `json:"id"`
	Type         string   `json:"type"`
	FromDate     string   `json:"from_date"`
	ToDate       string   `json:"to_date"`
	Hours        int      `json:"hours,omitempty"`
	AssignableID string   `json:"assignable_id,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	RateType     string   `json:"rate_type,omitempty"`
	HourlyRate   *float64 `json:"hourly_rate,omitempty"`
	Role         string   `json:"role,omitempty"`
	TimeOffType  string   `json:"time_off_type,omitempty"`
}

// CreateAssignmentRequest is the request to create an assignment for an
// employee.
type CreateAssignmentRequest struct {
	Type         string   `json:"type"`
	FromDate     string   `json:"from_date"`
	ToDate       string   `json:"to_date"`
	Hours        int      `json:"hours,omitempty"`
	AssignableID string   `json:"assignable_id,omitempty"`
	Notes        string   `json:"notes,omitempty"`
	RateType     string   `json:"rate_type,omitempty"`
	HourlyRate   *float64 `json:"hourly_rate,omitempty"`
	Role         string   `json:"role,omitempty"`
	TimeOffType  string   `json:"time_off_type,omitempty"`
}

// CreateAssignmentResponse carries the stored assignment plus any time-off
// entries it overlaps. Conflicts are warnings, not rejections.
type CreateAssignmentResponse struct {
	Assignment AssignmentDTO `json:"assignment"`
	Warnings   []ConflictDTO `json:"warnings,omitempty"`
}

// HolidayDTO represents a company holiday.
type HolidayDTO struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}

// CreateHolidayRequest is the request to create a holiday.
type CreateHolidayRequest struct {
	Date string `json:"date"`
	Name string `json:"name"`
}

// =============================================================================
// RANGE / REPORT / BOARD
// =============================================================================

// RangeDTO is a resolved visible window. AnchorFellBack is true when the
// supplied anchor was missing or unparseable and the server's current date
// was used instead.
type RangeDTO struct {
	Granularity    string `json:"granularity"`
	Start          string `json:"start"`
	End            string `json:"end"`
	Label          string `json:"label,omitempty"`
	AnchorFellBack bool   `json:"anchor_fell_back,omitempty"`
}

// ReportDTO is the aggregated hour report for one employee over a window.
type ReportDTO struct {
	EmployeeID           string       `json:"employee_id"`
	MonthlyHours         float64      `json:"monthly_hours"`
	MonthlyAssignedHours float64      `json:"monthly_assigned_hours"`
	MonthlyOffHours      float64      `json:"monthly_off_hours"`
	AssignableHours      float64      `json:"assignable_hours"`
	TimeOffDayCount      int          `json:"time_off_day_count"`
	Workdays             int          `json:"workdays"`
	OverAllocated        bool         `json:"over_allocated"`
	Skipped              []SkippedDTO `json:"skipped,omitempty"`
}

// SkippedDTO reports an assignment excluded from aggregation for malformed
// input.
type SkippedDTO struct {
	AssignmentID string `json:"assignment_id"`
	Reason       string `json:"reason"`
}

// PlacementDTO locates one assignment on the board grid. Columns are 1-based
// and ColumnEnd is exclusive, matching CSS grid-column semantics.
type PlacementDTO struct {
	AssignmentID string `json:"assignment_id"`
	Type         string `json:"type"`
	ColumnStart  int    `json:"column_start"`
	ColumnEnd    int    `json:"column_end"`
	Row          int    `json:"row"`
	Compact      bool   `json:"compact,omitempty"`
	Hidden       bool   `json:"hidden,omitempty"`
	ClippedStart bool   `json:"clipped_start,omitempty"`
	ClippedEnd   bool   `json:"clipped_end,omitempty"`
}

// LaneDTO is one employee's row group on the board.
type LaneDTO struct {
	Employee   EmployeeDTO    `json:"employee"`
	Report     ReportDTO      `json:"report"`
	Rows       int            `json:"rows"`
	Placements []PlacementDTO `json:"placements"`
}

// BoardDTO is the complete board for one window.
type BoardDTO struct {
	Range        RangeDTO     `json:"range"`
	TotalColumns int          `json:"total_columns"`
	Days         []string     `json:"days"`
	Holidays     []HolidayDTO `json:"holidays"`
	Lanes        []LaneDTO    `json:"lanes"`
}

// CostLineDTO prices one hourly project assignment.
type CostLineDTO struct {
	AssignmentID  string  `json:"assignment_id"`
	AssignableID  string  `json:"assignable_id,omitempty"`
	Role          string  `json:"role,omitempty"`
	AssignedHours float64 `json:"assigned_hours"`
	HourlyRate    float64 `json:"hourly_rate"`
	Cost          float64 `json:"cost"`
}

// CostReportDTO totals an employee's hourly project cost for a window.
type CostReportDTO struct {
	EmployeeID string        `json:"employee_id"`
	Range      RangeDTO      `json:"range"`
	Lines      []CostLineDTO `json:"lines"`
	Total      float64       `json:"total"`
}

// =============================================================================
// CONFLICTS
// =============================================================================

// ConflictCheckRequest asks whether a candidate interval overlaps an
// employee's time off.
type ConflictCheckRequest struct {
	EmployeeID string `json:"employee_id"`
	FromDate   string `json:"from_date"`
	ToDate     string `json:"to_date"`
}

// ConflictDTO reports one overlapping time-off entry.
type ConflictDTO struct {
	EmployeeName string `json:"employee_name"`
	AssignmentID string `json:"assignment_id"`
	TimeOffType  string `json:"time_off_type,omitempty"`
	OverlapStart string `json:"overlap_start"`
	OverlapEnd   string `json:"overlap_end"`
}

// ConflictCheckResponse is the conflict check result.
type ConflictCheckResponse struct {
	Conflicts []ConflictDTO `json:"conflicts"`
}

// ErrorResponse is the standard error response.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

// =============================================================================
// CONVERSION HELPERS
// =============================================================================

func toEmployeeDTO(e schedule.Employee, withAssignments bool) EmployeeDTO {
	dto := EmployeeDTO{ID: e.ID, Name: e.Name, DailyHours: e.DailyHours}
	if withAssignments {
		dto.Assignments = make([]AssignmentDTO, len(e.Assignments))
		for i, a := range e.Assignments {
			dto.Assignments[i] = toAssignmentDTO(a)
		}
	}
	return dto
}

func toAssignmentDTO(a schedule.Assignment) AssignmentDTO {
	dto := AssignmentDTO{
		ID:           a.ID,
		Type:         string(a.Kind),
		FromDate:     a.From.String(),
		ToDate:       a.To.String(),
		Hours:        a.Hours,
		AssignableID: a.AssignableID,
		Notes:        a.Notes,
	}
	if a.Project != nil {
		dto.RateType = string(a.Project.RateType)
		dto.Role = a.Project.Role
		if !a.Project.HourlyRate.IsZero() {
			rate := decToFloat(a.Project.HourlyRate)
			dto.HourlyRate = &rate
		}
	}
	if a.TimeOff != nil {
		dto.TimeOffType = string(a.TimeOff.Type)
	}
	return dto
}

func toReportDTO(r schedule.HoursReport) ReportDTO {
	dto := ReportDTO{
		EmployeeID:           r.EmployeeID,
		MonthlyHours:         decToFloat(r.MonthlyHours),
		MonthlyAssignedHours: decToFloat(r.MonthlyAssignedHours),
		MonthlyOffHours:      decToFloat(r.MonthlyOffHours),
		AssignableHours:      decToFloat(r.AssignableHours),
		TimeOffDayCount:      r.TimeOffDayCount,
		Workdays:             r.Workdays,
		OverAllocated:        r.OverAllocated(),
	}
	for _, s := range r.Skipped {
		dto.Skipped = append(dto.Skipped, SkippedDTO{AssignmentID: s.AssignmentID, Reason: s.Err.Error()})
	}
	return dto
}

func toPlacementDTOs(placements []schedule.Placement) []PlacementDTO {
	dtos := make([]PlacementDTO, len(placements))
	for i, p := range placements {
		dtos[i] = PlacementDTO{
			AssignmentID: p.AssignmentID,
			Type:         string(p.Kind),
			ColumnStart:  p.ColumnStart,
			ColumnEnd:    p.ColumnEnd,
			Row:          p.Row,
			Compact:      p.Compact,
			Hidden:       p.Hidden,
			ClippedStart: p.ClippedStart,
			ClippedEnd:   p.ClippedEnd,
		}
	}
	return dtos
}

func toConflictDTOs(conflicts []schedule.Conflict) []ConflictDTO {
	dtos := make([]ConflictDTO, len(conflicts))
	for i, c := range conflicts {
		dtos[i] = ConflictDTO{
			EmployeeName: c.EmployeeName,
			AssignmentID: c.AssignmentID,
			TimeOffType:  string(c.TimeOffType),
			OverlapStart: c.Overlap.Start.String(),
			OverlapEnd:   c.Overlap.End.String(),
		}
	}
	return dtos
}

func toHolidayDTOs(holidays []schedule.Holiday) []HolidayDTO {
	dtos := make([]HolidayDTO, len(holidays))
	for i, h := range holidays {
		dtos[i] = HolidayDTO{ID: h.ID, Date: h.Date.String(), Name: h.Name}
	}
	return dtos
}

func toCostReportDTO(r schedule.CostReport, rangeDTO RangeDTO) CostReportDTO {
	dto := CostReportDTO{
		EmployeeID: r.EmployeeID,
		Range:      rangeDTO,
		Total:      decToFloat(r.Total),
	}
	for _, l := range r.Lines {
		dto.Lines = append(dto.Lines, CostLineDTO{
			AssignmentID:  l.AssignmentID,
			AssignableID:  l.AssignableID,
			Role:          l.Role,
			AssignedHours: decToFloat(l.AssignedHours),
			HourlyRate:    decToFloat(l.HourlyRate),
			Cost:          decToFloat(l.Cost),
		})
	}
	return dto
}

func toRangeDTO(g schedule.Granularity, r schedule.DateRange, fellBack bool) RangeDTO {
	dto := RangeDTO{
		Granularity:    string(g),
		Start:          r.Start.String(),
		End:            r.End.String(),
		AnchorFellBack: fellBack,
	}
	if g == schedule.GranularityMonth {
		dto.Label = schedule.MonthLabel(r)
	}
	return dto
}

func decToFloat(d decimal.Decimal) float64 {
	f, _ := d.Float64()
	return f
}
