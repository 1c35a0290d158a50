/*
store.go - Persistence interface for the staffing roster

PURPOSE:
  Defines the interface between the pure engine and the database. The engine
  itself never touches storage; the data layer loads Employee/Assignment/
  Holiday snapshots, hands them to the engine, and the handlers glue the two
  together.

KEY INTERFACES:
  EmployeeStore:   Employee records and their assignment collections
  HolidayStore:    Company-wide holidays
  Store:           Union of both, what the API layer depends on

NOT-FOUND CONTRACT:
  Get* methods return (nil, nil) for a missing record; Delete* methods
  return the package's *NotFound sentinels so handlers can map them to 404.

IMPLEMENTATIONS:
  - store/sqlite/sqlite.go: Production SQLite
  - store/memory/memory.go: In-memory for testing

SEE ALSO:
  - types.go: The entities being persisted
*/
package schedule

import "context"

// =============================================================================
// STORE INTERFACES
// =============================================================================

// EmployeeStore persists employees and their assignments. Loaded employees
// carry their full assignment collection, ordered by creation, so a single
// Get feeds one engine invocation.
type EmployeeStore interface {
	// SaveEmployee inserts or updates an employee's identity fields.
	// The assignment collection is managed through SaveAssignment.
	SaveEmployee(ctx context.Context, e Employee) error

	// GetEmployee returns the employee with assignments, or nil if absent.
	GetEmployee(ctx context.Context, id string) (*Employee, error)

	// ListEmployees returns all employees with assignments, ordered by name.
	ListEmployees(ctx context.Context) ([]Employee, error)

	// DeleteEmployee removes an employee and their assignments.
	DeleteEmployee(ctx context.Context, id string) error

	// SaveAssignment inserts or updates one assignment for an employee.
	SaveAssignment(ctx context.Context, employeeID string, a Assignment) error

	// DeleteAssignment removes an assignment by ID.
	DeleteAssignment(ctx context.Context, id string) error
}

// HolidayStore persists the company holiday calendar.
type HolidayStore interface {
	SaveHoliday(ctx context.Context, h Holiday) error
	ListHolidays(ctx context.Context) ([]Holiday, error)
	DeleteHoliday(ctx context.Context, id string) error
}

// Store is the full persistence surface the API layer depends on.
type Store interface {
	EmployeeStore
	HolidayStore
}
