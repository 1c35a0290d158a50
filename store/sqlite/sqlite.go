/*
Package sqlite provides a SQLite-backed implementation of schedule.Store.

PURPOSE:
  Persists the staffing roster: employees, their assignments, and the
  company holiday calendar. The engine itself never sees this package; the
  API layer loads snapshots here and hands them to the pure functions in
  the schedule package.

KEY TABLES:
  employees:    Identity and daily hour budget
  assignments:  One row per assignment; kind-specific columns are nullable
                and populated per the Kind tag
  holidays:     Company-wide non-working days

DATE STORAGE:
  Calendar dates are stored as ISO "YYYY-MM-DD" strings. Only creation
  timestamps use RFC3339. This keeps the day-granularity contract of
  schedule.Date visible in the schema and makes range queries lexicographic.

CONCURRENCY:
  Uses sync.RWMutex for thread-safety, plus WAL mode so readers don't block.

MIGRATION:
  Schema is auto-migrated on New(). For production, use a proper migration
  tool (golang-migrate, goose) with versioned migrations.

SEE ALSO:
  - schedule/store.go: Interface definitions
  - store/memory/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/shopspring/decimal"
	"github.com/warp/staffing-engine/schedule"
)

// Store implements schedule.Store using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

var _ schedule.Store = (*Store)(nil)

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_foreign_keys=on&_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate creates the database schema.
func (s *Store) migrate() error {
	schemaSQL := `
	-- Employees
	CREATE TABLE IF NOT EXISTS employees (
		id TEXT PRIMARY KEY,
		name TEXT NOT NULL,
		daily_hours INTEGER NOT NULL DEFAULT 8,
		created_at TEXT NOT NULL
	);

	-- Assignments (tagged variant: kind decides which optional columns apply)
	CREATE TABLE IF NOT EXISTS assignments (
		id TEXT PRIMARY KEY,
		employee_id TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		kind TEXT NOT NULL CHECK (kind IN ('project', 'course', 'timeOff')),
		from_date TEXT NOT NULL,
		to_date TEXT NOT NULL,
		hours INTEGER NOT NULL DEFAULT 0,
		assignable_id TEXT,
		notes TEXT,
		rate_type TEXT,
		hourly_rate TEXT,
		role TEXT,
		time_off_type TEXT,
		created_at TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_assignments_employee
		ON assignments(employee_id, created_at);

	-- Window filtering happens in the engine, but the hot query path still
	-- wants the date columns indexed for large rosters.
	CREATE INDEX IF NOT EXISTS idx_assignments_dates
		ON assignments(from_date, to_date);

	-- Holidays (company-wide)
	CREATE TABLE IF NOT EXISTS holidays (
		id TEXT PRIMARY KEY,
		date TEXT NOT NULL,
		name TEXT NOT NULL,
		created_at TEXT NOT NULL
	);

	CREATE UNIQUE INDEX IF NOT EXISTS idx_holidays_date_name
		ON holidays(date, name);
	`

	_, err := s.db.Exec(schemaSQL)
	return err
}

// =============================================================================
// EMPLOYEES
// =============================================================================

// SaveEmployee inserts or updates an employee's identity fields.
func (s *Store) SaveEmployee(ctx context.Context, e schedule.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO employees (id, name, daily_hours, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			daily_hours = excluded.daily_hours
	`

	_, err := s.db.ExecContext(ctx, query,
		e.ID, e.Name, e.DailyHours,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// GetEmployee returns an employee with their full assignment collection,
// or nil if absent.
func (s *Store) GetEmployee(ctx context.Context, id string) (*schedule.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var e schedule.Employee
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, daily_hours FROM employees WHERE id = ?", id,
	).Scan(&e.ID, &e.Name, &e.DailyHours)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	e.Assignments, err = s.assignmentsByEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// ListEmployees returns all employees with assignments, ordered by name.
func (s *Store) ListEmployees(ctx context.Context) ([]schedule.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, daily_hours FROM employees ORDER BY name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var employees []schedule.Employee
	for rows.Next() {
		var e schedule.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.DailyHours); err != nil {
			return nil, err
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range employees {
		employees[i].Assignments, err = s.assignmentsByEmployee(ctx, employees[i].ID)
		if err != nil {
			return nil, err
		}
	}
	return employees, nil
}

// DeleteEmployee removes an employee; their assignments cascade.
func (s *Store) DeleteEmployee(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM employees WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return schedule.ErrEmployeeNotFound
	}
	return nil
}

// =============================================================================
// ASSIGNMENTS
// =============================================================================

// SaveAssignment inserts or updates one assignment for an employee.
func (s *Store) SaveAssignment(ctx context.Context, employeeID string, a schedule.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	var exists int
	err := s.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM employees WHERE id = ?", employeeID,
	).Scan(&exists)
	if err != nil {
		return err
	}
	if exists == 0 {
		return schedule.ErrEmployeeNotFound
	}

	var rateType, hourlyRate, role, timeOffType *string
	if a.Project != nil {
		rt := string(a.Project.RateType)
		hr := a.Project.HourlyRate.String()
		r := a.Project.Role
		rateType, hourlyRate, role = &rt, &hr, &r
	}
	if a.TimeOff != nil {
		tot := string(a.TimeOff.Type)
		timeOffType = &tot
	}

	query := `
		INSERT INTO assignments
		(id, employee_id, kind, from_date, to_date, hours, assignable_id, notes,
		 rate_type, hourly_rate, role, time_off_type, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			kind = excluded.kind,
			from_date = excluded.from_date,
			to_date = excluded.to_date,
			hours = excluded.hours,
			assignable_id = excluded.assignable_id,
			notes = excluded.notes,
			rate_type = excluded.rate_type,
			hourly_rate = excluded.hourly_rate,
			role = excluded.role,
			time_off_type = excluded.time_off_type
	`

	_, err = s.db.ExecContext(ctx, query,
		a.ID, employeeID, string(a.Kind),
		a.From.String(), a.To.String(),
		a.Hours, a.AssignableID, a.Notes,
		rateType, hourlyRate, role, timeOffType,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// DeleteAssignment removes an assignment by ID.
func (s *Store) DeleteAssignment(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM assignments WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return schedule.ErrAssignmentNotFound
	}
	return nil
}

func (s *Store) assignmentsByEmployee(ctx context.Context, employeeID string) ([]schedule.Assignment, error) {
	query := `
		SELECT id, kind, from_date, to_date, hours, assignable_id, notes,
		       rate_type, hourly_rate, role, time_off_type
		FROM assignments
		WHERE employee_id = ?
		ORDER BY created_at ASC, id ASC
	`

	rows, err := s.db.QueryContext(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query assignments: %w", err)
	}
	defer rows.Close()

	var assignments []schedule.Assignment
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, a)
	}
	return assignments, rows.Err()
}

func scanAssignment(rows *sql.Rows) (schedule.Assignment, error) {
	var (
		a            schedule.Assignment
		kind         string
		fromDate     string
		toDate       string
		assignableID sql.NullString
		notes        sql.NullString
		rateType     sql.NullString
		hourlyRate   sql.NullString
		role         sql.NullString
		timeOffType  sql.NullString
	)

	err := rows.Scan(
		&a.ID, &kind, &fromDate, &toDate, &a.Hours,
		&assignableID, &notes, &rateType, &hourlyRate, &role, &timeOffType,
	)
	if err != nil {
		return a, fmt.Errorf("failed to scan assignment: %w", err)
	}

	a.Kind = schedule.Kind(kind)
	a.AssignableID = assignableID.String
	a.Notes = notes.String

	// Malformed dates surface through Assignment.Validate downstream; the
	// store never drops rows on its own.
	a.From, _ = schedule.ParseDate(fromDate)
	a.To, _ = schedule.ParseDate(toDate)

	switch a.Kind {
	case schedule.KindProject:
		rate, _ := decimal.NewFromString(hourlyRate.String)
		a.Project = &schedule.ProjectDetail{
			RateType:   schedule.RateType(rateType.String),
			HourlyRate: rate,
			Role:       role.String,
		}
	case schedule.KindTimeOff:
		a.TimeOff = &schedule.TimeOffDetail{Type: schedule.TimeOffType(timeOffType.String)}
	}

	return a, nil
}

// =============================================================================
// HOLIDAYS
// =============================================================================

// SaveHoliday inserts or updates a holiday.
func (s *Store) SaveHoliday(ctx context.Context, h schedule.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO holidays (id, date, name, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			date = excluded.date,
			name = excluded.name
	`

	_, err := s.db.ExecContext(ctx, query,
		h.ID, h.Date.String(), h.Name,
		time.Now().UTC().Format(time.RFC3339),
	)
	return err
}

// ListHolidays returns all holidays ordered by date.
func (s *Store) ListHolidays(ctx context.Context) ([]schedule.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, date, name FROM holidays ORDER BY date")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var holidays []schedule.Holiday
	for rows.Next() {
		var h schedule.Holiday
		var date string
		if err := rows.Scan(&h.ID, &date, &h.Name); err != nil {
			return nil, err
		}
		h.Date, _ = schedule.ParseDate(date)
		holidays = append(holidays, h)
	}
	return holidays, rows.Err()
}

// DeleteHoliday removes a holiday by ID.
func (s *Store) DeleteHoliday(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx, "DELETE FROM holidays WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return schedule.ErrHolidayNotFound
	}
	return nil
}

// Reset clears all data. Dev/demo use only.
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, table := range []string{"assignments", "employees", "holidays"} {
		if _, err := s.db.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return err
		}
	}
	return nil
}
