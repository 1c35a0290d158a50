// Package memory provides an in-memory schedule.Store for tests and demos.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/warp/staffing-engine/schedule"
)

// =============================================================================
// MEMORY STORE - In-memory implementation (for testing/dev)
// =============================================================================

type Store struct {
	mu          sync.RWMutex
	employees   map[string]schedule.Employee
	assignments map[string][]schedule.Assignment // keyed by employee ID, insertion order
	owners      map[string]string                // assignment ID -> employee ID
	holidays    map[string]schedule.Holiday
}

func New() *Store {
	return &Store{
		employees:   make(map[string]schedule.Employee),
		assignments: make(map[string][]schedule.Assignment),
		owners:      make(map[string]string),
		holidays:    make(map[string]schedule.Holiday),
	}
}

var _ schedule.Store = (*Store)(nil)

// =============================================================================
// EMPLOYEES
// =============================================================================

func (s *Store) SaveEmployee(_ context.Context, e schedule.Employee) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e.Assignments = nil // managed through SaveAssignment
	s.employees[e.ID] = e
	return nil
}

func (s *Store) GetEmployee(_ context.Context, id string) (*schedule.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	e, ok := s.employees[id]
	if !ok {
		return nil, nil
	}
	loaded := s.withAssignmentsLocked(e)
	return &loaded, nil
}

func (s *Store) ListEmployees(_ context.Context) ([]schedule.Employee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]schedule.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		out = append(out, s.withAssignmentsLocked(e))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) DeleteEmployee(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[id]; !ok {
		return schedule.ErrEmployeeNotFound
	}
	delete(s.employees, id)
	for _, a := range s.assignments[id] {
		delete(s.owners, a.ID)
	}
	delete(s.assignments, id)
	return nil
}

func (s *Store) withAssignmentsLocked(e schedule.Employee) schedule.Employee {
	stored := s.assignments[e.ID]
	e.Assignments = make([]schedule.Assignment, len(stored))
	copy(e.Assignments, stored)
	return e
}

// =============================================================================
// ASSIGNMENTS
// =============================================================================

func (s *Store) SaveAssignment(_ context.Context, employeeID string, a schedule.Assignment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.employees[employeeID]; !ok {
		return schedule.ErrEmployeeNotFound
	}

	// An existing ID stays with its original owner, same as the sqlite
	// upsert, so a re-save under another employee never forks the row.
	if owner, ok := s.owners[a.ID]; ok {
		list := s.assignments[owner]
		for i, existing := range list {
			if existing.ID == a.ID {
				list[i] = a
				return nil
			}
		}
	}
	s.assignments[employeeID] = append(s.assignments[employeeID], a)
	s.owners[a.ID] = employeeID
	return nil
}

func (s *Store) DeleteAssignment(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	owner, ok := s.owners[id]
	if !ok {
		return schedule.ErrAssignmentNotFound
	}
	list := s.assignments[owner]
	for i, a := range list {
		if a.ID == id {
			s.assignments[owner] = append(list[:i], list[i+1:]...)
			break
		}
	}
	delete(s.owners, id)
	return nil
}

// =============================================================================
// HOLIDAYS
// =============================================================================

func (s *Store) SaveHoliday(_ context.Context, h schedule.Holiday) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.holidays[h.ID] = h
	return nil
}

func (s *Store) ListHolidays(_ context.Context) ([]schedule.Holiday, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]schedule.Holiday, 0, len(s.holidays))
	for _, h := range s.holidays {
		out = append(out, h)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func (s *Store) DeleteHoliday(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.holidays[id]; !ok {
		return schedule.ErrHolidayNotFound
	}
	delete(s.holidays, id)
	return nil
}
