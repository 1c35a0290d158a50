package schedule

// =============================================================================
// OVERLAP DETECTOR
// =============================================================================
// Both modes are built on DateRange.Overlaps, the single inclusive overlap
// primitive.

// FilterWindow keeps the assignments whose interval intersects the visible
// window, preserving input order. Assignments with malformed dates cannot
// meaningfully overlap anything and are dropped here; the hour aggregator
// separately reports them as skipped.
func FilterWindow(assignments []Assignment, window DateRange) []Assignment {
	var visible []Assignment
	for _, a := range assignments {
		if a.Validate() != nil {
			continue
		}
		if a.Interval().Overlaps(window) {
			visible = append(visible, a)
		}
	}
	return visible
}

// Conflict reports a candidate assignment overlapping an existing time-off
// entry. Overlap is the clipped common span.
type Conflict struct {
	EmployeeName string
	AssignmentID string
	TimeOffType  TimeOffType
	Overlap      DateRange
}

// DetectConflicts checks a candidate date interval against an employee's
// existing time-off assignments and reports every one it overlaps. Multiple
// simultaneous conflicts are all returned, never just the first. An invalid
// candidate interval conflicts with nothing.
//
// The check applies to any non-time-off candidate kind: a course overlapping
// vacation is as much a conflict as a project doing so.
func DetectConflicts(candidate DateRange, e Employee) []Conflict {
	if !candidate.IsValid() {
		return nil
	}
	var conflicts []Conflict
	for _, a := range e.AssignmentsOfKind(KindTimeOff) {
		if a.Validate() != nil {
			continue
		}
		overlap, ok := candidate.Intersect(a.Interval())
		if !ok {
			continue
		}
		var offType TimeOffType
		if a.TimeOff != nil {
			offType = a.TimeOff.Type
		}
		conflicts = append(conflicts, Conflict{
			EmployeeName: e.Name,
			AssignmentID: a.ID,
			TimeOffType:  offType,
			Overlap:      overlap,
		})
	}
	return conflicts
}
