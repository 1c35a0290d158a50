package schedule

// =============================================================================
// WORKDAY COUNTER
// =============================================================================

// CountWorkdays counts the business days in [start, end] that are not in
// offDays. Weekends, holidays, and offDays members never count. An inverted
// range (start > end) yields 0. Cost is linear in the number of days.
//
// offDays is typically the employee's time-off days already expanded for the
// period; pass nil to count gross business days.
func CountWorkdays(start, end Date, holidays HolidaySet, offDays DateSet) int {
	if start.IsZero() || end.IsZero() || start.After(end) {
		return 0
	}
	count := 0
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if !IsBusinessDay(d, holidays) {
			continue
		}
		if offDays.Contains(d) {
			continue
		}
		count++
	}
	return count
}

// ExpandTimeOffDays returns the individual business days covered by a
// time-off assignment within the bounding period. Weekends and holidays are
// already excluded, so the result feeds CountWorkdays' offDays parameter
// directly and its length is the period's time-off day count.
//
// A non-time-off or invalid assignment expands to nothing.
func ExpandTimeOffDays(a Assignment, holidays HolidaySet, period DateRange) []Date {
	if a.Kind != KindTimeOff || a.Validate() != nil {
		return nil
	}
	clipped, ok := a.Interval().Intersect(period)
	if !ok {
		return nil
	}
	var days []Date
	for d := clipped.Start; d.BeforeOrEqual(clipped.End); d = d.AddDays(1) {
		if IsBusinessDay(d, holidays) {
			days = append(days, d)
		}
	}
	return days
}
