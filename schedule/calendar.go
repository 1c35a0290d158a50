package schedule

import (
	"sort"
	"time"
)

// =============================================================================
// DATE - Day-granularity calendar date (UTC midnight)
// =============================================================================

// Date is a calendar date with day granularity. The zero value is "no date".
// All constructors normalize to UTC midnight so Date values are comparable
// with == and usable as map keys.
type Date struct {
	t time.Time
}

const isoDate = "2006-01-02"

// NewDate builds a Date from calendar components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// DateOf truncates an arbitrary time to its calendar day.
func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

// ParseDate parses an ISO calendar date ("2006-01-02").
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(isoDate, s)
	if err != nil {
		return Date{}, &DateParseError{Input: s, Err: err}
	}
	return DateOf(t), nil
}

// MustParseDate is ParseDate for test fixtures and constants; it panics on
// malformed input.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.After(other) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.Before(other) }

// Arithmetic
func (d Date) AddDays(n int) Date   { return DateOf(d.t.AddDate(0, 0, n)) }
func (d Date) AddMonths(n int) Date { return DateOf(d.t.AddDate(0, n, 0)) }

// Properties
func (d Date) Year() int             { return d.t.Year() }
func (d Date) Month() time.Month     { return d.t.Month() }
func (d Date) Day() int              { return d.t.Day() }
func (d Date) Weekday() time.Weekday { return d.t.Weekday() }
func (d Date) IsZero() bool          { return d.t.IsZero() }
func (d Date) Time() time.Time       { return d.t }
func (d Date) String() string        { return d.t.Format(isoDate) }

// IsWeekend reports whether the date falls on Saturday or Sunday.
func (d Date) IsWeekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// Min returns the earlier of two dates, Max the later.
func (d Date) Min(other Date) Date {
	if other.Before(d) {
		return other
	}
	return d
}

func (d Date) Max(other Date) Date {
	if other.After(d) {
		return other
	}
	return d
}

// DaysBetween returns the signed number of calendar days from one date to
// another (to - from).
func DaysBetween(from, to Date) int {
	return int(to.t.Sub(from.t).Hours() / 24)
}

// =============================================================================
// DATE RANGE - Inclusive [Start, End] interval
// =============================================================================

// DateRange is an inclusive calendar interval. A well-formed range has
// Start <= End; a single-day range has Start == End.
type DateRange struct {
	Start Date
	End   Date
}

// IsValid reports whether Start <= End.
func (r DateRange) IsValid() bool {
	return !r.Start.IsZero() && !r.End.IsZero() && r.Start.BeforeOrEqual(r.End)
}

// Contains is the inclusive containment test.
func (r DateRange) Contains(d Date) bool {
	return d.AfterOrEqual(r.Start) && d.BeforeOrEqual(r.End)
}

// Overlaps reports whether two inclusive intervals intersect:
// a.Start <= b.End && b.Start <= a.End. It is symmetric and treats
// single-day intervals correctly. Every higher-level overlap decision in the
// engine goes through this predicate.
func (r DateRange) Overlaps(other DateRange) bool {
	return r.Start.BeforeOrEqual(other.End) && other.Start.BeforeOrEqual(r.End)
}

// Intersect clips the range to another. The second return is false when the
// ranges do not overlap.
func (r DateRange) Intersect(other DateRange) (DateRange, bool) {
	clipped := DateRange{Start: r.Start.Max(other.Start), End: r.End.Min(other.End)}
	if clipped.Start.After(clipped.End) {
		return DateRange{}, false
	}
	return clipped, true
}

// Days returns every calendar day in the range in order. An inverted range
// yields nil.
func (r DateRange) Days() []Date {
	if !r.IsValid() {
		return nil
	}
	days := make([]Date, 0, DaysBetween(r.Start, r.End)+1)
	for d := r.Start; d.BeforeOrEqual(r.End); d = d.AddDays(1) {
		days = append(days, d)
	}
	return days
}

// DayCount returns the number of calendar days in the range, 0 if inverted.
func (r DateRange) DayCount() int {
	if !r.IsValid() {
		return 0
	}
	return DaysBetween(r.Start, r.End) + 1
}

func (r DateRange) String() string {
	return "[" + r.Start.String() + ", " + r.End.String() + "]"
}

// =============================================================================
// DATE AND HOLIDAY SETS
// =============================================================================

// DateSet is a set of calendar days.
type DateSet map[Date]struct{}

// NewDateSet builds a set from individual dates.
func NewDateSet(dates ...Date) DateSet {
	s := make(DateSet, len(dates))
	for _, d := range dates {
		s[d] = struct{}{}
	}
	return s
}

func (s DateSet) Contains(d Date) bool { _, ok := s[d]; return ok }
func (s DateSet) Add(d Date)           { s[d] = struct{}{} }
func (s DateSet) Len() int             { return len(s) }

// Sorted returns the set's dates in ascending order.
func (s DateSet) Sorted() []Date {
	out := make([]Date, 0, len(s))
	for d := range s {
		out = append(out, d)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

// HolidaySet indexes holidays by calendar day.
type HolidaySet map[Date]Holiday

// NewHolidaySet builds the index. Later duplicates on the same day win, which
// is harmless: the set only answers containment.
func NewHolidaySet(holidays []Holiday) HolidaySet {
	s := make(HolidaySet, len(holidays))
	for _, h := range holidays {
		s[h.Date] = h
	}
	return s
}

func (s HolidaySet) Contains(d Date) bool { _, ok := s[d]; return ok }

// IsBusinessDay reports whether the date is neither a weekend nor a holiday.
// Time-of-day never matters: holidays match on the calendar day.
func IsBusinessDay(d Date, holidays HolidaySet) bool {
	return !d.IsWeekend() && !holidays.Contains(d)
}
