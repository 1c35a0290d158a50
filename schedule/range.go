/*
range.go - Visible window resolution and navigation

PURPOSE:
  Maps a (granularity, anchor date) pair to the inclusive date window the
  board shows, and moves that window forward/backward without drift.

WINDOW RULES:
  week:    the Sunday on or before the anchor, 7 days
  month:   the anchor's calendar month
  quarter: the Sunday on or before the anchor, QuarterWeeks * 7 days, so
           weekly sub-columns always start on a week boundary

NAVIGATION:
  Shift moves by one unit (a week for week/quarter, a month for month) and
  re-resolves through the same rules, so shift followed by shift-back always
  reproduces the original window.

SEE ALSO:
  - calendar.go: Date and DateRange
  - grid.go:     consumes Days()/WeekBuckets() of the resolved window
*/
package schedule

import "strconv"

// =============================================================================
// GRANULARITY
// =============================================================================

// Granularity is the calendar zoom level of the board.
type Granularity string

const (
	GranularityWeek    Granularity = "week"
	GranularityMonth   Granularity = "month"
	GranularityQuarter Granularity = "quarter"
)

// ParseGranularity validates a caller-supplied granularity string.
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(s) {
	case GranularityWeek, GranularityMonth, GranularityQuarter:
		return Granularity(s), nil
	}
	return "", ErrUnknownGranularity
}

// Direction of window navigation.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// =============================================================================
// RANGE CONFIG / RESOLVER
// =============================================================================

// DefaultQuarterWeeks is the week count of a quarter window: thirteen 7-day
// buckets, a calendar quarter of weeks.
const DefaultQuarterWeeks = 13

// RangeConfig carries the resolver's tunables. The zero value uses
// DefaultQuarterWeeks.
type RangeConfig struct {
	QuarterWeeks int
}

func (c RangeConfig) quarterWeeks() int {
	if c.QuarterWeeks <= 0 {
		return DefaultQuarterWeeks
	}
	return c.QuarterWeeks
}

// StartOfWeek returns the Sunday on or before the given date.
func StartOfWeek(d Date) Date {
	return d.AddDays(-int(d.Weekday()))
}

// StartOfMonth returns the first day of the date's month.
func StartOfMonth(d Date) Date {
	return NewDate(d.Year(), d.Month(), 1)
}

// EndOfMonth returns the last day of the date's month.
func EndOfMonth(d Date) Date {
	return StartOfMonth(d).AddMonths(1).AddDays(-1)
}

// Resolve produces the visible window for a granularity and anchor date.
func (c RangeConfig) Resolve(g Granularity, anchor Date) DateRange {
	switch g {
	case GranularityWeek:
		start := StartOfWeek(anchor)
		return DateRange{Start: start, End: start.AddDays(6)}
	case GranularityMonth:
		return DateRange{Start: StartOfMonth(anchor), End: EndOfMonth(anchor)}
	case GranularityQuarter:
		start := StartOfWeek(anchor)
		return DateRange{Start: start, End: start.AddDays(7*c.quarterWeeks() - 1)}
	default:
		// Unknown granularity degrades to a week window; callers validate
		// with ParseGranularity before getting here.
		start := StartOfWeek(anchor)
		return DateRange{Start: start, End: start.AddDays(6)}
	}
}

// ResolveAnchor parses a caller-supplied anchor date, falling back to the
// injected now on empty or malformed input. The second return reports
// whether the fallback was taken, so the condition is visible to the caller
// rather than silently corrupting the range.
func ResolveAnchor(raw string, now Date) (anchor Date, fellBack bool) {
	if raw == "" {
		return now, true
	}
	d, err := ParseDate(raw)
	if err != nil {
		return now, true
	}
	return d, false
}

// Shift moves the window one unit in the given direction and re-resolves.
// The unit is a month for month granularity and a week otherwise. Because
// the result goes back through Resolve, repeated shift and shift-back cannot
// drift off week or month boundaries.
func (c RangeConfig) Shift(r DateRange, g Granularity, dir Direction) DateRange {
	var anchor Date
	switch g {
	case GranularityMonth:
		anchor = StartOfMonth(r.Start).AddMonths(int(dir))
	default:
		anchor = r.Start.AddDays(7 * int(dir))
	}
	return c.Resolve(g, anchor)
}

// =============================================================================
// WEEK BUCKETS - Quarter sub-columns
// =============================================================================

// WeekBuckets slices a window into consecutive 7-day ranges. The final
// bucket is truncated when the window length is not a multiple of seven
// (month windows); quarter windows always divide evenly because they start
// on a week boundary.
func WeekBuckets(r DateRange) []DateRange {
	if !r.IsValid() {
		return nil
	}
	var buckets []DateRange
	for start := r.Start; start.BeforeOrEqual(r.End); start = start.AddDays(7) {
		end := start.AddDays(6).Min(r.End)
		buckets = append(buckets, DateRange{Start: start, End: end})
	}
	return buckets
}

// MonthLabel formats a window for display, e.g. "March 2024" for month
// granularity.
func MonthLabel(r DateRange) string {
	return r.Start.Month().String() + " " + strconv.Itoa(r.Start.Year())
}
