/*
grid.go - Calendar grid layout

PURPOSE:
  Maps a filtered, period-bounded assignment list onto column spans and row
  indices of a fixed-size grid: one column per visible day for week and
  month granularity, one column per 7-day bucket for quarter. The layout is
  a stateless pure transform recomputed on every input change.

COLUMN COORDINATES:
  1-based, CSS-grid style: ColumnStart is the column of the first visible
  day, ColumnEnd is one past the column of the last. A single-day assignment
  therefore spans exactly one column (ColumnEnd - ColumnStart == 1). Bars
  starting before the window clip to column 1; bars running past it clip to
  TotalColumns + 1.

ROWS:
  Time-off bars share a dedicated row 1 so they sit behind project and
  course bars, which stack one per row below in input order. When only a
  single kind is visible every bar shares row 1, collapsing empty vertical
  space.

COMPACTION:
  Deterministic functions of (granularity, span), never pixel measurement.
  quarter: span <= 3 drops detail text (compact), span <= 1 hides all inner
  content. week/month: a span of exactly one column switches to icon-only
  compact mode.

SEE ALSO:
  - range.go:   the visible window whose Days() feed the layout
  - overlap.go: FilterWindow produces the input list
*/
package schedule

import "sort"

// =============================================================================
// PLACEMENT
// =============================================================================

// Placement locates one assignment on the grid, with rendering hints.
type Placement struct {
	AssignmentID string
	Kind         Kind

	ColumnStart int
	ColumnEnd   int
	Row         int

	// Compact drops detail text; Hidden suppresses all inner content.
	Compact bool
	Hidden  bool

	// ClippedStart/ClippedEnd mark bars cut off by the window edges, so the
	// presentation layer can render open ends.
	ClippedStart bool
	ClippedEnd   bool
}

// Span is the rendered width in columns.
func (p Placement) Span() int { return p.ColumnEnd - p.ColumnStart }

// GridLayout is the computed layout for one lane (one employee, or one
// project in the project-view grouping).
type GridLayout struct {
	TotalColumns int
	Rows         int
	Placements   []Placement
}

// =============================================================================
// LAYOUT
// =============================================================================

// Layout places assignments onto the grid given the ordered visible days.
// Assignments that fail validation or miss the window entirely are left out;
// callers normally pass the FilterWindow result. Time-off bars sort first so
// they draw topmost; the rest keep their input order.
func Layout(assignments []Assignment, days []Date, g Granularity) GridLayout {
	if len(days) == 0 {
		return GridLayout{}
	}

	totalColumns := len(days)
	daysPerColumn := 1
	if g == GranularityQuarter {
		daysPerColumn = 7
		totalColumns = (len(days) + 6) / 7
	}
	window := DateRange{Start: days[0], End: days[len(days)-1]}

	visible := FilterWindow(assignments, window)
	ordered := make([]Assignment, len(visible))
	copy(ordered, visible)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Kind == KindTimeOff && ordered[j].Kind != KindTimeOff
	})

	singleKind := countKinds(ordered) <= 1
	hasTimeOff := false
	for _, a := range ordered {
		if a.Kind == KindTimeOff {
			hasTimeOff = true
			break
		}
	}

	layout := GridLayout{TotalColumns: totalColumns}
	nextRow := 1
	if hasTimeOff && !singleKind {
		nextRow = 2 // row 1 reserved for the shared time-off lane
	}

	for _, a := range ordered {
		p := place(a, window, totalColumns, daysPerColumn, g)
		switch {
		case singleKind:
			p.Row = 1
		case a.Kind == KindTimeOff:
			p.Row = 1
		default:
			p.Row = nextRow
			nextRow++
		}
		layout.Placements = append(layout.Placements, p)
	}

	layout.Rows = rowCount(ordered, singleKind, hasTimeOff)
	return layout
}

// place computes grid columns and compaction hints for one assignment.
func place(a Assignment, window DateRange, totalColumns, daysPerColumn int, g Granularity) Placement {
	p := Placement{AssignmentID: a.ID, Kind: a.Kind}

	if a.From.Before(window.Start) {
		p.ColumnStart = 1
		p.ClippedStart = true
	} else {
		p.ColumnStart = DaysBetween(window.Start, a.From)/daysPerColumn + 1
	}

	if a.To.After(window.End) {
		p.ColumnEnd = totalColumns + 1
		p.ClippedEnd = true
	} else {
		p.ColumnEnd = DaysBetween(window.Start, a.To)/daysPerColumn + 2
	}

	span := p.Span()
	switch g {
	case GranularityQuarter:
		p.Compact = span <= 3
		p.Hidden = span <= 1
	default:
		p.Compact = span == 1
	}
	return p
}

// rowCount applies the stacking rules: one shared row for time off when
// mixed with other kinds, one row per remaining non-time-off bar, and a
// single shared row when only one kind is visible.
func rowCount(visible []Assignment, singleKind, hasTimeOff bool) int {
	if len(visible) == 0 {
		return 0
	}
	if singleKind {
		return 1
	}
	rows := 0
	if hasTimeOff {
		rows = 1
	}
	for _, a := range visible {
		if a.Kind != KindTimeOff {
			rows++
		}
	}
	if rows == 0 {
		rows = 1
	}
	return rows
}

func countKinds(assignments []Assignment) int {
	seen := make(map[Kind]struct{}, 3)
	for _, a := range assignments {
		seen[a.Kind] = struct{}{}
	}
	return len(seen)
}
