package calgrid

import (
	"log/slog"
	"time"
)

// DateLayout is the day-key format used across month views.
const DateLayout = "2006-01-02"

// Span is a date-ranged item projected onto the calendar grid: a leave
// request or a company event. Start and End are inclusive calendar days; a
// single-day item has End equal to Start.
type Span struct {
	ID    string
	Start time.Time
	End   time.Time
}

// NewSpan builds a Span from a start date and an optional end date. A nil end
// means single-day. An end before the start is a data-quality violation and
// is clamped to a single-day span at the start, never an error.
func NewSpan(id string, start time.Time, end *time.Time) Span {
	s := Span{ID: id, Start: dayFloor(start), End: dayFloor(start)}
	if end == nil {
		return s
	}
	e := dayFloor(*end)
	if e.Before(s.Start) {
		slog.Warn("span end date precedes start date, clamping to single day",
			"id", id,
			"start", s.Start.Format(DateLayout),
			"end", e.Format(DateLayout))
		return s
	}
	s.End = e
	return s
}

// MultiDay reports whether the span covers more than one calendar day.
func (s Span) MultiDay() bool {
	return !s.End.Equal(s.Start)
}

// Overlaps reports whether two spans share at least one calendar day.
func (s Span) Overlaps(o Span) bool {
	return !s.Start.After(o.End) && !s.End.Before(o.Start)
}

// Covers reports whether the span includes the given day.
func (s Span) Covers(day time.Time) bool {
	d := dayFloor(day)
	return !d.Before(s.Start) && !d.After(s.End)
}

// FilterMultiDay returns the spans rendered as horizontal bars across the
// week grid. Single-day spans are rendered inside day cells instead.
func FilterMultiDay(spans []Span) []Span {
	var out []Span
	for _, s := range spans {
		if s.MultiDay() {
			out = append(out, s)
		}
	}
	return out
}

// FilterSingleDay returns the spans rendered inside individual day cells.
func FilterSingleDay(spans []Span) []Span {
	var out []Span
	for _, s := range spans {
		if !s.MultiDay() {
			out = append(out, s)
		}
	}
	return out
}

// dayFloor truncates an instant to midnight of its calendar day, keeping the
// location.
func dayFloor(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
