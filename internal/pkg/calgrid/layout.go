package calgrid

import (
	"sort"
	"time"
)

// Segment is a span clipped to one week row. DisplayStart/DisplayEnd are the
// clipped inclusive days; CapStart/CapEnd mark whether the bar's edge sits on
// the event's true boundary (rounded cap) or on a week-clipped continuation.
type Segment struct {
	ID           string
	DisplayStart time.Time
	DisplayEnd   time.Time
	CapStart     bool
	CapEnd       bool
	Lane         int
}

// overlaps is the inclusive-day interval test on clipped segments.
func (s Segment) overlaps(o Segment) bool {
	return !s.DisplayStart.After(o.DisplayEnd) && !s.DisplayEnd.Before(o.DisplayStart)
}

// ClipToWeek truncates a span to the week's boundaries. ok is false when the
// span does not touch the week at all.
func ClipToWeek(span Span, week Week) (Segment, bool) {
	if span.End.Before(week.Start()) || span.Start.After(week.End()) {
		return Segment{}, false
	}

	seg := Segment{
		ID:           span.ID,
		DisplayStart: span.Start,
		DisplayEnd:   span.End,
		CapStart:     true,
		CapEnd:       true,
	}
	if seg.DisplayStart.Before(week.Start()) {
		seg.DisplayStart = week.Start()
		seg.CapStart = false
	}
	if seg.DisplayEnd.After(week.End()) {
		seg.DisplayEnd = week.End()
		seg.CapEnd = false
	}
	return seg, true
}

// Layout holds the lane assignment of one week row.
type Layout struct {
	Segments  []Segment
	laneCount int
}

// Lane returns the lane assigned to a span in this week.
func (l Layout) Lane(id string) (int, bool) {
	for _, seg := range l.Segments {
		if seg.ID == id {
			return seg.Lane, true
		}
	}
	return 0, false
}

// Lanes returns the span→lane mapping for the week.
func (l Layout) Lanes() map[string]int {
	out := make(map[string]int, len(l.Segments))
	for _, seg := range l.Segments {
		out[seg.ID] = seg.Lane
	}
	return out
}

// LaneCount is the number of stacked lanes the week needs; it drives the
// rendered row height.
func (l Layout) LaneCount() int {
	return l.laneCount
}

// LayoutWeek clips the spans to the week and stacks the surviving segments
// into lanes so that no two overlapping segments share a lane. Segments are
// processed in display-start order (stable, so same-day starts keep their
// input order) and each takes the smallest free lane.
func LayoutWeek(week Week, spans []Span) Layout {
	var segments []Segment
	for _, span := range spans {
		if seg, ok := ClipToWeek(span, week); ok {
			segments = append(segments, seg)
		}
	}

	sort.SliceStable(segments, func(i, j int) bool {
		return segments[i].DisplayStart.Before(segments[j].DisplayStart)
	})

	var lanes [][]Segment
	for i := range segments {
		assigned := false
		for lane := 0; lane < len(lanes); lane++ {
			if fits(segments[i], lanes[lane]) {
				segments[i].Lane = lane
				lanes[lane] = append(lanes[lane], segments[i])
				assigned = true
				break
			}
		}
		if !assigned {
			segments[i].Lane = len(lanes)
			lanes = append(lanes, []Segment{segments[i]})
		}
	}

	return Layout{Segments: segments, laneCount: len(lanes)}
}

func fits(seg Segment, lane []Segment) bool {
	for _, other := range lane {
		if seg.overlaps(other) {
			return false
		}
	}
	return true
}
