package calgrid

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func dayPtr(y int, m time.Month, d int) *time.Time {
	t := day(y, m, d)
	return &t
}

// Week of Sun 2024-03-03 .. Sat 2024-03-09.
func testWeek(t *testing.T) Week {
	t.Helper()
	weeks := MonthWeeks(2024, time.March, time.Local)
	require.NotEmpty(t, weeks)
	return weeks[1]
}

func TestMonthWeeks(t *testing.T) {
	weeks := MonthWeeks(2024, time.March, time.Local)

	// March 2024: Fri the 1st through Sun the 31st needs six Sunday-first rows.
	require.Len(t, weeks, 6)
	assert.Equal(t, time.Sunday, weeks[0].Start().Weekday())
	assert.Equal(t, day(2024, time.February, 25), weeks[0].Start())
	assert.Equal(t, day(2024, time.April, 6), weeks[5].End())

	// Rows are consecutive days with no gaps.
	for _, w := range weeks {
		for i := 1; i < 7; i++ {
			assert.Equal(t, w[i-1].AddDate(0, 0, 1), w[i])
		}
	}

	// Every day of the month is covered exactly once.
	seen := map[string]int{}
	for _, w := range weeks {
		for _, d := range w {
			if d.Month() == time.March {
				seen[d.Format(DateLayout)]++
			}
		}
	}
	assert.Len(t, seen, 31)
	for d, n := range seen {
		assert.Equal(t, 1, n, "day %s appears %d times", d, n)
	}
}

func TestNewSpan(t *testing.T) {
	// Nil end behaves like end == start.
	s := NewSpan("a", day(2024, time.March, 4), nil)
	assert.Equal(t, s.Start, s.End)
	assert.False(t, s.MultiDay())

	// Inverted range is clamped to a single day, not an error.
	s = NewSpan("b", day(2024, time.March, 4), dayPtr(2024, time.March, 1))
	assert.Equal(t, day(2024, time.March, 4), s.Start)
	assert.Equal(t, day(2024, time.March, 4), s.End)

	// Time-of-day components are dropped.
	s = NewSpan("c", time.Date(2024, time.March, 4, 15, 30, 0, 0, time.Local), dayPtr(2024, time.March, 6))
	assert.Equal(t, day(2024, time.March, 4), s.Start)
	assert.True(t, s.MultiDay())
}

func TestFilterMultiDay(t *testing.T) {
	spans := []Span{
		NewSpan("single", day(2024, time.March, 4), nil),
		NewSpan("multi", day(2024, time.March, 4), dayPtr(2024, time.March, 6)),
		NewSpan("same-end", day(2024, time.March, 5), dayPtr(2024, time.March, 5)),
	}

	multi := FilterMultiDay(spans)
	require.Len(t, multi, 1)
	assert.Equal(t, "multi", multi[0].ID)

	single := FilterSingleDay(spans)
	require.Len(t, single, 2)
}

func TestClipToWeek(t *testing.T) {
	week := testWeek(t)

	// Fully inside the week: clipping is the identity, both caps rounded.
	seg, ok := ClipToWeek(NewSpan("in", day(2024, time.March, 4), dayPtr(2024, time.March, 6)), week)
	require.True(t, ok)
	assert.Equal(t, day(2024, time.March, 4), seg.DisplayStart)
	assert.Equal(t, day(2024, time.March, 6), seg.DisplayEnd)
	assert.True(t, seg.CapStart)
	assert.True(t, seg.CapEnd)

	// Starts before the week: left edge clipped and squared off.
	seg, ok = ClipToWeek(NewSpan("left", day(2024, time.February, 28), dayPtr(2024, time.March, 5)), week)
	require.True(t, ok)
	assert.Equal(t, week.Start(), seg.DisplayStart)
	assert.False(t, seg.CapStart)
	assert.True(t, seg.CapEnd)

	// Runs past the week: right edge clipped.
	seg, ok = ClipToWeek(NewSpan("right", day(2024, time.March, 8), dayPtr(2024, time.March, 12)), week)
	require.True(t, ok)
	assert.Equal(t, week.End(), seg.DisplayEnd)
	assert.True(t, seg.CapStart)
	assert.False(t, seg.CapEnd)

	// Entirely outside: excluded.
	_, ok = ClipToWeek(NewSpan("out", day(2024, time.March, 11), dayPtr(2024, time.March, 13)), week)
	assert.False(t, ok)
}

func TestLayoutWeek_OverlapStacking(t *testing.T) {
	week := testWeek(t)

	// Mon-Wed, Tue-Thu and Wed-only: the first two collide on Tue-Wed.
	spans := []Span{
		NewSpan("mon-wed", day(2024, time.March, 4), dayPtr(2024, time.March, 6)),
		NewSpan("tue-thu", day(2024, time.March, 5), dayPtr(2024, time.March, 7)),
		NewSpan("wed", day(2024, time.March, 6), nil),
	}

	layout := LayoutWeek(week, spans)
	lanes := layout.Lanes()
	require.Len(t, lanes, 3)

	assert.NotEqual(t, lanes["mon-wed"], lanes["tue-thu"])
	assert.GreaterOrEqual(t, layout.LaneCount(), 2)

	// Earlier start takes the lower lane.
	assert.Equal(t, 0, lanes["mon-wed"])
	assert.Equal(t, 1, lanes["tue-thu"])
}

func TestLayoutWeek_DisjointShareLane(t *testing.T) {
	week := testWeek(t)

	spans := []Span{
		NewSpan("early", day(2024, time.March, 3), dayPtr(2024, time.March, 4)),
		NewSpan("late", day(2024, time.March, 7), dayPtr(2024, time.March, 9)),
	}

	layout := LayoutWeek(week, spans)
	lanes := layout.Lanes()
	assert.Equal(t, lanes["early"], lanes["late"])
	assert.Equal(t, 1, layout.LaneCount())
}

// No two segments sharing a lane may overlap, whatever the input.
func TestLayoutWeek_NoOverlapInvariant(t *testing.T) {
	week := testWeek(t)

	var spans []Span
	for i := 0; i < 25; i++ {
		start := 3 + i%6
		length := (i*7)%4 + 1
		spans = append(spans, NewSpan(
			fmt.Sprintf("ev-%d", i),
			day(2024, time.March, start),
			dayPtr(2024, time.March, start+length),
		))
	}

	layout := LayoutWeek(week, spans)
	for i, a := range layout.Segments {
		for _, b := range layout.Segments[i+1:] {
			if a.Lane == b.Lane {
				assert.False(t, a.overlaps(b),
					"segments %s and %s share lane %d but overlap", a.ID, b.ID, a.Lane)
			}
		}
	}
}

func TestLayoutWeek_Empty(t *testing.T) {
	layout := LayoutWeek(testWeek(t), nil)
	assert.Empty(t, layout.Segments)
	assert.Equal(t, 0, layout.LaneCount())
}
