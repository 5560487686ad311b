package calgrid

import "time"

// Week is one visible row of a month grid: 7 consecutive calendar days,
// Sunday first. Weeks are derived fresh from the selected month on every
// call, never persisted.
type Week [7]time.Time

// Start returns the week's Sunday.
func (w Week) Start() time.Time { return w[0] }

// End returns the week's Saturday.
func (w Week) End() time.Time { return w[6] }

// Contains reports whether the day falls inside the week.
func (w Week) Contains(day time.Time) bool {
	d := dayFloor(day)
	return !d.Before(w.Start()) && !d.After(w.End())
}

// MonthWeeks builds the week rows covering a month: from the Sunday on or
// before the 1st through the Saturday on or after the last day.
func MonthWeeks(year int, month time.Month, loc *time.Location) []Week {
	if loc == nil {
		loc = time.Local
	}

	first := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	last := first.AddDate(0, 1, -1)

	cursor := first.AddDate(0, 0, -int(first.Weekday()))

	var weeks []Week
	for !cursor.After(last) {
		var w Week
		for i := 0; i < 7; i++ {
			w[i] = cursor.AddDate(0, 0, i)
		}
		weeks = append(weeks, w)
		cursor = cursor.AddDate(0, 0, 7)
	}
	return weeks
}
