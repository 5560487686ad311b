package worktime

import (
	"strings"
	"time"
)

// timeOfDayLayout is the normalized layout every check-in/check-out string is
// parsed with after normalization.
const timeOfDayLayout = "15:04:05"

// NormalizeTimeOfDay appends ":00" seconds to an "HH:mm" string so that both
// "HH:mm" and "HH:mm:ss" inputs parse with the same layout. Strings that do
// not contain a ':' separator are returned unchanged (they fail parsing later).
func NormalizeTimeOfDay(s string) string {
	if strings.Count(s, ":") == 1 {
		return s + ":00"
	}
	return s
}

// parseTimeOfDay parses a normalized time-of-day string. Malformed input is
// reported through ok, never a panic.
func parseTimeOfDay(s string) (time.Time, bool) {
	if !strings.Contains(s, ":") {
		return time.Time{}, false
	}
	t, err := time.Parse(timeOfDayLayout, NormalizeTimeOfDay(s))
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// combine builds an instant from a calendar date and a parsed time-of-day,
// in the date's location.
func combine(date, tod time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		tod.Hour(), tod.Minute(), tod.Second(), 0,
		date.Location(),
	)
}

// ComputeDurationHours computes the elapsed working hours of an attendance
// record. checkIn and checkOut are time-of-day strings ("HH:mm" or
// "HH:mm:ss"); a nil checkOut marks an open shift whose duration is measured
// against now. now is always injected by the caller so the computation stays
// deterministic under test.
//
// ok is false when the inputs cannot yield a trustworthy duration: a missing
// or malformed check-in string, or a stored check-out that predates the
// check-in (out-of-order data is surfaced, not silently clamped).
func ComputeDurationHours(logDate time.Time, checkIn string, checkOut *string, now time.Time) (float64, bool) {
	in, ok := parseTimeOfDay(checkIn)
	if !ok {
		return 0, false
	}

	ongoing := checkOut == nil

	checkInAt := combine(logDate, in)
	var checkOutAt time.Time
	if ongoing {
		checkOutAt = now
	} else {
		out, ok := parseTimeOfDay(*checkOut)
		if !ok {
			return 0, false
		}
		checkOutAt = combine(logDate, out)
	}

	diff := checkOutAt.Sub(checkInAt)

	if diff < 0 && ongoing {
		// An open shift whose logDate lands on the wrong side of a local/UTC
		// day boundary can produce a negative diff even though the shift
		// started today. Retry with the check-in re-anchored to now's
		// calendar date before giving up.
		diff = now.Sub(combine(now, in))
		if diff < 0 {
			diff = 0
		}
		return diff.Hours(), true
	}

	if diff < 0 {
		return 0, false
	}

	return diff.Hours(), true
}

// Source tells where a resolved duration came from.
type Source int

const (
	// SourceUnknown means no duration could be determined.
	SourceUnknown Source = iota
	// SourceServer means the backend supplied a precomputed total; it is
	// authoritative and the value was not recomputed locally.
	SourceServer
	// SourceComputed means the value was derived from the record's check-in
	// and check-out times.
	SourceComputed
)

func (s Source) String() string {
	switch s {
	case SourceServer:
		return "server"
	case SourceComputed:
		return "computed"
	default:
		return "unknown"
	}
}

// Duration is a resolved working duration tagged with its origin.
type Duration struct {
	Hours  float64
	Source Source
}

// Known reports whether the duration carries a usable value.
func (d Duration) Known() bool {
	return d.Source != SourceUnknown
}

// ResolveDuration applies the precedence rule between a server-supplied total
// and a locally computed one: when serverHours is present it wins and nothing
// is recomputed; otherwise the duration is computed from the record's times.
func ResolveDuration(serverHours *float64, logDate time.Time, checkIn string, checkOut *string, now time.Time) Duration {
	if serverHours != nil {
		return Duration{Hours: *serverHours, Source: SourceServer}
	}
	hours, ok := ComputeDurationHours(logDate, checkIn, checkOut, now)
	if !ok {
		return Duration{}
	}
	return Duration{Hours: hours, Source: SourceComputed}
}
