package worktime

import "testing"

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		hours   float64
		known   bool
		ongoing bool
		want    Status
	}{
		{"unknown beats everything", 12, false, false, StatusUnknown},
		{"unknown ongoing", 0, false, true, StatusUnknown},
		{"exactly at threshold is completed", 8.0, true, false, StatusCompleted},
		{"just past threshold is overtime", 8.0001, true, false, StatusOvertime},
		{"half day completed", 4.0, true, false, StatusCompleted},
		{"long day overtime", 8.5, true, false, StatusOvertime},
		{"ongoing under threshold", 4.0, true, true, StatusInProgress},
		{"ongoing at threshold", 8.0, true, true, StatusInProgress},
		{"ongoing past threshold", 9.5, true, true, StatusInProgressOvertime},
		{"zero hours completed", 0, true, false, StatusCompleted},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Classify(c.hours, c.known, c.ongoing); got != c.want {
				t.Errorf("Classify(%v, %v, %v) = %v, want %v", c.hours, c.known, c.ongoing, got, c.want)
			}
		})
	}
}

func TestClassifyDuration(t *testing.T) {
	if got := ClassifyDuration(Duration{Hours: 8.5, Source: SourceServer}, false); got != StatusOvertime {
		t.Errorf("server 8.5h = %v, want %v", got, StatusOvertime)
	}
	if got := ClassifyDuration(Duration{}, true); got != StatusUnknown {
		t.Errorf("unknown duration = %v, want %v", got, StatusUnknown)
	}
}
