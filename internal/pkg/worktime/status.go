package worktime

// OvertimeThresholdHours is the working-hours threshold beyond which a shift
// counts as overtime. Fixed business rule for now.
const OvertimeThresholdHours = 8.0

// Status is the derived state of an attendance record.
type Status string

const (
	StatusUnknown            Status = "unknown"
	StatusInProgress         Status = "in_progress"
	StatusInProgressOvertime Status = "in_progress_overtime"
	StatusCompleted          Status = "completed"
	StatusOvertime           Status = "overtime"
)

// Classify maps a computed duration to a status. known is false when no
// duration could be determined, ongoing is true for an open shift. Rules are
// checked in order, first match wins.
func Classify(hours float64, known bool, ongoing bool) Status {
	switch {
	case !known:
		return StatusUnknown
	case ongoing && hours > OvertimeThresholdHours:
		return StatusInProgressOvertime
	case ongoing:
		return StatusInProgress
	case hours > OvertimeThresholdHours:
		return StatusOvertime
	default:
		return StatusCompleted
	}
}

// ClassifyDuration is Classify over a resolved Duration.
func ClassifyDuration(d Duration, ongoing bool) Status {
	return Classify(d.Hours, d.Known(), ongoing)
}
