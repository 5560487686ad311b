package attendance

import (
	"time"
)

// TimeLog is one attendance record. Check-in/check-out are time-of-day
// strings ("HH:mm:ss") in the company's timezone; a nil CheckOutTime marks an
// open shift still in progress. TotalWorkingHours is the finalized duration
// written at check-out (or by the auto-close job); when present it is
// authoritative and listings must not recompute it.
type TimeLog struct {
	ID                string
	EmployeeID        string
	CompanyID         string
	LogDate           time.Time
	CheckInTime       *string
	CheckOutTime      *string
	TotalWorkingHours *float64
	Note              *string
	CreatedAt         time.Time
	UpdatedAt         time.Time

	// DTO / Join
	EmployeeName     *string
	EmployeePosition *string
}

// Ongoing reports whether the shift is still open.
func (t *TimeLog) Ongoing() bool {
	return t.CheckInTime != nil && t.CheckOutTime == nil
}
