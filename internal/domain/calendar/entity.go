package calendar

import "time"

// Event types
const (
	TypeHoliday      = "holiday"
	TypeMeeting      = "meeting"
	TypeTraining     = "training"
	TypeAnnouncement = "announcement"
	TypeOther        = "other"
)

// EventTypes lists the accepted event type values.
var EventTypes = []string{TypeHoliday, TypeMeeting, TypeTraining, TypeAnnouncement, TypeOther}

// Event is a company calendar entry. EndDate nil means a single-day event;
// when present it is on or after StartDate.
type Event struct {
	ID          string
	CompanyID   string
	Title       string
	Description *string
	EventType   string
	StartDate   time.Time
	EndDate     *time.Time
	Color       *string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// MultiDay reports whether the event spans more than one calendar day.
func (e *Event) MultiDay() bool {
	return e.EndDate != nil && !e.EndDate.Equal(e.StartDate)
}
