package calendar

import (
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/validator"
)

type CreateEventRequest struct {
	Title       string  `json:"title"`
	Description *string `json:"description"`
	EventType   string  `json:"event_type"`
	StartDate   string  `json:"start_date"`         // "2006-01-02"
	EndDate     *string `json:"end_date,omitempty"` // nil means single day
	Color       *string `json:"color"`
}

func (r *CreateEventRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if len(r.Title) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title must not exceed 255 characters",
		})
	}
	if !validator.IsInSlice(r.EventType, EventTypes) {
		errs = append(errs, validator.ValidationError{
			Field:   "event_type",
			Message: "event_type must be one of: holiday, meeting, training, announcement, other",
		})
	}
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else {
		end := ""
		if r.EndDate != nil {
			end = *r.EndDate
		}
		if _, _, ok := validator.IsValidDateRange(r.StartDate, end); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date and end_date must be valid dates with end_date on or after start_date",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEventRequest struct {
	ID string `json:"-"`
	CreateEventRequest
}

type EventResponse struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	EventType   string  `json:"event_type"`
	StartDate   string  `json:"start_date"`
	EndDate     string  `json:"end_date"`
	Color       *string `json:"color,omitempty"`
}

type ListEventsResponse struct {
	Events []EventResponse `json:"events"`
}

// Month-view DTOs: the company calendar merges events and approved leave
// into week rows. Multi-day entries become bars stacked into lanes; single-
// day entries are bucketed into their day cell.

type MonthViewResponse struct {
	Year  int        `json:"year"`
	Month int        `json:"month"`
	Weeks []WeekView `json:"weeks"`
}

type WeekView struct {
	Days      [7]string             `json:"days"` // "2006-01-02" per cell
	Bars      []BarView             `json:"bars"`
	LaneCount int                   `json:"lane_count"`
	Cells     map[string][]CellItem `json:"cells,omitempty"` // single-day items keyed by day
}

// BarView is one multi-day bar clipped to a week row. CapStart/CapEnd tell
// the UI which edges to round: only the entry's true boundaries, not
// week-clipped continuations.
type BarView struct {
	ID           string  `json:"id"`
	Kind         string  `json:"kind"` // "event" or "leave"
	Label        string  `json:"label"`
	EventType    string  `json:"event_type,omitempty"`
	Color        *string `json:"color,omitempty"`
	DisplayStart string  `json:"display_start"`
	DisplayEnd   string  `json:"display_end"`
	CapStart     bool    `json:"cap_start"`
	CapEnd       bool    `json:"cap_end"`
	Lane         int     `json:"lane"`
}

type CellItem struct {
	ID        string  `json:"id"`
	Kind      string  `json:"kind"`
	Label     string  `json:"label"`
	EventType string  `json:"event_type,omitempty"`
	Color     *string `json:"color,omitempty"`
}
