package calendar

import (
	"context"
)

// EventService defines business logic for the company calendar.
type EventService interface {
	CreateEvent(ctx context.Context, req CreateEventRequest) (EventResponse, error)
	UpdateEvent(ctx context.Context, req UpdateEventRequest) (EventResponse, error)
	DeleteEvent(ctx context.Context, id string) error
	GetEvent(ctx context.Context, id string) (EventResponse, error)

	// MonthView builds the company calendar grid for a month: week rows with
	// multi-day bars (events plus approved leave) stacked into lanes, and
	// single-day items bucketed per cell.
	MonthView(ctx context.Context, year int, month int) (MonthViewResponse, error)

	// ExportICS renders the company's events for a year as an iCalendar feed.
	ExportICS(ctx context.Context, year int) (string, error)
}
