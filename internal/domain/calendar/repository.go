package calendar

import (
	"context"
	"time"
)

// EventRepository defines data access methods for company calendar events.
type EventRepository interface {
	Create(ctx context.Context, event Event) (Event, error)
	GetByID(ctx context.Context, id string, companyID string) (Event, error)

	// ListInRange returns events touching [from, to] inclusive.
	ListInRange(ctx context.Context, companyID string, from, to time.Time) ([]Event, error)

	Update(ctx context.Context, event Event) error
	Delete(ctx context.Context, id string, companyID string) error
}
