package ticket

import "context"

// TicketRepository defines data access methods for support tickets.
type TicketRepository interface {
	Create(ctx context.Context, ticket Ticket) (Ticket, error)
	GetByID(ctx context.Context, id string, companyID string) (Ticket, error)
	ListByEmployee(ctx context.Context, employeeID string, filter TicketFilter, companyID string) ([]Ticket, int64, error)
	ListByCompany(ctx context.Context, filter TicketFilter, companyID string) ([]Ticket, int64, error)
	UpdateStatus(ctx context.Context, id string, companyID string, status string, assignedTo *string) error

	// Comments
	CreateComment(ctx context.Context, comment Comment) (Comment, error)
	ListComments(ctx context.Context, ticketID string) ([]Comment, error)
}
