package ticket

import "context"

// TicketService defines business logic for internal support tickets.
type TicketService interface {
	Create(ctx context.Context, req CreateTicketRequest) (TicketResponse, error)
	GetMyTickets(ctx context.Context, filter TicketFilter) (ListTicketsResponse, error)
	ListTickets(ctx context.Context, filter TicketFilter) (ListTicketsResponse, error)
	Get(ctx context.Context, id string) (TicketDetailResponse, error)
	Comment(ctx context.Context, req CommentRequest) (CommentResponse, error)
	Resolve(ctx context.Context, id string) error
	Close(ctx context.Context, id string) error
}
