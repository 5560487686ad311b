package ticket

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/ticket"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/user"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TicketServiceImpl struct {
	db *database.DB
	ticket.TicketRepository

	now func() time.Time
}

func NewTicketService(db *database.DB, ticketRepo ticket.TicketRepository) *TicketServiceImpl {
	return &TicketServiceImpl{
		db:               db,
		TicketRepository: ticketRepo,
		now:              time.Now,
	}
}

func claimsFromContext(ctx context.Context) (companyID string, employeeID string, role string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, ok = claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	role, _ = claims["role"].(string)

	return companyID, employeeID, role, nil
}

func isManager(role string) bool {
	return role == string(user.RoleOwner) || role == string(user.RoleManager)
}

// Create implements ticket.TicketService.
func (s *TicketServiceImpl) Create(ctx context.Context, req ticket.CreateTicketRequest) (ticket.TicketResponse, error) {
	if err := req.Validate(); err != nil {
		return ticket.TicketResponse{}, err
	}

	companyID, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return ticket.TicketResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return ticket.TicketResponse{}, fmt.Errorf("failed to generate id: %w", err)
	}

	t := ticket.Ticket{
		ID:         id.String(),
		CompanyID:  companyID,
		EmployeeID: employeeID,
		Subject:    req.Subject,
		Body:       req.Body,
		Category:   req.Category,
		Priority:   req.Priority,
		Status:     ticket.StatusOpen,
	}

	created, err := s.TicketRepository.Create(ctx, t)
	if err != nil {
		return ticket.TicketResponse{}, fmt.Errorf("failed to create ticket: %w", err)
	}
	return toTicketResponse(created), nil
}

// GetMyTickets implements ticket.TicketService.
func (s *TicketServiceImpl) GetMyTickets(ctx context.Context, filter ticket.TicketFilter) (ticket.ListTicketsResponse, error) {
	filter.Normalize()

	companyID, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return ticket.ListTicketsResponse{}, err
	}

	tickets, total, err := s.TicketRepository.ListByEmployee(ctx, employeeID, filter, companyID)
	if err != nil {
		return ticket.ListTicketsResponse{}, fmt.Errorf("failed to list tickets: %w", err)
	}
	return toListResponse(tickets, total), nil
}

// ListTickets implements ticket.TicketService.
func (s *TicketServiceImpl) ListTickets(ctx context.Context, filter ticket.TicketFilter) (ticket.ListTicketsResponse, error) {
	filter.Normalize()

	companyID, _, _, err := claimsFromContext(ctx)
	if err != nil {
		return ticket.ListTicketsResponse{}, err
	}

	tickets, total, err := s.TicketRepository.ListByCompany(ctx, filter, companyID)
	if err != nil {
		return ticket.ListTicketsResponse{}, fmt.Errorf("failed to list tickets: %w", err)
	}
	return toListResponse(tickets, total), nil
}

// Get implements ticket.TicketService. Employees may only read their own
// tickets; managers may read any ticket in the company.
func (s *TicketServiceImpl) Get(ctx context.Context, id string) (ticket.TicketDetailResponse, error) {
	companyID, employeeID, role, err := claimsFromContext(ctx)
	if err != nil {
		return ticket.TicketDetailResponse{}, err
	}

	t, err := s.TicketRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ticket.TicketDetailResponse{}, ticket.ErrTicketNotFound
		}
		return ticket.TicketDetailResponse{}, fmt.Errorf("failed to get ticket: %w", err)
	}
	if t.EmployeeID != employeeID && !isManager(role) {
		return ticket.TicketDetailResponse{}, ticket.ErrUnauthorized
	}

	comments, err := s.TicketRepository.ListComments(ctx, t.ID)
	if err != nil {
		return ticket.TicketDetailResponse{}, fmt.Errorf("failed to list comments: %w", err)
	}

	detail := ticket.TicketDetailResponse{TicketResponse: toTicketResponse(t)}
	for _, comment := range comments {
		detail.Comments = append(detail.Comments, ticket.CommentResponse{
			ID:         comment.ID,
			AuthorID:   comment.AuthorID,
			AuthorName: comment.AuthorName,
			Body:       comment.Body,
			CreatedAt:  comment.CreatedAt.Format(time.RFC3339),
		})
	}
	return detail, nil
}

// Comment implements ticket.TicketService.
func (s *TicketServiceImpl) Comment(ctx context.Context, req ticket.CommentRequest) (ticket.CommentResponse, error) {
	if err := req.Validate(); err != nil {
		return ticket.CommentResponse{}, err
	}

	companyID, employeeID, role, err := claimsFromContext(ctx)
	if err != nil {
		return ticket.CommentResponse{}, err
	}

	t, err := s.TicketRepository.GetByID(ctx, req.TicketID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ticket.CommentResponse{}, ticket.ErrTicketNotFound
		}
		return ticket.CommentResponse{}, fmt.Errorf("failed to get ticket: %w", err)
	}
	if t.EmployeeID != employeeID && !isManager(role) {
		return ticket.CommentResponse{}, ticket.ErrUnauthorized
	}
	if t.IsFinal() {
		return ticket.CommentResponse{}, ticket.ErrTicketFinalized
	}

	id, err := uuid.NewV7()
	if err != nil {
		return ticket.CommentResponse{}, fmt.Errorf("failed to generate id: %w", err)
	}

	created, err := s.TicketRepository.CreateComment(ctx, ticket.Comment{
		ID:       id.String(),
		TicketID: t.ID,
		AuthorID: employeeID,
		Body:     req.Body,
	})
	if err != nil {
		return ticket.CommentResponse{}, fmt.Errorf("failed to create comment: %w", err)
	}

	// A manager commenting on an open ticket moves it to in progress.
	if isManager(role) && t.Status == ticket.StatusOpen {
		if err := s.TicketRepository.UpdateStatus(ctx, t.ID, companyID, ticket.StatusInProgress, &employeeID); err != nil {
			return ticket.CommentResponse{}, fmt.Errorf("failed to update ticket status: %w", err)
		}
	}

	return ticket.CommentResponse{
		ID:        created.ID,
		AuthorID:  created.AuthorID,
		Body:      created.Body,
		CreatedAt: created.CreatedAt.Format(time.RFC3339),
	}, nil
}

// Resolve implements ticket.TicketService.
func (s *TicketServiceImpl) Resolve(ctx context.Context, id string) error {
	return s.transition(ctx, id, ticket.StatusResolved)
}

// Close implements ticket.TicketService.
func (s *TicketServiceImpl) Close(ctx context.Context, id string) error {
	return s.transition(ctx, id, ticket.StatusClosed)
}

func (s *TicketServiceImpl) transition(ctx context.Context, id string, status string) error {
	companyID, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}

	t, err := s.TicketRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ticket.ErrTicketNotFound
		}
		return fmt.Errorf("failed to get ticket: %w", err)
	}
	if t.IsFinal() {
		return ticket.ErrTicketFinalized
	}

	if err := s.TicketRepository.UpdateStatus(ctx, t.ID, companyID, status, &employeeID); err != nil {
		return fmt.Errorf("failed to update ticket status: %w", err)
	}
	return nil
}

func toListResponse(tickets []ticket.Ticket, total int64) ticket.ListTicketsResponse {
	items := make([]ticket.TicketResponse, 0, len(tickets))
	for _, t := range tickets {
		items = append(items, toTicketResponse(t))
	}
	return ticket.ListTicketsResponse{Tickets: items, TotalItems: total}
}

func toTicketResponse(t ticket.Ticket) ticket.TicketResponse {
	return ticket.TicketResponse{
		ID:           t.ID,
		EmployeeID:   t.EmployeeID,
		EmployeeName: t.EmployeeName,
		Subject:      t.Subject,
		Body:         t.Body,
		Category:     t.Category,
		Priority:     t.Priority,
		Status:       t.Status,
		CreatedAt:    t.CreatedAt.Format(time.RFC3339),
	}
}
