package postgresql

import (
	"context"
	"fmt"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/ticket"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type ticketRepositoryImpl struct {
	db *database.DB
}

func NewTicketRepository(db *database.DB) ticket.TicketRepository {
	return &ticketRepositoryImpl{db: db}
}

const ticketColumns = `t.id, t.company_id, t.employee_id, t.subject, t.body, t.category,
	t.priority, t.status, t.assigned_to, t.resolved_at, t.created_at, t.updated_at`

func scanTicket(row pgx.Row, withEmployee bool) (ticket.Ticket, error) {
	var t ticket.Ticket
	dest := []interface{}{
		&t.ID,
		&t.CompanyID,
		&t.EmployeeID,
		&t.Subject,
		&t.Body,
		&t.Category,
		&t.Priority,
		&t.Status,
		&t.AssignedTo,
		&t.ResolvedAt,
		&t.CreatedAt,
		&t.UpdatedAt,
	}
	if withEmployee {
		dest = append(dest, &t.EmployeeName)
	}
	err := row.Scan(dest...)
	return t, err
}

// Create implements ticket.TicketRepository.
func (r *ticketRepositoryImpl) Create(ctx context.Context, t ticket.Ticket) (ticket.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO tickets AS t (id, company_id, employee_id, subject, body, category, priority, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + ticketColumns

	return scanTicket(q.QueryRow(ctx, query,
		t.ID, t.CompanyID, t.EmployeeID, t.Subject, t.Body, t.Category, t.Priority, t.Status), false)
}

// GetByID implements ticket.TicketRepository.
func (r *ticketRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (ticket.Ticket, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + ticketColumns + `, e.full_name
		FROM tickets t
		JOIN employees e ON e.id = t.employee_id
		WHERE t.id = $1 AND t.company_id = $2
	`

	return scanTicket(q.QueryRow(ctx, query, id, companyID), true)
}

// ListByEmployee implements ticket.TicketRepository.
func (r *ticketRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter ticket.TicketFilter, companyID string) ([]ticket.Ticket, int64, error) {
	return r.list(ctx, &employeeID, filter, companyID)
}

// ListByCompany implements ticket.TicketRepository.
func (r *ticketRepositoryImpl) ListByCompany(ctx context.Context, filter ticket.TicketFilter, companyID string) ([]ticket.Ticket, int64, error) {
	return r.list(ctx, nil, filter, companyID)
}

func (r *ticketRepositoryImpl) list(ctx context.Context, employeeID *string, filter ticket.TicketFilter, companyID string) ([]ticket.Ticket, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE t.company_id = $1`
	args := []interface{}{companyID}

	if employeeID != nil {
		args = append(args, *employeeID)
		where += fmt.Sprintf(` AND t.employee_id = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND t.status = $%d`, len(args))
	}
	if filter.Category != "" {
		args = append(args, filter.Category)
		where += fmt.Sprintf(` AND t.category = $%d`, len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM tickets t ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `
		SELECT ` + ticketColumns + `, e.full_name
		FROM tickets t
		JOIN employees e ON e.id = t.employee_id ` + where +
		fmt.Sprintf(` ORDER BY t.created_at DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var tickets []ticket.Ticket
	for rows.Next() {
		t, err := scanTicket(rows, true)
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, t)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return tickets, total, nil
}

// UpdateStatus implements ticket.TicketRepository.
func (r *ticketRepositoryImpl) UpdateStatus(ctx context.Context, id string, companyID string, status string, assignedTo *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE tickets
		SET status = $1, assigned_to = $2,
			resolved_at = CASE WHEN $1 IN ('resolved', 'closed') THEN NOW() ELSE resolved_at END,
			updated_at = NOW()
		WHERE id = $3 AND company_id = $4
	`

	tag, err := q.Exec(ctx, query, status, assignedTo, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// CreateComment implements ticket.TicketRepository.
func (r *ticketRepositoryImpl) CreateComment(ctx context.Context, comment ticket.Comment) (ticket.Comment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO ticket_comments (id, ticket_id, author_id, body)
		VALUES ($1, $2, $3, $4)
		RETURNING id, ticket_id, author_id, body, created_at
	`

	var created ticket.Comment
	err := q.QueryRow(ctx, query, comment.ID, comment.TicketID, comment.AuthorID, comment.Body).Scan(
		&created.ID,
		&created.TicketID,
		&created.AuthorID,
		&created.Body,
		&created.CreatedAt,
	)
	if err != nil {
		return ticket.Comment{}, err
	}

	return created, nil
}

// ListComments implements ticket.TicketRepository.
func (r *ticketRepositoryImpl) ListComments(ctx context.Context, ticketID string) ([]ticket.Comment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT c.id, c.ticket_id, c.author_id, c.body, c.created_at, e.full_name
		FROM ticket_comments c
		JOIN employees e ON e.id = c.author_id
		WHERE c.ticket_id = $1
		ORDER BY c.created_at ASC
	`

	rows, err := q.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []ticket.Comment
	for rows.Next() {
		var c ticket.Comment
		if err := rows.Scan(&c.ID, &c.TicketID, &c.AuthorID, &c.Body, &c.CreatedAt, &c.AuthorName); err != nil {
			return nil, err
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return comments, nil
}
