package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/leave"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestColumns = `r.id, r.company_id, r.employee_id, r.leave_type_id, r.start_date,
	r.end_date, r.status, r.reason, r.reviewed_by, r.reviewed_at, r.rejection_reason,
	r.created_at, r.updated_at`

func scanLeaveRequest(row pgx.Row, withJoins bool) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	dest := []interface{}{
		&lr.ID,
		&lr.CompanyID,
		&lr.EmployeeID,
		&lr.LeaveTypeID,
		&lr.StartDate,
		&lr.EndDate,
		&lr.Status,
		&lr.Reason,
		&lr.ReviewedBy,
		&lr.ReviewedAt,
		&lr.RejectionReason,
		&lr.CreatedAt,
		&lr.UpdatedAt,
	}
	if withJoins {
		dest = append(dest, &lr.EmployeeName, &lr.LeaveTypeName, &lr.LeaveColor)
	}
	err := row.Scan(dest...)
	return lr, err
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_requests AS r (id, company_id, employee_id, leave_type_id, start_date, end_date, status, reason)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + leaveRequestColumns

	return scanLeaveRequest(q.QueryRow(ctx, query,
		request.ID, request.CompanyID, request.EmployeeID, request.LeaveTypeID,
		request.StartDate, request.EndDate, request.Status, request.Reason), false)
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + leaveRequestColumns + `, e.full_name, lt.name, lt.color
		FROM leave_requests r
		JOIN employees e ON e.id = r.employee_id
		JOIN leave_types lt ON lt.id = r.leave_type_id
		WHERE r.id = $1 AND r.company_id = $2
	`

	return scanLeaveRequest(q.QueryRow(ctx, query, id, companyID), true)
}

// ListByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter leave.LeaveRequestFilter, companyID string) ([]leave.LeaveRequest, int64, error) {
	return r.list(ctx, &employeeID, filter, companyID)
}

// ListByCompany implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListByCompany(ctx context.Context, filter leave.LeaveRequestFilter, companyID string) ([]leave.LeaveRequest, int64, error) {
	return r.list(ctx, nil, filter, companyID)
}

func (r *leaveRequestRepositoryImpl) list(ctx context.Context, employeeID *string, filter leave.LeaveRequestFilter, companyID string) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE r.company_id = $1`
	args := []interface{}{companyID}

	if employeeID != nil {
		args = append(args, *employeeID)
		where += fmt.Sprintf(` AND r.employee_id = $%d`, len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND r.status = $%d`, len(args))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		where += fmt.Sprintf(` AND EXTRACT(YEAR FROM r.start_date) = $%d`, len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM leave_requests r ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `
		SELECT ` + leaveRequestColumns + `, e.full_name, lt.name, lt.color
		FROM leave_requests r
		JOIN employees e ON e.id = r.employee_id
		JOIN leave_types lt ON lt.id = r.leave_type_id ` + where +
		fmt.Sprintf(` ORDER BY r.start_date DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows, true)
		if err != nil {
			return nil, 0, err
		}
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return requests, total, nil
}

// ListInRange implements leave.LeaveRequestRepository. A request touches the
// range when its start is on or before `to` and its effective end (end_date,
// or start_date for single-day requests) is on or after `from`.
func (r *leaveRequestRepositoryImpl) ListInRange(ctx context.Context, companyID string, from, to time.Time, statuses []string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE r.company_id = $1 AND r.start_date <= $2 AND COALESCE(r.end_date, r.start_date) >= $3`
	args := []interface{}{companyID, to, from}

	if len(statuses) > 0 {
		args = append(args, statuses)
		where += fmt.Sprintf(` AND r.status = ANY($%d)`, len(args))
	}

	query := `
		SELECT ` + leaveRequestColumns + `, e.full_name, lt.name, lt.color
		FROM leave_requests r
		JOIN employees e ON e.id = r.employee_id
		JOIN leave_types lt ON lt.id = r.leave_type_id ` + where + `
		ORDER BY r.start_date ASC
	`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []leave.LeaveRequest
	for rows.Next() {
		lr, err := scanLeaveRequest(rows, true)
		if err != nil {
			return nil, err
		}
		requests = append(requests, lr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return requests, nil
}

// SumApprovedDays implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) SumApprovedDays(ctx context.Context, employeeID string, leaveTypeID string, year int) (float64, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT COALESCE(SUM(COALESCE(end_date, start_date) - start_date + 1), 0)
		FROM leave_requests
		WHERE employee_id = $1 AND leave_type_id = $2 AND status = 'approved'
		  AND EXTRACT(YEAR FROM start_date) = $3
	`

	var days float64
	err := q.QueryRow(ctx, query, employeeID, leaveTypeID, year).Scan(&days)
	return days, err
}

// HasOverlapping implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS(
			SELECT 1 FROM leave_requests
			WHERE employee_id = $1 AND status IN ('pending', 'approved')
			  AND start_date <= $2 AND COALESCE(end_date, start_date) >= $3
		)
	`

	var exists bool
	err := q.QueryRow(ctx, query, employeeID, end, start).Scan(&exists)
	return exists, err
}

// UpdateStatus implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) UpdateStatus(ctx context.Context, id string, status string, reviewedBy *string, rejectionReason *string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests
		SET status = $1, reviewed_by = $2, reviewed_at = NOW(), rejection_reason = $3, updated_at = NOW()
		WHERE id = $4
	`

	tag, err := q.Exec(ctx, query, status, reviewedBy, rejectionReason, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
