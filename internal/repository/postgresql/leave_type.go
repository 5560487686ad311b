package postgresql

import (
	"context"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/leave"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

const leaveTypeColumns = `id, company_id, name, color, default_allowance_days,
	requires_approval, is_active, created_at, updated_at`

func scanLeaveType(row pgx.Row) (leave.LeaveType, error) {
	var lt leave.LeaveType
	err := row.Scan(
		&lt.ID,
		&lt.CompanyID,
		&lt.Name,
		&lt.Color,
		&lt.DefaultAllowanceDays,
		&lt.RequiresApproval,
		&lt.IsActive,
		&lt.CreatedAt,
		&lt.UpdatedAt,
	)
	return lt, err
}

// Create implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO leave_types (id, company_id, name, color, default_allowance_days, requires_approval, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + leaveTypeColumns

	return scanLeaveType(q.QueryRow(ctx, query,
		leaveType.ID, leaveType.CompanyID, leaveType.Name, leaveType.Color,
		leaveType.DefaultAllowanceDays, leaveType.RequiresApproval, leaveType.IsActive))
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveTypeColumns + ` FROM leave_types WHERE id = $1 AND company_id = $2`
	return scanLeaveType(q.QueryRow(ctx, query, id, companyID))
}

// GetByCompanyID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByCompanyID(ctx context.Context, companyID string) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveTypeColumns + ` FROM leave_types WHERE company_id = $1 ORDER BY name ASC`

	rows, err := q.Query(ctx, query, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		lt, err := scanLeaveType(rows)
		if err != nil {
			return nil, err
		}
		types = append(types, lt)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return types, nil
}

// Update implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Update(ctx context.Context, leaveType leave.LeaveType) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_types
		SET name = $1, color = $2, default_allowance_days = $3, requires_approval = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6 AND company_id = $7
	`

	tag, err := q.Exec(ctx, query,
		leaveType.Name, leaveType.Color, leaveType.DefaultAllowanceDays,
		leaveType.RequiresApproval, leaveType.IsActive, leaveType.ID, leaveType.CompanyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// Delete implements leave.LeaveTypeRepository. Types are soft-deleted so that
// historical requests keep their reference.
func (r *leaveTypeRepositoryImpl) Delete(ctx context.Context, id string, companyID string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_types
		SET is_active = FALSE, updated_at = NOW()
		WHERE id = $1 AND company_id = $2
	`

	tag, err := q.Exec(ctx, query, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
