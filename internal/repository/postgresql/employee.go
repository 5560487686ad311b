package postgresql

import (
	"context"
	"fmt"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/employee"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeColumns = `id, company_id, user_id, full_name, email, position, phone,
	hire_date, employment_status, created_at, updated_at`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.CompanyID,
		&e.UserID,
		&e.FullName,
		&e.Email,
		&e.Position,
		&e.Phone,
		&e.HireDate,
		&e.EmploymentStatus,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	return e, err
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, e employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO employees (id, company_id, user_id, full_name, email, position, phone, hire_date, employment_status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + employeeColumns

	return scanEmployee(q.QueryRow(ctx, query,
		e.ID, e.CompanyID, e.UserID, e.FullName, e.Email, e.Position, e.Phone, e.HireDate, e.EmploymentStatus))
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE id = $1 AND company_id = $2`
	return scanEmployee(q.QueryRow(ctx, query, id, companyID))
}

// GetByUserID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByUserID(ctx context.Context, userID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE user_id = $1`
	return scanEmployee(q.QueryRow(ctx, query, userID))
}

// GetByEmail implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByEmail(ctx context.Context, email string, companyID string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + employeeColumns + ` FROM employees WHERE email = $1 AND company_id = $2`
	return scanEmployee(q.QueryRow(ctx, query, email, companyID))
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter, companyID string) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE company_id = $1`
	args := []interface{}{companyID}

	if filter.Status != "" {
		args = append(args, filter.Status)
		where += fmt.Sprintf(` AND employment_status = $%d`, len(args))
	}
	if filter.Search != "" {
		args = append(args, "%"+filter.Search+"%")
		where += fmt.Sprintf(` AND (full_name ILIKE $%d OR email ILIKE $%d)`, len(args), len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM employees ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `SELECT ` + employeeColumns + ` FROM employees ` + where +
		fmt.Sprintf(` ORDER BY full_name ASC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var employees []employee.Employee
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, err
		}
		employees = append(employees, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return employees, total, nil
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, e employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET full_name = $1, position = $2, phone = $3, hire_date = $4, updated_at = NOW()
		WHERE id = $5 AND company_id = $6
	`

	_, err := q.Exec(ctx, query, e.FullName, e.Position, e.Phone, e.HireDate, e.ID, e.CompanyID)
	return err
}

// SetEmploymentStatus implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) SetEmploymentStatus(ctx context.Context, id string, companyID string, status string) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees
		SET employment_status = $1, updated_at = NOW()
		WHERE id = $2 AND company_id = $3
	`

	tag, err := q.Exec(ctx, query, status, id, companyID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
