package postgresql

import (
	"context"
	"fmt"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/payroll"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type payslipRepositoryImpl struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payroll.PayslipRepository {
	return &payslipRepositoryImpl{db: db}
}

const payslipColumns = `p.id, p.company_id, p.employee_id, p.period_year, p.period_month,
	p.base_salary, p.allowances, p.deductions, p.net_pay, p.currency, p.paid_at,
	p.created_at, p.updated_at`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var p payroll.Payslip
	err := row.Scan(
		&p.ID,
		&p.CompanyID,
		&p.EmployeeID,
		&p.PeriodYear,
		&p.PeriodMonth,
		&p.BaseSalary,
		&p.Allowances,
		&p.Deductions,
		&p.NetPay,
		&p.Currency,
		&p.PaidAt,
		&p.CreatedAt,
		&p.UpdatedAt,
		&p.EmployeeName,
	)
	return p, err
}

// GetByID implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) GetByID(ctx context.Context, id string, companyID string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT ` + payslipColumns + `, e.full_name
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id
		WHERE p.id = $1 AND p.company_id = $2
	`

	return scanPayslip(q.QueryRow(ctx, query, id, companyID))
}

// ListByEmployee implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) ListByEmployee(ctx context.Context, employeeID string, filter payroll.PayslipFilter, companyID string) ([]payroll.Payslip, int64, error) {
	return r.list(ctx, &employeeID, filter, companyID)
}

// ListByCompany implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) ListByCompany(ctx context.Context, filter payroll.PayslipFilter, companyID string) ([]payroll.Payslip, int64, error) {
	return r.list(ctx, nil, filter, companyID)
}

func (r *payslipRepositoryImpl) list(ctx context.Context, employeeID *string, filter payroll.PayslipFilter, companyID string) ([]payroll.Payslip, int64, error) {
	q := GetQuerier(ctx, r.db)

	where := `WHERE p.company_id = $1`
	args := []interface{}{companyID}

	if employeeID != nil {
		args = append(args, *employeeID)
		where += fmt.Sprintf(` AND p.employee_id = $%d`, len(args))
	}
	if filter.Year != 0 {
		args = append(args, filter.Year)
		where += fmt.Sprintf(` AND p.period_year = $%d`, len(args))
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM payslips p ` + where
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)
	query := `
		SELECT ` + payslipColumns + `, e.full_name
		FROM payslips p
		JOIN employees e ON e.id = p.employee_id ` + where +
		fmt.Sprintf(` ORDER BY p.period_year DESC, p.period_month DESC LIMIT $%d OFFSET $%d`, len(args)-1, len(args))

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var payslips []payroll.Payslip
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, 0, err
		}
		payslips = append(payslips, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return payslips, total, nil
}
