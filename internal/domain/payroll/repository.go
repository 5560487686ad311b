package payroll

import "context"

// PayslipRepository defines data access methods for payslips.
type PayslipRepository interface {
	GetByID(ctx context.Context, id string, companyID string) (Payslip, error)
	ListByEmployee(ctx context.Context, employeeID string, filter PayslipFilter, companyID string) ([]Payslip, int64, error)
	ListByCompany(ctx context.Context, filter PayslipFilter, companyID string) ([]Payslip, int64, error)
}
