package payroll

import "context"

// PayslipService defines read-only payroll display logic.
type PayslipService interface {
	GetMyPayslips(ctx context.Context, filter PayslipFilter) (ListPayslipsResponse, error)
	GetPayslip(ctx context.Context, id string) (PayslipResponse, error)
	ListPayslips(ctx context.Context, filter PayslipFilter) (ListPayslipsResponse, error)
}
