package payroll

import (
	"context"
	"errors"
	"fmt"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/payroll"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/user"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
)

type PayslipServiceImpl struct {
	db *database.DB
	payroll.PayslipRepository
}

func NewPayslipService(db *database.DB, payslipRepo payroll.PayslipRepository) *PayslipServiceImpl {
	return &PayslipServiceImpl{
		db:                db,
		PayslipRepository: payslipRepo,
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

// GetMyPayslips implements payroll.PayslipService.
func (s *PayslipServiceImpl) GetMyPayslips(ctx context.Context, filter payroll.PayslipFilter) (payroll.ListPayslipsResponse, error) {
	filter.Normalize()

	companyID, employeeID, _, err := claimsFromContext(ctx)
	if err != nil {
		return payroll.ListPayslipsResponse{}, err
	}

	payslips, total, err := s.PayslipRepository.ListByEmployee(ctx, employeeID, filter, companyID)
	if err != nil {
		return payroll.ListPayslipsResponse{}, fmt.Errorf("failed to list payslips: %w", err)
	}
	return toListResponse(payslips, total), nil
}

// GetPayslip implements payroll.PayslipService. Employees may only read
// their own payslips.
func (s *PayslipServiceImpl) GetPayslip(ctx context.Context, id string) (payroll.PayslipResponse, error) {
	companyID, employeeID, role, err := claimsFromContext(ctx)
	if err != nil {
		return payroll.PayslipResponse{}, err
	}

	payslip, err := s.PayslipRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayslipResponse{}, payroll.ErrPayslipNotFound
		}
		return payroll.PayslipResponse{}, fmt.Errorf("failed to get payslip: %w", err)
	}
	if payslip.EmployeeID != employeeID && role != string(user.RoleOwner) {
		return payroll.PayslipResponse{}, payroll.ErrUnauthorized
	}

	return payroll.ToPayslipResponse(payslip), nil
}

// ListPayslips implements payroll.PayslipService.
func (s *PayslipServiceImpl) ListPayslips(ctx context.Context, filter payroll.PayslipFilter) (payroll.ListPayslipsResponse, error) {
	filter.Normalize()

	companyID, _, _, err := claimsFromContext(ctx)
	if err != nil {
		return payroll.ListPayslipsResponse{}, err
	}

	payslips, total, err := s.PayslipRepository.ListByCompany(ctx, filter, companyID)
	if err != nil {
		return payroll.ListPayslipsResponse{}, fmt.Errorf("failed to list payslips: %w", err)
	}
	return toListResponse(payslips, total), nil
}

func toListResponse(payslips []payroll.Payslip, total int64) payroll.ListPayslipsResponse {
	items := make([]payroll.PayslipResponse, 0, len(payslips))
	for _, payslip := range payslips {
		items = append(items, payroll.ToPayslipResponse(payslip))
	}
	return payroll.ListPayslipsResponse{Payslips: items, TotalItems: total}
}
