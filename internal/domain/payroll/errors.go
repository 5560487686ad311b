package payroll

import "errors"

var (
	ErrPayslipNotFound = errors.New("payslip not found")
	ErrUnauthorized    = errors.New("unauthorized to access this payslip")
)
