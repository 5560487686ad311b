package payroll

import "time"

// Payslip is a read-only projection of one payroll period for one employee.
// Amounts are computed by the payroll provider; this service only displays
// them.
type Payslip struct {
	ID          string
	CompanyID   string
	EmployeeID  string
	PeriodYear  int
	PeriodMonth int
	BaseSalary  float64
	Allowances  float64
	Deductions  float64
	NetPay      float64
	Currency    string
	PaidAt      *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// DTO / Join
	EmployeeName *string
}
