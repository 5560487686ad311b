package payroll

type PayslipResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	PeriodYear   int     `json:"period_year"`
	PeriodMonth  int     `json:"period_month"`
	BaseSalary   float64 `json:"base_salary"`
	Allowances   float64 `json:"allowances"`
	Deductions   float64 `json:"deductions"`
	NetPay       float64 `json:"net_pay"`
	Currency     string  `json:"currency"`
	PaidAt       *string `json:"paid_at,omitempty"`
}

type ListPayslipsResponse struct {
	Payslips   []PayslipResponse `json:"payslips"`
	TotalItems int64             `json:"total_items"`
}

type PayslipFilter struct {
	Year  int
	Page  int
	Limit int
}

// Normalize applies pagination defaults.
func (f *PayslipFilter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 12
	}
}

func ToPayslipResponse(p Payslip) PayslipResponse {
	resp := PayslipResponse{
		ID:           p.ID,
		EmployeeID:   p.EmployeeID,
		EmployeeName: p.EmployeeName,
		PeriodYear:   p.PeriodYear,
		PeriodMonth:  p.PeriodMonth,
		BaseSalary:   p.BaseSalary,
		Allowances:   p.Allowances,
		Deductions:   p.Deductions,
		NetPay:       p.NetPay,
		Currency:     p.Currency,
	}
	if p.PaidAt != nil {
		d := p.PaidAt.Format("2006-01-02")
		resp.PaidAt = &d
	}
	return resp
}
