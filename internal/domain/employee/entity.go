package employee

import "time"

type Employee struct {
	ID               string
	CompanyID        string
	UserID           *string
	FullName         string
	Email            string
	Position         *string
	Phone            *string
	HireDate         *time.Time
	EmploymentStatus string // 'active', 'inactive'
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsActive reports whether the employee is currently employed.
func (e *Employee) IsActive() bool {
	return e.EmploymentStatus == "active"
}
