package employee

import "context"

// EmployeeRepository defines data access methods for employees.
// All methods include companyID to prevent cross-company data access.
type EmployeeRepository interface {
	Create(ctx context.Context, employee Employee) (Employee, error)
	GetByID(ctx context.Context, id string, companyID string) (Employee, error)
	GetByUserID(ctx context.Context, userID string) (Employee, error)
	GetByEmail(ctx context.Context, email string, companyID string) (Employee, error)
	List(ctx context.Context, filter EmployeeFilter, companyID string) ([]Employee, int64, error)
	Update(ctx context.Context, employee Employee) error
	SetEmploymentStatus(ctx context.Context, id string, companyID string, status string) error
}
