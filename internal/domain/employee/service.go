package employee

import "context"

// EmployeeService defines business logic for employee administration and
// profile management.
type EmployeeService interface {
	GetMyProfile(ctx context.Context) (EmployeeResponse, error)
	UpdateMyProfile(ctx context.Context, req UpdateMyProfileRequest) (EmployeeResponse, error)
	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeesResponse, error)
	GetEmployee(ctx context.Context, id string) (EmployeeResponse, error)
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (EmployeeResponse, error)
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (EmployeeResponse, error)
	DeactivateEmployee(ctx context.Context, id string) error
}
