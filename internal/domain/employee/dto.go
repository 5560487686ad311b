package employee

import (
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Position *string `json:"position"`
	Phone    *string `json:"phone"`
	HireDate *string `json:"hire_date"` // "2006-01-02"
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}
	if len(r.FullName) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name must not exceed 255 characters",
		})
	}
	if validator.IsEmpty(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email is required",
		})
	} else if !validator.IsValidEmail(r.Email) {
		errs = append(errs, validator.ValidationError{
			Field:   "email",
			Message: "email must be a valid email address",
		})
	}
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "hire_date",
				Message: "hire_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateEmployeeRequest struct {
	ID       string  `json:"-"`
	FullName string  `json:"full_name"`
	Position *string `json:"position"`
	Phone    *string `json:"phone"`
	HireDate *string `json:"hire_date"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}
	if r.HireDate != nil {
		if _, ok := validator.IsValidDate(*r.HireDate); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "hire_date",
				Message: "hire_date must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type UpdateMyProfileRequest struct {
	FullName string  `json:"full_name"`
	Phone    *string `json:"phone"`
}

func (r *UpdateMyProfileRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full_name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type EmployeeResponse struct {
	ID               string  `json:"id"`
	FullName         string  `json:"full_name"`
	Email            string  `json:"email"`
	Position         *string `json:"position,omitempty"`
	Phone            *string `json:"phone,omitempty"`
	HireDate         *string `json:"hire_date,omitempty"`
	EmploymentStatus string  `json:"employment_status"`
}

type ListEmployeesResponse struct {
	Employees  []EmployeeResponse `json:"employees"`
	TotalItems int64              `json:"total_items"`
}

type EmployeeFilter struct {
	Search string
	Status string
	Page   int
	Limit  int
}

func ToEmployeeResponse(e Employee) EmployeeResponse {
	resp := EmployeeResponse{
		ID:               e.ID,
		FullName:         e.FullName,
		Email:            e.Email,
		Position:         e.Position,
		Phone:            e.Phone,
		EmploymentStatus: e.EmploymentStatus,
	}
	if e.HireDate != nil {
		d := e.HireDate.Format("2006-01-02")
		resp.HireDate = &d
	}
	return resp
}
