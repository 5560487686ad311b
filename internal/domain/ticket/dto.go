package ticket

import (
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/validator"
)

type CreateTicketRequest struct {
	Subject  string `json:"subject"`
	Body     string `json:"body"`
	Category string `json:"category"`
	Priority string `json:"priority"`
}

func (r *CreateTicketRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Subject) {
		errs = append(errs, validator.ValidationError{
			Field:   "subject",
			Message: "subject is required",
		})
	}
	if len(r.Subject) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "subject",
			Message: "subject must not exceed 255 characters",
		})
	}
	if validator.IsEmpty(r.Body) {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "body is required",
		})
	}
	if !validator.IsInSlice(r.Category, Categories) {
		errs = append(errs, validator.ValidationError{
			Field:   "category",
			Message: "category must be one of: it, hr, facility, payroll, other",
		})
	}
	if !validator.IsInSlice(r.Priority, Priorities) {
		errs = append(errs, validator.ValidationError{
			Field:   "priority",
			Message: "priority must be one of: low, medium, high",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CommentRequest struct {
	TicketID string `json:"-"`
	Body     string `json:"body"`
}

func (r *CommentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Body) {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "body is required",
		})
	}
	if len(r.Body) > 5000 {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "body must not exceed 5000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type TicketResponse struct {
	ID           string  `json:"id"`
	EmployeeID   string  `json:"employee_id"`
	EmployeeName *string `json:"employee_name,omitempty"`
	Subject      string  `json:"subject"`
	Body         string  `json:"body"`
	Category     string  `json:"category"`
	Priority     string  `json:"priority"`
	Status       string  `json:"status"`
	CreatedAt    string  `json:"created_at"`
}

type TicketDetailResponse struct {
	TicketResponse
	Comments []CommentResponse `json:"comments"`
}

type CommentResponse struct {
	ID         string  `json:"id"`
	AuthorID   string  `json:"author_id"`
	AuthorName *string `json:"author_name,omitempty"`
	Body       string  `json:"body"`
	CreatedAt  string  `json:"created_at"`
}

type ListTicketsResponse struct {
	Tickets    []TicketResponse `json:"tickets"`
	TotalItems int64            `json:"total_items"`
}

type TicketFilter struct {
	Status   string
	Category string
	Page     int
	Limit    int
}

// Normalize applies pagination defaults.
func (f *TicketFilter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
}
