package attendance

import (
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	Note *string `json:"note"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Note != nil && len(*r.Note) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CheckOutRequest struct {
	Note *string `json:"note"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Note != nil && len(*r.Note) > 500 {
		errs = append(errs, validator.ValidationError{
			Field:   "note",
			Message: "note must not exceed 500 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// TimeLogResponse carries a record plus its derived duration and status. The
// derivation happens server-side at response time so the UI only renders.
type TimeLogResponse struct {
	ID               string   `json:"id"`
	EmployeeID       string   `json:"employee_id"`
	EmployeeName     *string  `json:"employee_name,omitempty"`
	EmployeePosition *string  `json:"employee_position,omitempty"`
	LogDate          string   `json:"log_date"`
	CheckInTime      *string  `json:"check_in_time,omitempty"`
	CheckOutTime     *string  `json:"check_out_time,omitempty"`
	DurationHours    *float64 `json:"duration_hours,omitempty"`
	DurationSource   string   `json:"duration_source"`
	Status           string   `json:"status"`
	Note             *string  `json:"note,omitempty"`
}

type ListTimeLogsResponse struct {
	TimeLogs   []TimeLogResponse `json:"time_logs"`
	TotalItems int64             `json:"total_items"`
	Page       int               `json:"page"`
	Limit      int               `json:"limit"`
}

// TimeLogFilter narrows listings to a month and paginates.
type TimeLogFilter struct {
	Year       int
	Month      int
	EmployeeID string
	Page       int
	Limit      int
}

func (f *TimeLogFilter) Validate() error {
	var errs validator.ValidationErrors

	if f.Month < 0 || f.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}
	if f.Year < 0 || (f.Year != 0 && (f.Year < 2000 || f.Year > 2100)) {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: "year must be between 2000 and 2100",
		})
	}
	if f.Page < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "page",
			Message: "page must be a positive number",
		})
	}
	if f.Limit < 0 || f.Limit > 100 {
		errs = append(errs, validator.ValidationError{
			Field:   "limit",
			Message: "limit must be between 1 and 100",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

// Normalize applies pagination defaults.
func (f *TimeLogFilter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
}
