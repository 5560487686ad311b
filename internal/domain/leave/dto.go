package leave

import (
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/validator"
)

type SubmitLeaveRequest struct {
	LeaveTypeID string  `json:"leave_type_id"`
	StartDate   string  `json:"start_date"`         // "2006-01-02"
	EndDate     *string `json:"end_date,omitempty"` // nil means single day
	Reason      *string `json:"reason"`
}

func (r *SubmitLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.LeaveTypeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "leave_type_id",
			Message: "leave_type_id is required",
		})
	}
	if validator.IsEmpty(r.StartDate) {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date is required",
		})
	} else {
		end := ""
		if r.EndDate != nil {
			end = *r.EndDate
		}
		if _, _, ok := validator.IsValidDateRange(r.StartDate, end); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "start_date",
				Message: "start_date and end_date must be valid dates with end_date on or after start_date",
			})
		}
	}
	if r.Reason != nil && len(*r.Reason) > 1000 {
		errs = append(errs, validator.ValidationError{
			Field:   "reason",
			Message: "reason must not exceed 1000 characters",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type ReviewLeaveRequest struct {
	ID              string  `json:"-"`
	RejectionReason *string `json:"rejection_reason"`
}

func (r *ReviewLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{
			Field:   "id",
			Message: "id is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveRequestResponse struct {
	ID              string  `json:"id"`
	EmployeeID      string  `json:"employee_id"`
	EmployeeName    *string `json:"employee_name,omitempty"`
	LeaveTypeID     string  `json:"leave_type_id"`
	LeaveTypeName   *string `json:"leave_type_name,omitempty"`
	Color           *string `json:"color,omitempty"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Days            int     `json:"days"`
	Status          string  `json:"status"`
	Reason          *string `json:"reason,omitempty"`
	RejectionReason *string `json:"rejection_reason,omitempty"`
}

type ListLeaveRequestsResponse struct {
	Requests   []LeaveRequestResponse `json:"requests"`
	TotalItems int64                  `json:"total_items"`
}

type LeaveRequestFilter struct {
	Status string
	Year   int
	Page   int
	Limit  int
}

// Normalize applies pagination defaults.
func (f *LeaveRequestFilter) Normalize() {
	if f.Page <= 0 {
		f.Page = 1
	}
	if f.Limit <= 0 {
		f.Limit = 20
	}
}

type LeaveTypeRequest struct {
	ID                   string  `json:"-"`
	Name                 string  `json:"name"`
	Color                *string `json:"color"`
	DefaultAllowanceDays float64 `json:"default_allowance_days"`
	RequiresApproval     bool    `json:"requires_approval"`
}

func (r *LeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if r.DefaultAllowanceDays < 0 || r.DefaultAllowanceDays > 366 {
		errs = append(errs, validator.ValidationError{
			Field:   "default_allowance_days",
			Message: "default_allowance_days must be between 0 and 366",
		})
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type LeaveTypeResponse struct {
	ID                   string  `json:"id"`
	Name                 string  `json:"name"`
	Color                *string `json:"color,omitempty"`
	DefaultAllowanceDays float64 `json:"default_allowance_days"`
	RequiresApproval     bool    `json:"requires_approval"`
	IsActive             bool    `json:"is_active"`
}

// AllowanceResponse reports remaining allowance for one leave type.
type AllowanceResponse struct {
	LeaveTypeID   string  `json:"leave_type_id"`
	LeaveTypeName string  `json:"leave_type_name"`
	AllowanceDays float64 `json:"allowance_days"`
	UsedDays      float64 `json:"used_days"`
	RemainingDays float64 `json:"remaining_days"`
}

// Month-view DTOs: the leave calendar page renders approved and pending
// requests as bars stacked into lanes per week row.

type MonthViewResponse struct {
	Year  int        `json:"year"`
	Month int        `json:"month"`
	Weeks []WeekView `json:"weeks"`
}

type WeekView struct {
	Days      [7]string             `json:"days"` // "2006-01-02" per cell
	Bars      []BarView             `json:"bars"`
	LaneCount int                   `json:"lane_count"`
	Cells     map[string][]CellItem `json:"cells,omitempty"` // single-day requests keyed by day
}

// BarView is one multi-day bar clipped to a week. CapStart/CapEnd tell the UI
// which edges to round: only the event's true boundaries, not week-clipped
// continuations.
type BarView struct {
	ID           string  `json:"id"`
	Label        string  `json:"label"`
	Color        *string `json:"color,omitempty"`
	Status       string  `json:"status,omitempty"`
	DisplayStart string  `json:"display_start"`
	DisplayEnd   string  `json:"display_end"`
	CapStart     bool    `json:"cap_start"`
	CapEnd       bool    `json:"cap_end"`
	Lane         int     `json:"lane"`
}

// CellItem is a single-day request rendered inside its day cell instead of
// consuming a bar lane.
type CellItem struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Color  *string `json:"color,omitempty"`
	Status string  `json:"status,omitempty"`
}
