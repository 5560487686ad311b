package leave

import "time"

// LeaveType entity
type LeaveType struct {
	ID                   string
	CompanyID            string
	Name                 string
	Color                *string
	DefaultAllowanceDays float64
	RequiresApproval     bool
	IsActive             bool
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// Request statuses
const (
	StatusPending   = "pending"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)

// LeaveRequest is a date-ranged absence. EndDate nil means a single-day
// request; when present it is on or after StartDate.
type LeaveRequest struct {
	ID              string
	CompanyID       string
	EmployeeID      string
	LeaveTypeID     string
	StartDate       time.Time
	EndDate         *time.Time
	Status          string
	Reason          *string
	ReviewedBy      *string
	ReviewedAt      *time.Time
	RejectionReason *string
	CreatedAt       time.Time
	UpdatedAt       time.Time

	// DTO / Join
	EmployeeName  *string
	LeaveTypeName *string
	LeaveColor    *string
}

// Days returns the inclusive calendar-day length of the request.
func (r *LeaveRequest) Days() int {
	end := r.StartDate
	if r.EndDate != nil {
		end = *r.EndDate
	}
	return int(end.Sub(r.StartDate).Hours()/24) + 1
}

// IsProcessed reports whether the request already left the pending state.
func (r *LeaveRequest) IsProcessed() bool {
	return r.Status != StatusPending
}
