package leave

import (
	"context"
)

// LeaveService defines business logic for leave requests and types.
type LeaveService interface {
	// Submit files a new leave request for the authenticated employee.
	Submit(ctx context.Context, req SubmitLeaveRequest) (LeaveRequestResponse, error)

	// GetMyRequests lists the authenticated employee's requests.
	GetMyRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestsResponse, error)

	// ListRequests lists company-wide requests (manager).
	ListRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestsResponse, error)

	// Approve / Reject / Cancel move a pending request to a final state.
	Approve(ctx context.Context, req ReviewLeaveRequest) (LeaveRequestResponse, error)
	Reject(ctx context.Context, req ReviewLeaveRequest) (LeaveRequestResponse, error)
	Cancel(ctx context.Context, id string) (LeaveRequestResponse, error)

	// GetMyAllowances reports remaining allowance per leave type.
	GetMyAllowances(ctx context.Context, year int) ([]AllowanceResponse, error)

	// MonthView builds the leave calendar for a month: week rows with
	// multi-day bars stacked into non-overlapping lanes.
	MonthView(ctx context.Context, year int, month int) (MonthViewResponse, error)

	// Leave type administration (manager).
	ListTypes(ctx context.Context) ([]LeaveTypeResponse, error)
	CreateType(ctx context.Context, req LeaveTypeRequest) (LeaveTypeResponse, error)
	UpdateType(ctx context.Context, req LeaveTypeRequest) (LeaveTypeResponse, error)
	DeleteType(ctx context.Context, id string) error
}
