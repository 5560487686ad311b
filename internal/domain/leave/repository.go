package leave

import (
	"context"
	"time"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string, companyID string) (LeaveType, error)
	GetByCompanyID(ctx context.Context, companyID string) ([]LeaveType, error)
	Update(ctx context.Context, leaveType LeaveType) error
	Delete(ctx context.Context, id string, companyID string) error
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string, companyID string) (LeaveRequest, error)
	ListByEmployee(ctx context.Context, employeeID string, filter LeaveRequestFilter, companyID string) ([]LeaveRequest, int64, error)
	ListByCompany(ctx context.Context, filter LeaveRequestFilter, companyID string) ([]LeaveRequest, int64, error)

	// ListInRange returns requests touching [from, to] inclusive, optionally
	// restricted to the given statuses.
	ListInRange(ctx context.Context, companyID string, from, to time.Time, statuses []string) ([]LeaveRequest, error)

	// SumApprovedDays totals the inclusive days of an employee's approved
	// requests for one leave type within a calendar year.
	SumApprovedDays(ctx context.Context, employeeID string, leaveTypeID string, year int) (float64, error)

	// HasOverlapping reports whether the employee already has a pending or
	// approved request touching [start, end].
	HasOverlapping(ctx context.Context, employeeID string, start, end time.Time) (bool, error)

	UpdateStatus(ctx context.Context, id string, status string, reviewedBy *string, rejectionReason *string) error
}
