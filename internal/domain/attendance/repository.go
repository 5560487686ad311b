package attendance

import (
	"context"
	"time"
)

// TimeLogRepository defines data access methods for attendance records.
// All methods include companyID to prevent cross-company data access.
type TimeLogRepository interface {
	Create(ctx context.Context, log TimeLog) (TimeLog, error)

	GetByID(ctx context.Context, id string, companyID string) (TimeLog, error)

	// GetOpenLog returns the employee's open shift, if any.
	GetOpenLog(ctx context.Context, employeeID string, companyID string) (*TimeLog, error)

	// HasCheckedInOn reports whether the employee already has a record for
	// the given local date ("2006-01-02").
	HasCheckedInOn(ctx context.Context, employeeID string, dateLocal string, companyID string) (bool, error)

	Update(ctx context.Context, log TimeLog) error

	Delete(ctx context.Context, id string, companyID string) error

	// ListByEmployee retrieves an employee's records with filters and pagination.
	ListByEmployee(ctx context.Context, employeeID string, filter TimeLogFilter, companyID string) ([]TimeLog, int64, error)

	// ListByCompany retrieves all records in a company with filters and pagination.
	ListByCompany(ctx context.Context, filter TimeLogFilter, companyID string) ([]TimeLog, int64, error)

	// ListStaleOpenLogs returns open shifts whose log date is before the
	// given day, for the auto-close job.
	ListStaleOpenLogs(ctx context.Context, before time.Time) ([]TimeLog, error)
}
