package attendance

import (
	"context"
)

// TimeLogService defines business logic for attendance operations.
type TimeLogService interface {
	// CheckIn opens a shift for the authenticated employee.
	CheckIn(ctx context.Context, req CheckInRequest) (TimeLogResponse, error)

	// CheckOut closes the employee's open shift and finalizes its duration.
	CheckOut(ctx context.Context, req CheckOutRequest) (TimeLogResponse, error)

	// GetMyTimeLogs retrieves records for the authenticated employee with
	// derived duration and status.
	GetMyTimeLogs(ctx context.Context, filter TimeLogFilter) (ListTimeLogsResponse, error)

	// ListTimeLogs retrieves records company-wide (manager).
	ListTimeLogs(ctx context.Context, filter TimeLogFilter) (ListTimeLogsResponse, error)

	// GetTimeLog retrieves a single record by ID.
	GetTimeLog(ctx context.Context, id string) (TimeLogResponse, error)

	// DeleteTimeLog removes a record (manager).
	DeleteTimeLog(ctx context.Context, id string) error
}
