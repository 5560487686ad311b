package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/attendance"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/company"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/employee"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/database"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/worktime"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type TimeLogServiceImpl struct {
	db *database.DB
	attendance.TimeLogRepository
	employee.EmployeeRepository
	company.CompanyRepository

	// now is injected so derived durations are deterministic under test.
	now func() time.Time
}

func NewTimeLogService(
	db *database.DB,
	timeLogRepo attendance.TimeLogRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
) *TimeLogServiceImpl {
	return &TimeLogServiceImpl{
		db:                 db,
		TimeLogRepository:  timeLogRepo,
		EmployeeRepository: employeeRepo,
		CompanyRepository:  companyRepo,
		now:                time.Now,
	}
}

// claimsFromContext extracts the company and employee identity from the JWT.
func claimsFromContext(ctx context.Context) (companyID string, employeeID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	employeeID, ok = claims["employee_id"].(string)
	if !ok || employeeID == "" {
		return "", "", fmt.Errorf("employee_id claim is missing or invalid")
	}

	return companyID, employeeID, nil
}

// companyLocation loads the company timezone, falling back to UTC.
func (s *TimeLogServiceImpl) companyLocation(ctx context.Context, companyID string) *time.Location {
	comp, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		return time.UTC
	}
	loc, err := time.LoadLocation(comp.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CheckIn implements attendance.TimeLogService.
func (s *TimeLogServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.TimeLogResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.TimeLogResponse{}, err
	}

	companyID, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.TimeLogResponse{}, err
	}

	emp, err := s.EmployeeRepository.GetByID(ctx, employeeID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.TimeLogResponse{}, employee.ErrEmployeeNotFound
		}
		return attendance.TimeLogResponse{}, fmt.Errorf("failed to get employee: %w", err)
	}
	if !emp.IsActive() {
		return attendance.TimeLogResponse{}, employee.ErrEmployeeInactive
	}

	loc := s.companyLocation(ctx, companyID)
	nowLocal := s.now().In(loc)
	dateLocal := nowLocal.Format("2006-01-02")

	hasCheckedIn, err := s.TimeLogRepository.HasCheckedInOn(ctx, employeeID, dateLocal, companyID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return attendance.TimeLogResponse{}, fmt.Errorf("failed to check existing record: %w", err)
	}
	if hasCheckedIn {
		return attendance.TimeLogResponse{}, attendance.ErrAlreadyCheckedIn
	}

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.TimeLogResponse{}, fmt.Errorf("failed to generate id: %w", err)
	}

	checkIn := nowLocal.Format("15:04:05")
	log := attendance.TimeLog{
		ID:          id.String(),
		EmployeeID:  employeeID,
		CompanyID:   companyID,
		LogDate:     time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, loc),
		CheckInTime: &checkIn,
		Note:        req.Note,
	}

	created, err := s.TimeLogRepository.Create(ctx, log)
	if err != nil {
		return attendance.TimeLogResponse{}, fmt.Errorf("failed to create time log: %w", err)
	}

	return s.toResponse(created, nowLocal), nil
}

// CheckOut implements attendance.TimeLogService.
func (s *TimeLogServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.TimeLogResponse, error) {
	if err := req.Validate(); err != nil {
		return attendance.TimeLogResponse{}, err
	}

	companyID, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.TimeLogResponse{}, err
	}

	open, err := s.TimeLogRepository.GetOpenLog(ctx, employeeID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.TimeLogResponse{}, attendance.ErrNotCheckedIn
		}
		return attendance.TimeLogResponse{}, fmt.Errorf("failed to get open log: %w", err)
	}
	if open == nil {
		return attendance.TimeLogResponse{}, attendance.ErrNotCheckedIn
	}
	if open.CheckOutTime != nil {
		return attendance.TimeLogResponse{}, attendance.ErrAlreadyCheckedOut
	}

	loc := s.companyLocation(ctx, companyID)
	nowLocal := s.now().In(loc)

	checkOut := nowLocal.Format("15:04:05")
	open.CheckOutTime = &checkOut
	if req.Note != nil {
		open.Note = req.Note
	}

	// Finalize the duration at check-out: the stored total becomes the
	// authoritative value for every later listing.
	if hours, ok := worktime.ComputeDurationHours(open.LogDate, *open.CheckInTime, open.CheckOutTime, nowLocal); ok {
		open.TotalWorkingHours = &hours
	}

	if err := s.TimeLogRepository.Update(ctx, *open); err != nil {
		return attendance.TimeLogResponse{}, fmt.Errorf("failed to update time log: %w", err)
	}

	return s.toResponse(*open, nowLocal), nil
}

// GetMyTimeLogs implements attendance.TimeLogService.
func (s *TimeLogServiceImpl) GetMyTimeLogs(ctx context.Context, filter attendance.TimeLogFilter) (attendance.ListTimeLogsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListTimeLogsResponse{}, err
	}
	filter.Normalize()

	companyID, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.ListTimeLogsResponse{}, err
	}

	logs, total, err := s.TimeLogRepository.ListByEmployee(ctx, employeeID, filter, companyID)
	if err != nil {
		return attendance.ListTimeLogsResponse{}, fmt.Errorf("failed to list time logs: %w", err)
	}

	return s.toListResponse(ctx, companyID, logs, total, filter), nil
}

// ListTimeLogs implements attendance.TimeLogService.
func (s *TimeLogServiceImpl) ListTimeLogs(ctx context.Context, filter attendance.TimeLogFilter) (attendance.ListTimeLogsResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListTimeLogsResponse{}, err
	}
	filter.Normalize()

	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.ListTimeLogsResponse{}, err
	}

	logs, total, err := s.TimeLogRepository.ListByCompany(ctx, filter, companyID)
	if err != nil {
		return attendance.ListTimeLogsResponse{}, fmt.Errorf("failed to list time logs: %w", err)
	}

	return s.toListResponse(ctx, companyID, logs, total, filter), nil
}

// GetTimeLog implements attendance.TimeLogService.
func (s *TimeLogServiceImpl) GetTimeLog(ctx context.Context, id string) (attendance.TimeLogResponse, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return attendance.TimeLogResponse{}, err
	}

	log, err := s.TimeLogRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.TimeLogResponse{}, attendance.ErrTimeLogNotFound
		}
		return attendance.TimeLogResponse{}, fmt.Errorf("failed to get time log: %w", err)
	}

	loc := s.companyLocation(ctx, companyID)
	return s.toResponse(log, s.now().In(loc)), nil
}

// DeleteTimeLog implements attendance.TimeLogService.
func (s *TimeLogServiceImpl) DeleteTimeLog(ctx context.Context, id string) error {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.TimeLogRepository.Delete(ctx, id, companyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.ErrTimeLogNotFound
		}
		return fmt.Errorf("failed to delete time log: %w", err)
	}
	return nil
}

func (s *TimeLogServiceImpl) toListResponse(ctx context.Context, companyID string, logs []attendance.TimeLog, total int64, filter attendance.TimeLogFilter) attendance.ListTimeLogsResponse {
	loc := s.companyLocation(ctx, companyID)
	nowLocal := s.now().In(loc)

	items := make([]attendance.TimeLogResponse, 0, len(logs))
	for _, log := range logs {
		items = append(items, s.toResponse(log, nowLocal))
	}
	return attendance.ListTimeLogsResponse{
		TimeLogs:   items,
		TotalItems: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
}

// toResponse derives duration and status for one record. The stored total
// wins when present; open shifts are measured against now.
func (s *TimeLogServiceImpl) toResponse(log attendance.TimeLog, now time.Time) attendance.TimeLogResponse {
	resp := attendance.TimeLogResponse{
		ID:               log.ID,
		EmployeeID:       log.EmployeeID,
		EmployeeName:     log.EmployeeName,
		EmployeePosition: log.EmployeePosition,
		LogDate:          log.LogDate.Format("2006-01-02"),
		CheckInTime:      log.CheckInTime,
		CheckOutTime:     log.CheckOutTime,
		Note:             log.Note,
	}

	if log.CheckInTime == nil {
		resp.DurationSource = worktime.SourceUnknown.String()
		resp.Status = string(worktime.StatusUnknown)
		return resp
	}

	dur := worktime.ResolveDuration(log.TotalWorkingHours, log.LogDate, *log.CheckInTime, log.CheckOutTime, now)
	if dur.Known() {
		hours := dur.Hours
		resp.DurationHours = &hours
	}
	resp.DurationSource = dur.Source.String()
	resp.Status = string(worktime.ClassifyDuration(dur, log.Ongoing()))
	return resp
}
