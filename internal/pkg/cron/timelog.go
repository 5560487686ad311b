package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/attendance"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/company"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/database"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/worktime"
)

// endOfDay is the synthetic check-out written to shifts left open past their
// log date.
const endOfDay = "23:59:59"

type TimeLogJobs struct {
	timeLogRepo attendance.TimeLogRepository
	companyRepo company.CompanyRepository
	db          *database.DB

	now func() time.Time
}

func NewTimeLogJobs(timeLogRepo attendance.TimeLogRepository, companyRepo company.CompanyRepository, db *database.DB) *TimeLogJobs {
	return &TimeLogJobs{
		timeLogRepo: timeLogRepo,
		companyRepo: companyRepo,
		db:          db,
		now:         time.Now,
	}
}

func (j *TimeLogJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("auto_close_stale_time_logs", 1*time.Hour, j.AutoCloseStaleTimeLogs)
}

func (j *TimeLogJobs) companyLocation(ctx context.Context, companyID string) *time.Location {
	comp, err := j.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return time.UTC
	}
	loc, err := time.LoadLocation(comp.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// AutoCloseStaleTimeLogs closes shifts whose log date has passed in their
// company's timezone without a check-out. The shift is capped at the end of
// its log date and the stored total becomes authoritative for later listings.
func (j *TimeLogJobs) AutoCloseStaleTimeLogs(ctx context.Context) error {
	now := j.now().UTC()

	// Log dates are midnights in each company's timezone, so the UTC day
	// alone cannot decide staleness. Select candidates with a bound no
	// timezone can exceed, then check each log against its company's local
	// date.
	bound := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)

	candidates, err := j.timeLogRepo.ListStaleOpenLogs(ctx, bound)
	if err != nil {
		return err
	}
	if len(candidates) == 0 {
		return nil
	}

	locations := make(map[string]*time.Location)
	closed := 0
	for _, log := range candidates {
		if log.CheckInTime == nil {
			continue
		}

		loc, ok := locations[log.CompanyID]
		if !ok {
			loc = j.companyLocation(ctx, log.CompanyID)
			locations[log.CompanyID] = loc
		}
		if log.LogDate.Format("2006-01-02") >= now.In(loc).Format("2006-01-02") {
			// Still the shift's own day where the company operates.
			continue
		}

		checkOut := endOfDay
		log.CheckOutTime = &checkOut
		if hours, ok := worktime.ComputeDurationHours(log.LogDate, *log.CheckInTime, log.CheckOutTime, now); ok {
			log.TotalWorkingHours = &hours
		}

		if err := j.timeLogRepo.Update(ctx, log); err != nil {
			slog.Error("Cron: Failed to close stale time log", "id", log.ID, "error", err)
			continue
		}
		closed++
	}

	if closed > 0 {
		slog.Info("Cron: Stale time logs closed", "closed", closed, "candidates", len(candidates))
	}
	return nil
}
