package cron

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/attendance"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/company"
)

type fakeTimeLogRepo struct {
	logs map[string]attendance.TimeLog
}

func newFakeTimeLogRepo() *fakeTimeLogRepo {
	return &fakeTimeLogRepo{logs: make(map[string]attendance.TimeLog)}
}

func (r *fakeTimeLogRepo) Create(ctx context.Context, log attendance.TimeLog) (attendance.TimeLog, error) {
	r.logs[log.ID] = log
	return log, nil
}

func (r *fakeTimeLogRepo) GetByID(ctx context.Context, id string, companyID string) (attendance.TimeLog, error) {
	log, ok := r.logs[id]
	if !ok || log.CompanyID != companyID {
		return attendance.TimeLog{}, pgx.ErrNoRows
	}
	return log, nil
}

func (r *fakeTimeLogRepo) GetOpenLog(ctx context.Context, employeeID string, companyID string) (*attendance.TimeLog, error) {
	for _, log := range r.logs {
		if log.EmployeeID == employeeID && log.CompanyID == companyID && log.Ongoing() {
			return &log, nil
		}
	}
	return nil, nil
}

func (r *fakeTimeLogRepo) HasCheckedInOn(ctx context.Context, employeeID string, dateLocal string, companyID string) (bool, error) {
	for _, log := range r.logs {
		if log.EmployeeID == employeeID && log.CompanyID == companyID && log.LogDate.Format("2006-01-02") == dateLocal {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeTimeLogRepo) Update(ctx context.Context, log attendance.TimeLog) error {
	if _, ok := r.logs[log.ID]; !ok {
		return pgx.ErrNoRows
	}
	r.logs[log.ID] = log
	return nil
}

func (r *fakeTimeLogRepo) Delete(ctx context.Context, id string, companyID string) error {
	delete(r.logs, id)
	return nil
}

func (r *fakeTimeLogRepo) ListByEmployee(ctx context.Context, employeeID string, filter attendance.TimeLogFilter, companyID string) ([]attendance.TimeLog, int64, error) {
	return nil, 0, nil
}

func (r *fakeTimeLogRepo) ListByCompany(ctx context.Context, filter attendance.TimeLogFilter, companyID string) ([]attendance.TimeLog, int64, error) {
	return nil, 0, nil
}

func (r *fakeTimeLogRepo) ListStaleOpenLogs(ctx context.Context, before time.Time) ([]attendance.TimeLog, error) {
	var stale []attendance.TimeLog
	for _, log := range r.logs {
		if log.Ongoing() && log.LogDate.Before(before) {
			stale = append(stale, log)
		}
	}
	return stale, nil
}

type fakeCompanyRepo struct {
	companies map[string]company.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[string]company.Company)}
}

func (r *fakeCompanyRepo) Create(ctx context.Context, comp company.Company) (company.Company, error) {
	r.companies[comp.ID] = comp
	return comp, nil
}

func (r *fakeCompanyRepo) GetByID(ctx context.Context, id string) (company.Company, error) {
	comp, ok := r.companies[id]
	if !ok {
		return company.Company{}, pgx.ErrNoRows
	}
	return comp, nil
}

func (r *fakeCompanyRepo) GetByUsername(ctx context.Context, username string) (company.Company, error) {
	for _, comp := range r.companies {
		if comp.Username == username {
			return comp, nil
		}
	}
	return company.Company{}, pgx.ErrNoRows
}

func (r *fakeCompanyRepo) Update(ctx context.Context, comp company.Company) error {
	r.companies[comp.ID] = comp
	return nil
}

func strPtr(s string) *string { return &s }

func newTimeLogJobsForTest(timeLogRepo *fakeTimeLogRepo, companyRepo *fakeCompanyRepo, now time.Time) *TimeLogJobs {
	jobs := NewTimeLogJobs(timeLogRepo, companyRepo, nil)
	jobs.now = func() time.Time { return now }
	return jobs
}

func TestTimeLogJobs_AutoClose_SparesShiftStillInItsLocalDay(t *testing.T) {
	t.Parallel()

	// 05:00 UTC on Mar 2 is 19:00 on Mar 1 in Honolulu. The shift's log
	// date has passed in UTC but not where the company operates.
	now := time.Date(2024, 3, 2, 5, 0, 0, 0, time.UTC)
	hnl, err := time.LoadLocation("Pacific/Honolulu")
	require.NoError(t, err)

	companyRepo := newFakeCompanyRepo()
	companyRepo.companies["company-hnl"] = company.Company{ID: "company-hnl", Timezone: "Pacific/Honolulu"}

	timeLogRepo := newFakeTimeLogRepo()
	timeLogRepo.logs["log-live"] = attendance.TimeLog{
		ID:          "log-live",
		EmployeeID:  "employee-1",
		CompanyID:   "company-hnl",
		LogDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, hnl),
		CheckInTime: strPtr("09:00:00"),
	}

	jobs := newTimeLogJobsForTest(timeLogRepo, companyRepo, now)
	require.NoError(t, jobs.AutoCloseStaleTimeLogs(context.Background()))

	got := timeLogRepo.logs["log-live"]
	assert.Nil(t, got.CheckOutTime)
	assert.Nil(t, got.TotalWorkingHours)
	assert.True(t, got.Ongoing())
}

func TestTimeLogJobs_AutoClose_ClosesShiftPastItsLocalDay(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 2, 5, 0, 0, 0, time.UTC)

	companyRepo := newFakeCompanyRepo()
	companyRepo.companies["company-utc"] = company.Company{ID: "company-utc", Timezone: "UTC"}

	timeLogRepo := newFakeTimeLogRepo()
	timeLogRepo.logs["log-stale"] = attendance.TimeLog{
		ID:          "log-stale",
		EmployeeID:  "employee-2",
		CompanyID:   "company-utc",
		LogDate:     time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		CheckInTime: strPtr("09:00:00"),
	}

	jobs := newTimeLogJobsForTest(timeLogRepo, companyRepo, now)
	require.NoError(t, jobs.AutoCloseStaleTimeLogs(context.Background()))

	got := timeLogRepo.logs["log-stale"]
	require.NotNil(t, got.CheckOutTime)
	assert.Equal(t, "23:59:59", *got.CheckOutTime)
	require.NotNil(t, got.TotalWorkingHours)
	assert.InDelta(t, 14.9997, *got.TotalWorkingHours, 0.001)
	assert.False(t, got.Ongoing())
}

func TestTimeLogJobs_AutoClose_ClosesWestOfUTCShiftOncePastLocally(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, 3, 2, 5, 0, 0, 0, time.UTC)
	hnl, err := time.LoadLocation("Pacific/Honolulu")
	require.NoError(t, err)

	companyRepo := newFakeCompanyRepo()
	companyRepo.companies["company-hnl"] = company.Company{ID: "company-hnl", Timezone: "Pacific/Honolulu"}

	timeLogRepo := newFakeTimeLogRepo()
	timeLogRepo.logs["log-old"] = attendance.TimeLog{
		ID:          "log-old",
		EmployeeID:  "employee-3",
		CompanyID:   "company-hnl",
		LogDate:     time.Date(2024, 2, 28, 0, 0, 0, 0, hnl),
		CheckInTime: strPtr("08:00:00"),
	}

	jobs := newTimeLogJobsForTest(timeLogRepo, companyRepo, now)
	require.NoError(t, jobs.AutoCloseStaleTimeLogs(context.Background()))

	got := timeLogRepo.logs["log-old"]
	require.NotNil(t, got.CheckOutTime)
	assert.Equal(t, "23:59:59", *got.CheckOutTime)
}
