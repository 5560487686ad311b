package attendance

import (
	"context"
	"testing"
	"time"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/attendance"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/company"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/employee"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== FAKES =====

type fakeTimeLogRepo struct {
	logs map[string]attendance.TimeLog
}

func newFakeTimeLogRepo() *fakeTimeLogRepo {
	return &fakeTimeLogRepo{logs: make(map[string]attendance.TimeLog)}
}

func (f *fakeTimeLogRepo) Create(_ context.Context, log attendance.TimeLog) (attendance.TimeLog, error) {
	f.logs[log.ID] = log
	return log, nil
}

func (f *fakeTimeLogRepo) GetByID(_ context.Context, id string, companyID string) (attendance.TimeLog, error) {
	log, ok := f.logs[id]
	if !ok || log.CompanyID != companyID {
		return attendance.TimeLog{}, pgx.ErrNoRows
	}
	return log, nil
}

func (f *fakeTimeLogRepo) GetOpenLog(_ context.Context, employeeID string, companyID string) (*attendance.TimeLog, error) {
	for _, log := range f.logs {
		if log.EmployeeID == employeeID && log.CompanyID == companyID && log.CheckInTime != nil && log.CheckOutTime == nil {
			found := log
			return &found, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeTimeLogRepo) HasCheckedInOn(_ context.Context, employeeID string, dateLocal string, companyID string) (bool, error) {
	for _, log := range f.logs {
		if log.EmployeeID == employeeID && log.CompanyID == companyID && log.LogDate.Format("2006-01-02") == dateLocal {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTimeLogRepo) Update(_ context.Context, log attendance.TimeLog) error {
	if _, ok := f.logs[log.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.logs[log.ID] = log
	return nil
}

func (f *fakeTimeLogRepo) Delete(_ context.Context, id string, companyID string) error {
	log, ok := f.logs[id]
	if !ok || log.CompanyID != companyID {
		return pgx.ErrNoRows
	}
	delete(f.logs, id)
	return nil
}

func (f *fakeTimeLogRepo) ListByEmployee(_ context.Context, employeeID string, filter attendance.TimeLogFilter, companyID string) ([]attendance.TimeLog, int64, error) {
	var out []attendance.TimeLog
	for _, log := range f.logs {
		if log.EmployeeID == employeeID && log.CompanyID == companyID {
			out = append(out, log)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeTimeLogRepo) ListByCompany(_ context.Context, filter attendance.TimeLogFilter, companyID string) ([]attendance.TimeLog, int64, error) {
	var out []attendance.TimeLog
	for _, log := range f.logs {
		if log.CompanyID == companyID {
			out = append(out, log)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeTimeLogRepo) ListStaleOpenLogs(_ context.Context, before time.Time) ([]attendance.TimeLog, error) {
	var out []attendance.TimeLog
	for _, log := range f.logs {
		if log.CheckInTime != nil && log.CheckOutTime == nil && log.LogDate.Before(before) {
			out = append(out, log)
		}
	}
	return out, nil
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func newFakeEmployeeRepo() *fakeEmployeeRepo {
	return &fakeEmployeeRepo{employees: make(map[string]employee.Employee)}
}

func (f *fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	f.employees[emp.ID] = emp
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string, companyID string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok || emp.CompanyID != companyID {
		return employee.Employee{}, pgx.ErrNoRows
	}
	return emp, nil
}

func (f *fakeEmployeeRepo) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.UserID != nil && *emp.UserID == userID {
			return emp, nil
		}
	}
	return employee.Employee{}, pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) GetByEmail(_ context.Context, email string, companyID string) (employee.Employee, error) {
	for _, emp := range f.employees {
		if emp.Email == email && emp.CompanyID == companyID {
			return emp, nil
		}
	}
	return employee.Employee{}, pgx.ErrNoRows
}

func (f *fakeEmployeeRepo) List(_ context.Context, filter employee.EmployeeFilter, companyID string) ([]employee.Employee, int64, error) {
	var out []employee.Employee
	for _, emp := range f.employees {
		if emp.CompanyID == companyID {
			out = append(out, emp)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeEmployeeRepo) Update(_ context.Context, emp employee.Employee) error {
	if _, ok := f.employees[emp.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.employees[emp.ID] = emp
	return nil
}

func (f *fakeEmployeeRepo) SetEmploymentStatus(_ context.Context, id string, companyID string, status string) error {
	emp, ok := f.employees[id]
	if !ok || emp.CompanyID != companyID {
		return pgx.ErrNoRows
	}
	emp.EmploymentStatus = status
	f.employees[id] = emp
	return nil
}

type fakeCompanyRepo struct {
	companies map[string]company.Company
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{companies: make(map[string]company.Company)}
}

func (f *fakeCompanyRepo) Create(_ context.Context, comp company.Company) (company.Company, error) {
	f.companies[comp.ID] = comp
	return comp, nil
}

func (f *fakeCompanyRepo) GetByID(_ context.Context, id string) (company.Company, error) {
	comp, ok := f.companies[id]
	if !ok {
		return company.Company{}, pgx.ErrNoRows
	}
	return comp, nil
}

func (f *fakeCompanyRepo) GetByUsername(_ context.Context, username string) (company.Company, error) {
	for _, comp := range f.companies {
		if comp.Username == username {
			return comp, nil
		}
	}
	return company.Company{}, pgx.ErrNoRows
}

func (f *fakeCompanyRepo) Update(_ context.Context, comp company.Company) error {
	if _, ok := f.companies[comp.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.companies[comp.ID] = comp
	return nil
}

// ===== HELPERS =====

func authContext(t *testing.T, companyID string, employeeID string) context.Context {
	t.Helper()
	ja := jwtauth.New("HS256", []byte("test-secret"), nil)
	token, _, err := ja.Encode(map[string]interface{}{
		"user_id":     "user-1",
		"company_id":  companyID,
		"employee_id": employeeID,
		"role":        "employee",
		"type":        "access",
	})
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), token, nil)
}

type testEnv struct {
	service     *TimeLogServiceImpl
	timeLogRepo *fakeTimeLogRepo
}

func newTestEnv(now time.Time) testEnv {
	timeLogRepo := newFakeTimeLogRepo()
	employeeRepo := newFakeEmployeeRepo()
	companyRepo := newFakeCompanyRepo()

	companyRepo.companies["company-1"] = company.Company{
		ID:       "company-1",
		Name:     "Acme",
		Username: "acme",
		Timezone: "UTC",
	}
	employeeRepo.employees["employee-1"] = employee.Employee{
		ID:               "employee-1",
		CompanyID:        "company-1",
		FullName:         "Jane Doe",
		Email:            "jane@acme.test",
		EmploymentStatus: "active",
	}

	svc := NewTimeLogService(nil, timeLogRepo, employeeRepo, companyRepo)
	svc.now = func() time.Time { return now }
	return testEnv{service: svc, timeLogRepo: timeLogRepo}
}

// ===== CHECK-IN =====

func TestTimeLogService_CheckIn_Success(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 3, 10, 9, 15, 30, 0, time.UTC)
	env := newTestEnv(now)
	ctx := authContext(t, "company-1", "employee-1")

	resp, err := env.service.CheckIn(ctx, attendance.CheckInRequest{})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "2025-03-10", resp.LogDate)
	require.NotNil(t, resp.CheckInTime)
	assert.Equal(t, "09:15:30", *resp.CheckInTime)
	assert.Nil(t, resp.CheckOutTime)
	assert.Equal(t, "computed", resp.DurationSource)
	assert.Equal(t, "in_progress", resp.Status)
}

func TestTimeLogService_CheckIn_AlreadyCheckedIn(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	env := newTestEnv(now)
	ctx := authContext(t, "company-1", "employee-1")

	_, err := env.service.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	_, err = env.service.CheckIn(ctx, attendance.CheckInRequest{})
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedIn)
}

func TestTimeLogService_CheckIn_InactiveEmployee(t *testing.T) {
	t.Parallel()
	now := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	env := newTestEnv(now)
	ctx := authContext(t, "company-1", "employee-1")

	require.NoError(t, env.service.EmployeeRepository.SetEmploymentStatus(ctx, "employee-1", "company-1", "inactive"))

	_, err := env.service.CheckIn(ctx, attendance.CheckInRequest{})
	assert.ErrorIs(t, err, employee.ErrEmployeeInactive)
}

// ===== CHECK-OUT =====

func TestTimeLogService_CheckOut_FinalizesDuration(t *testing.T) {
	t.Parallel()
	checkInAt := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
	env := newTestEnv(checkInAt)
	ctx := authContext(t, "company-1", "employee-1")

	created, err := env.service.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	env.service.now = func() time.Time {
		return time.Date(2025, 3, 10, 17, 30, 0, 0, time.UTC)
	}

	resp, err := env.service.CheckOut(ctx, attendance.CheckOutRequest{})
	require.NoError(t, err)
	assert.Equal(t, created.ID, resp.ID)
	require.NotNil(t, resp.CheckOutTime)
	assert.Equal(t, "17:30:00", *resp.CheckOutTime)
	require.NotNil(t, resp.DurationHours)
	assert.InDelta(t, 8.5, *resp.DurationHours, 0.001)
	assert.Equal(t, "server", resp.DurationSource)
	assert.Equal(t, "overtime", resp.Status)

	stored := env.timeLogRepo.logs[created.ID]
	require.NotNil(t, stored.TotalWorkingHours)
	assert.InDelta(t, 8.5, *stored.TotalWorkingHours, 0.001)
}

func TestTimeLogService_CheckOut_NotCheckedIn(t *testing.T) {
	t.Parallel()
	env := newTestEnv(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := authContext(t, "company-1", "employee-1")

	_, err := env.service.CheckOut(ctx, attendance.CheckOutRequest{})
	assert.ErrorIs(t, err, attendance.ErrNotCheckedIn)
}

func TestTimeLogService_CheckOut_UnderEightHoursIsNormal(t *testing.T) {
	t.Parallel()
	env := newTestEnv(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := authContext(t, "company-1", "employee-1")

	_, err := env.service.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	env.service.now = func() time.Time {
		return time.Date(2025, 3, 10, 16, 0, 0, 0, time.UTC)
	}

	resp, err := env.service.CheckOut(ctx, attendance.CheckOutRequest{})
	require.NoError(t, err)
	require.NotNil(t, resp.DurationHours)
	assert.InDelta(t, 7.0, *resp.DurationHours, 0.001)
	assert.Equal(t, "completed", resp.Status)
}

// ===== LISTING =====

func TestTimeLogService_GetMyTimeLogs_DerivesLiveDuration(t *testing.T) {
	t.Parallel()
	env := newTestEnv(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := authContext(t, "company-1", "employee-1")

	_, err := env.service.CheckIn(ctx, attendance.CheckInRequest{})
	require.NoError(t, err)

	// Four hours into an open shift the duration is measured live.
	env.service.now = func() time.Time {
		return time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC)
	}

	resp, err := env.service.GetMyTimeLogs(ctx, attendance.TimeLogFilter{})
	require.NoError(t, err)
	require.Len(t, resp.TimeLogs, 1)
	log := resp.TimeLogs[0]
	require.NotNil(t, log.DurationHours)
	assert.InDelta(t, 4.0, *log.DurationHours, 0.001)
	assert.Equal(t, "computed", log.DurationSource)
	assert.Equal(t, "in_progress", log.Status)
	assert.Equal(t, int64(1), resp.TotalItems)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
}

func TestTimeLogService_GetMyTimeLogs_StoredTotalWins(t *testing.T) {
	t.Parallel()
	env := newTestEnv(time.Date(2025, 3, 11, 9, 0, 0, 0, time.UTC))
	ctx := authContext(t, "company-1", "employee-1")

	checkIn := "09:00:00"
	checkOut := "18:00:00"
	total := 9.0
	env.timeLogRepo.logs["log-1"] = attendance.TimeLog{
		ID:                "log-1",
		EmployeeID:        "employee-1",
		CompanyID:         "company-1",
		LogDate:           time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		CheckInTime:       &checkIn,
		CheckOutTime:      &checkOut,
		TotalWorkingHours: &total,
	}

	resp, err := env.service.GetMyTimeLogs(ctx, attendance.TimeLogFilter{})
	require.NoError(t, err)
	require.Len(t, resp.TimeLogs, 1)
	log := resp.TimeLogs[0]
	require.NotNil(t, log.DurationHours)
	assert.InDelta(t, 9.0, *log.DurationHours, 0.001)
	assert.Equal(t, "server", log.DurationSource)
	assert.Equal(t, "overtime", log.Status)
}

func TestTimeLogService_GetTimeLog_NotFound(t *testing.T) {
	t.Parallel()
	env := newTestEnv(time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC))
	ctx := authContext(t, "company-1", "employee-1")

	_, err := env.service.GetTimeLog(ctx, "missing")
	assert.ErrorIs(t, err, attendance.ErrTimeLogNotFound)
}
