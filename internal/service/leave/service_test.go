package leave

import (
	"context"
	"testing"
	"time"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/company"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/employee"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/leave"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ===== FAKES =====

type fakeLeaveTypeRepo struct {
	types map[string]leave.LeaveType
}

func newFakeLeaveTypeRepo() *fakeLeaveTypeRepo {
	return &fakeLeaveTypeRepo{types: make(map[string]leave.LeaveType)}
}

func (f *fakeLeaveTypeRepo) Create(_ context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	f.types[leaveType.ID] = leaveType
	return leaveType, nil
}

func (f *fakeLeaveTypeRepo) GetByID(_ context.Context, id string, companyID string) (leave.LeaveType, error) {
	leaveType, ok := f.types[id]
	if !ok || leaveType.CompanyID != companyID {
		return leave.LeaveType{}, pgx.ErrNoRows
	}
	return leaveType, nil
}

func (f *fakeLeaveTypeRepo) GetByCompanyID(_ context.Context, companyID string) ([]leave.LeaveType, error) {
	var out []leave.LeaveType
	for _, leaveType := range f.types {
		if leaveType.CompanyID == companyID {
			out = append(out, leaveType)
		}
	}
	return out, nil
}

func (f *fakeLeaveTypeRepo) Update(_ context.Context, leaveType leave.LeaveType) error {
	if _, ok := f.types[leaveType.ID]; !ok {
		return pgx.ErrNoRows
	}
	f.types[leaveType.ID] = leaveType
	return nil
}

func (f *fakeLeaveTypeRepo) Delete(_ context.Context, id string, companyID string) error {
	leaveType, ok := f.types[id]
	if !ok || leaveType.CompanyID != companyID {
		return pgx.ErrNoRows
	}
	leaveType.IsActive = false
	f.types[id] = leaveType
	return nil
}

type fakeLeaveRequestRepo struct {
	requests map[string]leave.LeaveRequest
}

func newFakeLeaveRequestRepo() *fakeLeaveRequestRepo {
	return &fakeLeaveRequestRepo{requests: make(map[string]leave.LeaveRequest)}
}

func (f *fakeLeaveRequestRepo) Create(_ context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	f.requests[request.ID] = request
	return request, nil
}

func (f *fakeLeaveRequestRepo) GetByID(_ context.Context, id string, companyID string) (leave.LeaveRequest, error) {
	request, ok := f.requests[id]
	if !ok || request.CompanyID != companyID {
		return leave.LeaveRequest{}, pgx.ErrNoRows
	}
	return request, nil
}

func (f *fakeLeaveRequestRepo) ListByEmployee(_ context.Context, employeeID string, filter leave.LeaveRequestFilter, companyID string) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		if request.EmployeeID == employeeID && request.CompanyID == companyID {
			out = append(out, request)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeaveRequestRepo) ListByCompany(_ context.Context, filter leave.LeaveRequestFilter, companyID string) ([]leave.LeaveRequest, int64, error) {
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		if request.CompanyID == companyID {
			out = append(out, request)
		}
	}
	return out, int64(len(out)), nil
}

func (f *fakeLeaveRequestRepo) ListInRange(_ context.Context, companyID string, from, to time.Time, statuses []string) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, request := range f.requests {
		if request.CompanyID != companyID {
			continue
		}
		end := request.StartDate
		if request.EndDate != nil {
			end = *request.EndDate
		}
		if request.StartDate.After(to) || end.Before(from) {
			continue
		}
		matched := len(statuses) == 0
		for _, status := range statuses {
			if request.Status == status {
				matched = true
			}
		}
		if matched {
			out = append(out, request)
		}
	}
	return out, nil
}

func (f *fakeLeaveRequestRepo) SumApprovedDays(_ context.Context, employeeID string, leaveTypeID string, year int) (float64, error) {
	var sum float64
	for _, request := range f.requests {
		if request.EmployeeID == employeeID && request.LeaveTypeID == leaveTypeID &&
			request.Status == leave.StatusApproved && request.StartDate.Year() == year {
			sum += float64(request.Days())
		}
	}
	return sum, nil
}

func (f *fakeLeaveRequestRepo) HasOverlapping(_ context.Context, employeeID string, start, end time.Time) (bool, error) {
	for _, request := range f.requests {
		if request.EmployeeID != employeeID {
			continue
		}
		if request.Status != leave.StatusPending && request.Status != leave.StatusApproved {
			continue
		}
		reqEnd := request.StartDate
		if request.EndDate != nil {
			reqEnd = *request.EndDate
		}
		if !request.StartDate.After(end) && !reqEnd.Before(start) {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeLeaveRequestRepo) UpdateStatus(_ context.Context, id string, status string, reviewedBy *string, rejectionReason *string) error {
	request, ok := f.requests[id]
	if !ok {
		return pgx.ErrNoRows
	}
	request.Status = status
	request.ReviewedBy = reviewedBy
	request.RejectionReason = rejectionReason
	f.requests[id] = request
	return nil
}

type fakeEmployeeRepo struct{}

func (fakeEmployeeRepo) Create(_ context.Context, emp employee.Employee) (employee.Employee, error) {
	return emp, nil
}
func (fakeEmployeeRepo) GetByID(_ context.Context, id string, companyID string) (employee.Employee, error) {
	return employee.Employee{ID: id, CompanyID: companyID, EmploymentStatus: "active"}, nil
}
func (fakeEmployeeRepo) GetByUserID(_ context.Context, userID string) (employee.Employee, error) {
	return employee.Employee{}, pgx.ErrNoRows
}
func (fakeEmployeeRepo) GetByEmail(_ context.Context, email string, companyID string) (employee.Employee, error) {
	return employee.Employee{}, pgx.ErrNoRows
}
func (fakeEmployeeRepo) List(_ context.Context, filter employee.EmployeeFilter, companyID string) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}
func (fakeEmployeeRepo) Update(_ context.Context, emp employee.Employee) error { return nil }
func (fakeEmployeeRepo) SetEmploymentStatus(_ context.Context, id string, companyID string, status string) error {
	return nil
}

type fakeCompanyRepo struct{}

func (fakeCompanyRepo) Create(_ context.Context, comp company.Company) (company.Company, error) {
	return comp, nil
}
func (fakeCompanyRepo) GetByID(_ context.Context, id string) (company.Company, error) {
	return company.Company{ID: id, Timezone: "UTC"}, nil
}
func (fakeCompanyRepo) GetByUsername(_ context.Context, username string) (company.Company, error) {
	return company.Company{}, pgx.ErrNoRows
}
func (fakeCompanyRepo) Update(_ context.Context, comp company.Company) error { return nil }

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
	service     *LeaveServiceImpl
	typeRepo    *fakeLeaveTypeRepo
	requestRepo *fakeLeaveRequestRepo
}

func newTestEnv(now time.Time) testEnv {
	typeRepo := newFakeLeaveTypeRepo()
	requestRepo := newFakeLeaveRequestRepo()

	typeRepo.types["type-annual"] = leave.LeaveType{
		ID:                   "type-annual",
		CompanyID:            "company-1",
		Name:                 "Annual Leave",
		DefaultAllowanceDays: 12,
		RequiresApproval:     true,
		IsActive:             true,
	}
	typeRepo.types["type-sick"] = leave.LeaveType{
		ID:                   "type-sick",
		CompanyID:            "company-1",
		Name:                 "Sick Leave",
		DefaultAllowanceDays: 10,
		RequiresApproval:     false,
		IsActive:             true,
	}

	svc := NewLeaveService(nil, typeRepo, requestRepo, fakeEmployeeRepo{}, fakeCompanyRepo{})
	svc.now = func() time.Time { return now }
	return testEnv{service: svc, typeRepo: typeRepo, requestRepo: requestRepo}
}

func strPtr(s string) *string { return &s }

func datePtr(t time.Time) *time.Time { return &t }

// ===== SUBMIT =====

func TestLeaveService_Submit_Pending(t *testing.T) {
	t.Parallel()
	env := newTestEnv(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	ctx := authContext(t, "company-1", "employee-1")

	resp, err := env.service.Submit(ctx, leave.SubmitLeaveRequest{
		LeaveTypeID: "type-annual",
		StartDate:   "2025-03-10",
		EndDate:     strPtr("2025-03-12"),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, leave.StatusPending, resp.Status)
	assert.Equal(t, "2025-03-10", resp.StartDate)
	assert.Equal(t, "2025-03-12", resp.EndDate)
	assert.Equal(t, 3, resp.Days)
}

func TestLeaveService_Submit_AutoApprovedType(t *testing.T) {
	t.Parallel()
	env := newTestEnv(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	ctx := authContext(t, "company-1", "employee-1")

	resp, err := env.service.Submit(ctx, leave.SubmitLeaveRequest{
		LeaveTypeID: "type-sick",
		StartDate:   "2025-03-10",
	})

	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, resp.Status)
	assert.Equal(t, 1, resp.Days)
}

func TestLeaveService_Submit_Overlapping(t *testing.T) {
	t.Parallel()
	env := newTestEnv(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	ctx := authContext(t, "company-1", "employee-1")

	_, err := env.service.Submit(ctx, leave.SubmitLeaveRequest{
		LeaveTypeID: "type-annual",
		StartDate:   "2025-03-10",
		EndDate:     strPtr("2025-03-12"),
	})
	require.NoError(t, err)

	_, err = env.service.Submit(ctx, leave.SubmitLeaveRequest{
		LeaveTypeID: "type-annual",
		StartDate:   "2025-03-12",
		EndDate:     strPtr("2025-03-14"),
	})
	assert.ErrorIs(t, err, leave.ErrOverlappingRequest)
}

func TestLeaveService_Submit_InsufficientAllowance(t *testing.T) {
	t.Parallel()
	env := newTestEnv(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	ctx := authContext(t, "company-1", "employee-1")

	// Eleven of the twelve annual days already approved this year.
	env.requestRepo.requests["existing"] = leave.LeaveRequest{
		ID:          "existing",
		CompanyID:   "company-1",
		EmployeeID:  "employee-1",
		LeaveTypeID: "type-annual",
		StartDate:   time.Date(2025, 1, 6, 0, 0, 0, 0, time.UTC),
		EndDate:     datePtr(time.Date(2025, 1, 16, 0, 0, 0, 0, time.UTC)),
		Status:      leave.StatusApproved,
	}

	_, err := env.service.Submit(ctx, leave.SubmitLeaveRequest{
		LeaveTypeID: "type-annual",
		StartDate:   "2025-03-10",
		EndDate:     strPtr("2025-03-11"),
	})
	assert.ErrorIs(t, err, leave.ErrInsufficientAllowance)
}

func TestLeaveService_Submit_UnknownType(t *testing.T) {
	t.Parallel()
	env := newTestEnv(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	ctx := authContext(t, "company-1", "employee-1")

	_, err := env.service.Submit(ctx, leave.SubmitLeaveRequest{
		LeaveTypeID: "missing",
		StartDate:   "2025-03-10",
	})
	assert.ErrorIs(t, err, leave.ErrLeaveTypeNotFound)
}

// ===== REVIEW =====

func TestLeaveService_Approve(t *testing.T) {
	t.Parallel()
	env := newTestEnv(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))

	_, err := env.service.Submit(authContext(t, "company-1", "employee-1"), leave.SubmitLeaveRequest{
		LeaveTypeID: "type-annual",
		StartDate:   "2025-03-10",
	})
	require.NoError(t, err)

	var requestID string
	for id := range env.requestRepo.requests {
		requestID = id
	}

	resp, err := env.service.Approve(authContext(t, "company-1", "manager-1"), leave.ReviewLeaveRequest{ID: requestID})
	require.NoError(t, err)
	assert.Equal(t, leave.StatusApproved, resp.Status)
	assert.Equal(t, leave.StatusApproved, env.requestRepo.requests[requestID].Status)
}

func TestLeaveService_Reject_AlreadyProcessed(t *testing.T) {
	t.Parallel()
	env := newTestEnv(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	ctx := authContext(t, "company-1", "manager-1")

	env.requestRepo.requests["request-1"] = leave.LeaveRequest{
		ID:          "request-1",
		CompanyID:   "company-1",
		EmployeeID:  "employee-1",
		LeaveTypeID: "type-annual",
		StartDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:      leave.StatusApproved,
	}

	_, err := env.service.Reject(ctx, leave.ReviewLeaveRequest{ID: "request-1"})
	assert.ErrorIs(t, err, leave.ErrLeaveRequestAlreadyProcessed)
}

func TestLeaveService_Cancel_OwnPendingOnly(t *testing.T) {
	t.Parallel()
	env := newTestEnv(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))

	env.requestRepo.requests["request-1"] = leave.LeaveRequest{
		ID:          "request-1",
		CompanyID:   "company-1",
		EmployeeID:  "employee-1",
		LeaveTypeID: "type-annual",
		StartDate:   time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Status:      leave.StatusPending,
	}

	// Someone else cannot cancel it.
	_, err := env.service.Cancel(authContext(t, "company-1", "employee-2"), "request-1")
	assert.ErrorIs(t, err, leave.ErrLeaveRequestNotFound)

	resp, err := env.service.Cancel(authContext(t, "company-1", "employee-1"), "request-1")
	require.NoError(t, err)
	assert.Equal(t, leave.StatusCancelled, resp.Status)
}

// ===== ALLOWANCES =====

func TestLeaveService_GetMyAllowances(t *testing.T) {
	t.Parallel()
	env := newTestEnv(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	ctx := authContext(t, "company-1", "employee-1")

	env.requestRepo.requests["request-1"] = leave.LeaveRequest{
		ID:          "request-1",
		CompanyID:   "company-1",
		EmployeeID:  "employee-1",
		LeaveTypeID: "type-annual",
		StartDate:   time.Date(2025, 2, 3, 0, 0, 0, 0, time.UTC),
		EndDate:     datePtr(time.Date(2025, 2, 7, 0, 0, 0, 0, time.UTC)),
		Status:      leave.StatusApproved,
	}

	allowances, err := env.service.GetMyAllowances(ctx, 0)
	require.NoError(t, err)
	require.Len(t, allowances, 2)

	byType := make(map[string]leave.AllowanceResponse)
	for _, allowance := range allowances {
		byType[allowance.LeaveTypeID] = allowance
	}
	annual := byType["type-annual"]
	assert.InDelta(t, 12.0, annual.AllowanceDays, 0.001)
	assert.InDelta(t, 5.0, annual.UsedDays, 0.001)
	assert.InDelta(t, 7.0, annual.RemainingDays, 0.001)
}

// ===== MONTH VIEW =====

func TestLeaveService_MonthView_LaneStacking(t *testing.T) {
	t.Parallel()
	env := newTestEnv(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	ctx := authContext(t, "company-1", "employee-1")

	// Two approved requests overlapping on March 4-5 must land in
	// different lanes within the same week row.
	env.requestRepo.requests["request-a"] = leave.LeaveRequest{
		ID:            "request-a",
		CompanyID:     "company-1",
		EmployeeID:    "employee-1",
		LeaveTypeID:   "type-annual",
		StartDate:     time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		EndDate:       datePtr(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)),
		Status:        leave.StatusApproved,
		EmployeeName:  strPtr("Jane Doe"),
		LeaveTypeName: strPtr("Annual Leave"),
	}
	env.requestRepo.requests["request-b"] = leave.LeaveRequest{
		ID:            "request-b",
		CompanyID:     "company-1",
		EmployeeID:    "employee-2",
		LeaveTypeID:   "type-sick",
		StartDate:     time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		EndDate:       datePtr(time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC)),
		Status:        leave.StatusApproved,
		EmployeeName:  strPtr("John Roe"),
		LeaveTypeName: strPtr("Sick Leave"),
	}

	resp, err := env.service.MonthView(ctx, 2025, 3)
	require.NoError(t, err)
	assert.Equal(t, 2025, resp.Year)
	assert.Equal(t, 3, resp.Month)
	require.Len(t, resp.Weeks, 6)

	// March 3-6 falls in the second grid week (Mar 2 - Mar 8).
	week := resp.Weeks[1]
	require.Len(t, week.Bars, 2)
	assert.Equal(t, 2, week.LaneCount)
	assert.NotEqual(t, week.Bars[0].Lane, week.Bars[1].Lane)

	byID := make(map[string]leave.BarView)
	for _, bar := range week.Bars {
		byID[bar.ID] = bar
	}
	barA := byID["request-a"]
	assert.Equal(t, "Jane Doe - Annual Leave", barA.Label)
	assert.Equal(t, "2025-03-03", barA.DisplayStart)
	assert.Equal(t, "2025-03-05", barA.DisplayEnd)
	assert.True(t, barA.CapStart)
	assert.True(t, barA.CapEnd)
}

func TestLeaveService_MonthView_SpanAcrossWeeks(t *testing.T) {
	t.Parallel()
	env := newTestEnv(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	ctx := authContext(t, "company-1", "employee-1")

	// Thursday March 6 through Tuesday March 11 crosses the week boundary.
	env.requestRepo.requests["request-long"] = leave.LeaveRequest{
		ID:          "request-long",
		CompanyID:   "company-1",
		EmployeeID:  "employee-1",
		LeaveTypeID: "type-annual",
		StartDate:   time.Date(2025, 3, 6, 0, 0, 0, 0, time.UTC),
		EndDate:     datePtr(time.Date(2025, 3, 11, 0, 0, 0, 0, time.UTC)),
		Status:      leave.StatusApproved,
	}

	resp, err := env.service.MonthView(ctx, 2025, 3)
	require.NoError(t, err)

	first := resp.Weeks[1]
	require.Len(t, first.Bars, 1)
	assert.Equal(t, "2025-03-06", first.Bars[0].DisplayStart)
	assert.Equal(t, "2025-03-08", first.Bars[0].DisplayEnd)
	assert.True(t, first.Bars[0].CapStart)
	assert.False(t, first.Bars[0].CapEnd)

	second := resp.Weeks[2]
	require.Len(t, second.Bars, 1)
	assert.Equal(t, "2025-03-09", second.Bars[0].DisplayStart)
	assert.Equal(t, "2025-03-11", second.Bars[0].DisplayEnd)
	assert.False(t, second.Bars[0].CapStart)
	assert.True(t, second.Bars[0].CapEnd)
}

func TestLeaveService_MonthView_SingleDayGoesToCellNotLane(t *testing.T) {
	t.Parallel()
	env := newTestEnv(time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC))
	ctx := authContext(t, "company-1", "employee-1")

	env.requestRepo.requests["request-multi"] = leave.LeaveRequest{
		ID:            "request-multi",
		CompanyID:     "company-1",
		EmployeeID:    "employee-1",
		LeaveTypeID:   "type-annual",
		StartDate:     time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC),
		EndDate:       datePtr(time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC)),
		Status:        leave.StatusApproved,
		EmployeeName:  strPtr("Jane Doe"),
		LeaveTypeName: strPtr("Annual Leave"),
	}
	// Overlaps the bar above, but a one-day request renders inside its day
	// cell and must not take a second lane.
	env.requestRepo.requests["request-single"] = leave.LeaveRequest{
		ID:            "request-single",
		CompanyID:     "company-1",
		EmployeeID:    "employee-2",
		LeaveTypeID:   "type-sick",
		StartDate:     time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC),
		Status:        leave.StatusApproved,
		EmployeeName:  strPtr("John Roe"),
		LeaveTypeName: strPtr("Sick Leave"),
	}

	resp, err := env.service.MonthView(ctx, 2025, 3)
	require.NoError(t, err)

	week := resp.Weeks[1]
	require.Len(t, week.Bars, 1)
	assert.Equal(t, "request-multi", week.Bars[0].ID)
	assert.Equal(t, 1, week.LaneCount)

	require.Contains(t, week.Cells, "2025-03-04")
	items := week.Cells["2025-03-04"]
	require.Len(t, items, 1)
	assert.Equal(t, "request-single", items[0].ID)
	assert.Equal(t, "John Roe - Sick Leave", items[0].Label)
	assert.Equal(t, leave.StatusApproved, items[0].Status)
}
