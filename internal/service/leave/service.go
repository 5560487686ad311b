package leave

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/company"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/employee"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/leave"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/calgrid"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type LeaveServiceImpl struct {
	db *database.DB
	leave.LeaveTypeRepository
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	company.CompanyRepository

	now func() time.Time
}

func NewLeaveService(
	db *database.DB,
	leaveTypeRepo leave.LeaveTypeRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	employeeRepo employee.EmployeeRepository,
	companyRepo company.CompanyRepository,
) *LeaveServiceImpl {
	return &LeaveServiceImpl{
		db:                     db,
		LeaveTypeRepository:    leaveTypeRepo,
		LeaveRequestRepository: leaveRequestRepo,
		EmployeeRepository:     employeeRepo,
		CompanyRepository:      companyRepo,
		now:                    time.Now,
	}
}

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

func (s *LeaveServiceImpl) companyLocation(ctx context.Context, companyID string) *time.Location {
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

// Submit implements leave.LeaveService.
func (s *LeaveServiceImpl) Submit(ctx context.Context, req leave.SubmitLeaveRequest) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	companyID, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, req.LeaveTypeID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequestResponse{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave type: %w", err)
	}
	if !leaveType.IsActive {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveTypeNotFound
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	var end *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, _ := time.Parse("2006-01-02", *req.EndDate)
		end = &parsed
	}

	request := leave.LeaveRequest{
		CompanyID:   companyID,
		EmployeeID:  employeeID,
		LeaveTypeID: req.LeaveTypeID,
		StartDate:   start,
		EndDate:     end,
		Status:      leave.StatusPending,
		Reason:      req.Reason,
	}
	if !leaveType.RequiresApproval {
		request.Status = leave.StatusApproved
	}

	effectiveEnd := start
	if end != nil {
		effectiveEnd = *end
	}
	overlapping, err := s.LeaveRequestRepository.HasOverlapping(ctx, employeeID, start, effectiveEnd)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to check overlapping requests: %w", err)
	}
	if overlapping {
		return leave.LeaveRequestResponse{}, leave.ErrOverlappingRequest
	}

	used, err := s.LeaveRequestRepository.SumApprovedDays(ctx, employeeID, req.LeaveTypeID, start.Year())
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to sum approved days: %w", err)
	}
	if used+float64(request.Days()) > leaveType.DefaultAllowanceDays {
		return leave.LeaveRequestResponse{}, leave.ErrInsufficientAllowance
	}

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to generate id: %w", err)
	}
	request.ID = id.String()

	created, err := s.LeaveRequestRepository.Create(ctx, request)
	if err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to create leave request: %w", err)
	}
	created.LeaveTypeName = &leaveType.Name
	created.LeaveColor = leaveType.Color

	return toRequestResponse(created), nil
}

// GetMyRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) GetMyRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestsResponse, error) {
	filter.Normalize()

	companyID, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return leave.ListLeaveRequestsResponse{}, err
	}

	requests, total, err := s.LeaveRequestRepository.ListByEmployee(ctx, employeeID, filter, companyID)
	if err != nil {
		return leave.ListLeaveRequestsResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return toListResponse(requests, total), nil
}

// ListRequests implements leave.LeaveService.
func (s *LeaveServiceImpl) ListRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestsResponse, error) {
	filter.Normalize()

	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return leave.ListLeaveRequestsResponse{}, err
	}

	requests, total, err := s.LeaveRequestRepository.ListByCompany(ctx, filter, companyID)
	if err != nil {
		return leave.ListLeaveRequestsResponse{}, fmt.Errorf("failed to list leave requests: %w", err)
	}

	return toListResponse(requests, total), nil
}

// Approve implements leave.LeaveService.
func (s *LeaveServiceImpl) Approve(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveRequestResponse, error) {
	return s.review(ctx, req, leave.StatusApproved)
}

// Reject implements leave.LeaveService.
func (s *LeaveServiceImpl) Reject(ctx context.Context, req leave.ReviewLeaveRequest) (leave.LeaveRequestResponse, error) {
	return s.review(ctx, req, leave.StatusRejected)
}

func (s *LeaveServiceImpl) review(ctx context.Context, req leave.ReviewLeaveRequest, status string) (leave.LeaveRequestResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	companyID, reviewerID, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.LeaveRequestRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	if request.IsProcessed() {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	var rejectionReason *string
	if status == leave.StatusRejected {
		rejectionReason = req.RejectionReason
	}
	if err := s.LeaveRequestRepository.UpdateStatus(ctx, request.ID, status, &reviewerID, rejectionReason); err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to update leave request status: %w", err)
	}

	request.Status = status
	request.ReviewedBy = &reviewerID
	request.RejectionReason = rejectionReason
	return toRequestResponse(request), nil
}

// Cancel implements leave.LeaveService. Employees may cancel their own
// pending requests only.
func (s *LeaveServiceImpl) Cancel(ctx context.Context, id string) (leave.LeaveRequestResponse, error) {
	companyID, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveRequestResponse{}, err
	}

	request, err := s.LeaveRequestRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to get leave request: %w", err)
	}
	if request.EmployeeID != employeeID {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestNotFound
	}
	if request.IsProcessed() {
		return leave.LeaveRequestResponse{}, leave.ErrLeaveRequestAlreadyProcessed
	}

	if err := s.LeaveRequestRepository.UpdateStatus(ctx, request.ID, leave.StatusCancelled, nil, nil); err != nil {
		return leave.LeaveRequestResponse{}, fmt.Errorf("failed to cancel leave request: %w", err)
	}

	request.Status = leave.StatusCancelled
	return toRequestResponse(request), nil
}

// GetMyAllowances implements leave.LeaveService.
func (s *LeaveServiceImpl) GetMyAllowances(ctx context.Context, year int) ([]leave.AllowanceResponse, error) {
	companyID, employeeID, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}
	if year == 0 {
		year = s.now().Year()
	}

	types, err := s.LeaveTypeRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	allowances := make([]leave.AllowanceResponse, 0, len(types))
	for _, leaveType := range types {
		if !leaveType.IsActive {
			continue
		}
		used, err := s.LeaveRequestRepository.SumApprovedDays(ctx, employeeID, leaveType.ID, year)
		if err != nil {
			return nil, fmt.Errorf("failed to sum approved days: %w", err)
		}
		remaining := leaveType.DefaultAllowanceDays - used
		if remaining < 0 {
			remaining = 0
		}
		allowances = append(allowances, leave.AllowanceResponse{
			LeaveTypeID:   leaveType.ID,
			LeaveTypeName: leaveType.Name,
			AllowanceDays: leaveType.DefaultAllowanceDays,
			UsedDays:      used,
			RemainingDays: remaining,
		})
	}

	return allowances, nil
}

// MonthView implements leave.LeaveService. Approved and pending requests are
// laid out as week-row bars stacked into non-overlapping lanes.
func (s *LeaveServiceImpl) MonthView(ctx context.Context, year int, month int) (leave.MonthViewResponse, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return leave.MonthViewResponse{}, err
	}

	loc := s.companyLocation(ctx, companyID)
	if year == 0 {
		year = s.now().In(loc).Year()
	}
	if month == 0 {
		month = int(s.now().In(loc).Month())
	}
	if month < 1 || month > 12 {
		return leave.MonthViewResponse{}, fmt.Errorf("month must be between 1 and 12")
	}

	weeks := calgrid.MonthWeeks(year, time.Month(month), loc)
	from := weeks[0].Start()
	to := weeks[len(weeks)-1].End()

	requests, err := s.LeaveRequestRepository.ListInRange(ctx, companyID, from, to,
		[]string{leave.StatusApproved, leave.StatusPending})
	if err != nil {
		return leave.MonthViewResponse{}, fmt.Errorf("failed to list leave requests in range: %w", err)
	}

	byID := make(map[string]leave.LeaveRequest, len(requests))
	spans := make([]calgrid.Span, 0, len(requests))
	for _, request := range requests {
		byID[request.ID] = request
		spans = append(spans, calgrid.NewSpan(request.ID, request.StartDate, request.EndDate))
	}

	// Single-day requests render inside their day cell so they never
	// consume a bar lane.
	multiDay := calgrid.FilterMultiDay(spans)
	singleDay := calgrid.FilterSingleDay(spans)

	resp := leave.MonthViewResponse{Year: year, Month: month}
	for _, week := range weeks {
		view := leave.WeekView{}
		for i, day := range week {
			view.Days[i] = day.Format(calgrid.DateLayout)
		}

		layout := calgrid.LayoutWeek(week, multiDay)
		view.LaneCount = layout.LaneCount()
		for _, seg := range layout.Segments {
			request := byID[seg.ID]
			view.Bars = append(view.Bars, leave.BarView{
				ID:           seg.ID,
				Label:        requestLabel(request),
				Color:        request.LeaveColor,
				Status:       request.Status,
				DisplayStart: seg.DisplayStart.Format(calgrid.DateLayout),
				DisplayEnd:   seg.DisplayEnd.Format(calgrid.DateLayout),
				CapStart:     seg.CapStart,
				CapEnd:       seg.CapEnd,
				Lane:         seg.Lane,
			})
		}

		for _, span := range singleDay {
			if !week.Contains(span.Start) {
				continue
			}
			request := byID[span.ID]
			if view.Cells == nil {
				view.Cells = make(map[string][]leave.CellItem)
			}
			key := span.Start.Format(calgrid.DateLayout)
			view.Cells[key] = append(view.Cells[key], leave.CellItem{
				ID:     span.ID,
				Label:  requestLabel(request),
				Color:  request.LeaveColor,
				Status: request.Status,
			})
		}
		resp.Weeks = append(resp.Weeks, view)
	}

	return resp, nil
}

func requestLabel(request leave.LeaveRequest) string {
	label := ""
	if request.EmployeeName != nil {
		label = *request.EmployeeName
	}
	if request.LeaveTypeName != nil {
		if label != "" {
			label = label + " - " + *request.LeaveTypeName
		} else {
			label = *request.LeaveTypeName
		}
	}
	return label
}

// ListTypes implements leave.LeaveService.
func (s *LeaveServiceImpl) ListTypes(ctx context.Context) ([]leave.LeaveTypeResponse, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return nil, err
	}

	types, err := s.LeaveTypeRepository.GetByCompanyID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}

	resp := make([]leave.LeaveTypeResponse, 0, len(types))
	for _, leaveType := range types {
		resp = append(resp, toTypeResponse(leaveType))
	}
	return resp, nil
}

// CreateType implements leave.LeaveService.
func (s *LeaveServiceImpl) CreateType(ctx context.Context, req leave.LeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveTypeResponse{}, fmt.Errorf("failed to generate id: %w", err)
	}

	leaveType := leave.LeaveType{
		ID:                   id.String(),
		CompanyID:            companyID,
		Name:                 req.Name,
		Color:                req.Color,
		DefaultAllowanceDays: req.DefaultAllowanceDays,
		RequiresApproval:     req.RequiresApproval,
		IsActive:             true,
	}

	created, err := s.LeaveTypeRepository.Create(ctx, leaveType)
	if err != nil {
		return leave.LeaveTypeResponse{}, fmt.Errorf("failed to create leave type: %w", err)
	}
	return toTypeResponse(created), nil
}

// UpdateType implements leave.LeaveService.
func (s *LeaveServiceImpl) UpdateType(ctx context.Context, req leave.LeaveTypeRequest) (leave.LeaveTypeResponse, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return leave.LeaveTypeResponse{}, err
	}

	leaveType, err := s.LeaveTypeRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveTypeResponse{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveTypeResponse{}, fmt.Errorf("failed to get leave type: %w", err)
	}

	leaveType.Name = req.Name
	leaveType.Color = req.Color
	leaveType.DefaultAllowanceDays = req.DefaultAllowanceDays
	leaveType.RequiresApproval = req.RequiresApproval

	if err := s.LeaveTypeRepository.Update(ctx, leaveType); err != nil {
		return leave.LeaveTypeResponse{}, fmt.Errorf("failed to update leave type: %w", err)
	}
	return toTypeResponse(leaveType), nil
}

// DeleteType implements leave.LeaveService.
func (s *LeaveServiceImpl) DeleteType(ctx context.Context, id string) error {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.LeaveTypeRepository.Delete(ctx, id, companyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.ErrLeaveTypeNotFound
		}
		return fmt.Errorf("failed to delete leave type: %w", err)
	}
	return nil
}

func toListResponse(requests []leave.LeaveRequest, total int64) leave.ListLeaveRequestsResponse {
	items := make([]leave.LeaveRequestResponse, 0, len(requests))
	for _, request := range requests {
		items = append(items, toRequestResponse(request))
	}
	return leave.ListLeaveRequestsResponse{Requests: items, TotalItems: total}
}

func toRequestResponse(request leave.LeaveRequest) leave.LeaveRequestResponse {
	end := request.StartDate
	if request.EndDate != nil {
		end = *request.EndDate
	}
	return leave.LeaveRequestResponse{
		ID:              request.ID,
		EmployeeID:      request.EmployeeID,
		EmployeeName:    request.EmployeeName,
		LeaveTypeID:     request.LeaveTypeID,
		LeaveTypeName:   request.LeaveTypeName,
		Color:           request.LeaveColor,
		StartDate:       request.StartDate.Format("2006-01-02"),
		EndDate:         end.Format("2006-01-02"),
		Days:            request.Days(),
		Status:          request.Status,
		Reason:          request.Reason,
		RejectionReason: request.RejectionReason,
	}
}

func toTypeResponse(leaveType leave.LeaveType) leave.LeaveTypeResponse {
	return leave.LeaveTypeResponse{
		ID:                   leaveType.ID,
		Name:                 leaveType.Name,
		Color:                leaveType.Color,
		DefaultAllowanceDays: leaveType.DefaultAllowanceDays,
		RequiresApproval:     leaveType.RequiresApproval,
		IsActive:             leaveType.IsActive,
	}
}
