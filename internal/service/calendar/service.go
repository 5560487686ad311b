package calendar

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/calendar"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/company"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/leave"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/calgrid"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/database"
	ical "github.com/arran4/golang-ical"
	"github.com/go-chi/jwtauth/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type EventServiceImpl struct {
	db *database.DB
	calendar.EventRepository
	leave.LeaveRequestRepository
	company.CompanyRepository

	now func() time.Time
}

func NewEventService(
	db *database.DB,
	eventRepo calendar.EventRepository,
	leaveRequestRepo leave.LeaveRequestRepository,
	companyRepo company.CompanyRepository,
) *EventServiceImpl {
	return &EventServiceImpl{
		db:                     db,
		EventRepository:        eventRepo,
		LeaveRequestRepository: leaveRequestRepo,
		CompanyRepository:      companyRepo,
		now:                    time.Now,
	}
}

func claimsFromContext(ctx context.Context) (companyID string, userID string, err error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", "", fmt.Errorf("company_id claim is missing or invalid")
	}

	userID, ok = claims["user_id"].(string)
	if !ok || userID == "" {
		return "", "", fmt.Errorf("user_id claim is missing or invalid")
	}

	return companyID, userID, nil
}

func (s *EventServiceImpl) companyLocation(ctx context.Context, companyID string) *time.Location {
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

// CreateEvent implements calendar.EventService.
func (s *EventServiceImpl) CreateEvent(ctx context.Context, req calendar.CreateEventRequest) (calendar.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.EventResponse{}, err
	}

	companyID, userID, err := claimsFromContext(ctx)
	if err != nil {
		return calendar.EventResponse{}, err
	}

	id, err := uuid.NewV7()
	if err != nil {
		return calendar.EventResponse{}, fmt.Errorf("failed to generate id: %w", err)
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	var end *time.Time
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, _ := time.Parse("2006-01-02", *req.EndDate)
		end = &parsed
	}

	event := calendar.Event{
		ID:          id.String(),
		CompanyID:   companyID,
		Title:       req.Title,
		Description: req.Description,
		EventType:   req.EventType,
		StartDate:   start,
		EndDate:     end,
		Color:       req.Color,
		CreatedBy:   userID,
	}

	created, err := s.EventRepository.Create(ctx, event)
	if err != nil {
		return calendar.EventResponse{}, fmt.Errorf("failed to create event: %w", err)
	}
	return toEventResponse(created), nil
}

// UpdateEvent implements calendar.EventService.
func (s *EventServiceImpl) UpdateEvent(ctx context.Context, req calendar.UpdateEventRequest) (calendar.EventResponse, error) {
	if err := req.Validate(); err != nil {
		return calendar.EventResponse{}, err
	}

	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return calendar.EventResponse{}, err
	}

	event, err := s.EventRepository.GetByID(ctx, req.ID, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return calendar.EventResponse{}, calendar.ErrEventNotFound
		}
		return calendar.EventResponse{}, fmt.Errorf("failed to get event: %w", err)
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	event.Title = req.Title
	event.Description = req.Description
	event.EventType = req.EventType
	event.StartDate = start
	event.EndDate = nil
	if req.EndDate != nil && *req.EndDate != "" {
		parsed, _ := time.Parse("2006-01-02", *req.EndDate)
		event.EndDate = &parsed
	}
	event.Color = req.Color

	if err := s.EventRepository.Update(ctx, event); err != nil {
		return calendar.EventResponse{}, fmt.Errorf("failed to update event: %w", err)
	}
	return toEventResponse(event), nil
}

// DeleteEvent implements calendar.EventService.
func (s *EventServiceImpl) DeleteEvent(ctx context.Context, id string) error {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return err
	}

	if err := s.EventRepository.Delete(ctx, id, companyID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return calendar.ErrEventNotFound
		}
		return fmt.Errorf("failed to delete event: %w", err)
	}
	return nil
}

// GetEvent implements calendar.EventService.
func (s *EventServiceImpl) GetEvent(ctx context.Context, id string) (calendar.EventResponse, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return calendar.EventResponse{}, err
	}

	event, err := s.EventRepository.GetByID(ctx, id, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return calendar.EventResponse{}, calendar.ErrEventNotFound
		}
		return calendar.EventResponse{}, fmt.Errorf("failed to get event: %w", err)
	}
	return toEventResponse(event), nil
}

// barSource pairs a laid-out span with the labeling data for its bar.
type barSource struct {
	kind      string
	label     string
	eventType string
	color     *string
	span      calgrid.Span
}

// MonthView implements calendar.EventService. Events and approved leave are
// merged into one grid: multi-day entries become lane-stacked bars, single-
// day entries land in their day cell.
func (s *EventServiceImpl) MonthView(ctx context.Context, year int, month int) (calendar.MonthViewResponse, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return calendar.MonthViewResponse{}, err
	}

	loc := s.companyLocation(ctx, companyID)
	if year == 0 {
		year = s.now().In(loc).Year()
	}
	if month == 0 {
		month = int(s.now().In(loc).Month())
	}
	if month < 1 || month > 12 {
		return calendar.MonthViewResponse{}, fmt.Errorf("month must be between 1 and 12")
	}

	weeks := calgrid.MonthWeeks(year, time.Month(month), loc)
	from := weeks[0].Start()
	to := weeks[len(weeks)-1].End()

	events, err := s.EventRepository.ListInRange(ctx, companyID, from, to)
	if err != nil {
		return calendar.MonthViewResponse{}, fmt.Errorf("failed to list events in range: %w", err)
	}
	leaves, err := s.LeaveRequestRepository.ListInRange(ctx, companyID, from, to, []string{leave.StatusApproved})
	if err != nil {
		return calendar.MonthViewResponse{}, fmt.Errorf("failed to list leave requests in range: %w", err)
	}

	sources := make(map[string]barSource, len(events)+len(leaves))
	spans := make([]calgrid.Span, 0, len(events)+len(leaves))
	for _, event := range events {
		span := calgrid.NewSpan(event.ID, event.StartDate, event.EndDate)
		sources[event.ID] = barSource{
			kind:      "event",
			label:     event.Title,
			eventType: event.EventType,
			color:     event.Color,
			span:      span,
		}
		spans = append(spans, span)
	}
	for _, request := range leaves {
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
		span := calgrid.NewSpan(request.ID, request.StartDate, request.EndDate)
		sources[request.ID] = barSource{
			kind:  "leave",
			label: label,
			color: request.LeaveColor,
			span:  span,
		}
		spans = append(spans, span)
	}

	multiDay := calgrid.FilterMultiDay(spans)
	singleDay := calgrid.FilterSingleDay(spans)

	resp := calendar.MonthViewResponse{Year: year, Month: month}
	for _, week := range weeks {
		view := calendar.WeekView{}
		for i, day := range week {
			view.Days[i] = day.Format(calgrid.DateLayout)
		}

		layout := calgrid.LayoutWeek(week, multiDay)
		view.LaneCount = layout.LaneCount()
		for _, seg := range layout.Segments {
			src := sources[seg.ID]
			view.Bars = append(view.Bars, calendar.BarView{
				ID:           seg.ID,
				Kind:         src.kind,
				Label:        src.label,
				EventType:    src.eventType,
				Color:        src.color,
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
			src := sources[span.ID]
			if view.Cells == nil {
				view.Cells = make(map[string][]calendar.CellItem)
			}
			key := span.Start.Format(calgrid.DateLayout)
			view.Cells[key] = append(view.Cells[key], calendar.CellItem{
				ID:        span.ID,
				Kind:      src.kind,
				Label:     src.label,
				EventType: src.eventType,
				Color:     src.color,
			})
		}

		resp.Weeks = append(resp.Weeks, view)
	}

	return resp, nil
}

// ExportICS implements calendar.EventService. Events are exported as all-day
// VEVENTs; DTEND is exclusive per RFC 5545 so one day is added past the end.
func (s *EventServiceImpl) ExportICS(ctx context.Context, year int) (string, error) {
	companyID, _, err := claimsFromContext(ctx)
	if err != nil {
		return "", err
	}

	loc := s.companyLocation(ctx, companyID)
	if year == 0 {
		year = s.now().In(loc).Year()
	}
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, loc)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, loc)

	events, err := s.EventRepository.ListInRange(ctx, companyID, from, to)
	if err != nil {
		return "", fmt.Errorf("failed to list events in range: %w", err)
	}

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//TeamSphere//Company Calendar//EN")

	for _, event := range events {
		ve := cal.AddEvent(event.ID)
		ve.SetDtStampTime(s.now().UTC())
		ve.SetSummary(event.Title)
		if event.Description != nil {
			ve.SetDescription(*event.Description)
		}
		ve.SetAllDayStartAt(event.StartDate)
		end := event.StartDate
		if event.EndDate != nil {
			end = *event.EndDate
		}
		ve.SetAllDayEndAt(end.AddDate(0, 0, 1))
	}

	return cal.Serialize(), nil
}

func toEventResponse(event calendar.Event) calendar.EventResponse {
	end := event.StartDate
	if event.EndDate != nil {
		end = *event.EndDate
	}
	return calendar.EventResponse{
		ID:          event.ID,
		Title:       event.Title,
		Description: event.Description,
		EventType:   event.EventType,
		StartDate:   event.StartDate.Format("2006-01-02"),
		EndDate:     end.Format("2006-01-02"),
		Color:       event.Color,
	}
}
