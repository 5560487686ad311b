package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/attendance"
	"github.com/Obilginozi/teamsphere-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type AttendanceHandler interface {
	CheckIn(w http.ResponseWriter, r *http.Request)
	CheckOut(w http.ResponseWriter, r *http.Request)
	GetMyTimeLogs(w http.ResponseWriter, r *http.Request)
	ListTimeLogs(w http.ResponseWriter, r *http.Request)
	GetTimeLog(w http.ResponseWriter, r *http.Request)
	DeleteTimeLog(w http.ResponseWriter, r *http.Request)
}

type AttendanceHandlerImpl struct {
	timeLogService attendance.TimeLogService
}

func NewAttendanceHandler(timeLogService attendance.TimeLogService) AttendanceHandler {
	return &AttendanceHandlerImpl{timeLogService: timeLogService}
}

// CheckIn implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckIn(w http.ResponseWriter, r *http.Request) {
	var checkInReq attendance.CheckInRequest

	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&checkInReq); err != nil {
			slog.Error("CheckIn decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	timeLog, err := h.timeLogService.CheckIn(r.Context(), checkInReq)
	if err != nil {
		slog.Error("CheckIn service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Checked in", timeLog)
}

// CheckOut implements AttendanceHandler.
func (h *AttendanceHandlerImpl) CheckOut(w http.ResponseWriter, r *http.Request) {
	var checkOutReq attendance.CheckOutRequest

	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&checkOutReq); err != nil {
			slog.Error("CheckOut decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
	}

	timeLog, err := h.timeLogService.CheckOut(r.Context(), checkOutReq)
	if err != nil {
		slog.Error("CheckOut service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Checked out", timeLog)
}

// GetMyTimeLogs implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetMyTimeLogs(w http.ResponseWriter, r *http.Request) {
	filter := timeLogFilterFromQuery(r)

	list, err := h.timeLogService.GetMyTimeLogs(r.Context(), filter)
	if err != nil {
		slog.Error("GetMyTimeLogs service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.TimeLogs, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalItems,
	})
}

// ListTimeLogs implements AttendanceHandler.
func (h *AttendanceHandlerImpl) ListTimeLogs(w http.ResponseWriter, r *http.Request) {
	filter := timeLogFilterFromQuery(r)
	filter.EmployeeID = r.URL.Query().Get("employee_id")

	list, err := h.timeLogService.ListTimeLogs(r.Context(), filter)
	if err != nil {
		slog.Error("ListTimeLogs service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.TimeLogs, &response.Meta{
		Page:       list.Page,
		Limit:      list.Limit,
		TotalItems: list.TotalItems,
	})
}

// GetTimeLog implements AttendanceHandler.
func (h *AttendanceHandlerImpl) GetTimeLog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	timeLog, err := h.timeLogService.GetTimeLog(r.Context(), id)
	if err != nil {
		slog.Error("GetTimeLog service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, timeLog)
}

// DeleteTimeLog implements AttendanceHandler.
func (h *AttendanceHandlerImpl) DeleteTimeLog(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.timeLogService.DeleteTimeLog(r.Context(), id); err != nil {
		slog.Error("DeleteTimeLog service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Time log deleted", nil)
}

func timeLogFilterFromQuery(r *http.Request) attendance.TimeLogFilter {
	q := r.URL.Query()
	var filter attendance.TimeLogFilter
	filter.Year, _ = strconv.Atoi(q.Get("year"))
	filter.Month, _ = strconv.Atoi(q.Get("month"))
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	return filter
}
