package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/leave"
	"github.com/Obilginozi/teamsphere-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type LeaveHandler interface {
	Submit(w http.ResponseWriter, r *http.Request)
	GetMyRequests(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	GetMyAllowances(w http.ResponseWriter, r *http.Request)
	MonthView(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	CreateType(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	DeleteType(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	leaveService leave.LeaveService
}

func NewLeaveHandler(leaveService leave.LeaveService) LeaveHandler {
	return &LeaveHandlerImpl{leaveService: leaveService}
}

// Submit implements LeaveHandler.
func (h *LeaveHandlerImpl) Submit(w http.ResponseWriter, r *http.Request) {
	var submitReq leave.SubmitLeaveRequest

	if err := json.NewDecoder(r.Body).Decode(&submitReq); err != nil {
		slog.Error("Submit decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	request, err := h.leaveService.Submit(r.Context(), submitReq)
	if err != nil {
		slog.Error("Submit service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave request submitted", request)
}

// GetMyRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) GetMyRequests(w http.ResponseWriter, r *http.Request) {
	filter := leaveFilterFromQuery(r)

	list, err := h.leaveService.GetMyRequests(r.Context(), filter)
	if err != nil {
		slog.Error("GetMyRequests service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Requests, &response.Meta{TotalItems: list.TotalItems})
}

// ListRequests implements LeaveHandler.
func (h *LeaveHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	filter := leaveFilterFromQuery(r)

	list, err := h.leaveService.ListRequests(r.Context(), filter)
	if err != nil {
		slog.Error("ListRequests service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Requests, &response.Meta{TotalItems: list.TotalItems})
}

// Approve implements LeaveHandler.
func (h *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	reviewReq := leave.ReviewLeaveRequest{ID: chi.URLParam(r, "id")}

	request, err := h.leaveService.Approve(r.Context(), reviewReq)
	if err != nil {
		slog.Error("Approve service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request approved", request)
}

// Reject implements LeaveHandler.
func (h *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	reviewReq := leave.ReviewLeaveRequest{ID: chi.URLParam(r, "id")}

	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&reviewReq); err != nil {
			slog.Error("Reject decode error", "error", err)
			response.BadRequest(w, "Invalid request format", nil)
			return
		}
		reviewReq.ID = chi.URLParam(r, "id")
	}

	request, err := h.leaveService.Reject(r.Context(), reviewReq)
	if err != nil {
		slog.Error("Reject service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request rejected", request)
}

// Cancel implements LeaveHandler.
func (h *LeaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	request, err := h.leaveService.Cancel(r.Context(), id)
	if err != nil {
		slog.Error("Cancel service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave request cancelled", request)
}

// GetMyAllowances implements LeaveHandler.
func (h *LeaveHandlerImpl) GetMyAllowances(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	allowances, err := h.leaveService.GetMyAllowances(r.Context(), year)
	if err != nil {
		slog.Error("GetMyAllowances service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, allowances)
}

// MonthView implements LeaveHandler.
func (h *LeaveHandlerImpl) MonthView(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, _ := strconv.Atoi(q.Get("year"))
	month, _ := strconv.Atoi(q.Get("month"))

	view, err := h.leaveService.MonthView(r.Context(), year, month)
	if err != nil {
		slog.Error("MonthView service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// ListTypes implements LeaveHandler.
func (h *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	types, err := h.leaveService.ListTypes(r.Context())
	if err != nil {
		slog.Error("ListTypes service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, types)
}

// CreateType implements LeaveHandler.
func (h *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var typeReq leave.LeaveTypeRequest

	if err := json.NewDecoder(r.Body).Decode(&typeReq); err != nil {
		slog.Error("CreateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	leaveType, err := h.leaveService.CreateType(r.Context(), typeReq)
	if err != nil {
		slog.Error("CreateType service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Leave type created", leaveType)
}

// UpdateType implements LeaveHandler.
func (h *LeaveHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	var typeReq leave.LeaveTypeRequest

	if err := json.NewDecoder(r.Body).Decode(&typeReq); err != nil {
		slog.Error("UpdateType decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	typeReq.ID = chi.URLParam(r, "id")

	leaveType, err := h.leaveService.UpdateType(r.Context(), typeReq)
	if err != nil {
		slog.Error("UpdateType service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type updated", leaveType)
}

// DeleteType implements LeaveHandler.
func (h *LeaveHandlerImpl) DeleteType(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.leaveService.DeleteType(r.Context(), id); err != nil {
		slog.Error("DeleteType service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Leave type deleted", nil)
}

func leaveFilterFromQuery(r *http.Request) leave.LeaveRequestFilter {
	q := r.URL.Query()
	var filter leave.LeaveRequestFilter
	filter.Status = q.Get("status")
	filter.Year, _ = strconv.Atoi(q.Get("year"))
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	return filter
}
