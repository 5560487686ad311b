package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/calendar"
	"github.com/Obilginozi/teamsphere-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type CalendarHandler interface {
	CreateEvent(w http.ResponseWriter, r *http.Request)
	UpdateEvent(w http.ResponseWriter, r *http.Request)
	DeleteEvent(w http.ResponseWriter, r *http.Request)
	GetEvent(w http.ResponseWriter, r *http.Request)
	MonthView(w http.ResponseWriter, r *http.Request)
	ExportICS(w http.ResponseWriter, r *http.Request)
}

type CalendarHandlerImpl struct {
	eventService calendar.EventService
}

func NewCalendarHandler(eventService calendar.EventService) CalendarHandler {
	return &CalendarHandlerImpl{eventService: eventService}
}

// CreateEvent implements CalendarHandler.
func (h *CalendarHandlerImpl) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var createReq calendar.CreateEventRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("CreateEvent decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	event, err := h.eventService.CreateEvent(r.Context(), createReq)
	if err != nil {
		slog.Error("CreateEvent service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Event created", event)
}

// UpdateEvent implements CalendarHandler.
func (h *CalendarHandlerImpl) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	var updateReq calendar.UpdateEventRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateEvent decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	event, err := h.eventService.UpdateEvent(r.Context(), updateReq)
	if err != nil {
		slog.Error("UpdateEvent service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Event updated", event)
}

// DeleteEvent implements CalendarHandler.
func (h *CalendarHandlerImpl) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.eventService.DeleteEvent(r.Context(), id); err != nil {
		slog.Error("DeleteEvent service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Event deleted", nil)
}

// GetEvent implements CalendarHandler.
func (h *CalendarHandlerImpl) GetEvent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	event, err := h.eventService.GetEvent(r.Context(), id)
	if err != nil {
		slog.Error("GetEvent service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, event)
}

// MonthView implements CalendarHandler.
func (h *CalendarHandlerImpl) MonthView(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	year, _ := strconv.Atoi(q.Get("year"))
	month, _ := strconv.Atoi(q.Get("month"))

	view, err := h.eventService.MonthView(r.Context(), year, month)
	if err != nil {
		slog.Error("MonthView service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, view)
}

// ExportICS implements CalendarHandler.
func (h *CalendarHandlerImpl) ExportICS(w http.ResponseWriter, r *http.Request) {
	year, _ := strconv.Atoi(r.URL.Query().Get("year"))

	feed, err := h.eventService.ExportICS(r.Context(), year)
	if err != nil {
		slog.Error("ExportICS service error", "error", err)
		response.HandleError(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="company-calendar.ics"`)
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(feed)); err != nil {
		slog.Error("ExportICS write error", "error", err)
	}
}
