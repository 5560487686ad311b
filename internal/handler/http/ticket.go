package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/ticket"
	"github.com/Obilginozi/teamsphere-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TicketHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	GetMyTickets(w http.ResponseWriter, r *http.Request)
	ListTickets(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Comment(w http.ResponseWriter, r *http.Request)
	Resolve(w http.ResponseWriter, r *http.Request)
	Close(w http.ResponseWriter, r *http.Request)
}

type TicketHandlerImpl struct {
	ticketService ticket.TicketService
}

func NewTicketHandler(ticketService ticket.TicketService) TicketHandler {
	return &TicketHandlerImpl{ticketService: ticketService}
}

// Create implements TicketHandler.
func (h *TicketHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var createReq ticket.CreateTicketRequest

	if err := json.NewDecoder(r.Body).Decode(&createReq); err != nil {
		slog.Error("Create decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.ticketService.Create(r.Context(), createReq)
	if err != nil {
		slog.Error("Create service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Ticket created", created)
}

// GetMyTickets implements TicketHandler.
func (h *TicketHandlerImpl) GetMyTickets(w http.ResponseWriter, r *http.Request) {
	filter := ticketFilterFromQuery(r)

	list, err := h.ticketService.GetMyTickets(r.Context(), filter)
	if err != nil {
		slog.Error("GetMyTickets service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Tickets, &response.Meta{TotalItems: list.TotalItems})
}

// ListTickets implements TicketHandler.
func (h *TicketHandlerImpl) ListTickets(w http.ResponseWriter, r *http.Request) {
	filter := ticketFilterFromQuery(r)

	list, err := h.ticketService.ListTickets(r.Context(), filter)
	if err != nil {
		slog.Error("ListTickets service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Tickets, &response.Meta{TotalItems: list.TotalItems})
}

// Get implements TicketHandler.
func (h *TicketHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	detail, err := h.ticketService.Get(r.Context(), id)
	if err != nil {
		slog.Error("Get service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, detail)
}

// Comment implements TicketHandler.
func (h *TicketHandlerImpl) Comment(w http.ResponseWriter, r *http.Request) {
	var commentReq ticket.CommentRequest

	if err := json.NewDecoder(r.Body).Decode(&commentReq); err != nil {
		slog.Error("Comment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	commentReq.TicketID = chi.URLParam(r, "id")

	comment, err := h.ticketService.Comment(r.Context(), commentReq)
	if err != nil {
		slog.Error("Comment service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Comment added", comment)
}

// Resolve implements TicketHandler.
func (h *TicketHandlerImpl) Resolve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.ticketService.Resolve(r.Context(), id); err != nil {
		slog.Error("Resolve service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Ticket resolved", nil)
}

// Close implements TicketHandler.
func (h *TicketHandlerImpl) Close(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.ticketService.Close(r.Context(), id); err != nil {
		slog.Error("Close service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Ticket closed", nil)
}

func ticketFilterFromQuery(r *http.Request) ticket.TicketFilter {
	q := r.URL.Query()
	var filter ticket.TicketFilter
	filter.Status = q.Get("status")
	filter.Category = q.Get("category")
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	return filter
}
