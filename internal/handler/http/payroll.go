package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/payroll"
	"github.com/Obilginozi/teamsphere-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type PayrollHandler interface {
	GetMyPayslips(w http.ResponseWriter, r *http.Request)
	GetPayslip(w http.ResponseWriter, r *http.Request)
	ListPayslips(w http.ResponseWriter, r *http.Request)
}

type PayrollHandlerImpl struct {
	payslipService payroll.PayslipService
}

func NewPayrollHandler(payslipService payroll.PayslipService) PayrollHandler {
	return &PayrollHandlerImpl{payslipService: payslipService}
}

// GetMyPayslips implements PayrollHandler.
func (h *PayrollHandlerImpl) GetMyPayslips(w http.ResponseWriter, r *http.Request) {
	filter := payslipFilterFromQuery(r)

	list, err := h.payslipService.GetMyPayslips(r.Context(), filter)
	if err != nil {
		slog.Error("GetMyPayslips service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Payslips, &response.Meta{TotalItems: list.TotalItems})
}

// GetPayslip implements PayrollHandler.
func (h *PayrollHandlerImpl) GetPayslip(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	payslip, err := h.payslipService.GetPayslip(r.Context(), id)
	if err != nil {
		slog.Error("GetPayslip service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, payslip)
}

// ListPayslips implements PayrollHandler.
func (h *PayrollHandlerImpl) ListPayslips(w http.ResponseWriter, r *http.Request) {
	filter := payslipFilterFromQuery(r)

	list, err := h.payslipService.ListPayslips(r.Context(), filter)
	if err != nil {
		slog.Error("ListPayslips service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, list.Payslips, &response.Meta{TotalItems: list.TotalItems})
}

func payslipFilterFromQuery(r *http.Request) payroll.PayslipFilter {
	q := r.URL.Query()
	var filter payroll.PayslipFilter
	filter.Year, _ = strconv.Atoi(q.Get("year"))
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.Limit, _ = strconv.Atoi(q.Get("limit"))
	return filter
}
