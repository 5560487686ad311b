package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/company"
	"github.com/Obilginozi/teamsphere-backend-go/internal/handler/http/response"
)

type CompanyHandler interface {
	GetMyCompany(w http.ResponseWriter, r *http.Request)
	UpdateMyCompany(w http.ResponseWriter, r *http.Request)
}

type CompanyHandlerImpl struct {
	companyService company.CompanyService
}

func NewCompanyHandler(companyService company.CompanyService) CompanyHandler {
	return &CompanyHandlerImpl{companyService: companyService}
}

// GetMyCompany implements CompanyHandler.
func (h *CompanyHandlerImpl) GetMyCompany(w http.ResponseWriter, r *http.Request) {
	comp, err := h.companyService.GetMyCompany(r.Context())
	if err != nil {
		slog.Error("GetMyCompany service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.Success(w, comp)
}

// UpdateMyCompany implements CompanyHandler.
func (h *CompanyHandlerImpl) UpdateMyCompany(w http.ResponseWriter, r *http.Request) {
	var updateReq company.UpdateCompanyRequest

	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateMyCompany decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	comp, err := h.companyService.UpdateMyCompany(r.Context(), updateReq)
	if err != nil {
		slog.Error("UpdateMyCompany service error", "error", err)
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Company updated", comp)
}
