package company

import (
	"context"
	"errors"
	"fmt"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/company"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/database"
	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
)

type CompanyServiceImpl struct {
	db *database.DB
	company.CompanyRepository
}

func NewCompanyService(db *database.DB, companyRepo company.CompanyRepository) *CompanyServiceImpl {
	return &CompanyServiceImpl{
		db:                db,
		CompanyRepository: companyRepo,
	}
}

func companyIDFromContext(ctx context.Context) (string, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to extract claims from context: %w", err)
	}

	companyID, ok := claims["company_id"].(string)
	if !ok || companyID == "" {
		return "", fmt.Errorf("company_id claim is missing or invalid")
	}
	return companyID, nil
}

// GetMyCompany implements company.CompanyService.
func (s *CompanyServiceImpl) GetMyCompany(ctx context.Context) (company.CompanyResponse, error) {
	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	comp, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.CompanyResponse{}, company.ErrCompanyNotFound
		}
		return company.CompanyResponse{}, fmt.Errorf("failed to get company: %w", err)
	}
	return company.ToCompanyResponse(comp), nil
}

// UpdateMyCompany implements company.CompanyService.
func (s *CompanyServiceImpl) UpdateMyCompany(ctx context.Context, req company.UpdateCompanyRequest) (company.CompanyResponse, error) {
	if err := req.Validate(); err != nil {
		return company.CompanyResponse{}, err
	}

	companyID, err := companyIDFromContext(ctx)
	if err != nil {
		return company.CompanyResponse{}, err
	}

	comp, err := s.CompanyRepository.GetByID(ctx, companyID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return company.CompanyResponse{}, company.ErrCompanyNotFound
		}
		return company.CompanyResponse{}, fmt.Errorf("failed to get company: %w", err)
	}

	comp.Name = req.Name
	comp.Address = req.Address
	if req.Timezone != "" {
		comp.Timezone = req.Timezone
	}

	if err := s.CompanyRepository.Update(ctx, comp); err != nil {
		return company.CompanyResponse{}, fmt.Errorf("failed to update company: %w", err)
	}
	return company.ToCompanyResponse(comp), nil
}
