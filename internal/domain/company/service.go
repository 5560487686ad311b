package company

import "context"

// CompanyService defines business logic for company administration.
type CompanyService interface {
	GetMyCompany(ctx context.Context) (CompanyResponse, error)
	UpdateMyCompany(ctx context.Context, req UpdateCompanyRequest) (CompanyResponse, error)
}
