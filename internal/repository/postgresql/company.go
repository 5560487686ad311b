package postgresql

import (
	"context"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/company"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/database"
)

type companyRepositoryImpl struct {
	db *database.DB
}

func NewCompanyRepository(db *database.DB) company.CompanyRepository {
	return &companyRepositoryImpl{db: db}
}

// Create implements company.CompanyRepository.
func (r *companyRepositoryImpl) Create(ctx context.Context, c company.Company) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO companies (id, name, username, address, timezone)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, username, address, timezone, created_at, updated_at
	`

	var created company.Company
	err := q.QueryRow(ctx, query, c.ID, c.Name, c.Username, c.Address, c.Timezone).Scan(
		&created.ID,
		&created.Name,
		&created.Username,
		&created.Address,
		&created.Timezone,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if err != nil {
		return company.Company{}, err
	}

	return created, nil
}

// GetByID implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetByID(ctx context.Context, id string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, username, address, timezone, created_at, updated_at
		FROM companies
		WHERE id = $1
	`

	var found company.Company
	err := q.QueryRow(ctx, query, id).Scan(
		&found.ID,
		&found.Name,
		&found.Username,
		&found.Address,
		&found.Timezone,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		return company.Company{}, err
	}

	return found, nil
}

// GetByUsername implements company.CompanyRepository.
func (r *companyRepositoryImpl) GetByUsername(ctx context.Context, username string) (company.Company, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, username, address, timezone, created_at, updated_at
		FROM companies
		WHERE username = $1
	`

	var found company.Company
	err := q.QueryRow(ctx, query, username).Scan(
		&found.ID,
		&found.Name,
		&found.Username,
		&found.Address,
		&found.Timezone,
		&found.CreatedAt,
		&found.UpdatedAt,
	)
	if err != nil {
		return company.Company{}, err
	}

	return found, nil
}

// Update implements company.CompanyRepository.
func (r *companyRepositoryImpl) Update(ctx context.Context, c company.Company) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE companies
		SET name = $1, address = $2, timezone = $3, updated_at = NOW()
		WHERE id = $4
	`

	_, err := q.Exec(ctx, query, c.Name, c.Address, c.Timezone, c.ID)
	return err
}
