package company

import (
	"time"

	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/validator"
)

type UpdateCompanyRequest struct {
	Name     string  `json:"name"`
	Address  *string `json:"address"`
	Timezone string  `json:"timezone"`
}

func (r *UpdateCompanyRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}
	if len(r.Name) > 255 {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name must not exceed 255 characters",
		})
	}
	if !validator.IsEmpty(r.Timezone) {
		if _, err := time.LoadLocation(r.Timezone); err != nil {
			errs = append(errs, validator.ValidationError{
				Field:   "timezone",
				Message: "timezone must be a valid IANA timezone identifier",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}

	return nil
}

type CompanyResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Username string  `json:"username"`
	Address  *string `json:"address,omitempty"`
	Timezone string  `json:"timezone"`
}

func ToCompanyResponse(c Company) CompanyResponse {
	return CompanyResponse{
		ID:       c.ID,
		Name:     c.Name,
		Username: c.Username,
		Address:  c.Address,
		Timezone: c.Timezone,
	}
}
