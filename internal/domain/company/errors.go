package company

import "errors"

var (
	ErrCompanyNotFound       = errors.New("company not found")
	ErrCompanyUsernameExists = errors.New("company username already taken")
	ErrInvalidTimezone       = errors.New("invalid timezone identifier")
)
