package employee

import "errors"

var (
	ErrEmployeeNotFound = errors.New("employee not found")
	ErrEmailExists      = errors.New("email already registered in this company")
	ErrEmployeeInactive = errors.New("employee is not active")
)
