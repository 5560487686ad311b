package ticket

import "errors"

var (
	ErrTicketNotFound  = errors.New("ticket not found")
	ErrTicketFinalized = errors.New("ticket has already been resolved or closed")
	ErrUnauthorized    = errors.New("unauthorized to access this ticket")
)
