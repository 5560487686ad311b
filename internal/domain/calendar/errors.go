package calendar

import "errors"

var (
	ErrEventNotFound    = errors.New("calendar event not found")
	ErrInvalidEventType = errors.New("invalid event type")
)
