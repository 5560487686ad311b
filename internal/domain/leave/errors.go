package leave

import "errors"

var (
	ErrLeaveRequestNotFound         = errors.New("leave request not found")
	ErrLeaveTypeNotFound            = errors.New("leave type not found")
	ErrInsufficientAllowance        = errors.New("insufficient leave allowance")
	ErrLeaveRequestAlreadyProcessed = errors.New("leave request already processed")
	ErrOverlappingRequest           = errors.New("an overlapping leave request already exists")
)
