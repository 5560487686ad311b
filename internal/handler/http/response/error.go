package response

import (
	"errors"
	"net/http"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/attendance"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/auth"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/calendar"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/company"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/employee"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/leave"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/payroll"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/ticket"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/user"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")
	case errors.Is(err, auth.ErrTokenExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrRefreshTokenRevoked):
		Unauthorized(w, "Refresh token revoked")
	case errors.Is(err, auth.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, auth.ErrCompanyNotFound):
		NotFound(w, "Company not found")

	// User domain errors
	case errors.Is(err, user.ErrOwnerAccessRequired):
		Forbidden(w, "Owner access required")
	case errors.Is(err, user.ErrManagerAccessRequired):
		Forbidden(w, "Manager access required")
	case errors.Is(err, user.ErrInsufficientPermissions):
		Forbidden(w, "Insufficient permissions")
	case errors.Is(err, user.ErrUserInactive):
		Forbidden(w, "User account is deactivated")

	// Company domain errors
	case errors.Is(err, company.ErrCompanyNotFound):
		NotFound(w, "Company not found")
	case errors.Is(err, company.ErrCompanyUsernameExists):
		Conflict(w, "Company username already taken")
	case errors.Is(err, company.ErrInvalidTimezone):
		BadRequest(w, "Invalid timezone identifier", nil)

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Email already registered in this company")
	case errors.Is(err, employee.ErrEmployeeInactive):
		Forbidden(w, "Employee is not active")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrTimeLogNotFound):
		NotFound(w, "Time log not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, "Already checked in today")
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, "No open shift to check out from")
	case errors.Is(err, attendance.ErrAlreadyCheckedOut):
		Conflict(w, "Shift already checked out")
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, "Unauthorized to access this time log")

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrInsufficientAllowance):
		BadRequest(w, "Insufficient leave allowance", nil)
	case errors.Is(err, leave.ErrLeaveRequestAlreadyProcessed):
		Conflict(w, "Leave request already processed")
	case errors.Is(err, leave.ErrOverlappingRequest):
		Conflict(w, "An overlapping leave request already exists")

	// Calendar domain errors
	case errors.Is(err, calendar.ErrEventNotFound):
		NotFound(w, "Calendar event not found")
	case errors.Is(err, calendar.ErrInvalidEventType):
		BadRequest(w, "Invalid event type", nil)

	// Ticket domain errors
	case errors.Is(err, ticket.ErrTicketNotFound):
		NotFound(w, "Ticket not found")
	case errors.Is(err, ticket.ErrTicketFinalized):
		Conflict(w, "Ticket has already been resolved or closed")
	case errors.Is(err, ticket.ErrUnauthorized):
		Forbidden(w, "Unauthorized to access this ticket")

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrUnauthorized):
		Forbidden(w, "Unauthorized to access this payslip")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
