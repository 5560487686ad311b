package fixtures

import (
	"fmt"

	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/leave"
	"github.com/google/uuid"
)

func strPtr(s string) *string { return &s }

// DefaultLeaveTypes returns the leave types seeded for a freshly registered
// company. Owners can rename or deactivate them later.
func DefaultLeaveTypes(companyID string) ([]leave.LeaveType, error) {
	defaults := []leave.LeaveType{
		{
			Name:                 "Annual Leave",
			Color:                strPtr("#4CAF50"),
			DefaultAllowanceDays: 12,
			RequiresApproval:     true,
		},
		{
			Name:                 "Sick Leave",
			Color:                strPtr("#FF9800"),
			DefaultAllowanceDays: 10,
			RequiresApproval:     false,
		},
		{
			Name:                 "Unpaid Leave",
			Color:                strPtr("#9E9E9E"),
			DefaultAllowanceDays: 30,
			RequiresApproval:     true,
		},
	}

	for i := range defaults {
		id, err := uuid.NewV7()
		if err != nil {
			return nil, fmt.Errorf("failed to generate id: %w", err)
		}
		defaults[i].ID = id.String()
		defaults[i].CompanyID = companyID
		defaults[i].IsActive = true
	}
	return defaults, nil
}
