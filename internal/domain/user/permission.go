package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"
	PermissionEditOwnProfile Permission = "profile.edit_own"

	// Leave Management
	PermissionLeaveViewOwn     Permission = "leave.view_own"
	PermissionLeaveCreate      Permission = "leave.create"
	PermissionLeaveViewAll     Permission = "leave.view_all"
	PermissionLeaveApprove     Permission = "leave.approve"
	PermissionLeaveManageTypes Permission = "leave.manage_types"

	// Attendance Management
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceCreate  Permission = "attendance.create"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceManage  Permission = "attendance.manage"

	// Company Calendar
	PermissionCalendarView   Permission = "calendar.view"
	PermissionCalendarManage Permission = "calendar.manage"

	// Support Tickets
	PermissionTicketViewOwn Permission = "ticket.view_own"
	PermissionTicketCreate  Permission = "ticket.create"
	PermissionTicketViewAll Permission = "ticket.view_all"
	PermissionTicketManage  Permission = "ticket.manage"

	// Payroll
	PermissionPayrollViewOwn Permission = "payroll.view_own"
	PermissionPayrollViewAll Permission = "payroll.view_all"

	// Employee Management
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	// Company Management
	PermissionCompanyView   Permission = "company.view"
	PermissionCompanyManage Permission = "company.manage"
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleOwner: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionLeaveManageTypes,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionAttendanceManage,
		PermissionCalendarView,
		PermissionCalendarManage,
		PermissionTicketViewOwn,
		PermissionTicketCreate,
		PermissionTicketViewAll,
		PermissionTicketManage,
		PermissionPayrollViewOwn,
		PermissionPayrollViewAll,
		PermissionEmployeeViewAll,
		PermissionEmployeeManage,
		PermissionCompanyView,
		PermissionCompanyManage,
	},
	RoleManager: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionLeaveViewAll,
		PermissionLeaveApprove,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionAttendanceViewAll,
		PermissionAttendanceManage,
		PermissionCalendarView,
		PermissionCalendarManage,
		PermissionTicketViewOwn,
		PermissionTicketCreate,
		PermissionTicketViewAll,
		PermissionTicketManage,
		PermissionPayrollViewOwn,
		PermissionPayrollViewAll,
		PermissionEmployeeViewAll,
		PermissionCompanyView,
	},
	RoleEmployee: {
		PermissionViewOwnProfile,
		PermissionEditOwnProfile,
		PermissionLeaveViewOwn,
		PermissionLeaveCreate,
		PermissionAttendanceViewOwn,
		PermissionAttendanceCreate,
		PermissionCalendarView,
		PermissionTicketViewOwn,
		PermissionTicketCreate,
		PermissionPayrollViewOwn,
		PermissionCompanyView,
	},
}

// HasPermission checks whether a role carries a permission.
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
