package ticket

import "time"

// Ticket statuses
const (
	StatusOpen       = "open"
	StatusInProgress = "in_progress"
	StatusResolved   = "resolved"
	StatusClosed     = "closed"
)

// Priorities
const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

// Categories
const (
	CategoryIT       = "it"
	CategoryHR       = "hr"
	CategoryFacility = "facility"
	CategoryPayroll  = "payroll"
	CategoryOther    = "other"
)

var (
	Priorities = []string{PriorityLow, PriorityMedium, PriorityHigh}
	Categories = []string{CategoryIT, CategoryHR, CategoryFacility, CategoryPayroll, CategoryOther}
)

// Ticket is an internal support request filed by an employee.
type Ticket struct {
	ID         string
	CompanyID  string
	EmployeeID string
	Subject    string
	Body       string
	Category   string
	Priority   string
	Status     string
	AssignedTo *string
	ResolvedAt *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time

	// DTO / Join
	EmployeeName *string
}

// Comment is one entry in a ticket's thread.
type Comment struct {
	ID        string
	TicketID  string
	AuthorID  string
	Body      string
	CreatedAt time.Time

	// DTO / Join
	AuthorName *string
}

// IsFinal reports whether the ticket reached a terminal state.
func (t *Ticket) IsFinal() bool {
	return t.Status == StatusResolved || t.Status == StatusClosed
}
