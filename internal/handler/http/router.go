package http

import (
	"log/slog"
	"os"

	"github.com/Obilginozi/teamsphere-backend-go/internal/config"
	"github.com/Obilginozi/teamsphere-backend-go/internal/domain/user"
	"github.com/Obilginozi/teamsphere-backend-go/internal/handler/http/middleware"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth       AuthHandler
	Company    CompanyHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	Calendar   CalendarHandler
	Ticket     TicketHandler
	Payroll    PayrollHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "teamsphere"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.App.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Auth.Register)
			r.Post("/login", h.Auth.Login)
			r.Post("/refresh", h.Auth.RefreshToken)
			r.Post("/logout", h.Auth.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/company", func(r chi.Router) {
				r.Get("/", h.Company.GetMyCompany)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireOwner)
					r.Put("/", h.Company.UpdateMyCompany)
				})
			})

			r.Route("/employees", func(r chi.Router) {
				r.Get("/me", h.Employee.GetMyProfile)
				r.Put("/me", h.Employee.UpdateMyProfile)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeViewAll))
					r.Get("/", h.Employee.ListEmployees)
					r.Get("/{id}", h.Employee.GetEmployee)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionEmployeeManage))
					r.Post("/", h.Employee.CreateEmployee)
					r.Put("/{id}", h.Employee.UpdateEmployee)
					r.Delete("/{id}", h.Employee.DeactivateEmployee)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/check-in", h.Attendance.CheckIn)
				r.Post("/check-out", h.Attendance.CheckOut)
				r.Get("/me", h.Attendance.GetMyTimeLogs)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceViewAll))
					r.Get("/", h.Attendance.ListTimeLogs)
					r.Get("/{id}", h.Attendance.GetTimeLog)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionAttendanceManage))
					r.Delete("/{id}", h.Attendance.DeleteTimeLog)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Post("/requests", h.Leave.Submit)
				r.Get("/requests/me", h.Leave.GetMyRequests)
				r.Post("/requests/{id}/cancel", h.Leave.Cancel)
				r.Get("/allowances/me", h.Leave.GetMyAllowances)
				r.Get("/month-view", h.Leave.MonthView)
				r.Get("/types", h.Leave.ListTypes)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveApprove))
					r.Get("/requests", h.Leave.ListRequests)
					r.Post("/requests/{id}/approve", h.Leave.Approve)
					r.Post("/requests/{id}/reject", h.Leave.Reject)
				})

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionLeaveManageTypes))
					r.Post("/types", h.Leave.CreateType)
					r.Put("/types/{id}", h.Leave.UpdateType)
					r.Delete("/types/{id}", h.Leave.DeleteType)
				})
			})

			r.Route("/calendar", func(r chi.Router) {
				r.Get("/month-view", h.Calendar.MonthView)
				r.Get("/export.ics", h.Calendar.ExportICS)
				r.Get("/events/{id}", h.Calendar.GetEvent)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionCalendarManage))
					r.Post("/events", h.Calendar.CreateEvent)
					r.Put("/events/{id}", h.Calendar.UpdateEvent)
					r.Delete("/events/{id}", h.Calendar.DeleteEvent)
				})
			})

			r.Route("/tickets", func(r chi.Router) {
				r.Post("/", h.Ticket.Create)
				r.Get("/me", h.Ticket.GetMyTickets)
				r.Get("/{id}", h.Ticket.Get)
				r.Post("/{id}/comments", h.Ticket.Comment)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionTicketManage))
					r.Get("/", h.Ticket.ListTickets)
					r.Post("/{id}/resolve", h.Ticket.Resolve)
					r.Post("/{id}/close", h.Ticket.Close)
				})
			})

			r.Route("/payslips", func(r chi.Router) {
				r.Get("/me", h.Payroll.GetMyPayslips)
				r.Get("/{id}", h.Payroll.GetPayslip)

				r.Group(func(r chi.Router) {
					r.Use(middleware.RequirePermission(user.PermissionPayrollViewAll))
					r.Get("/", h.Payroll.ListPayslips)
				})
			})
		})
	})

	return r
}
