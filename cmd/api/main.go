package main

import (
	"fmt"
	"net/http"

	"github.com/Obilginozi/teamsphere-backend-go/internal/config"
	appHTTP "github.com/Obilginozi/teamsphere-backend-go/internal/handler/http"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/cron"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/database"
	"github.com/Obilginozi/teamsphere-backend-go/internal/pkg/jwt"
	"github.com/Obilginozi/teamsphere-backend-go/internal/repository/postgresql"
	attendanceService "github.com/Obilginozi/teamsphere-backend-go/internal/service/attendance"
	authService "github.com/Obilginozi/teamsphere-backend-go/internal/service/auth"
	calendarService "github.com/Obilginozi/teamsphere-backend-go/internal/service/calendar"
	companyService "github.com/Obilginozi/teamsphere-backend-go/internal/service/company"
	employeeService "github.com/Obilginozi/teamsphere-backend-go/internal/service/employee"
	leaveService "github.com/Obilginozi/teamsphere-backend-go/internal/service/leave"
	payrollService "github.com/Obilginozi/teamsphere-backend-go/internal/service/payroll"
	ticketService "github.com/Obilginozi/teamsphere-backend-go/internal/service/ticket"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}
	if err := cfg.Validate(); err != nil {
		fmt.Println("Invalid config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	userRepo := postgresql.NewUserRepository(db)
	companyRepo := postgresql.NewCompanyRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)
	timeLogRepo := postgresql.NewTimeLogRepository(db)
	leaveTypeRepo := postgresql.NewLeaveTypeRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	eventRepo := postgresql.NewEventRepository(db)
	ticketRepo := postgresql.NewTicketRepository(db)
	payslipRepo := postgresql.NewPayslipRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewAuthService(db, userRepo, companyRepo, employeeRepo, leaveTypeRepo, jwtService, refreshTokenRepo)
	companySvc := companyService.NewCompanyService(db, companyRepo)
	employeeSvc := employeeService.NewEmployeeService(db, employeeRepo)
	attendanceSvc := attendanceService.NewTimeLogService(db, timeLogRepo, employeeRepo, companyRepo)
	leaveSvc := leaveService.NewLeaveService(db, leaveTypeRepo, leaveRequestRepo, employeeRepo, companyRepo)
	calendarSvc := calendarService.NewEventService(db, eventRepo, leaveRequestRepo, companyRepo)
	ticketSvc := ticketService.NewTicketService(db, ticketRepo)
	payrollSvc := payrollService.NewPayslipService(db, payslipRepo)

	handlers := appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(jwtService, authSvc),
		Company:    appHTTP.NewCompanyHandler(companySvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Leave:      appHTTP.NewLeaveHandler(leaveSvc),
		Calendar:   appHTTP.NewCalendarHandler(calendarSvc),
		Ticket:     appHTTP.NewTicketHandler(ticketSvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
	}

	scheduler := cron.NewScheduler()
	timeLogJobs := cron.NewTimeLogJobs(timeLogRepo, companyRepo, db)
	timeLogJobs.RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(cfg, jwtService, handlers)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
