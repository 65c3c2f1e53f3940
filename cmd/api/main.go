package main

import (
	"fmt"
	"net/http"

	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/config"
	appHTTP "github.com/bilalajmery/attendance-portal-v2-sub000/internal/handler/http"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/cron"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/database"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/pkg/jwt"
	"github.com/bilalajmery/attendance-portal-v2-sub000/internal/repository/postgresql"
	attendanceService "github.com/bilalajmery/attendance-portal-v2-sub000/internal/service/attendance"
	authService "github.com/bilalajmery/attendance-portal-v2-sub000/internal/service/auth"
	employeeService "github.com/bilalajmery/attendance-portal-v2-sub000/internal/service/employee"
	holidayService "github.com/bilalajmery/attendance-portal-v2-sub000/internal/service/holiday"
	payrollService "github.com/bilalajmery/attendance-portal-v2-sub000/internal/service/payroll"
	policyService "github.com/bilalajmery/attendance-portal-v2-sub000/internal/service/policy"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	paymentRepo := postgresql.NewPaymentRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	policySvc := policyService.NewPolicyService(policyRepo)
	authSvc := authService.NewAuthService(employeeRepo, jwtService)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, policySvc)
	holidaySvc := holidayService.NewHolidayService(holidayRepo, policySvc)
	payrollSvc := payrollService.NewPayrollService(attendanceRepo, holidayRepo, employeeRepo, paymentRepo, policySvc)

	scheduler := cron.NewScheduler()
	cron.NewHolidayJobs(holidaySvc, policySvc).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	router := appHTTP.NewRouter(jwtService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc),
		Holiday:    appHTTP.NewHolidayHandler(holidaySvc),
		Payroll:    appHTTP.NewPayrollHandler(payrollSvc),
		Employee:   appHTTP.NewEmployeeHandler(employeeSvc),
		Policy:     appHTTP.NewPolicyHandler(policySvc),
	})

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
