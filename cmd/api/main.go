package main

import (
	"fmt"
	"net/http"

	"github.com/hoangson-hr/payday-backend-go/internal/config"
	appHTTP "github.com/hoangson-hr/payday-backend-go/internal/handler/http"
	"github.com/hoangson-hr/payday-backend-go/internal/pkg/database"
	"github.com/hoangson-hr/payday-backend-go/internal/pkg/jwt"
	"github.com/hoangson-hr/payday-backend-go/internal/repository/postgresql"
	attendanceService "github.com/hoangson-hr/payday-backend-go/internal/service/attendance"
	payrollService "github.com/hoangson-hr/payday-backend-go/internal/service/payroll"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}

	employeeRepo := postgresql.NewEmployeeRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	shiftConfigRepo := postgresql.NewShiftConfigRepository(db)
	payrollRepo := postgresql.NewPayrollRepository(db)
	policyRepo := postgresql.NewPolicyRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, shiftConfigRepo, employeeRepo)
	payrollSvc := payrollService.NewPayrollService(payrollRepo, policyRepo, employeeRepo, attendanceRepo, leaveRepo)

	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	payrollHandler := appHTTP.NewPayrollHandler(payrollSvc)

	router := appHTTP.NewRouter(cfg, JWTService, attendanceHandler, payrollHandler)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
