package main

import (
	"fmt"
	"net/http"

	"github.com/fieldworks/workforce-backend-go/internal/config"
	appHTTP "github.com/fieldworks/workforce-backend-go/internal/handler/http"
	"github.com/fieldworks/workforce-backend-go/internal/pkg/database"
	"github.com/fieldworks/workforce-backend-go/internal/pkg/jwt"
	"github.com/fieldworks/workforce-backend-go/internal/repository/postgresql"
	authService "github.com/fieldworks/workforce-backend-go/internal/service/auth"
	dashboardService "github.com/fieldworks/workforce-backend-go/internal/service/dashboard"
	invoiceService "github.com/fieldworks/workforce-backend-go/internal/service/invoice"
	materialService "github.com/fieldworks/workforce-backend-go/internal/service/material"
	timesheetService "github.com/fieldworks/workforce-backend-go/internal/service/timesheet"
	toolService "github.com/fieldworks/workforce-backend-go/internal/service/tool"
	userService "github.com/fieldworks/workforce-backend-go/internal/service/user"
	vacationService "github.com/fieldworks/workforce-backend-go/internal/service/vacation"
	vehicleService "github.com/fieldworks/workforce-backend-go/internal/service/vehicle"
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
	defer db.Close()

	userRepo := postgresql.NewUserRepository(db)
	jwtRepo := postgresql.NewJWTRepository(db)
	timesheetRepo := postgresql.NewTimesheetRepository(db)
	vacationRepo := postgresql.NewVacationRepository(db)
	invoiceRepo := postgresql.NewInvoiceRepository(db)
	materialRepo := postgresql.NewMaterialRepository(db)
	toolRepo := postgresql.NewToolRepository(db)
	vehicleRepo := postgresql.NewVehicleRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)

	authSvc := authService.NewAuthService(db, userRepo, jwtService, jwtRepo)
	userSvc := userService.NewUserService(userRepo)
	timesheetSvc := timesheetService.NewRecordService(timesheetRepo)
	vacationSvc := vacationService.NewRequestService(db, vacationRepo, timesheetRepo)
	invoiceSvc := invoiceService.NewInvoiceService(invoiceRepo)
	materialSvc := materialService.NewRequestService(materialRepo)
	toolSvc := toolService.NewToolService(toolRepo, userRepo)
	vehicleSvc := vehicleService.NewVehicleService(db, vehicleRepo)
	dashboardSvc := dashboardService.NewDashboardService(timesheetSvc, vacationRepo, materialRepo, toolRepo)

	handlers := appHTTP.Handlers{
		Auth:      appHTTP.NewAuthHandler(jwtService, authSvc),
		User:      appHTTP.NewUserHandler(userSvc),
		Timesheet: appHTTP.NewTimesheetHandler(timesheetSvc),
		Vacation:  appHTTP.NewVacationHandler(vacationSvc),
		Invoice:   appHTTP.NewInvoiceHandler(invoiceSvc),
		Material:  appHTTP.NewMaterialHandler(materialSvc),
		Tool:      appHTTP.NewToolHandler(toolSvc),
		Vehicle:   appHTTP.NewVehicleHandler(vehicleSvc),
		Dashboard: appHTTP.NewDashboardHandler(dashboardSvc),
	}

	router := appHTTP.NewRouter(cfg, jwtService, handlers)

	addr := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Println("Server running on port", cfg.App.Port)
	if err := http.ListenAndServe(addr, router); err != nil {
		fmt.Println("Server error:", err)
	}
}
