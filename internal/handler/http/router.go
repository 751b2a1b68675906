package http

import (
	"log/slog"
	"os"

	"github.com/fieldworks/workforce-backend-go/internal/config"
	"github.com/fieldworks/workforce-backend-go/internal/handler/http/middleware"
	"github.com/fieldworks/workforce-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

type Handlers struct {
	Auth      AuthHandler
	User      UserHandler
	Timesheet TimesheetHandler
	Vacation  VacationHandler
	Invoice   InvoiceHandler
	Material  MaterialHandler
	Tool      ToolHandler
	Vehicle   VehicleHandler
	Dashboard DashboardHandler
}

func NewRouter(cfg *config.Config, jwtService jwt.Service, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "workforce-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.App.FrontendURL},
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

			// Admin only
			r.Route("/users", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Get("/", h.User.List)
				r.Get("/{id}", h.User.Get)
			})

			r.Route("/timesheets", func(r chi.Router) {
				r.Post("/", h.Timesheet.Create)
				r.Get("/my", h.Timesheet.MyRecords)
				r.Get("/statistics", h.Timesheet.Statistics)
				r.Get("/{id}", h.Timesheet.Get)
				r.Put("/{id}", h.Timesheet.Update)
				r.Delete("/{id}", h.Timesheet.Delete)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Timesheet.List)
				})
			})

			r.Route("/vacations", func(r chi.Router) {
				r.Post("/", h.Vacation.Submit)
				r.Get("/my", h.Vacation.MyRequests)
				r.Get("/{id}", h.Vacation.Get)
				r.Post("/{id}/cancel", h.Vacation.Cancel)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Vacation.List)
					r.Post("/{id}/approve", h.Vacation.Approve)
					r.Post("/{id}/reject", h.Vacation.Reject)
				})
			})

			// Admin only
			r.Route("/invoices", func(r chi.Router) {
				r.Use(middleware.AdminOnly)
				r.Post("/", h.Invoice.Create)
				r.Get("/", h.Invoice.List)
				r.Get("/{id}", h.Invoice.Get)
				r.Put("/{id}", h.Invoice.Update)
				r.Delete("/{id}", h.Invoice.Delete)
				r.Post("/{id}/send", h.Invoice.MarkSent)
				r.Post("/{id}/pay", h.Invoice.MarkPaid)
			})

			r.Route("/materials", func(r chi.Router) {
				r.Post("/", h.Material.Submit)
				r.Get("/my", h.Material.MyRequests)
				r.Get("/{id}", h.Material.Get)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", h.Material.List)
					r.Post("/{id}/approve", h.Material.Approve)
					r.Post("/{id}/reject", h.Material.Reject)
					r.Post("/{id}/deliver", h.Material.MarkDelivered)
				})
			})

			r.Route("/tools", func(r chi.Router) {
				r.Get("/", h.Tool.List)
				r.Get("/{id}", h.Tool.Get)
				r.Post("/{id}/return", h.Tool.Return)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Tool.Create)
					r.Put("/{id}", h.Tool.Update)
					r.Delete("/{id}", h.Tool.Delete)
					r.Post("/{id}/assign", h.Tool.Assign)
				})
			})

			r.Route("/vehicles", func(r chi.Router) {
				r.Get("/", h.Vehicle.List)
				r.Get("/{id}", h.Vehicle.Get)
				r.Post("/{id}/logs", h.Vehicle.LogTrip)
				r.Get("/{id}/logs", h.Vehicle.ListTripLogs)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", h.Vehicle.Create)
					r.Put("/{id}", h.Vehicle.Update)
				})
			})

			r.Get("/dashboard", h.Dashboard.GetDashboard)
		})
	})

	return r
}
