package rest

import (
	"database/sql"
	"log/slog"

	"github.com/go-chi/chi"

	"github.com/hrcore/employee-management/internal/auth"
	"github.com/hrcore/employee-management/internal/dashboard"
	"github.com/hrcore/employee-management/internal/department"
	"github.com/hrcore/employee-management/internal/employee"
	"github.com/hrcore/employee-management/internal/leave"
	"github.com/hrcore/employee-management/internal/transport/middleware"
)

// RegisterAllRoutes wires every handler into the router. Role guards follow
// the same shape everywhere: admins manage org structure, admins and managers
// decide leave, everyone authenticated can see their own data.
func RegisterAllRoutes(
	router *chi.Mux,
	db *sql.DB,
	authHandler *auth.Handler,
	employeeHandler *employee.Handler,
	departmentHandler *department.Handler,
	leaveHandler *leave.Handler,
	dashboardHandler *dashboard.Handler,
	logger *slog.Logger,
) {
	healthHandler := NewHealthHandler(db)

	router.Use(middleware.CORS)
	router.Use(middleware.RequestID)
	router.Use(middleware.RecoveryMiddleware(logger))
	router.Use(middleware.LoggingMiddleware(logger))

	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", authHandler.Login)
			sr.Post("/refresh", authHandler.RefreshToken)
			sr.Post("/logout", authHandler.Logout)
		})

		// Everything below requires an authenticated principal.
		r.Group(func(pr chi.Router) {
			pr.Use(authHandler.AuthMiddleware)

			pr.Get("/users/me", authHandler.Me)

			pr.Route("/employees", func(er chi.Router) {
				er.Get("/me", employeeHandler.Me)
				er.Get("/me/team", employeeHandler.Team)
				er.Get("/{id}/leaves", leaveHandler.MyLeaves)
				er.Get("/{id}/leave-balance", leaveHandler.Balance)

				er.Group(func(ar chi.Router) {
					ar.Use(auth.RequireRoles(employee.RoleAdmin))
					ar.Post("/", employeeHandler.Create)
					ar.Put("/{id}", employeeHandler.Update)
					ar.Delete("/{id}", employeeHandler.Deactivate)
					ar.Post("/{id}/leave-balance/grant", leaveHandler.Grant)
				})

				er.Group(func(mr chi.Router) {
					mr.Use(auth.RequireRoles(employee.RoleAdmin, employee.RoleManager))
					mr.Get("/", employeeHandler.List)
					mr.Get("/{id}", employeeHandler.Get)
				})
			})

			pr.Route("/departments", func(dr chi.Router) {
				dr.Get("/", departmentHandler.List)
				dr.Get("/{id}", departmentHandler.Get)

				dr.Group(func(ar chi.Router) {
					ar.Use(auth.RequireRoles(employee.RoleAdmin))
					ar.Post("/", departmentHandler.Create)
					ar.Put("/{id}", departmentHandler.Update)
					ar.Delete("/{id}", departmentHandler.Delete)
				})
			})

			pr.Route("/leaves", func(lr chi.Router) {
				lr.Post("/", leaveHandler.Apply)

				lr.Group(func(ar chi.Router) {
					ar.Use(auth.RequireRoles(employee.RoleAdmin))
					ar.Get("/pending", leaveHandler.PendingAll)
				})

				lr.Group(func(mr chi.Router) {
					mr.Use(auth.RequireRoles(employee.RoleAdmin, employee.RoleManager))
					mr.Get("/team/pending", leaveHandler.PendingForTeam)
					mr.Patch("/{id}/decision", leaveHandler.Decide)
				})
			})

			pr.Route("/dashboard", func(dr chi.Router) {
				dr.Get("/me", dashboardHandler.Employee)

				dr.Group(func(mr chi.Router) {
					mr.Use(auth.RequireRoles(employee.RoleAdmin, employee.RoleManager))
					mr.Get("/team", dashboardHandler.Manager)
				})

				dr.Group(func(ar chi.Router) {
					ar.Use(auth.RequireRoles(employee.RoleAdmin))
					ar.Get("/admin", dashboardHandler.Admin)
				})
			})
		})
	})
}
