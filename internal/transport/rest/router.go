package rest

import (
	"database/sql"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/mjdelrosario/bpo-portal/internal/auth"
	"github.com/mjdelrosario/bpo-portal/internal/dispute"
	"github.com/mjdelrosario/bpo-portal/internal/dtr"
	"github.com/mjdelrosario/bpo-portal/internal/employee"
	"github.com/mjdelrosario/bpo-portal/internal/irnte"
	"github.com/mjdelrosario/bpo-portal/internal/rbac"
	"github.com/mjdelrosario/bpo-portal/internal/request"
	"github.com/mjdelrosario/bpo-portal/internal/schedule"
	"github.com/mjdelrosario/bpo-portal/internal/transport/middleware"
	"github.com/mjdelrosario/bpo-portal/internal/transport/swagger"
	"github.com/mjdelrosario/bpo-portal/internal/user"
)

// Handlers collects every feature handler the router mounts.
type Handlers struct {
	Auth     *auth.Handler
	RBAC     *rbac.Handler
	User     *user.Handler
	Employee *employee.Handler
	Dispute  *dispute.Handler
	Request  *request.Handler
	IRNTE    *irnte.Handler
	DTR      *dtr.Handler
	Schedule *schedule.Handler
}

func RegisterAllRoutes(router *chi.Mux, db *sql.DB, h Handlers, allowedOrigins string, logger *slog.Logger) {
	healthHandler := NewHealthHandler(db)

	// Apply global middleware
	router.Use(middleware.CORS(allowedOrigins))
	router.Use(middleware.RequestID)
	router.Use(middleware.LoggingMiddleware(logger))
	router.Use(middleware.RecoveryMiddleware(logger))

	// Serve OpenAPI spec at root (outside API prefix)
	router.Get("/openapi.yml", func(w http.ResponseWriter, r *http.Request) {
		http.ServeFile(w, r, "./api/openapi.yml")
	})
	// Swagger UI route at root
	router.Handle("/swagger/*", swagger.Handler())

	router.Route("/api/v1", func(r chi.Router) {
		// Health check routes
		r.Get("/health", healthHandler.healthCheckHandler)
		r.Get("/ping", healthHandler.pingHandler)

		// Auth routes
		r.Route("/auth", func(sr chi.Router) {
			sr.Post("/login", h.Auth.Login)
			sr.Post("/refresh", h.Auth.RefreshToken)
			sr.Post("/logout", h.Auth.Logout)
		})

		// Protected routes that require authentication
		r.Group(func(pr chi.Router) {
			pr.Use(h.Auth.AuthMiddleware)

			// Employee directory
			pr.Route("/employees", func(er chi.Router) {
				er.Group(func(vr chi.Router) {
					vr.Use(middleware.RequireModulePermission("employee_directory", rbac.ActionView))
					vr.Get("/", h.Employee.Search)
					vr.Get("/facets", h.Employee.Facets)
					vr.Get("/{id}", h.Employee.GetProfile)
				})
				er.Group(func(mr chi.Router) {
					mr.Use(middleware.RequireModulePermission("employee_directory", rbac.ActionEdit))
					mr.Patch("/{id}", h.Employee.UpdateProfile)
				})
			})

			// Pay disputes
			pr.Route("/disputes", func(dr chi.Router) {
				dr.Group(func(cr chi.Router) {
					cr.Use(middleware.RequireModulePermission("pay_disputes", rbac.ActionCreate))
					cr.Post("/", h.Dispute.CreateDispute)
				})
				dr.Group(func(vr chi.Router) {
					vr.Use(middleware.RequireModulePermission("pay_disputes", rbac.ActionView))
					vr.Get("/", h.Dispute.ListDisputes)
					vr.Get("/{id}", h.Dispute.GetDispute)
					vr.Get("/{id}/comments", h.Dispute.Comments)
					vr.Post("/{id}/comments", h.Dispute.AddComment)
				})
				dr.Group(func(mr chi.Router) {
					mr.Use(middleware.RequireModulePermission("pay_disputes", rbac.ActionEdit))
					mr.Patch("/{id}/status", h.Dispute.UpdateStatus)
					mr.Patch("/{id}/assign", h.Dispute.AssignDispute)
					mr.Patch("/{id}/resolve", h.Dispute.ResolveDispute)
				})
			})

			// Employee requests
			pr.Route("/requests", func(qr chi.Router) {
				qr.Group(func(cr chi.Router) {
					cr.Use(middleware.RequireModulePermission("requests", rbac.ActionCreate))
					cr.Post("/", h.Request.CreateRequest)
				})
				qr.Group(func(vr chi.Router) {
					vr.Use(middleware.RequireModulePermission("requests", rbac.ActionView))
					vr.Get("/", h.Request.ListRequests)
					vr.Get("/{id}", h.Request.GetRequest)
				})
				// Withdrawal is the filer's own action.
				qr.Post("/{id}/cancel", h.Request.Cancel)
				qr.Group(func(mr chi.Router) {
					mr.Use(middleware.RequireModulePermission("requests", rbac.ActionEdit))
					mr.Patch("/{id}/status", h.Request.UpdateStatus)
				})
				qr.Group(func(dr chi.Router) {
					dr.Use(middleware.RequireModulePermission("requests", rbac.ActionDelete))
					dr.Delete("/{id}", h.Request.DeleteRequest)
				})
			})

			// IR/NTE logs
			pr.Route("/ir-nte", func(ir chi.Router) {
				ir.Group(func(cr chi.Router) {
					cr.Use(middleware.RequireModulePermission("ir_nte_logs", rbac.ActionCreate))
					cr.Post("/", h.IRNTE.CreateLog)
				})
				ir.Group(func(vr chi.Router) {
					vr.Use(middleware.RequireModulePermission("ir_nte_logs", rbac.ActionView))
					vr.Get("/", h.IRNTE.ListLogs)
					vr.Get("/{id}", h.IRNTE.GetLog)
				})
				// Acknowledgment is the subject employee's own action.
				ir.Post("/{id}/acknowledge", h.IRNTE.Acknowledge)
				ir.Group(func(mr chi.Router) {
					mr.Use(middleware.RequireModulePermission("ir_nte_logs", rbac.ActionEdit))
					mr.Patch("/{id}/status", h.IRNTE.UpdateStatus)
				})
			})

			// Daily time records
			pr.Route("/dtr", func(tr chi.Router) {
				tr.Group(func(cr chi.Router) {
					cr.Use(middleware.RequireModulePermission("dtr", rbac.ActionCreate))
					cr.Post("/clock-in", h.DTR.ClockIn)
					cr.Post("/clock-out", h.DTR.ClockOut)
					cr.Post("/break-in", h.DTR.BreakIn)
					cr.Post("/break-out", h.DTR.BreakOut)
				})
				tr.Group(func(vr chi.Router) {
					vr.Use(middleware.RequireModulePermission("dtr", rbac.ActionView))
					vr.Get("/", h.DTR.List)
					vr.Get("/today", h.DTR.Today)
				})
				tr.Group(func(mr chi.Router) {
					mr.Use(middleware.RequireModulePermission("dtr", rbac.ActionEdit))
					mr.Put("/manual", h.DTR.ManualEntry)
				})
			})

			// Shift schedules
			pr.Route("/schedule", func(sr chi.Router) {
				sr.Group(func(vr chi.Router) {
					vr.Use(middleware.RequireModulePermission("schedule", rbac.ActionView))
					vr.Get("/", h.Schedule.List)
				})
				sr.Group(func(mr chi.Router) {
					mr.Use(middleware.RequireModulePermission("schedule", rbac.ActionCreate))
					mr.Put("/", h.Schedule.UpsertShift)
					mr.Put("/bulk", h.Schedule.BulkUpsert)
				})
				sr.Group(func(mr chi.Router) {
					mr.Use(middleware.RequireModulePermission("schedule", rbac.ActionEdit))
					mr.Post("/publish", h.Schedule.Publish)
					mr.Delete("/{userID}/{date}", h.Schedule.DeleteShift)
				})
			})

			// User management; the /me routes are the caller's own and
			// bypass the module guard.
			pr.Route("/users", func(ur chi.Router) {
				ur.Get("/me", h.User.GetCurrentUser)
				ur.Get("/me/modules", h.RBAC.MyModules)
				ur.Post("/me/password", h.User.ChangePassword)

				ur.Group(func(vr chi.Router) {
					vr.Use(middleware.RequireModulePermission("user_management", rbac.ActionView))
					vr.Get("/", h.User.ListAccounts)
					vr.Get("/{id}", h.User.GetAccount)
				})
				ur.Group(func(cr chi.Router) {
					cr.Use(middleware.RequireModulePermission("user_management", rbac.ActionCreate))
					cr.Post("/", h.User.CreateUser)
				})
				ur.Group(func(mr chi.Router) {
					mr.Use(middleware.RequireModulePermission("user_management", rbac.ActionEdit))
					mr.Patch("/{id}/role", h.User.AssignRole)
					mr.Patch("/{id}/active", h.User.SetActive)
				})
			})

			// Role management and permission overrides
			pr.Route("/rbac", func(rr chi.Router) {
				rr.Group(func(vr chi.Router) {
					vr.Use(middleware.RequireModulePermission("role_management", rbac.ActionView))
					vr.Get("/roles", h.RBAC.ListRoles)
					vr.Get("/roles/{name}/permissions", h.RBAC.RoleMatrix)
					vr.Get("/users/{id}/check", h.RBAC.CheckUserPermission)
				})
				rr.Group(func(mr chi.Router) {
					mr.Use(middleware.RequireModulePermission("role_management", rbac.ActionEdit))
					mr.Put("/users/{id}/overrides/{module}", h.RBAC.GrantOverride)
					mr.Delete("/users/{id}/overrides/{module}", h.RBAC.RevokeOverride)
				})
			})

			// System settings
			pr.Route("/settings", func(sr chi.Router) {
				sr.Group(func(vr chi.Router) {
					vr.Use(middleware.RequireModulePermission("system_settings", rbac.ActionView))
					vr.Get("/modules", h.RBAC.ListModules)
				})
				sr.Group(func(mr chi.Router) {
					mr.Use(middleware.RequireModulePermission("system_settings", rbac.ActionEdit))
					mr.Patch("/modules/{name}", h.RBAC.SetModuleActive)
				})
			})
		})
	})
}
