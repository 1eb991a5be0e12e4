package middleware

import (
	"log/slog"
	"net/http"

	"github.com/mjdelrosario/bpo-portal/internal/auth"
)

// RequireModulePermission guards a route with the resolved permission
// map: the authenticated user must hold the named action on the module.
// Absence of permission is a 403, never an error.
func RequireModulePermission(moduleName, action string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := auth.UserFromContext(r.Context())
			if !ok || user == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}

			if !user.Can(moduleName, action) {
				slog.Warn("access denied",
					"user_id", user.ID,
					"module", moduleName,
					"action", action)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
