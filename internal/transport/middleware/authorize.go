package middleware

import (
	"log/slog"
	"net/http"

	"github.com/frahmantamala/portal-management/internal/auth"
)

// RequireAdmin rejects requests from non-admin users before they reach
// the handler. Services still enforce their own rules.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := auth.UserFromContext(r.Context())
		if !ok || user == nil {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		if !user.IsAdmin() {
			slog.Warn("access denied: admin role required",
				"user_id", user.ID,
				"role", user.Role,
				"path", r.URL.Path)
			http.Error(w, "Forbidden: admin role required", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}
