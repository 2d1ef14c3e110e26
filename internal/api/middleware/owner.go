package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
)

// OwnerGuard gates the admin routes. It runs after Auth and compares the
// {username} URL parameter with the authenticated user's own username:
// a mismatch redirects to the same path under the actual owner's username,
// so editing the URL never reaches another user's admin page. The decision
// is evaluated on every request and never cached.
func OwnerGuard(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := GetSession(r.Context())
		if !ok {
			unauthorized(w)
			return
		}

		if session.Profile == nil {
			// Authenticated but the profile record is missing; nothing
			// owner-scoped can be resolved.
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			w.Write([]byte(`{"error":"profile unavailable, try again"}`))
			return
		}

		urlUsername := chi.URLParam(r, "username")
		if urlUsername != session.Profile.Username {
			corrected := strings.Replace(
				r.URL.Path,
				"/admin/"+urlUsername,
				"/admin/"+session.Profile.Username,
				1,
			)
			http.Redirect(w, r, corrected, http.StatusTemporaryRedirect)
			return
		}

		next.ServeHTTP(w, r)
	})
}
