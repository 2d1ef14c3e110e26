package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/mari/gift-list-website/internal/service"
	"github.com/sirupsen/logrus"
)

type contextKey string

const sessionKey contextKey = "session"

// Auth resolves the bearer token into a session and rejects requests without
// one. Resolution happens on every request; a logout between requests means
// the next request simply fails here.
func Auth(authService *service.AuthService, log *logrus.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w)
				return
			}

			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				unauthorized(w)
				return
			}

			session, err := authService.ResolveSession(r.Context(), parts[1])
			if err != nil {
				log.WithError(err).Debug("session resolution failed")
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), sessionKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetSession returns the resolved session for the request, if any.
func GetSession(ctx context.Context) (*service.Session, bool) {
	session, ok := ctx.Value(sessionKey).(*service.Session)
	return session, ok
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	w.Write([]byte(`{"error":"not authenticated","redirect":"/login"}`))
}
