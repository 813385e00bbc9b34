package httpserver

import (
	"context"
	"net/http"
	"strings"

	"offmarket_estates/internal/domain"
)

type ctxKey int

const profileKey ctxKey = iota

// Authenticate resolves the bearer token into a profile and stores it in
// the request context. Requests without a token pass through untouched;
// the Require* guards decide what is mandatory where.
func Authenticate(profiles domain.ProfileRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := bearerToken(r)
			if token == "" {
				next.ServeHTTP(w, r)
				return
			}
			p, err := profiles.GetProfileByToken(r.Context(), token)
			if err != nil {
				// unknown token behaves like no token
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), profileKey, p)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth gates the dashboard surface: anonymous callers get a 401
// with the login path the SPA redirects to.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := profileFrom(r); !ok {
			w.Header().Set("Location", "/login")
			writeProblem(w, http.StatusUnauthorized, "Authentication Required", "log in to access the dashboard")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireAdmin renders Access Denied inline for role mismatches rather
// than redirecting (admin views are reached from inside the dashboard).
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		p, ok := profileFrom(r)
		if !ok {
			w.Header().Set("Location", "/login")
			writeProblem(w, http.StatusUnauthorized, "Authentication Required", "log in to access the dashboard")
			return
		}
		if p.Role != domain.RoleAdmin {
			writeProblem(w, http.StatusForbidden, "Access Denied", "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func profileFrom(r *http.Request) (domain.Profile, bool) {
	p, ok := r.Context().Value(profileKey).(domain.Profile)
	return p, ok
}

func bearerToken(r *http.Request) string {
	h := r.Header.Get("Authorization")
	if strings.HasPrefix(h, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
	}
	return r.Header.Get("X-API-Token")
}
