package middleware

import (
	"net/http"

	"github.com/shashiranjanraj/ventas/pkg/auth"
)

// UserResolver resolves the signed-in user of a request; *auth.Guard
// implements it.
type UserResolver interface {
	User(r *http.Request) auth.Authenticatable
}

// Authenticate redirects guests to loginURL. For signed-in users the user is
// stored in the request context (auth.UserFromCtx).
func Authenticate(users UserResolver, loginURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := users.User(r)
			if u == nil {
				http.Redirect(w, r, loginURL, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r.WithContext(auth.WithUser(r.Context(), u)))
		})
	}
}

// Guest sends already signed-in users to dashboardURL.
func Guest(users UserResolver, dashboardURL string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if users.User(r) != nil {
				http.Redirect(w, r, dashboardURL, http.StatusFound)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
