// Package rbac provides role-based access control middleware.
package rbac

import (
	"net/http"

	"github.com/shashiranjanraj/ventas/pkg/auth"
	"github.com/shashiranjanraj/ventas/pkg/logger"
	"github.com/shashiranjanraj/ventas/pkg/response"
)

// HasRole returns middleware that allows access only to users with one of
// the given roles. The Authenticate middleware must run first.
func HasRole(roles ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u := auth.UserFromCtx(r.Context())
			if !auth.HasRole(u, roles...) {
				log := logger.WithCtx(r.Context())
				if u != nil {
					log = log.With("user_id", u.AuthID(), "role", u.AuthRole())
				}
				log.Warn("rbac: access denied", "path", r.URL.Path, "required", roles)
				response.Forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
