package middleware

import (
	"crypto/sha256"
	"net/http"

	"github.com/gorilla/csrf"

	"github.com/shashiranjanraj/ventas/pkg/logger"
	"github.com/shashiranjanraj/ventas/pkg/response"
)

// CSRFFieldName is the hidden form field carrying the token.
const CSRFFieldName = "_token"

// CSRF protects unsafe methods with gorilla/csrf. The 32-byte auth key is
// derived from appKey. When enabled is false the handler is returned as is.
func CSRF(appKey string, secure, enabled bool) func(http.Handler) http.Handler {
	if !enabled {
		return func(next http.Handler) http.Handler { return next }
	}

	key := sha256.Sum256([]byte("csrf:" + appKey))
	protect := csrf.Protect(key[:],
		csrf.FieldName(CSRFFieldName),
		csrf.CookieName("ventas_csrf"),
		csrf.Path("/"),
		csrf.Secure(secure),
		csrf.SameSite(csrf.SameSiteLaxMode),
		csrf.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger.WithCtx(r.Context()).Warn("csrf: rejected", "reason", csrf.FailureReason(r), "path", r.URL.Path)
			response.PageExpired(w)
		})),
	)

	return func(next http.Handler) http.Handler {
		h := protect(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.TLS == nil && !secure {
				r = csrf.PlaintextHTTPRequest(r)
			}
			h.ServeHTTP(w, r)
		})
	}
}
