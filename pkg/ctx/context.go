// Package ctx provides a request context for controllers.
//
// Instead of accepting (http.ResponseWriter, *http.Request), a controller
// receives a single *Context with helper methods for everything:
//
//	func (s *SalesController) Destroy(c *ctx.Context) {
//	    id, ok := c.ParamUint("sale")
//	    if !ok {
//	        c.NotFound()
//	        return
//	    }
//	    ...
//	    c.Session().Flash("success", "Venta eliminada con éxito.")
//	    c.Redirect(s.urls.MustURL("sales.index", nil))
//	}
//
//	// Register with ctx.Wrap:
//	router.Delete("/sales/{sale}", "sales.destroy", ctx.Wrap(sales.Destroy))
package ctx

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/shashiranjanraj/ventas/pkg/auth"
	"github.com/shashiranjanraj/ventas/pkg/bind"
	"github.com/shashiranjanraj/ventas/pkg/middleware"
	"github.com/shashiranjanraj/ventas/pkg/response"
	"github.com/shashiranjanraj/ventas/pkg/session"
)

// HandlerFunc is the context-aware handler signature.
type HandlerFunc func(c *Context)

// Wrap converts a HandlerFunc to a standard http.HandlerFunc so it can be
// passed to any router method.
func Wrap(h HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c := acquire(w, r)
		defer release(c)
		h(c)
	}
}

// ─── Context ──────────────────────────────────────────────────────────────────

// Context wraps a request/response pair and provides a rich helper API.
type Context struct {
	W      http.ResponseWriter
	R      *http.Request
	mu     sync.RWMutex
	store  map[string]any
	status int // written status code (0 = not written yet)
}

// pool recycles Context objects to reduce GC pressure.
var pool = sync.Pool{
	New: func() any { return &Context{store: make(map[string]any)} },
}

func acquire(w http.ResponseWriter, r *http.Request) *Context {
	c := pool.Get().(*Context)
	c.W = w
	c.R = r
	c.status = 0
	for k := range c.store {
		delete(c.store, k)
	}
	return c
}

func release(c *Context) {
	c.W = nil
	c.R = nil
	pool.Put(c)
}

// ─── Request helpers ──────────────────────────────────────────────────────────

// Param returns a URL path parameter (e.g. "/sales/{sale}" → c.Param("sale")).
func (c *Context) Param(key string) string {
	return chi.URLParam(c.R, key)
}

// ParamUint parses a numeric path parameter. ok is false for anything that
// is not a positive integer.
func (c *Context) ParamUint(key string) (uint, bool) {
	n, err := strconv.ParseUint(c.Param(key), 10, 64)
	if err != nil || n == 0 {
		return 0, false
	}
	return uint(n), true
}

// PostForm returns a trimmed form field from the request body.
func (c *Context) PostForm(key string) string {
	return strings.TrimSpace(c.R.PostFormValue(key))
}

// PostFormBool reports whether a checkbox-style field is on.
func (c *Context) PostFormBool(key string) bool {
	switch strings.ToLower(c.PostForm(key)) {
	case "1", "on", "true", "yes":
		return true
	}
	return false
}

// Header returns the value of a request header.
func (c *Context) Header(key string) string {
	return c.R.Header.Get(key)
}

// Path returns the request URL path.
func (c *Context) Path() string { return c.R.URL.Path }

// ClientIP returns the real client IP, respecting X-Forwarded-For.
func (c *Context) ClientIP() string { return middleware.ClientIP(c.R) }

// Context returns the underlying request context.
func (c *Context) Context() context.Context { return c.R.Context() }

// Session returns the request's session.
func (c *Context) Session() *session.Session { return session.FromCtx(c.R) }

// User returns the signed-in user placed by the Authenticate middleware.
func (c *Context) User() auth.Authenticatable { return auth.UserFromCtx(c.R.Context()) }

// ─── Per-request store ────────────────────────────────────────────────────────

// Set stores a value in the per-request key-value store.
func (c *Context) Set(key string, val any) {
	c.mu.Lock()
	c.store[key] = val
	c.mu.Unlock()
}

// Get retrieves a value from the per-request store.
func (c *Context) Get(key string) (any, bool) {
	c.mu.RLock()
	v, ok := c.store[key]
	c.mu.RUnlock()
	return v, ok
}

// GetString returns a string value from the store, or "" if absent/wrong type.
func (c *Context) GetString(key string) string {
	v, _ := c.Get(key)
	s, _ := v.(string)
	return s
}

// ─── Binding ──────────────────────────────────────────────────────────────────

// BindForm decodes the posted form into dest and validates it.
func (c *Context) BindForm(dest any) (map[string]string, error) {
	return bind.Form(c.R, dest)
}

// ─── Response helpers ─────────────────────────────────────────────────────────

// SetHeader sets a response header.
func (c *Context) SetHeader(key, value string) {
	c.W.Header().Set(key, value)
}

// Data writes body with the given content type.
func (c *Context) Data(code int, contentType string, body []byte) {
	c.W.Header().Set("Content-Type", contentType)
	c.W.WriteHeader(code)
	c.status = code
	_, _ = c.W.Write(body)
}

// HTML writes an already rendered page.
func (c *Context) HTML(code int, body []byte) {
	c.Data(code, "text/html; charset=utf-8", body)
}

// Redirect sends a 302 to url.
func (c *Context) Redirect(url string) {
	c.status = http.StatusFound
	http.Redirect(c.W, c.R, url, http.StatusFound)
}

// Error renders the error page with the given status and message.
func (c *Context) Error(code int, message string) {
	c.status = code
	response.Error(c.W, code, message)
}

// Forbidden sends a 403 page.
func (c *Context) Forbidden() {
	c.status = http.StatusForbidden
	response.Forbidden(c.W)
}

// NotFound sends a 404 page.
func (c *Context) NotFound() {
	c.status = http.StatusNotFound
	response.NotFound(c.W)
}

// InternalError sends a 500 page.
func (c *Context) InternalError() {
	c.status = http.StatusInternalServerError
	response.InternalError(c.W)
}

// WrittenStatus returns the HTTP status code that was written to the response,
// or 0 if no response has been written yet.
func (c *Context) WrittenStatus() int { return c.status }
