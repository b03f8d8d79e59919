package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ok(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }

func TestNamedRoutesAndURLs(t *testing.T) {
	r := New()
	r.Get("/", "home", ok)
	sales := r.Group("/sales")
	sales.Get("/", "sales.index", ok)
	sales.Delete("/{sale}", "sales.destroy", ok)
	sales.Get("/{sale}/pdf", "sales.generatePDF", ok)

	u, err := r.URL("sales.destroy", map[string]string{"sale": "12"})
	require.NoError(t, err)
	assert.Equal(t, "/sales/12", u)

	assert.Equal(t, "/sales/3/pdf", r.MustURL("sales.generatePDF", map[string]string{"sale": "3"}))

	_, err = r.URL("sales.destroy", nil)
	assert.Error(t, err)
	_, err = r.URL("nope", nil)
	assert.Error(t, err)
}

func TestGroupMiddlewareAndMethods(t *testing.T) {
	r := New()
	var hits int
	count := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			hits++
			next.ServeHTTP(w, req)
		})
	}
	g := r.Group("/admin", count)
	g.Delete("/items/{id}", "items.destroy", ok)

	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/admin/items/1", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, hits)

	rec = httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/admin/items/1", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestRoutesAreSorted(t *testing.T) {
	r := New()
	r.Post("/logout", "logout", ok)
	r.Get("/login", "login", ok)
	r.Post("/login", "login.attempt", ok)

	routes := r.Routes()
	require.Len(t, routes, 3)
	assert.Equal(t, RouteInfo{Method: http.MethodGet, Path: "/login", Name: "login"}, routes[0])
	assert.Equal(t, "login.attempt", routes[1].Name)
	assert.Equal(t, "/logout", routes[2].Path)
}
