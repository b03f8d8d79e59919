package ctx_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	appctx "github.com/shashiranjanraj/ventas/pkg/ctx"
)

func TestParamUint(t *testing.T) {
	r := chi.NewRouter()
	var (
		got uint
		ok  bool
	)
	r.Get("/sales/{sale}", appctx.Wrap(func(c *appctx.Context) {
		got, ok = c.ParamUint("sale")
	}))

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/sales/42", nil))
	if !ok || got != 42 {
		t.Errorf("expected 42, got %d (ok=%v)", got, ok)
	}

	for _, bad := range []string{"abc", "0", "-1", "1.5"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/sales/"+bad, nil))
		if ok {
			t.Errorf("expected %q to be rejected", bad)
		}
	}
}

func TestPostForm(t *testing.T) {
	form := url.Values{"email": {"  admin@example.com "}, "remember": {"on"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	appctx.Wrap(func(c *appctx.Context) {
		if got := c.PostForm("email"); got != "admin@example.com" {
			t.Errorf("unexpected email %q", got)
		}
		if !c.PostFormBool("remember") {
			t.Error("expected remember to be on")
		}
		if c.PostFormBool("missing") {
			t.Error("expected missing checkbox to be off")
		}
	})(httptest.NewRecorder(), req)
}

func TestRedirect(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		c.Redirect("/sales")
	})(rec, httptest.NewRequest(http.MethodPost, "/sales/1", nil))

	if rec.Code != http.StatusFound {
		t.Errorf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "/sales" {
		t.Errorf("unexpected location %q", loc)
	}
}

func TestDataAndStatus(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) {
		c.Data(http.StatusOK, "application/pdf", []byte("%PDF-1.3"))
		if c.WrittenStatus() != http.StatusOK {
			t.Errorf("expected written status 200, got %d", c.WrittenStatus())
		}
	})(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if ct := rec.Header().Get("Content-Type"); ct != "application/pdf" {
		t.Errorf("unexpected content type %q", ct)
	}
}

func TestNotFoundRendersPage(t *testing.T) {
	rec := httptest.NewRecorder()
	appctx.Wrap(func(c *appctx.Context) { c.NotFound() })(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if rec.Code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "404") {
		t.Errorf("unexpected body: %s", rec.Body.String())
	}
}

func TestSetAndGet(t *testing.T) {
	appctx.Wrap(func(c *appctx.Context) {
		c.Set("title", "Administrar Ventas")
		if got := c.GetString("title"); got != "Administrar Ventas" {
			t.Errorf("unexpected value %q", got)
		}
	})(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}
