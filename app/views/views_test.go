package views

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shashiranjanraj/ventas/app/models"
)

type fakeURLs map[string]string

func (f fakeURLs) URL(name string, params map[string]string) (string, error) {
	path := f[name]
	for k, v := range params {
		path = strings.ReplaceAll(path, "{"+k+"}", v)
	}
	return path, nil
}

var urls = fakeURLs{
	"dashboard":         "/dashboard",
	"logout":            "/logout",
	"login.attempt":     "/login",
	"sales.index":       "/sales",
	"sales.destroy":     "/sales/{sale}",
	"sales.generatePDF": "/sales/{sale}/pdf",
}

type salesData struct{ Sales []models.Sale }

func render(t *testing.T, name string, p Page) string {
	t.Helper()
	r, err := New(urls)
	require.NoError(t, err)
	out, err := r.Render(name, p)
	require.NoError(t, err)
	return string(out)
}

func TestSalesIndexForAdmin(t *testing.T) {
	admin := &models.User{ID: 1, Name: "Ana Torres", Role: models.RoleAdmin}
	html := render(t, "sales/index", Page{
		Title:   "Administrar Ventas",
		User:    admin,
		IsAdmin: true,
		Flash:   map[string]string{"success": "Venta eliminada con éxito."},
		Data: salesData{Sales: []models.Sale{
			{ID: 3, Seller: "Luis", Customer: "Carmen", Payment: "Efectivo", Total: 99.5, CreatedAt: time.Now()},
		}},
	})

	for _, want := range []string{
		"Administrar Ventas", `href="/sales"`, `id="sale-3"`, "Luis", "Carmen", "Efectivo", "99.50",
		"Generar PDF", `href="/sales/3/pdf"`, `action="/sales/3"`, `name="_method" value="DELETE"`, "Eliminar",
		"Ana Torres", "Cerrar Sesión", "Venta eliminada con éxito.",
	} {
		assert.Contains(t, html, want)
	}
	assert.NotContains(t, html, "No hay ventas registradas.")
}

func TestSalesIndexEmptyAndMember(t *testing.T) {
	html := render(t, "sales/index", Page{
		User: &models.User{ID: 2, Name: "Pablo", Role: models.RoleMember},
		Data: salesData{},
	})
	assert.Contains(t, html, "No hay ventas registradas.")
	assert.NotContains(t, html, "Eliminar")
	assert.NotContains(t, html, `href="/sales"`)
}

func TestLoginShowsErrorsAndOldInput(t *testing.T) {
	html := render(t, "auth/login", Page{
		Title:  "Iniciar Sesión",
		Errors: map[string]string{"email": "Estas credenciales no coinciden con nuestros registros."},
		Old:    map[string]string{"email": "ana@example.com"},
	})
	assert.Contains(t, html, `value="ana@example.com"`)
	assert.Contains(t, html, "Estas credenciales no coinciden con nuestros registros.")
	assert.Contains(t, html, "Recuérdame")
	assert.Contains(t, html, "Iniciar Sesión")
	assert.Contains(t, html, `autocomplete="current-password"`)
}

func TestUnknownPage(t *testing.T) {
	r, err := New(urls)
	require.NoError(t, err)
	_, err = r.Render("nope", Page{})
	assert.Error(t, err)
}
