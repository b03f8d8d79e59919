// Package views renders the server-side HTML pages from embedded
// html/template files.
package views

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"time"

	"github.com/shashiranjanraj/ventas/app/models"
)

//go:embed templates
var files embed.FS

// URLGenerator resolves named routes; *router.Router implements it.
type URLGenerator interface {
	URL(name string, params map[string]string) (string, error)
}

// Page is the data every template receives.
type Page struct {
	Title   string
	AppName string
	User    *models.User
	IsAdmin bool
	// CSRF is the hidden token input, empty when CSRF is disabled.
	CSRF   template.HTML
	Flash  map[string]string
	Errors map[string]string
	Old    map[string]string
	Data   any
}

// page name → layout
var pages = map[string]string{
	"auth/login":  "guest",
	"dashboard":   "app",
	"sales/index": "app",
}

type Renderer struct {
	templates map[string]*template.Template
}

// New parses every page against its layout.
func New(urls URLGenerator) (*Renderer, error) {
	funcs := template.FuncMap{
		"route": func(name string, pairs ...any) (string, error) {
			if len(pairs)%2 != 0 {
				return "", fmt.Errorf("views: route %q: odd parameter list", name)
			}
			params := make(map[string]string, len(pairs)/2)
			for i := 0; i < len(pairs); i += 2 {
				params[fmt.Sprint(pairs[i])] = fmt.Sprint(pairs[i+1])
			}
			return urls.URL(name, params)
		},
		"money": func(v float64) string { return fmt.Sprintf("%.2f", v) },
		"date": func(t time.Time) string {
			if t.IsZero() {
				return ""
			}
			return t.Format("02/01/2006 15:04")
		},
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(pages))}
	for name, layout := range pages {
		tpl, err := template.New(layout+".html").Funcs(funcs).ParseFS(files,
			"templates/layouts/"+layout+".html",
			"templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("views: parse %s: %w", name, err)
		}
		r.templates[name] = tpl
	}
	return r, nil
}

// Render executes page name into a buffer so a failing template never
// leaves a half-written response.
func (r *Renderer) Render(name string, p Page) ([]byte, error) {
	tpl, ok := r.templates[name]
	if !ok {
		return nil, fmt.Errorf("views: unknown page %q", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, p); err != nil {
		return nil, fmt.Errorf("views: render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}
