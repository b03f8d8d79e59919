// Package controllers holds the HTTP handlers of the web UI.
package controllers

import (
	"github.com/gorilla/csrf"

	"github.com/shashiranjanraj/ventas/app/models"
	"github.com/shashiranjanraj/ventas/app/views"
	"github.com/shashiranjanraj/ventas/pkg/ctx"
	"github.com/shashiranjanraj/ventas/pkg/logger"
)

// URLs resolves named routes; *router.Router implements it.
type URLs interface {
	MustURL(name string, params map[string]string) string
}

// Base carries what every controller needs to render pages.
type Base struct {
	Views   *views.Renderer
	URLs    URLs
	AppName string
}

// page prepares the shared layout data for the current request. Flash
// messages are consumed here.
func (b *Base) page(c *ctx.Context, title string) views.Page {
	p := views.Page{
		Title:   title,
		AppName: b.AppName,
		CSRF:    csrf.TemplateField(c.R),
		Flash:   map[string]string{},
	}

	if u, ok := c.User().(*models.User); ok && u != nil {
		p.User = u
		p.IsAdmin = u.IsAdmin()
	}

	sess := c.Session()
	for _, key := range []string{"success", "status"} {
		if msg := sess.FlashString(key); msg != "" {
			p.Flash[key] = msg
		}
	}
	return p
}

func (b *Base) render(c *ctx.Context, status int, name string, p views.Page) {
	body, err := b.Views.Render(name, p)
	if err != nil {
		logger.WithCtx(c.Context()).Error("render failed", "page", name, "error", err)
		c.InternalError()
		return
	}
	c.HTML(status, body)
}

func (b *Base) redirectTo(c *ctx.Context, route string, params map[string]string) {
	c.Redirect(b.URLs.MustURL(route, params))
}

// fail logs err and renders the 500 page.
func (b *Base) fail(c *ctx.Context, msg string, err error) {
	logger.WithCtx(c.Context()).Error(msg, "error", err, "path", c.Path())
	c.InternalError()
}
