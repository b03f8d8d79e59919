// Package routes declares the named routes of the web UI.
package routes

import (
	"net/http"

	"github.com/shashiranjanraj/ventas/app/controllers"
	"github.com/shashiranjanraj/ventas/app/models"
	"github.com/shashiranjanraj/ventas/pkg/ctx"
	"github.com/shashiranjanraj/ventas/pkg/metrics"
	"github.com/shashiranjanraj/ventas/pkg/middleware"
	"github.com/shashiranjanraj/ventas/pkg/rbac"
	"github.com/shashiranjanraj/ventas/pkg/router"
)

// Web bundles the controllers and guards the routes need.
type Web struct {
	Auth      *controllers.AuthController
	Dashboard *controllers.DashboardController
	Sales     *controllers.SalesController

	Users        middleware.UserResolver
	LoginLimiter *middleware.Limiter
}

// RegisterWeb mounts every route of the application on r.
func RegisterWeb(r *router.Router, w Web) {
	r.Get("/", "home", ctx.Wrap(w.Auth.Home))

	guest := r.Group("", middleware.Guest(w.Users, "/dashboard"))
	guest.Get("/login", "login", ctx.Wrap(w.Auth.ShowLogin))
	guest.Post("/login", "login.attempt", ctx.Wrap(w.Auth.Login),
		middleware.Throttle(w.LoginLimiter, ctx.Wrap(w.Auth.Throttled)))

	authed := r.Group("", middleware.Authenticate(w.Users, r.MustURL("login", nil)))
	authed.Post("/logout", "logout", ctx.Wrap(w.Auth.Logout))
	authed.Get("/dashboard", "dashboard", ctx.Wrap(w.Dashboard.Index))

	sales := authed.Group("/sales")
	sales.Get("/", "sales.index", ctx.Wrap(w.Sales.Index))

	admin := sales.Group("", rbac.HasRole(models.RoleAdmin))
	admin.Delete("/{sale}", "sales.destroy", ctx.Wrap(w.Sales.Destroy))
	admin.Get("/{sale}/pdf", "sales.generatePDF", ctx.Wrap(w.Sales.GeneratePDF))

	r.Handle(http.MethodGet, "/metrics", "metrics", metrics.Handler())
}
