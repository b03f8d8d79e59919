package controllers

import (
	"net/http"

	"github.com/shashiranjanraj/ventas/app/repositories"
	"github.com/shashiranjanraj/ventas/app/services"
	"github.com/shashiranjanraj/ventas/pkg/ctx"
	"github.com/shashiranjanraj/ventas/pkg/logger"
)

// DashboardData feeds dashboard.html. Summary is nil for members.
type DashboardData struct {
	Summary *repositories.SaleSummary
}

type DashboardController struct {
	*Base
	sales *services.SaleService
}

func NewDashboardController(base *Base, sales *services.SaleService) *DashboardController {
	return &DashboardController{Base: base, sales: sales}
}

func (d *DashboardController) Index(c *ctx.Context) {
	p := d.page(c, "Dashboard")

	data := DashboardData{}
	if p.IsAdmin {
		summary, err := d.sales.Summary(c.Context())
		if err != nil {
			logger.WithCtx(c.Context()).Warn("dashboard: summary unavailable", "error", err)
		} else {
			data.Summary = &summary
		}
	}
	p.Data = data

	d.render(c, http.StatusOK, "dashboard", p)
}
