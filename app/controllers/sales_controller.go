package controllers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shashiranjanraj/ventas/app/services"
	"github.com/shashiranjanraj/ventas/pkg/ctx"
)

const msgSaleDeleted = "Venta eliminada con éxito."

type SalesController struct {
	*Base
	sales *services.SaleService
}

func NewSalesController(base *Base, sales *services.SaleService) *SalesController {
	return &SalesController{Base: base, sales: sales}
}

// Index lists every sale.
func (s *SalesController) Index(c *ctx.Context) {
	listing, err := s.sales.List(c.Context(), c.User())
	if err != nil {
		s.fail(c, "sales: list", err)
		return
	}

	p := s.page(c, "Administrar Ventas")
	p.IsAdmin = listing.IsAdmin
	p.Data = listing
	s.render(c, http.StatusOK, "sales/index", p)
}

// Destroy deletes one sale and returns to the list.
func (s *SalesController) Destroy(c *ctx.Context) {
	id, ok := c.ParamUint("sale")
	if !ok {
		c.NotFound()
		return
	}

	err := s.sales.Delete(c.Context(), c.User(), id)
	switch {
	case errors.Is(err, services.ErrForbidden):
		c.Forbidden()
		return
	case err != nil:
		s.fail(c, "sales: delete", err)
		return
	}

	c.Session().Flash("success", msgSaleDeleted)
	s.redirectTo(c, "sales.index", nil)
}

// GeneratePDF streams the receipt of one sale.
func (s *SalesController) GeneratePDF(c *ctx.Context) {
	id, ok := c.ParamUint("sale")
	if !ok {
		c.NotFound()
		return
	}

	receipt, err := s.sales.Receipt(c.Context(), c.User(), id)
	switch {
	case errors.Is(err, services.ErrSaleNotFound):
		c.NotFound()
		return
	case errors.Is(err, services.ErrForbidden):
		c.Forbidden()
		return
	case err != nil:
		s.fail(c, "sales: receipt", err)
		return
	}

	c.SetHeader("Content-Disposition", fmt.Sprintf("inline; filename=%q", receipt.Filename))
	c.SetHeader("Cache-Control", "private, no-store")
	c.Data(http.StatusOK, "application/pdf", receipt.Content)
}
