package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shashiranjanraj/ventas/app/models"
	"github.com/shashiranjanraj/ventas/app/receipts"
	"github.com/shashiranjanraj/ventas/app/repositories"
	"github.com/shashiranjanraj/ventas/pkg/auth"
	"github.com/shashiranjanraj/ventas/pkg/cache"
	"github.com/shashiranjanraj/ventas/pkg/logger"
	"github.com/shashiranjanraj/ventas/pkg/metrics"
	"github.com/shashiranjanraj/ventas/pkg/orm"
	"github.com/shashiranjanraj/ventas/pkg/storage"
	"github.com/shashiranjanraj/ventas/pkg/workerpool"
)

// ErrSaleNotFound is returned when a sale id does not exist.
var ErrSaleNotFound = errors.New("services: sale not found")

// ErrForbidden is returned when the user lacks the admin role.
var ErrForbidden = errors.New("services: forbidden")

const summaryCacheKey = "ventas:sales:summary"

// SaleListing is what the sales index renders.
type SaleListing struct {
	Sales   []models.Sale
	IsAdmin bool
}

// Receipt is a rendered PDF ready to send.
type Receipt struct {
	Filename string
	Content  []byte
}

// SaleOptions tunes SaleService.
type SaleOptions struct {
	SummaryTTL time.Duration
	// Archive also writes each receipt to Disk.
	Archive bool
	Disk    storage.Disk
	// Archiver runs archive writes off the request path. When nil or full
	// the write happens inline.
	Archiver *workerpool.Pool
}

type SaleService struct {
	sales    *repositories.SaleRepository
	cache    cache.Store
	renderer *receipts.Renderer
	opts     SaleOptions
}

func NewSaleService(sales *repositories.SaleRepository, store cache.Store, renderer *receipts.Renderer, opts SaleOptions) *SaleService {
	if opts.SummaryTTL <= 0 {
		opts.SummaryTTL = time.Minute
	}
	return &SaleService{sales: sales, cache: store, renderer: renderer, opts: opts}
}

func isAdmin(u auth.Authenticatable) bool {
	return auth.HasRole(u, models.RoleAdmin)
}

// List returns every sale, oldest id first, and whether u may manage them.
func (s *SaleService) List(ctx context.Context, u auth.Authenticatable) (SaleListing, error) {
	sales, err := s.sales.All(ctx)
	if err != nil {
		return SaleListing{}, fmt.Errorf("services: list sales: %w", err)
	}
	return SaleListing{Sales: sales, IsAdmin: isAdmin(u)}, nil
}

// Delete removes sale id. Deleting a missing id is not an error.
func (s *SaleService) Delete(ctx context.Context, u auth.Authenticatable, id uint) error {
	if !isAdmin(u) {
		return ErrForbidden
	}

	removed, err := s.sales.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("services: delete sale %d: %w", id, err)
	}

	log := logger.WithCtx(ctx).With("sale_id", id, "user_id", u.AuthID())
	if !removed {
		metrics.SalesDeleted.WithLabelValues("missing").Inc()
		log.Info("sale already absent")
		return nil
	}

	metrics.SalesDeleted.WithLabelValues("deleted").Inc()
	log.Info("sale deleted")
	if err := cache.Forget(ctx, s.cache, summaryCacheKey); err != nil {
		log.Warn("summary cache not cleared", "error", err)
	}
	return nil
}

// Receipt renders the PDF for sale id, archiving it when enabled.
func (s *SaleService) Receipt(ctx context.Context, u auth.Authenticatable, id uint) (Receipt, error) {
	if !isAdmin(u) {
		return Receipt{}, ErrForbidden
	}

	sale, err := s.sales.Find(ctx, id)
	if errors.Is(err, orm.ErrRecordNotFound) {
		return Receipt{}, ErrSaleNotFound
	}
	if err != nil {
		return Receipt{}, fmt.Errorf("services: find sale %d: %w", id, err)
	}

	content, err := s.renderer.Render(sale)
	if err != nil {
		return Receipt{}, err
	}
	metrics.ReceiptsGenerated.Inc()

	if s.opts.Archive && s.opts.Disk != nil {
		s.archive(ctx, id, content)
	}

	return Receipt{Filename: receipts.Filename(id), Content: content}, nil
}

func (s *SaleService) archive(ctx context.Context, id uint, content []byte) {
	put := func(ctx context.Context) error {
		return s.opts.Disk.Put(ctx, receipts.ArchivePath(id), content)
	}

	if s.opts.Archiver != nil {
		err := s.opts.Archiver.Submit("receipt.archive", put)
		if err == nil {
			return
		}
		logger.WithCtx(ctx).Warn("receipt archive queued inline", "sale_id", id, "reason", err)
	}

	if err := put(ctx); err != nil {
		logger.WithCtx(ctx).Error("receipt archive failed", "sale_id", id, "error", err)
	}
}

// Summary returns the sale count and total, cached for SummaryTTL.
func (s *SaleService) Summary(ctx context.Context) (repositories.SaleSummary, error) {
	return cache.Remember(ctx, s.cache, summaryCacheKey, s.opts.SummaryTTL, func() (repositories.SaleSummary, error) {
		return s.sales.Summary(ctx)
	})
}
