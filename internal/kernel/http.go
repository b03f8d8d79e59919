// Package kernel wires the application's HTTP handler: global middleware,
// services and routes.
package kernel

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/ventas/app/controllers"
	"github.com/shashiranjanraj/ventas/app/receipts"
	"github.com/shashiranjanraj/ventas/app/repositories"
	"github.com/shashiranjanraj/ventas/app/routes"
	"github.com/shashiranjanraj/ventas/app/services"
	"github.com/shashiranjanraj/ventas/app/views"
	"github.com/shashiranjanraj/ventas/pkg/auth"
	"github.com/shashiranjanraj/ventas/pkg/cache"
	"github.com/shashiranjanraj/ventas/pkg/metrics"
	"github.com/shashiranjanraj/ventas/pkg/middleware"
	"github.com/shashiranjanraj/ventas/pkg/response"
	"github.com/shashiranjanraj/ventas/pkg/router"
	"github.com/shashiranjanraj/ventas/pkg/session"
	"github.com/shashiranjanraj/ventas/pkg/storage"
	"github.com/shashiranjanraj/ventas/pkg/workerpool"
)

// Options holds everything the kernel needs from the outside world.
type Options struct {
	DB    *gorm.DB
	Cache cache.Store
	// Disk receives archived receipts; nil disables archiving.
	Disk storage.Disk

	AppName          string
	AppKey           string
	CSRF             bool
	SecureCookies    bool
	SessionTTL       time.Duration
	LoginMaxAttempts int
	SummaryTTL       time.Duration
	ArchiveReceipts  bool
	// TrustedProxies lists the CIDRs allowed to report the client address
	// through forwarding headers.
	TrustedProxies []string
}

// Kernel is the assembled HTTP application.
type Kernel struct {
	Router   *router.Router
	Sessions *session.Manager
	Guard    *auth.Guard

	archiver *workerpool.Pool
}

const archiveWorkers = 2

func New(opts Options) (*Kernel, error) {
	if opts.DB == nil {
		return nil, errors.New("kernel: database is required")
	}
	if opts.Cache == nil {
		return nil, errors.New("kernel: cache store is required")
	}
	if opts.LoginMaxAttempts <= 0 {
		opts.LoginMaxAttempts = 5
	}
	if err := middleware.TrustProxies(opts.TrustedProxies...); err != nil {
		return nil, fmt.Errorf("kernel: %w", err)
	}

	r := router.New()

	sessOpts := session.DefaultOptions()
	sessOpts.Secure = opts.SecureCookies
	if opts.SessionTTL > 0 {
		sessOpts.TTL = opts.SessionTTL
	}
	sessions := session.NewManager(opts.Cache, sessOpts)

	userRepo := repositories.NewUserRepository(opts.DB)
	saleRepo := repositories.NewSaleRepository(opts.DB)

	authService := services.NewAuthService(userRepo)
	var archiver *workerpool.Pool
	if opts.ArchiveReceipts && opts.Disk != nil {
		archiver = workerpool.New(archiveWorkers)
	}
	saleService := services.NewSaleService(saleRepo, opts.Cache, receipts.NewRenderer(opts.AppName), services.SaleOptions{
		SummaryTTL: opts.SummaryTTL,
		Archive:    opts.ArchiveReceipts,
		Disk:       opts.Disk,
		Archiver:   archiver,
	})

	guard := auth.NewGuard(authService, auth.GuardOptions{
		Key:          []byte(opts.AppKey),
		SecureCookie: opts.SecureCookies,
	})

	renderer, err := views.New(r)
	if err != nil {
		if archiver != nil {
			_ = archiver.Shutdown(context.Background())
		}
		return nil, err
	}
	base := &controllers.Base{Views: renderer, URLs: r, AppName: opts.AppName}

	// Global middleware stack (outermost → innermost):
	//  1. Prometheus metrics   outermost for accurate total latency
	//  2. Request ID           inject unique ID before anything logs
	//  3. Logger               logs request_id from context
	//  4. Recovery             panics become a logged 500 page
	//  5. Session              load/create session cookie
	//  6. Method override      POST + _method=DELETE → DELETE before routing
	//  7. CSRF                 token check on unsafe methods
	r.Use(metrics.Middleware())
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recovery)
	r.Use(sessions.Middleware())
	r.Use(middleware.MethodOverride)
	r.Use(middleware.CSRF(opts.AppKey, opts.SecureCookies, opts.CSRF))

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { response.NotFound(w) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		response.Error(w, http.StatusMethodNotAllowed, "Método no permitido.")
	})

	routes.RegisterWeb(r, routes.Web{
		Auth:         controllers.NewAuthController(base, authService, guard),
		Dashboard:    controllers.NewDashboardController(base, saleService),
		Sales:        controllers.NewSalesController(base, saleService),
		Users:        guard,
		LoginLimiter: middleware.NewLimiter(opts.LoginMaxAttempts, time.Minute),
	})

	return &Kernel{Router: r, Sessions: sessions, Guard: guard, archiver: archiver}, nil
}

// Handler returns the root http.Handler.
func (k *Kernel) Handler() http.Handler {
	return k.Router.Handler()
}

// Close waits for background receipt archiving to finish.
func (k *Kernel) Close(ctx context.Context) error {
	if k.archiver == nil {
		return nil
	}
	return k.archiver.Shutdown(ctx)
}
