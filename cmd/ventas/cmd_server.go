package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/ventas/config"
	"github.com/shashiranjanraj/ventas/internal/kernel"
	"github.com/shashiranjanraj/ventas/internal/server"
	"github.com/shashiranjanraj/ventas/pkg/cache"
	"github.com/shashiranjanraj/ventas/pkg/database"
	"github.com/shashiranjanraj/ventas/pkg/logger"
	"github.com/shashiranjanraj/ventas/pkg/migration"
	"github.com/shashiranjanraj/ventas/pkg/storage"
)

// kernelOptions reads the HTTP settings from config.
func kernelOptions() kernel.Options {
	return kernel.Options{
		AppName:          config.AppName(),
		AppKey:           config.AppKey(),
		CSRF:             config.CSRFEnabled(),
		SecureCookies:    config.SessionSecure(),
		SessionTTL:       config.SessionTTL(),
		LoginMaxAttempts: config.LoginMaxAttempts(),
		SummaryTTL:       config.SummaryCacheTTL(),
		ArchiveReceipts:  config.ReceiptsArchive(),
		TrustedProxies:   config.TrustedProxies(),
	}
}

// ventas serve
func newServeCmd() *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:     "serve",
		Aliases: []string{"run"},
		Short:   "Start the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := bootDB(); err != nil {
				return err
			}
			if migrate {
				if err := migration.New(database.DB, cmd.OutOrStdout()).Run(); err != nil {
					return err
				}
			}

			store, err := cache.Connect(ctx)
			if err != nil {
				return err
			}

			opts := kernelOptions()
			opts.DB = database.DB
			opts.Cache = store
			if opts.ArchiveReceipts {
				if opts.Disk, err = storage.FromConfig(ctx); err != nil {
					return err
				}
			}

			k, err := kernel.New(opts)
			if err != nil {
				return err
			}
			defer func() {
				drainCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
				defer cancel()
				if err := k.Close(drainCtx); err != nil {
					logger.Warn("receipt archive drain incomplete", "error", err)
				}
			}()

			logger.Info("starting", "app", opts.AppName, "env", config.AppEnv(), "cache", store.Driver())
			return server.Start(ctx, ":"+config.AppPort(), k.Handler())
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "run pending migrations before serving")
	return cmd
}

// ventas route:list
func newRouteListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "route:list",
		Short: "List all registered named routes",
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := routeKernel(cmd.Context())
			if err != nil {
				return err
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 3, ' ', 0)
			fmt.Fprintln(w, "METHOD\tPATH\tNAME")
			fmt.Fprintln(w, "------\t----\t----")
			for _, ri := range k.Router.Routes() {
				fmt.Fprintf(w, "%s\t%s\t%s\n", ri.Method, ri.Path, ri.Name)
			}
			return w.Flush()
		},
	}
}

// routeKernel builds the kernel against throwaway backends; listing routes
// never touches them.
func routeKernel(_ context.Context) (*kernel.Kernel, error) {
	db, err := database.Open("sqlite", "file::memory:")
	if err != nil {
		return nil, err
	}
	opts := kernelOptions()
	opts.DB = db
	opts.Cache = cache.NewMemory()
	return kernel.New(opts)
}
