// Command ventas runs the sales administration web app and its maintenance
// tasks.
//
//	ventas serve             # start the HTTP server
//	ventas migrate           # run pending migrations
//	ventas migrate:rollback
//	ventas migrate:status
//	ventas seed              # admin user + demo sales
//	ventas route:list        # list named routes
//	ventas user:create --name Ana --email ana@example.com --password secret --role admin
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/ventas/config"
	"github.com/shashiranjanraj/ventas/pkg/logger"

	// Import migrations and seeders so their init() funcs register them.
	_ "github.com/shashiranjanraj/ventas/database/migrations"
	_ "github.com/shashiranjanraj/ventas/database/seeders"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	closeLogs := func() {}

	root := &cobra.Command{
		Use:           "ventas",
		Short:         "Ventas: sales administration",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return err
			}
			c, err := logger.Configure(logger.Options{
				Env:             config.AppEnv(),
				File:            config.LogFile(),
				MongoURI:        config.LogMongoURI(),
				MongoDatabase:   config.LogMongoDatabase(),
				MongoCollection: config.LogMongoCollection(),
			})
			if err != nil {
				return err
			}
			closeLogs = c
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			closeLogs()
		},
	}

	// Server
	root.AddCommand(newServeCmd())
	root.AddCommand(newRouteListCmd())

	// Database
	root.AddCommand(newMigrateCmd())
	root.AddCommand(newMigrateRollbackCmd())
	root.AddCommand(newMigrateStatusCmd())
	root.AddCommand(newSeedCmd())

	// Users
	root.AddCommand(newUserCreateCmd())
	return root
}
