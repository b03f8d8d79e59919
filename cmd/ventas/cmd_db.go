package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/ventas/config"
	"github.com/shashiranjanraj/ventas/database/seeders"
	"github.com/shashiranjanraj/ventas/pkg/database"
	"github.com/shashiranjanraj/ventas/pkg/migration"
)

// bootDB loads config and opens the database connection.
func bootDB() error {
	if err := config.Load(); err != nil {
		return err
	}
	return database.Connect()
}

// ventas migrate
func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run all pending database migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootDB(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Running migrations…")
			return migration.New(database.DB, cmd.OutOrStdout()).Run()
		},
	}
}

// ventas migrate:rollback
func newMigrateRollbackCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:rollback",
		Short: "Rollback the last batch of migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootDB(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Rolling back last batch…")
			return migration.New(database.DB, cmd.OutOrStdout()).Rollback()
		},
	}
}

// ventas migrate:status
func newMigrateStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate:status",
		Short: "Show the status of each migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootDB(); err != nil {
				return err
			}
			return migration.New(database.DB, cmd.OutOrStdout()).Status()
		},
	}
}

// ventas seed
func newSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Create the admin user and demo sales",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := bootDB(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Running seeders…")
			return seeders.RunAll(cmd.Context(), database.DB, cmd.OutOrStdout())
		},
	}
}
