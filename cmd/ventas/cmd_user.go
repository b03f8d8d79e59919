package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/ventas/app/models"
	"github.com/shashiranjanraj/ventas/app/repositories"
	"github.com/shashiranjanraj/ventas/app/services"
	"github.com/shashiranjanraj/ventas/pkg/database"
)

// ventas user:create
func newUserCreateCmd() *cobra.Command {
	var name, email, password, role string

	cmd := &cobra.Command{
		Use:   "user:create",
		Short: "Create a user account",
		RunE: func(cmd *cobra.Command, args []string) error {
			if email == "" || password == "" {
				return errors.New("--email and --password are required")
			}
			if role != models.RoleAdmin && role != models.RoleMember {
				return fmt.Errorf("%w: %q", models.ErrInvalidRole, role)
			}
			if err := bootDB(); err != nil {
				return err
			}

			svc := services.NewAuthService(repositories.NewUserRepository(database.DB))
			user, err := svc.Register(cmd.Context(), name, email, password, role)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "✅  Created user #%d <%s> (%s)\n", user.ID, user.Email, user.Role)
			return nil
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "display name")
	cmd.Flags().StringVar(&email, "email", "", "login email")
	cmd.Flags().StringVar(&password, "password", "", "plain-text password")
	cmd.Flags().StringVar(&role, "role", models.RoleMember, "admin or member")
	return cmd
}
