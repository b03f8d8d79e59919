package seeders

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/ventas/app/models"
	"github.com/shashiranjanraj/ventas/app/repositories"
	"github.com/shashiranjanraj/ventas/app/services"
	"github.com/shashiranjanraj/ventas/config"
	"github.com/shashiranjanraj/ventas/database/factories"
)

// demoSales is how many sales the local environment gets.
const demoSales = 15

func init() {
	Register("admin", SeedAdmin)
	Register("sales", SeedDemoSales)
}

// SeedAdmin creates the administrator from ADMIN_* config. An existing
// account with that email is left untouched.
func SeedAdmin(ctx context.Context, db *gorm.DB) error {
	svc := services.NewAuthService(repositories.NewUserRepository(db))
	_, err := svc.Register(ctx,
		config.Get("ADMIN_NAME", "Administrador"),
		config.Get("ADMIN_EMAIL", "admin@example.com"),
		config.Get("ADMIN_PASSWORD", factories.DefaultPassword),
		models.RoleAdmin,
	)
	if errors.Is(err, services.ErrEmailTaken) {
		return nil
	}
	return err
}

// SeedDemoSales fills an empty sales table outside production.
func SeedDemoSales(ctx context.Context, db *gorm.DB) error {
	if config.AppEnv() == "production" {
		return nil
	}

	var count int64
	if err := db.WithContext(ctx).Model(&models.Sale{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count sales: %w", err)
	}
	if count > 0 {
		return nil
	}

	_, err := factories.NewSaleFactory(db).CreateMany(ctx, demoSales)
	return err
}
