package migrations

import (
	"github.com/shashiranjanraj/ventas/app/models"
	"github.com/shashiranjanraj/ventas/pkg/migration"
	"gorm.io/gorm"
)

func init() {
	migration.Register("20240901000000_create_users_table", &CreateUsersTable{})
	migration.Register("20240901000001_create_sales_table", &CreateSalesTable{})
}

// -------- 0001: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0002: sales --------

type CreateSalesTable struct{}

func (m *CreateSalesTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Sale{})
}

func (m *CreateSalesTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("sales")
}
