package repositories

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/shashiranjanraj/ventas/app/models"
	"github.com/shashiranjanraj/ventas/pkg/orm"
)

// UserRepository handles database operations for User.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) query(ctx context.Context) *orm.Query {
	return orm.New(r.db).WithContext(ctx).Model(&models.User{})
}

// FindByEmail looks up a user by email, case-insensitively.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (models.User, error) {
	var user models.User
	err := r.query(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&user)
	return user, err
}

// FindByID looks up a user by primary key.
func (r *UserRepository) FindByID(ctx context.Context, id uint) (models.User, error) {
	var user models.User
	err := r.query(ctx).Where("id = ?", id).First(&user)
	return user, err
}

// Create persists a new user record. Emails are stored lower-cased.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = strings.ToLower(strings.TrimSpace(user.Email))
	return orm.New(r.db).WithContext(ctx).Create(user)
}
