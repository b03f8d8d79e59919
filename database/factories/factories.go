// Package factories builds fake users and sales for tests and demo seeding.
//
//	admin, _ := factories.NewUserFactory(db).Create(ctx, factories.Admin)
//	sales, _ := factories.NewSaleFactory(db).CreateMany(ctx, 5)
package factories

import (
	"context"
	"math"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/shashiranjanraj/ventas/app/models"
	"github.com/shashiranjanraj/ventas/app/repositories"
	"github.com/shashiranjanraj/ventas/pkg/auth"
)

// DefaultPassword is the plain-text password of every factory user.
const DefaultPassword = "password"

var (
	firstNames = []string{"Ana", "Luis", "Carmen", "Jorge", "Sofia", "Diego", "Lucia", "Mateo", "Valeria", "Pablo"}
	lastNames  = []string{"Garcia", "Martinez", "Lopez", "Hernandez", "Torres", "Ramirez", "Flores", "Castillo", "Morales", "Vargas"}
	payments   = []string{"Efectivo", "Tarjeta de crédito", "Tarjeta de débito", "Transferencia"}

	hashOnce sync.Once
	hashed   string
	hashErr  error
)

func passwordHash() (string, error) {
	hashOnce.Do(func() { hashed, hashErr = auth.HashPassword(DefaultPassword) })
	return hashed, hashErr
}

func fullName() string {
	return firstNames[rand.IntN(len(firstNames))] + " " + lastNames[rand.IntN(len(lastNames))]
}

// ─── Users ────────────────────────────────────────────────────────────────────

// UserState customises a user before it is saved.
type UserState func(*models.User)

// Admin gives the user the admin role.
func Admin(u *models.User) { u.Role = models.RoleAdmin }

// Named sets the user's name.
func Named(name string) UserState { return func(u *models.User) { u.Name = name } }

// WithEmail sets the user's email.
func WithEmail(email string) UserState { return func(u *models.User) { u.Email = email } }

type UserFactory struct {
	users *repositories.UserRepository
}

func NewUserFactory(db *gorm.DB) *UserFactory {
	return &UserFactory{users: repositories.NewUserRepository(db)}
}

// Make builds an unsaved member with a unique email.
func (f *UserFactory) Make(states ...UserState) (models.User, error) {
	hash, err := passwordHash()
	if err != nil {
		return models.User{}, err
	}
	name := fullName()
	u := models.User{
		Name:     name,
		Email:    strings.ToLower(strings.ReplaceAll(name, " ", ".")) + "." + uuid.NewString()[:8] + "@example.com",
		Password: hash,
		Role:     models.RoleMember,
	}
	for _, s := range states {
		s(&u)
	}
	return u, nil
}

// Create builds and saves a user.
func (f *UserFactory) Create(ctx context.Context, states ...UserState) (*models.User, error) {
	u, err := f.Make(states...)
	if err != nil {
		return nil, err
	}
	if err := f.users.Create(ctx, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ─── Sales ────────────────────────────────────────────────────────────────────

type SaleFactory struct {
	sales *repositories.SaleRepository
}

func NewSaleFactory(db *gorm.DB) *SaleFactory {
	return &SaleFactory{sales: repositories.NewSaleRepository(db)}
}

// Make builds an unsaved sale with a total between 10 and 1000.
func (f *SaleFactory) Make() models.Sale {
	return models.Sale{
		Seller:   fullName(),
		Customer: fullName(),
		Payment:  payments[rand.IntN(len(payments))],
		Total:    math.Round((10+rand.Float64()*990)*100) / 100,
	}
}

// Create builds and saves one sale.
func (f *SaleFactory) Create(ctx context.Context) (*models.Sale, error) {
	s := f.Make()
	if err := f.sales.Create(ctx, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

// CreateMany saves n sales.
func (f *SaleFactory) CreateMany(ctx context.Context, n int) ([]models.Sale, error) {
	out := make([]models.Sale, 0, n)
	for range n {
		s, err := f.Create(ctx)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, nil
}
