package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/shashiranjanraj/ventas/app/models"
	"github.com/shashiranjanraj/ventas/app/repositories"
	"github.com/shashiranjanraj/ventas/pkg/auth"
	"github.com/shashiranjanraj/ventas/pkg/metrics"
	"github.com/shashiranjanraj/ventas/pkg/orm"
)

// ErrInvalidCredentials is returned by Attempt for an unknown email or a
// wrong password. Callers cannot tell the two apart.
var ErrInvalidCredentials = errors.New("services: invalid credentials")

// ErrEmailTaken is returned by Register for a duplicate email.
var ErrEmailTaken = errors.New("services: email already registered")

var (
	dummyOnce sync.Once
	dummy     string
)

// dummyHash keeps Attempt's timing similar for unknown emails.
func dummyHash() string {
	dummyOnce.Do(func() { dummy, _ = auth.HashPassword("ventas-timing-guard") })
	return dummy
}

type AuthService struct {
	users *repositories.UserRepository
}

func NewAuthService(users *repositories.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Attempt checks email and password and returns the matching user.
func (s *AuthService) Attempt(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, orm.ErrRecordNotFound) {
		auth.CheckPassword(dummyHash(), password)
		metrics.LoginAttempts.WithLabelValues("failed").Inc()
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("services: find user: %w", err)
	}

	if !auth.CheckPassword(user.Password, password) {
		metrics.LoginAttempts.WithLabelValues("failed").Inc()
		return nil, ErrInvalidCredentials
	}

	metrics.LoginAttempts.WithLabelValues("success").Inc()
	return &user, nil
}

// Retrieve loads a user by id for the auth guard.
func (s *AuthService) Retrieve(ctx context.Context, id uint) (auth.Authenticatable, error) {
	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Register creates a user with a hashed password.
func (s *AuthService) Register(ctx context.Context, name, email, password, role string) (*models.User, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, orm.ErrRecordNotFound) {
		return nil, fmt.Errorf("services: find user: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("services: hash password: %w", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Password: hash,
		Role:     role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("services: create user: %w", err)
	}
	return user, nil
}
