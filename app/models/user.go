package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// Roles a user may hold.
const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// ErrInvalidRole is returned when saving a user whose role is not known.
var ErrInvalidRole = errors.New("models: invalid role")

// User is an account that can log in.
type User struct {
	ID        uint      `gorm:"primaryKey"                          json:"id"`
	Name      string    `gorm:"size:255;not null"                   json:"name"`
	Email     string    `gorm:"uniqueIndex;size:255;not null"       json:"email"`
	Password  string    `gorm:"column:password_hash;size:255;not null" json:"-"` // bcrypt hash
	Role      string    `gorm:"size:50;not null;default:member"     json:"role"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeSave keeps Role inside the known set.
func (u *User) BeforeSave(*gorm.DB) error {
	switch u.Role {
	case "":
		u.Role = RoleMember
	case RoleAdmin, RoleMember:
	default:
		return ErrInvalidRole
	}
	return nil
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// AuthID and AuthRole satisfy auth.Authenticatable.
func (u *User) AuthID() uint     { return u.ID }
func (u *User) AuthRole() string { return u.Role }
