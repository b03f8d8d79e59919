package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// ErrNegativeTotal is returned when saving a sale with total < 0.
var ErrNegativeTotal = errors.New("models: sale total must not be negative")

// Sale is one recorded transaction. Seller is free text, not a user FK.
type Sale struct {
	ID        uint      `gorm:"primaryKey"                 json:"id"`
	Seller    string    `gorm:"size:255;not null"          json:"seller"`
	Customer  string    `gorm:"size:255;not null"          json:"customer"`
	Payment   string    `gorm:"size:100;not null"          json:"payment"`
	Total     float64   `gorm:"type:decimal(12,2);not null" json:"total"`
	CreatedAt time.Time `gorm:"index"                      json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *Sale) BeforeSave(*gorm.DB) error {
	if s.Total < 0 {
		return ErrNegativeTotal
	}
	return nil
}
