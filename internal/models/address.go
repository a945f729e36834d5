package models

import (
	"time"

	"github.com/google/uuid"
)

// Address is the user's delivery address. At most one per user.
type Address struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Street       string    `gorm:"size:255;not null" json:"street"`
	City         string    `gorm:"size:100;not null" json:"city"`
	State        string    `gorm:"size:100;not null" json:"state"`
	Country      string    `gorm:"size:100;not null" json:"country"`
	Zip          string    `gorm:"size:20;not null" json:"zip"`
	HouseNumber  string    `gorm:"size:20" json:"house_number"`
	Complement   string    `gorm:"size:255" json:"complement,omitempty"`
	Neighborhood string    `gorm:"size:100" json:"neighborhood"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
