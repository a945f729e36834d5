package models

import (
	"time"

	"github.com/google/uuid"
)

type Product struct {
	ID          uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"type:text" json:"description"`
	Price       float64        `gorm:"type:decimal(10,2);not null" json:"price"`
	Amount      int            `gorm:"not null" json:"amount"`
	StoreID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"store_id"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	Store       Store          `gorm:"foreignKey:StoreID" json:"-"`
	Images      []ProductImage `gorm:"foreignKey:ProductID" json:"images,omitempty"`
}

type ProductImage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ImageURL  string    `gorm:"type:text;not null" json:"image_url"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	CreatedAt time.Time `json:"created_at"`
}
