package models

import (
	"time"

	"github.com/google/uuid"
)

// Sale is the durable record of a completed transaction, distinct from the
// gateway's checkout session. StripeSessionID is stamped by the webhook once
// the session completes.
type Sale struct {
	ID              uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	TotalValue      float64       `gorm:"type:decimal(10,2);not null" json:"total_value"`
	BuyerID         uuid.UUID     `gorm:"type:uuid;not null;index" json:"buyer_id"`
	SellerID        uuid.UUID     `gorm:"type:uuid;not null;index" json:"seller_id"`
	AddressID       *uuid.UUID    `gorm:"type:uuid" json:"address_id,omitempty"`
	StripeSessionID *string       `gorm:"size:255;index" json:"stripe_session_id,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
	Buyer           User          `gorm:"foreignKey:BuyerID" json:"buyer,omitempty"`
	Seller          User          `gorm:"foreignKey:SellerID" json:"seller,omitempty"`
	Address         *Address      `gorm:"foreignKey:AddressID" json:"address,omitempty"`
	Products        []SaleProduct `gorm:"foreignKey:SaleID" json:"products,omitempty"`
}

type SaleProduct struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	SaleID    uuid.UUID `gorm:"type:uuid;not null;index" json:"sale_id"`
	ProductID uuid.UUID `gorm:"type:uuid;not null;index" json:"product_id"`
	Quantity  int       `gorm:"not null" json:"quantity"`
	Product   Product   `gorm:"foreignKey:ProductID" json:"product"`
}
