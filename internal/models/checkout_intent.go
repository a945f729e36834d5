package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// CheckoutIntent is the locally persisted snapshot of a checkout request,
// created before the gateway session. The session metadata references it by
// id instead of round-tripping JSON blobs through the payment provider.
type CheckoutIntent struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	BuyerID   uuid.UUID      `gorm:"type:uuid;not null;index" json:"buyer_id"`
	SellerID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"seller_id"`
	AddressID *uuid.UUID     `gorm:"type:uuid" json:"address_id,omitempty"`
	Products  datatypes.JSON `gorm:"type:jsonb;not null" json:"products"`
	CreatedAt time.Time      `json:"created_at"`
}
