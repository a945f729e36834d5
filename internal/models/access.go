package models

import (
	"time"

	"github.com/google/uuid"
)

// Access is a named permission tier (admin, seller, buyer).
type Access struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:50;not null;uniqueIndex" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserAccess joins users to their accesses.
type UserAccess struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID   uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	AccessID uuid.UUID `gorm:"type:uuid;not null;index" json:"access_id"`
	Access   Access    `gorm:"foreignKey:AccessID" json:"access"`
}

func (UserAccess) TableName() string {
	return "user_accesses"
}
