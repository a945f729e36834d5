package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID        uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string       `gorm:"size:255;not null" json:"name"`
	Email     string       `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password  string       `gorm:"not null" json:"-"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`
	Accesses  []UserAccess `gorm:"foreignKey:UserID" json:"accesses,omitempty"`
	Store     *Store       `gorm:"foreignKey:UserID" json:"store,omitempty"`
	Address   *Address     `gorm:"foreignKey:UserID" json:"address,omitempty"`
}

// RoleNames flattens the access assignments into role name strings.
func (u *User) RoleNames() []string {
	names := make([]string, 0, len(u.Accesses))
	for _, ua := range u.Accesses {
		names = append(names, ua.Access.Name)
	}
	return names
}
