// internal/models/user.go
package models

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID    uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email string    `gorm:"uniqueIndex;not null" json:"email"`

	Password string `gorm:"not null" json:"-"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	// One-time terms acceptance. Protected routes stay gated until it flips.
	AGBAccepted bool `gorm:"default:false" json:"agb_accepted"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// HAS ONE profile (profiles.id -> users.id)
	Profile *Profile `gorm:"foreignKey:ID;references:ID" json:"profile,omitempty"`
}
