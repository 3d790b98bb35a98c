package models

import (
	"time"

	"github.com/google/uuid"
)

type Favorite struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_fav_pair" json:"user_id"`
	FreelancerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_fav_pair" json:"freelancer_id"`

	CreatedAt time.Time `json:"created_at"`

	Freelancer *Profile `gorm:"foreignKey:FreelancerID" json:"freelancer,omitempty"`
}
