package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Profile shares its primary key with the owning user.
type Profile struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	Name string `gorm:"not null" json:"name"`
	Bio  string `gorm:"type:text" json:"bio"`

	IsFreelancer bool `gorm:"default:false;index" json:"is_freelancer"`
	Availability bool `gorm:"default:true" json:"availability"`

	// Ordered list of skill/interest strings, e.g. ["plumbing", "tiling"]
	Interests datatypes.JSON `json:"interests"`

	City      string   `gorm:"type:varchar(120)" json:"city,omitempty"`
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	// Aggregate over ratings rows. Only the rating submit path writes it.
	Rating float64 `gorm:"default:0" json:"rating"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Services []Service `gorm:"foreignKey:ProfileID" json:"services,omitempty"`
}
