package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Rating: at most one per (rater, freelancer) pair, rater never the
// freelancer. The DB constraint is authoritative; handlers pre-check.
type Rating struct {
	ID           uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	FreelancerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_pair" json:"freelancer_id"`
	RaterID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_rating_pair" json:"rater_id"`

	Rating  int    `gorm:"not null" json:"rating"` // 1-5
	Comment string `gorm:"type:text" json:"comment"`

	CreatedAt time.Time `json:"created_at"`

	Freelancer *Profile `gorm:"foreignKey:FreelancerID" json:"-"`
	Rater      *Profile `gorm:"foreignKey:RaterID" json:"rater,omitempty"`
}

func (r *Rating) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return
}
