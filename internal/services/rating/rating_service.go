package rating

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freelancelocal/freelancelocal-be/internal/models"
)

var (
	ErrSelfRating       = errors.New("cannot rate your own profile")
	ErrAlreadyRated     = errors.New("you have already rated this freelancer")
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
)

type RatingService struct {
	DB *gorm.DB
}

func NewRatingService(db *gorm.DB) *RatingService {
	return &RatingService{DB: db}
}

// CanRate is the authoritative eligibility check: not self, not already
// rated. Handlers call it before an insert; the unique index on
// (rater_id, freelancer_id) backs it up.
func (s *RatingService) CanRate(raterID, freelancerID uuid.UUID) error {
	if raterID == freelancerID {
		return ErrSelfRating
	}

	var count int64
	if err := s.DB.Model(&models.Rating{}).
		Where("rater_id = ? AND freelancer_id = ?", raterID, freelancerID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAlreadyRated
	}
	return nil
}

// Submit inserts the rating row and recomputes the freelancer's aggregate
// in a single transaction. Returns the fresh aggregate.
func (s *RatingService) Submit(raterID, freelancerID uuid.UUID, value int, comment string) (float64, error) {
	if value < 1 || value > 5 {
		return 0, ErrRatingOutOfRange
	}
	if err := s.CanRate(raterID, freelancerID); err != nil {
		return 0, err
	}

	var aggregate float64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		r := models.Rating{
			FreelancerID: freelancerID,
			RaterID:      raterID,
			Rating:       value,
			Comment:      comment,
		}
		if err := tx.Create(&r).Error; err != nil {
			return err
		}

		// Derived value: the client never writes profiles.rating directly.
		if err := tx.Model(&models.Rating{}).
			Where("freelancer_id = ?", freelancerID).
			Select("COALESCE(AVG(rating), 0)").
			Scan(&aggregate).Error; err != nil {
			return err
		}

		result := tx.Model(&models.Profile{}).
			Where("id = ?", freelancerID).
			Update("rating", aggregate)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return aggregate, nil
}
