package handlers

import (
	"log"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freelancelocal/freelancelocal-be/internal/models"
	"github.com/freelancelocal/freelancelocal-be/internal/services/rating"
)

type ProfileHandler struct {
	DB      *gorm.DB
	Ratings *rating.RatingService
}

func NewProfileHandler(db *gorm.DB, ratings *rating.RatingService) *ProfileHandler {
	return &ProfileHandler{DB: db, Ratings: ratings}
}

type RatingOut struct {
	ID        string    `json:"id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
	RaterName string    `json:"rater_name"`
}

func (h *ProfileHandler) ratingList(freelancerID uuid.UUID) ([]RatingOut, error) {
	var ratings []models.Rating
	if err := h.DB.
		Preload("Rater").
		Where("freelancer_id = ?", freelancerID).
		Order("created_at DESC").
		Find(&ratings).Error; err != nil {
		return nil, err
	}

	out := make([]RatingOut, 0, len(ratings))
	for _, r := range ratings {
		o := RatingOut{
			ID:        r.ID.String(),
			Rating:    r.Rating,
			Comment:   r.Comment,
			CreatedAt: r.CreatedAt,
		}
		if r.Rater != nil {
			o.RaterName = r.Rater.Name
		}
		out = append(out, o)
	}
	return out, nil
}

// Get composes the profile view: profile, services, ratings with rater
// names, and whether the caller already rated this target.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	profileID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid profile ID",
		})
	}

	var profile models.Profile
	if err := h.DB.Preload("Services").First(&profile, "id = ?", profileID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Profile not found",
		})
	}

	ratings, err := h.ratingList(profileID)
	if err != nil {
		log.Println("Error fetching ratings:", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch ratings",
		})
	}

	hasRated := false
	if userUUID, err := getUserUUID(c); err == nil {
		var count int64
		if err := h.DB.Model(&models.Rating{}).
			Where("freelancer_id = ? AND rater_id = ?", profileID, userUUID).
			Count(&count).Error; err == nil {
			hasRated = count > 0
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"profile":   profile,
			"services":  profile.Services,
			"ratings":   ratings,
			"has_rated": hasRated,
		},
	})
}

// CanRate exposes the server-authoritative eligibility check.
func (h *ProfileHandler) CanRate(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	freelancerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid profile ID",
		})
	}

	if err := h.Ratings.CanRate(userUUID, freelancerID); err != nil {
		switch err {
		case rating.ErrSelfRating, rating.ErrAlreadyRated:
			return c.JSON(fiber.Map{
				"success": true,
				"data":    fiber.Map{"can_rate": false, "reason": err.Error()},
			})
		default:
			return c.Status(500).JSON(fiber.Map{
				"success": false,
				"message": "Failed to check eligibility",
			})
		}
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data":    fiber.Map{"can_rate": true},
	})
}

type SubmitRatingReq struct {
	Rating  int    `json:"rating"`
	Comment string `json:"comment"`
}

// SubmitRating inserts a rating after the eligibility check and recomputes
// the target's aggregate server-side. Responds with the fresh list and
// aggregate so the caller never computes them locally.
func (h *ProfileHandler) SubmitRating(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	freelancerID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid profile ID",
		})
	}

	var req SubmitRatingReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request",
		})
	}

	aggregate, err := h.Ratings.Submit(userUUID, freelancerID, req.Rating, strings.TrimSpace(req.Comment))
	if err != nil {
		switch err {
		case rating.ErrSelfRating, rating.ErrAlreadyRated, rating.ErrRatingOutOfRange:
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"message": err.Error(),
			})
		case gorm.ErrRecordNotFound:
			return c.Status(404).JSON(fiber.Map{
				"success": false,
				"message": "Profile not found",
			})
		default:
			log.Println("Error submitting rating:", err)
			return c.Status(500).JSON(fiber.Map{
				"success": false,
				"message": "Failed to submit rating",
			})
		}
	}

	ratings, err := h.ratingList(freelancerID)
	if err != nil {
		log.Println("Error refetching ratings:", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch ratings",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"ratings":   ratings,
			"rating":    aggregate,
			"has_rated": true,
		},
	})
}
