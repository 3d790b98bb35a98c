package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freelancelocal/freelancelocal-be/internal/models"
	"github.com/freelancelocal/freelancelocal-be/internal/services/feed"
)

type FeedHandler struct {
	DB *gorm.DB
}

func NewFeedHandler(db *gorm.DB) *FeedHandler {
	return &FeedHandler{DB: db}
}

// loadCandidates fetches the viewer's ranked candidate list: every
// freelancer profile except the viewer, flagged with the viewer's favorites.
func (h *FeedHandler) loadCandidates(viewerID uuid.UUID) ([]feed.Candidate, error) {
	var viewer models.Profile
	if err := h.DB.Select("city").First(&viewer, "id = ?", viewerID).Error; err != nil {
		return nil, err
	}

	var profiles []models.Profile
	if err := h.DB.
		Preload("Services").
		Where("is_freelancer = ? AND id <> ?", true, viewerID).
		Find(&profiles).Error; err != nil {
		return nil, err
	}

	var favs []models.Favorite
	if err := h.DB.Where("user_id = ?", viewerID).Find(&favs).Error; err != nil {
		return nil, err
	}
	favSet := make(map[uuid.UUID]bool, len(favs))
	for _, f := range favs {
		favSet[f.FreelancerID] = true
	}

	return feed.Rank(profiles, viewer.City, favSet), nil
}

// Get serves the candidate under a cyclic cursor. cursor=N shows the
// candidate at N mod total; next_cursor wraps past the end.
func (h *FeedHandler) Get(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	cursor := c.QueryInt("cursor", 0)

	candidates, err := h.loadCandidates(userUUID)
	if err != nil {
		log.Println("Error loading feed:", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load feed",
		})
	}

	if len(candidates) == 0 {
		return c.JSON(fiber.Map{
			"success": true,
			"data": fiber.Map{
				"candidate": nil,
				"total":     0,
			},
		})
	}

	idx := feed.Index(cursor, len(candidates))

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"candidate":   candidates[idx],
			"cursor":      idx,
			"next_cursor": feed.Next(cursor, len(candidates)),
			"total":       len(candidates),
		},
	})
}

type SwipeReq struct {
	FreelancerID string `json:"freelancer_id"`
	Cursor       int    `json:"cursor"`
	Direction    string `json:"direction"` // "left" dismisses, "right" toggles favorite
}

// Swipe advances the cyclic cursor. A right swipe toggles the favorites
// relation first; when that write fails the cursor is not advanced.
func (h *FeedHandler) Swipe(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	var req SwipeReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request",
		})
	}

	if req.Direction != "left" && req.Direction != "right" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Direction must be left or right",
		})
	}

	// same load path as Get, so next_cursor agrees with the feed the
	// caller is walking
	candidates, err := h.loadCandidates(userUUID)
	if err != nil {
		log.Println("Error loading feed:", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load feed",
		})
	}

	next := feed.Next(req.Cursor, len(candidates))

	if req.Direction == "left" {
		// dismiss: no persistent effect
		return c.JSON(fiber.Map{
			"success": true,
			"data":    fiber.Map{"next_cursor": next},
		})
	}

	freelancerID, err := uuid.Parse(req.FreelancerID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid freelancer ID",
		})
	}
	if freelancerID == userUUID {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Cannot favorite yourself",
		})
	}

	isFavorite, err := h.toggleFavorite(userUUID, freelancerID)
	if err != nil {
		log.Println("Error updating favorites:", err)
		// the caller keeps its cursor: a failed toggle does not advance
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update favorites",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"is_favorite": isFavorite,
			"next_cursor": next,
		},
	})
}

// toggleFavorite inserts the pair if absent, deletes it if present, and
// returns the resulting state.
func (h *FeedHandler) toggleFavorite(userID, freelancerID uuid.UUID) (bool, error) {
	var existing models.Favorite
	err := h.DB.
		Where("user_id = ? AND freelancer_id = ?", userID, freelancerID).
		First(&existing).Error

	if err == nil {
		if err := h.DB.Delete(&existing).Error; err != nil {
			return true, err
		}
		return false, nil
	}
	if err != gorm.ErrRecordNotFound {
		return false, err
	}

	fav := models.Favorite{UserID: userID, FreelancerID: freelancerID}
	if err := h.DB.Create(&fav).Error; err != nil {
		return false, err
	}
	return true, nil
}
