package handlers

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/freelancelocal/freelancelocal-be/internal/models"
)

type FavoritesHandler struct {
	DB *gorm.DB
}

func NewFavoritesHandler(db *gorm.DB) *FavoritesHandler {
	return &FavoritesHandler{DB: db}
}

// List returns the caller's favorites with the freelancer profiles joined,
// newest favorite first.
func (h *FavoritesHandler) List(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	var favs []models.Favorite
	if err := h.DB.
		Preload("Freelancer").
		Preload("Freelancer.Services").
		Where("user_id = ?", userUUID).
		Order("created_at DESC").
		Find(&favs).Error; err != nil {
		log.Println("Error fetching favorites:", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch favorites",
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": favs})
}
