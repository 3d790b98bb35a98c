package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/freelancelocal/freelancelocal-be/internal/models"
)

type ServiceHandler struct {
	DB *gorm.DB
}

func NewServiceHandler(db *gorm.DB) *ServiceHandler {
	return &ServiceHandler{DB: db}
}

type ServiceReq struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Rate        int64  `json:"rate"`
}

func (h *ServiceHandler) Create(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	var req ServiceReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request",
		})
	}

	title := strings.TrimSpace(req.Title)
	description := strings.TrimSpace(req.Description)

	if title == "" || description == "" || req.Rate <= 0 {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Title, description and a positive rate are required",
		})
	}

	// only freelancer profiles own services
	var profile models.Profile
	if err := h.DB.First(&profile, "id = ?", userUUID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Profile not found",
		})
	}
	if !profile.IsFreelancer {
		return c.Status(403).JSON(fiber.Map{
			"success": false,
			"message": "Only freelancer profiles can offer services",
		})
	}

	svc := models.Service{
		ProfileID:   userUUID,
		Title:       title,
		Description: description,
		Rate:        req.Rate,
	}

	if err := h.DB.Create(&svc).Error; err != nil {
		log.Println("Error creating service:", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to create service",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": svc})
}

// ListMine returns the caller's own services.
func (h *ServiceHandler) ListMine(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	var services []models.Service
	if err := h.DB.
		Where("profile_id = ?", userUUID).
		Order("created_at ASC").
		Find(&services).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch services",
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": services})
}

func (h *ServiceHandler) Delete(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	svcID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid service ID",
		})
	}

	// scope the delete to the owning profile
	result := h.DB.Where("id = ? AND profile_id = ?", svcID, userUUID).
		Delete(&models.Service{})
	if result.Error != nil {
		log.Println("Error deleting service:", result.Error)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to delete service",
		})
	}
	if result.RowsAffected == 0 {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Service not found",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
