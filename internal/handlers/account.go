package handlers

import (
	"encoding/json"
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/freelancelocal/freelancelocal-be/internal/models"
	"github.com/freelancelocal/freelancelocal-be/internal/services/geocode"
)

type AccountHandler struct {
	DB      *gorm.DB
	Geocode *geocode.GeocodeService
}

func NewAccountHandler(db *gorm.DB, geo *geocode.GeocodeService) *AccountHandler {
	return &AccountHandler{DB: db, Geocode: geo}
}

// Get returns the caller's own profile with services.
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	var profile models.Profile
	if err := h.DB.Preload("Services").First(&profile, "id = ?", userUUID).Error; err != nil {
		return c.Status(404).JSON(fiber.Map{
			"success": false,
			"message": "Profile not found",
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": profile})
}

type UpdateProfileReq struct {
	Name         *string   `json:"name"`
	Bio          *string   `json:"bio"`
	IsFreelancer *bool     `json:"is_freelancer"`
	Availability *bool     `json:"availability"`
	Interests    *[]string `json:"interests"`
}

// UpdateProfile writes the owner-editable fields. The rating field is
// derived and never accepted here.
func (h *AccountHandler) UpdateProfile(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	var req UpdateProfileReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request",
		})
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"message": "Name must not be empty",
			})
		}
		updates["name"] = name
	}
	if req.Bio != nil {
		updates["bio"] = strings.TrimSpace(*req.Bio)
	}
	if req.IsFreelancer != nil {
		updates["is_freelancer"] = *req.IsFreelancer
	}
	if req.Availability != nil {
		updates["availability"] = *req.Availability
	}
	if req.Interests != nil {
		raw, err := json.Marshal(*req.Interests)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{
				"success": false,
				"message": "Invalid interests",
			})
		}
		updates["interests"] = raw
	}

	if len(updates) == 0 {
		return c.JSON(fiber.Map{"success": true})
	}

	if err := h.DB.Model(&models.Profile{}).
		Where("id = ?", userUUID).
		Updates(updates).Error; err != nil {
		log.Println("Error updating profile:", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update profile",
		})
	}

	var profile models.Profile
	if err := h.DB.First(&profile, "id = ?", userUUID).Error; err != nil {
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to load profile",
		})
	}

	return c.JSON(fiber.Map{"success": true, "data": profile})
}

type UpdateLocationReq struct {
	City string `json:"city"`
}

// UpdateLocation forward-geocodes the city, then stores city + coordinates
// together. An unresolvable city leaves the stored location untouched.
func (h *AccountHandler) UpdateLocation(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	var req UpdateLocationReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "Invalid request",
		})
	}

	city := strings.TrimSpace(req.City)
	if city == "" {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "City is required",
		})
	}

	coords, err := h.Geocode.Forward(city)
	if err == geocode.ErrCityNotFound {
		return c.Status(400).JSON(fiber.Map{
			"success": false,
			"message": "City not found. Please try a different name.",
		})
	}
	if err != nil {
		log.Println("Error geocoding city:", err)
		return c.Status(502).JSON(fiber.Map{
			"success": false,
			"message": "Failed to resolve location",
		})
	}

	if err := h.DB.Model(&models.Profile{}).
		Where("id = ?", userUUID).
		Updates(map[string]interface{}{
			"city":      city,
			"latitude":  coords.Latitude,
			"longitude": coords.Longitude,
		}).Error; err != nil {
		log.Println("Error updating location:", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update location",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"data": fiber.Map{
			"city":      city,
			"latitude":  coords.Latitude,
			"longitude": coords.Longitude,
		},
	})
}

// AcceptTerms records the one-time acceptance. One-way: there is no
// endpoint to unset it.
func (h *AccountHandler) AcceptTerms(c *fiber.Ctx) error {
	userUUID, err := getUserUUID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Unauthorized"})
	}

	if err := h.DB.Model(&models.User{}).
		Where("id = ?", userUUID).
		Update("agb_accepted", true).Error; err != nil {
		log.Println("Error accepting terms:", err)
		return c.Status(500).JSON(fiber.Map{
			"success": false,
			"message": "Failed to record acceptance",
		})
	}

	return c.JSON(fiber.Map{"success": true})
}
