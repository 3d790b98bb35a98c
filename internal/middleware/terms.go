package middleware

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/freelancelocal/freelancelocal-be/internal/models"
)

// RequireTermsAccepted blocks authenticated routes until the user has
// recorded a one-time terms acceptance. The accept endpoint itself must be
// mounted outside this middleware, otherwise nobody can ever get through.
func RequireTermsAccepted(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		uid := c.Locals("userId")
		if uid == nil {
			return fiber.ErrUnauthorized
		}

		var user models.User
		if err := db.Select("agb_accepted").First(&user, "id = ?", uid).Error; err != nil {
			return fiber.ErrUnauthorized
		}

		if !user.AGBAccepted {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"success": false,
				"message": "Terms acceptance required",
				"code":    "terms_required",
			})
		}

		return c.Next()
	}
}
