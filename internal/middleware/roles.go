package middleware

import (
	"github.com/askwellapp/askwell-backend/internal/config"
	"github.com/askwellapp/askwell-backend/internal/dto"
	"github.com/askwellapp/askwell-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// RoleRequired gates a route on the caller's role, read from the user
// record so role changes take effect without re-issuing tokens. superAdmin
// passes wherever admin is allowed. An operator token header bypasses the
// check for break-glass access.
func RoleRequired(db *gorm.DB, cfg *config.Config, roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	if allowed[models.RoleAdmin] {
		allowed[models.RoleSuperAdmin] = true
	}

	return func(c *fiber.Ctx) error {
		if cfg.AdminToken != "" && c.Get("X-Admin-Token") == cfg.AdminToken {
			return c.Next()
		}

		userID, err := UserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		var user models.User
		if err := db.First(&user, "id = ?", userID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized",
			})
		}

		if !allowed[user.Role] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Error: true, Message: "Insufficient permissions",
			})
		}

		c.Locals("actor", &user)
		return c.Next()
	}
}
