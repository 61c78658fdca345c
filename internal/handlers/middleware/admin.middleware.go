package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// RequireAdmin gates moderation routes. It must run after RequireAuth so the
// user is already resolved into the request context.
func (m *Middleware) RequireAdmin() fiber.Handler {
	log := m.log.Function("RequireAdmin")

	return func(c *fiber.Ctx) error {
		user := GetUser(c)
		if user == nil {
			log.Info("admin route hit without authenticated user", "path", c.Path())
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authentication required",
			})
		}

		if !user.IsAdmin {
			log.Info("non-admin user denied", "userID", user.ID, "path", c.Path())
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Admin access required",
			})
		}

		return c.Next()
	}
}
