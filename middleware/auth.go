// middleware/auth.go
package middleware

import (
	"strings"

	"ecometer/utils"

	"github.com/gofiber/fiber/v2"
)

// UserIDKey is the c.Locals key holding the gateway-forwarded user id.
const UserIDKey = "user_id"

// UserContextMiddleware copies X-User-ID into c.Locals. Routes under /user/
// are rejected without it.
func UserContextMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Get("X-User-ID"))

		if strings.HasPrefix(c.Path(), "/user/") && userID == "" {
			utils.Logger.Warn().Str("path", c.Path()).Msg("❌ [USER_CTX] X-User-ID required but missing")
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "missing X-User-ID — request must come through gateway with auth context",
			})
		}

		c.Locals(UserIDKey, userID)
		utils.Logger.Debug().Str("user_id", userID).Str("path", c.Path()).Msg("👤 [USER_CTX]")
		return c.Next()
	}
}

// UserID returns the id stored by UserContextMiddleware.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(UserIDKey).(string)
	return id
}
