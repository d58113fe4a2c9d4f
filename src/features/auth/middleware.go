package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"soundvault/src/catalog"
)

const localsUserID = "userID"

// RequireAuth verifies the bearer token and stores the requesting user's id
// in the request locals.
func RequireAuth(tokens catalog.TokenIssuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || raw == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "missing bearer token"})
		}
		userID, err := tokens.Verify(raw)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "invalid token"})
		}
		c.Locals(localsUserID, userID)
		return c.Next()
	}
}

// UserID returns the authenticated user's id set by RequireAuth.
func UserID(c *fiber.Ctx) string {
	id, _ := c.Locals(localsUserID).(string)
	return id
}
