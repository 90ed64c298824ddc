package middleware

import (
	"strings"

	"github.com/fathima-sithara/media-catalog/internal/utils"
	"github.com/gofiber/fiber/v2"
)

// JWTMiddleware verifies the bearer token and stores the caller's identity in
// the request locals.
func JWTMiddleware(jwtMgr *utils.JWTManager) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return utils.JSONError(c, fiber.StatusUnauthorized, "missing authorization header")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return utils.JSONError(c, fiber.StatusUnauthorized, "invalid authorization header")
		}

		claims, err := jwtMgr.GetClaims(parts[1])
		if err != nil {
			return utils.JSONError(c, fiber.StatusUnauthorized, "invalid token")
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("user_email", claims.Email)
		return c.Next()
	}
}
