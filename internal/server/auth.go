package server

import (
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// bearerPrefix is matched case-sensitively; "bearer x" is rejected.
const bearerPrefix = "Bearer "

// Authorize compares a presented token against the configured one in
// constant time. An empty value on either side never authorizes.
func Authorize(provided, configured string) bool {
	if provided == "" || configured == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(provided), []byte(configured)) == 1
}

// AuthMiddleware enforces bearer-token auth on every route except the root
// banner and the health probe. Failure responses carry no container data.
func AuthMiddleware(token string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Path() == "/" || c.Path() == "/health" {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return unauthorized(c, "Authorization header required")
		}

		if !strings.HasPrefix(header, bearerPrefix) {
			return unauthorized(c, "Invalid authorization header format")
		}

		if !Authorize(strings.TrimPrefix(header, bearerPrefix), token) {
			return unauthorized(c, "Invalid token")
		}

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
}
