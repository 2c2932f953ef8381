package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
)

// CORS allows exactly one frontend origin, matching the Express
// cors({ origin: 'http://localhost:3001' }) setup. Other origins get 403.
func CORS(allowedOrigin string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		origin := c.Get("Origin")
		// No origin (same-origin requests, curl, tests): allow
		if origin == "" {
			return c.Next()
		}
		if strings.EqualFold(origin, allowedOrigin) {
			setCORSHeaders(c, origin)
			if c.Method() == fiber.MethodOptions {
				return c.SendStatus(fiber.StatusNoContent)
			}
			return c.Next()
		}
		return c.Status(fiber.StatusForbidden).SendString("Not allowed by CORS")
	}
}

func setCORSHeaders(c *fiber.Ctx, origin string) {
	c.Set("Access-Control-Allow-Origin", origin)
	c.Set("Access-Control-Allow-Methods", "GET, POST, PATCH, OPTIONS")
	c.Set("Access-Control-Allow-Headers", "Content-Type")
}
