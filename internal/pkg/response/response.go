package response

import (
	"github.com/gofiber/fiber/v2"
)

// Error sends a JSON error with the legacy wire shape: a bare message field.
func Error(c *fiber.Ctx, message string, statusCode int) error {
	return c.Status(statusCode).JSON(fiber.Map{"message": message})
}

// GatewayError sends a 5xx with the upstream error text in a distinct field,
// matching how payment-gateway failures are reported to clients.
func GatewayError(c *fiber.Ctx, message string, statusCode int, upstream error) error {
	detail := "Unknown error"
	if upstream != nil {
		detail = upstream.Error()
	}
	return c.Status(statusCode).JSON(fiber.Map{"message": message, "error": detail})
}

// Unauthorized sends 401 for missing/invalid credentials.
func Unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Authentication failed"})
}
