package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"mailprobe/config"
	"mailprobe/models"
	"mailprobe/utils"
)

// Protected requires a valid client access token and loads the API client
// into the request context.
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Authorization required",
			})
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid authorization format",
			})
		}

		claims, err := utils.ParseJWTToken(tokenParts[1])
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Invalid or expired token",
			})
		}

		var client models.APIClient
		if err := config.DB.First(&client, claims.ClientID).Error; err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Client not found",
			})
		}
		if !client.IsActive {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "Client is disabled",
			})
		}

		c.Locals("client", &client)
		return c.Next()
	}
}
