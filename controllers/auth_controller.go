package controller

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"mailprobe/models"
	"mailprobe/utils"
)

type AuthController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewAuthController(db *gorm.DB, logger *log.Logger) *AuthController {
	return &AuthController{
		DB:     db,
		Logger: logger,
	}
}

// IssueToken exchanges an API key for a short-lived access token.
func (ac *AuthController) IssueToken(c *fiber.Ctx) error {
	var request struct {
		APIKey string `json:"api_key" validate:"required"`
	}

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request format",
		})
	}
	if err := utils.ValidateStruct(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	var client models.APIClient
	if err := ac.DB.Where("api_key = ? AND is_active = ?", request.APIKey, true).
		First(&client).Error; err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid API key",
		})
	}

	token, err := utils.GenerateJWTToken(&client)
	if err != nil {
		ac.Logger.Printf("Failed to issue token for client %d: %v", client.ID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to issue token",
		})
	}

	now := time.Now()
	if err := ac.DB.Model(&client).Update("last_used_at", now).Error; err != nil {
		ac.Logger.Printf("Failed to update client %d last use: %v", client.ID, err)
	}

	return c.JSON(fiber.Map{
		"access_token": token,
		"token_type":   "Bearer",
		"expires_in":   3600,
	})
}
