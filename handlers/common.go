package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/skillbridge/backend/utils"
)

var validate = validator.New()

func authUserID(c *fiber.Ctx) uuid.UUID {
	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, _ := uuid.Parse(claims["user_id"].(string))
	return userID
}

// serviceError maps a domain error to its HTTP status and stable code.
// Storage-layer internals never leak to the caller.
func serviceError(c *fiber.Ctx, err error) error {
	if appErr, ok := utils.AsAppError(err); ok {
		return c.Status(appErr.StatusCode).JSON(fiber.Map{
			"success": false,
			"code":    appErr.Code,
			"message": appErr.Message,
		})
	}

	log.Printf("🔥 Unexpected error: %v | Path: %s", err, c.Path())
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"success": false,
		"code":    "INTERNAL_SERVER_ERROR",
		"message": "An unexpected error occurred.",
	})
}
