package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillbridge/backend/handlers"
	"github.com/skillbridge/backend/middleware"
	"github.com/skillbridge/backend/models"
)

func ReviewRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	reviews := api.Group("/reviews",
		middleware.Protected(),
		middleware.VerifiedEmailRequired(),
		middleware.RoleRequired(models.RoleStudent),
	)
	reviews.Post("", handlers.CreateReview)
}
