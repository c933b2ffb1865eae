package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillbridge/backend/handlers"
	"github.com/skillbridge/backend/middleware"
	"github.com/skillbridge/backend/models"
)

func CategoryRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	categories := api.Group("/categories")
	categories.Get("", handlers.ListCategories)
	categories.Post("",
		middleware.Protected(),
		middleware.VerifiedEmailRequired(),
		middleware.RoleRequired(models.RoleAdmin),
		handlers.CreateCategory,
	)
}
