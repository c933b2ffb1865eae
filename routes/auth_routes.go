package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillbridge/backend/handlers"
	"github.com/skillbridge/backend/middleware"
)

func AuthRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/register", handlers.RegisterUser)
	auth.Post("/login", handlers.LoginUser)
	auth.Get("/verify-email/:token", handlers.VerifyEmail)

	me := auth.Group("/me", middleware.Protected(), middleware.VerifiedEmailRequired())
	me.Get("", handlers.GetMyProfile)
	me.Patch("", handlers.UpdateMyProfile)
}
