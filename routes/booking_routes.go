package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillbridge/backend/handlers"
	"github.com/skillbridge/backend/middleware"
	"github.com/skillbridge/backend/models"
)

func BookingRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	bookings := api.Group("/bookings",
		middleware.Protected(),
		middleware.VerifiedEmailRequired(),
		middleware.RoleRequired(models.RoleStudent),
	)
	bookings.Get("/me", handlers.GetMyBookings)
	bookings.Post("", handlers.CreateBooking)
	bookings.Patch("/:id", handlers.CancelBooking)
}
