package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillbridge/backend/handlers"
	"github.com/skillbridge/backend/middleware"
	"github.com/skillbridge/backend/models"
)

func PaymentRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	payments := api.Group("/payments",
		middleware.Protected(),
		middleware.VerifiedEmailRequired(),
		middleware.RoleRequired(models.RoleStudent),
	)
	payments.Get("/account-details", handlers.GetPaymentAccountDetails)
	payments.Post("", handlers.SubmitPayment)
}
