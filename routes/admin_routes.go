package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillbridge/backend/handlers"
	"github.com/skillbridge/backend/middleware"
	"github.com/skillbridge/backend/models"
)

func AdminRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin",
		middleware.Protected(),
		middleware.VerifiedEmailRequired(),
		middleware.RoleRequired(models.RoleAdmin),
	)

	users := admin.Group("/users")
	users.Get("", handlers.GetAllUsers)
	users.Patch("/ban/:id", handlers.BanUserAccount)

	payments := admin.Group("/payments")
	payments.Get("", handlers.GetAllPayments)
	payments.Patch("/verify/:id", handlers.VerifyPayment)

	accounts := admin.Group("/payment-accounts")
	accounts.Get("", handlers.ListPaymentAccounts)
	accounts.Post("", handlers.CreatePaymentAccount)
}
