package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/skillbridge/backend/services"
)

type SubmitPaymentRequest struct {
	BookingID     string `json:"bookingId" validate:"required,uuid"`
	PaymentMethod string `json:"paymentMethod" validate:"required,oneof=BKASH NAGAD ROCKET"`
	TransactionID string `json:"transactionId" validate:"required,min=6"`
}

func SubmitPayment(c *fiber.Ctx) error {
	studentID := authUserID(c)

	var req SubmitPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	bookingID, _ := uuid.Parse(req.BookingID)

	payment, err := services.SubmitPayment(studentID, bookingID, req.PaymentMethod, req.TransactionID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Payment details submitted successfully", "data": payment})
}

// GetPaymentAccountDetails returns the active platform wallet a student
// should send the manual payment to.
func GetPaymentAccountDetails(c *fiber.Ctx) error {
	account, err := services.GetActivePaymentAccount()
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payment account fetched successfully",
		"data": fiber.Map{
			"method":         account.Method,
			"account_number": account.AccountNumber,
		},
	})
}
