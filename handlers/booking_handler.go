package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/skillbridge/backend/services"
)

type CreateBookingRequest struct {
	TutorProfileID string `json:"tutorProfileId" validate:"required,uuid"`
	Date           string `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime      string `json:"startTime" validate:"required,datetime=15:04"`
	EndTime        string `json:"endTime" validate:"required,datetime=15:04"`
}

func CreateBooking(c *fiber.Ctx) error {
	studentID := authUserID(c)

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}
	tutorProfileID, _ := uuid.Parse(req.TutorProfileID)

	booking, err := services.CreateBooking(studentID, tutorProfileID, req.Date, req.StartTime, req.EndTime)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Booking created successfully", "data": booking})
}

func CancelBooking(c *fiber.Ctx) error {
	studentID := authUserID(c)

	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	booking, err := services.CancelBooking(studentID, bookingID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Booking status updated successfully", "data": booking})
}

func GetMyBookings(c *fiber.Ctx) error {
	studentID := authUserID(c)

	bookings, err := services.GetBookingsByStudent(studentID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Bookings fetched successfully", "data": bookings})
}
