package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/skillbridge/backend/handlers"
	"github.com/skillbridge/backend/middleware"
	"github.com/skillbridge/backend/models"
)

func TutorRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	tutors := api.Group("/tutors")

	// fixed paths before the :id wildcard
	tutors.Get("/available-slots", handlers.GetAvailableSlots)

	tutorOnly := []fiber.Handler{
		middleware.Protected(),
		middleware.VerifiedEmailRequired(),
		middleware.RoleRequired(models.RoleTutor),
	}
	tutors.Get("/sessions", append(tutorOnly, handlers.GetTutorSessions)...)
	tutors.Patch("/sessions/:bookingId", append(tutorOnly, handlers.MarkSessionCompleted)...)
	tutors.Post("/available-slot", append(tutorOnly, handlers.CreateWeeklyAvailabilitySlot)...)
	tutors.Delete("/available-slot/:id", append(tutorOnly, handlers.DeleteWeeklyAvailabilitySlot)...)
	tutors.Post("/exception", append(tutorOnly, handlers.CreateTutorException)...)
	tutors.Put("", append(tutorOnly, handlers.UpdateTutorProfile)...)
	tutors.Post("/categories", append(tutorOnly, handlers.SetTutorCategories)...)

	tutors.Get("", handlers.ListTutors)
	tutors.Get("/:id", handlers.GetTutorByID)
}
