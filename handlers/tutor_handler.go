package handlers

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/skillbridge/backend/database"
	"github.com/skillbridge/backend/models"
	"github.com/skillbridge/backend/services"
)

// GetAvailableSlots resolves the bookable windows for a tutor over the fixed
// 3-day window starting at startDate (defaults to today).
func GetAvailableSlots(c *fiber.Ctx) error {
	tutorProfileID, err := uuid.Parse(c.Query("tutorProfileId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tutor profile ID"})
	}

	slots, err := services.ResolveAvailableSlots(tutorProfileID, c.Query("startDate"))
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Available slots fetched successfully", "data": slots})
}

func ListTutors(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}

	sortBy := c.Query("sortBy", "created_at")
	switch sortBy {
	case "hourly_rate", "rating", "created_at":
	default:
		sortBy = "created_at"
	}
	sortOrder := c.Query("sortOrder", "asc")
	if sortOrder != "desc" {
		sortOrder = "asc"
	}

	query := database.DB.Model(&models.TutorProfile{}).
		Select("tutor_profiles.*").
		Joins("JOIN users ON users.id = tutor_profiles.user_id").
		Where("users.is_active = ?", true)

	if searchTerm := c.Query("searchTerm"); searchTerm != "" {
		pattern := "%" + strings.ToLower(searchTerm) + "%"
		query = query.Where("lower(users.name) LIKE ? OR lower(tutor_profiles.title) LIKE ?", pattern, pattern)
	}
	if categories := c.Query("categories"); categories != "" {
		names := strings.Split(categories, ",")
		query = query.
			Joins("JOIN tutor_categories ON tutor_categories.tutor_profile_id = tutor_profiles.id").
			Joins("JOIN categories ON categories.id = tutor_categories.category_id").
			Where("categories.name IN ?", names).
			Distinct("tutor_profiles.*")
	}
	if minPrice := c.Query("minPrice"); minPrice != "" {
		if v, err := strconv.ParseFloat(minPrice, 64); err == nil {
			query = query.Where("tutor_profiles.hourly_rate >= ?", v)
		}
	}
	if maxPrice := c.Query("maxPrice"); maxPrice != "" {
		if v, err := strconv.ParseFloat(maxPrice, 64); err == nil {
			query = query.Where("tutor_profiles.hourly_rate <= ?", v)
		}
	}
	if minRating := c.Query("minRating"); minRating != "" {
		if v, err := strconv.ParseFloat(minRating, 64); err == nil {
			query = query.Where("tutor_profiles.rating >= ?", v)
		}
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	var tutors []models.TutorProfile
	if err := query.
		Preload("User").
		Preload("Categories").
		Order("tutor_profiles." + sortBy + " " + sortOrder).
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&tutors).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Tutors fetched successfully",
		"data":    tutors,
		"pagination": fiber.Map{
			"total":      total,
			"page":       page,
			"limit":      limit,
			"totalPages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

func GetTutorByID(c *fiber.Ctx) error {
	tutorProfileID := c.Params("id")

	var tutor models.TutorProfile
	if err := database.DB.
		Preload("User").
		Preload("Categories").
		First(&tutor, "id = ?", tutorProfileID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor not found"})
	}

	var reviews []models.Review
	database.DB.Preload("Student").
		Where("tutor_profile_id = ?", tutor.ID).
		Order("created_at desc").
		Limit(20).
		Find(&reviews)

	var weekly []models.WeeklyAvailability
	database.DB.
		Where("tutor_profile_id = ? AND is_active = ?", tutor.ID, true).
		Find(&weekly)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Tutor fetched successfully",
		"data": fiber.Map{
			"tutor":        tutor,
			"reviews":      reviews,
			"availability": weekly,
		},
	})
}

type UpdateTutorRequest struct {
	Name        *string  `json:"name" validate:"omitempty,min=3"`
	PhoneNumber *string  `json:"phone_number"`
	Title       *string  `json:"title" validate:"omitempty,min=5"`
	Bio         *string  `json:"bio" validate:"omitempty,min=20"`
	HourlyRate  *float64 `json:"hourly_rate" validate:"omitempty,gt=0"`
	Experience  *string  `json:"experience"`
}

func UpdateTutorProfile(c *fiber.Ctx) error {
	userID := authUserID(c)

	var req UpdateTutorRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var profile models.TutorProfile
	if err := database.DB.Preload("User").First(&profile, "user_id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor profile not found"})
	}

	if req.Title != nil {
		profile.Title = req.Title
	}
	if req.Bio != nil {
		profile.Bio = req.Bio
	}
	if req.HourlyRate != nil {
		profile.HourlyRate = *req.HourlyRate
	}
	if req.Experience != nil {
		profile.Experience = req.Experience
	}
	if err := database.DB.Save(&profile).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update tutor profile"})
	}

	if req.Name != nil || req.PhoneNumber != nil {
		if req.Name != nil {
			profile.User.Name = *req.Name
		}
		if req.PhoneNumber != nil {
			profile.User.PhoneNumber = req.PhoneNumber
		}
		database.DB.Save(&profile.User)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Update Tutor successfully", "data": profile})
}

type SetCategoriesRequest struct {
	CategoryID []string `json:"category_id" validate:"required,min=1,dive,uuid"`
}

func SetTutorCategories(c *fiber.Ctx) error {
	userID := authUserID(c)

	var req SetCategoriesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	var profile models.TutorProfile
	if err := database.DB.First(&profile, "user_id = ?", userID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Tutor profile not found"})
	}

	var categories []*models.Category
	if err := database.DB.Where("id IN ?", req.CategoryID).Find(&categories).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}
	if len(categories) != len(req.CategoryID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "One or more categories not found"})
	}

	if err := database.DB.Model(&profile).Association("Categories").Replace(categories); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to set categories"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "Categories updated successfully"})
}

func GetTutorSessions(c *fiber.Ctx) error {
	userID := authUserID(c)

	sessions, err := services.GetSessionsByTutor(userID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Tutor session fetched successfully", "data": sessions})
}

func MarkSessionCompleted(c *fiber.Ctx) error {
	userID := authUserID(c)

	bookingID, err := uuid.Parse(c.Params("bookingId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	booking, err := services.MarkSessionCompleted(userID, bookingID)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Session status updated successfully", "data": booking})
}

type CreateWeeklyAvailabilityRequest struct {
	DayOfWeek string `json:"day_of_week" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
}

func CreateWeeklyAvailabilitySlot(c *fiber.Ctx) error {
	userID := authUserID(c)

	var req CreateWeeklyAvailabilityRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	entry, err := services.CreateWeeklyAvailability(userID, req.DayOfWeek, req.StartTime, req.EndTime)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Tutor available slot created successfully", "data": entry})
}

func DeleteWeeklyAvailabilitySlot(c *fiber.Ctx) error {
	userID := authUserID(c)

	slotID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid slot ID"})
	}

	if err := services.DeleteWeeklyAvailability(userID, slotID); err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Tutor available slot deleted successfully"})
}

type CreateExceptionRequest struct {
	Date   string  `json:"date" validate:"required,datetime=2006-01-02"`
	Reason *string `json:"reason" validate:"omitempty,min=5"`
}

func CreateTutorException(c *fiber.Ctx) error {
	userID := authUserID(c)

	var req CreateExceptionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	exception, err := services.CreateException(userID, req.Date, req.Reason)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Tutor exception created successfully", "data": exception})
}
