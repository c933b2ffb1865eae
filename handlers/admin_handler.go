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

func paginationParams(c *fiber.Ctx) (page, limit int) {
	page, _ = strconv.Atoi(c.Query("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.Query("limit", "10"))
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}

func GetAllUsers(c *fiber.Ctx) error {
	page, limit := paginationParams(c)

	// admin accounts never appear in the directory
	query := database.DB.Model(&models.User{}).Where("role <> ?", models.RoleAdmin)

	if searchTerm := c.Query("searchTerm"); searchTerm != "" {
		pattern := "%" + strings.ToLower(searchTerm) + "%"
		query = query.Where("lower(name) LIKE ? OR lower(email) LIKE ?", pattern, pattern)
	}
	if role := c.Query("role"); role == models.RoleStudent || role == models.RoleTutor {
		query = query.Where("role = ?", role)
	}
	if isActive := c.Query("isActive"); isActive != "" {
		query = query.Where("is_active = ?", isActive == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	var users []models.User
	if err := query.
		Order("created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&users).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Users fetched successfully",
		"data":    users,
		"pagination": fiber.Map{
			"total":      total,
			"page":       page,
			"limit":      limit,
			"totalPages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

type BanUserRequest struct {
	IsActive *bool `json:"is_active" validate:"required"`
}

func BanUserAccount(c *fiber.Ctx) error {
	adminID := authUserID(c)

	targetUserID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid user ID"})
	}

	var req BanUserRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	if adminID == targetUserID {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"success": false, "code": "SELF_BAN_ERROR", "message": "You cannot ban your own account!"})
	}

	var user models.User
	if err := database.DB.First(&user, "id = ?", targetUserID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "User not found"})
	}

	user.IsActive = *req.IsActive
	if err := database.DB.Save(&user).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to update user"})
	}

	return c.JSON(fiber.Map{"success": true, "message": "User status updated successfully", "data": user})
}

func GetAllPayments(c *fiber.Ctx) error {
	page, limit := paginationParams(c)

	query := database.DB.Model(&models.Payment{}).
		Select("payments.*").
		Joins("JOIN users ON users.id = payments.student_id")

	if searchTerm := c.Query("searchTerm"); searchTerm != "" {
		pattern := "%" + strings.ToLower(searchTerm) + "%"
		query = query.Where("lower(payments.transaction_id) LIKE ? OR lower(users.email) LIKE ?", pattern, pattern)
	}
	if method := c.Query("paymentMethod"); method != "" {
		query = query.Where("payments.payment_method = ?", method)
	}
	if status := c.Query("status"); status != "" {
		query = query.Where("payments.status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	var payments []models.Payment
	if err := query.
		Preload("Student").
		Preload("Booking").
		Order("payments.created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&payments).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payments fetched successfully",
		"data":    payments,
		"pagination": fiber.Map{
			"total":      total,
			"page":       page,
			"limit":      limit,
			"totalPages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}

type VerifyPaymentRequest struct {
	Status string `json:"status" validate:"required,oneof=SUCCESS FAILED"`
}

func VerifyPayment(c *fiber.Ctx) error {
	paymentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid payment ID"})
	}

	var req VerifyPaymentRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	payment, err := services.VerifyPaymentTransaction(paymentID, req.Status)
	if err != nil {
		return serviceError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "message": "Payment verified successfully", "data": payment})
}

type CreatePaymentAccountRequest struct {
	Method        string `json:"method" validate:"required,oneof=BKASH NAGAD ROCKET"`
	AccountNumber string `json:"account_number" validate:"required,min=11,max=15"`
}

func CreatePaymentAccount(c *fiber.Ctx) error {
	var req CreatePaymentAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	account, err := services.CreatePaymentAccount(req.Method, req.AccountNumber)
	if err != nil {
		return serviceError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "message": "Payment account created successfully", "data": account})
}

func ListPaymentAccounts(c *fiber.Ctx) error {
	page, limit := paginationParams(c)

	query := database.DB.Model(&models.PlatformPaymentAccount{})

	if searchTerm := c.Query("searchTerm"); searchTerm != "" {
		query = query.Where("account_number LIKE ?", "%"+searchTerm+"%")
	}
	if method := c.Query("method"); method != "" {
		query = query.Where("method = ?", method)
	}
	if isActive := c.Query("isActive"); isActive != "" {
		query = query.Where("is_active = ?", isActive == "true")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	var accounts []models.PlatformPaymentAccount
	if err := query.
		Order("created_at desc").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&accounts).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Database error"})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Payment accounts fetched successfully",
		"data":    accounts,
		"pagination": fiber.Map{
			"total":      total,
			"page":       page,
			"limit":      limit,
			"totalPages": (total + int64(limit) - 1) / int64(limit),
		},
	})
}
