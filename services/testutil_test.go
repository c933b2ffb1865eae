package services

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/skillbridge/backend/database"
	"github.com/skillbridge/backend/models"
	"github.com/skillbridge/backend/utils"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.TutorProfile{},
		&models.Category{},
		&models.WeeklyAvailability{},
		&models.AvailabilityException{},
		&models.AvailabilitySlot{},
		&models.Booking{},
		&models.Payment{},
		&models.PlatformPaymentAccount{},
		&models.Review{},
	))

	database.DB = db

	// keep background receipt uploads away from the test database
	prevReceipt := generateReceipt
	generateReceipt = func(models.Payment) {}
	t.Cleanup(func() { generateReceipt = prevReceipt })
}

func freezeTime(t *testing.T, at time.Time) {
	t.Helper()
	prev := nowFunc
	nowFunc = func() time.Time { return at }
	t.Cleanup(func() { nowFunc = prev })
}

func createStudent(t *testing.T, email string) models.User {
	t.Helper()
	user := models.User{
		Name:          "Test Student",
		Email:         email,
		Password:      "hashed",
		Role:          models.RoleStudent,
		IsActive:      true,
		EmailVerified: true,
	}
	require.NoError(t, database.DB.Create(&user).Error)
	return user
}

func createTutor(t *testing.T, email string, hourlyRate float64) (models.User, models.TutorProfile) {
	t.Helper()
	user := models.User{
		Name:          "Test Tutor",
		Email:         email,
		Password:      "hashed",
		Role:          models.RoleTutor,
		IsActive:      true,
		EmailVerified: true,
	}
	require.NoError(t, database.DB.Create(&user).Error)

	profile := models.TutorProfile{
		UserID:     user.ID,
		HourlyRate: hourlyRate,
	}
	require.NoError(t, database.DB.Create(&profile).Error)
	return user, profile
}

func addWeekly(t *testing.T, tutorProfileID uuid.UUID, dayOfWeek, startTime, endTime string) models.WeeklyAvailability {
	t.Helper()
	entry := models.WeeklyAvailability{
		TutorProfileID: tutorProfileID,
		DayOfWeek:      dayOfWeek,
		StartTime:      startTime,
		EndTime:        endTime,
		IsActive:       true,
	}
	require.NoError(t, database.DB.Create(&entry).Error)
	return entry
}

func requireAppCode(t *testing.T, err error, code string) *utils.AppError {
	t.Helper()
	appErr, ok := utils.AsAppError(err)
	require.True(t, ok, "expected AppError, got %v", err)
	require.Equal(t, code, appErr.Code)
	return appErr
}

func addException(t *testing.T, tutorProfileID uuid.UUID, date string) {
	t.Helper()
	require.NoError(t, database.DB.Create(&models.AvailabilityException{
		TutorProfileID: tutorProfileID,
		Date:           date,
	}).Error)
}
