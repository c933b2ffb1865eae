package services

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/skillbridge/backend/database"
	"github.com/skillbridge/backend/models"
	"github.com/skillbridge/backend/utils"
	"gorm.io/gorm"
)

func tutorProfileForUser(userID uuid.UUID) (*models.TutorProfile, error) {
	var profile models.TutorProfile
	if err := database.DB.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError("Tutor profile not found", 404, "NOT_FOUND")
		}
		return nil, err
	}
	return &profile, nil
}

// CreateWeeklyAvailability adds a recurring window to the tutor's weekly
// template. Active entries for the same weekday must not overlap; the check
// runs inside the insert transaction.
func CreateWeeklyAvailability(tutorUserID uuid.UUID, dayOfWeek, startTime, endTime string) (*models.WeeklyAvailability, error) {
	profile, err := tutorProfileForUser(tutorUserID)
	if err != nil {
		return nil, err
	}

	minutes, err := utils.MinutesBetween(startTime, endTime)
	if err != nil {
		return nil, utils.NewAppError(err.Error(), 400, "VALIDATION_ERROR")
	}
	if minutes <= 0 {
		return nil, utils.NewAppError("End time must be after start time", 400, "INVALID_TIME")
	}

	var entry models.WeeklyAvailability
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var existing []models.WeeklyAvailability
		if err := tx.
			Where("tutor_profile_id = ? AND day_of_week = ? AND is_active = ?", profile.ID, dayOfWeek, true).
			Find(&existing).Error; err != nil {
			return err
		}
		for _, e := range existing {
			// [start,end) interval overlap on HH:mm strings
			if startTime < e.EndTime && e.StartTime < endTime {
				return utils.NewAppError("This window overlaps an existing availability slot", 400, "OVERLAPPING_SLOT")
			}
		}

		entry = models.WeeklyAvailability{
			TutorProfileID: profile.ID,
			DayOfWeek:      dayOfWeek,
			StartTime:      startTime,
			EndTime:        endTime,
			IsActive:       true,
		}
		return tx.Create(&entry).Error
	})
	if err != nil {
		return nil, err
	}

	return &entry, nil
}

func DeleteWeeklyAvailability(tutorUserID, slotID uuid.UUID) error {
	profile, err := tutorProfileForUser(tutorUserID)
	if err != nil {
		return err
	}

	result := database.DB.
		Where("id = ? AND tutor_profile_id = ?", slotID, profile.ID).
		Delete(&models.WeeklyAvailability{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return utils.NewAppError("Availability slot not found", 404, "NOT_FOUND")
	}
	return nil
}

// CreateException blocks an entire calendar date for the tutor. The date must
// not be in the past, must not already carry an exception, and must not have a
// booked session.
func CreateException(tutorUserID uuid.UUID, date string, reason *string) (*models.AvailabilityException, error) {
	profile, err := tutorProfileForUser(tutorUserID)
	if err != nil {
		return nil, err
	}

	parsed, err := utils.ParseDate(date)
	if err != nil {
		return nil, utils.NewAppError(err.Error(), 400, "VALIDATION_ERROR")
	}
	now := nowFunc()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if parsed.Before(today) {
		return nil, utils.NewAppError("Cannot create an exception for a past date", 400, "INVALID_DATE")
	}

	var exception models.AvailabilityException
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.AvailabilityException{}).
			Where("tutor_profile_id = ? AND date = ?", profile.ID, date).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return utils.NewAppError("An exception already exists for this date", 400, "DUPLICATE_EXCEPTION")
		}

		if err := tx.Model(&models.AvailabilitySlot{}).
			Where("tutor_profile_id = ? AND date = ? AND is_booked = ?", profile.ID, date, true).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return utils.NewAppError("This date already has a booked session", 400, "SLOT_BOOKED")
		}

		exception = models.AvailabilityException{
			TutorProfileID: profile.ID,
			Date:           date,
			Reason:         reason,
		}
		if err := tx.Create(&exception).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return utils.NewAppError("An exception already exists for this date", 400, "DUPLICATE_EXCEPTION")
			}
			return err
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &exception, nil
}
