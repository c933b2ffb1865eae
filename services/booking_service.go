package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/skillbridge/backend/database"
	"github.com/skillbridge/backend/models"
	"github.com/skillbridge/backend/utils"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// CreateBooking validates the requested window against the tutor's weekly
// template and exceptions, derives the price from the hourly rate, and claims
// the concrete slot atomically. The transaction (backed by the slot table's
// composite unique index) is the sole serialization point preventing two
// concurrent requests from double-booking the same window.
func CreateBooking(studentID, tutorProfileID uuid.UUID, date, startTime, endTime string) (*models.Booking, error) {
	parsedDate, err := utils.ParseDate(date)
	if err != nil {
		return nil, utils.NewAppError(err.Error(), 400, "VALIDATION_ERROR")
	}
	dayOfWeek := parsedDate.Weekday().String()

	var (
		profile   models.TutorProfile
		templates []models.WeeklyAvailability
		exception *models.AvailabilityException
	)
	g := new(errgroup.Group)
	g.Go(func() error {
		if err := database.DB.First(&profile, "id = ?", tutorProfileID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewAppError("Tutor not found", 404, "NOT_FOUND")
			}
			return err
		}
		return nil
	})
	g.Go(func() error {
		return database.DB.
			Where("tutor_profile_id = ? AND day_of_week = ? AND is_active = ?", tutorProfileID, dayOfWeek, true).
			Find(&templates).Error
	})
	g.Go(func() error {
		var exc models.AvailabilityException
		err := database.DB.
			Where("tutor_profile_id = ? AND date = ?", tutorProfileID, date).
			First(&exc).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil
			}
			return err
		}
		exception = &exc
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	// the requested window must be one the tutor declared, not an arbitrary
	// sub-range of it
	matched := false
	for _, entry := range templates {
		if entry.StartTime == startTime && entry.EndTime == endTime {
			matched = true
			break
		}
	}
	if !matched {
		return nil, utils.NewAppError("This slot is not in the tutor's availability", 400, "INVALID_SLOT")
	}

	if exception != nil {
		return nil, utils.NewAppError("The tutor is not available on this date", 400, "TUTOR_OFF_DAY")
	}

	minutes, err := utils.MinutesBetween(startTime, endTime)
	if err != nil {
		return nil, utils.NewAppError(err.Error(), 400, "VALIDATION_ERROR")
	}
	if minutes <= 0 {
		return nil, utils.NewAppError("End time must be after start time", 400, "INVALID_TIME")
	}

	price := utils.SessionPrice(profile.HourlyRate, minutes)

	var booking models.Booking
	err = database.DB.Transaction(func(tx *gorm.DB) error {
		var slot models.AvailabilitySlot
		err := tx.
			Where("tutor_profile_id = ? AND date = ? AND start_time = ? AND end_time = ?",
				tutorProfileID, date, startTime, endTime).
			First(&slot).Error
		switch {
		case err == nil:
			if slot.IsBooked {
				return utils.NewAppError("This slot has already been booked", 409, "SLOT_TAKEN")
			}
			if err := tx.Model(&slot).Update("is_booked", true).Error; err != nil {
				return err
			}
		case errors.Is(err, gorm.ErrRecordNotFound):
			slot = models.AvailabilitySlot{
				TutorProfileID: tutorProfileID,
				Date:           date,
				StartTime:      startTime,
				EndTime:        endTime,
				IsBooked:       true,
			}
			if err := tx.Create(&slot).Error; err != nil {
				// a concurrent request claimed the same window first
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return utils.NewAppError("This slot has already been booked", 409, "SLOT_TAKEN")
				}
				return err
			}
		default:
			return err
		}

		booking = models.Booking{
			StudentID:          studentID,
			TutorProfileID:     tutorProfileID,
			AvailabilitySlotID: slot.ID,
			Price:              price,
			Status:             models.BookingPending,
		}
		return tx.Create(&booking).Error
	})
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

// CancelBooking lets the owning student cancel a still-pending booking and
// releases the claimed slot in the same transaction.
func CancelBooking(studentID, bookingID uuid.UUID) (*models.Booking, error) {
	var booking models.Booking
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&booking, "id = ?", bookingID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.NewAppError("Booking not found", 404, "NOT_FOUND")
			}
			return err
		}
		if booking.StudentID != studentID {
			return utils.NewAppError("You can only cancel your own bookings", 403, "FORBIDDEN")
		}
		if booking.Status == models.BookingCancelled {
			return utils.NewAppError("This booking is already cancelled", 400, "ALREADY_CANCELLED")
		}
		if booking.Status == models.BookingConfirmed {
			return utils.NewAppError("Confirmed bookings cannot be cancelled. Please contact support.", 400, "ALREADY_CONFIRMED")
		}
		if booking.Status == models.BookingCompleted {
			return utils.NewAppError("Completed sessions cannot be cancelled", 400, "ALREADY_COMPLETED")
		}

		var paymentCount int64
		if err := tx.Model(&models.Payment{}).
			Where("booking_id = ? AND status IN ?", bookingID, []string{models.PaymentPending, models.PaymentSuccess}).
			Count(&paymentCount).Error; err != nil {
			return err
		}
		if paymentCount > 0 {
			return utils.NewAppError("A payment has been submitted for this booking. Please contact support.", 400, "PAYMENT_EXISTS")
		}

		booking.Status = models.BookingCancelled
		if err := tx.Save(&booking).Error; err != nil {
			return err
		}
		return tx.Model(&models.AvailabilitySlot{}).
			Where("id = ?", booking.AvailabilitySlotID).
			Update("is_booked", false).Error
	})
	if err != nil {
		return nil, err
	}

	return &booking, nil
}

// MarkSessionCompleted transitions a confirmed booking to COMPLETED. Only the
// owning tutor may do this, and only from CONFIRMED.
func MarkSessionCompleted(tutorUserID, bookingID uuid.UUID) (*models.Booking, error) {
	var profile models.TutorProfile
	if err := database.DB.First(&profile, "user_id = ?", tutorUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError("Tutor profile not found", 404, "NOT_FOUND")
		}
		return nil, err
	}

	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError("Booking not found", 404, "NOT_FOUND")
		}
		return nil, err
	}
	if booking.TutorProfileID != profile.ID {
		return nil, utils.NewAppError("You are not the tutor for this session", 403, "FORBIDDEN")
	}
	if booking.Status != models.BookingConfirmed {
		return nil, utils.NewAppError("Only confirmed sessions can be marked as completed", 400, "INVALID_STATUS")
	}

	booking.Status = models.BookingCompleted
	if err := database.DB.Save(&booking).Error; err != nil {
		return nil, err
	}
	return &booking, nil
}

func GetBookingsByStudent(studentID uuid.UUID) ([]models.Booking, error) {
	var bookings []models.Booking
	err := database.DB.
		Preload("TutorProfile.User").
		Preload("AvailabilitySlot").
		Where("student_id = ?", studentID).
		Order("created_at desc").
		Find(&bookings).Error
	return bookings, err
}

func GetSessionsByTutor(tutorUserID uuid.UUID) ([]models.Booking, error) {
	var profile models.TutorProfile
	if err := database.DB.First(&profile, "user_id = ?", tutorUserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError("Tutor profile not found", 404, "NOT_FOUND")
		}
		return nil, err
	}

	var bookings []models.Booking
	err := database.DB.
		Preload("Student").
		Preload("AvailabilitySlot").
		Where("tutor_profile_id = ?", profile.ID).
		Order("created_at desc").
		Find(&bookings).Error
	return bookings, err
}
