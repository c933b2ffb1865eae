package services

import (
	"errors"

	"github.com/google/uuid"
	"github.com/skillbridge/backend/database"
	"github.com/skillbridge/backend/models"
	"github.com/skillbridge/backend/utils"
	"gorm.io/gorm"
)

// CreateReview records a student's rating for a completed session and
// recomputes the tutor's aggregate rating in the same transaction.
func CreateReview(studentID, bookingID uuid.UUID, rating int, comment *string) (*models.Review, error) {
	var booking models.Booking
	if err := database.DB.First(&booking, "id = ?", bookingID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.NewAppError("Booking not found", 404, "NOT_FOUND")
		}
		return nil, err
	}

	if booking.StudentID != studentID {
		return nil, utils.NewAppError("You can only review your own sessions", 403, "FORBIDDEN")
	}
	if booking.Status != models.BookingCompleted {
		return nil, utils.NewAppError("Review is only allowed after completion", 400, "NOT_COMPLETED")
	}

	var review models.Review
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		var existing models.Review
		err := tx.Where("booking_id = ?", bookingID).First(&existing).Error
		if err == nil {
			return utils.NewAppError("Review already exists for this booking", 400, "ALREADY_EXISTS")
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		review = models.Review{
			BookingID:      bookingID,
			StudentID:      studentID,
			TutorProfileID: booking.TutorProfileID,
			Rating:         rating,
			Comment:        comment,
		}
		if err := tx.Create(&review).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return utils.NewAppError("Review already exists for this booking", 400, "ALREADY_EXISTS")
			}
			return err
		}

		var stats struct {
			Avg   float64
			Total int64
		}
		if err := tx.Model(&models.Review{}).
			Where("tutor_profile_id = ?", booking.TutorProfileID).
			Select("avg(rating) as avg, count(id) as total").
			Scan(&stats).Error; err != nil {
			return err
		}

		return tx.Model(&models.TutorProfile{}).
			Where("id = ?", booking.TutorProfileID).
			Updates(map[string]interface{}{
				"rating":        stats.Avg,
				"total_reviews": stats.Total,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	return &review, nil
}
