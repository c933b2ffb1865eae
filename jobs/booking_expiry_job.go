package jobs

import (
	"log"
	"time"

	"github.com/skillbridge/backend/database"
	"github.com/skillbridge/backend/models"
	"github.com/skillbridge/backend/utils"
	"gorm.io/gorm"
)

// ExpireStalePendingBookings cancels bookings that were never paid before
// their session date passed and releases the claimed slots, so the slot table
// stays consistent with reality.
func ExpireStalePendingBookings() {
	log.Println("Running job: ExpireStalePendingBookings...")

	today := time.Now().Format(utils.DateLayout)

	var staleBookings []models.Booking
	err := database.DB.
		Select("bookings.*").
		Joins("JOIN availability_slots ON bookings.availability_slot_id = availability_slots.id").
		Where("bookings.status = ? AND availability_slots.date < ?", models.BookingPending, today).
		Find(&staleBookings).Error
	if err != nil {
		log.Printf("Error checking for stale pending bookings: %v", err)
		return
	}

	if len(staleBookings) == 0 {
		log.Println("No stale pending bookings found.")
		return
	}

	expired := 0
	for _, booking := range staleBookings {
		err := database.DB.Transaction(func(tx *gorm.DB) error {
			if err := tx.Model(&models.Booking{}).
				Where("id = ?", booking.ID).
				Update("status", models.BookingCancelled).Error; err != nil {
				return err
			}
			return tx.Model(&models.AvailabilitySlot{}).
				Where("id = ?", booking.AvailabilitySlotID).
				Update("is_booked", false).Error
		})
		if err != nil {
			log.Printf("Error expiring booking %s: %v", booking.ID, err)
			continue
		}
		expired++
	}

	log.Printf("Cancelled %d stale pending booking(s).", expired)
}
