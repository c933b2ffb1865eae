package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AvailabilitySlot is the materialized, date-specific instance of a weekly
// template window. Rows are created lazily on the first booking attempt; the
// composite unique index is the storage-level guard against double booking.
type AvailabilitySlot struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TutorProfileID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tutor_slot_window" json:"tutor_profile_id"`
	Date           string    `gorm:"size:10;not null;uniqueIndex:idx_tutor_slot_window" json:"date"`
	StartTime      string    `gorm:"size:5;not null;uniqueIndex:idx_tutor_slot_window" json:"start_time"`
	EndTime        string    `gorm:"size:5;not null;uniqueIndex:idx_tutor_slot_window" json:"end_time"`
	IsBooked       bool      `gorm:"default:false" json:"is_booked"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (s *AvailabilitySlot) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
