package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// WeeklyAvailability is a tutor-declared recurring window for one day of the
// week. It is a template only; nothing is bookable until a concrete
// AvailabilitySlot is claimed for a specific date.
type WeeklyAvailability struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TutorProfileID uuid.UUID `gorm:"type:uuid;not null;index" json:"tutor_profile_id"`
	DayOfWeek      string    `gorm:"size:10;not null" json:"day_of_week"`
	StartTime      string    `gorm:"size:5;not null" json:"start_time"`
	EndTime        string    `gorm:"size:5;not null" json:"end_time"`
	IsActive       bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w *WeeklyAvailability) BeforeCreate(tx *gorm.DB) error {
	if w.ID == uuid.Nil {
		w.ID = uuid.New()
	}
	return nil
}
