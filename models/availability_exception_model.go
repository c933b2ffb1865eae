package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AvailabilityException blocks an entire calendar date for a tutor regardless
// of the weekly template. At most one exception per (tutor, date).
type AvailabilityException struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	TutorProfileID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_tutor_exception_date" json:"tutor_profile_id"`
	Date           string    `gorm:"size:10;not null;uniqueIndex:idx_tutor_exception_date" json:"date"`
	Reason         *string   `gorm:"size:255" json:"reason"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (e *AvailabilityException) BeforeCreate(tx *gorm.DB) error {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	return nil
}
