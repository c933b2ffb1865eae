package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Review struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	BookingID      uuid.UUID `gorm:"type:uuid;not null;unique" json:"booking_id"`
	StudentID      uuid.UUID `gorm:"type:uuid;not null" json:"student_id"`
	TutorProfileID uuid.UUID `gorm:"type:uuid;not null;index" json:"tutor_profile_id"`
	Rating         int       `gorm:"not null" json:"rating"`
	Comment        *string   `gorm:"type:text" json:"comment"`

	Booking Booking `gorm:"foreignkey:BookingID" json:"booking,omitempty"`
	Student User    `gorm:"foreignkey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
