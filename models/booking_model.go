package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	BookingPending   = "PENDING"
	BookingConfirmed = "CONFIRMED"
	BookingCancelled = "CANCELLED"
	BookingCompleted = "COMPLETED"
)

type Booking struct {
	ID                 uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	StudentID          uuid.UUID `gorm:"type:uuid;not null;index" json:"student_id"`
	TutorProfileID     uuid.UUID `gorm:"type:uuid;not null;index" json:"tutor_profile_id"`
	AvailabilitySlotID uuid.UUID `gorm:"type:uuid;not null" json:"availability_slot_id"`
	Price              float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	Status             string    `gorm:"size:20;not null;default:'PENDING'" json:"status"`

	Student          User             `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	TutorProfile     TutorProfile     `gorm:"foreignkey:TutorProfileID" json:"tutor_profile,omitempty"`
	AvailabilitySlot AvailabilitySlot `gorm:"foreignkey:AvailabilitySlotID" json:"availability_slot,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (b *Booking) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
