package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	PaymentPending = "PENDING"
	PaymentSuccess = "SUCCESS"
	PaymentFailed  = "FAILED"
)

const (
	MethodBkash  = "BKASH"
	MethodNagad  = "NAGAD"
	MethodRocket = "ROCKET"
)

// Payment records a student's manually declared wallet transaction against a
// booking. Status only changes through administrative verification.
type Payment struct {
	ID            uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	BookingID     uuid.UUID  `gorm:"type:uuid;not null;unique" json:"booking_id"`
	StudentID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"student_id"`
	PaymentMethod string     `gorm:"size:20;not null" json:"payment_method"`
	TransactionID string     `gorm:"size:255;not null;unique" json:"transaction_id"`
	Amount        float64    `gorm:"type:numeric(10,2);not null" json:"amount"`
	Status        string     `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	VerifiedAt    *time.Time `json:"verified_at"`
	ReceiptURL    *string    `gorm:"size:255" json:"receipt_url"`

	Booking Booking `gorm:"foreignkey:BookingID" json:"booking,omitempty"`
	Student User    `gorm:"foreignkey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
