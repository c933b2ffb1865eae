package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PlatformPaymentAccount is a wallet account owned by the platform that
// students send manual payments to.
type PlatformPaymentAccount struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Method        string    `gorm:"size:20;not null" json:"method"`
	AccountNumber string    `gorm:"size:20;not null" json:"account_number"`
	IsActive      bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a *PlatformPaymentAccount) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
