package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TutorProfile struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;not null;unique" json:"user_id"`
	Title        *string   `gorm:"size:255" json:"title"`
	Bio          *string   `gorm:"type:text" json:"bio"`
	Experience   *string   `gorm:"size:255" json:"experience"`
	HourlyRate   float64   `gorm:"type:numeric(10,2);default:0.00" json:"hourly_rate"`
	Rating       float64   `gorm:"default:0" json:"rating"`
	TotalReviews int       `gorm:"default:0" json:"total_reviews"`

	Categories []*Category `gorm:"many2many:tutor_categories;" json:"categories,omitempty"`
	User       User        `gorm:"foreignkey:UserID" json:"user,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *TutorProfile) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}
