package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DietaryPreference represents a user's dietary preference entry.
// PreferenceType is a known diet, or "custom" with CustomName set.
type DietaryPreference struct {
	ID             uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID         uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	PreferenceType string    `gorm:"size:50;not null" json:"preference_type"`
	CustomName     string    `gorm:"size:50" json:"custom_name,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (DietaryPreference) TableName() string {
	return "dietary_preferences"
}

func (d *DietaryPreference) BeforeCreate(tx *gorm.DB) error {
	if d.ID == uuid.Nil {
		d.ID = uuid.New()
	}
	return nil
}

// Allergen represents an allergen entry for a user.
type Allergen struct {
	ID            uuid.UUID `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:varchar(36);not null;index" json:"user_id"`
	AllergenName  string    `gorm:"size:50;not null" json:"allergen_name"`
	SeverityLevel int       `gorm:"not null;default:3;check:severity_level >= 1 AND severity_level <= 5" json:"severity_level"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func (Allergen) TableName() string {
	return "allergens"
}

func (a *Allergen) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
