package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID                 uuid.UUID           `gorm:"type:varchar(36);primarykey" json:"id"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
	DeletedAt          gorm.DeletedAt      `gorm:"index" json:"-"`
	Name               string              `gorm:"not null" json:"name"`
	Email              string              `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash       string              `gorm:"not null" json:"-"`
	Profile            *UserProfile        `gorm:"foreignKey:UserID" json:"profile,omitempty"`
	DietaryPreferences []DietaryPreference `gorm:"foreignKey:UserID" json:"dietary_preferences,omitempty"`
	Allergens          []Allergen          `gorm:"foreignKey:UserID" json:"allergens,omitempty"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

type UserProfile struct {
	ID                uuid.UUID `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID            uuid.UUID `gorm:"type:varchar(36);not null;uniqueIndex" json:"user_id"`
	Username          string    `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Bio               string    `gorm:"type:text" json:"bio"`
	ProfilePictureURL string    `gorm:"type:text" json:"profile_picture_url"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (p *UserProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
