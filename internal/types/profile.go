package types

import (
	"time"

	"github.com/google/uuid"
)

// UserResponse is the public view of a user with profile and preferences
type UserResponse struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	Email              string    `json:"email"`
	Username           string    `json:"username"`
	Bio                string    `json:"bio"`
	ProfilePictureURL  string    `json:"profile_picture_url"`
	DietaryPreferences []string  `json:"dietary_preferences"`
	Allergies          []string  `json:"allergies"`
	CreatedAt          time.Time `json:"created_at"`
}

// AuthResponse is returned by register and login
type AuthResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// DebugUser is one row of the development-only user listing
type DebugUser struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Username  string    `json:"username"`
	CreatedAt time.Time `json:"created_at"`
}
