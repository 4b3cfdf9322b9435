package models

import (
	"time"

	"github.com/google/uuid"
)

// User is a dashboard account. Created on first login, profile fields refreshed
// on every subsequent login, never deleted by this backend.
type User struct {
	ID              uuid.UUID `json:"id"`
	Email           string    `json:"email"`
	FirstName       string    `json:"firstName,omitempty"`
	LastName        string    `json:"lastName,omitempty"`
	ProfileImageURL string    `json:"profileImageUrl,omitempty"`
	Role            string    `json:"role"` // user, admin
	PasswordHash    string    `json:"-"`    // Never returned in JSON
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
