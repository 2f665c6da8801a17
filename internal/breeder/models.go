package breeder

import "time"

// Breeder is a registered breeder account with its public profile fields.
// The password hash never leaves the package boundary in JSON.
type Breeder struct {
	ID              int       `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"-"`
	FirstName       string    `json:"firstName"`
	LastName        string    `json:"lastName"`
	City            string    `json:"city"`
	State           string    `json:"state"`
	ExperienceYears int       `json:"experienceYears"`
	Story           string    `json:"story"`
	Phone           string    `json:"phone"`
	ProfileImageKey string    `json:"profileImageKey,omitempty"`
	Active          bool      `json:"-"`
	Admin           bool      `json:"isAdmin"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// RegisterInput carries everything needed to create an account.
type RegisterInput struct {
	Email           string
	Password        string
	FirstName       string
	LastName        string
	City            string
	State           string
	ExperienceYears int
	Story           string
	Phone           string
}

// UpdateProfileRequest is the request payload for updating the public profile.
type UpdateProfileRequest struct {
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName" binding:"required"`
	City            string `json:"city"`
	State           string `json:"state"`
	ExperienceYears int    `json:"experienceYears" binding:"omitempty,gte=0"`
	Story           string `json:"story"`
	Phone           string `json:"phone"`
	Email           string `json:"email" binding:"required,email"`
	ProfileImageKey string `json:"profileImageKey"`
}
