package auth

// SessionCookieName is the cookie carrying the opaque session token.
const SessionCookieName = "session_token"

// LoginRequest is the request payload for logging in
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the request payload for creating a breeder account
type RegisterRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required"`
	FirstName       string `json:"firstName" binding:"required"`
	LastName        string `json:"lastName" binding:"required"`
	City            string `json:"city"`
	State           string `json:"state"`
	ExperienceYears int    `json:"experienceYears" binding:"omitempty,gte=0"`
	Story           string `json:"story"`
	Phone           string `json:"phone"`
}

// ResetPasswordRequest is the request payload for overwriting a password
type ResetPasswordRequest struct {
	Email       string `json:"email" binding:"required,email"`
	NewPassword string `json:"newPassword" binding:"required"`
}

// UserSummary is the account view returned to the frontend after login and
// session checks.
type UserSummary struct {
	ID        int    `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	IsAdmin   bool   `json:"isAdmin"`
}

// SessionResponse is the response for login and session-check requests
type SessionResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *UserSummary `json:"user,omitempty"`
}
