package waitlist

import "time"

const (
	StatusPending   = "pending"
	StatusContacted = "contacted"
	StatusCompleted = "completed"
)

type Entry struct {
	ID          int       `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`
	Preferences string    `json:"preferences"`
	Status      string    `json:"status"`
	Position    int       `json:"position"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type JoinRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Phone       string `json:"phone" binding:"required"`
	Preferences string `json:"preferences"`
}

type UpdateRequest struct {
	Status   string `json:"status" binding:"required,oneof=pending contacted completed"`
	Position int    `json:"position" binding:"required,min=1"`
}
