package puppies

import "time"

const (
	StatusAvailable = "available"
	StatusReserved  = "reserved"
	StatusSold      = "sold"
)

type Puppy struct {
	ID        int       `json:"id"`
	LitterID  int       `json:"litterId"`
	BreederID int       `json:"breederId"`
	Name      string    `json:"name"`
	Gender    string    `json:"gender"`
	Color     string    `json:"color"`
	Status    string    `json:"status"`
	ImageKey  string    `json:"imageKey,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateRequest struct {
	LitterID int    `json:"litterId" binding:"required"`
	Name     string `json:"name" binding:"required"`
	Gender   string `json:"gender" binding:"required,oneof=male female"`
	Color    string `json:"color" binding:"required,oneof=black fawn apricot"`
	ImageKey string `json:"imageKey"`
}

type UpdateRequest struct {
	Name     string `json:"name" binding:"required"`
	Gender   string `json:"gender" binding:"required,oneof=male female"`
	Color    string `json:"color" binding:"required,oneof=black fawn apricot"`
	Status   string `json:"status" binding:"required,oneof=available reserved sold"`
	ImageKey string `json:"imageKey"`
}
