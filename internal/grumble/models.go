package grumble

import "time"

// Pug coat colors recognized by the AKC breed standard.
const (
	ColorBlack   = "black"
	ColorFawn    = "fawn"
	ColorApricot = "apricot"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

// Grumble is an adult dog. A group of pugs is called a grumble, which is
// where the site borrowed the name.
type Grumble struct {
	ID        int       `json:"id"`
	BreederID int       `json:"breederId"`
	Name      string    `json:"name"`
	Gender    string    `json:"gender"`
	Color     string    `json:"color"`
	BirthDate time.Time `json:"birthDate"`
	Bio       string    `json:"bio"`
	ImageKey  string    `json:"imageKey,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateRequest struct {
	Name      string `json:"name" binding:"required"`
	Gender    string `json:"gender" binding:"required,oneof=male female"`
	Color     string `json:"color" binding:"required,oneof=black fawn apricot"`
	BirthDate string `json:"birthDate" binding:"required"`
	Bio       string `json:"bio"`
	ImageKey  string `json:"imageKey"`
}

type UpdateRequest struct {
	Name      string `json:"name" binding:"required"`
	Gender    string `json:"gender" binding:"required,oneof=male female"`
	Color     string `json:"color" binding:"required,oneof=black fawn apricot"`
	BirthDate string `json:"birthDate" binding:"required"`
	Bio       string `json:"bio"`
	ImageKey  string `json:"imageKey"`
}
