package litters

import "time"

type Litter struct {
	ID            int       `json:"id"`
	BreederID     int       `json:"breederId"`
	MomID         int       `json:"momId"`
	DadID         int       `json:"dadId"`
	BirthDate     time.Time `json:"birthDate"`
	AvailableDate time.Time `json:"availableDate"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type LitterRequest struct {
	MomID         int    `json:"momId" binding:"required"`
	DadID         int    `json:"dadId" binding:"required"`
	BirthDate     string `json:"birthDate" binding:"required"`
	AvailableDate string `json:"availableDate" binding:"required"`
}
