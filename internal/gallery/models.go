package gallery

import "time"

type Photo struct {
	ID        int       `json:"id"`
	BreederID int       `json:"breederId"`
	FileKey   string    `json:"fileKey"`
	Caption   string    `json:"caption"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// URL is a presigned download link, filled in on reads.
	URL string `json:"url,omitempty"`
}

type UploadURLRequest struct {
	FileName    string `json:"fileName" binding:"required"`
	ContentType string `json:"contentType" binding:"required"`
}

type UploadURLResponse struct {
	FileKey   string `json:"fileKey"`
	UploadURL string `json:"uploadUrl"`
}

type CreateRequest struct {
	FileKey string `json:"fileKey" binding:"required"`
	Caption string `json:"caption"`
}

type UpdateRequest struct {
	Caption  string `json:"caption"`
	Position int    `json:"position" binding:"required,min=1"`
}
