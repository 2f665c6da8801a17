package breeder

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler handles breeder profile HTTP requests
type Handler struct {
	service Service
}

// NewHandler creates a new breeder handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// GetProfile handles GET /api/breeder. Public: this is the "meet the breeder"
// content on the landing page.
func (h *Handler) GetProfile(c *gin.Context) {
	b, err := h.service.Profile(c.Request.Context())
	if err != nil {
		if errors.Is(err, ErrBreederNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "breeder not found"})
			return
		}
		slog.Error("Failed to load breeder profile", "error", err.Error())
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load breeder"})
		return
	}

	c.JSON(http.StatusOK, b)
}

// UpdateProfile handles PUT /api/breeder. Requires a session; breeders can
// only edit their own profile.
func (h *Handler) UpdateProfile(c *gin.Context) {
	breederID := c.GetInt("breeder_id")

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	b, err := h.service.UpdateProfile(c.Request.Context(), breederID, req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBreederNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "breeder not found"})
		case errors.Is(err, ErrEmailExists):
			c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
		default:
			slog.Error("Failed to update breeder profile", "breeder_id", breederID, "error", err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update breeder"})
		}
		return
	}

	c.JSON(http.StatusOK, b)
}

// RegisterRoutes mounts the breeder profile endpoints.
func (h *Handler) RegisterRoutes(api *gin.RouterGroup, requireSession gin.HandlerFunc) {
	api.GET("/breeder", h.GetProfile)
	api.PUT("/breeder", requireSession, h.UpdateProfile)
}
