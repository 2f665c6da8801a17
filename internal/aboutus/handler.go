package aboutus

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Get(c *gin.Context) {
	content, err := h.svc.Get(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load about page"})
		return
	}
	c.JSON(http.StatusOK, content)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	content, err := h.svc.Replace(c.Request.Context(), c.GetInt("breeder_id"), &req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update about page"})
		return
	}
	c.JSON(http.StatusOK, content)
}

func (h *Handler) RegisterRoutes(api *gin.RouterGroup, requireSession gin.HandlerFunc) {
	g := api.Group("/aboutus")
	g.GET("", h.Get)
	g.PUT("", requireSession, h.Update)
}
