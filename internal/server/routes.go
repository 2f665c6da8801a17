package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/jonahgcarpenter/aprilslilpugs/internal/config"
)

func (s *Server) RegisterRoutes() http.Handler {
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggingMiddleware())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true, // cookies ride along
	}))

	r.GET("/health", s.healthHandler)

	api := r.Group("/api")
	requireSession := s.deps.Auth.RequireSession()

	s.deps.Auth.RegisterRoutes(api)
	s.deps.Breeder.RegisterRoutes(api, requireSession)
	s.deps.Grumble.RegisterRoutes(api, requireSession)
	s.deps.Litters.RegisterRoutes(api, requireSession)
	s.deps.Puppies.RegisterRoutes(api, requireSession)
	s.deps.AboutUs.RegisterRoutes(api, requireSession)
	s.deps.Waitlist.RegisterRoutes(api, requireSession)
	s.deps.Gallery.RegisterRoutes(api, requireSession)

	return r
}

func (s *Server) healthHandler(c *gin.Context) {
	response := make(map[string]interface{})

	response["database"] = s.deps.DB.Health(c.Request.Context())

	if s.deps.Storage != nil {
		storageHealth := make(map[string]string)
		if err := s.deps.Storage.Health(c.Request.Context()); err != nil {
			storageHealth["status"] = "down"
			storageHealth["error"] = err.Error()
		} else {
			storageHealth["status"] = "up"
		}
		response["storage"] = storageHealth
	}

	c.JSON(http.StatusOK, response)
}
