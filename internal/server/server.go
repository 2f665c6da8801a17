// Package server wires the HTTP surface together: router, middleware,
// health endpoint and the tuned http.Server.
package server

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/jonahgcarpenter/aprilslilpugs/internal/aboutus"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/auth"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/breeder"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/config"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/database"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/gallery"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/grumble"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/litters"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/puppies"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/storage"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/waitlist"
)

// Config holds server configuration
type Config struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// LoadConfigFromEnv loads server configuration from environment variables
func LoadConfigFromEnv() *Config {
	port, _ := strconv.Atoi(config.GetEnvOrDefault("PORT", "8080"))

	return &Config{
		Port:         port,
		ReadTimeout:  config.GetEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: config.GetEnvDuration("SERVER_WRITE_TIMEOUT", 60*time.Second),
		IdleTimeout:  config.GetEnvDuration("SERVER_IDLE_TIMEOUT", 120*time.Second),
	}
}

// Deps holds everything the router needs. Storage may be nil when MinIO is
// not configured; the health endpoint reports it as absent.
type Deps struct {
	DB      database.Service
	Storage storage.Service

	Auth     *auth.Handler
	Breeder  *breeder.Handler
	Grumble  *grumble.Handler
	Litters  *litters.Handler
	Puppies  *puppies.Handler
	AboutUs  *aboutus.Handler
	Waitlist *waitlist.Handler
	Gallery  *gallery.Handler
}

// Server holds the dependencies for the HTTP server
type Server struct {
	port int
	deps Deps
}

// New creates and configures the HTTP server
func New(cfg *Config, deps Deps) *http.Server {
	appServer := &Server{
		port: cfg.Port,
		deps: deps,
	}

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           appServer.RegisterRoutes(),
		ReadTimeout:       cfg.ReadTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		ReadHeaderTimeout: 5 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}
}
