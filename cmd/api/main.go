package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/jonahgcarpenter/aprilslilpugs/internal/aboutus"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/auth"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/breeder"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/config"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/database"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/email"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/gallery"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/grumble"
	kafkapkg "github.com/jonahgcarpenter/aprilslilpugs/internal/kafka"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/litters"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/logger"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/puppies"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/server"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/session"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/storage"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/waitlist"
)

func main() {
	lgr := logger.New()
	lgr.Info("Starting April's Lil Pugs API...")

	if err := config.ValidateEnv([]string{"DATABASE_URL", "SESSION_SECRET"}); err != nil {
		lgr.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}
	if err := config.ValidateSessionSecret(); err != nil {
		lgr.Error("Invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := database.New(ctx)
	if err != nil {
		lgr.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()
	lgr.Info("Connected to database")

	redisAddr := config.GetEnvOrDefault("REDIS_ADDR", "localhost:6379")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := config.GetEnvInt("REDIS_DB", 0)
	storeTimeout := config.GetEnvDuration("SESSION_STORE_TIMEOUT", 2*time.Second)

	sessionStore := session.NewRedisStore(redisAddr, redisPassword, redisDB, storeTimeout)
	sessionMgr := session.NewManager(sessionStore, config.SessionLifetime())
	lgr.Info("Session store configured",
		"redis", redisAddr,
		"lifetime", config.SessionLifetime())

	storageService, err := storage.New(ctx, lgr)
	if err != nil {
		lgr.Warn("Storage disabled", "error", err)
		storageService = nil
	}

	emailConfig := email.NewConfig()
	emailSender := email.NewSender(emailConfig)
	lgr.Info("Email sender initialized", "mode", emailConfig.Mode)

	// Kafka is optional. Without it, notifications are sent directly.
	var kafkaProducer *kafkapkg.Producer
	notifyTopic := ""
	if os.Getenv("KAFKA_BROKERS") != "" && config.GetEnvOrDefault("ENABLE_KAFKA", "true") == "true" {
		kafkaConfig, err := kafkapkg.LoadConfig()
		if err != nil {
			lgr.Warn("Failed to load Kafka config, notifications go direct", "error", err)
		} else if kafkaProducer, err = kafkapkg.NewProducer(kafkaConfig, lgr); err != nil {
			lgr.Warn("Failed to create Kafka producer, notifications go direct", "error", err)
			kafkaProducer = nil
		} else {
			notifyTopic = kafkaConfig.NotifyEventsTopic
			defer kafkaProducer.Close()
		}
	} else {
		lgr.Info("Kafka disabled, notifications go direct")
	}
	notifier := email.NewNotifier(kafkaProducer, notifyTopic, emailSender, lgr)

	breederService := breeder.NewService(breeder.NewRepository(db))
	litterService := litters.NewService(db)

	authHandler := auth.NewHandler(
		breederService,
		sessionMgr,
		int(config.SessionLifetime().Seconds()),
		config.IsProduction(),
	)

	var galleryHandler *gallery.Handler
	if storageService != nil {
		galleryHandler = gallery.NewHandler(gallery.NewService(db, storageService, lgr))
	} else {
		galleryHandler = gallery.NewHandler(gallery.NewService(db, storage.Disabled(), lgr))
	}

	deps := server.Deps{
		DB:       db,
		Storage:  storageService,
		Auth:     authHandler,
		Breeder:  breeder.NewHandler(breederService),
		Grumble:  grumble.NewHandler(grumble.NewService(db)),
		Litters:  litters.NewHandler(litterService),
		Puppies:  puppies.NewHandler(puppies.NewService(db, litterService)),
		AboutUs:  aboutus.NewHandler(aboutus.NewService(db)),
		Waitlist: waitlist.NewHandler(waitlist.NewService(db, breederService, notifier, lgr)),
		Gallery:  galleryHandler,
	}

	cfg := server.LoadConfigFromEnv()
	srv := server.New(cfg, deps)

	go func() {
		lgr.Info("API listening", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lgr.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lgr.Info("Shutting down API...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("Server forced to shutdown", "error", err)
		os.Exit(1)
	}

	lgr.Info("API stopped")
}
