package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/joho/godotenv/autoload"
	"github.com/redis/go-redis/v9"

	"github.com/jonahgcarpenter/aprilslilpugs/internal/config"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/email"
	kafkapkg "github.com/jonahgcarpenter/aprilslilpugs/internal/kafka"
	"github.com/jonahgcarpenter/aprilslilpugs/internal/logger"
)

// The notifier consumes notification events from Kafka and delivers them
// as email, with redis-backed deduplication.
func main() {
	lgr := logger.New()
	lgr.Info("Starting notifier...")

	port := config.GetEnvOrDefault("NOTIFIER_PORT", "8081")
	redisAddr := config.GetEnvOrDefault("REDIS_ADDR", "localhost:6379")
	redisPassword := os.Getenv("REDIS_PASSWORD")
	redisDB := config.GetEnvInt("REDIS_DB", 0)

	kafkaConfig, err := kafkapkg.LoadConfig()
	if err != nil {
		lgr.Error("Failed to load Kafka config", "error", err)
		os.Exit(1)
	}

	lgr.Info("Configuration loaded",
		"port", port,
		"redis", redisAddr,
		"kafka", kafkaConfig.Brokers,
		"topic", kafkaConfig.NotifyEventsTopic)

	redisClient := redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPassword,
		DB:       redisDB,
	})

	ctx := context.Background()
	if err := redisClient.Ping(ctx).Err(); err != nil {
		lgr.Error("Failed to connect to Redis", "error", err)
		os.Exit(1)
	}
	lgr.Info("Connected to Redis")

	idempotencyStore := email.NewIdempotencyStore(redisClient, lgr)

	emailConfig := email.NewConfig()
	emailSender := email.NewSender(emailConfig)
	lgr.Info("Email sender initialized", "mode", emailConfig.Mode)

	consumerConfig := &email.ConsumerConfig{
		Brokers:       kafkaConfig.Brokers,
		Topic:         kafkaConfig.NotifyEventsTopic,
		DLQTopic:      kafkaConfig.NotifyDLQTopic,
		ConsumerGroup: kafkaConfig.ConsumerGroup,
		MaxRetries:    3,
	}

	consumer, err := email.NewConsumer(consumerConfig, emailSender, idempotencyStore, lgr)
	if err != nil {
		lgr.Error("Failed to create Kafka consumer", "error", err)
		os.Exit(1)
	}
	defer consumer.Close()

	consumerCtx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := consumer.Start(consumerCtx); err != nil {
			lgr.Error("Consumer error", "error", err)
		}
	}()

	// Small HTTP surface for health checks
	if config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	handler := email.NewHandler(redisClient, idempotencyStore, lgr)
	r.GET("/health", handler.HealthCheck)
	r.GET("/stats", handler.Stats)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", port),
		Handler: r,
	}

	go func() {
		lgr.Info("HTTP server started", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			lgr.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	lgr.Info("Shutting down notifier...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		lgr.Error("HTTP server forced to shutdown", "error", err)
	}

	lgr.Info("Notifier stopped")
}
