// Package logger configures structured logging for the API server.
package logger

import (
	"log/slog"
	"os"
	"strings"
)

// New creates a structured logger from environment configuration and installs
// it as the slog default so package-level slog calls pick it up.
//
// LOG_LEVEL options: debug, info, warn, error (default: info)
// LOG_FORMAT options: json, text (default: json in production, text otherwise)
func New() *slog.Logger {
	level := parseLevel(os.Getenv("LOG_LEVEL"))

	opts := &slog.HandlerOptions{
		Level: level,
		// Source locations only matter when something went wrong
		AddSource: level <= slog.LevelWarn,
	}

	var handler slog.Handler
	if textOutput() {
		handler = slog.NewTextHandler(os.Stdout, opts)
	} else {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}

func parseLevel(raw string) slog.Level {
	switch strings.ToLower(raw) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func textOutput() bool {
	switch strings.ToLower(os.Getenv("LOG_FORMAT")) {
	case "text":
		return true
	case "json":
		return false
	}
	// No explicit format: human-readable locally, JSON in production
	return os.Getenv("APP_ENV") != "production"
}
