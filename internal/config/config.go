// Package config provides environment configuration loading and validation
// for the API server. All configuration comes from environment variables,
// optionally seeded from a .env file at startup.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultSessionLifetime is used when SESSION_LIFETIME is not set.
const DefaultSessionLifetime = 3600 * time.Second

// ValidateEnv validates that all required environment variables are set
func ValidateEnv(requiredVars []string) error {
	var missing []string

	for _, varName := range requiredVars {
		if os.Getenv(varName) == "" {
			missing = append(missing, varName)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %s", strings.Join(missing, ", "))
	}

	return nil
}

// ValidateSessionSecret ensures SESSION_SECRET is set and long enough to be
// worth anything. Tokens are generated from crypto/rand, but the secret still
// guards cookie signing in front-end deployments that enable it.
func ValidateSessionSecret() error {
	secret := os.Getenv("SESSION_SECRET")
	if secret == "" {
		return errors.New("SESSION_SECRET is required")
	}
	if len(secret) < 32 {
		return errors.New("SESSION_SECRET must be at least 32 characters")
	}

	return nil
}

// GetEnvOrDefault retrieves an environment variable or returns a default value
func GetEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// GetEnvInt retrieves an integer environment variable or returns a default value
func GetEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// GetEnvDuration retrieves a duration environment variable or returns a default value
func GetEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// MustGetEnv retrieves an environment variable or panics
func MustGetEnv(key string) string {
	value := os.Getenv(key)
	if value == "" {
		panic(fmt.Sprintf("required environment variable %s is not set", key))
	}
	return value
}

// SessionLifetime returns the configured session lifetime. SESSION_LIFETIME is
// expressed in whole seconds to match the original deployment's .env files.
func SessionLifetime() time.Duration {
	seconds := GetEnvInt("SESSION_LIFETIME", 0)
	if seconds <= 0 {
		return DefaultSessionLifetime
	}
	return time.Duration(seconds) * time.Second
}

// CORSOrigins returns the allowed CORS origins as a slice. Defaults to the
// Vite development server.
func CORSOrigins() []string {
	raw := GetEnvOrDefault("CORS_ORIGINS", "http://localhost:5173")

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			origins = append(origins, trimmed)
		}
	}
	return origins
}

// IsProduction reports whether the server is running in production mode.
func IsProduction() bool {
	return os.Getenv("APP_ENV") == "production"
}
