package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
)

const defaultBcryptCost = 10

// Config holds the service configuration, read from the environment.
type Config struct {
	DatabaseURL    string
	Port           string
	AllowedOrigins []string
	BcryptCost     int
}

// Load reads the configuration from environment variables.
// DATABASE_URL wins when set; otherwise the connection string is
// assembled from the individual DB_* variables (Docker friendly).
// ALLOWED_ORIGINS is required: the API refuses to start without an
// explicit CORS allow-list.
func Load() (Config, error) {
	cfg := Config{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		Port:        envDefault("PORT", "8080"),
		BcryptCost:  defaultBcryptCost,
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			envDefault("DB_HOST", "localhost"),
			envDefault("DB_PORT", "5432"),
			envDefault("DB_USER", "postgres"),
			envDefault("DB_PASSWORD", "postgres"),
			envDefault("DB_NAME", "micartera"),
		)
	}

	origins := os.Getenv("ALLOWED_ORIGINS")
	if origins == "" {
		return Config{}, errors.New("missing required environment variable: ALLOWED_ORIGINS")
	}
	for _, origin := range strings.Split(origins, ",") {
		if origin = strings.TrimSpace(origin); origin != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}
	if len(cfg.AllowedOrigins) == 0 {
		return Config{}, errors.New("ALLOWED_ORIGINS contains no origins")
	}

	if raw := os.Getenv("BCRYPT_COST"); raw != "" {
		cost, err := strconv.Atoi(raw)
		if err != nil {
			return Config{}, fmt.Errorf("invalid BCRYPT_COST %q: %w", raw, err)
		}
		cfg.BcryptCost = cost
	}

	return cfg, nil
}

func envDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
