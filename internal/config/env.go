package config

import (
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Env struct {
	AppAddr           string
	GinMode           string
	DBDSN             string
	JWTSecret         string
	RedisAddr         string
	RedisPassword     string
	SpotSweepInterval time.Duration
}

// LoadEnv reads configuration from the environment, with a best-effort .env
// load for local development.
func LoadEnv() Env {
	_ = godotenv.Load()

	env := Env{
		AppAddr:           getenv("APP_ADDR", ":8080"),
		GinMode:           strings.TrimSpace(os.Getenv("GIN_MODE")),
		DBDSN:             getenv("DB_DSN", defaultDSN),
		JWTSecret:         getenv("JWT_SECRET", "super-secret-key-change-me"),
		RedisAddr:         strings.TrimSpace(os.Getenv("REDIS_ADDR")),
		RedisPassword:     strings.TrimSpace(os.Getenv("REDIS_PASSWORD")),
		SpotSweepInterval: time.Hour,
	}

	if raw := strings.TrimSpace(os.Getenv("SPOT_SWEEP_INTERVAL")); raw != "" {
		if d, err := time.ParseDuration(raw); err == nil && d > 0 {
			env.SpotSweepInterval = d
		}
	}

	return env
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
