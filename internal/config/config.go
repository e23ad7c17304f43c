package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	Environment string

	DatabaseURL string

	// Empty disables rate limiting.
	RedisURL string

	SessionSecret string
	SessionName   string

	VoteRateLimit   int
	WriteRateLimit  int
	RateLimitWindow time.Duration

	AvatarCacheSize int
	AvatarCacheTTL  time.Duration
}

// Load reads .env (if present) and then the process environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, reading env vars from system")
	}

	return &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("APP_ENV", "development"),

		DatabaseURL: getEnv("DATABASE_URL", "host=localhost user=postgres password=postgres dbname=ideaforge port=5432 sslmode=disable"),

		RedisURL: getEnv("REDIS_URL", ""),

		SessionSecret: getEnv("SESSION_SECRET", "secret_key_change_me"),
		SessionName:   getEnv("SESSION_NAME", "ideaforge_session"),

		VoteRateLimit:   getIntEnv("RATE_LIMIT_VOTES", 60),
		WriteRateLimit:  getIntEnv("RATE_LIMIT_WRITES", 20),
		RateLimitWindow: getDurationEnv("RATE_LIMIT_WINDOW", time.Minute),

		AvatarCacheSize: getIntEnv("AVATAR_CACHE_SIZE", 500),
		AvatarCacheTTL:  getDurationEnv("AVATAR_CACHE_TTL", 10*time.Minute),
	}
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return defaultValue
}
