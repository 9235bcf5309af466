package config

import (
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Server captures process-level configuration so main stays lean.
type Server struct {
	Addr          string
	PostgresDSN   string
	RedisURL      string
	JWTSigningKey string
	JWTIssuer     string
	SessionTTL    time.Duration
	BcryptCost    int
}

// FromEnv builds a Server config from environment variables. Empty
// PostgresDSN or RedisURL means the in-memory fallbacks are used, which keeps
// local development dependency-free.
func FromEnv() Server {
	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Development default - must be overridden in production.
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	return Server{
		Addr:          getenv("STOCKDECK_ADDR", ":8080"),
		PostgresDSN:   os.Getenv("POSTGRES_DSN"),
		RedisURL:      os.Getenv("REDIS_URL"),
		JWTSigningKey: jwtSigningKey,
		JWTIssuer:     getenv("JWT_ISSUER", "stockdeck"),
		SessionTTL:    getduration("SESSION_TTL", 24*time.Hour),
		BcryptCost:    getint("BCRYPT_COST", bcrypt.DefaultCost),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getduration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
