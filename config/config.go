package config

import (
	"fmt"
	"os"
	"time"
)

// Config aggregates everything read from the environment at startup.
type Config struct {
	Env           string
	HTTPAddr      string
	MongoURI      string
	MongoDB       string
	RedisAddr     string
	RedisPassword string
	CatalogTTL    time.Duration
	JWTSecret     []byte
	TokenTTL      time.Duration
	VoucherSecret []byte
	UploadDir     string
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:           getEnv("APP_ENV", "dev"),
		HTTPAddr:      getEnv("HTTP_ADDR", ":4000"),
		MongoURI:      getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:       getEnv("MONGO_DB", "jhatikasafar"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     []byte(os.Getenv("JWT_SECRET")),
		VoucherSecret: []byte(getEnv("VOUCHER_SECRET", "jhatika-voucher")),
		UploadDir:     getEnv("UPLOAD_DIR", "./static"),
	}

	ttl, err := parseDurationEnv("CATALOG_CACHE_TTL", 5*time.Minute)
	if err != nil {
		return Config{}, err
	}
	cfg.CatalogTTL = ttl

	tokenTTL, err := parseDurationEnv("TOKEN_TTL", 72*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.TokenTTL = tokenTTL

	if len(cfg.JWTSecret) == 0 {
		if cfg.Env != "dev" {
			return Config{}, fmt.Errorf("JWT_SECRET is required outside dev")
		}
		cfg.JWTSecret = []byte("dev-only-secret")
	}
	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}
