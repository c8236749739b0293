package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds service-wide configuration loaded from the environment.
type Config struct {
	MongoURI  string
	MongoDB   string
	RedisAddr string
	HTTPPort  string
	JWTSecret string

	// Matching knobs
	MatchCacheTTL   time.Duration
	MatchTimeBucket time.Duration // 0 disables the time component of cache keys
	PriceCeiling    float64       // default hourly-price ceiling for price scoring
}

// Load reads configuration from the environment with sane defaults.
func Load() *Config {
	return &Config{
		MongoURI:        getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:         getEnv("MONGO_DB", "edumatch"),
		RedisAddr:       getEnv("REDIS_ADDR", "localhost:6379"),
		HTTPPort:        getEnv("HTTP_PORT", "8080"),
		JWTSecret:       getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		MatchCacheTTL:   getEnvDuration("MATCH_CACHE_TTL", time.Hour),
		MatchTimeBucket: getEnvDuration("MATCH_TIME_BUCKET", 0),
		PriceCeiling:    getEnvFloat("PRICE_CEILING", 2000),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

func getEnvFloat(key string, defaultVal float64) float64 {
	if val := os.Getenv(key); val != "" {
		if f, err := strconv.ParseFloat(val, 64); err == nil {
			return f
		}
	}
	return defaultVal
}
