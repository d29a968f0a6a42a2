package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
	Log     LogConfig
}

type APIConfig struct {
	BaseURL        string
	AuthTimeout    time.Duration
	RequestTimeout time.Duration
	UploadTimeout  time.Duration
}

type SessionConfig struct {
	ID            string
	TTL           time.Duration
	CacheCapacity int
}

// RedisConfig is optional; an empty Addr keeps sessions in memory only.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type LogConfig struct {
	Level string
	File  string
}

func Load() (*Config, error) {
	// Load .env if it exists, ignore if not
	_ = godotenv.Load()

	cfg := &Config{
		API: APIConfig{
			BaseURL:        strings.TrimRight(getEnv("API_BASE_URL", "http://localhost:8501"), "/"),
			AuthTimeout:    getEnvAsDuration("AUTH_TIMEOUT", 10*time.Second),
			RequestTimeout: getEnvAsDuration("REQUEST_TIMEOUT", 20*time.Second),
			UploadTimeout:  getEnvAsDuration("UPLOAD_TIMEOUT", 30*time.Second),
		},
		Session: SessionConfig{
			ID:            getEnv("SESSION_ID", ""),
			TTL:           getEnvAsDuration("SESSION_TTL", 24*time.Hour),
			CacheCapacity: getEnvAsInt("SESSION_CACHE_CAPACITY", 128),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Log: LogConfig{
			Level: getEnv("LOG_LEVEL", "INFO"),
			File:  getEnv("LOG_FILE", "carmate.log"),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
