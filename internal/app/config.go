package app

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BaseURL      string // Base URL of the platform API (default: http://localhost:8080/short-term-course)
	StorePath    string // Path to the SQLite credential store (default: ~/.shortcourse/session.db)
	MasterSecret string // Secret mixed into the token sealing key (default: derived from store path)

	RequestTimeout time.Duration // Per-request HTTP timeout (default: 30s)
	RateLimit      float64       // Outgoing requests per second (default: 10)
	RateBurst      int           // Outgoing request burst (default: 5)
	LoginTimeout   time.Duration // How long to wait for the browser login flow (default: 2m)

	LogLevel  string // Log level (debug, info, warn, error) (default: info)
	LogFormat string // Log format (json, text) (default: text)
}

func LoadConfig() Config {
	// Missing .env is fine; the environment wins over file values either way.
	_ = godotenv.Load()

	cfg := Config{
		BaseURL:        getEnvOrDefault("SHORTCOURSE_BASE_URL", "http://localhost:8080/short-term-course"),
		StorePath:      getEnvOrDefault("SHORTCOURSE_STORE_PATH", defaultStorePath()),
		MasterSecret:   os.Getenv("SHORTCOURSE_MASTER_SECRET"),
		RequestTimeout: getEnvDurationOrDefault("SHORTCOURSE_REQUEST_TIMEOUT", 30*time.Second),
		RateLimit:      getEnvFloatOrDefault("SHORTCOURSE_RATE_LIMIT", 10),
		RateBurst:      getEnvIntOrDefault("SHORTCOURSE_RATE_BURST", 5),
		LoginTimeout:   getEnvDurationOrDefault("SHORTCOURSE_LOGIN_TIMEOUT", 2*time.Minute),
		LogLevel:       getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:      getEnvOrDefault("LOG_FORMAT", "text"),
	}

	if cfg.MasterSecret == "" {
		// Sealing still needs a stable secret; falling back to the store
		// path keeps restored sessions working on a single machine.
		cfg.MasterSecret = "shortcourse:" + cfg.StorePath
	}

	return cfg
}

func defaultStorePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.db"
	}
	return filepath.Join(home, ".shortcourse", "session.db")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return f
	}

	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers are read as seconds.
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}

	return defaultValue
}
