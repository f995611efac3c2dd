package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application. It is read once at
// startup and never mutated afterwards.
type Config struct {
	// OpenRouterAPIKey authenticates against the OpenRouter API. Required.
	OpenRouterAPIKey string

	// OpenRouterModel is the default model for completion requests.
	OpenRouterModel string

	// OpenRouterBaseURL is the API root. Overridable for testing.
	OpenRouterBaseURL string

	LogDir    string
	LogLevel  slog.Level
	LogFormat string
	DBPath    string
	APIPort   string
}

// Load reads configuration from environment variables and returns a Config.
// If a .env file exists in the current directory or an ancestor (up to the
// module root), it is loaded first; variables already set in the
// environment take precedence over .env values.
//
// Load fails if OPENROUTER_API_KEY is missing or empty: the client is
// unusable without credentials, so misconfiguration surfaces at startup
// rather than at the first call.
func Load() (*Config, error) {
	_ = godotenv.Load() // Try current directory; absence is fine

	// Walk up a few levels looking for a project-root .env
	if wd, err := os.Getwd(); err == nil {
		dir := wd
		for i := 0; i < 5; i++ {
			envPath := filepath.Join(dir, ".env")
			if _, err := os.Stat(envPath); err == nil {
				_ = godotenv.Load(envPath)
				break
			}
			parent := filepath.Dir(dir)
			if parent == dir {
				break
			}
			dir = parent
		}
	}

	cfg := &Config{
		OpenRouterAPIKey:  os.Getenv("OPENROUTER_API_KEY"),
		OpenRouterModel:   getEnv("OPENROUTER_MODEL", "deepseek/deepseek-chat"),
		OpenRouterBaseURL: getEnv("OPENROUTER_BASE_URL", "https://openrouter.ai/api/v1"),
		LogDir:            getEnv("LOG_DIR", "./logs"),
		LogFormat:         getEnv("LOG_FORMAT", "text"),
		DBPath:            getEnv("DB_PATH", "./data/openrouter-chat.db"),
		APIPort:           getEnv("API_PORT", "9000"),
	}

	if cfg.OpenRouterAPIKey == "" {
		return nil, fmt.Errorf("OPENROUTER_API_KEY is required")
	}

	level, err := parseLogLevel(getEnv("LOG_LEVEL", "debug"))
	if err != nil {
		return nil, err
	}
	cfg.LogLevel = level

	// Create the data directory up front so the DB open cannot fail on it
	dataDir := filepath.Dir(cfg.DBPath)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	return cfg, nil
}

// parseLogLevel converts a level name into a slog.Level.
func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid LOG_LEVEL %q", s)
	}
}

// getEnv gets an environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
