package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultHTTPAddr              = ":8098"
	defaultDBPath                = "/data/cudy_monitor.db"
	defaultFrontendDist          = "/app/frontend/dist"
	defaultConfigRefreshInterval = 60 * time.Second
)

// Config stores runtime settings loaded from environment variables.
// Router credentials are not env config; they arrive via configsync.
type Config struct {
	HTTPAddr              string
	DBPath                string
	FrontendDist          string
	HABaseURL             string
	SupervisorToken       string
	ConfigRefreshInterval time.Duration
	LogLevel              slog.Level
}

// Load builds Config from environment variables using stable defaults.
func Load() Config {
	return Config{
		HTTPAddr:              getenv("HTTP_ADDR", defaultHTTPAddr),
		DBPath:                getenv("DB_PATH", defaultDBPath),
		FrontendDist:          getenv("FRONTEND_DIST", defaultFrontendDist),
		HABaseURL:             getenv("HA_BASE_URL", "http://supervisor/core"),
		SupervisorToken:       os.Getenv("SUPERVISOR_TOKEN"),
		ConfigRefreshInterval: parseDuration("CONFIG_REFRESH_INTERVAL", defaultConfigRefreshInterval),
		LogLevel:              parseLogLevel(getenv("LOG_LEVEL", "info")),
	}
}

// DBDir returns the target directory for DBPath.
func (c Config) DBDir() string {
	return filepath.Dir(c.DBPath)
}

func getenv(key string, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			return trimmed
		}
	}
	return fallback
}

func parseDuration(key string, fallback time.Duration) time.Duration {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func parseLogLevel(raw string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
