package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config captures runtime configuration for the situation monitor service.
type Config struct {
	ListenAddr     string
	StaticDataPath string
	DefaultWindow  time.Duration
	SentimentLimit int
	RefreshSpec    string
	SnapshotMaxAge time.Duration
	EnableGdelt    bool
	EnableRSS      bool
}

// FromEnv creates a configuration instance sourced from environment variables.
func FromEnv() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		ListenAddr:     getEnv("MONITOR_LISTEN_ADDR", ":8080"),
		StaticDataPath: getEnv("MONITOR_STATIC_DATA", "data/sample_news.json"),
		DefaultWindow:  24 * time.Hour,
		SentimentLimit: 20,
		RefreshSpec:    getEnv("MONITOR_REFRESH", "@every 2m"),
		SnapshotMaxAge: 5 * time.Minute,
		EnableGdelt:    getEnv("MONITOR_ENABLE_GDELT", "") == "1",
		EnableRSS:      getEnv("MONITOR_ENABLE_RSS", "") == "1",
	}

	if window := os.Getenv("MONITOR_WINDOW_H"); window != "" {
		var hours int
		if _, err := fmt.Sscanf(window, "%d", &hours); err != nil {
			return Config{}, fmt.Errorf("parse MONITOR_WINDOW_H: %w", err)
		}
		cfg.DefaultWindow = time.Duration(hours) * time.Hour
	}

	if limit := os.Getenv("MONITOR_SENTIMENT_LIMIT"); limit != "" {
		if _, err := fmt.Sscanf(limit, "%d", &cfg.SentimentLimit); err != nil {
			return Config{}, fmt.Errorf("parse MONITOR_SENTIMENT_LIMIT: %w", err)
		}
	}

	if age := os.Getenv("MONITOR_SNAPSHOT_MAX_AGE_S"); age != "" {
		var seconds int
		if _, err := fmt.Sscanf(age, "%d", &seconds); err != nil {
			return Config{}, fmt.Errorf("parse MONITOR_SNAPSHOT_MAX_AGE_S: %w", err)
		}
		cfg.SnapshotMaxAge = time.Duration(seconds) * time.Second
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
