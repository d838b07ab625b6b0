package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	DBDSN              string
	Storage            string // "postgres" (default) or "memory"
	Environment        string
	HTTPPort           string
	MigrationsPath     string
	GranularityMinutes int
	Timezone           *time.Location
}

// Load reads configuration from the environment, with an optional .env
// file on top (a missing file is fine).
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err == nil {
		log.Println("Loaded configuration from .env file")
	}

	cfg := &Config{
		DBDSN:          os.Getenv("DB_DSN"),
		Storage:        os.Getenv("STORAGE"),
		Environment:    os.Getenv("ENV"),
		HTTPPort:       os.Getenv("HTTP_PORT"),
		MigrationsPath: os.Getenv("MIGRATIONS_PATH"),
	}

	if cfg.Storage == "" {
		cfg.Storage = "postgres"
	}
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}
	if cfg.HTTPPort == "" {
		cfg.HTTPPort = "8080"
	}
	if cfg.MigrationsPath == "" {
		cfg.MigrationsPath = "./migrations"
	}

	cfg.GranularityMinutes = 15
	if v := os.Getenv("SLOT_GRANULARITY_MINUTES"); v != "" {
		granularity, err := strconv.Atoi(v)
		if err != nil || granularity <= 0 {
			return nil, fmt.Errorf("SLOT_GRANULARITY_MINUTES must be a positive integer, got %q", v)
		}
		cfg.GranularityMinutes = granularity
	}

	tz := os.Getenv("TIMEZONE")
	if tz == "" {
		tz = "Asia/Seoul" // the academy runs on KST
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	cfg.Timezone = loc

	if cfg.Storage == "postgres" && cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required but not set")
	}

	return cfg, nil
}
