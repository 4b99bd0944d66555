package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/vytor/palabras/internal/logger"
)

type Config struct {
	Addr             string
	DBPath           string
	LogLevel         string
	StoragePrefix    string
	ReviewLimit      int
	CorrectThreshold int
	Timezone         string

	// BackupDir enables periodic JSON backups when non-empty.
	BackupDir           string
	BackupIntervalHours int
	BackupKeep          int

	// WriteRatePerSecond throttles mutating API calls; 0 disables it.
	WriteRatePerSecond float64
	WriteBurst         int
}

// Load reads configuration from a .env file (if present) and environment variables,
// applying defaults when values are missing or invalid.
func Load() Config {
	// Ignore error so the app still starts when .env is absent in production.
	_ = godotenv.Load()

	return Config{
		Addr:             envOr("ADDR", ":8080"),
		DBPath:           envOr("DB_PATH", "file:palabras.db"),
		LogLevel:         envOr("LOG_LEVEL", "INFO"),
		StoragePrefix:    envOr("STORAGE_PREFIX", "palabras_"),
		ReviewLimit:      envIntOr("REVIEW_LIMIT", 20),
		CorrectThreshold: envIntOr("CORRECT_THRESHOLD", 70),
		Timezone:         envOr("TIMEZONE", "Local"),

		BackupDir:           envOr("BACKUP_DIR", ""),
		BackupIntervalHours: envIntOr("BACKUP_INTERVAL_HOURS", 24),
		BackupKeep:          envIntOr("BACKUP_KEEP", 7),

		WriteRatePerSecond: envFloatOr("WRITE_RATE_PER_SECOND", 10),
		WriteBurst:         envIntOr("WRITE_BURST", 20),
	}
}

// Validate reports every invalid setting at once.
func (c Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Addr) == "" {
		problems = append(problems, "ADDR cannot be empty")
	}
	if strings.TrimSpace(c.DBPath) == "" {
		problems = append(problems, "DB_PATH cannot be empty")
	}
	if _, ok := logger.LookupLevel(c.LogLevel); !ok {
		problems = append(problems, fmt.Sprintf("LOG_LEVEL must be one of DEBUG, INFO, WARN, ERROR (got %q)", c.LogLevel))
	}
	if c.StoragePrefix == "" {
		problems = append(problems, "STORAGE_PREFIX cannot be empty")
	}
	if c.ReviewLimit < 1 || c.ReviewLimit > 500 {
		problems = append(problems, fmt.Sprintf("REVIEW_LIMIT must be between 1 and 500 (got %d)", c.ReviewLimit))
	}
	if c.CorrectThreshold < 0 || c.CorrectThreshold > 100 {
		problems = append(problems, fmt.Sprintf("CORRECT_THRESHOLD must be between 0 and 100 (got %d)", c.CorrectThreshold))
	}
	if c.Timezone != "" && c.Timezone != "Local" {
		if _, err := c.Location(); err != nil {
			problems = append(problems, fmt.Sprintf("TIMEZONE is invalid: %v", err))
		}
	}

	if c.BackupDir != "" {
		if c.BackupIntervalHours < 1 {
			problems = append(problems, fmt.Sprintf("BACKUP_INTERVAL_HOURS must be at least 1 (got %d)", c.BackupIntervalHours))
		}
		if c.BackupKeep < 1 {
			problems = append(problems, fmt.Sprintf("BACKUP_KEEP must be at least 1 (got %d)", c.BackupKeep))
		}
	}
	if c.WriteRatePerSecond < 0 {
		problems = append(problems, fmt.Sprintf("WRITE_RATE_PER_SECOND cannot be negative (got %v)", c.WriteRatePerSecond))
	}
	if c.WriteRatePerSecond > 0 && c.WriteBurst < 1 {
		problems = append(problems, fmt.Sprintf("WRITE_BURST must be at least 1 (got %d)", c.WriteBurst))
	}

	if len(problems) == 0 {
		return nil
	}
	return errors.New("invalid configuration: " + strings.Join(problems, "; "))
}

// Location resolves Timezone; empty or "Local" means the process zone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envIntOr(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
		log.Printf("invalid value for %s=%q, using default %d", key, v, def)
	}
	return def
}

func envFloatOr(key string, def float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		log.Printf("invalid value for %s=%q, using default %v", key, v, def)
	}
	return def
}
