package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// AppConfig holds all configuration for the application
type AppConfig struct {
	TelegramToken          string
	DatabaseURL            string
	AdminTelegramID        int64
	LogLevel               string
	Environment            string
	Timezone               string
	Location               *time.Location // resolved from Timezone
	PhoneCountryCode       string
	MessagingBaseURL       string
	CenterName             string
	CronSpecAbsenteeReport string
	DatabaseMaxOpenConns   int
}

// Load reads configuration from environment variables and .env file (if present).
func Load() (*AppConfig, error) {
	// godotenv.Load will not override existing env variables.
	_ = godotenv.Load()

	cfg := &AppConfig{}
	var err error

	cfg.TelegramToken = os.Getenv("TELEGRAM_TOKEN")
	if cfg.TelegramToken == "" {
		return nil, fmt.Errorf("TELEGRAM_TOKEN is not set")
	}

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}

	adminIDStr := os.Getenv("ADMIN_TELEGRAM_ID")
	if adminIDStr == "" {
		return nil, fmt.Errorf("ADMIN_TELEGRAM_ID is not set")
	}
	cfg.AdminTelegramID, err = strconv.ParseInt(adminIDStr, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid ADMIN_TELEGRAM_ID: %w", err)
	}

	cfg.LogLevel = strings.ToLower(getenvDefault("LOG_LEVEL", "info"))
	cfg.Environment = strings.ToLower(getenvDefault("ENVIRONMENT", "development"))

	// Session dates are civil dates in the center's zone, so "today" must be too.
	cfg.Timezone = getenvDefault("TIMEZONE", "Africa/Cairo")
	cfg.Location, err = time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE %q: %w", cfg.Timezone, err)
	}

	cfg.PhoneCountryCode = strings.TrimPrefix(getenvDefault("PHONE_COUNTRY_CODE", "20"), "+")
	if _, err := strconv.ParseUint(cfg.PhoneCountryCode, 10, 32); err != nil {
		return nil, fmt.Errorf("invalid PHONE_COUNTRY_CODE %q: must be digits", cfg.PhoneCountryCode)
	}

	cfg.MessagingBaseURL = getenvDefault("MESSAGING_BASE_URL", "https://wa.me")
	cfg.CenterName = os.Getenv("CENTER_NAME")
	cfg.CronSpecAbsenteeReport = getenvDefault("CRON_SPEC_ABSENTEE_REPORT", "0 21 * * *") // 9 PM daily

	if v := os.Getenv("DB_MAX_OPEN_CONNS"); v != "" {
		cfg.DatabaseMaxOpenConns, err = strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid DB_MAX_OPEN_CONNS: %w", err)
		}
	}

	return cfg, nil
}

func getenvDefault(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
