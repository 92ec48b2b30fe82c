package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("DATABASE_URL", "postgres://localhost/center")
	t.Setenv("ADMIN_TELEGRAM_ID", "12345")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, int64(12345), cfg.AdminTelegramID)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "Africa/Cairo", cfg.Timezone)
	assert.NotNil(t, cfg.Location)
	assert.Equal(t, "20", cfg.PhoneCountryCode)
	assert.Equal(t, "https://wa.me", cfg.MessagingBaseURL)
	assert.Equal(t, "0 21 * * *", cfg.CronSpecAbsenteeReport)
}

func TestLoad_Overrides(t *testing.T) {
	setRequired(t)
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("TIMEZONE", "UTC")
	t.Setenv("PHONE_COUNTRY_CODE", "+966")
	t.Setenv("DB_MAX_OPEN_CONNS", "4")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "UTC", cfg.Location.String())
	assert.Equal(t, "966", cfg.PhoneCountryCode)
	assert.Equal(t, 4, cfg.DatabaseMaxOpenConns)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{name: "missing token", key: "TELEGRAM_TOKEN", val: ""},
		{name: "missing database", key: "DATABASE_URL", val: ""},
		{name: "bad admin id", key: "ADMIN_TELEGRAM_ID", val: "abc"},
		{name: "bad timezone", key: "TIMEZONE", val: "Mars/Olympus"},
		{name: "bad country code", key: "PHONE_COUNTRY_CODE", val: "2x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			setRequired(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
