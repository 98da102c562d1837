// Package config loads quicksplit settings from the environment.
package config

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/mmynk/quicksplit/internal/models"
	"github.com/mmynk/quicksplit/pkg/logging"
)

// Config holds quicksplit settings.
type Config struct {
	// Currency is the default ISO 4217 currency for new splits.
	Currency string

	// UserID and UserName identify the signed-in user. An empty UserID
	// means nobody is signed in.
	UserID   string
	UserName string

	LogLevel slog.Level
}

// Environment variables read by Load.
const (
	EnvCurrency = "QUICKSPLIT_CURRENCY"
	EnvUserID   = "QUICKSPLIT_USER_ID"
	EnvUserName = "QUICKSPLIT_USER_NAME"
	EnvLogLevel = "LOG_LEVEL"
)

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// Load reads the configuration from the environment.
func Load() (Config, error) {
	cfg := Config{
		Currency: models.NormalizeCurrency(getEnv(EnvCurrency, models.DefaultCurrency)),
		UserID:   os.Getenv(EnvUserID),
		UserName: getEnv(EnvUserName, "You"),
		LogLevel: logging.ParseLevel(os.Getenv(EnvLogLevel)),
	}
	if _, err := models.CurrencyPlaces(cfg.Currency); err != nil {
		return Config{}, fmt.Errorf("%s: %w", EnvCurrency, err)
	}
	return cfg, nil
}
