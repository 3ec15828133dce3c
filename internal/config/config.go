// Package config reads process configuration from the environment. A .env file
// is loaded into the environment by main before Load runs.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"remindme/internal/domain/timeofday"
	"remindme/internal/pkg/logger"
)

// Supported transports.
const (
	TransportTelegram = "telegram"
	TransportLine     = "line"
)

// Config holds every setting the bot reads at startup.
type Config struct {
	Port         int
	DatabasePath string
	Timezone     string
	Transport    string
	LogLevel     logger.Level
	BotName      string

	TelegramToken      string
	ChannelSecret      string
	ChannelAccessToken string
}

// Load reads the environment, applying defaults for unset variables.
func Load() (*Config, error) {
	portStr := getEnv("PORT", "8080")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT %q: %w", portStr, err)
	}

	return &Config{
		Port:               port,
		DatabasePath:       getEnv("DATABASE_PATH", "reminders.db"),
		Timezone:           getEnv("TIMEZONE", timeofday.DefaultZone),
		Transport:          strings.ToLower(getEnv("TRANSPORT", TransportTelegram)),
		LogLevel:           logger.ParseLevel(os.Getenv("LOG_LEVEL")),
		BotName:            getEnv("BOT_NAME", "Reminder bot"),
		TelegramToken:      os.Getenv("TELEGRAM_BOT_TOKEN"),
		ChannelSecret:      os.Getenv("CHANNEL_SECRET"),
		ChannelAccessToken: os.Getenv("CHANNEL_ACCESS_TOKEN"),
	}, nil
}

// Validate checks that the selected transport has its credentials and that
// the timezone exists.
func (c *Config) Validate() error {
	var errs []error

	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("PORT out of range: %d", c.Port))
	}
	switch c.Transport {
	case TransportTelegram:
		if c.TelegramToken == "" {
			errs = append(errs, errors.New("TELEGRAM_BOT_TOKEN must be set when TRANSPORT=telegram"))
		}
	case TransportLine:
		if c.ChannelSecret == "" || c.ChannelAccessToken == "" {
			errs = append(errs, errors.New("CHANNEL_SECRET and CHANNEL_ACCESS_TOKEN must be set when TRANSPORT=line"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown TRANSPORT %q, expected %q or %q", c.Transport, TransportTelegram, TransportLine))
	}
	if _, err := timeofday.LoadLocation(c.Timezone); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Debug reports whether debug logging is enabled.
func (c *Config) Debug() bool {
	return c.LogLevel == logger.LevelDebug
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}
