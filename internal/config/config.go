package config

import (
	"os"
	"strings"
	"time"
)

// Config keeps runtime settings for the tracker.
type Config struct {
	APIURL           string
	DefaultTimezone  string
	ReminderInterval time.Duration
	HTTPTimeout      time.Duration
}

// Load reads configuration from environment variables with sane defaults.
// An empty APIURL is not an error at load time: every store operation
// checks it and fails with a configuration error instead, so the surface
// can report the problem without refusing to start.
func Load() (Config, error) {
	cfg := Config{
		APIURL:           strings.TrimSpace(os.Getenv("TASKS_API_URL")),
		DefaultTimezone:  strings.TrimSpace(os.Getenv("DEFAULT_TIMEZONE")),
		ReminderInterval: parseMinutes(strings.TrimSpace(os.Getenv("REMINDER_INTERVAL_MINUTES"))),
		HTTPTimeout:      parseSeconds(strings.TrimSpace(os.Getenv("HTTP_TIMEOUT_SECONDS"))),
	}

	if cfg.DefaultTimezone == "" {
		cfg.DefaultTimezone = "Asia/Ho_Chi_Minh"
	}

	if cfg.ReminderInterval == 0 {
		cfg.ReminderInterval = 15 * time.Minute
	}

	if cfg.HTTPTimeout == 0 {
		cfg.HTTPTimeout = 10 * time.Second
	}

	return cfg, nil
}

func parseMinutes(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw + "m")
	if err != nil || d <= 0 {
		return 0
	}
	return d
}

func parseSeconds(raw string) time.Duration {
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw + "s")
	if err != nil || d <= 0 {
		return 0
	}
	return d
}
