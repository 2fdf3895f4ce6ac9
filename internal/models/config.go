package models

import (
	"fmt"
	"time"
)

// Config holds all configuration options for certsentry
type Config struct {
	WarningDays    int
	Timeout        time.Duration
	NotifyEnabled  bool
	WebhookURL     string
	WeeklyReport   bool
	NotifyTargetID string
	OutputDir      string
	OutputFormat   string
	LogLevel       string
	LogFormat      string
	LogFile        string
	Quiet          bool
	NoColor        bool
	NoProgress     bool
}

// Validate checks if the configuration is valid and returns an error if not
func (c *Config) Validate() error {
	if c.WarningDays < 0 {
		return fmt.Errorf("warning days cannot be negative, got %d", c.WarningDays)
	}
	if c.Timeout < 1*time.Second {
		return fmt.Errorf("timeout must be at least 1 second, got %v", c.Timeout)
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output directory cannot be empty")
	}
	if c.NotifyEnabled && c.WebhookURL == "" {
		return fmt.Errorf("notifications enabled but no webhook URL configured")
	}
	return nil
}

// Clone creates a copy of the config to avoid shared mutation
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// DefaultConfig returns a config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		WarningDays:  7,
		Timeout:      10 * time.Second,
		OutputDir:    "results",
		OutputFormat: "json",
		LogLevel:     "info",
		LogFormat:    "text",
	}
}
