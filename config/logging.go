package config

import (
	"fmt"
	"strings"
)

// LoggingConfig defines the application log settings.
type LoggingConfig struct {
	// Level is one of debug, info, warn or error.
	Level string `json:"level"`
	// AccessLog enables one log line per HTTP request.
	AccessLog *bool `json:"access_log"`
}

// SetDefaults applies sane defaults.
func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
	if c.AccessLog == nil {
		on := true
		c.AccessLog = &on
	}
}

// Validate checks mandatory fields.
func (c LoggingConfig) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return fmt.Errorf("unknown level %s", c.Level)
	}
}

// AccessLogEnabled reports whether request logging is on.
func (c LoggingConfig) AccessLogEnabled() bool {
	return c.AccessLog == nil || *c.AccessLog
}
