package config

import (
	"fmt"
	"time"
)

// HTTPConfig configures the API listener.
type HTTPConfig struct {
	Address             string `json:"address"`
	ReadTimeoutSeconds  int    `json:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `json:"write_timeout_seconds"`
	IdleTimeoutSeconds  int    `json:"idle_timeout_seconds"`
	// MaxUploadMB bounds the multipart upload size.
	MaxUploadMB int `json:"max_upload_mb"`
}

// SetDefaults applies fallback values for optional fields.
func (c *HTTPConfig) SetDefaults() {
	if c.Address == "" {
		c.Address = ":8080"
	}
	if c.ReadTimeoutSeconds <= 0 {
		c.ReadTimeoutSeconds = 15
	}
	if c.WriteTimeoutSeconds <= 0 {
		c.WriteTimeoutSeconds = 15
	}
	if c.IdleTimeoutSeconds <= 0 {
		c.IdleTimeoutSeconds = 60
	}
	if c.MaxUploadMB <= 0 {
		c.MaxUploadMB = 10
	}
}

// Validate checks mandatory fields.
func (c HTTPConfig) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("address is required")
	}
	return nil
}

func (c HTTPConfig) ReadTimeout() time.Duration {
	return time.Duration(c.ReadTimeoutSeconds) * time.Second
}

func (c HTTPConfig) WriteTimeout() time.Duration {
	return time.Duration(c.WriteTimeoutSeconds) * time.Second
}

func (c HTTPConfig) IdleTimeout() time.Duration {
	return time.Duration(c.IdleTimeoutSeconds) * time.Second
}

// MaxUploadBytes returns the upload limit in bytes.
func (c HTTPConfig) MaxUploadBytes() int64 {
	return int64(c.MaxUploadMB) << 20
}
