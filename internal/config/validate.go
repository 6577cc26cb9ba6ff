package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *ClientConfig) Validate() error {
	if c.Page.URL == "" {
		return errors.New("page.url is required")
	}
	u, err := url.Parse(c.Page.URL)
	if err != nil {
		return fmt.Errorf("page.url is invalid: %w", err)
	}
	if u.Host == "" {
		return fmt.Errorf("page.url must be absolute, got %q", c.Page.URL)
	}
	if c.Page.FetchRetries < 0 {
		return errors.New("page.fetch_retries must be >= 0")
	}

	if !strings.HasPrefix(c.Connection.Path, "/") {
		return fmt.Errorf("connection.path must start with '/', got %q", c.Connection.Path)
	}
	switch c.Connection.RetryPolicy {
	case RetryExponential, RetryFixed:
	default:
		return fmt.Errorf("connection.retry_policy must be %q or %q, got %q",
			RetryExponential, RetryFixed, c.Connection.RetryPolicy)
	}
	if c.Connection.MaxAttempts < 0 {
		return errors.New("connection.max_attempts must be >= 0")
	}
	if c.Connection.GrowthFactor < 1 {
		return fmt.Errorf("connection.growth_factor must be >= 1, got %g", c.Connection.GrowthFactor)
	}
	if c.Connection.MaxDelay < c.Connection.BaseDelay {
		return fmt.Errorf("connection.max_delay (%s) cannot be less than base_delay (%s)",
			c.Connection.MaxDelay, c.Connection.BaseDelay)
	}
	if c.Connection.PingTimeout < c.Connection.PingInterval {
		return fmt.Errorf("connection.ping_timeout (%s) cannot be less than ping_interval (%s)",
			c.Connection.PingTimeout, c.Connection.PingInterval)
	}
	if c.Connection.BufferSize < 1 {
		return errors.New("connection.buffer_size must be >= 1")
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", c.Log.Level)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}

	return nil
}
