package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultPath              = "/ws/chat/"
	DefaultRetryPolicy       = RetryExponential
	DefaultMaxAttempts       = 5
	DefaultBaseDelay         = 3 * time.Second
	DefaultGrowthFactor      = 1.5
	DefaultMaxDelay          = 30 * time.Second
	DefaultHandshakeTimeout  = 10 * time.Second
	DefaultWriteTimeout      = 5 * time.Second
	DefaultPingInterval      = 30 * time.Second
	DefaultPingTimeout       = 60 * time.Second
	DefaultBufferSize        = 256
	DefaultFetchTimeout      = 10 * time.Second
	DefaultFetchRetries      = 2
	DefaultStatusRevertDelay = 3 * time.Second
	DefaultTimeFormat        = "15:04"
	DefaultLogLevel          = "info"
	DefaultLogFormat         = "text"
)

// Retry policies.
const (
	RetryExponential = "exponential"
	RetryFixed       = "fixed"
)

// Default returns a configuration with every default applied and no page set.
func Default() *ClientConfig {
	cfg := &ClientConfig{}
	cfg.applyDefaults()
	return cfg
}

func (c *ClientConfig) applyDefaults() {
	// Page defaults
	if c.Page.FetchTimeout == 0 {
		c.Page.FetchTimeout = DefaultFetchTimeout
	}
	if c.Page.FetchRetries == 0 {
		c.Page.FetchRetries = DefaultFetchRetries
	}

	// Connection defaults
	if c.Connection.Path == "" {
		c.Connection.Path = DefaultPath
	}
	if c.Connection.RetryPolicy == "" {
		c.Connection.RetryPolicy = DefaultRetryPolicy
	}
	if c.Connection.MaxAttempts == 0 {
		c.Connection.MaxAttempts = DefaultMaxAttempts
	}
	if c.Connection.BaseDelay == 0 {
		c.Connection.BaseDelay = DefaultBaseDelay
	}
	if c.Connection.GrowthFactor == 0 {
		c.Connection.GrowthFactor = DefaultGrowthFactor
	}
	if c.Connection.MaxDelay == 0 {
		c.Connection.MaxDelay = DefaultMaxDelay
	}
	if c.Connection.HandshakeTimeout == 0 {
		c.Connection.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if c.Connection.WriteTimeout == 0 {
		c.Connection.WriteTimeout = DefaultWriteTimeout
	}
	if c.Connection.PingInterval == 0 {
		c.Connection.PingInterval = DefaultPingInterval
	}
	if c.Connection.PingTimeout == 0 {
		c.Connection.PingTimeout = DefaultPingTimeout
	}
	if c.Connection.BufferSize == 0 {
		c.Connection.BufferSize = DefaultBufferSize
	}

	// UI defaults
	if c.UI.StatusRevertDelay == 0 {
		c.UI.StatusRevertDelay = DefaultStatusRevertDelay
	}
	if c.UI.TimeFormat == "" {
		c.UI.TimeFormat = DefaultTimeFormat
	}

	// Log defaults
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Log.Format == "" {
		c.Log.Format = DefaultLogFormat
	}
}
