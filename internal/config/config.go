package config

import "time"

// ClientConfig is the root configuration for a chat client.
type ClientConfig struct {
	Page       PageConfig       `yaml:"page"`
	Connection ConnectionConfig `yaml:"connection"`
	UI         UIConfig         `yaml:"ui"`
	Log        LogConfig        `yaml:"log"`
}

// PageConfig describes the chat page the client attaches to.
type PageConfig struct {
	URL           string        `yaml:"url"`            // Chat page URL; its scheme and host pick the endpoint
	SessionCookie string        `yaml:"session_cookie"` // Cookie header value sent with the page fetch and the handshake
	UserEmail     string        `yaml:"user_email"`     // Current user identity; read from the page when empty
	FetchTimeout  time.Duration `yaml:"fetch_timeout"`
	FetchRetries  int           `yaml:"fetch_retries"`
}

// ConnectionConfig holds WebSocket and reconnect settings.
type ConnectionConfig struct {
	Path             string        `yaml:"path"`
	RetryPolicy      string        `yaml:"retry_policy"` // "exponential" or "fixed"
	MaxAttempts      int           `yaml:"max_attempts"`
	BaseDelay        time.Duration `yaml:"base_delay"`
	GrowthFactor     float64       `yaml:"growth_factor"`
	MaxDelay         time.Duration `yaml:"max_delay"`
	HandshakeTimeout time.Duration `yaml:"handshake_timeout"`
	WriteTimeout     time.Duration `yaml:"write_timeout"`
	PingInterval     time.Duration `yaml:"ping_interval"`
	PingTimeout      time.Duration `yaml:"ping_timeout"`
	BufferSize       int           `yaml:"buffer_size"`
}

// UIConfig holds terminal view settings.
type UIConfig struct {
	StatusRevertDelay time.Duration `yaml:"status_revert_delay"`
	Color             *bool         `yaml:"color"`
	TimeFormat        string        `yaml:"time_format"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text or json
}

// ColorEnabled reports whether terminal output should be coloured.
func (u UIConfig) ColorEnabled() bool {
	return u.Color == nil || *u.Color
}

// overrides are applied from CHAT_* environment variables after the YAML is parsed.
type overrides struct {
	PageURL       string `envconfig:"PAGE_URL"`
	SessionCookie string `envconfig:"SESSION_COOKIE"`
	UserEmail     string `envconfig:"USER_EMAIL"`
	RetryPolicy   string `envconfig:"RETRY_POLICY"`
	MaxAttempts   int    `envconfig:"MAX_ATTEMPTS"`
	LogLevel      string `envconfig:"LOG_LEVEL"`
	LogFormat     string `envconfig:"LOG_FORMAT"`
}
