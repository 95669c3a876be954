package config

import (
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// DefaultAPIURL is used when TASKFLOW_API_URL is not set
const DefaultAPIURL = "https://todo-backend-snps.onrender.com"

// Config holds all configuration options for the taskflow client
type Config struct {
	API         APIConfig
	Session     SessionConfig
	Display     DisplayConfig
	Application ApplicationConfig
	Metrics     MetricsConfig
}

// APIConfig holds backend connection configuration
type APIConfig struct {
	BaseURL string `env:"TASKFLOW_API_URL"`
}

// SessionConfig holds the location of the durable session store
type SessionConfig struct {
	Dir            string `env:"TASKFLOW_SESSION_DIR"`
	Filename       string `env:"TASKFLOW_SESSION_FILENAME"`
	DirPermissions uint32 `env:"TASKFLOW_SESSION_DIR_PERMISSIONS"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DateFormat    string `env:"TASKFLOW_DATE_FORMAT"`
	DefaultFilter string `env:"TASKFLOW_DEFAULT_FILTER"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"TASKFLOW_APP_TIMEOUT"`
	Verbose bool          `env:"TASKFLOW_APP_VERBOSE"`
}

// MetricsConfig holds request metrics export configuration
type MetricsConfig struct {
	TextfilePath string `env:"TASKFLOW_METRICS_FILE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultSessionDir := filepath.Join(homeDir, ".taskflow")

	return &Config{
		API: APIConfig{
			BaseURL: DefaultAPIURL,
		},
		Session: SessionConfig{
			Dir:            defaultSessionDir,
			Filename:       "session.db",
			DirPermissions: 0700,
		},
		Display: DisplayConfig{
			DateFormat:    "2006-01-02",
			DefaultFilter: "all",
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
	}
}

// GetSessionPath returns the full path to the session database file
func (c *Config) GetSessionPath() string {
	return filepath.Join(c.Session.Dir, c.Session.Filename)
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// API configuration
	if baseURL := os.Getenv("TASKFLOW_API_URL"); baseURL != "" {
		c.API.BaseURL = baseURL
	}

	// Session configuration
	if dir := os.Getenv("TASKFLOW_SESSION_DIR"); dir != "" {
		c.Session.Dir = dir
	}
	if filename := os.Getenv("TASKFLOW_SESSION_FILENAME"); filename != "" {
		c.Session.Filename = filename
	}
	if perms := os.Getenv("TASKFLOW_SESSION_DIR_PERMISSIONS"); perms != "" {
		c.Session.DirPermissions = ParseUint32WithFallback(perms, 8, c.Session.DirPermissions)
	}

	// Display configuration
	if format := os.Getenv("TASKFLOW_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}
	if filter := os.Getenv("TASKFLOW_DEFAULT_FILTER"); filter != "" {
		c.Display.DefaultFilter = filter
	}

	// Application configuration
	if timeout := os.Getenv("TASKFLOW_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TASKFLOW_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	// Metrics configuration
	if path := os.Getenv("TASKFLOW_METRICS_FILE"); path != "" {
		c.Metrics.TextfilePath = path
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate API configuration
	if err := ValidateBaseURL(c.API.BaseURL); err != nil {
		return err
	}

	// Validate session configuration
	if c.Session.Dir == "" {
		return &ConfigError{Field: "session.dir", Message: "session directory cannot be empty"}
	}
	if c.Session.Filename == "" {
		return &ConfigError{Field: "session.filename", Message: "session filename cannot be empty"}
	}

	// Validate display configuration
	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}
	switch c.Display.DefaultFilter {
	case "all", "pending", "completed":
	default:
		return &ConfigError{Field: "display.default_filter", Message: "default filter must be one of all, pending, completed"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	return nil
}

// ValidateBaseURL checks that the backend URL is absolute with an http(s) scheme and a host
func ValidateBaseURL(raw string) error {
	if raw == "" {
		return &ConfigError{Field: "api.base_url", Message: "API base URL cannot be empty"}
	}
	u, err := url.Parse(raw)
	if err != nil {
		return &ConfigError{Field: "api.base_url", Message: "API base URL is not a valid URL: " + err.Error()}
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return &ConfigError{Field: "api.base_url", Message: "API base URL must start with http:// or https://, got " + strconv.Quote(raw)}
	}
	if u.Host == "" {
		return &ConfigError{Field: "api.base_url", Message: "API base URL must include a host, got " + strconv.Quote(raw)}
	}
	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
