package config

import (
	"strconv"
	"time"

	"taskflow/internal/logging"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
	logger *logging.Logger
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
		logger: logging.Default(false),
	}
}

// WithLogger sets the logger used to report configuration problems
func (l *Loader) WithLogger(logger *logging.Logger) *Loader {
	l.logger = logger
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with environment variables
// 3. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.validate(l.config); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if overrides != nil {
		l.applyOverrides(l.config, overrides)
	}

	if err := l.validate(l.config); err != nil {
		return nil, err
	}

	return l.config, nil
}

// validate runs Config.Validate and logs a misconfigured base URL loudly
func (l *Loader) validate(cfg *Config) error {
	err := cfg.Validate()
	if cfgErr, ok := err.(*ConfigError); ok && cfgErr.Field == "api.base_url" {
		l.logger.Warn("refusing to use misconfigured API base URL", logging.Fields{
			"value":  strconv.Quote(cfg.API.BaseURL),
			"reason": cfgErr.Message,
		})
	}
	return err
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	APIURL          *string
	SessionDir      *string
	SessionFilename *string
	DateFormat      *string
	DefaultFilter   *string
	Timeout         *time.Duration
	Verbose         *bool
	MetricsFile     *string
}

// applyOverrides applies command line overrides to the configuration
func (l *Loader) applyOverrides(config *Config, overrides *ConfigOverrides) {
	if overrides.APIURL != nil {
		config.API.BaseURL = *overrides.APIURL
	}
	if overrides.SessionDir != nil {
		config.Session.Dir = *overrides.SessionDir
	}
	if overrides.SessionFilename != nil {
		config.Session.Filename = *overrides.SessionFilename
	}
	if overrides.DateFormat != nil {
		config.Display.DateFormat = *overrides.DateFormat
	}
	if overrides.DefaultFilter != nil {
		config.Display.DefaultFilter = *overrides.DefaultFilter
	}
	if overrides.Timeout != nil {
		config.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		config.Application.Verbose = *overrides.Verbose
	}
	if overrides.MetricsFile != nil {
		config.Metrics.TextfilePath = *overrides.MetricsFile
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
