package config

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/logging"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, DefaultAPIURL, cfg.API.BaseURL)
	assert.Equal(t, "session.db", cfg.Session.Filename)
	assert.Equal(t, uint32(0700), cfg.Session.DirPermissions)
	assert.Equal(t, "all", cfg.Display.DefaultFilter)
	assert.Equal(t, 60*time.Second, cfg.Application.Timeout)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("TASKFLOW_API_URL", "http://localhost:5000/api")
	t.Setenv("TASKFLOW_SESSION_DIR", "/tmp/tf")
	t.Setenv("TASKFLOW_SESSION_FILENAME", "s.db")
	t.Setenv("TASKFLOW_SESSION_DIR_PERMISSIONS", "750")
	t.Setenv("TASKFLOW_DATE_FORMAT", "02 Jan 2006")
	t.Setenv("TASKFLOW_DEFAULT_FILTER", "pending")
	t.Setenv("TASKFLOW_APP_TIMEOUT", "5s")
	t.Setenv("TASKFLOW_APP_VERBOSE", "true")
	t.Setenv("TASKFLOW_METRICS_FILE", "/tmp/tf.prom")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, "http://localhost:5000/api", cfg.API.BaseURL)
	assert.Equal(t, "/tmp/tf/s.db", cfg.GetSessionPath())
	assert.Equal(t, uint32(0750), cfg.Session.DirPermissions)
	assert.Equal(t, "02 Jan 2006", cfg.Display.DateFormat)
	assert.Equal(t, "pending", cfg.Display.DefaultFilter)
	assert.Equal(t, 5*time.Second, cfg.Application.Timeout)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, "/tmp/tf.prom", cfg.Metrics.TextfilePath)
}

func TestLoadFromEnvironment_IgnoresUnparsableValues(t *testing.T) {
	t.Setenv("TASKFLOW_APP_TIMEOUT", "soon")
	t.Setenv("TASKFLOW_APP_VERBOSE", "maybe")

	cfg := NewConfig()
	require.NoError(t, cfg.LoadFromEnvironment())

	assert.Equal(t, 60*time.Second, cfg.Application.Timeout)
	assert.False(t, cfg.Application.Verbose)
}

func TestValidateBaseURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"https", "https://todo-backend.example.com", false},
		{"http with port and path", "http://localhost:5000/api", false},
		{"empty", "", true},
		{"relative path", "/api", true},
		{"protocol relative", "//todo-backend.example.com", true},
		{"missing scheme", "todo-backend.example.com", true},
		{"wrong scheme", "ftp://todo-backend.example.com", true},
		{"no host", "https://", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBaseURL(tt.url)
			if tt.wantErr {
				var cfgErr *ConfigError
				require.ErrorAs(t, err, &cfgErr)
				assert.Equal(t, "api.base_url", cfgErr.Field)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		mod   func(*Config)
		field string
	}{
		{"empty session dir", func(c *Config) { c.Session.Dir = "" }, "session.dir"},
		{"empty session filename", func(c *Config) { c.Session.Filename = "" }, "session.filename"},
		{"empty date format", func(c *Config) { c.Display.DateFormat = "" }, "display.date_format"},
		{"unknown filter", func(c *Config) { c.Display.DefaultFilter = "archived" }, "display.default_filter"},
		{"zero timeout", func(c *Config) { c.Application.Timeout = 0 }, "application.timeout"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mod(cfg)
			var cfgErr *ConfigError
			require.ErrorAs(t, cfg.Validate(), &cfgErr)
			assert.Equal(t, tt.field, cfgErr.Field)
		})
	}
}

func TestLoader_WarnsOnMisconfiguredBaseURL(t *testing.T) {
	t.Setenv("TASKFLOW_API_URL", "todo-backend.example.com/api")

	var buf bytes.Buffer
	_, err := NewLoader().WithLogger(logging.NewLogger(&buf, logging.LevelWarn)).Load()

	require.Error(t, err)
	assert.Contains(t, buf.String(), "WARN refusing to use misconfigured API base URL")
	assert.Contains(t, buf.String(), "todo-backend.example.com/api")
}

func TestLoader_LoadWithOverrides(t *testing.T) {
	t.Setenv("TASKFLOW_API_URL", "https://env.example.com")

	apiURL := "http://127.0.0.1:8080"
	timeout := 3 * time.Second
	verbose := true
	filter := "completed"

	cfg, err := NewLoader().WithLogger(logging.Discard()).LoadWithOverrides(&ConfigOverrides{
		APIURL:        &apiURL,
		Timeout:       &timeout,
		Verbose:       &verbose,
		DefaultFilter: &filter,
	})
	require.NoError(t, err)

	assert.Equal(t, apiURL, cfg.API.BaseURL)
	assert.Equal(t, timeout, cfg.Application.Timeout)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, "completed", cfg.Display.DefaultFilter)
}

func TestLoader_OverrideCanStillFailValidation(t *testing.T) {
	bad := "/api"
	_, err := NewLoader().WithLogger(logging.Discard()).LoadWithOverrides(&ConfigOverrides{APIURL: &bad})
	assert.Error(t, err)
}

func TestParseWithFallback(t *testing.T) {
	assert.Equal(t, 2*time.Second, ParseDurationWithFallback("2s", time.Second))
	assert.Equal(t, time.Second, ParseDurationWithFallback("x", time.Second))
	assert.True(t, ParseBoolWithFallback("1", false))
	assert.False(t, ParseBoolWithFallback("x", false))
	assert.Equal(t, uint32(0755), ParseUint32WithFallback("755", 8, 0700))
	assert.Equal(t, uint32(0700), ParseUint32WithFallback("9z", 8, 0700))
}
