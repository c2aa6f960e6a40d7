// Package config loads sheetvrt settings from built-in defaults, an
// optional YAML file and the environment, in that order.
package config

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheetvrt-go/pkg/sheetvrt/window"
)

// Config holds all settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Build   BuildConfig   `yaml:"build"`
	// Drivers overrides or extends the built-in driver table.
	Drivers map[string]window.DriverPolicy `yaml:"drivers"`
	// Headers maps a driver to FORCE, DISABLE or AUTO.
	Headers map[string]string `yaml:"headers"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	// Level is debug, info, warn or error (default: info)
	Level string `yaml:"level" env:"SHEETVRT_LOG_LEVEL" default:"info"`

	// Format is text or json (default: text)
	Format string `yaml:"format" env:"SHEETVRT_LOG_FORMAT" default:"text"`
}

// BuildConfig holds descriptor build settings.
type BuildConfig struct {
	// SampleRows caps preview inference (default: 20)
	SampleRows int `yaml:"sample_rows" env:"SHEETVRT_SAMPLE_ROWS" default:"20"`

	// SQLPointCompat is set when the target library accepts SQL selections
	// together with point-from-columns geometry (default: false)
	SQLPointCompat bool `yaml:"sql_point_compat" env:"SHEETVRT_SQL_POINT_COMPAT" default:"false"`
}

// Policies merges the driver table and header overrides over the
// built-in defaults.
func (c *Config) Policies() (window.Policies, error) {
	p := window.DefaultPolicies()
	for id, dp := range c.Drivers {
		p.Drivers[strings.ToUpper(id)] = dp
	}
	for id, v := range c.Headers {
		mode, err := window.ParseHeaderMode(v)
		if err != nil {
			return p, fmt.Errorf("headers.%s: %w", id, err)
		}
		p.Overrides[strings.ToUpper(id)] = mode
	}
	return p, nil
}

// Validate checks that the configuration is valid.
// Returns an error describing all validation failures.
func (c *Config) Validate() error {
	var errs []string

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Sprintf("log level (%q) must be one of: debug, info, warn, error", c.Logging.Level))
	}

	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Sprintf("log format (%q) must be one of: text, json", c.Logging.Format))
	}

	if c.Build.SampleRows <= 0 {
		errs = append(errs, "sample rows must be positive")
	}

	for id, v := range c.Headers {
		if _, err := window.ParseHeaderMode(v); err != nil {
			errs = append(errs, fmt.Sprintf("headers.%s: %v", id, err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}

	return nil
}
