package config

import (
	"os"
	"strconv"
	"time"
)

// ConfigFileEnv names the environment variable pointing at an optional TOML file.
const ConfigFileEnv = "TM_CONFIG"

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the TOML file named by TM_CONFIG, if any
// 3. Override with environment variables
// 4. Override with command line flags (handled by cobra)
func (l *Loader) Load() (*Config, error) {
	if path := os.Getenv(ConfigFileEnv); path != "" {
		if err := l.config.LoadFromFile(path); err != nil {
			return nil, err
		}
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	config.ApplyOverrides(overrides)

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Store overrides
	StoreDSN     *string
	QueryTimeout *time.Duration
	WriteTimeout *time.Duration
	SeedFile     *string

	// Time overrides
	Timezone   *string
	DateFormat *string

	// Validation overrides
	TitleMinLength *int
	TitleMaxLength *int

	// Display overrides
	DefaultTab *string
	ListWidth  *int

	// Application overrides
	Timeout   *time.Duration
	Verbose   *bool
	LogLevel  *string
	LogFormat *string

	// Commands overrides
	ExportDefaultFormat *string
}

// ApplyOverrides applies command line overrides to the configuration.
// A nil overrides changes nothing.
func (c *Config) ApplyOverrides(overrides *ConfigOverrides) {
	if overrides == nil {
		return
	}
	setString(&c.Store.DSN, overrides.StoreDSN)
	if overrides.QueryTimeout != nil {
		c.Store.QueryTimeout = *overrides.QueryTimeout
	}
	if overrides.WriteTimeout != nil {
		c.Store.WriteTimeout = *overrides.WriteTimeout
	}
	setString(&c.Store.SeedFile, overrides.SeedFile)

	setString(&c.Time.Timezone, overrides.Timezone)
	setString(&c.Time.DisplayDateFormat, overrides.DateFormat)

	setInt(&c.Validation.TitleMinLength, overrides.TitleMinLength)
	setInt(&c.Validation.TitleMaxLength, overrides.TitleMaxLength)

	setString(&c.Display.DefaultTab, overrides.DefaultTab)
	setInt(&c.Display.ListWidth, overrides.ListWidth)

	if overrides.Timeout != nil {
		c.Application.Timeout = *overrides.Timeout
	}
	setBool(&c.Application.Verbose, overrides.Verbose)
	setString(&c.Application.LogLevel, overrides.LogLevel)
	setString(&c.Application.LogFormat, overrides.LogFormat)

	setString(&c.Commands.ExportDefaultFormat, overrides.ExportDefaultFormat)
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
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
