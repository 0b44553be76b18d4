package config

import (
	"os"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/robfig/cron/v3"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

// Config holds all configuration options for the task manager
type Config struct {
	Store       StoreConfig
	Time        TimeConfig
	Validation  ValidationConfig
	Display     DisplayConfig
	Application ApplicationConfig
	Preferences PreferencesConfig
	Reminders   RemindersConfig
	Commands    CommandsConfig
}

// StoreConfig holds task store configuration
type StoreConfig struct {
	DSN          string        `env:"TM_STORE_DSN"`
	QueryTimeout time.Duration `env:"TM_STORE_QUERY_TIMEOUT"`
	WriteTimeout time.Duration `env:"TM_STORE_WRITE_TIMEOUT"`
	SeedFile     string        `env:"TM_SEED_FILE"`
}

// TimeConfig holds calendar configuration
type TimeConfig struct {
	Timezone          string `env:"TM_TIMEZONE"`
	DisplayDateFormat string `env:"TM_DATE_FORMAT"`
}

// ValidationConfig holds validation rules configuration
type ValidationConfig struct {
	TitleMinLength        int `env:"TM_VALIDATION_TITLE_MIN"`
	TitleMaxLength        int `env:"TM_VALIDATION_TITLE_MAX"`
	CategoryNameMaxLength int `env:"TM_VALIDATION_CATEGORY_NAME_MAX"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DefaultTab string `env:"TM_DEFAULT_TAB"`
	ListWidth  int    `env:"TM_DISPLAY_LIST_WIDTH"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout   time.Duration `env:"TM_APP_TIMEOUT"`
	Verbose   bool          `env:"TM_APP_VERBOSE"`
	LogLevel  string        `env:"TM_LOG_LEVEL"`
	LogFormat string        `env:"TM_LOG_FORMAT"`
}

// PreferencesConfig holds the settings a session starts with
type PreferencesConfig struct {
	Theme              string `env:"TM_THEME"`
	Notifications      bool   `env:"TM_NOTIFICATIONS"`
	EmailNotifications bool   `env:"TM_EMAIL_NOTIFICATIONS"`
	SoundEffects       bool   `env:"TM_SOUND_EFFECTS"`
}

// RemindersConfig holds the due-today reminder schedule
type RemindersConfig struct {
	Schedule string `env:"TM_REMINDER_SCHEDULE"`
}

// CommandsConfig holds command-specific defaults
type CommandsConfig struct {
	ExportDefaultFormat string `env:"TM_EXPORT_DEFAULT_FORMAT"`
}

// ExportFormats lists the formats the export command accepts.
var ExportFormats = []string{"csv", "json", "yaml"}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Store: StoreConfig{
			DSN:          ":memory:",
			QueryTimeout: 10 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Time: TimeConfig{
			Timezone:          "UTC",
			DisplayDateFormat: "Jan 2, 2006",
		},
		Validation: ValidationConfig{
			TitleMinLength:        1,
			TitleMaxLength:        255,
			CategoryNameMaxLength: 50,
		},
		Display: DisplayConfig{
			DefaultTab: string(domain.TabAll),
			ListWidth:  72,
		},
		Application: ApplicationConfig{
			Timeout:   60 * time.Second,
			LogLevel:  "info",
			LogFormat: "text",
		},
		Preferences: PreferencesConfig{
			Theme:              string(domain.ThemeLight),
			Notifications:      true,
			EmailNotifications: false,
			SoundEffects:       true,
		},
		Reminders: RemindersConfig{
			Schedule: "@every 30m",
		},
		Commands: CommandsConfig{
			ExportDefaultFormat: "csv",
		},
	}
}

// GetQueryTimeout returns the store query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Store.QueryTimeout
}

// GetWriteTimeout returns the store write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Store.WriteTimeout
}

// Location returns the configured time zone, falling back to UTC.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Time.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DefaultTab returns the configured starting tab.
func (c *Config) DefaultTab() domain.Tab {
	tab, err := domain.ParseTab(c.Display.DefaultTab)
	if err != nil {
		return domain.TabAll
	}
	return tab
}

// DefaultPreferences returns the preferences a session starts with.
func (c *Config) DefaultPreferences() domain.Preferences {
	theme, err := domain.ParseTheme(c.Preferences.Theme)
	if err != nil {
		theme = domain.ThemeLight
	}
	return domain.Preferences{
		Theme:              theme,
		Notifications:      c.Preferences.Notifications,
		EmailNotifications: c.Preferences.EmailNotifications,
		SoundEffects:       c.Preferences.SoundEffects,
	}
}

// LoadFromEnvironment loads configuration from environment variables.
// Unparseable values are ignored and the current value kept.
func (c *Config) LoadFromEnvironment() error {
	// Store configuration
	if dsn := os.Getenv("TM_STORE_DSN"); dsn != "" {
		c.Store.DSN = dsn
	}
	if timeout := os.Getenv("TM_STORE_QUERY_TIMEOUT"); timeout != "" {
		c.Store.QueryTimeout = ParseDurationWithFallback(timeout, c.Store.QueryTimeout)
	}
	if timeout := os.Getenv("TM_STORE_WRITE_TIMEOUT"); timeout != "" {
		c.Store.WriteTimeout = ParseDurationWithFallback(timeout, c.Store.WriteTimeout)
	}
	if seed := os.Getenv("TM_SEED_FILE"); seed != "" {
		c.Store.SeedFile = seed
	}

	// Time configuration
	if tz := os.Getenv("TM_TIMEZONE"); tz != "" {
		c.Time.Timezone = tz
	}
	if format := os.Getenv("TM_DATE_FORMAT"); format != "" {
		c.Time.DisplayDateFormat = format
	}

	// Validation configuration
	if minLen := os.Getenv("TM_VALIDATION_TITLE_MIN"); minLen != "" {
		c.Validation.TitleMinLength = ParseIntWithFallback(minLen, c.Validation.TitleMinLength)
	}
	if maxLen := os.Getenv("TM_VALIDATION_TITLE_MAX"); maxLen != "" {
		c.Validation.TitleMaxLength = ParseIntWithFallback(maxLen, c.Validation.TitleMaxLength)
	}
	if maxLen := os.Getenv("TM_VALIDATION_CATEGORY_NAME_MAX"); maxLen != "" {
		c.Validation.CategoryNameMaxLength = ParseIntWithFallback(maxLen, c.Validation.CategoryNameMaxLength)
	}

	// Display configuration
	if tab := os.Getenv("TM_DEFAULT_TAB"); tab != "" {
		c.Display.DefaultTab = tab
	}
	if width := os.Getenv("TM_DISPLAY_LIST_WIDTH"); width != "" {
		c.Display.ListWidth = ParseIntWithFallback(width, c.Display.ListWidth)
	}

	// Application configuration
	if timeout := os.Getenv("TM_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("TM_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}
	if level := os.Getenv("TM_LOG_LEVEL"); level != "" {
		c.Application.LogLevel = level
	}
	if format := os.Getenv("TM_LOG_FORMAT"); format != "" {
		c.Application.LogFormat = format
	}

	// Preferences
	if theme := os.Getenv("TM_THEME"); theme != "" {
		c.Preferences.Theme = theme
	}
	if v := os.Getenv("TM_NOTIFICATIONS"); v != "" {
		c.Preferences.Notifications = ParseBoolWithFallback(v, c.Preferences.Notifications)
	}
	if v := os.Getenv("TM_EMAIL_NOTIFICATIONS"); v != "" {
		c.Preferences.EmailNotifications = ParseBoolWithFallback(v, c.Preferences.EmailNotifications)
	}
	if v := os.Getenv("TM_SOUND_EFFECTS"); v != "" {
		c.Preferences.SoundEffects = ParseBoolWithFallback(v, c.Preferences.SoundEffects)
	}

	// Reminders
	if schedule := os.Getenv("TM_REMINDER_SCHEDULE"); schedule != "" {
		c.Reminders.Schedule = schedule
	}

	// Commands configuration
	if format := os.Getenv("TM_EXPORT_DEFAULT_FORMAT"); format != "" {
		c.Commands.ExportDefaultFormat = format
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Store configuration
	if c.Store.DSN == "" {
		return errors.NewConfigError("store.dsn", "store DSN cannot be empty")
	}
	if c.Store.QueryTimeout <= 0 {
		return errors.NewConfigError("store.query_timeout", "query timeout must be positive")
	}
	if c.Store.WriteTimeout <= 0 {
		return errors.NewConfigError("store.write_timeout", "write timeout must be positive")
	}

	// Time configuration
	if _, err := time.LoadLocation(c.Time.Timezone); err != nil {
		return errors.NewConfigError("time.timezone", "unknown time zone "+c.Time.Timezone)
	}
	if c.Time.DisplayDateFormat == "" {
		return errors.NewConfigError("time.display_date_format", "display date format cannot be empty")
	}

	// Validation configuration
	if c.Validation.TitleMinLength < 1 {
		return errors.NewConfigError("validation.title_min_length", "title minimum length must be at least 1")
	}
	if c.Validation.TitleMaxLength < c.Validation.TitleMinLength {
		return errors.NewConfigError("validation.title_max_length", "title maximum length must be greater than minimum length")
	}
	if c.Validation.CategoryNameMaxLength < 1 {
		return errors.NewConfigError("validation.category_name_max_length", "category name maximum length must be at least 1")
	}

	// Display configuration
	if _, err := domain.ParseTab(c.Display.DefaultTab); err != nil {
		return errors.NewConfigError("display.default_tab", "must be one of all, today, upcoming, completed")
	}
	if c.Display.ListWidth < 20 {
		return errors.NewConfigError("display.list_width", "list width must be at least 20")
	}

	// Application configuration
	if c.Application.Timeout <= 0 {
		return errors.NewConfigError("application.timeout", "application timeout must be positive")
	}
	if !oneOf(c.Application.LogLevel, "debug", "info", "warn", "warning", "error") {
		return errors.NewConfigError("application.log_level", "must be one of debug, info, warn, error")
	}
	if !oneOf(c.Application.LogFormat, "text", "json", "logfmt") {
		return errors.NewConfigError("application.log_format", "must be one of text, json, logfmt")
	}

	// Preferences
	if _, err := domain.ParseTheme(c.Preferences.Theme); err != nil {
		return errors.NewConfigError("preferences.theme", "must be light or dark")
	}

	// Reminders
	if _, err := cron.ParseStandard(c.Reminders.Schedule); err != nil {
		return errors.NewConfigError("reminders.schedule", err.Error())
	}

	// Commands configuration
	if !oneOf(c.Commands.ExportDefaultFormat, ExportFormats...) {
		return errors.NewConfigError("commands.export_default_format", "must be one of csv, json, yaml")
	}

	return nil
}

func oneOf(value string, allowed ...string) bool {
	for _, a := range allowed {
		if strings.EqualFold(value, a) {
			return true
		}
	}
	return false
}
