package config

import (
	"os"
	"time"

	toml "github.com/pelletier/go-toml/v2"

	"task-manager/internal/errors"
)

// fileConfig mirrors Config as written in a TOML file. Every field is
// optional; durations are strings such as "5s".
type fileConfig struct {
	Store struct {
		DSN          *string `toml:"dsn"`
		QueryTimeout *string `toml:"query_timeout"`
		WriteTimeout *string `toml:"write_timeout"`
		SeedFile     *string `toml:"seed_file"`
	} `toml:"store"`
	Time struct {
		Timezone          *string `toml:"timezone"`
		DisplayDateFormat *string `toml:"display_date_format"`
	} `toml:"time"`
	Validation struct {
		TitleMinLength        *int `toml:"title_min_length"`
		TitleMaxLength        *int `toml:"title_max_length"`
		CategoryNameMaxLength *int `toml:"category_name_max_length"`
	} `toml:"validation"`
	Display struct {
		DefaultTab *string `toml:"default_tab"`
		ListWidth  *int    `toml:"list_width"`
	} `toml:"display"`
	Application struct {
		Timeout   *string `toml:"timeout"`
		Verbose   *bool   `toml:"verbose"`
		LogLevel  *string `toml:"log_level"`
		LogFormat *string `toml:"log_format"`
	} `toml:"application"`
	Preferences struct {
		Theme              *string `toml:"theme"`
		Notifications      *bool   `toml:"notifications"`
		EmailNotifications *bool   `toml:"email_notifications"`
		SoundEffects       *bool   `toml:"sound_effects"`
	} `toml:"preferences"`
	Reminders struct {
		Schedule *string `toml:"schedule"`
	} `toml:"reminders"`
	Commands struct {
		ExportDefaultFormat *string `toml:"export_default_format"`
	} `toml:"commands"`
}

// LoadFromFile overlays the values set in a TOML file onto c.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewConfigError("config file", err.Error())
	}
	return c.LoadFromTOML(data)
}

// LoadFromTOML overlays the values set in a TOML document onto c.
func (c *Config) LoadFromTOML(data []byte) error {
	var fc fileConfig
	if err := toml.Unmarshal(data, &fc); err != nil {
		return errors.NewConfigError("config file", err.Error())
	}

	setString(&c.Store.DSN, fc.Store.DSN)
	if err := setDuration(&c.Store.QueryTimeout, fc.Store.QueryTimeout, "store.query_timeout"); err != nil {
		return err
	}
	if err := setDuration(&c.Store.WriteTimeout, fc.Store.WriteTimeout, "store.write_timeout"); err != nil {
		return err
	}
	setString(&c.Store.SeedFile, fc.Store.SeedFile)

	setString(&c.Time.Timezone, fc.Time.Timezone)
	setString(&c.Time.DisplayDateFormat, fc.Time.DisplayDateFormat)

	setInt(&c.Validation.TitleMinLength, fc.Validation.TitleMinLength)
	setInt(&c.Validation.TitleMaxLength, fc.Validation.TitleMaxLength)
	setInt(&c.Validation.CategoryNameMaxLength, fc.Validation.CategoryNameMaxLength)

	setString(&c.Display.DefaultTab, fc.Display.DefaultTab)
	setInt(&c.Display.ListWidth, fc.Display.ListWidth)

	if err := setDuration(&c.Application.Timeout, fc.Application.Timeout, "application.timeout"); err != nil {
		return err
	}
	setBool(&c.Application.Verbose, fc.Application.Verbose)
	setString(&c.Application.LogLevel, fc.Application.LogLevel)
	setString(&c.Application.LogFormat, fc.Application.LogFormat)

	setString(&c.Preferences.Theme, fc.Preferences.Theme)
	setBool(&c.Preferences.Notifications, fc.Preferences.Notifications)
	setBool(&c.Preferences.EmailNotifications, fc.Preferences.EmailNotifications)
	setBool(&c.Preferences.SoundEffects, fc.Preferences.SoundEffects)

	setString(&c.Reminders.Schedule, fc.Reminders.Schedule)
	setString(&c.Commands.ExportDefaultFormat, fc.Commands.ExportDefaultFormat)

	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, v *string, field string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return errors.NewConfigError(field, "invalid duration "+*v)
	}
	*dst = d
	return nil
}
