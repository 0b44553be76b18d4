package cli

import (
	"context"

	"task-manager/internal/domain"
)

// SettingsOptions holds the settings command flags. Nil fields are left alone.
type SettingsOptions struct {
	Theme              *string
	Notifications      *bool
	EmailNotifications *bool
	SoundEffects       *bool
}

// SettingsCommand handles the settings command
type SettingsCommand struct {
	app  *App
	opts SettingsOptions
}

// NewSettingsCommand creates a new settings command handler
func NewSettingsCommand(app *App, opts SettingsOptions) *SettingsCommand {
	return &SettingsCommand{app: app, opts: opts}
}

// Execute applies any given changes and prints the session preferences
func (c *SettingsCommand) Execute(ctx context.Context, args []string) error {
	update := domain.PreferencesUpdate{
		Notifications:      c.opts.Notifications,
		EmailNotifications: c.opts.EmailNotifications,
		SoundEffects:       c.opts.SoundEffects,
	}
	if c.opts.Theme != nil {
		theme, err := domain.ParseTheme(*c.opts.Theme)
		if err != nil {
			return c.app.errorHandler.Handle("update settings", err)
		}
		update.Theme = &theme
	}

	prefs := c.app.businessAPI.UpdatePreferences(update)

	c.app.printf("Theme:               %s\n", domain.Capitalize(string(prefs.Theme)))
	c.app.printf("Notifications:       %s\n", onOff(prefs.Notifications))
	c.app.printf("Email notifications: %s\n", onOff(prefs.EmailNotifications))
	c.app.printf("Sound effects:       %s\n", onOff(prefs.SoundEffects))
	return nil
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}
