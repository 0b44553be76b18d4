package domain

import (
	"strings"

	"task-manager/internal/errors"
)

// Theme is the UI color scheme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme parses a theme name case-insensitively.
func ParseTheme(s string) (Theme, error) {
	switch Theme(strings.ToLower(strings.TrimSpace(s))) {
	case ThemeLight:
		return ThemeLight, nil
	case ThemeDark:
		return ThemeDark, nil
	}
	return "", errors.NewInvalidInputError("theme", s, "must be light or dark")
}

// Preferences are the session settings shown on the settings screen.
type Preferences struct {
	Theme              Theme `json:"theme" yaml:"theme"`
	Notifications      bool  `json:"notifications" yaml:"notifications"`
	EmailNotifications bool  `json:"email_notifications" yaml:"email_notifications"`
	SoundEffects       bool  `json:"sound_effects" yaml:"sound_effects"`
}

// PreferencesUpdate carries optional changes to Preferences. Nil fields are left alone.
type PreferencesUpdate struct {
	Theme              *Theme
	Notifications      *bool
	EmailNotifications *bool
	SoundEffects       *bool
}

// Apply returns p with the non-nil fields of u applied.
func (u PreferencesUpdate) Apply(p Preferences) Preferences {
	if u.Theme != nil {
		p.Theme = *u.Theme
	}
	if u.Notifications != nil {
		p.Notifications = *u.Notifications
	}
	if u.EmailNotifications != nil {
		p.EmailNotifications = *u.EmailNotifications
	}
	if u.SoundEffects != nil {
		p.SoundEffects = *u.SoundEffects
	}
	return p
}
