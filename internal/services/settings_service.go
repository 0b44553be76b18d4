package services

import (
	"sync"

	"task-manager/internal/domain"
)

// settingsServiceImpl implements the SettingsService interface. The
// reminder job reads preferences from the scheduler goroutine.
type settingsServiceImpl struct {
	mu    sync.RWMutex
	prefs domain.Preferences
}

// NewSettingsService creates a SettingsService starting from defaults
func NewSettingsService(defaults domain.Preferences) SettingsService {
	return &settingsServiceImpl{prefs: defaults}
}

// Get returns a copy of the current preferences
func (s *settingsServiceImpl) Get() domain.Preferences {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.prefs
}

// Update applies the non-nil fields of update and returns the result
func (s *settingsServiceImpl) Update(update domain.PreferencesUpdate) domain.Preferences {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.prefs = update.Apply(s.prefs)
	return s.prefs
}

func (s *settingsServiceImpl) SetTheme(theme domain.Theme) {
	s.Update(domain.PreferencesUpdate{Theme: &theme})
}

func (s *settingsServiceImpl) SetNotifications(on bool) {
	s.Update(domain.PreferencesUpdate{Notifications: &on})
}

func (s *settingsServiceImpl) SetEmailNotifications(on bool) {
	s.Update(domain.PreferencesUpdate{EmailNotifications: &on})
}

func (s *settingsServiceImpl) SetSoundEffects(on bool) {
	s.Update(domain.PreferencesUpdate{SoundEffects: &on})
}
