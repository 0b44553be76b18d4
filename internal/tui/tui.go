// Package tui provides the interactive terminal interface.
package tui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"task-manager/internal/api"
	"task-manager/internal/config"
	"task-manager/internal/domain"
	"task-manager/internal/services"
)

// Run starts the UI over businessAPI and blocks until the user quits.
// While it runs, the reminder job posts due-today digests into the UI.
func Run(ctx context.Context, businessAPI api.BusinessAPI, cfg *config.Config) error {
	if cfg == nil {
		cfg = config.NewConfig()
	}

	model := NewModel(ctx, businessAPI, cfg)
	program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	scheduler := services.NewSchedulerService(cfg.Location())
	svc := businessAPI.Services()
	if _, err := scheduler.ScheduleReminders(cfg.Reminders.Schedule, svc.ReminderService, svc.SettingsService,
		cfg.Application.Timeout, func(tasks []*domain.Task) {
			program.Send(ReminderMsg{Tasks: tasks})
		}); err != nil {
		return err
	}
	scheduler.Start()
	defer scheduler.Stop()

	_, err := program.Run()
	return err
}
