package services

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/logging"
)

// SchedulerService wraps cron-based jobs.
type SchedulerService struct {
	cron *cron.Cron
}

// NewSchedulerService creates a scheduler evaluating specs in loc
func NewSchedulerService(loc *time.Location) *SchedulerService {
	if loc == nil {
		loc = time.UTC
	}
	return &SchedulerService{
		cron: cron.New(cron.WithLocation(loc)),
	}
}

// Schedule registers job on a standard cron spec or an @every/@daily descriptor
func (s *SchedulerService) Schedule(spec string, job func()) (cron.EntryID, error) {
	id, err := s.cron.AddFunc(spec, job)
	if err != nil {
		return 0, errors.NewConfigError("reminders.schedule", err.Error())
	}
	return id, nil
}

// ScheduleReminders registers the due-today reminder job on spec
func (s *SchedulerService) ScheduleReminders(spec string, reminders ReminderService, settings SettingsService, timeout time.Duration, notify func([]*domain.Task)) (cron.EntryID, error) {
	return s.Schedule(spec, ReminderJob(reminders, settings, timeout, notify))
}

// Entries returns the number of registered jobs
func (s *SchedulerService) Entries() int {
	return len(s.cron.Entries())
}

func (s *SchedulerService) Start() {
	s.cron.Start()
}

// Stop stops the scheduler and waits for running jobs to finish
func (s *SchedulerService) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
}

// ReminderJob returns a job that passes the tasks due today to notify.
// It does nothing while notifications are switched off or nothing is due.
func ReminderJob(reminders ReminderService, settings SettingsService, timeout time.Duration, notify func([]*domain.Task)) func() {
	return func() {
		if !settings.Get().Notifications {
			logging.Debugln("reminder skipped: notifications are off")
			return
		}

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()

		tasks, err := reminders.DueToday(ctx)
		if err != nil {
			logging.Error("reminder check failed", "err", err)
			return
		}
		logging.Debugf("reminder check found %d task(s) due today", len(tasks))
		if len(tasks) == 0 {
			return
		}

		logging.Info(ReminderDigest(tasks))
		notify(tasks)
	}
}
