package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/domain"
	"task-manager/internal/errors"
)

func TestReminderService_DueToday(t *testing.T) {
	repo := setupRepository(t)
	tasks := append(sampleTasks(),
		&domain.Task{ID: "4", Title: "Water plants", Priority: domain.PriorityLow, DueDate: "2023-06-15"},
		&domain.Task{ID: "5", Title: "Already done", Completed: true, Priority: domain.PriorityLow, DueDate: "2023-06-15"},
	)
	seedTasks(t, repo, tasks)

	service := NewReminderService(repo, fixedTimeService())
	due, err := service.DueToday(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"1", "4"}, taskIDs(due))
}

func TestReminderDigest(t *testing.T) {
	assert.Equal(t, "Nothing due today.", ReminderDigest(nil))
	assert.Equal(t, "1 task due today: Pay rent", ReminderDigest([]*domain.Task{{Title: "Pay rent"}}))
	assert.Equal(t, "2 tasks due today: A, B", ReminderDigest([]*domain.Task{{Title: "A"}, {Title: "B"}}))
}

type stubReminders struct {
	tasks []*domain.Task
	err   error
	calls int
}

func (s *stubReminders) DueToday(ctx context.Context) ([]*domain.Task, error) {
	s.calls++
	return s.tasks, s.err
}

func TestReminderJob(t *testing.T) {
	dueTasks := []*domain.Task{{ID: "1", Title: "Pay rent"}}

	tests := []struct {
		name          string
		notifications bool
		reminders     *stubReminders
		wantCalls     int
		wantNotified  bool
	}{
		{"notifies when tasks are due", true, &stubReminders{tasks: dueTasks}, 1, true},
		{"skips when notifications are off", false, &stubReminders{tasks: dueTasks}, 0, false},
		{"stays quiet when nothing is due", true, &stubReminders{}, 1, false},
		{"stays quiet on store errors", true, &stubReminders{err: errors.NewDatabaseError("list", nil)}, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			settings := NewSettingsService(domain.Preferences{Notifications: tt.notifications})
			var notified []*domain.Task

			job := ReminderJob(tt.reminders, settings, time.Second, func(tasks []*domain.Task) {
				notified = tasks
			})
			job()

			assert.Equal(t, tt.wantCalls, tt.reminders.calls)
			if tt.wantNotified {
				assert.Equal(t, dueTasks, notified)
			} else {
				assert.Nil(t, notified)
			}
		})
	}
}

func TestSchedulerService(t *testing.T) {
	scheduler := NewSchedulerService(nil)
	settings := NewSettingsService(domain.Preferences{Notifications: true})

	_, err := scheduler.ScheduleReminders("@every 30m", &stubReminders{}, settings, time.Second, func([]*domain.Task) {})
	require.NoError(t, err)
	assert.Equal(t, 1, scheduler.Entries())

	_, err = scheduler.Schedule("every half hour", func() {})
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeConfig))
	assert.Equal(t, 1, scheduler.Entries())

	scheduler.Start()
	scheduler.Stop()
}
