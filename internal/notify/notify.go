// Package notify schedules the daily expense reminder.
package notify

import (
	"context"
	gosync "sync"
	"time"

	"github.com/rs/zerolog"
)

// Reminder texts shown to the user.
const (
	ReminderTitle = "Expense Reminder"
	ReminderBody  = "Don't forget to log your expenses for today!"
)

// DefaultHour and DefaultMinute place the reminder at 8 PM.
const (
	DefaultHour   = 20
	DefaultMinute = 0
)

// Scheduler fires the daily reminder. Scheduling again replaces the
// previous schedule so that the reminder never fires twice a day.
type Scheduler interface {
	ScheduleDaily(hour, minute int) error
	Cancel()
}

// LogScheduler is a Scheduler that emits the reminder to the log. It
// stands in for a push delivery channel.
type LogScheduler struct {
	log zerolog.Logger
	now func() time.Time

	mu     gosync.Mutex
	cancel context.CancelFunc
}

// NewLogScheduler returns a scheduler without an active schedule.
func NewLogScheduler(log zerolog.Logger) *LogScheduler {
	return &LogScheduler{log: log, now: time.Now}
}

// ScheduleDaily starts a daily reminder at the given wall clock time,
// replacing any previous schedule.
func (s *LogScheduler) ScheduleDaily(hour, minute int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel

	go s.run(ctx, hour, minute)
	s.log.Info().Int("hour", hour).Int("minute", minute).Msg("daily reminder scheduled")

	return nil
}

// Cancel stops the reminder.
func (s *LogScheduler) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		s.log.Info().Msg("daily reminder canceled")
	}
}

func (s *LogScheduler) run(ctx context.Context, hour, minute int) {
	for {
		timer := time.NewTimer(time.Until(next(s.now(), hour, minute)))

		select {
		case <-ctx.Done():
			timer.Stop()
			return
		case <-timer.C:
			s.log.Info().Str("title", ReminderTitle).Msg(ReminderBody)
		}
	}
}

// next returns the first occurrence of the wall clock time after now.
func next(now time.Time, hour, minute int) time.Time {
	at := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !at.After(now) {
		at = at.AddDate(0, 0, 1)
	}

	return at
}
