// Package reminder runs an hourly check for due cards and nudges the user
// during waking hours.
package reminder

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/doughub/doughub/internal/card"
	"github.com/doughub/doughub/internal/config"
	"github.com/go-co-op/gocron"
)

//go:generate mockgen -source=reminder.go -destination=../mocks/reminder/mock_notifier.go -package=mock_reminder Notifier

// Notifier delivers one reminder about due cards.
type Notifier interface {
	Notify(ctx context.Context, dueCount int) error
}

// Scheduler manages the periodic due-card check.
type Scheduler struct {
	scheduler *gocron.Scheduler
	cards     card.Repository
	notifier  Notifier
	cfg       config.ReminderConfig
	now       func() time.Time
}

// New creates a reminder scheduler. Reminders fire only between the
// configured start and end hours, inclusive.
func New(cards card.Repository, notifier Notifier, cfg config.ReminderConfig) *Scheduler {
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.Local),
		cards:     cards,
		notifier:  notifier,
		cfg:       cfg,
		now:       time.Now,
	}
}

// Start begins the hourly check without blocking.
func (s *Scheduler) Start() error {
	if _, err := s.scheduler.Every(1).Hour().Do(s.checkAndNotify); err != nil {
		return fmt.Errorf("scheduler.Every(1).Hour().Do() > %w", err)
	}
	s.scheduler.StartAsync()
	return nil
}

// Stop terminates the scheduled check.
func (s *Scheduler) Stop() {
	s.scheduler.Stop()
}

// RunOnce forces a single due-card check regardless of the hour window.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	dueCount, err := s.cards.CountDue(ctx, s.now())
	if err != nil {
		return fmt.Errorf("cards.CountDue() > %w", err)
	}
	if dueCount == 0 {
		return nil
	}
	if err := s.notifier.Notify(ctx, dueCount); err != nil {
		return fmt.Errorf("notifier.Notify() > %w", err)
	}
	return nil
}

func (s *Scheduler) checkAndNotify() {
	currentHour := s.now().Hour()
	if currentHour < s.cfg.StartHour || currentHour > s.cfg.EndHour {
		slog.Debug("outside reminder hours, skipping",
			"hour", currentHour,
			"start_hour", s.cfg.StartHour,
			"end_hour", s.cfg.EndHour,
		)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.RunOnce(ctx); err != nil {
		slog.Error("reminder check failed", "error", err)
	}
}
