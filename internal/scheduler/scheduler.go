// Package scheduler owns the card scheduling fields: given a review rating
// it computes the next due date and lifecycle state and persists both, along
// with the review log. The review session engine treats it as a black box
// behind the Service interface.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/doughub/doughub/internal/card"
)

//go:generate mockgen -source=scheduler.go -destination=../mocks/scheduler/mock_service.go -package=mock_scheduler Service

// Service schedules the next review of a card after a rating submission.
type Service interface {
	ScheduleReview(ctx context.Context, cardID int64, rating card.Rating, responseTimeMs *int64) error
}

// SM2Service implements Service with SM-2 derived interval and easiness
// math. The card's Difficulty column stores the easiness factor and
// ScheduledDays the current interval.
type SM2Service struct {
	repo card.Repository
	now  func() time.Time
}

var _ Service = (*SM2Service)(nil)

// NewSM2Service creates a scheduler over the given repository.
func NewSM2Service(repo card.Repository) *SM2Service {
	return &SM2Service{repo: repo, now: time.Now}
}

// ScheduleReview loads the card and its history, applies the rating and
// persists the review log plus the updated scheduling fields.
func (s *SM2Service) ScheduleReview(
	ctx context.Context, cardID int64, rating card.Rating, responseTimeMs *int64,
) error {
	if !rating.IsValid() {
		return fmt.Errorf("invalid rating: %d", int(rating))
	}

	c, err := s.repo.Get(ctx, cardID)
	if err != nil {
		return fmt.Errorf("repo.Get(%d) > %w", cardID, err)
	}
	logs, err := s.repo.FindReviewLogs(ctx, cardID)
	if err != nil {
		return fmt.Errorf("repo.FindReviewLogs(%d) > %w", cardID, err)
	}

	now := s.now()
	streak := correctStreak(logs)
	easiness := c.Difficulty
	if easiness == 0 {
		easiness = DefaultEasiness
	}

	newStreak := streak + 1
	if rating == card.RatingAgain {
		newStreak = 0
	}
	newEasiness := nextEasiness(easiness, rating, streak)
	// A lapse shrinks the interval in proportion to the streak it broke, so
	// the interval math looks at the streak before this review.
	intervalStreak := newStreak
	if rating == card.RatingAgain {
		intervalStreak = streak
	}
	interval := nextInterval(lastInterval(logs), newEasiness, rating, intervalStreak)

	if c.LastReview != nil {
		c.ElapsedDays = int(now.Sub(*c.LastReview).Hours() / 24)
	}
	c.State = nextState(c.State, rating, newStreak)
	c.Difficulty = newEasiness
	c.Stability = float64(interval)
	c.ScheduledDays = interval
	c.Reps++
	if rating == card.RatingAgain {
		c.Lapses++
	}
	c.DueDate = now.AddDate(0, 0, interval)
	lastReview := now
	c.LastReview = &lastReview

	log := &card.ReviewLog{
		CardID:         cardID,
		Rating:         int(rating),
		ResponseTimeMs: responseTimeMs,
		IntervalDays:   interval,
		StateAfter:     c.State,
		ReviewedAt:     now,
	}
	if err := s.repo.InsertReviewLog(ctx, log); err != nil {
		return fmt.Errorf("repo.InsertReviewLog(%d) > %w", cardID, err)
	}
	if err := s.repo.UpdateScheduling(ctx, c); err != nil {
		return fmt.Errorf("repo.UpdateScheduling(%d) > %w", cardID, err)
	}

	slog.Debug("scheduled next review",
		"card_id", cardID,
		"rating", rating.String(),
		"interval_days", interval,
		"state", c.State.String(),
		"due_date", c.DueDate,
	)
	return nil
}

// nextState walks the card lifecycle. Suspension is a user action and is
// never entered or left here.
func nextState(current card.State, rating card.Rating, streak int) card.State {
	if current == card.StateSuspended {
		return current
	}
	if rating == card.RatingAgain {
		if current == card.StateReview {
			return card.StateRelearning
		}
		return card.StateLearning
	}
	switch current {
	case card.StateNew:
		return card.StateLearning
	case card.StateLearning, card.StateRelearning:
		if streak >= 2 {
			return card.StateReview
		}
		return current
	default:
		return card.StateReview
	}
}
