// Package card provides the flashcard domain model and its repository.
package card

import "time"

// Card is a flashcard generated from an intake fact. The scheduling fields
// (Stability through LastReview, plus State) belong to the scheduler service;
// the activation fields belong to the activation decision engine.
type Card struct {
	ID           int64  `db:"id"`
	SourceItemID int64  `db:"source_item_id"`
	Front        string `db:"front"`
	Back         string `db:"back"`
	FactContent  string `db:"fact_content"`

	State         State      `db:"state"`
	Stability     float64    `db:"stability"`
	Difficulty    float64    `db:"difficulty"`
	ElapsedDays   int        `db:"elapsed_days"`
	ScheduledDays int        `db:"scheduled_days"`
	Reps          int        `db:"reps"`
	Lapses        int        `db:"lapses"`
	DueDate       time.Time  `db:"due_date"`
	LastReview    *time.Time `db:"last_review"`

	ActivationStatus  ActivationStatus `db:"activation_status"`
	ActivationTier    ActivationTier   `db:"activation_tier"`
	ActivationReasons Reasons          `db:"activation_reasons"`
	ActivatedAt       *time.Time       `db:"activated_at"`

	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

// IsDue reports whether the card is eligible for a review queue at now.
// Only active, non-suspended cards with a due date at or before now qualify.
func (c Card) IsDue(now time.Time) bool {
	if c.ActivationStatus != ActivationActive {
		return false
	}
	if c.State == StateSuspended {
		return false
	}
	return !c.DueDate.After(now)
}

// ReviewLog is one persisted review submission for a card.
type ReviewLog struct {
	ID             int64     `db:"id"`
	CardID         int64     `db:"card_id"`
	Rating         int       `db:"rating"`
	ResponseTimeMs *int64    `db:"response_time_ms"`
	IntervalDays   int       `db:"interval_days"`
	StateAfter     State     `db:"state_after"`
	ReviewedAt     time.Time `db:"reviewed_at"`
	CreatedAt      time.Time `db:"created_at"`
}
