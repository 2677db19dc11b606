package card

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/card/mock_repository.go -package=mock_card Repository

// Repository defines persistence operations for cards and review logs.
type Repository interface {
	Get(ctx context.Context, id int64) (*Card, error)
	Create(ctx context.Context, c *Card) error
	FindDue(ctx context.Context, now time.Time) ([]Card, error)
	CountDue(ctx context.Context, now time.Time) (int, error)
	FindAll(ctx context.Context) ([]Card, error)
	ApplyActivation(ctx context.Context, id int64, status ActivationStatus, tier ActivationTier, reasons Reasons, activatedAt *time.Time) error
	UpdateScheduling(ctx context.Context, c *Card) error
	InsertReviewLog(ctx context.Context, log *ReviewLog) error
	FindReviewLogs(ctx context.Context, cardID int64) ([]ReviewLog, error)
	CountSourcesWithFact(ctx context.Context, factContent string, excludeSourceItemID int64) (int, error)
}

// ErrNotFound is returned when a card does not exist.
var ErrNotFound = errors.New("card not found")

// DBRepository implements Repository using SQLite via sqlx.
type DBRepository struct {
	db *sqlx.DB
}

var _ Repository = (*DBRepository)(nil)

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Get returns the card with the given id, or ErrNotFound.
func (r *DBRepository) Get(ctx context.Context, id int64) (*Card, error) {
	var c Card
	err := r.db.GetContext(ctx, &c, "SELECT * FROM cards WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(card) > %w", err)
	}
	return &c, nil
}

// Create inserts a new card and sets its ID.
func (r *DBRepository) Create(ctx context.Context, c *Card) error {
	now := time.Now()
	c.CreatedAt = now
	c.UpdatedAt = now
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO cards (
			source_item_id, front, back, fact_content,
			state, stability, difficulty, elapsed_days, scheduled_days, reps, lapses,
			due_date, last_review,
			activation_status, activation_tier, activation_reasons, activated_at,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.SourceItemID, c.Front, c.Back, c.FactContent,
		c.State, c.Stability, c.Difficulty, c.ElapsedDays, c.ScheduledDays, c.Reps, c.Lapses,
		c.DueDate, c.LastReview,
		c.ActivationStatus, c.ActivationTier, c.ActivationReasons, c.ActivatedAt,
		c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert card) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	c.ID = id
	return nil
}

// FindDue returns active, non-suspended cards due at or before now, ordered
// by due date. This is the seed for a review session queue.
func (r *DBRepository) FindDue(ctx context.Context, now time.Time) ([]Card, error) {
	var cards []Card
	if err := r.db.SelectContext(ctx, &cards, `
		SELECT * FROM cards
		WHERE activation_status = ? AND state != ? AND due_date <= ?
		ORDER BY due_date, id`,
		ActivationActive, StateSuspended, now); err != nil {
		return nil, fmt.Errorf("db.SelectContext(due cards) > %w", err)
	}
	return cards, nil
}

// CountDue returns the number of cards FindDue would return.
func (r *DBRepository) CountDue(ctx context.Context, now time.Time) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM cards
		WHERE activation_status = ? AND state != ? AND due_date <= ?`,
		ActivationActive, StateSuspended, now); err != nil {
		return 0, fmt.Errorf("db.GetContext(due count) > %w", err)
	}
	return count, nil
}

// FindAll returns every card ordered by id.
func (r *DBRepository) FindAll(ctx context.Context) ([]Card, error) {
	var cards []Card
	if err := r.db.SelectContext(ctx, &cards, "SELECT * FROM cards ORDER BY id"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(cards) > %w", err)
	}
	return cards, nil
}

// ApplyActivation persists an activation decision onto a card.
func (r *DBRepository) ApplyActivation(
	ctx context.Context,
	id int64,
	status ActivationStatus,
	tier ActivationTier,
	reasons Reasons,
	activatedAt *time.Time,
) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE cards
		SET activation_status = ?, activation_tier = ?, activation_reasons = ?,
		    activated_at = ?, updated_at = ?
		WHERE id = ?`,
		status, tier, reasons, activatedAt, time.Now(), id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(apply activation) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return nil
}

// UpdateScheduling persists the scheduling fields written by the scheduler
// service. Activation and content fields are left untouched.
func (r *DBRepository) UpdateScheduling(ctx context.Context, c *Card) error {
	c.UpdatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, `
		UPDATE cards
		SET state = ?, stability = ?, difficulty = ?, elapsed_days = ?,
		    scheduled_days = ?, reps = ?, lapses = ?, due_date = ?,
		    last_review = ?, updated_at = ?
		WHERE id = ?`,
		c.State, c.Stability, c.Difficulty, c.ElapsedDays,
		c.ScheduledDays, c.Reps, c.Lapses, c.DueDate,
		c.LastReview, c.UpdatedAt, c.ID)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update scheduling) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", ErrNotFound, c.ID)
	}
	return nil
}

// InsertReviewLog inserts a review log entry and sets its ID.
func (r *DBRepository) InsertReviewLog(ctx context.Context, log *ReviewLog) error {
	log.CreatedAt = time.Now()
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO review_logs (
			card_id, rating, response_time_ms, interval_days, state_after,
			reviewed_at, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		log.CardID, log.Rating, log.ResponseTimeMs, log.IntervalDays, log.StateAfter,
		log.ReviewedAt, log.CreatedAt)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert review_log) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	log.ID = id
	return nil
}

// FindReviewLogs returns all review logs for a card, newest first.
func (r *DBRepository) FindReviewLogs(ctx context.Context, cardID int64) ([]ReviewLog, error) {
	var logs []ReviewLog
	if err := r.db.SelectContext(ctx, &logs,
		"SELECT * FROM review_logs WHERE card_id = ? ORDER BY reviewed_at DESC, id DESC",
		cardID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_logs) > %w", err)
	}
	return logs, nil
}

// CountSourcesWithFact counts how many other source items produced a card
// with the same fact content. Used as the cross-source activation signal.
func (r *DBRepository) CountSourcesWithFact(
	ctx context.Context, factContent string, excludeSourceItemID int64,
) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(DISTINCT source_item_id) FROM cards
		WHERE fact_content = ? AND source_item_id != ?`,
		factContent, excludeSourceItemID); err != nil {
		return 0, fmt.Errorf("db.GetContext(cross-source count) > %w", err)
	}
	return count, nil
}
