package intake

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

//go:generate mockgen -source=repository.go -destination=../mocks/intake/mock_repository.go -package=mock_intake Repository

// ErrItemNotFound is returned when a source item does not exist.
var ErrItemNotFound = errors.New("source item not found")

// Repository defines persistence operations for source items.
type Repository interface {
	Get(ctx context.Context, id int64) (*SourceItem, error)
	Create(ctx context.Context, item *SourceItem) error
	FindByStatus(ctx context.Context, status Status) ([]SourceItem, error)
	UpdateStatus(ctx context.Context, id int64, status Status) error
}

// DBRepository implements Repository using SQLite via sqlx.
type DBRepository struct {
	db *sqlx.DB
}

var _ Repository = (*DBRepository)(nil)

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// Get returns the source item with the given id, or ErrItemNotFound.
func (r *DBRepository) Get(ctx context.Context, id int64) (*SourceItem, error) {
	var item SourceItem
	err := r.db.GetContext(ctx, &item, "SELECT * FROM source_items WHERE id = ?", id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(source_item) > %w", err)
	}
	return &item, nil
}

// Create inserts a new source item in the inbox and sets its ID.
func (r *DBRepository) Create(ctx context.Context, item *SourceItem) error {
	now := time.Now()
	item.CreatedAt = now
	item.UpdatedAt = now
	if item.Status == "" {
		item.Status = StatusInbox
	}
	result, err := r.db.ExecContext(ctx, `
		INSERT INTO source_items (title, source_type, content, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		item.Title, item.SourceType, item.Content, item.Status, item.CreatedAt, item.UpdatedAt)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert source_item) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	item.ID = id
	return nil
}

// FindByStatus returns all source items with the given status, newest first.
func (r *DBRepository) FindByStatus(ctx context.Context, status Status) ([]SourceItem, error) {
	var items []SourceItem
	if err := r.db.SelectContext(ctx, &items,
		"SELECT * FROM source_items WHERE status = ? ORDER BY created_at DESC, id DESC",
		status); err != nil {
		return nil, fmt.Errorf("db.SelectContext(source_items) > %w", err)
	}
	return items, nil
}

// UpdateStatus moves a source item between curation states.
func (r *DBRepository) UpdateStatus(ctx context.Context, id int64, status Status) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE source_items SET status = ?, updated_at = ? WHERE id = ?",
		status, time.Now(), id)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update source_item status) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("%w: %d", ErrItemNotFound, id)
	}
	return nil
}
