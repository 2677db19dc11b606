// Package intake turns captured source material into flashcards: it extracts
// facts, quizzes the user on them, and commits each fact as a card with an
// activation decision attached.
package intake

import "time"

// Status is the curation state of a source item.
type Status string

const (
	// StatusInbox marks freshly captured material awaiting intake.
	StatusInbox Status = "inbox"
	// StatusCurated marks material that has been through the intake quiz.
	StatusCurated Status = "curated"
	// StatusArchived marks material the user dismissed without intake.
	StatusArchived Status = "archived"
)

// SourceItem is one piece of captured study material.
type SourceItem struct {
	ID         int64     `db:"id"`
	Title      string    `db:"title"`
	SourceType string    `db:"source_type"`
	Content    string    `db:"content"`
	Status     Status    `db:"status"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}
