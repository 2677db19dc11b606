// Package backup exports the card collection to YAML files and restores
// from them. The format is plain YAML so a snapshot stays hand-editable.
package backup

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/doughub/doughub/internal/card"
	"gopkg.in/yaml.v3"
)

// Snapshot is one exported collection.
type Snapshot struct {
	CreatedAt time.Time    `yaml:"created_at"`
	Cards     []CardRecord `yaml:"cards"`
}

// CardRecord is the YAML shape of one card. Scheduling state rides along so
// a restore does not reset review progress.
type CardRecord struct {
	SourceItemID int64  `yaml:"source_item_id"`
	Front        string `yaml:"front"`
	Back         string `yaml:"back"`
	FactContent  string `yaml:"fact_content"`

	State         string     `yaml:"state"`
	Stability     float64    `yaml:"stability"`
	Difficulty    float64    `yaml:"difficulty"`
	ElapsedDays   int        `yaml:"elapsed_days"`
	ScheduledDays int        `yaml:"scheduled_days"`
	Reps          int        `yaml:"reps"`
	Lapses        int        `yaml:"lapses"`
	DueDate       time.Time  `yaml:"due_date"`
	LastReview    *time.Time `yaml:"last_review,omitempty"`

	ActivationStatus  string     `yaml:"activation_status"`
	ActivationTier    string     `yaml:"activation_tier"`
	ActivationReasons []string   `yaml:"activation_reasons,omitempty"`
	ActivatedAt       *time.Time `yaml:"activated_at,omitempty"`

	ReviewLogs []ReviewLogRecord `yaml:"review_logs,omitempty"`
}

// ReviewLogRecord is the YAML shape of one review submission. Logs nest under
// their card so a restore can reattach them to the freshly assigned card id.
type ReviewLogRecord struct {
	Rating         int       `yaml:"rating"`
	ResponseTimeMs *int64    `yaml:"response_time_ms,omitempty"`
	IntervalDays   int       `yaml:"interval_days"`
	StateAfter     string    `yaml:"state_after"`
	ReviewedAt     time.Time `yaml:"reviewed_at"`
}

// Service writes and reads snapshots against a card repository.
type Service struct {
	cards     card.Repository
	directory string
	now       func() time.Time
}

// NewService creates a backup service writing into the given directory.
func NewService(cards card.Repository, directory string) *Service {
	return &Service{
		cards:     cards,
		directory: directory,
		now:       time.Now,
	}
}

// Export writes every card to a timestamped YAML file and returns its path.
func (s *Service) Export(ctx context.Context) (string, error) {
	cards, err := s.cards.FindAll(ctx)
	if err != nil {
		return "", fmt.Errorf("cards.FindAll() > %w", err)
	}

	now := s.now()
	snapshot := Snapshot{
		CreatedAt: now,
		Cards:     make([]CardRecord, 0, len(cards)),
	}
	for _, c := range cards {
		record := toRecord(c)
		logs, err := s.cards.FindReviewLogs(ctx, c.ID)
		if err != nil {
			return "", fmt.Errorf("cards.FindReviewLogs(%d) > %w", c.ID, err)
		}
		for _, l := range logs {
			record.ReviewLogs = append(record.ReviewLogs, ReviewLogRecord{
				Rating:         l.Rating,
				ResponseTimeMs: l.ResponseTimeMs,
				IntervalDays:   l.IntervalDays,
				StateAfter:     l.StateAfter.String(),
				ReviewedAt:     l.ReviewedAt,
			})
		}
		snapshot.Cards = append(snapshot.Cards, record)
	}

	if err := os.MkdirAll(s.directory, 0o755); err != nil {
		return "", fmt.Errorf("os.MkdirAll(%s) > %w", s.directory, err)
	}
	path := filepath.Join(s.directory, fmt.Sprintf("doughub-%s.yml", now.Format("20060102-150405")))
	if err := writeYamlFile(path, snapshot); err != nil {
		return "", err
	}

	slog.Debug("exported backup", "path", path, "cards", len(snapshot.Cards))
	return path, nil
}

// Import reads a snapshot file and recreates its cards, returning how many
// were created. Cards get fresh ids; the source items they point at must
// already exist.
func (s *Service) Import(ctx context.Context, path string) (int, error) {
	snapshot, err := readYamlFile[Snapshot](path)
	if err != nil {
		return 0, err
	}

	created := 0
	for _, record := range snapshot.Cards {
		c, err := fromRecord(record)
		if err != nil {
			return created, fmt.Errorf("invalid card record %q: %w", record.Front, err)
		}
		if err := s.cards.Create(ctx, c); err != nil {
			return created, fmt.Errorf("cards.Create() > %w", err)
		}
		for _, logRecord := range record.ReviewLogs {
			reviewLog, err := fromLogRecord(logRecord, c.ID)
			if err != nil {
				return created, fmt.Errorf("invalid review log on card %q: %w", record.Front, err)
			}
			if err := s.cards.InsertReviewLog(ctx, reviewLog); err != nil {
				return created, fmt.Errorf("cards.InsertReviewLog() > %w", err)
			}
		}
		created++
	}
	return created, nil
}

func toRecord(c card.Card) CardRecord {
	return CardRecord{
		SourceItemID:      c.SourceItemID,
		Front:             c.Front,
		Back:              c.Back,
		FactContent:       c.FactContent,
		State:             c.State.String(),
		Stability:         c.Stability,
		Difficulty:        c.Difficulty,
		ElapsedDays:       c.ElapsedDays,
		ScheduledDays:     c.ScheduledDays,
		Reps:              c.Reps,
		Lapses:            c.Lapses,
		DueDate:           c.DueDate,
		LastReview:        c.LastReview,
		ActivationStatus:  string(c.ActivationStatus),
		ActivationTier:    string(c.ActivationTier),
		ActivationReasons: []string(c.ActivationReasons),
		ActivatedAt:       c.ActivatedAt,
	}
}

func fromRecord(record CardRecord) (*card.Card, error) {
	var state card.State
	if err := state.UnmarshalText([]byte(record.State)); err != nil {
		return nil, err
	}
	status := card.ActivationStatus(record.ActivationStatus)
	if !status.IsValid() {
		return nil, fmt.Errorf("unknown activation status: %q", record.ActivationStatus)
	}
	tier := card.ActivationTier(record.ActivationTier)
	if !tier.IsValid() {
		return nil, fmt.Errorf("unknown activation tier: %q", record.ActivationTier)
	}
	return &card.Card{
		SourceItemID:      record.SourceItemID,
		Front:             record.Front,
		Back:              record.Back,
		FactContent:       record.FactContent,
		State:             state,
		Stability:         record.Stability,
		Difficulty:        record.Difficulty,
		ElapsedDays:       record.ElapsedDays,
		ScheduledDays:     record.ScheduledDays,
		Reps:              record.Reps,
		Lapses:            record.Lapses,
		DueDate:           record.DueDate,
		LastReview:        record.LastReview,
		ActivationStatus:  status,
		ActivationTier:    tier,
		ActivationReasons: card.Reasons(record.ActivationReasons),
		ActivatedAt:       record.ActivatedAt,
	}, nil
}

func fromLogRecord(record ReviewLogRecord, cardID int64) (*card.ReviewLog, error) {
	var stateAfter card.State
	if err := stateAfter.UnmarshalText([]byte(record.StateAfter)); err != nil {
		return nil, err
	}
	return &card.ReviewLog{
		CardID:         cardID,
		Rating:         record.Rating,
		ResponseTimeMs: record.ResponseTimeMs,
		IntervalDays:   record.IntervalDays,
		StateAfter:     stateAfter,
		ReviewedAt:     record.ReviewedAt,
	}, nil
}

func writeYamlFile[T any](path string, data T) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("os.Create(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	return yaml.NewEncoder(file).Encode(data)
}

func readYamlFile[T any](path string) (T, error) {
	var contents T
	file, err := os.Open(path)
	if err != nil {
		return contents, fmt.Errorf("os.Open(%s) > %w", path, err)
	}
	defer func() {
		_ = file.Close()
	}()

	if err := yaml.NewDecoder(file).Decode(&contents); err != nil {
		return contents, fmt.Errorf("failed to decode %s > %w", path, err)
	}
	return contents, nil
}
