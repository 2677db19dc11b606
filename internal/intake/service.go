package intake

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/doughub/doughub/internal/activation"
	"github.com/doughub/doughub/internal/card"
	"github.com/doughub/doughub/internal/inference"
)

// Quiz is the prepared intake quiz for one source item: extracted facts and
// one generated question per fact, in fact order.
type Quiz struct {
	Item      *SourceItem
	Facts     []inference.Fact
	Questions []inference.Question
}

// FactOutcome is the user's quiz result for one fact, filled in by the
// interactive layer.
type FactOutcome struct {
	Fact     inference.Fact
	Question inference.Question
	Result   activation.QuizResult
	// ConfusedWith names the concept a wrong answer actually matched,
	// when the grader detected one.
	ConfusedWith string
}

// CommittedFact is the result of committing one fact as a card.
type CommittedFact struct {
	CardID   int64
	Decision activation.Decision
	Priority int
}

// Service runs the intake pipeline for source items.
type Service struct {
	items Repository
	cards card.Repository
	ai    inference.Client
	now   func() time.Time
}

// NewService creates an intake service.
func NewService(items Repository, cards card.Repository, ai inference.Client) *Service {
	return &Service{
		items: items,
		cards: cards,
		ai:    ai,
		now:   time.Now,
	}
}

// PrepareQuiz extracts facts from a source item and generates one question
// per fact. Facts the question generator dropped are still returned, with no
// matching question.
func (s *Service) PrepareQuiz(ctx context.Context, itemID int64) (*Quiz, error) {
	item, err := s.items.Get(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("items.Get(%d) > %w", itemID, err)
	}

	extracted, err := s.ai.ExtractFacts(ctx, inference.ExtractFactsRequest{
		Title:      item.Title,
		SourceType: item.SourceType,
		Content:    item.Content,
	})
	if err != nil {
		return nil, fmt.Errorf("ai.ExtractFacts > %w", err)
	}
	if len(extracted.Facts) == 0 {
		return &Quiz{Item: item}, nil
	}

	generated, err := s.ai.GenerateQuestions(ctx, inference.GenerateQuestionsRequest{
		Facts: extracted.Facts,
	})
	if err != nil {
		return nil, fmt.Errorf("ai.GenerateQuestions > %w", err)
	}

	return &Quiz{
		Item:      item,
		Facts:     extracted.Facts,
		Questions: generated.Questions,
	}, nil
}

// Grade judges one quiz answer. An empty answer is reported as skipped
// without calling the grader.
func (s *Service) Grade(
	ctx context.Context, question inference.Question, userAnswer string, responseTimeMs int64,
) (activation.QuizResult, string, error) {
	if userAnswer == "" {
		return activation.ResultSkipped, "", nil
	}
	graded, err := s.ai.GradeAnswer(ctx, inference.GradeAnswerRequest{
		Prompt:         question.Prompt,
		ExpectedAnswer: question.Answer,
		UserAnswer:     userAnswer,
		ResponseTimeMs: responseTimeMs,
	})
	if err != nil {
		return "", "", fmt.Errorf("ai.GradeAnswer > %w", err)
	}
	if graded.Correct {
		return activation.ResultCorrect, "", nil
	}
	return activation.ResultWrong, graded.ConfusedWith, nil
}

// Archive dismisses a source item without quizzing it. Curated items cannot
// be archived because their cards point back at them.
func (s *Service) Archive(ctx context.Context, itemID int64) (*SourceItem, error) {
	item, err := s.items.Get(ctx, itemID)
	if err != nil {
		return nil, fmt.Errorf("items.Get(%d) > %w", itemID, err)
	}
	if item.Status == StatusCurated {
		return nil, fmt.Errorf("source item %d is already curated", itemID)
	}
	if err := s.items.UpdateStatus(ctx, itemID, StatusArchived); err != nil {
		return nil, fmt.Errorf("items.UpdateStatus(%d) > %w", itemID, err)
	}
	item.Status = StatusArchived
	return item, nil
}

// CommitResults creates one card per fact outcome, runs the activation
// decision with real cross-source and confusion signals, persists the
// activation fields, and marks the source item curated.
func (s *Service) CommitResults(
	ctx context.Context, item *SourceItem, outcomes []FactOutcome,
) ([]CommittedFact, error) {
	now := s.now()
	committed := make([]CommittedFact, 0, len(outcomes))

	for _, outcome := range outcomes {
		crossSources, err := s.cards.CountSourcesWithFact(ctx, outcome.Fact.Content, item.ID)
		if err != nil {
			return committed, fmt.Errorf("cards.CountSourcesWithFact > %w", err)
		}

		actx := activation.Context{
			QuizResult:          outcome.Result,
			FactContent:         outcome.Fact.Content,
			SourceWasIncorrect:  outcome.Fact.SourceWasIncorrect,
			CrossSourceCount:    &crossSources,
			HasConfusionPattern: outcome.ConfusedWith != "",
			ConfusedWithConcept: outcome.ConfusedWith,
			// No peer data in a single-user collection.
		}
		decision := activation.Decide(actx)

		newCard := &card.Card{
			SourceItemID:     item.ID,
			Front:            outcome.Question.Prompt,
			Back:             outcome.Question.Answer,
			FactContent:      outcome.Fact.Content,
			State:            card.StateNew,
			DueDate:          now,
			ActivationStatus: card.ActivationDormant,
			ActivationTier:   card.TierUserManual,
		}
		if err := s.cards.Create(ctx, newCard); err != nil {
			return committed, fmt.Errorf("cards.Create > %w", err)
		}

		fields := activation.ToCardFields(decision, now)
		if err := s.cards.ApplyActivation(
			ctx, newCard.ID, fields.Status, fields.Tier, fields.Reasons, fields.ActivatedAt,
		); err != nil {
			return committed, fmt.Errorf("cards.ApplyActivation(%d) > %w", newCard.ID, err)
		}

		committed = append(committed, CommittedFact{
			CardID:   newCard.ID,
			Decision: decision,
			Priority: activation.PriorityScore(outcome.Result, len(activation.DetectSignals(actx))),
		})
	}

	if err := s.items.UpdateStatus(ctx, item.ID, StatusCurated); err != nil {
		return committed, fmt.Errorf("items.UpdateStatus(%d) > %w", item.ID, err)
	}

	slog.Debug("committed intake results",
		"source_item_id", item.ID,
		"cards", len(committed),
	)
	return committed, nil
}
