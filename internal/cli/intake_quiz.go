package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/doughub/doughub/internal/activation"
	"github.com/doughub/doughub/internal/card"
	"github.com/doughub/doughub/internal/inference"
	"github.com/doughub/doughub/internal/intake"
	"github.com/fatih/color"
)

// IntakeQuizCLI manages the interactive quiz over a freshly ingested source
// item, then commits the results as cards with activation decisions.
type IntakeQuizCLI struct {
	*InteractiveCLI
	service *intake.Service
	itemID  int64

	quiz     *intake.Quiz
	outcomes []intake.FactOutcome
	next     int
}

// NewIntakeQuizCLI creates a quiz CLI for one inbox item.
func NewIntakeQuizCLI(service *intake.Service, itemID int64) *IntakeQuizCLI {
	return &IntakeQuizCLI{
		InteractiveCLI: newInteractiveCLI(),
		service:        service,
		itemID:         itemID,
	}
}

func (r *IntakeQuizCLI) Session(ctx context.Context) error {
	if r.quiz == nil {
		if err := r.prepare(ctx); err != nil {
			return err
		}
	}

	if r.next >= len(r.quiz.Facts) {
		return r.commit(ctx)
	}

	fact := r.quiz.Facts[r.next]
	r.next++

	question, ok := questionFor(r.quiz.Questions, fact)
	if !ok {
		// No question was generated for this fact. It still becomes a
		// card, with nothing known about whether the user recalls it.
		r.outcomes = append(r.outcomes, intake.FactOutcome{
			Fact:   fact,
			Result: activation.ResultUnanswered,
		})
		return nil
	}

	fmt.Println()
	_, _ = r.bold.Fprintf(r.stdoutWriter, "Q%d: %s\n", r.next, question.Prompt)
	fmt.Print("Your answer (empty to skip): ")

	startTime := time.Now()
	userAnswer, err := r.readLine()
	if err != nil {
		return err
	}
	responseTimeMs := time.Since(startTime).Milliseconds()

	result, confusedWith, err := r.service.Grade(ctx, question, userAnswer, responseTimeMs)
	if err != nil {
		return fmt.Errorf("service.Grade() > %w", err)
	}
	r.outcomes = append(r.outcomes, intake.FactOutcome{
		Fact:         fact,
		Question:     question,
		Result:       result,
		ConfusedWith: confusedWith,
	})

	switch result {
	case activation.ResultCorrect:
		fmt.Print("✅ ")
		color.Green(`It's correct. The answer is "%s"`, r.italic.Sprintf("%s", question.Answer))
	case activation.ResultSkipped:
		fmt.Printf(`Skipped. The answer is "%s"`, r.italic.Sprintf("%s", question.Answer))
		fmt.Println()
	default:
		fmt.Print("❌ ")
		color.Red(`It's wrong. The answer is "%s"`, r.italic.Sprintf("%s", question.Answer))
		if confusedWith != "" {
			fmt.Printf("   You may have mixed it up with %s\n", confusedWith)
		}
	}
	return nil
}

func (r *IntakeQuizCLI) prepare(ctx context.Context) error {
	quiz, err := r.service.PrepareQuiz(ctx, r.itemID)
	if err != nil {
		return fmt.Errorf("service.PrepareQuiz() > %w", err)
	}
	r.quiz = quiz
	r.outcomes = make([]intake.FactOutcome, 0, len(quiz.Facts))

	fmt.Printf("Quizzing you on %s\n", r.bold.Sprintf("%s", quiz.Item.Title))
	fmt.Printf("Extracted %d facts.\n", len(quiz.Facts))
	return nil
}

func (r *IntakeQuizCLI) commit(ctx context.Context) error {
	committed, err := r.service.CommitResults(ctx, r.quiz.Item, r.outcomes)
	if err != nil {
		return fmt.Errorf("service.CommitResults() > %w", err)
	}

	fmt.Println()
	fmt.Printf("Created %d cards:\n", len(committed))
	for i, c := range committed {
		fact := r.outcomes[i].Fact
		fmt.Printf("  [%s] %s\n", colorStatus(c.Decision.Status), fact.Content)
		for _, reason := range c.Decision.Reasons {
			fmt.Printf("      - %s\n", reason)
		}
		fmt.Printf("      priority %d, confidence %.2f\n", c.Priority, c.Decision.Confidence)
	}
	return errEnd
}

func colorStatus(status card.ActivationStatus) string {
	switch status {
	case card.ActivationActive:
		return color.GreenString(string(status))
	case card.ActivationSuggested:
		return color.YellowString(string(status))
	}
	return string(status)
}

// questionFor finds the generated question matching a fact, when one exists.
func questionFor(questions []inference.Question, fact inference.Fact) (inference.Question, bool) {
	for _, q := range questions {
		if q.FactContent == fact.Content {
			return q, true
		}
	}
	return inference.Question{}, false
}
