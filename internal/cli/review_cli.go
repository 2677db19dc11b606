package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/doughub/doughub/internal/card"
	"github.com/doughub/doughub/internal/review"
	"github.com/doughub/doughub/internal/scheduler"
	"github.com/fatih/color"
)

// ReviewCLI manages the interactive CLI session for reviewing due cards
type ReviewCLI struct {
	*InteractiveCLI
	cards     map[int64]card.Card
	session   *review.Session
	completed chan struct{}
}

// NewReviewCLI creates a review session over the given due cards, in order.
func NewReviewCLI(
	ctx context.Context,
	dueCards []card.Card,
	schedulerService scheduler.Service,
) (*ReviewCLI, error) {
	cli := &ReviewCLI{
		InteractiveCLI: newInteractiveCLI(),
		cards:          make(map[int64]card.Card, len(dueCards)),
		completed:      make(chan struct{}),
	}

	cardIDs := make([]int64, 0, len(dueCards))
	for _, c := range dueCards {
		cardIDs = append(cardIDs, c.ID)
		cli.cards[c.ID] = c
	}

	session, err := review.NewSession(ctx, cardIDs, review.Config{
		Submitter: review.SubmitterFunc(schedulerService.ScheduleReview),
		OnCompleted: func() {
			close(cli.completed)
		},
		OnSubmitError: func(err error) {
			color.Red("Could not save the rating: %v", err)
			fmt.Println("The card stays in place, grade it again.")
		},
	})
	if err != nil {
		return nil, fmt.Errorf("review.NewSession() > %w", err)
	}
	cli.session = session
	return cli, nil
}

func (r *ReviewCLI) Session(ctx context.Context) error {
	switch r.session.Phase() {
	case review.PhaseCaughtUp:
		fmt.Println("All caught up! No cards are due right now.")
		return errEnd
	case review.PhaseCompleted:
		return r.finish(ctx)
	case review.PhaseAwaitingReveal:
		return r.showQuestion()
	case review.PhaseRevealed:
		return r.promptOnAnswer()
	case review.PhasePaused:
		return r.promptWhilePaused()
	case review.PhaseFeedback:
		return r.waitForSubmission(ctx)
	}
	return nil
}

func (r *ReviewCLI) showQuestion() error {
	id, ok := r.session.CurrentCardID()
	if !ok {
		return nil
	}
	current := r.cards[id]

	fmt.Println()
	fmt.Printf("Card %d of %d\n", r.session.Position()+1, len(r.session.Queue()))
	_, _ = r.bold.Fprintf(r.stdoutWriter, "Q: %s\n", current.Front)
	fmt.Print("[Enter] to show the answer: ")

	if _, err := r.readLine(); err != nil {
		return err
	}
	r.session.Reveal()
	return nil
}

func (r *ReviewCLI) promptOnAnswer() error {
	id, ok := r.session.CurrentCardID()
	if !ok {
		return nil
	}
	current := r.cards[id]

	_, _ = r.italic.Fprintf(r.stdoutWriter, "A: %s\n", current.Back)
	fmt.Print("[Enter] when recalled, or grade 1=again 2=hard 3=good 4=easy, q=quit: ")

	input, err := r.readLine()
	if err != nil {
		return err
	}
	switch input {
	case "q", "quit", "exit":
		r.session.Close()
		fmt.Println("Review session ended.")
		return errEnd
	case "":
		// Grades from response time. A no-op while paused, the paused
		// prompt collects a manual grade instead.
		r.session.Continue()
		return nil
	}

	rating, ok := parseRating(input)
	if !ok {
		fmt.Printf("Unknown input %q\n", input)
		return nil
	}
	r.session.Grade(rating)
	return nil
}

func (r *ReviewCLI) promptWhilePaused() error {
	fmt.Println()
	color.Yellow("This card sat for a while, so the response time no longer means anything.")
	fmt.Print("Grade it yourself: 1=again 2=hard 3=good 4=easy, q=quit: ")

	input, err := r.readLine()
	if err != nil {
		return err
	}
	if input == "q" || input == "quit" || input == "exit" {
		r.session.Close()
		fmt.Println("Review session ended.")
		return errEnd
	}
	rating, ok := parseRating(input)
	if !ok {
		fmt.Printf("Unknown input %q\n", input)
		return nil
	}
	r.session.Grade(rating)
	return nil
}

// waitForSubmission blocks until the confirmation window elapses and the
// submission settles, one way or the other.
func (r *ReviewCLI) waitForSubmission(ctx context.Context) error {
	fmt.Println("Saving...")
	for r.session.Phase() == review.PhaseFeedback {
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(50 * time.Millisecond):
		}
	}
	return nil
}

func (r *ReviewCLI) finish(ctx context.Context) error {
	fmt.Println()
	color.Green("Session complete! You reviewed %d cards.", r.session.ReviewedCount())
	select {
	case <-ctx.Done():
	case <-r.completed:
	}
	return errEnd
}

func parseRating(input string) (card.Rating, bool) {
	switch input {
	case "1":
		return card.RatingAgain, true
	case "2":
		return card.RatingHard, true
	case "3":
		return card.RatingGood, true
	case "4":
		return card.RatingEasy, true
	}
	return 0, false
}
