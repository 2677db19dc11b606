// Package review drives a live review session: one card at a time through
// reveal, grade and advance, with response-time auto-grading, a pause state
// after prolonged inactivity, and in-session requeueing of failed cards.
package review

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/doughub/doughub/internal/card"
)

// Phase is the state of the session's card loop.
type Phase int

const (
	// PhaseAwaitingReveal shows the question with the answer hidden.
	PhaseAwaitingReveal Phase = iota
	// PhaseRevealed shows the answer; the response timer is running.
	PhaseRevealed
	// PhasePaused is entered after a minute of inactivity on a revealed
	// answer; only a manual grade leaves it.
	PhasePaused
	// PhaseFeedback confirms a chosen rating while it is being submitted.
	PhaseFeedback
	// PhaseCompleted is terminal: the queue was exhausted.
	PhaseCompleted
	// PhaseCaughtUp is terminal: the session started with no due cards.
	PhaseCaughtUp
)

var phaseNames = map[Phase]string{
	PhaseAwaitingReveal: "awaiting_reveal",
	PhaseRevealed:       "revealed",
	PhasePaused:         "paused",
	PhaseFeedback:       "feedback",
	PhaseCompleted:      "completed",
	PhaseCaughtUp:       "caught_up",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return fmt.Sprintf("Phase(%d)", int(p))
}

// Session timing. All windows are relative to the triggering event, not to
// session start.
const (
	// GradeLockout is the minimum time between reveal and an accepted
	// continue action, so a reveal tap is not misread as a grade tap.
	GradeLockout = 400 * time.Millisecond
	// PauseTimeout moves a revealed card into PhasePaused when no action
	// arrives. It is armed once per card.
	PauseTimeout = 60 * time.Second
	// FeedbackWindow is how long a chosen rating is confirmed visually
	// before the submission result advances the session.
	FeedbackWindow = 1 * time.Second
	// CompletionRedirectDelay is the pause before the completion signal
	// fires once the queue is exhausted.
	CompletionRedirectDelay = 2 * time.Second
)

// Auto-grade thresholds. Boundary values belong to the worse bucket.
const (
	easyThreshold = 5 * time.Second
	goodThreshold = 15 * time.Second
	hardThreshold = 30 * time.Second
)

//go:generate mockgen -source=session.go -destination=../mocks/review/mock_submitter.go -package=mock_review Submitter

// Submitter persists one rating for one card. Implementations are called at
// most once at a time, strictly in presentation order.
type Submitter interface {
	// SubmitRating records the rating. responseTimeMs is nil for manual
	// grades, where elapsed time carries no signal.
	SubmitRating(ctx context.Context, cardID int64, rating card.Rating, responseTimeMs *int64) error
}

// SubmitterFunc adapts a plain function to the Submitter interface.
type SubmitterFunc func(ctx context.Context, cardID int64, rating card.Rating, responseTimeMs *int64) error

// SubmitRating implements Submitter.
func (f SubmitterFunc) SubmitRating(ctx context.Context, cardID int64, rating card.Rating, responseTimeMs *int64) error {
	return f(ctx, cardID, rating, responseTimeMs)
}

// Config wires a session's collaborators.
type Config struct {
	// Submitter is required.
	Submitter Submitter
	// Clock defaults to the system clock.
	Clock Clock
	// OnCompleted fires once, CompletionRedirectDelay after the session
	// completes. Used by the caller to navigate away.
	OnCompleted func()
	// OnSubmitError surfaces a failed submission. The session stays on the
	// current card, ready for another grading attempt.
	OnSubmitError func(error)
}

// ErrNoSubmitter is returned by NewSession when Config.Submitter is nil.
var ErrNoSubmitter = errors.New("review session requires a submitter")

// Session owns one in-memory review run. The queue may hold duplicate card
// ids: a card rated Again is appended to the tail and presented again before
// the session ends. The queue only grows and the position only advances.
//
// Methods are safe for concurrent use; timer callbacks run on their own
// goroutines.
type Session struct {
	ctx       context.Context
	clock     Clock
	submitter Submitter

	onCompleted   func()
	onSubmitError func(error)

	mu            sync.Mutex
	queue         []int64
	position      int
	reviewedCount int
	phase         Phase
	responseStart time.Time
	submitting    bool
	closed        bool

	pauseTimer    Timer
	feedbackTimer Timer
	redirectTimer Timer
}

// NewSession creates a session over the given due card ids, in caller order.
// An empty id set yields a session already in PhaseCaughtUp.
func NewSession(ctx context.Context, cardIDs []int64, cfg Config) (*Session, error) {
	if cfg.Submitter == nil {
		return nil, ErrNoSubmitter
	}
	if cfg.Clock == nil {
		cfg.Clock = SystemClock()
	}
	s := &Session{
		ctx:           ctx,
		clock:         cfg.Clock,
		submitter:     cfg.Submitter,
		onCompleted:   cfg.OnCompleted,
		onSubmitError: cfg.OnSubmitError,
		queue:         append([]int64(nil), cardIDs...),
		phase:         PhaseAwaitingReveal,
	}
	if len(s.queue) == 0 {
		s.phase = PhaseCaughtUp
	}
	return s, nil
}

// Reveal shows the current card's answer and starts the response timer.
// Ignored outside PhaseAwaitingReveal.
func (s *Session) Reveal() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.phase != PhaseAwaitingReveal {
		return
	}
	s.phase = PhaseRevealed
	s.responseStart = s.clock.Now()
	s.pauseTimer = s.clock.AfterFunc(PauseTimeout, s.onPauseTimeout)
}

// Continue grades the current card from its response time. Within the grade
// lockout it is a no-op, and while paused it never submits: the caller must
// collect a manual grade instead. Ignored in every other phase.
func (s *Session) Continue() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.phase != PhaseRevealed {
		return
	}
	elapsed := s.clock.Now().Sub(s.responseStart)
	if elapsed < GradeLockout {
		return
	}
	ms := elapsed.Milliseconds()
	s.enterFeedback(autoRate(elapsed), &ms)
}

// Grade submits an explicit rating, from PhaseRevealed or PhasePaused. The
// response time is recorded as unknown regardless of elapsed time.
func (s *Session) Grade(rating card.Rating) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || !rating.IsValid() {
		return
	}
	if s.phase != PhaseRevealed && s.phase != PhasePaused {
		return
	}
	s.enterFeedback(rating, nil)
}

// Close tears the session down, cancelling every pending timer so nothing
// fires after abandonment.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	s.stopTimer(&s.pauseTimer)
	s.stopTimer(&s.feedbackTimer)
	s.stopTimer(&s.redirectTimer)
}

// Phase returns the current phase.
func (s *Session) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// CurrentCardID returns the card currently in focus. ok is false once the
// session has terminated or never had cards.
func (s *Session) CurrentCardID() (id int64, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) == 0 || s.phase == PhaseCompleted || s.phase == PhaseCaughtUp {
		return 0, false
	}
	return s.queue[s.position], true
}

// ReviewedCount returns the number of successful submissions so far. It
// counts submissions, not distinct cards.
func (s *Session) ReviewedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reviewedCount
}

// Position returns the index of the card in focus.
func (s *Session) Position() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.position
}

// Queue returns a snapshot of the queue, including requeued entries.
func (s *Session) Queue() []int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int64(nil), s.queue...)
}

// Remaining returns how many queue entries are still ahead, including the
// card in focus.
func (s *Session) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.phase == PhaseCompleted || s.phase == PhaseCaughtUp {
		return 0
	}
	return len(s.queue) - s.position
}

// autoRate maps elapsed response time to a rating. Exclusive upper bounds:
// a boundary value falls into the worse bucket.
func autoRate(elapsed time.Duration) card.Rating {
	switch {
	case elapsed < easyThreshold:
		return card.RatingEasy
	case elapsed < goodThreshold:
		return card.RatingGood
	case elapsed < hardThreshold:
		return card.RatingHard
	default:
		return card.RatingAgain
	}
}

// enterFeedback arms the confirmation window for a chosen rating.
// Caller holds the lock.
func (s *Session) enterFeedback(rating card.Rating, responseTimeMs *int64) {
	s.phase = PhaseFeedback
	s.stopTimer(&s.pauseTimer)
	s.feedbackTimer = s.clock.AfterFunc(FeedbackWindow, func() {
		s.submit(rating, responseTimeMs)
	})
}

// onPauseTimeout fires once per card when a revealed answer sits without
// action for the full pause timeout.
func (s *Session) onPauseTimeout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed || s.phase != PhaseRevealed {
		return
	}
	s.phase = PhasePaused
}

// submit runs when the feedback window elapses. On failure the session stays
// on the same card; on success it requeues Again-rated cards and advances or
// completes.
func (s *Session) submit(rating card.Rating, responseTimeMs *int64) {
	s.mu.Lock()
	if s.closed || s.phase != PhaseFeedback || s.submitting {
		s.mu.Unlock()
		return
	}
	s.submitting = true
	cardID := s.queue[s.position]
	s.mu.Unlock()

	err := s.submitter.SubmitRating(s.ctx, cardID, rating, responseTimeMs)

	s.mu.Lock()
	s.submitting = false
	if s.closed {
		s.mu.Unlock()
		return
	}
	if err != nil {
		// Recoverable: back to the revealed answer for another attempt.
		s.phase = PhaseRevealed
		surface := s.onSubmitError
		s.mu.Unlock()
		if surface != nil {
			surface(fmt.Errorf("submitter.SubmitRating(%d) > %w", cardID, err))
		}
		return
	}

	s.reviewedCount++
	if rating == card.RatingAgain {
		s.queue = append(s.queue, cardID)
	}
	if s.position < len(s.queue)-1 {
		s.position++
		s.phase = PhaseAwaitingReveal
		s.mu.Unlock()
		return
	}
	s.phase = PhaseCompleted
	s.redirectTimer = s.clock.AfterFunc(CompletionRedirectDelay, s.fireCompleted)
	s.mu.Unlock()
}

func (s *Session) fireCompleted() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	done := s.onCompleted
	s.mu.Unlock()
	if done != nil {
		done()
	}
}

// stopTimer stops and clears a timer slot. Caller holds the lock.
func (s *Session) stopTimer(t *Timer) {
	if *t != nil {
		(*t).Stop()
		*t = nil
	}
}
