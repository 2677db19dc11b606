package card

import (
	"encoding"
	"fmt"
)

// State is the scheduling lifecycle stage of a card. It is mutated only by
// the scheduler service, never by the review session or activation engines.
type State int

const (
	StateNew        State = iota // Never reviewed.
	StateLearning                // In the initial learning steps.
	StateReview                  // In the long-term review cycle.
	StateRelearning              // Lapsed, relearning.
	StateSuspended               // Excluded from review queues.
)

var (
	stateNames = [...]string{
		StateNew:        "new",
		StateLearning:   "learning",
		StateReview:     "review",
		StateRelearning: "relearning",
		StateSuspended:  "suspended",
	}
	stateByName = map[string]State{
		"new":        StateNew,
		"learning":   StateLearning,
		"review":     StateReview,
		"relearning": StateRelearning,
		"suspended":  StateSuspended,
	}
)

var (
	_ fmt.Stringer             = State(0)
	_ encoding.TextMarshaler   = State(0)
	_ encoding.TextUnmarshaler = (*State)(nil)
)

// IsValid reports whether s is a known lifecycle stage.
func (s State) IsValid() bool {
	return s >= StateNew && s <= StateSuspended
}

func (s State) String() string {
	if s.IsValid() {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s State) MarshalText() ([]byte, error) {
	if !s.IsValid() {
		return nil, fmt.Errorf("invalid card state: %d", int(s))
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *State) UnmarshalText(text []byte) error {
	v, ok := stateByName[string(text)]
	if !ok {
		return fmt.Errorf("invalid card state: %q", text)
	}
	*s = v
	return nil
}
