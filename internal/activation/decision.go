package activation

import (
	"time"

	"github.com/doughub/doughub/internal/card"
)

// Decision is the activation outcome for one fact, consumed immediately to
// set the card's activation fields. Confidence is advisory metadata for
// downstream display; the decision rules never read it.
type Decision struct {
	Tier       card.ActivationTier
	Status     card.ActivationStatus
	Reasons    []string
	Confidence float64
}

const (
	confidenceKnown      = 0.9
	confidenceBase       = 0.5
	confidencePerSignal  = 0.15
	confidenceCap        = 0.95
	confidenceSuggested  = 0.4
	confidenceUnanswered = 0.3
)

// Decide applies the activation rules in order, first match wins.
//
// A demonstrated-correct answer always suppresses activation. A miss alone is
// not enough to activate: it needs at least one corroborating signal, which
// keeps the active pool from flooding with every wrong answer. Misses without
// signals are surfaced as suggestions, and facts the quiz never covered stay
// dormant until the user opts in.
func Decide(ctx Context) Decision {
	if ctx.QuizResult == ResultCorrect {
		return Decision{
			Tier:       card.TierUserManual,
			Status:     card.ActivationDormant,
			Reasons:    []string{"You knew this"},
			Confidence: confidenceKnown,
		}
	}

	signals := DetectSignals(ctx)

	if ctx.QuizResult == ResultWrong || ctx.QuizResult == ResultSkipped {
		if len(signals) > 0 {
			confidence := confidenceBase + confidencePerSignal*float64(len(signals))
			if confidence > confidenceCap {
				confidence = confidenceCap
			}
			return Decision{
				Tier:       card.TierAuto,
				Status:     card.ActivationActive,
				Reasons:    signals,
				Confidence: confidence,
			}
		}
		return Decision{
			Tier:       card.TierSuggested,
			Status:     card.ActivationSuggested,
			Reasons:    []string{"You missed this, but may not need drilling"},
			Confidence: confidenceSuggested,
		}
	}

	return Decision{
		Tier:       card.TierUserManual,
		Status:     card.ActivationDormant,
		Reasons:    []string{"No activation signals"},
		Confidence: confidenceUnanswered,
	}
}

// CardFields is the activation field subset a Decision writes onto a card.
type CardFields struct {
	Status      card.ActivationStatus
	Tier        card.ActivationTier
	Reasons     card.Reasons
	ActivatedAt *time.Time
}

// ToCardFields converts a decision into persistable card fields. ActivatedAt
// is only stamped when the card becomes active.
func ToCardFields(d Decision, now time.Time) CardFields {
	fields := CardFields{
		Status:  d.Status,
		Tier:    d.Tier,
		Reasons: card.Reasons(d.Reasons),
	}
	if d.Status == card.ActivationActive {
		at := now
		fields.ActivatedAt = &at
	}
	return fields
}

// FromCardFields reconstructs a decision from persisted card fields.
// Confidence is not stored, so it comes back zero.
func FromCardFields(fields CardFields) Decision {
	return Decision{
		Tier:    fields.Tier,
		Status:  fields.Status,
		Reasons: []string(fields.Reasons),
	}
}
