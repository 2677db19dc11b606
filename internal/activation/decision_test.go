package activation

import (
	"testing"
	"time"

	"github.com/doughub/doughub/internal/card"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecide(t *testing.T) {
	two := 2

	tests := []struct {
		name           string
		ctx            Context
		wantTier       card.ActivationTier
		wantStatus     card.ActivationStatus
		wantReasons    []string
		wantConfidence float64
	}{
		{
			name: "correct answer stays dormant regardless of signals",
			ctx: Context{
				QuizResult:         ResultCorrect,
				FactContent:        "Loading dose is 600 mg",
				SourceWasIncorrect: true,
			},
			wantTier:       card.TierUserManual,
			wantStatus:     card.ActivationDormant,
			wantReasons:    []string{"You knew this"},
			wantConfidence: 0.9,
		},
		{
			name: "wrong with one signal activates",
			ctx: Context{
				QuizResult:  ResultWrong,
				FactContent: "Warfarin targets an INR of 2-3",
			},
			wantTier:       card.TierAuto,
			wantStatus:     card.ActivationActive,
			wantReasons:    []string{"Contains numbers, doses, or ranges that are hard to memorize"},
			wantConfidence: 0.65,
		},
		{
			name: "skipped with signals activates too",
			ctx: Context{
				QuizResult:         ResultSkipped,
				FactContent:        "The liver produces bile",
				SourceWasIncorrect: true,
				CrossSourceCount:   &two,
			},
			wantTier:   card.TierAuto,
			wantStatus: card.ActivationActive,
			wantReasons: []string{
				"You answered this incorrectly in the source material",
				"Appears across 2 sources",
			},
			wantConfidence: 0.8,
		},
		{
			name: "wrong without signals is only suggested",
			ctx: Context{
				QuizResult:  ResultWrong,
				FactContent: "The liver produces bile",
			},
			wantTier:       card.TierSuggested,
			wantStatus:     card.ActivationSuggested,
			wantReasons:    []string{"You missed this, but may not need drilling"},
			wantConfidence: 0.4,
		},
		{
			name: "unanswered stays dormant",
			ctx: Context{
				QuizResult:  ResultUnanswered,
				FactContent: "Loading dose is 600 mg",
			},
			wantTier:       card.TierUserManual,
			wantStatus:     card.ActivationDormant,
			wantReasons:    []string{"No activation signals"},
			wantConfidence: 0.3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Decide(tt.ctx)

			assert.Equal(t, tt.wantTier, got.Tier)
			assert.Equal(t, tt.wantStatus, got.Status)
			assert.Equal(t, tt.wantReasons, got.Reasons)
			assert.InDelta(t, tt.wantConfidence, got.Confidence, 1e-9)
		})
	}
}

func TestDecideConfidenceIsCapped(t *testing.T) {
	two := 2
	lowRate := 0.2

	// Five signals would push base 0.5 past the cap.
	got := Decide(Context{
		QuizResult:          ResultWrong,
		FactContent:         "Loading dose is 600 mg",
		SourceWasIncorrect:  true,
		CrossSourceCount:    &two,
		HasConfusionPattern: true,
		ConfusedWithConcept: "maintenance dose",
		PeerCorrectRate:     &lowRate,
	})

	require.Equal(t, card.ActivationActive, got.Status)
	assert.Len(t, got.Reasons, 5)
	assert.InDelta(t, 0.95, got.Confidence, 1e-9)
}

func TestToCardFields(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	t.Run("active decision stamps activated_at", func(t *testing.T) {
		decision := Decide(Context{
			QuizResult:  ResultWrong,
			FactContent: "Warfarin targets an INR of 2-3",
		})
		fields := ToCardFields(decision, now)

		assert.Equal(t, card.ActivationActive, fields.Status)
		assert.Equal(t, card.TierAuto, fields.Tier)
		require.NotNil(t, fields.ActivatedAt)
		assert.Equal(t, now, *fields.ActivatedAt)
	})

	t.Run("non-active decision leaves activated_at empty", func(t *testing.T) {
		decision := Decide(Context{QuizResult: ResultCorrect})
		fields := ToCardFields(decision, now)

		assert.Equal(t, card.ActivationDormant, fields.Status)
		assert.Nil(t, fields.ActivatedAt)
	})
}

func TestFromCardFields(t *testing.T) {
	fields := CardFields{
		Status:  card.ActivationSuggested,
		Tier:    card.TierSuggested,
		Reasons: card.Reasons{"You missed this, but may not need drilling"},
	}
	got := FromCardFields(fields)

	assert.Equal(t, card.ActivationSuggested, got.Status)
	assert.Equal(t, card.TierSuggested, got.Tier)
	assert.Equal(t, []string{"You missed this, but may not need drilling"}, got.Reasons)
	// Confidence is not persisted.
	assert.Zero(t, got.Confidence)
}
