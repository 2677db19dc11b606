package card

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRating(t *testing.T) {
	t.Run("valid range", func(t *testing.T) {
		assert.False(t, Rating(0).IsValid())
		assert.True(t, RatingAgain.IsValid())
		assert.True(t, RatingEasy.IsValid())
		assert.False(t, Rating(5).IsValid())
	})

	t.Run("json round trip", func(t *testing.T) {
		data, err := json.Marshal(RatingGood)
		require.NoError(t, err)
		assert.Equal(t, `"good"`, string(data))

		var got Rating
		require.NoError(t, json.Unmarshal([]byte(`"again"`), &got))
		assert.Equal(t, RatingAgain, got)

		assert.Error(t, json.Unmarshal([]byte(`"perfect"`), &got))
	})
}

func TestStateMarshalText(t *testing.T) {
	data, err := StateRelearning.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "relearning", string(data))

	var got State
	require.NoError(t, got.UnmarshalText([]byte("suspended")))
	assert.Equal(t, StateSuspended, got)

	assert.Error(t, got.UnmarshalText([]byte("limbo")))
}

func TestReasonsValue(t *testing.T) {
	t.Run("empty stores an empty array", func(t *testing.T) {
		v, err := Reasons(nil).Value()
		require.NoError(t, err)
		assert.Equal(t, "[]", v)
	})

	t.Run("round trip", func(t *testing.T) {
		reasons := Reasons{"You knew this", "Appears across 2 sources"}
		v, err := reasons.Value()
		require.NoError(t, err)

		var got Reasons
		require.NoError(t, got.Scan(v))
		assert.Equal(t, reasons, got)
	})

	t.Run("scan nil", func(t *testing.T) {
		got := Reasons{"stale"}
		require.NoError(t, got.Scan(nil))
		assert.Nil(t, got)
	})

	t.Run("scan rejects other types", func(t *testing.T) {
		var got Reasons
		assert.Error(t, got.Scan(42))
	})
}

func TestCardIsDue(t *testing.T) {
	now := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		card Card
		want bool
	}{
		{
			name: "active card past its due date",
			card: Card{ActivationStatus: ActivationActive, State: StateReview, DueDate: now.Add(-time.Hour)},
			want: true,
		},
		{
			name: "due exactly now",
			card: Card{ActivationStatus: ActivationActive, State: StateReview, DueDate: now},
			want: true,
		},
		{
			name: "not yet due",
			card: Card{ActivationStatus: ActivationActive, State: StateReview, DueDate: now.Add(time.Hour)},
			want: false,
		},
		{
			name: "suggested cards are not reviewed",
			card: Card{ActivationStatus: ActivationSuggested, State: StateReview, DueDate: now.Add(-time.Hour)},
			want: false,
		},
		{
			name: "dormant cards are not reviewed",
			card: Card{ActivationStatus: ActivationDormant, State: StateNew, DueDate: now.Add(-time.Hour)},
			want: false,
		},
		{
			name: "suspended cards are skipped",
			card: Card{ActivationStatus: ActivationActive, State: StateSuspended, DueDate: now.Add(-time.Hour)},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.card.IsDue(now))
		})
	}
}
