package review_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/doughub/doughub/internal/card"
	mock_review "github.com/doughub/doughub/internal/mocks/review"
	"github.com/doughub/doughub/internal/review"
)

// Runs a session against the real clock: a manual grade has no lockout, so
// the submission lands one feedback window after grading.
func TestSessionWithMockSubmitter(t *testing.T) {
	ctrl := gomock.NewController(t)
	submitter := mock_review.NewMockSubmitter(ctrl)
	submitter.EXPECT().
		SubmitRating(gomock.Any(), int64(1), card.RatingHard, gomock.Nil()).
		Return(nil)

	session, err := review.NewSession(context.Background(), []int64{1}, review.Config{
		Submitter: submitter,
	})
	require.NoError(t, err)
	defer session.Close()

	session.Reveal()
	session.Grade(card.RatingHard)
	assert.Equal(t, review.PhaseFeedback, session.Phase())

	require.Eventually(t, func() bool {
		return session.Phase() == review.PhaseCompleted
	}, 3*time.Second, 20*time.Millisecond)
	assert.Equal(t, 1, session.ReviewedCount())
}

func TestSubmitterFunc(t *testing.T) {
	var gotCardID int64
	var gotRating card.Rating
	submitter := review.SubmitterFunc(func(_ context.Context, cardID int64, rating card.Rating, _ *int64) error {
		gotCardID = cardID
		gotRating = rating
		return nil
	})

	err := submitter.SubmitRating(context.Background(), 42, card.RatingEasy, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(42), gotCardID)
	assert.Equal(t, card.RatingEasy, gotRating)
}
