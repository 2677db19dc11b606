package cli

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/doughub/doughub/internal/activation"
	"github.com/doughub/doughub/internal/card"
	"github.com/doughub/doughub/internal/inference"
	"github.com/doughub/doughub/internal/intake"
	mock_card "github.com/doughub/doughub/internal/mocks/card"
	mock_inference "github.com/doughub/doughub/internal/mocks/inference"
	mock_intake "github.com/doughub/doughub/internal/mocks/intake"
)

func TestIntakeQuizCLI_Session(t *testing.T) {
	item := &intake.SourceItem{
		ID:         7,
		Title:      "Anatomy notes",
		SourceType: "notes",
		Content:    "Insulin is produced in the pancreas. The gallbladder stores bile.",
	}
	facts := []inference.Fact{
		{Content: "Insulin is produced in the pancreas."},
		{Content: "The gallbladder stores bile."},
	}
	questions := []inference.Question{
		{
			FactContent: "Insulin is produced in the pancreas.",
			Prompt:      "Which organ produces insulin?",
			Answer:      "The pancreas",
		},
		{
			FactContent: "The gallbladder stores bile.",
			Prompt:      "What does the gallbladder store?",
			Answer:      "Bile",
		},
	}

	t.Run("full quiz commits cards with activation decisions", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		items := mock_intake.NewMockRepository(ctrl)
		cards := mock_card.NewMockRepository(ctrl)
		ai := mock_inference.NewMockClient(ctrl)

		items.EXPECT().Get(gomock.Any(), int64(7)).Return(item, nil)
		ai.EXPECT().ExtractFacts(gomock.Any(), gomock.Any()).
			Return(inference.ExtractFactsResponse{Facts: facts}, nil)
		ai.EXPECT().GenerateQuestions(gomock.Any(), gomock.Any()).
			Return(inference.GenerateQuestionsResponse{Questions: questions}, nil)

		// First answer is graded correct; the empty second answer is skipped
		// without a grader call.
		ai.EXPECT().GradeAnswer(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, request inference.GradeAnswerRequest) (inference.GradeAnswerResponse, error) {
				assert.Equal(t, "Which organ produces insulin?", request.Prompt)
				assert.Equal(t, "The pancreas", request.ExpectedAnswer)
				assert.Equal(t, "pancreas", request.UserAnswer)
				return inference.GradeAnswerResponse{Correct: true}, nil
			})

		cards.EXPECT().CountSourcesWithFact(gomock.Any(), facts[0].Content, int64(7)).Return(0, nil)
		cards.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *card.Card) error {
				c.ID = 101
				return nil
			})
		cards.EXPECT().ApplyActivation(
			gomock.Any(), int64(101),
			card.ActivationDormant, card.TierUserManual,
			card.Reasons{"You knew this"}, gomock.Nil(),
		).Return(nil)

		cards.EXPECT().CountSourcesWithFact(gomock.Any(), facts[1].Content, int64(7)).Return(0, nil)
		cards.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, c *card.Card) error {
				c.ID = 102
				return nil
			})
		cards.EXPECT().ApplyActivation(
			gomock.Any(), int64(102),
			card.ActivationSuggested, card.TierSuggested,
			card.Reasons{"You missed this, but may not need drilling"}, gomock.Nil(),
		).Return(nil)

		items.EXPECT().UpdateStatus(gomock.Any(), int64(7), intake.StatusCurated).Return(nil)

		var buffer bytes.Buffer
		cli := &IntakeQuizCLI{
			InteractiveCLI: &InteractiveCLI{
				stdinReader:  bufio.NewReader(strings.NewReader("pancreas\n\n")),
				stdoutWriter: &buffer,
				bold:         color.New(color.Bold),
				italic:       color.New(color.Italic),
			},
			service: intake.NewService(items, cards, ai),
			itemID:  7,
		}

		ctx := context.Background()
		require.NoError(t, cli.Session(ctx))
		require.NoError(t, cli.Session(ctx))
		err := cli.Session(ctx)
		assert.Equal(t, errEnd, err)

		assert.Contains(t, buffer.String(), "Q1: Which organ produces insulin?")
		assert.Contains(t, buffer.String(), "Q2: What does the gallbladder store?")
		require.Len(t, cli.outcomes, 2)
		assert.Equal(t, activation.ResultCorrect, cli.outcomes[0].Result)
		assert.Equal(t, activation.ResultSkipped, cli.outcomes[1].Result)
	})

	t.Run("fact without a generated question becomes an unanswered outcome", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		items := mock_intake.NewMockRepository(ctrl)
		cards := mock_card.NewMockRepository(ctrl)
		ai := mock_inference.NewMockClient(ctrl)

		items.EXPECT().Get(gomock.Any(), int64(7)).Return(item, nil)
		ai.EXPECT().ExtractFacts(gomock.Any(), gomock.Any()).
			Return(inference.ExtractFactsResponse{Facts: facts[:1]}, nil)
		ai.EXPECT().GenerateQuestions(gomock.Any(), gomock.Any()).
			Return(inference.GenerateQuestionsResponse{}, nil)

		cli := &IntakeQuizCLI{
			InteractiveCLI: &InteractiveCLI{
				stdinReader:  bufio.NewReader(strings.NewReader("")),
				stdoutWriter: &bytes.Buffer{},
				bold:         color.New(color.Bold),
				italic:       color.New(color.Italic),
			},
			service: intake.NewService(items, cards, ai),
			itemID:  7,
		}

		require.NoError(t, cli.Session(context.Background()))
		require.Len(t, cli.outcomes, 1)
		assert.Equal(t, activation.ResultUnanswered, cli.outcomes[0].Result)
	})

	t.Run("prepare failure surfaces the error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		items := mock_intake.NewMockRepository(ctrl)
		cards := mock_card.NewMockRepository(ctrl)
		ai := mock_inference.NewMockClient(ctrl)

		items.EXPECT().Get(gomock.Any(), int64(7)).Return(nil, errors.New("item not found"))

		cli := &IntakeQuizCLI{
			InteractiveCLI: &InteractiveCLI{
				stdinReader:  bufio.NewReader(strings.NewReader("")),
				stdoutWriter: &bytes.Buffer{},
				bold:         color.New(color.Bold),
				italic:       color.New(color.Italic),
			},
			service: intake.NewService(items, cards, ai),
			itemID:  7,
		}

		err := cli.Session(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "service.PrepareQuiz()")
	})
}

func TestQuestionFor(t *testing.T) {
	questions := []inference.Question{
		{FactContent: "fact a", Prompt: "prompt a"},
		{FactContent: "fact b", Prompt: "prompt b"},
	}

	question, ok := questionFor(questions, inference.Fact{Content: "fact b"})
	require.True(t, ok)
	assert.Equal(t, "prompt b", question.Prompt)

	_, ok = questionFor(questions, inference.Fact{Content: "fact c"})
	assert.False(t, ok)
}
