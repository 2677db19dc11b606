package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_cli "github.com/doughub/doughub/internal/mocks/cli"
)

func TestInteractiveCLI_Run(t *testing.T) {
	t.Run("loops until the session ends", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		session := mock_cli.NewMockSession(ctrl)
		gomock.InOrder(
			session.EXPECT().Session(gomock.Any()).Return(nil),
			session.EXPECT().Session(gomock.Any()).Return(nil),
			session.EXPECT().Session(gomock.Any()).Return(errEnd),
		)

		cli := newInteractiveCLI()
		err := cli.Run(context.Background(), session)
		require.NoError(t, err)
	})

	t.Run("propagates session errors", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		session := mock_cli.NewMockSession(ctrl)
		session.EXPECT().Session(gomock.Any()).Return(errors.New("broken pipe"))

		cli := newInteractiveCLI()
		err := cli.Run(context.Background(), session)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "broken pipe")
	})

	t.Run("stops on a cancelled context", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		session := mock_cli.NewMockSession(ctrl)
		session.EXPECT().Session(gomock.Any()).Return(nil).AnyTimes()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		cli := newInteractiveCLI()
		err := cli.Run(ctx, session)
		require.NoError(t, err)
	})
}
