package main

import (
	"context"
	"fmt"
	"time"

	"github.com/doughub/doughub/internal/card"
	"github.com/doughub/doughub/internal/cli"
	"github.com/doughub/doughub/internal/scheduler"
	"github.com/spf13/cobra"
)

func newReviewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "review",
		Short: "Review the cards that are due right now",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			cards := card.NewDBRepository(db)
			dueCards, err := cards.FindDue(cmd.Context(), time.Now())
			if err != nil {
				return fmt.Errorf("cards.FindDue() > %w", err)
			}

			reviewCLI, err := cli.NewReviewCLI(
				context.Background(),
				dueCards,
				scheduler.NewSM2Service(cards),
			)
			if err != nil {
				return err
			}
			return reviewCLI.Run(context.Background(), reviewCLI)
		},
	}
}
