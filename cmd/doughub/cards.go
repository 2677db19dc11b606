package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/doughub/doughub/internal/card"
	"github.com/spf13/cobra"
)

func newCardsCommand() *cobra.Command {
	cardsCommand := &cobra.Command{
		Use:   "cards",
		Short: "Inspect the card collection",
	}

	cardsCommand.AddCommand(newCardsListCommand())

	return cardsCommand
}

func newCardsListCommand() *cobra.Command {
	var dueOnly bool

	command := &cobra.Command{
		Use:   "list",
		Short: "List cards with their activation and scheduling state",
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

			repo := card.NewDBRepository(db)
			var cards []card.Card
			if dueOnly {
				cards, err = repo.FindDue(cmd.Context(), time.Now())
				if err != nil {
					return fmt.Errorf("repo.FindDue() > %w", err)
				}
			} else {
				cards, err = repo.FindAll(cmd.Context())
				if err != nil {
					return fmt.Errorf("repo.FindAll() > %w", err)
				}
			}

			if len(cards) == 0 {
				fmt.Println("No cards found.")
				return nil
			}
			for _, c := range cards {
				fmt.Printf("%4d  %-9s  %-10s  due %s  %s\n",
					c.ID,
					c.ActivationStatus,
					c.State,
					c.DueDate.Format("2006-01-02"),
					truncate(c.Front, 60),
				)
			}
			return nil
		},
	}
	command.Flags().BoolVar(&dueOnly, "due", false, "show only cards due for review")

	return command
}

func truncate(s string, max int) string {
	s = strings.ReplaceAll(s, "\n", " ")
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
