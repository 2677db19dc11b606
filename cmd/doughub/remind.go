package main

import (
	"fmt"
	"os"
	"os/signal"

	"github.com/doughub/doughub/internal/card"
	"github.com/doughub/doughub/internal/reminder"
	"github.com/spf13/cobra"
)

func newRemindCommand() *cobra.Command {
	var watch bool

	command := &cobra.Command{
		Use:   "remind",
		Short: "Check for due cards and print a reminder",
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
			notifier := reminder.NewTerminalNotifier(os.Stdout)
			schedule := reminder.New(cards, notifier, cfg.Reminder)

			if !watch {
				return schedule.RunOnce(cmd.Context())
			}

			if err := schedule.Start(); err != nil {
				return fmt.Errorf("schedule.Start() > %w", err)
			}
			defer schedule.Stop()

			fmt.Printf("Checking for due cards every hour between %d:00 and %d:00. Ctrl-C to stop.\n",
				cfg.Reminder.StartHour, cfg.Reminder.EndHour)

			ctx, cancel := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer cancel()
			<-ctx.Done()
			fmt.Println("Received interrupt signal, exiting...")
			return nil
		},
	}
	command.Flags().BoolVar(&watch, "watch", false, "keep running and check every hour")

	return command
}
