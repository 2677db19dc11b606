package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/doughub/doughub/internal/card"
	"github.com/doughub/doughub/internal/cli"
	"github.com/doughub/doughub/internal/inference"
	"github.com/doughub/doughub/internal/inference/openai"
	"github.com/doughub/doughub/internal/intake"
	"github.com/spf13/cobra"
)

func newIntakeCommand() *cobra.Command {
	intakeCommand := &cobra.Command{
		Use:   "intake",
		Short: "Capture study material and quiz yourself on it",
	}

	intakeCommand.AddCommand(newIntakeAddCommand())
	intakeCommand.AddCommand(newIntakeListCommand())
	intakeCommand.AddCommand(newIntakeQuizCommand())
	intakeCommand.AddCommand(newIntakeArchiveCommand())

	return intakeCommand
}

func newIntakeAddCommand() *cobra.Command {
	var title string
	var sourceType string

	command := &cobra.Command{
		Use:   "add [file]",
		Short: "Add study material to the inbox, from a file or stdin",
		Args:  cobra.MaximumNArgs(1),
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

			var content []byte
			if len(args) == 1 {
				content, err = os.ReadFile(args[0])
				if err != nil {
					return fmt.Errorf("os.ReadFile(%s) > %w", args[0], err)
				}
				if title == "" {
					title = args[0]
				}
			} else {
				content, err = io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("io.ReadAll(stdin) > %w", err)
				}
				if title == "" {
					title = "untitled"
				}
			}

			items := intake.NewDBRepository(db)
			item := &intake.SourceItem{
				Title:      title,
				SourceType: sourceType,
				Content:    string(content),
				Status:     intake.StatusInbox,
			}
			if err := items.Create(cmd.Context(), item); err != nil {
				return fmt.Errorf("items.Create() > %w", err)
			}

			fmt.Printf("Added %q to the inbox as item %d.\n", item.Title, item.ID)
			fmt.Printf("Run `doughub intake quiz %d` to turn it into cards.\n", item.ID)
			return nil
		},
	}
	command.Flags().StringVar(&title, "title", "", "title of the source item")
	command.Flags().StringVar(&sourceType, "type", "note", "kind of source material, e.g. note, lecture, article")

	return command
}

func newIntakeListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List inbox items waiting to be quizzed",
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

			items := intake.NewDBRepository(db)
			inbox, err := items.FindByStatus(cmd.Context(), intake.StatusInbox)
			if err != nil {
				return fmt.Errorf("items.FindByStatus() > %w", err)
			}
			if len(inbox) == 0 {
				fmt.Println("The inbox is empty.")
				return nil
			}

			for _, item := range inbox {
				fmt.Printf("%4d  %-10s  %s\n", item.ID, item.SourceType, item.Title)
			}
			return nil
		},
	}
}

func newIntakeArchiveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "archive <item-id>",
		Short: "Dismiss an inbox item without quizzing it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid item id %q: %w", args[0], err)
			}

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

			// Archiving never calls the model.
			service := intake.NewService(
				intake.NewDBRepository(db),
				card.NewDBRepository(db),
				nil,
			)
			item, err := service.Archive(cmd.Context(), itemID)
			if err != nil {
				return fmt.Errorf("service.Archive(%d) > %w", itemID, err)
			}

			fmt.Printf("Archived %q.\n", item.Title)
			return nil
		},
	}
}

func newIntakeQuizCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "quiz <item-id>",
		Short: "Quiz yourself on an inbox item and commit the results as cards",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			itemID, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid item id %q: %w", args[0], err)
			}

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.OpenAI.APIKey == "" {
				return fmt.Errorf("OPENAI_API_KEY environment variable is required")
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			fmt.Printf("Using OpenAI provider (model: %s)\n", cfg.OpenAI.Model)
			openaiClient := openai.NewClient(cfg.OpenAI.APIKey, cfg.OpenAI.Model, inference.DefaultMaxRetryAttempts)
			defer func() {
				_ = openaiClient.Close()
			}()

			service := intake.NewService(
				intake.NewDBRepository(db),
				card.NewDBRepository(db),
				openaiClient,
			)
			quizCLI := cli.NewIntakeQuizCLI(service, itemID)
			return quizCLI.Run(context.Background(), quizCLI)
		},
	}
}
