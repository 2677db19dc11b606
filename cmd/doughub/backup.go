package main

import (
	"fmt"

	"github.com/doughub/doughub/internal/backup"
	"github.com/doughub/doughub/internal/card"
	"github.com/spf13/cobra"
)

func newBackupCommand() *cobra.Command {
	backupCommand := &cobra.Command{
		Use:   "backup",
		Short: "Export and import the card collection",
	}

	backupCommand.AddCommand(newBackupExportCommand())
	backupCommand.AddCommand(newBackupImportCommand())

	return backupCommand
}

func newBackupExportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "export",
		Short: "Write every card to a timestamped YAML file",
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

			service := backup.NewService(card.NewDBRepository(db), cfg.Backup.Directory)
			path, err := service.Export(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Exported to %s\n", path)
			return nil
		},
	}
}

func newBackupImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Recreate cards from a YAML snapshot",
		Args:  cobra.ExactArgs(1),
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

			service := backup.NewService(card.NewDBRepository(db), cfg.Backup.Directory)
			count, err := service.Import(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Printf("Imported %d cards from %s\n", count, args[0])
			return nil
		},
	}
}
