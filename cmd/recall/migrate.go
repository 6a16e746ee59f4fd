package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recallhq/recall/internal/database"
)

func newMigrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Database schema migrations",
	}
	cmd.AddCommand(newMigrateUpCommand(), newMigrateDownCommand())
	return cmd
}

func newMigrateUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() { _ = db.Close() }()

			if err := database.MigrateUp(db); err != nil {
				return err
			}
			fmt.Println("Migrations applied")
			return nil
		},
	}
}

func newMigrateDownCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() { _ = db.Close() }()

			if err := database.MigrateDown(db); err != nil {
				return err
			}
			fmt.Println("Rolled back one migration")
			return nil
		},
	}
}
