package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recallhq/recall/internal/database"
	"github.com/recallhq/recall/internal/datasync"
	"github.com/recallhq/recall/internal/schedule"
)

func newExportCommand() *cobra.Command {
	var learnerID string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export schedules and review history as YAML snapshots",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg.Database)
			if err != nil {
				return fmt.Errorf("database.Open() > %w", err)
			}
			defer func() { _ = db.Close() }()

			store := schedule.NewDBScheduleStore(db)
			ledger := schedule.NewDBHistoryLedger(db)

			schedules, err := store.ActiveByLearner(ctx, learnerID)
			if err != nil {
				return fmt.Errorf("store.ActiveByLearner() > %w", err)
			}
			history, err := ledger.ByLearner(ctx, learnerID)
			if err != nil {
				return fmt.Errorf("ledger.ByLearner() > %w", err)
			}

			sink := datasync.NewYAMLExportSink(cfg.Outputs.ExportDirectory)
			if err := sink.WriteSchedules(schedules); err != nil {
				return fmt.Errorf("sink.WriteSchedules() > %w", err)
			}
			if err := sink.WriteHistory(history); err != nil {
				return fmt.Errorf("sink.WriteHistory() > %w", err)
			}

			fmt.Printf("Exported %d schedule(s) and %d review(s) to %s\n",
				len(schedules), len(history), cfg.Outputs.ExportDirectory)
			return nil
		},
	}

	cmd.Flags().StringVar(&learnerID, "learner", "", "Learner ID")
	_ = cmd.MarkFlagRequired("learner")
	return cmd
}
