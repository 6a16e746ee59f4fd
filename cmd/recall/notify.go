package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"github.com/recallhq/recall/internal/bootstrap"
	"github.com/recallhq/recall/internal/datasync"
)

func newNotifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "notify",
		Short: "Poll due reviews and write per-learner feed files",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if len(cfg.Notify.Learners) == 0 {
				return fmt.Errorf("notify.learners is empty; nothing to poll")
			}

			_, dueQuery, db, err := buildEngine(cfg)
			if err != nil {
				return err
			}

			sink := datasync.NewYAMLDueFeedSink(cfg.Outputs.FeedDirectory)
			interval := time.Duration(cfg.Notify.PollIntervalSeconds) * time.Second

			app := bootstrap.New()
			app.AddShutdownHook(func(ctx context.Context) error {
				return db.Close()
			})

			slog.Info("starting due feed poller",
				"interval", interval,
				"learners", len(cfg.Notify.Learners),
				"directory", cfg.Outputs.FeedDirectory)

			return app.RunPeriodic(cmd.Context(), interval, func(ctx context.Context) error {
				now := time.Now()
				for _, learnerID := range cfg.Notify.Learners {
					due, err := dueQuery.DueForLearner(ctx, learnerID, now)
					if err != nil {
						return fmt.Errorf("dueQuery.DueForLearner(%s) > %w", learnerID, err)
					}
					if err := sink.WriteFeed(learnerID, due, now); err != nil {
						return fmt.Errorf("sink.WriteFeed(%s) > %w", learnerID, err)
					}
					slog.Debug("wrote due feed", "learner", learnerID, "due", len(due))
				}
				return nil
			})
		},
	}
}
