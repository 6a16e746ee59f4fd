package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/recallhq/recall/internal/cli"
	"github.com/recallhq/recall/internal/datasync"
)

func newDueCommand() *cobra.Command {
	var learnerID string
	var writeFeed bool

	cmd := &cobra.Command{
		Use:   "due",
		Short: "List the learner's due reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			_, dueQuery, db, err := buildEngine(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			now := time.Now()
			due, err := dueQuery.DueForLearner(ctx, learnerID, now)
			if err != nil {
				return fmt.Errorf("dueQuery.DueForLearner() > %w", err)
			}

			cli.PrintDueList(os.Stdout, learnerID, due, now)

			if writeFeed {
				sink := datasync.NewYAMLDueFeedSink(cfg.Outputs.FeedDirectory)
				if err := sink.WriteFeed(learnerID, due, now); err != nil {
					return fmt.Errorf("sink.WriteFeed() > %w", err)
				}
				fmt.Printf("Wrote due feed to %s\n", cfg.Outputs.FeedDirectory)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&learnerID, "learner", "", "Learner ID")
	cmd.Flags().BoolVar(&writeFeed, "feed", false, "Also write the due feed file for the notification collaborator")
	_ = cmd.MarkFlagRequired("learner")
	return cmd
}
