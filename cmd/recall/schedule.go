package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newScheduleCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage review schedules for content items",
	}
	cmd.AddCommand(newScheduleCreateCommand(), newScheduleRemoveCommand())
	return cmd
}

func newScheduleCreateCommand() *cobra.Command {
	var learnerID, contentID string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the schedule for a new content item",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			engine, _, db, err := buildEngine(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			s, err := engine.CreateInitialSchedule(ctx, learnerID, contentID)
			if err != nil {
				return fmt.Errorf("engine.CreateInitialSchedule() > %w", err)
			}

			fmt.Printf("Schedule for %s is due on %s\n", contentID, s.NextReviewDate.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&learnerID, "learner", "", "Learner ID")
	cmd.Flags().StringVar(&contentID, "content", "", "Content ID")
	_ = cmd.MarkFlagRequired("learner")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}

func newScheduleRemoveCommand() *cobra.Command {
	var learnerID, contentID string

	cmd := &cobra.Command{
		Use:   "remove",
		Short: "Deactivate the schedule for a removed content item",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			engine, _, db, err := buildEngine(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := engine.Deactivate(ctx, learnerID, contentID); err != nil {
				return fmt.Errorf("engine.Deactivate() > %w", err)
			}

			fmt.Printf("Deactivated schedule for %s. Review history is kept.\n", contentID)
			return nil
		},
	}

	cmd.Flags().StringVar(&learnerID, "learner", "", "Learner ID")
	cmd.Flags().StringVar(&contentID, "content", "", "Content ID")
	_ = cmd.MarkFlagRequired("learner")
	_ = cmd.MarkFlagRequired("content")
	return cmd
}
