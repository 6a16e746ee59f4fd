package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/recallhq/recall/internal/cli"
	"github.com/recallhq/recall/internal/schedule"
)

type resultFlag schedule.ReviewResult

func (f *resultFlag) Set(val string) error {
	r := schedule.ReviewResult(val)
	if !r.Valid() {
		return fmt.Errorf("invalid result: %s. Possible values are %v", val, allResults)
	}
	*f = resultFlag(r)
	return nil
}

func (f resultFlag) String() string {
	return string(f)
}

func (f *resultFlag) Type() string {
	return "result"
}

var (
	_          pflag.Value = (*resultFlag)(nil)
	allResults             = []schedule.ReviewResult{
		schedule.ResultRemembered,
		schedule.ResultPartial,
		schedule.ResultForgot,
	}
)

func newReviewCommand() *cobra.Command {
	var learnerID string

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review due items interactively",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			engine, dueQuery, db, err := buildEngine(cfg)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			session, err := cli.NewInteractiveReviewCLI(ctx, engine, dueQuery, learnerID)
			if err != nil {
				return fmt.Errorf("cli.NewInteractiveReviewCLI() > %w", err)
			}
			return session.Run(ctx)
		},
	}
	cmd.Flags().StringVar(&learnerID, "learner", "", "Learner ID")
	_ = cmd.MarkFlagRequired("learner")

	cmd.AddCommand(newReviewRecordCommand(), newReviewEnrichCommand())
	return cmd
}

func newReviewRecordCommand() *cobra.Command {
	var learnerID, contentID, notes string
	var result resultFlag
	var timeSpentSeconds int

	cmd := &cobra.Command{
		Use:   "record",
		Short: "Record a single review outcome without a session",
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

			reviewCmd := schedule.ReviewCommand{
				LearnerID: learnerID,
				ContentID: contentID,
				Result:    schedule.ReviewResult(result),
			}
			if timeSpentSeconds > 0 {
				reviewCmd.TimeSpentSeconds = &timeSpentSeconds
			}
			if notes != "" {
				reviewCmd.Notes = &notes
			}

			updated, err := engine.CompleteReview(ctx, reviewCmd)
			if err != nil {
				return fmt.Errorf("engine.CompleteReview() > %w", err)
			}

			fmt.Printf("Recorded %s for %s. Next review on %s\n",
				result, contentID, updated.NextReviewDate.Format("2006-01-02"))
			return nil
		},
	}

	cmd.Flags().StringVar(&learnerID, "learner", "", "Learner ID")
	cmd.Flags().StringVar(&contentID, "content", "", "Content ID")
	cmd.Flags().Var(&result, "result", fmt.Sprintf("Review result. Possible values are %v", allResults))
	cmd.Flags().StringVar(&notes, "notes", "", "Optional notes")
	cmd.Flags().IntVar(&timeSpentSeconds, "time-spent", 0, "Time spent in seconds")
	_ = cmd.MarkFlagRequired("learner")
	_ = cmd.MarkFlagRequired("content")
	_ = cmd.MarkFlagRequired("result")
	return cmd
}

func newReviewEnrichCommand() *cobra.Command {
	var historyID int64
	var aiScore float64
	var aiFeedback string

	cmd := &cobra.Command{
		Use:   "enrich",
		Short: "Attach an AI grading outcome to a recorded review",
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

			if err := engine.EnrichHistory(ctx, historyID, aiScore, aiFeedback); err != nil {
				return fmt.Errorf("engine.EnrichHistory() > %w", err)
			}
			fmt.Printf("Enriched review %d\n", historyID)
			return nil
		},
	}

	cmd.Flags().Int64Var(&historyID, "id", 0, "Review history ID")
	cmd.Flags().Float64Var(&aiScore, "score", 0, "AI score")
	cmd.Flags().StringVar(&aiFeedback, "feedback", "", "AI feedback")
	_ = cmd.MarkFlagRequired("id")
	_ = cmd.MarkFlagRequired("score")
	_ = cmd.MarkFlagRequired("feedback")
	return cmd
}
