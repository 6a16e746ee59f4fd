package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/recallhq/recall/internal/tier"
)

func newTierCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tier",
		Short: "Subscription tier operations",
	}
	cmd.AddCommand(newTierReconcileCommand())
	return cmd
}

func newTierReconcileCommand() *cobra.Command {
	var learnerID, from, to string

	cmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Recompute next review dates after a tier change",
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

			if err := engine.ReconcileTierChange(ctx, learnerID, tier.Tier(from), tier.Tier(to)); err != nil {
				return fmt.Errorf("engine.ReconcileTierChange() > %w", err)
			}

			fmt.Printf("Reconciled schedules for %s (%s -> %s)\n", learnerID, from, to)
			return nil
		},
	}

	cmd.Flags().StringVar(&learnerID, "learner", "", "Learner ID")
	cmd.Flags().StringVar(&from, "from", "", "Previous tier")
	cmd.Flags().StringVar(&to, "to", "", "New tier")
	_ = cmd.MarkFlagRequired("learner")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	return cmd
}
