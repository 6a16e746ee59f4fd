package main

import (
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/recallhq/recall/internal/config"
	"github.com/recallhq/recall/internal/database"
	"github.com/recallhq/recall/internal/schedule"
	"github.com/recallhq/recall/internal/tier"
)

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("failed to create config loader: %w", err)
	}
	return loader.Load()
}

// buildEngine wires the engine and its collaborators for one command
// invocation. The caller closes the returned database handle.
func buildEngine(cfg *config.Config) (*schedule.Engine, *schedule.DueQuery, *sqlx.DB, error) {
	policy, err := tier.NewPolicyWithOverrides(cfg.Scheduler.Tiers)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("tier.NewPolicyWithOverrides() > %w", err)
	}

	defaultTier := tier.Tier(cfg.Scheduler.DefaultTier)
	if !policy.Known(defaultTier) {
		return nil, nil, nil, fmt.Errorf("unknown default tier %q", cfg.Scheduler.DefaultTier)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("database.Open() > %w", err)
	}

	ledger := schedule.NewDBHistoryLedger(db)
	store := schedule.NewDBScheduleStore(db)
	engine := schedule.NewEngine(store, ledger, policy, schedule.StaticTierProvider{Tier: defaultTier})
	return engine, schedule.NewDueQuery(store), db, nil
}
