package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_schedule "github.com/recallhq/recall/internal/mocks/schedule"
	"github.com/recallhq/recall/internal/tier"
)

func TestEngine_InvalidatesDueCacheAfterMutations(t *testing.T) {
	ctrl := gomock.NewController(t)
	invalidator := mock_schedule.NewMockDueInvalidator(ctrl)

	ledger := NewMemoryHistoryLedger()
	store := NewMemoryScheduleStore(ledger)
	engine := NewEngine(store, ledger, tier.NewPolicy(), StaticTierProvider{Tier: tier.TierFree},
		WithInvalidator(invalidator))
	ctx := context.Background()

	// Create, review, deactivate: one invalidation each.
	invalidator.EXPECT().InvalidateDue("learner-1").Times(3)

	_, err := engine.CreateInitialSchedule(ctx, "learner-1", "content-1")
	require.NoError(t, err)
	_, err = engine.CompleteReview(ctx, ReviewCommand{
		LearnerID: "learner-1",
		ContentID: "content-1",
		Result:    ResultRemembered,
	})
	require.NoError(t, err)
	require.NoError(t, engine.Deactivate(ctx, "learner-1", "content-1"))
}

func TestEngine_NoInvalidationWhenReconcileChangesNothing(t *testing.T) {
	ctrl := gomock.NewController(t)
	invalidator := mock_schedule.NewMockDueInvalidator(ctrl)

	ledger := NewMemoryHistoryLedger()
	store := NewMemoryScheduleStore(ledger)
	engine := NewEngine(store, ledger, tier.NewPolicy(), StaticTierProvider{Tier: tier.TierFree},
		WithInvalidator(invalidator))
	ctx := context.Background()

	invalidator.EXPECT().InvalidateDue("learner-1").Times(1) // create only

	_, err := engine.CreateInitialSchedule(ctx, "learner-1", "content-1")
	require.NoError(t, err)
	require.NoError(t, engine.ReconcileTierChange(ctx, "learner-1", tier.TierFree, tier.TierPro))
}

func TestEngine_TierProviderDrivesIntervals(t *testing.T) {
	ctrl := gomock.NewController(t)
	tiers := mock_schedule.NewMockTierProvider(ctrl)

	clock := newFakeClock(time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC))
	ledger := NewMemoryHistoryLedger()
	store := NewMemoryScheduleStore(ledger)
	engine := NewEngine(store, ledger, tier.NewPolicy(), tiers, WithClock(clock.Now))
	ctx := context.Background()

	_, err := engine.CreateInitialSchedule(ctx, "learner-1", "content-1")
	require.NoError(t, err)

	tiers.EXPECT().TierFor(gomock.Any(), "learner-1").Return(tier.TierPro, nil)
	s, err := engine.CompleteReview(ctx, ReviewCommand{
		LearnerID: "learner-1",
		ContentID: "content-1",
		Result:    ResultRemembered,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, s.IntervalIndex)
	assert.Equal(t, DateOf(clock.Now()).AddDate(0, 0, 3), s.NextReviewDate)
}
