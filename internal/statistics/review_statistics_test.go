package statistics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallhq/recall/internal/schedule"
)

func review(learnerID, contentID string, result schedule.ReviewResult, reviewedAt time.Time) schedule.ReviewHistory {
	return schedule.ReviewHistory{
		LearnerID:  learnerID,
		ContentID:  contentID,
		Result:     result,
		ReviewedAt: reviewedAt,
	}
}

func TestCalculateStatistics(t *testing.T) {
	jan := time.Date(2025, 1, 5, 10, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 3, 10, 0, 0, 0, time.UTC)

	history := []schedule.ReviewHistory{
		review("learner-1", "alpha", schedule.ResultForgot, jan),
		review("learner-1", "alpha", schedule.ResultRemembered, jan.AddDate(0, 0, 1)),
		review("learner-1", "beta", schedule.ResultPartial, jan.AddDate(0, 0, 2)),
		review("learner-1", "alpha", schedule.ResultRemembered, feb),
		review("learner-1", "beta", schedule.ResultRemembered, feb.AddDate(0, 0, 1)),
	}

	t.Run("groups by month and counts first successes once", func(t *testing.T) {
		got := CalculateStatistics(history, 0, 0)

		require.Len(t, got.Periods, 2)
		assert.Equal(t, ReviewStatistics{
			Period:         "2025-01",
			Reviews:        3,
			Remembered:     1,
			Partial:        1,
			Forgot:         1,
			UniqueContents: 2,
			FirstSuccesses: 1,
		}, got.Periods[0])
		assert.Equal(t, ReviewStatistics{
			Period:         "2025-02",
			Reviews:        2,
			Remembered:     2,
			UniqueContents: 2,
			FirstSuccesses: 1,
		}, got.Periods[1])

		assert.Equal(t, AggregateStatistics{
			Reviews:        5,
			Remembered:     3,
			Partial:        1,
			Forgot:         1,
			UniqueContents: 2,
			FirstSuccesses: 2,
		}, got.Aggregate)
	})

	t.Run("month filter keeps first successes anchored to earlier periods", func(t *testing.T) {
		got := CalculateStatistics(history, 2025, 2)

		require.Len(t, got.Periods, 1)
		assert.Equal(t, "2025-02", got.Periods[0].Period)
		assert.Equal(t, 2, got.Periods[0].Reviews)
		// alpha was first remembered in January, so February only counts beta.
		assert.Equal(t, 1, got.Periods[0].FirstSuccesses)
	})

	t.Run("year filter excludes other years", func(t *testing.T) {
		got := CalculateStatistics(history, 2024, 0)
		assert.Empty(t, got.Periods)
		assert.Equal(t, 0, got.Aggregate.Reviews)
	})

	t.Run("input order does not matter", func(t *testing.T) {
		reversed := make([]schedule.ReviewHistory, 0, len(history))
		for i := len(history) - 1; i >= 0; i-- {
			reversed = append(reversed, history[i])
		}
		assert.Equal(t, CalculateStatistics(history, 0, 0), CalculateStatistics(reversed, 0, 0))
	})

	t.Run("empty history", func(t *testing.T) {
		got := CalculateStatistics(nil, 0, 0)
		assert.Empty(t, got.Periods)
		assert.Equal(t, AggregateStatistics{}, got.Aggregate)
	})
}
