// Package testutil provides shared test helpers for creating config files and
// review fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/recallhq/recall/internal/schedule"
)

// SetupTestConfig creates a minimal config file and the output directories for
// testing. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir string) string {
	t.Helper()

	for _, d := range []string{"export", "feed"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`scheduler:
  default_tier: free
outputs:
  export_directory: %s
  feed_directory: %s
notify:
  poll_interval_seconds: 60
  learners:
    - learner-1
`,
		filepath.Join(tmpDir, "export"),
		filepath.Join(tmpDir, "feed"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// ScheduleOption configures optional fields when seeding a schedule fixture.
type ScheduleOption func(*schedule.ReviewSchedule)

// WithIntervalIndex sets the seeded schedule's position in the interval table.
func WithIntervalIndex(index int) ScheduleOption {
	return func(s *schedule.ReviewSchedule) {
		s.IntervalIndex = index
		s.InitialReviewCompleted = index > 0
	}
}

// WithNextReviewDate sets the seeded schedule's next review date.
func WithNextReviewDate(date time.Time) ScheduleOption {
	return func(s *schedule.ReviewSchedule) {
		s.NextReviewDate = schedule.DateOf(date)
	}
}

// SeedSchedule inserts an active schedule fixture that is due immediately
// unless overridden by options.
func SeedSchedule(t *testing.T, store schedule.ScheduleStore, learnerID, contentID string, opts ...ScheduleOption) *schedule.ReviewSchedule {
	t.Helper()

	s := &schedule.ReviewSchedule{
		LearnerID:      learnerID,
		ContentID:      contentID,
		NextReviewDate: schedule.DateOf(time.Now()),
		IsActive:       true,
	}
	for _, opt := range opts {
		opt(s)
	}
	require.NoError(t, store.Create(context.Background(), s))
	return s
}
