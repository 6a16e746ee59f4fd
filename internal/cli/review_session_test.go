package cli

import (
	"bufio"
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallhq/recall/internal/schedule"
	"github.com/recallhq/recall/internal/tier"
)

func newSessionFixture(t *testing.T, input string, contentIDs ...string) (*InteractiveReviewCLI, *schedule.MemoryScheduleStore, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	ledger := schedule.NewMemoryHistoryLedger()
	store := schedule.NewMemoryScheduleStore(ledger)
	engine := schedule.NewEngine(store, ledger, tier.NewPolicy(), schedule.StaticTierProvider{Tier: tier.TierFree})

	ctx := context.Background()
	for _, contentID := range contentIDs {
		_, err := engine.CreateInitialSchedule(ctx, "learner-1", contentID)
		require.NoError(t, err)
	}

	session, err := NewInteractiveReviewCLI(ctx, engine, schedule.NewDueQuery(store), "learner-1")
	require.NoError(t, err)

	out := &bytes.Buffer{}
	session.stdinReader = bufio.NewReader(strings.NewReader(input))
	session.stdoutWriter = out
	return session, store, out
}

func TestInteractiveReviewCLI_Session(t *testing.T) {
	t.Run("remembered advances the schedule", func(t *testing.T) {
		session, store, out := newSessionFixture(t, "r\n", "content-1")

		err := session.Session(context.Background())
		require.NoError(t, err)

		s, err := store.Find(context.Background(), "learner-1", "content-1")
		require.NoError(t, err)
		assert.Equal(t, 1, s.IntervalIndex)
		assert.Contains(t, out.String(), "content-1")
		assert.Contains(t, out.String(), "first review")
	})

	t.Run("forgot resets to tomorrow", func(t *testing.T) {
		session, store, _ := newSessionFixture(t, "f\n", "content-1")

		require.NoError(t, session.Session(context.Background()))

		s, err := store.Find(context.Background(), "learner-1", "content-1")
		require.NoError(t, err)
		assert.Equal(t, 0, s.IntervalIndex)
		assert.Equal(t, schedule.DateOf(time.Now()).AddDate(0, 0, 1), s.NextReviewDate)
	})

	t.Run("skip leaves the schedule untouched", func(t *testing.T) {
		session, store, _ := newSessionFixture(t, "s\n", "content-1")

		require.NoError(t, session.Session(context.Background()))

		s, err := store.Find(context.Background(), "learner-1", "content-1")
		require.NoError(t, err)
		assert.Equal(t, 0, s.IntervalIndex)
		assert.False(t, s.InitialReviewCompleted)
	})

	t.Run("quit ends the session", func(t *testing.T) {
		session, _, _ := newSessionFixture(t, "q\n", "content-1")

		err := session.Session(context.Background())
		assert.ErrorIs(t, err, errEnd)
	})

	t.Run("empty queue ends the session", func(t *testing.T) {
		session, _, out := newSessionFixture(t, "")

		err := session.Session(context.Background())
		assert.ErrorIs(t, err, errEnd)
		assert.Contains(t, out.String(), "No more reviews due!")
	})

	t.Run("unknown input requeues the item", func(t *testing.T) {
		session, _, out := newSessionFixture(t, "x\nr\n", "content-1")

		require.NoError(t, session.Session(context.Background()))
		assert.Contains(t, out.String(), "Please answer")
		require.Len(t, session.queue, 1)

		require.NoError(t, session.Session(context.Background()))
		assert.Empty(t, session.queue)
	})
}

func TestParseResultInput(t *testing.T) {
	tests := []struct {
		input      string
		wantResult schedule.ReviewResult
		wantOK     bool
	}{
		{input: "r\n", wantResult: schedule.ResultRemembered, wantOK: true},
		{input: "remembered\n", wantResult: schedule.ResultRemembered, wantOK: true},
		{input: "P\n", wantResult: schedule.ResultPartial, wantOK: true},
		{input: "forgot\n", wantResult: schedule.ResultForgot, wantOK: true},
		{input: "\n", wantOK: false},
		{input: "maybe\n", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.input), func(t *testing.T) {
			got, ok := parseResultInput(tt.input)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantResult, got)
			}
		})
	}
}
