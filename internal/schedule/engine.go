package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/recallhq/recall/internal/tier"
)

//go:generate mockgen -source=engine.go -destination=../mocks/schedule/engine.go -package=mock_schedule

// TierProvider resolves a learner's current subscription tier. The account
// system owns tiers; the engine only consumes the label.
type TierProvider interface {
	TierFor(ctx context.Context, learnerID string) (tier.Tier, error)
}

// StaticTierProvider returns the same tier for every learner. Used by the CLI
// and by tests.
type StaticTierProvider struct {
	Tier tier.Tier
}

func (p StaticTierProvider) TierFor(context.Context, string) (tier.Tier, error) {
	return p.Tier, nil
}

// DueInvalidator receives an explicit invalidation call after every successful
// schedule mutation, replacing the source product's implicit framework-level
// cache signals.
type DueInvalidator interface {
	InvalidateDue(learnerID string)
}

type noopInvalidator struct{}

func (noopInvalidator) InvalidateDue(string) {}

// ReviewCommand carries one completed review into the engine. AI grading, if
// any, has already produced the final Result before this command is built.
type ReviewCommand struct {
	LearnerID        string
	ContentID        string
	Result           ReviewResult
	TimeSpentSeconds *int
	Notes            *string
	AIScore          *float64
	AIFeedback       *string
}

// Engine is the schedule state machine. It creates, advances, resets and
// reconciles schedules, appending one history row per completed review.
type Engine struct {
	schedules   ScheduleStore
	history     HistoryLedger
	policy      *tier.Policy
	tiers       TierProvider
	locks       *lockTable
	invalidator DueInvalidator
	now         func() time.Time
}

// EngineOption configures optional Engine collaborators.
type EngineOption func(*Engine)

// WithInvalidator sets the due-cache invalidator called after mutations.
func WithInvalidator(inv DueInvalidator) EngineOption {
	return func(e *Engine) { e.invalidator = inv }
}

// WithClock overrides the engine's clock.
func WithClock(now func() time.Time) EngineOption {
	return func(e *Engine) { e.now = now }
}

// NewEngine creates a new Engine.
func NewEngine(schedules ScheduleStore, history HistoryLedger, policy *tier.Policy, tiers TierProvider, opts ...EngineOption) *Engine {
	e := &Engine{
		schedules:   schedules,
		history:     history,
		policy:      policy,
		tiers:       tiers,
		locks:       newLockTable(),
		invalidator: noopInvalidator{},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// CreateInitialSchedule creates the schedule for a newly created content item.
// The new schedule is immediately due. Calling it again for the same pair is a
// no-op, so content-created events can be delivered more than once.
func (e *Engine) CreateInitialSchedule(ctx context.Context, learnerID, contentID string) (*ReviewSchedule, error) {
	today := DateOf(e.now())
	s := &ReviewSchedule{
		LearnerID:      learnerID,
		ContentID:      contentID,
		IntervalIndex:  0,
		NextReviewDate: today,
		IsActive:       true,
	}

	err := e.schedules.Create(ctx, s)
	if errors.Is(err, ErrDuplicateSchedule) {
		return e.schedules.Find(ctx, learnerID, contentID)
	}
	if err != nil {
		return nil, fmt.Errorf("create initial schedule: %w", err)
	}

	e.invalidator.InvalidateDue(learnerID)
	return s, nil
}

// CompleteReview applies one graded review outcome to the pair's schedule and
// appends the matching history row in the same atomic unit.
//
// Pacing only moves when the schedule is due. A review submitted early (a
// duplicate submission, or studying ahead) is still recorded, but leaves the
// interval position and next review date untouched; "forgot" is the exception
// and always resets. This keeps a double-submitted "remembered" from advancing
// the schedule twice.
func (e *Engine) CompleteReview(ctx context.Context, cmd ReviewCommand) (*ReviewSchedule, error) {
	if !cmd.Result.Valid() {
		return nil, fmt.Errorf("invalid review result %q", cmd.Result)
	}

	unlock, err := e.locks.lockPair(ctx, cmd.LearnerID, cmd.ContentID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	s, err := e.schedules.Find(ctx, cmd.LearnerID, cmd.ContentID)
	if err != nil {
		return nil, err
	}
	if !s.IsActive {
		return nil, ErrScheduleNotFound
	}

	learnerTier, err := e.tiers.TierFor(ctx, cmd.LearnerID)
	if err != nil {
		return nil, fmt.Errorf("resolve tier for learner %s: %w", cmd.LearnerID, err)
	}

	now := e.now()
	e.transition(s, learnerTier, cmd.Result, now)

	h := &ReviewHistory{
		LearnerID:        cmd.LearnerID,
		ContentID:        cmd.ContentID,
		Result:           cmd.Result,
		TimeSpentSeconds: cmd.TimeSpentSeconds,
		Notes:            cmd.Notes,
		AIScore:          cmd.AIScore,
		AIFeedback:       cmd.AIFeedback,
		ReviewedAt:       now,
	}
	if _, err := e.schedules.ApplyReview(ctx, s, h); err != nil {
		return nil, err
	}

	e.invalidator.InvalidateDue(cmd.LearnerID)
	slog.Debug("review completed",
		"learner", cmd.LearnerID,
		"content", cmd.ContentID,
		"result", cmd.Result,
		"intervalIndex", s.IntervalIndex,
		"nextReviewDate", s.NextReviewDate.Format("2006-01-02"))
	return s, nil
}

// transition mutates the schedule in place for one review outcome.
func (e *Engine) transition(s *ReviewSchedule, t tier.Tier, result ReviewResult, now time.Time) {
	today := DateOf(now)
	due := s.DueAt(now)
	index := e.policy.EffectiveIndex(t, s.IntervalIndex)

	switch result {
	case ResultForgot:
		// Soft reset: pacing restarts, prior success stays in history and
		// initialReviewCompleted keeps its value.
		s.IntervalIndex = 0
		s.NextReviewDate = today.AddDate(0, 0, 1)
	case ResultRemembered:
		if !due {
			return
		}
		if index < e.policy.MaxIndex(t) {
			index++
		}
		s.IntervalIndex = index
		s.NextReviewDate = today.AddDate(0, 0, e.policy.IntervalAt(t, index))
		s.InitialReviewCompleted = true
	case ResultPartial:
		if !due {
			return
		}
		// Retry at the same spacing: the stored index holds, the clock
		// restarts from the lookup-time-clamped interval.
		s.NextReviewDate = today.AddDate(0, 0, e.policy.IntervalAt(t, index))
	}
}

// Deactivate soft-deletes the pair's schedule when the content item is
// removed. History is untouched.
func (e *Engine) Deactivate(ctx context.Context, learnerID, contentID string) error {
	unlock, err := e.locks.lockPair(ctx, learnerID, contentID)
	if err != nil {
		return err
	}
	defer unlock()

	if err := e.schedules.Deactivate(ctx, learnerID, contentID); err != nil {
		return err
	}
	e.invalidator.InvalidateDue(learnerID)
	return nil
}

// ReconcileTierChange recomputes next review dates after a tier change.
//
// Stored interval indexes are never overwritten: the clamp is applied at
// lookup time via tier.Policy.EffectiveIndex, so progress earned on a higher
// tier survives a temporary downgrade. Only schedules whose stored index
// exceeds the new tier's maximum need their next review date recomputed; the
// whole batch is persisted atomically under the learner's exclusive lock.
//
// There is no domain failure mode: clamping always succeeds. Returned errors
// are infrastructure errors only.
func (e *Engine) ReconcileTierChange(ctx context.Context, learnerID string, oldTier, newTier tier.Tier) error {
	unlock, err := e.locks.lockLearner(ctx, learnerID)
	if err != nil {
		return err
	}
	defer unlock()

	schedules, err := e.schedules.ActiveByLearner(ctx, learnerID)
	if err != nil {
		return fmt.Errorf("load schedules for tier change: %w", err)
	}

	maxIndex := e.policy.MaxIndex(newTier)
	today := DateOf(e.now())

	var updated []*ReviewSchedule
	for i := range schedules {
		s := schedules[i]
		if s.IntervalIndex <= maxIndex {
			continue
		}
		s.NextReviewDate = today.AddDate(0, 0, e.policy.IntervalAt(newTier, s.IntervalIndex))
		updated = append(updated, &s)
	}
	if len(updated) == 0 {
		return nil
	}

	if err := e.schedules.SaveAll(ctx, updated); err != nil {
		return fmt.Errorf("save reconciled schedules: %w", err)
	}

	e.invalidator.InvalidateDue(learnerID)
	slog.Info("reconciled schedules after tier change",
		"learner", learnerID,
		"oldTier", oldTier,
		"newTier", newTier,
		"affected", len(updated))
	return nil
}

// EnrichHistory attaches an asynchronous AI grading outcome to a history row.
func (e *Engine) EnrichHistory(ctx context.Context, historyID int64, aiScore float64, aiFeedback string) error {
	return e.history.Enrich(ctx, historyID, aiScore, aiFeedback)
}
