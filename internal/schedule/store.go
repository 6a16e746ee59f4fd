package schedule

import (
	"context"
	"time"
)

//go:generate mockgen -source=store.go -destination=../mocks/schedule/store.go -package=mock_schedule

// ScheduleStore is durable keyed storage with one record per
// (learner, content) pair. Implementations enforce the pair uniqueness
// constraint and make ApplyReview and SaveAll atomic.
type ScheduleStore interface {
	// Create inserts a new schedule. Returns ErrDuplicateSchedule if a record
	// already exists for the pair, active or not.
	Create(ctx context.Context, s *ReviewSchedule) error

	// Find returns the schedule for the pair regardless of active state.
	// Returns ErrScheduleNotFound if no record exists.
	Find(ctx context.Context, learnerID, contentID string) (*ReviewSchedule, error)

	// ActiveByLearner returns all active schedules for the learner.
	ActiveByLearner(ctx context.Context, learnerID string) ([]ReviewSchedule, error)

	// ApplyReview persists an updated schedule and appends one history row in
	// a single atomic unit, returning the new history id.
	ApplyReview(ctx context.Context, s *ReviewSchedule, h *ReviewHistory) (int64, error)

	// SaveAll persists a batch of schedule updates atomically. Used by tier
	// reconciliation so no reader observes a partially reconciled learner.
	SaveAll(ctx context.Context, schedules []*ReviewSchedule) error

	// Deactivate soft-deletes the schedule for the pair. Returns
	// ErrScheduleNotFound if no record exists.
	Deactivate(ctx context.Context, learnerID, contentID string) error

	// Due returns the learner's active schedules with nextReviewDate <= asOf,
	// ordered ascending by nextReviewDate.
	Due(ctx context.Context, learnerID string, asOf time.Time) ([]ReviewSchedule, error)
}

// HistoryLedger is the append-only log of completed reviews.
type HistoryLedger interface {
	// Record appends one history row and returns its id.
	Record(ctx context.Context, h *ReviewHistory) (int64, error)

	// Enrich attaches AI grading data to an existing row. Allowed exactly
	// once, and only for rows created without AI fields; returns
	// ErrAlreadyEnriched otherwise, ErrHistoryNotFound for unknown ids.
	Enrich(ctx context.Context, historyID int64, aiScore float64, aiFeedback string) error

	// ByLearner returns the learner's history, newest first.
	ByLearner(ctx context.Context, learnerID string) ([]ReviewHistory, error)

	// All returns every history row, oldest first. Read by the analytics
	// collaborator and the YAML exporter.
	All(ctx context.Context) ([]ReviewHistory, error)
}
