// Package schedule implements the spaced-repetition review scheduling engine:
// schedule state, review transitions, tier reconciliation, and the due-items
// read side.
package schedule

import "time"

// ReviewResult is the graded outcome of a completed review. AI grading for
// free-text reviews happens before the engine is invoked; the engine only ever
// sees a final result.
type ReviewResult string

const (
	ResultRemembered ReviewResult = "remembered"
	ResultPartial    ReviewResult = "partial"
	ResultForgot     ReviewResult = "forgot"
)

// Valid reports whether the result is one of the known outcomes.
func (r ReviewResult) Valid() bool {
	switch r {
	case ResultRemembered, ResultPartial, ResultForgot:
		return true
	}
	return false
}

// ReviewSchedule is the scheduling state for one (learner, content) pair.
// Exactly one row exists per pair; removal is a soft deactivation so history
// stays queryable.
type ReviewSchedule struct {
	ID                     int64     `db:"id"`
	LearnerID              string    `db:"learner_id"`
	ContentID              string    `db:"content_id"`
	IntervalIndex          int       `db:"interval_index"`
	NextReviewDate         time.Time `db:"next_review_date"`
	IsActive               bool      `db:"is_active"`
	InitialReviewCompleted bool      `db:"initial_review_completed"`
	CreatedAt              time.Time `db:"created_at"`
	UpdatedAt              time.Time `db:"updated_at"`
}

// DueAt reports whether the schedule is due at the given time.
func (s *ReviewSchedule) DueAt(asOf time.Time) bool {
	return s.IsActive && !s.NextReviewDate.After(DateOf(asOf))
}

// ReviewHistory is one completed review. Rows are append-only: result,
// reviewedAt and the pair identity never change after creation. The AI fields
// may be filled in by exactly one later enrichment when grading finishes
// asynchronously.
type ReviewHistory struct {
	ID               int64        `db:"id"`
	LearnerID        string       `db:"learner_id"`
	ContentID        string       `db:"content_id"`
	Result           ReviewResult `db:"result"`
	TimeSpentSeconds *int         `db:"time_spent_seconds"`
	Notes            *string      `db:"notes"`
	AIScore          *float64     `db:"ai_score"`
	AIFeedback       *string      `db:"ai_feedback"`
	ReviewedAt       time.Time    `db:"reviewed_at"`
	CreatedAt        time.Time    `db:"created_at"`
}

// Enriched reports whether AI grading data has been attached.
func (h *ReviewHistory) Enriched() bool {
	return h.AIScore != nil || h.AIFeedback != nil
}

// DateOf truncates a time to its calendar date in UTC. All scheduling math
// works on whole days.
func DateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
