package schedule

import "errors"

var (
	// ErrDuplicateSchedule is returned by a store when a schedule already
	// exists for the (learner, content) pair. Creation is idempotent, so the
	// engine treats it as success and callers should rarely see it.
	ErrDuplicateSchedule = errors.New("schedule already exists")

	// ErrScheduleNotFound is returned when no active schedule exists for the
	// pair. Non-retryable: the caller submitted a review against missing or
	// deactivated content.
	ErrScheduleNotFound = errors.New("schedule not found")

	// ErrLockConflict is returned when a schedule lock could not be acquired
	// after bounded retries. This is the engine's only retryable failure mode.
	ErrLockConflict = errors.New("schedule lock conflict")

	// ErrHistoryNotFound is returned when enriching a history row that does
	// not exist.
	ErrHistoryNotFound = errors.New("review history not found")

	// ErrAlreadyEnriched is returned when enriching a history row that
	// already carries AI grading data. Enrichment is allowed exactly once.
	ErrAlreadyEnriched = errors.New("review history already enriched")
)
