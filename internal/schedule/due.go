package schedule

import (
	"context"
	"time"
)

// DueQuery is the read-side projection over ScheduleStore answering "what is
// due now" for one learner. It never mutates anything and is polled
// independently by the notification collaborator.
type DueQuery struct {
	store ScheduleStore
}

// NewDueQuery creates a new DueQuery.
func NewDueQuery(store ScheduleStore) *DueQuery {
	return &DueQuery{store: store}
}

// DueForLearner returns the learner's active schedules whose next review date
// has arrived by asOf, oldest overdue first. A zero asOf means now.
// Deactivated schedules are never returned.
func (q *DueQuery) DueForLearner(ctx context.Context, learnerID string, asOf time.Time) ([]ReviewSchedule, error) {
	if asOf.IsZero() {
		asOf = time.Now()
	}
	return q.store.Due(ctx, learnerID, asOf)
}
