package schedule

import (
	"context"
	"sort"
	"sync"
	"time"
)

// MemoryScheduleStore is an in-memory ScheduleStore. It backs engine tests and
// DB-less CLI runs, and honors the same contract as DBScheduleStore: pair
// uniqueness, atomic ApplyReview and SaveAll.
type MemoryScheduleStore struct {
	mu      sync.Mutex
	nextID  int64
	byPair  map[string]*ReviewSchedule
	ledger  *MemoryHistoryLedger
	nowFunc func() time.Time
}

// NewMemoryScheduleStore creates a MemoryScheduleStore appending history rows
// to the given ledger.
func NewMemoryScheduleStore(ledger *MemoryHistoryLedger) *MemoryScheduleStore {
	return &MemoryScheduleStore{
		nextID:  1,
		byPair:  make(map[string]*ReviewSchedule),
		ledger:  ledger,
		nowFunc: time.Now,
	}
}

func pairKey(learnerID, contentID string) string {
	return learnerID + "\x00" + contentID
}

func (r *MemoryScheduleStore) Create(_ context.Context, s *ReviewSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := pairKey(s.LearnerID, s.ContentID)
	if _, ok := r.byPair[key]; ok {
		return ErrDuplicateSchedule
	}

	stored := *s
	stored.ID = r.nextID
	r.nextID++
	now := r.nowFunc()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.byPair[key] = &stored

	*s = stored
	return nil
}

func (r *MemoryScheduleStore) Find(_ context.Context, learnerID, contentID string) (*ReviewSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byPair[pairKey(learnerID, contentID)]
	if !ok {
		return nil, ErrScheduleNotFound
	}
	copied := *s
	return &copied, nil
}

func (r *MemoryScheduleStore) ActiveByLearner(_ context.Context, learnerID string) ([]ReviewSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var schedules []ReviewSchedule
	for _, s := range r.byPair {
		if s.LearnerID == learnerID && s.IsActive {
			schedules = append(schedules, *s)
		}
	}
	sort.Slice(schedules, func(i, j int) bool { return schedules[i].ContentID < schedules[j].ContentID })
	return schedules, nil
}

func (r *MemoryScheduleStore) ApplyReview(ctx context.Context, s *ReviewSchedule, h *ReviewHistory) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byPair[pairKey(s.LearnerID, s.ContentID)]
	if !ok || !stored.IsActive {
		return 0, ErrScheduleNotFound
	}

	stored.IntervalIndex = s.IntervalIndex
	stored.NextReviewDate = s.NextReviewDate
	stored.InitialReviewCompleted = s.InitialReviewCompleted
	stored.UpdatedAt = r.nowFunc()
	*s = *stored

	return r.ledger.Record(ctx, h)
}

func (r *MemoryScheduleStore) SaveAll(_ context.Context, schedules []*ReviewSchedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.nowFunc()
	for _, s := range schedules {
		stored, ok := r.byPair[pairKey(s.LearnerID, s.ContentID)]
		if !ok {
			continue
		}
		stored.IntervalIndex = s.IntervalIndex
		stored.NextReviewDate = s.NextReviewDate
		stored.InitialReviewCompleted = s.InitialReviewCompleted
		stored.IsActive = s.IsActive
		stored.UpdatedAt = now
	}
	return nil
}

func (r *MemoryScheduleStore) Deactivate(_ context.Context, learnerID, contentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.byPair[pairKey(learnerID, contentID)]
	if !ok {
		return ErrScheduleNotFound
	}
	s.IsActive = false
	s.UpdatedAt = r.nowFunc()
	return nil
}

func (r *MemoryScheduleStore) Due(_ context.Context, learnerID string, asOf time.Time) ([]ReviewSchedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cutoff := DateOf(asOf)
	var due []ReviewSchedule
	for _, s := range r.byPair {
		if s.LearnerID == learnerID && s.IsActive && !s.NextReviewDate.After(cutoff) {
			due = append(due, *s)
		}
	}
	sort.Slice(due, func(i, j int) bool {
		if !due[i].NextReviewDate.Equal(due[j].NextReviewDate) {
			return due[i].NextReviewDate.Before(due[j].NextReviewDate)
		}
		return due[i].ID < due[j].ID
	})
	return due, nil
}

// MemoryHistoryLedger is an in-memory HistoryLedger.
type MemoryHistoryLedger struct {
	mu     sync.Mutex
	nextID int64
	rows   []*ReviewHistory
}

// NewMemoryHistoryLedger creates an empty MemoryHistoryLedger.
func NewMemoryHistoryLedger() *MemoryHistoryLedger {
	return &MemoryHistoryLedger{nextID: 1}
}

func (r *MemoryHistoryLedger) Record(_ context.Context, h *ReviewHistory) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *h
	stored.ID = r.nextID
	r.nextID++
	stored.CreatedAt = time.Now()
	r.rows = append(r.rows, &stored)

	h.ID = stored.ID
	return stored.ID, nil
}

func (r *MemoryHistoryLedger) Enrich(_ context.Context, historyID int64, aiScore float64, aiFeedback string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, row := range r.rows {
		if row.ID != historyID {
			continue
		}
		if row.Enriched() {
			return ErrAlreadyEnriched
		}
		score := aiScore
		feedback := aiFeedback
		row.AIScore = &score
		row.AIFeedback = &feedback
		return nil
	}
	return ErrHistoryNotFound
}

func (r *MemoryHistoryLedger) ByLearner(_ context.Context, learnerID string) ([]ReviewHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var history []ReviewHistory
	for _, row := range r.rows {
		if row.LearnerID == learnerID {
			history = append(history, *row)
		}
	}
	sort.Slice(history, func(i, j int) bool {
		if !history[i].ReviewedAt.Equal(history[j].ReviewedAt) {
			return history[i].ReviewedAt.After(history[j].ReviewedAt)
		}
		return history[i].ID > history[j].ID
	})
	return history, nil
}

func (r *MemoryHistoryLedger) All(_ context.Context) ([]ReviewHistory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	history := make([]ReviewHistory, len(r.rows))
	for i, row := range r.rows {
		history[i] = *row
	}
	return history, nil
}
