package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/recallhq/recall/internal/database"
)

// mysqlDuplicateEntry is the MySQL error number for a unique key violation.
const mysqlDuplicateEntry = 1062

// DBScheduleStore implements ScheduleStore using MySQL.
type DBScheduleStore struct {
	db *sqlx.DB
}

// NewDBScheduleStore creates a new DBScheduleStore.
func NewDBScheduleStore(db *sqlx.DB) *DBScheduleStore {
	return &DBScheduleStore{db: db}
}

// Create inserts a new schedule. The unique key on (learner_id, content_id)
// enforces one record per pair; a violation is surfaced as
// ErrDuplicateSchedule.
func (r *DBScheduleStore) Create(ctx context.Context, s *ReviewSchedule) error {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO review_schedules
			(learner_id, content_id, interval_index, next_review_date, is_active, initial_review_completed)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.LearnerID, s.ContentID, s.IntervalIndex, s.NextReviewDate, s.IsActive, s.InitialReviewCompleted,
	)
	if err != nil {
		var mysqlErr *mysql.MySQLError
		if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
			return ErrDuplicateSchedule
		}
		return fmt.Errorf("insert review schedule: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get review schedule insert ID: %w", err)
	}
	s.ID = id
	return nil
}

// Find returns the schedule for the pair regardless of active state.
func (r *DBScheduleStore) Find(ctx context.Context, learnerID, contentID string) (*ReviewSchedule, error) {
	var s ReviewSchedule
	err := r.db.GetContext(ctx, &s,
		"SELECT * FROM review_schedules WHERE learner_id = ? AND content_id = ?",
		learnerID, contentID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrScheduleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load review schedule: %w", err)
	}
	return &s, nil
}

// ActiveByLearner returns all active schedules for the learner.
func (r *DBScheduleStore) ActiveByLearner(ctx context.Context, learnerID string) ([]ReviewSchedule, error) {
	var schedules []ReviewSchedule
	err := r.db.SelectContext(ctx, &schedules,
		"SELECT * FROM review_schedules WHERE learner_id = ? AND is_active = TRUE ORDER BY content_id",
		learnerID,
	)
	if err != nil {
		return nil, fmt.Errorf("load active review schedules: %w", err)
	}
	return schedules, nil
}

// ApplyReview updates the schedule row and appends the history row in one
// transaction, so a review outcome is never half-persisted.
func (r *DBScheduleStore) ApplyReview(ctx context.Context, s *ReviewSchedule, h *ReviewHistory) (int64, error) {
	var historyID int64
	err := database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		result, err := tx.ExecContext(ctx,
			`UPDATE review_schedules
			SET interval_index = ?, next_review_date = ?, initial_review_completed = ?
			WHERE id = ? AND is_active = TRUE`,
			s.IntervalIndex, s.NextReviewDate, s.InitialReviewCompleted, s.ID,
		)
		if err != nil {
			return fmt.Errorf("update review schedule: %w", err)
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return fmt.Errorf("get updated schedule count: %w", err)
		}
		if affected == 0 {
			// Deactivated between read and write.
			return ErrScheduleNotFound
		}

		insert, err := tx.ExecContext(ctx,
			`INSERT INTO review_history
				(learner_id, content_id, result, time_spent_seconds, notes, ai_score, ai_feedback, reviewed_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			h.LearnerID, h.ContentID, h.Result, h.TimeSpentSeconds, h.Notes, h.AIScore, h.AIFeedback, h.ReviewedAt,
		)
		if err != nil {
			return fmt.Errorf("insert review history: %w", err)
		}
		historyID, err = insert.LastInsertId()
		if err != nil {
			return fmt.Errorf("get review history insert ID: %w", err)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	h.ID = historyID
	return historyID, nil
}

// SaveAll persists a batch of schedule updates in a single transaction.
func (r *DBScheduleStore) SaveAll(ctx context.Context, schedules []*ReviewSchedule) error {
	if len(schedules) == 0 {
		return nil
	}

	return database.RunInTx(ctx, r.db, func(ctx context.Context, tx *sqlx.Tx) error {
		for _, s := range schedules {
			if _, err := tx.ExecContext(ctx,
				`UPDATE review_schedules
				SET interval_index = ?, next_review_date = ?, initial_review_completed = ?, is_active = ?
				WHERE id = ?`,
				s.IntervalIndex, s.NextReviewDate, s.InitialReviewCompleted, s.IsActive, s.ID,
			); err != nil {
				return fmt.Errorf("update review schedule %d: %w", s.ID, err)
			}
		}
		return nil
	})
}

// Deactivate soft-deletes the schedule; the history rows stay untouched.
func (r *DBScheduleStore) Deactivate(ctx context.Context, learnerID, contentID string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE review_schedules SET is_active = FALSE WHERE learner_id = ? AND content_id = ?",
		learnerID, contentID,
	)
	if err != nil {
		return fmt.Errorf("deactivate review schedule: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get deactivated schedule count: %w", err)
	}
	if affected == 0 {
		if _, findErr := r.Find(ctx, learnerID, contentID); findErr != nil {
			return findErr
		}
	}
	return nil
}

// Due returns the learner's due schedules, oldest overdue first. The query is
// covered by the (learner_id, is_active, next_review_date) index.
func (r *DBScheduleStore) Due(ctx context.Context, learnerID string, asOf time.Time) ([]ReviewSchedule, error) {
	var schedules []ReviewSchedule
	err := r.db.SelectContext(ctx, &schedules,
		`SELECT * FROM review_schedules
		WHERE learner_id = ? AND is_active = TRUE AND next_review_date <= ?
		ORDER BY next_review_date ASC, id ASC`,
		learnerID, DateOf(asOf),
	)
	if err != nil {
		return nil, fmt.Errorf("load due review schedules: %w", err)
	}
	return schedules, nil
}
