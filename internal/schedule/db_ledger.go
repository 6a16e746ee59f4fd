package schedule

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// DBHistoryLedger implements HistoryLedger using MySQL.
type DBHistoryLedger struct {
	db *sqlx.DB
}

// NewDBHistoryLedger creates a new DBHistoryLedger.
func NewDBHistoryLedger(db *sqlx.DB) *DBHistoryLedger {
	return &DBHistoryLedger{db: db}
}

// Record appends one history row.
func (r *DBHistoryLedger) Record(ctx context.Context, h *ReviewHistory) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO review_history
			(learner_id, content_id, result, time_spent_seconds, notes, ai_score, ai_feedback, reviewed_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		h.LearnerID, h.ContentID, h.Result, h.TimeSpentSeconds, h.Notes, h.AIScore, h.AIFeedback, h.ReviewedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert review history: %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("get review history insert ID: %w", err)
	}
	h.ID = id
	return id, nil
}

// Enrich attaches asynchronous AI grading data. The WHERE clause guards the
// exactly-once rule: a row that already carries AI fields never matches.
func (r *DBHistoryLedger) Enrich(ctx context.Context, historyID int64, aiScore float64, aiFeedback string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE review_history
		SET ai_score = ?, ai_feedback = ?
		WHERE id = ? AND ai_score IS NULL AND ai_feedback IS NULL`,
		aiScore, aiFeedback, historyID,
	)
	if err != nil {
		return fmt.Errorf("enrich review history: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get enriched history count: %w", err)
	}
	if affected == 0 {
		var exists bool
		err := r.db.GetContext(ctx, &exists, "SELECT TRUE FROM review_history WHERE id = ?", historyID)
		if errors.Is(err, sql.ErrNoRows) {
			return ErrHistoryNotFound
		}
		if err != nil {
			return fmt.Errorf("check review history: %w", err)
		}
		return ErrAlreadyEnriched
	}
	return nil
}

// ByLearner returns the learner's history, newest first.
func (r *DBHistoryLedger) ByLearner(ctx context.Context, learnerID string) ([]ReviewHistory, error) {
	var history []ReviewHistory
	err := r.db.SelectContext(ctx, &history,
		"SELECT * FROM review_history WHERE learner_id = ? ORDER BY reviewed_at DESC, id DESC",
		learnerID,
	)
	if err != nil {
		return nil, fmt.Errorf("load review history: %w", err)
	}
	return history, nil
}

// All returns every history row, oldest first.
func (r *DBHistoryLedger) All(ctx context.Context) ([]ReviewHistory, error) {
	var history []ReviewHistory
	if err := r.db.SelectContext(ctx, &history, "SELECT * FROM review_history ORDER BY id"); err != nil {
		return nil, fmt.Errorf("load all review history: %w", err)
	}
	return history, nil
}
