// Package datasync exports engine data as YAML files for collaborators: the
// notification feed and read-only history/schedule snapshots for analytics.
package datasync

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/recallhq/recall/internal/schedule"
)

type exportSchedule struct {
	ID                     int64  `yaml:"id"`
	LearnerID              string `yaml:"learner_id"`
	ContentID              string `yaml:"content_id"`
	IntervalIndex          int    `yaml:"interval_index"`
	NextReviewDate         string `yaml:"next_review_date"`
	IsActive               bool   `yaml:"is_active"`
	InitialReviewCompleted bool   `yaml:"initial_review_completed"`
}

type exportHistory struct {
	ID               int64    `yaml:"id"`
	LearnerID        string   `yaml:"learner_id"`
	ContentID        string   `yaml:"content_id"`
	Result           string   `yaml:"result"`
	TimeSpentSeconds *int     `yaml:"time_spent_seconds,omitempty"`
	Notes            *string  `yaml:"notes,omitempty"`
	AIScore          *float64 `yaml:"ai_score,omitempty"`
	AIFeedback       *string  `yaml:"ai_feedback,omitempty"`
	ReviewedAt       string   `yaml:"reviewed_at"`
}

// YAMLExportSink writes schedule and history snapshots to a directory.
type YAMLExportSink struct {
	outputDir string
}

// NewYAMLExportSink creates a new YAMLExportSink.
func NewYAMLExportSink(outputDir string) *YAMLExportSink {
	return &YAMLExportSink{outputDir: outputDir}
}

// WriteSchedules writes schedules to review_schedules.yml.
func (s *YAMLExportSink) WriteSchedules(schedules []schedule.ReviewSchedule) error {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	out := make([]exportSchedule, len(schedules))
	for i, sc := range schedules {
		out[i] = exportSchedule{
			ID:                     sc.ID,
			LearnerID:              sc.LearnerID,
			ContentID:              sc.ContentID,
			IntervalIndex:          sc.IntervalIndex,
			NextReviewDate:         sc.NextReviewDate.Format("2006-01-02"),
			IsActive:               sc.IsActive,
			InitialReviewCompleted: sc.InitialReviewCompleted,
		}
	}

	if err := writeYAML(filepath.Join(s.outputDir, "review_schedules.yml"), out); err != nil {
		return fmt.Errorf("write review_schedules.yml: %w", err)
	}
	return nil
}

// WriteHistory writes history rows to review_history.yml.
func (s *YAMLExportSink) WriteHistory(history []schedule.ReviewHistory) error {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	out := make([]exportHistory, len(history))
	for i, h := range history {
		out[i] = exportHistory{
			ID:               h.ID,
			LearnerID:        h.LearnerID,
			ContentID:        h.ContentID,
			Result:           string(h.Result),
			TimeSpentSeconds: h.TimeSpentSeconds,
			Notes:            h.Notes,
			AIScore:          h.AIScore,
			AIFeedback:       h.AIFeedback,
			ReviewedAt:       h.ReviewedAt.UTC().Format(time.RFC3339),
		}
	}

	if err := writeYAML(filepath.Join(s.outputDir, "review_history.yml"), out); err != nil {
		return fmt.Errorf("write review_history.yml: %w", err)
	}
	return nil
}

func writeYAML(path string, data interface{}) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	enc := yaml.NewEncoder(f)
	defer func() { _ = enc.Close() }()
	return enc.Encode(data)
}
