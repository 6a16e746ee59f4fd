package datasync

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/recallhq/recall/internal/schedule"
)

// DueFeed is one snapshot of a learner's due items, consumed by the
// notification collaborator.
type DueFeed struct {
	LearnerID   string        `yaml:"learner_id"`
	GeneratedAt string        `yaml:"generated_at"`
	Items       []DueFeedItem `yaml:"items"`
}

// DueFeedItem is one due schedule in the feed, oldest overdue first.
type DueFeedItem struct {
	ContentID      string `yaml:"content_id"`
	NextReviewDate string `yaml:"next_review_date"`
	OverdueDays    int    `yaml:"overdue_days"`
	FirstReview    bool   `yaml:"first_review"`
}

// YAMLDueFeedSink writes per-learner due feeds to a directory, one file per
// learner, atomically replaced on every write so the collaborator never reads
// a half-written feed.
type YAMLDueFeedSink struct {
	outputDir string
}

// NewYAMLDueFeedSink creates a new YAMLDueFeedSink.
func NewYAMLDueFeedSink(outputDir string) *YAMLDueFeedSink {
	return &YAMLDueFeedSink{outputDir: outputDir}
}

// WriteFeed writes the feed for one learner to <learnerID>.yml.
func (s *YAMLDueFeedSink) WriteFeed(learnerID string, due []schedule.ReviewSchedule, asOf time.Time) error {
	if err := os.MkdirAll(s.outputDir, 0o755); err != nil {
		return fmt.Errorf("create feed directory: %w", err)
	}

	today := schedule.DateOf(asOf)
	feed := DueFeed{
		LearnerID:   learnerID,
		GeneratedAt: asOf.UTC().Format(time.RFC3339),
		Items:       make([]DueFeedItem, len(due)),
	}
	for i, d := range due {
		feed.Items[i] = DueFeedItem{
			ContentID:      d.ContentID,
			NextReviewDate: d.NextReviewDate.Format("2006-01-02"),
			OverdueDays:    int(today.Sub(schedule.DateOf(d.NextReviewDate)).Hours() / 24),
			FirstReview:    !d.InitialReviewCompleted,
		}
	}

	final := filepath.Join(s.outputDir, learnerID+".yml")
	tmp := final + ".tmp"
	if err := writeYAML(tmp, feed); err != nil {
		return fmt.Errorf("write due feed for %s: %w", learnerID, err)
	}
	if err := os.Rename(tmp, final); err != nil {
		return fmt.Errorf("replace due feed for %s: %w", learnerID, err)
	}
	return nil
}
