package datasync

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/recallhq/recall/internal/schedule"
)

func TestYAMLDueFeedSink_WriteFeed(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "feeds")
	sink := NewYAMLDueFeedSink(dir)
	asOf := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

	err := sink.WriteFeed("learner-1", []schedule.ReviewSchedule{
		{
			ContentID:      "overdue",
			NextReviewDate: time.Date(2025, 6, 7, 0, 0, 0, 0, time.UTC),
			IsActive:       true,
		},
		{
			ContentID:              "due-today",
			NextReviewDate:         time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
			IsActive:               true,
			InitialReviewCompleted: true,
		},
	}, asOf)
	require.NoError(t, err)

	raw, err := os.ReadFile(filepath.Join(dir, "learner-1.yml"))
	require.NoError(t, err)

	var feed DueFeed
	require.NoError(t, yaml.Unmarshal(raw, &feed))
	assert.Equal(t, "learner-1", feed.LearnerID)
	assert.Equal(t, "2025-06-10T08:00:00Z", feed.GeneratedAt)
	require.Len(t, feed.Items, 2)
	assert.Equal(t, DueFeedItem{
		ContentID:      "overdue",
		NextReviewDate: "2025-06-07",
		OverdueDays:    3,
		FirstReview:    true,
	}, feed.Items[0])
	assert.Equal(t, 0, feed.Items[1].OverdueDays)
	assert.False(t, feed.Items[1].FirstReview)
}

func TestYAMLDueFeedSink_WriteFeedReplacesPrevious(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "feeds")
	sink := NewYAMLDueFeedSink(dir)
	asOf := time.Date(2025, 6, 10, 8, 0, 0, 0, time.UTC)

	require.NoError(t, sink.WriteFeed("learner-1", []schedule.ReviewSchedule{
		{ContentID: "alpha", NextReviewDate: schedule.DateOf(asOf)},
	}, asOf))
	require.NoError(t, sink.WriteFeed("learner-1", nil, asOf.Add(time.Hour)))

	raw, err := os.ReadFile(filepath.Join(dir, "learner-1.yml"))
	require.NoError(t, err)

	var feed DueFeed
	require.NoError(t, yaml.Unmarshal(raw, &feed))
	assert.Empty(t, feed.Items)

	// No leftover temp file after the atomic replace.
	_, err = os.Stat(filepath.Join(dir, "learner-1.yml.tmp"))
	assert.True(t, os.IsNotExist(err))
}
