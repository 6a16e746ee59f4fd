package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"

	"github.com/recallhq/recall/internal/schedule"
)

// PrintDueList writes the learner's due queue to w, oldest overdue first.
// Overdue items are highlighted in red, first reviews in italic.
func PrintDueList(w io.Writer, learnerID string, due []schedule.ReviewSchedule, asOf time.Time) {
	if len(due) == 0 {
		fmt.Fprintf(w, "Nothing due for %s.\n", learnerID)
		return
	}

	today := schedule.DateOf(asOf)
	bold := color.New(color.Bold)
	italic := color.New(color.Italic)
	red := color.New(color.FgRed)

	_, _ = bold.Fprintf(w, "%d item(s) due for %s:\n", len(due), learnerID)
	for _, s := range due {
		overdueDays := int(today.Sub(schedule.DateOf(s.NextReviewDate)).Hours() / 24)
		line := fmt.Sprintf("  %s (due %s)", s.ContentID, s.NextReviewDate.Format("2006-01-02"))
		if overdueDays > 0 {
			line = fmt.Sprintf("%s, %d day(s) overdue", line, overdueDays)
			_, _ = red.Fprintln(w, line)
			continue
		}
		if !s.InitialReviewCompleted {
			_, _ = italic.Fprintf(w, "%s, first review\n", line)
			continue
		}
		fmt.Fprintln(w, line)
	}
}
