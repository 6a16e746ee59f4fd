package cli

import (
	"fmt"
	"strings"

	"github.com/recallhq/recall/internal/statistics"
)

// FormatReport renders the statistics as a Markdown document. The same text is
// printed to the terminal and fed to the PDF renderer.
func FormatReport(result statistics.StatisticsResult) string {
	var b strings.Builder

	b.WriteString("# Review Report\n\n")
	if len(result.Periods) == 0 {
		b.WriteString("No reviews recorded for the selected period.\n")
		return b.String()
	}

	b.WriteString("| Period | Reviews | Remembered | Partial | Forgot | Contents | First successes |\n")
	b.WriteString("|--------|---------|------------|---------|--------|----------|----------------|\n")
	for _, p := range result.Periods {
		b.WriteString(fmt.Sprintf("| %s | %d | %d | %d | %d | %d | %d |\n",
			p.Period, p.Reviews, p.Remembered, p.Partial, p.Forgot, p.UniqueContents, p.FirstSuccesses))
	}

	a := result.Aggregate
	b.WriteString("\n## Totals\n\n")
	b.WriteString(fmt.Sprintf("- Reviews: %d\n", a.Reviews))
	b.WriteString(fmt.Sprintf("- Remembered: %d (%.0f%%)\n", a.Remembered, percentage(a.Remembered, a.Reviews)))
	b.WriteString(fmt.Sprintf("- Partial: %d (%.0f%%)\n", a.Partial, percentage(a.Partial, a.Reviews)))
	b.WriteString(fmt.Sprintf("- Forgot: %d (%.0f%%)\n", a.Forgot, percentage(a.Forgot, a.Reviews)))
	b.WriteString(fmt.Sprintf("- Unique contents: %d\n", a.UniqueContents))
	b.WriteString(fmt.Sprintf("- First successes: %d\n", a.FirstSuccesses))

	return b.String()
}

func percentage(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
