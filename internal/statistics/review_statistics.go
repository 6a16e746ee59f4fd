// Package statistics computes read-side analytics over review history.
package statistics

import (
	"fmt"
	"sort"

	"github.com/recallhq/recall/internal/schedule"
)

// ReviewStatistics holds review counts for one time period.
type ReviewStatistics struct {
	Period         string // "2025-01" for monthly
	Reviews        int    // total completed reviews
	Remembered     int
	Partial        int
	Forgot         int
	UniqueContents int // distinct content items reviewed in the period
	FirstSuccesses int // contents remembered for the first time ever in this period
}

// AggregateStatistics holds totals across all periods with global unique counts.
type AggregateStatistics struct {
	Reviews        int
	Remembered     int
	Partial        int
	Forgot         int
	UniqueContents int // distinct contents, deduplicated across periods
	FirstSuccesses int
}

// StatisticsResult holds both per-period and aggregate statistics.
type StatisticsResult struct {
	Periods   []ReviewStatistics
	Aggregate AggregateStatistics
}

// periodData tracks counts per period
type periodData struct {
	reviews        int
	remembered     int
	partial        int
	forgot         int
	uniqueContents map[string]struct{}
	firstSuccesses int
}

// CalculateStatistics aggregates review history into monthly statistics.
// It accepts optional year and month filters (0 means no filter).
// A "first success" is counted the first time a content item is ever
// remembered, in the period where that review falls.
func CalculateStatistics(history []schedule.ReviewHistory, year, month int) StatisticsResult {
	stats := make(map[string]*periodData)
	globalContents := make(map[string]struct{})
	succeededBefore := make(map[string]struct{})

	// Oldest-first order so first successes land in the right period.
	ordered := make([]schedule.ReviewHistory, len(history))
	copy(ordered, history)
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ReviewedAt.Before(ordered[j].ReviewedAt) })

	var aggregate AggregateStatistics
	for _, h := range ordered {
		reviewed := h.ReviewedAt.UTC()
		pairKey := h.LearnerID + "|" + h.ContentID

		firstSuccess := false
		if h.Result == schedule.ResultRemembered {
			if _, ok := succeededBefore[pairKey]; !ok {
				succeededBefore[pairKey] = struct{}{}
				firstSuccess = true
			}
		}

		if year != 0 && reviewed.Year() != year {
			continue
		}
		if month != 0 && int(reviewed.Month()) != month {
			continue
		}

		period := fmt.Sprintf("%04d-%02d", reviewed.Year(), int(reviewed.Month()))
		data, ok := stats[period]
		if !ok {
			data = &periodData{uniqueContents: make(map[string]struct{})}
			stats[period] = data
		}

		data.reviews++
		aggregate.Reviews++
		switch h.Result {
		case schedule.ResultRemembered:
			data.remembered++
			aggregate.Remembered++
		case schedule.ResultPartial:
			data.partial++
			aggregate.Partial++
		case schedule.ResultForgot:
			data.forgot++
			aggregate.Forgot++
		}
		data.uniqueContents[pairKey] = struct{}{}
		globalContents[pairKey] = struct{}{}
		if firstSuccess {
			data.firstSuccesses++
			aggregate.FirstSuccesses++
		}
	}
	aggregate.UniqueContents = len(globalContents)

	periods := make([]ReviewStatistics, 0, len(stats))
	for period, data := range stats {
		periods = append(periods, ReviewStatistics{
			Period:         period,
			Reviews:        data.reviews,
			Remembered:     data.remembered,
			Partial:        data.partial,
			Forgot:         data.forgot,
			UniqueContents: len(data.uniqueContents),
			FirstSuccesses: data.firstSuccesses,
		})
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Period < periods[j].Period })

	return StatisticsResult{Periods: periods, Aggregate: aggregate}
}
