// Package tier defines subscription tiers and their review interval tables.
package tier

import (
	"fmt"
	"sort"
	"strings"
)

// Tier is a subscription tier label attached to a learner account.
type Tier string

const (
	TierFree  Tier = "free"
	TierBasic Tier = "basic"
	TierPro   Tier = "pro"
)

// defaultIntervals is the canonical tier table, in days since the last review.
// The source product carried conflicting tables across modules; this one is the
// confirmed product decision (see DESIGN.md).
var defaultIntervals = map[Tier][]int{
	TierFree:  {1, 3, 7},
	TierBasic: {1, 3, 7, 14, 30, 60},
	TierPro:   {1, 3, 7, 14, 30, 60, 120, 240},
}

// Policy maps tiers to ordered review interval sequences. The zero value is
// not usable; construct with NewPolicy or NewPolicyWithOverrides.
type Policy struct {
	intervals map[Tier][]int
}

// NewPolicy returns a Policy with the canonical interval table.
func NewPolicy() *Policy {
	return &Policy{intervals: defaultIntervals}
}

// NewPolicyWithOverrides returns a Policy whose table is replaced by the given
// per-tier sequences. Tiers absent from the overrides keep the canonical
// sequence. Every sequence must be non-empty and strictly increasing with
// positive day counts.
func NewPolicyWithOverrides(overrides map[string][]int) (*Policy, error) {
	intervals := make(map[Tier][]int, len(defaultIntervals))
	for t, days := range defaultIntervals {
		intervals[t] = days
	}
	for name, days := range overrides {
		t := Tier(strings.ToLower(name))
		if err := validateIntervals(days); err != nil {
			return nil, fmt.Errorf("tier %q: %w", name, err)
		}
		intervals[t] = days
	}
	return &Policy{intervals: intervals}, nil
}

func validateIntervals(days []int) error {
	if len(days) == 0 {
		return fmt.Errorf("interval sequence must not be empty")
	}
	prev := 0
	for i, d := range days {
		if d <= prev {
			return fmt.Errorf("interval sequence must be strictly increasing positive days, got %d at position %d", d, i)
		}
		prev = d
	}
	return nil
}

// Known reports whether the tier has an interval sequence.
func (p *Policy) Known(t Tier) bool {
	_, ok := p.intervals[t]
	return ok
}

// Tiers returns all known tiers in sorted order.
func (p *Policy) Tiers() []Tier {
	tiers := make([]Tier, 0, len(p.intervals))
	for t := range p.intervals {
		tiers = append(tiers, t)
	}
	sort.Slice(tiers, func(i, j int) bool { return tiers[i] < tiers[j] })
	return tiers
}

// Intervals returns the ordered interval sequence for the tier. Unknown tiers
// fall back to the free sequence so that a stale or mistyped tier label can
// never make a learner's schedule unusable.
func (p *Policy) Intervals(t Tier) []int {
	if days, ok := p.intervals[t]; ok {
		return days
	}
	return p.intervals[TierFree]
}

// MaxIndex returns the largest interval index reachable on the tier.
func (p *Policy) MaxIndex(t Tier) int {
	return len(p.Intervals(t)) - 1
}

// IntervalAt returns the interval in days at the given index, saturating at
// the last entry of the tier's sequence. It never fails on an out-of-range
// index: advancing past the last tier-defined interval keeps repeating the
// longest interval.
func (p *Policy) IntervalAt(t Tier, index int) int {
	days := p.Intervals(t)
	if index < 0 {
		index = 0
	}
	if index >= len(days) {
		index = len(days) - 1
	}
	return days[index]
}

// EffectiveIndex clamps a stored interval index to the range the tier allows.
// Stored indexes are preserved across downgrades; this is the lookup-time
// clamp applied whenever an index is used for scheduling.
func (p *Policy) EffectiveIndex(t Tier, index int) int {
	if index < 0 {
		return 0
	}
	if max := p.MaxIndex(t); index > max {
		return max
	}
	return index
}
