// Package recurrence describes repeating schedules and computes successive
// occurrence dates. All date math here is pure; rules carry no clock.
package recurrence

import (
	"time"

	flowerrors "taskflow/internal/errors"
)

// Pattern identifies how a rule steps through the calendar.
type Pattern string

const (
	PatternDaily   Pattern = "daily"
	PatternWeekly  Pattern = "weekly"
	PatternMonthly Pattern = "monthly"
	PatternYearly  Pattern = "yearly"
)

// weeklyLookaheadDays bounds the forward scan for the next matching weekday.
// Two full weeks always contain every weekday, so a non-empty set is
// guaranteed to match within the bound.
const weeklyLookaheadDays = 14

// IsValidPattern checks if a pattern string is valid.
func IsValidPattern(p Pattern) bool {
	switch p {
	case PatternDaily, PatternWeekly, PatternMonthly, PatternYearly:
		return true
	default:
		return false
	}
}

// Rule describes a repeating schedule attached to a template task.
// GeneratedTaskIDs is owned by the template and mutated only by the series
// manager; it always mirrors the set of instances currently in the store.
type Rule struct {
	Pattern          Pattern    `yaml:"pattern" json:"type"`
	Interval         int        `yaml:"interval" json:"interval"`
	DaysOfWeek       []int      `yaml:"days_of_week,omitempty" json:"daysOfWeek,omitempty"`
	EndDate          *time.Time `yaml:"end_date,omitempty" json:"endDate,omitempty"`
	MaxOccurrences   *int       `yaml:"max_occurrences,omitempty" json:"maxOccurrences,omitempty"`
	GeneratedTaskIDs []string   `yaml:"generated_task_ids,omitempty" json:"generatedTaskIds,omitempty"`
}

// Validate checks the rule invariants: known pattern, interval >= 1, and a
// non-empty weekday set (each in 0-6) for weekly rules.
func (r *Rule) Validate() error {
	if !IsValidPattern(r.Pattern) {
		return flowerrors.InvalidPatternError{Value: string(r.Pattern)}
	}
	if r.Interval < 1 {
		return flowerrors.InvalidIntervalError{Value: r.Interval}
	}
	if r.Pattern == PatternWeekly {
		if len(r.DaysOfWeek) == 0 {
			return flowerrors.NoWeekdaysError{}
		}
		for _, d := range r.DaysOfWeek {
			if d < 0 || d > 6 {
				return flowerrors.InvalidWeekdayError{Value: d}
			}
		}
	}
	return nil
}

// NextOccurrence computes the occurrence date following current. It is a pure
// function of (current, rule) and always advances, even for rules that would
// fail Validate.
func (r *Rule) NextOccurrence(current time.Time) time.Time {
	switch r.Pattern {
	case PatternDaily:
		return current.AddDate(0, 0, r.Interval)
	case PatternWeekly:
		return r.nextWeekly(current)
	case PatternMonthly:
		return addMonthsClamped(current, r.Interval)
	case PatternYearly:
		return current.AddDate(r.Interval, 0, 0)
	default:
		// Unknown patterns step daily so callers still terminate.
		return current.AddDate(0, 0, max(r.Interval, 1))
	}
}

// nextWeekly scans forward day-by-day for the next date whose weekday is in
// the set. The scan is bounded; if the set is empty or inconsistent the rule
// falls back to stepping whole weeks so progress is guaranteed.
func (r *Rule) nextWeekly(current time.Time) time.Time {
	if len(r.DaysOfWeek) > 0 {
		days := make(map[int]bool, len(r.DaysOfWeek))
		for _, d := range r.DaysOfWeek {
			days[d] = true
		}
		for i := 1; i <= weeklyLookaheadDays; i++ {
			candidate := current.AddDate(0, 0, i)
			if days[int(candidate.Weekday())] {
				return candidate
			}
		}
	}
	return current.AddDate(0, 0, 7*r.Interval)
}

// addMonthsClamped adds calendar months preserving the day-of-month, clamping
// to the last day of the target month when it is shorter (Jan 31 + 1 month
// lands on Feb 28/29, not Mar 2/3).
func addMonthsClamped(t time.Time, months int) time.Time {
	year, month, day := t.Date()
	first := time.Date(year, month+time.Month(months), 1, 0, 0, 0, 0, t.Location())
	last := first.AddDate(0, 1, -1).Day()
	if day > last {
		day = last
	}
	return time.Date(first.Year(), first.Month(), day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
