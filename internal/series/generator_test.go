//nolint:testpackage // Tests require internal access for thorough testing
package series

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/recurrence"
	"taskflow/internal/task"
)

var genNow = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestTemplate(rule *recurrence.Rule) *task.Task {
	return task.NewTemplate("tpl1", "Water plants", task.PriorityLow, task.CategoryPersonal, rule, genNow)
}

func dueDates(instances []*task.Task) []time.Time {
	out := make([]time.Time, len(instances))
	for i, inst := range instances {
		out[i] = *inst.DueDate
	}
	return out
}

func TestGenerateDailyEveryOtherDay(t *testing.T) {
	maxOcc := 3
	tpl := newTestTemplate(&recurrence.Rule{
		Pattern:        recurrence.PatternDaily,
		Interval:       2,
		MaxOccurrences: &maxOcc,
	})

	got := Generate(tpl, date(2024, time.January, 1), genNow)
	require.Len(t, got, 3)
	assert.Equal(t, []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 3),
		date(2024, time.January, 5),
	}, dueDates(got))
}

func TestGenerateWeeklyMondayWednesday(t *testing.T) {
	// 2024-01-01 is a Monday.
	maxOcc := 3
	tpl := newTestTemplate(&recurrence.Rule{
		Pattern:        recurrence.PatternWeekly,
		Interval:       1,
		DaysOfWeek:     []int{1, 3},
		MaxOccurrences: &maxOcc,
	})

	got := Generate(tpl, date(2024, time.January, 1), genNow)
	require.Len(t, got, 3)
	assert.Equal(t, []time.Time{
		date(2024, time.January, 1),
		date(2024, time.January, 3),
		date(2024, time.January, 8),
	}, dueDates(got))
}

func TestGenerateWeeklyEmptyWeekdaySetTerminates(t *testing.T) {
	maxOcc := 4
	tpl := newTestTemplate(&recurrence.Rule{
		Pattern:        recurrence.PatternWeekly,
		Interval:       2,
		MaxOccurrences: &maxOcc,
	})

	got := Generate(tpl, date(2024, time.January, 1), genNow)
	require.Len(t, got, 4, "empty weekday set must fall back to interval-week stepping, not hang")
	assert.Equal(t, date(2024, time.January, 15), *got[1].DueDate)
}

func TestGenerateStopsAtDefaultCap(t *testing.T) {
	tpl := newTestTemplate(&recurrence.Rule{Pattern: recurrence.PatternDaily, Interval: 1})

	got := Generate(tpl, date(2024, time.January, 1), genNow)
	assert.Len(t, got, DefaultMaxOccurrences)
}

func TestGenerateRespectsEndDate(t *testing.T) {
	end := date(2024, time.January, 5)
	tpl := newTestTemplate(&recurrence.Rule{
		Pattern:  recurrence.PatternDaily,
		Interval: 2,
		EndDate:  &end,
	})

	got := Generate(tpl, date(2024, time.January, 1), genNow)
	// End date is inclusive: Jan 1, 3, 5.
	require.Len(t, got, 3)
	assert.Equal(t, date(2024, time.January, 5), *got[2].DueDate)
}

func TestGenerateStartAfterEndIsEmpty(t *testing.T) {
	end := date(2024, time.January, 1)
	tpl := newTestTemplate(&recurrence.Rule{
		Pattern:  recurrence.PatternDaily,
		Interval: 1,
		EndDate:  &end,
	})

	got := Generate(tpl, date(2024, time.February, 1), genNow)
	assert.Empty(t, got, "start past end date yields no instances, not an error")
}

func TestGenerateDueDatesStrictlyIncreasing(t *testing.T) {
	rules := []*recurrence.Rule{
		{Pattern: recurrence.PatternDaily, Interval: 1},
		{Pattern: recurrence.PatternWeekly, Interval: 1, DaysOfWeek: []int{2, 5}},
		{Pattern: recurrence.PatternMonthly, Interval: 1},
		{Pattern: recurrence.PatternYearly, Interval: 1},
	}

	for _, rule := range rules {
		got := Generate(newTestTemplate(rule), date(2024, time.January, 31), genNow)
		require.Len(t, got, DefaultMaxOccurrences)
		for i := 1; i < len(got); i++ {
			assert.True(t, got[i].DueDate.After(*got[i-1].DueDate),
				"%s: due date %d not after its predecessor", rule.Pattern, i)
		}
	}
}

func TestGenerateInstanceFields(t *testing.T) {
	maxOcc := 1
	tpl := newTestTemplate(&recurrence.Rule{
		Pattern:        recurrence.PatternDaily,
		Interval:       1,
		MaxOccurrences: &maxOcc,
	})
	tpl.Description = "front and back"
	tpl.Assignee = "alice"

	got := Generate(tpl, date(2024, time.March, 5), genNow)
	require.Len(t, got, 1)
	inst := got[0]

	assert.Equal(t, "tpl1-20240305", inst.ID)
	assert.Equal(t, "Water plants (2024-03-05)", inst.Title)
	assert.Equal(t, "front and back", inst.Description)
	assert.Equal(t, task.KindInstance, inst.Kind)
	assert.Equal(t, "tpl1", inst.RecurringParentID)
	assert.Equal(t, task.StatusPending, inst.Status)
	assert.Nil(t, inst.Recurrence)
	assert.Empty(t, inst.Comments, "instances start with a fresh discussion tree")
	assert.Equal(t, genNow, inst.CreatedAt)
	require.NoError(t, inst.Validate())
}

func TestInstanceIDDeterministic(t *testing.T) {
	a := InstanceID("tpl1", date(2024, time.June, 9))
	b := InstanceID("tpl1", date(2024, time.June, 9))
	assert.Equal(t, "tpl1-20240609", a)
	assert.Equal(t, a, b)
}

func TestGenerateWithoutRule(t *testing.T) {
	tpl := task.NewStandalone("solo", "No rule", task.PriorityMedium, task.CategoryWork, genNow)
	assert.Nil(t, Generate(tpl, date(2024, time.January, 1), genNow))
}
