package task

import (
	"sort"
	"time"
)

// StatusFilter controls which statuses to include in list results.
type StatusFilter struct {
	Pending    bool
	InProgress bool
	Completed  bool
}

// Matches returns true if the status should be included.
func (f StatusFilter) Matches(status Status) bool {
	// If no filter is set, include all
	if !f.Pending && !f.InProgress && !f.Completed {
		return true
	}
	switch status {
	case StatusPending:
		return f.Pending
	case StatusInProgress:
		return f.InProgress
	case StatusCompleted:
		return f.Completed
	default:
		return false
	}
}

// IsOverdue reports whether the task's due date has passed without completion.
func IsOverdue(t *Task, now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusCompleted
}

// Listable filters a collection for normal task listings: templates are
// bookkeeping records, never shown alongside schedulable tasks.
func Listable(tasks []*Task, filter StatusFilter) []*Task {
	var out []*Task
	for _, t := range tasks {
		if t.IsTemplate() {
			continue
		}
		if filter.Matches(t.Status) {
			out = append(out, t)
		}
	}
	return out
}

// Sort orders tasks by priority (most urgent first), then due date (earliest
// first, undated last), then creation time.
func Sort(tasks []*Task) {
	sort.Slice(tasks, func(i, j int) bool {
		pi := PriorityOrder(tasks[i].Priority)
		pj := PriorityOrder(tasks[j].Priority)
		if pi != pj {
			return pi < pj
		}
		di, dj := tasks[i].DueDate, tasks[j].DueDate
		switch {
		case di != nil && dj != nil && !di.Equal(*dj):
			return di.Before(*dj)
		case di != nil && dj == nil:
			return true
		case di == nil && dj != nil:
			return false
		}
		return tasks[i].CreatedAt.Before(tasks[j].CreatedAt)
	})
}
