// Package series expands recurrence rules into concrete task instances and
// manages the lifecycle linking a template to its generated series.
package series

import (
	"fmt"
	"time"

	"taskflow/internal/task"
)

// DefaultMaxOccurrences caps generation when a rule carries no explicit
// max-occurrences and no end date. Malformed input can never expand without
// bound.
const DefaultMaxOccurrences = 50

// instanceDateFormat keys generated instance IDs by occurrence date.
const instanceDateFormat = "20060102"

// InstanceID derives the deterministic ID for the occurrence of a template on
// a given date. Regenerating from the same inputs reproduces the same IDs.
func InstanceID(templateID string, occurrence time.Time) string {
	return fmt.Sprintf("%s-%s", templateID, occurrence.Format(instanceDateFormat))
}

// Generate expands the template's rule into a bounded, ordered list of
// instances starting at start. Due dates are strictly increasing; output is
// empty (not an error) when start already exceeds the rule's end date. The
// caller owns stamping the result into the store and updating the template's
// generated-ID list.
func Generate(template *task.Task, start, now time.Time) []*task.Task {
	rule := template.Recurrence
	if rule == nil {
		return nil
	}

	limit := DefaultMaxOccurrences
	if rule.MaxOccurrences != nil && *rule.MaxOccurrences > 0 {
		limit = *rule.MaxOccurrences
	}

	var instances []*task.Task
	current := start
	for len(instances) < limit {
		if rule.EndDate != nil && current.After(*rule.EndDate) {
			break
		}
		instances = append(instances, materialize(template, current, now))
		current = rule.NextOccurrence(current)
	}
	return instances
}

// materialize copies the template's fields into one concrete instance for the
// occurrence date. Instances start pending with a fresh, empty discussion
// tree regardless of the template's state.
func materialize(template *task.Task, occurrence, now time.Time) *task.Task {
	due := occurrence
	return &task.Task{
		ID:                InstanceID(template.ID, occurrence),
		Title:             fmt.Sprintf("%s (%s)", template.Title, occurrence.Format("2006-01-02")),
		Description:       template.Description,
		Priority:          template.Priority,
		Status:            task.StatusPending,
		Category:          template.Category,
		DueDate:           &due,
		CreatedAt:         now,
		UpdatedAt:         now,
		Assignee:          template.Assignee,
		Kind:              task.KindInstance,
		RecurringParentID: template.ID,
	}
}
