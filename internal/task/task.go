package task

import (
	"strings"
	"time"

	"taskflow/internal/comments"
	flowerrors "taskflow/internal/errors"
	"taskflow/internal/recurrence"
)

// Status represents the current state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

// Priority represents the importance level of a task.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Category groups tasks for filtering.
type Category string

const (
	CategoryPersonal Category = "personal"
	CategoryWork     Category = "work"
	CategoryUrgent   Category = "urgent"
	CategoryIdeas    Category = "ideas"
)

// Kind distinguishes the three task variants. A task is exactly one of:
// a standalone task, a recurring template (owns a rule and the IDs it
// generated), or a generated instance (back-references its template).
type Kind string

const (
	KindStandalone Kind = "standalone"
	KindTemplate   Kind = "template"
	KindInstance   Kind = "instance"
)

// PriorityOrder returns the sort order for a priority (lower = more urgent).
func PriorityOrder(p Priority) int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 3
	default:
		return 4
	}
}

// Task represents a tracked work item.
type Task struct {
	ID                string              `yaml:"id"`
	Title             string              `yaml:"title"`
	Description       string              `yaml:"description,omitempty"`
	Priority          Priority            `yaml:"priority"`
	Status            Status              `yaml:"status"`
	Category          Category            `yaml:"category"`
	DueDate           *time.Time          `yaml:"due_date,omitempty"`
	CreatedAt         time.Time           `yaml:"created_at"`
	UpdatedAt         time.Time           `yaml:"updated_at"`
	Assignee          string              `yaml:"assignee,omitempty"`
	Comments          []*comments.Comment `yaml:"comments,omitempty"`
	Kind              Kind                `yaml:"kind"`
	RecurringParentID string              `yaml:"recurring_parent_id,omitempty"`
	Recurrence        *recurrence.Rule    `yaml:"recurrence,omitempty"`
}

// IsTemplate reports whether the task is a recurring template.
func (t *Task) IsTemplate() bool {
	return t.Kind == KindTemplate
}

// IsInstance reports whether the task was generated from a template.
func (t *Task) IsInstance() bool {
	return t.Kind == KindInstance
}

// Validate rejects field combinations that violate the variant invariant.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.Title) == "" {
		return flowerrors.EmptyTitleError{}
	}
	switch t.Kind {
	case KindStandalone:
		if t.Recurrence != nil {
			return flowerrors.InvalidTaskKindError{Reason: "standalone task cannot carry a recurrence rule"}
		}
		if t.RecurringParentID != "" {
			return flowerrors.InvalidTaskKindError{Reason: "standalone task cannot reference a template"}
		}
	case KindTemplate:
		if t.Recurrence == nil {
			return flowerrors.InvalidTaskKindError{Reason: "template requires a recurrence rule"}
		}
		if t.RecurringParentID != "" {
			return flowerrors.InvalidTaskKindError{Reason: "template cannot itself be a generated instance"}
		}
		if err := t.Recurrence.Validate(); err != nil {
			return err
		}
	case KindInstance:
		if t.RecurringParentID == "" {
			return flowerrors.InvalidTaskKindError{Reason: "instance requires a template reference"}
		}
		if t.Recurrence != nil {
			return flowerrors.InvalidTaskKindError{Reason: "instance cannot carry a recurrence rule"}
		}
	default:
		return flowerrors.InvalidTaskKindError{Reason: "unknown task kind: " + string(t.Kind)}
	}
	return nil
}

// NewStandalone builds a plain task.
func NewStandalone(id, title string, priority Priority, category Category, now time.Time) *Task {
	return &Task{
		ID:        id,
		Title:     title,
		Priority:  priority,
		Status:    StatusPending,
		Category:  category,
		CreatedAt: now,
		UpdatedAt: now,
		Kind:      KindStandalone,
	}
}

// NewTemplate builds a recurring template owning the given rule. The template
// itself is never scheduled; only its generated instances are.
func NewTemplate(id, title string, priority Priority, category Category, rule *recurrence.Rule, now time.Time) *Task {
	return &Task{
		ID:         id,
		Title:      title,
		Priority:   priority,
		Status:     StatusPending,
		Category:   category,
		CreatedAt:  now,
		UpdatedAt:  now,
		Kind:       KindTemplate,
		Recurrence: rule,
	}
}

// IsValidStatus checks if a status string is valid.
func IsValidStatus(s Status) bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	default:
		return false
	}
}

// IsValidPriority checks if a priority string is valid.
func IsValidPriority(p Priority) bool {
	switch p {
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	default:
		return false
	}
}

// IsValidCategory checks if a category string is valid.
func IsValidCategory(c Category) bool {
	switch c {
	case CategoryPersonal, CategoryWork, CategoryUrgent, CategoryIdeas:
		return true
	default:
		return false
	}
}
