package output

import (
	"encoding/json"
	"time"

	"taskflow/internal/comments"
	"taskflow/internal/series"
	"taskflow/internal/task"
)

// JSONFormatter formats output as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSONFormatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// marshalJSON marshals a value to indented JSON with a trailing newline.
func marshalJSON(v any) string {
	data, _ := json.MarshalIndent(v, "", "  ")
	return string(data) + "\n"
}

// taskJSON is the JSON representation of a task.
type taskJSON struct {
	ID                string              `json:"id"`
	Title             string              `json:"title"`
	Description       string              `json:"description,omitempty"`
	Priority          string              `json:"priority"`
	Status            string              `json:"status"`
	Category          string              `json:"category"`
	DueDate           *string             `json:"due_date,omitempty"`
	CreatedAt         string              `json:"created_at"`
	UpdatedAt         string              `json:"updated_at"`
	Assignee          string              `json:"assignee,omitempty"`
	Kind              string              `json:"kind"`
	RecurringParentID string              `json:"recurring_parent_id,omitempty"`
	Recurrence        *ruleJSON           `json:"recurrence,omitempty"`
	Comments          []*comments.Comment `json:"comments,omitempty"`
	CommentCount      int                 `json:"comment_count"`
}

// ruleJSON is the JSON representation of a recurrence rule.
type ruleJSON struct {
	Pattern          string   `json:"pattern"`
	Interval         int      `json:"interval"`
	DaysOfWeek       []int    `json:"days_of_week,omitempty"`
	EndDate          *string  `json:"end_date,omitempty"`
	MaxOccurrences   *int     `json:"max_occurrences,omitempty"`
	GeneratedTaskIDs []string `json:"generated_task_ids,omitempty"`
}

func toTaskJSON(t *task.Task) taskJSON {
	tj := taskJSON{
		ID:                t.ID,
		Title:             t.Title,
		Description:       t.Description,
		Priority:          string(t.Priority),
		Status:            string(t.Status),
		Category:          string(t.Category),
		CreatedAt:         t.CreatedAt.Format(time.RFC3339),
		UpdatedAt:         t.UpdatedAt.Format(time.RFC3339),
		Assignee:          t.Assignee,
		Kind:              string(t.Kind),
		RecurringParentID: t.RecurringParentID,
		Comments:          t.Comments,
		CommentCount:      comments.Count(t.Comments),
	}
	if t.DueDate != nil {
		s := t.DueDate.Format("2006-01-02")
		tj.DueDate = &s
	}
	if t.Recurrence != nil {
		r := ruleJSON{
			Pattern:          string(t.Recurrence.Pattern),
			Interval:         t.Recurrence.Interval,
			DaysOfWeek:       t.Recurrence.DaysOfWeek,
			MaxOccurrences:   t.Recurrence.MaxOccurrences,
			GeneratedTaskIDs: t.Recurrence.GeneratedTaskIDs,
		}
		if t.Recurrence.EndDate != nil {
			s := t.Recurrence.EndDate.Format("2006-01-02")
			r.EndDate = &s
		}
		tj.Recurrence = &r
	}
	return tj
}

// FormatTask formats a single task as JSON.
func (f *JSONFormatter) FormatTask(t *task.Task) string {
	return marshalJSON(toTaskJSON(t))
}

// FormatTaskList formats a list of tasks as JSON.
func (f *JSONFormatter) FormatTaskList(tasks []*task.Task) string {
	jsonTasks := make([]taskJSON, len(tasks))
	for i, t := range tasks {
		jsonTasks[i] = toTaskJSON(t)
	}
	return marshalJSON(jsonTasks)
}

// seriesInfoJSON is the JSON representation of a series summary.
type seriesInfoJSON struct {
	Template string      `json:"template"`
	Title    string      `json:"title"`
	Info     series.Info `json:"info"`
}

// FormatSeriesInfo formats the totals for one recurring series as JSON.
func (f *JSONFormatter) FormatSeriesInfo(t *task.Task, info series.Info) string {
	return marshalJSON(seriesInfoJSON{Template: t.ID, Title: t.Title, Info: info})
}

// FormatCommentTree formats a discussion tree as JSON.
func (f *JSONFormatter) FormatCommentTree(roots []*comments.Comment) string {
	if roots == nil {
		roots = []*comments.Comment{}
	}
	return marshalJSON(roots)
}

// errorJSON is the JSON representation of an error.
type errorJSON struct {
	Error string `json:"error"`
}

// FormatError formats an error as JSON.
func (f *JSONFormatter) FormatError(err error) string {
	return marshalJSON(errorJSON{Error: err.Error()})
}

// messageJSON is the JSON representation of a message.
type messageJSON struct {
	Message string `json:"message"`
}

// FormatMessage formats a simple message as JSON.
func (f *JSONFormatter) FormatMessage(msg string) string {
	return marshalJSON(messageJSON{Message: msg})
}
