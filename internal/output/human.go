package output

import (
	"fmt"
	"strings"

	"taskflow/internal/comments"
	"taskflow/internal/series"
	"taskflow/internal/task"
)

// HumanFormatter formats output for human-readable terminal display.
type HumanFormatter struct{}

// NewHumanFormatter creates a new HumanFormatter.
func NewHumanFormatter() *HumanFormatter {
	return &HumanFormatter{}
}

// FormatTask formats a single task for display.
func (f *HumanFormatter) FormatTask(t *task.Task) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("[%s] %s\n", t.ID, t.Title))
	sb.WriteString(fmt.Sprintf("  Status:   %s\n", t.Status))
	sb.WriteString(fmt.Sprintf("  Priority: %s\n", t.Priority))
	sb.WriteString(fmt.Sprintf("  Category: %s\n", t.Category))
	sb.WriteString(fmt.Sprintf("  Created:  %s\n", t.CreatedAt.Format("2006-01-02 15:04")))

	if t.DueDate != nil {
		label := "Due:     "
		if t.IsTemplate() {
			label = "Starts:  "
		}
		sb.WriteString(fmt.Sprintf("  %s %s\n", label, t.DueDate.Format("2006-01-02")))
	}
	if t.Assignee != "" {
		sb.WriteString(fmt.Sprintf("  Assignee: %s\n", t.Assignee))
	}
	if t.IsTemplate() && t.Recurrence != nil {
		sb.WriteString(fmt.Sprintf("  Repeats:  %s\n", describeRule(t)))
	}
	if t.IsInstance() {
		sb.WriteString(fmt.Sprintf("  Series:   %s\n", t.RecurringParentID))
	}
	if n := comments.Count(t.Comments); n > 0 {
		sb.WriteString(fmt.Sprintf("  Comments: %d\n", n))
	}
	if t.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(t.Description)
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatTaskList formats a list of tasks for display.
func (f *HumanFormatter) FormatTaskList(tasks []*task.Task) string {
	if len(tasks) == 0 {
		return "No tasks found.\n"
	}

	var sb strings.Builder
	for _, t := range tasks {
		sb.WriteString(f.formatTaskLine(t))
	}
	return sb.String()
}

// formatTaskLine formats a single task as a compact one-liner.
func (f *HumanFormatter) formatTaskLine(t *task.Task) string {
	statusIcon := f.statusIcon(t.Status)
	priorityMark := f.priorityMark(t.Priority)
	due := ""
	if t.DueDate != nil {
		due = fmt.Sprintf(" (due %s)", t.DueDate.Format("2006-01-02"))
	}
	badge := ""
	if n := comments.Count(t.Comments); n > 0 {
		badge = fmt.Sprintf(" [%d comments]", n)
	}
	if t.IsTemplate() {
		badge = " [template]"
	}
	return fmt.Sprintf("%s %s [%s] %s%s%s\n", statusIcon, priorityMark, t.ID, t.Title, due, badge)
}

func (f *HumanFormatter) statusIcon(s task.Status) string {
	switch s {
	case task.StatusPending:
		return "[ ]"
	case task.StatusInProgress:
		return "[>]"
	case task.StatusCompleted:
		return "[X]"
	default:
		return "[?]"
	}
}

func (f *HumanFormatter) priorityMark(p task.Priority) string {
	switch p {
	case task.PriorityUrgent:
		return "P0"
	case task.PriorityHigh:
		return "P1"
	case task.PriorityMedium:
		return "P2"
	case task.PriorityLow:
		return "P3"
	default:
		return "P?"
	}
}

// FormatSeriesInfo formats the totals for one recurring series.
func (f *HumanFormatter) FormatSeriesInfo(t *task.Task, info series.Info) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[%s] %s\n", t.ID, t.Title))
	sb.WriteString(fmt.Sprintf("  Repeats:   %s\n", describeRule(t)))
	sb.WriteString(fmt.Sprintf("  Generated: %d\n", info.Total))
	sb.WriteString(fmt.Sprintf("  Completed: %d\n", info.Completed))
	sb.WriteString(fmt.Sprintf("  Remaining: %d\n", info.Remaining))
	return sb.String()
}

// FormatError formats an error for display.
func (f *HumanFormatter) FormatError(err error) string {
	return fmt.Sprintf("Error: %s\n", err.Error())
}

// FormatMessage formats a simple message.
func (f *HumanFormatter) FormatMessage(msg string) string {
	return msg + "\n"
}

// FormatCommentTree formats a discussion tree as ASCII art.
func (f *HumanFormatter) FormatCommentTree(roots []*comments.Comment) string {
	if len(roots) == 0 {
		return "No comments.\n"
	}

	var sb strings.Builder
	for _, c := range roots {
		f.formatCommentNode(&sb, c, "", true)
	}
	return sb.String()
}

func (f *HumanFormatter) formatCommentNode(sb *strings.Builder, c *comments.Comment, prefix string, isLast bool) {
	connector := "├── "
	if isLast {
		connector = "└── "
	}
	if prefix == "" {
		connector = ""
	}

	fmt.Fprintf(sb, "%s%s[%s] %s: %s\n", prefix, connector, shortID(c.ID), c.Author, c.Text)

	childPrefix := prefix
	if prefix != "" {
		if isLast {
			childPrefix += "    "
		} else {
			childPrefix += "│   "
		}
	} else {
		childPrefix = "    "
	}

	for i, reply := range c.Replies {
		f.formatCommentNode(sb, reply, childPrefix, i == len(c.Replies)-1)
	}
}

// shortID trims UUIDs down to their first group for display.
func shortID(id string) string {
	if i := strings.IndexByte(id, '-'); i > 0 {
		return id[:i]
	}
	return id
}

// describeRule renders a rule as "every 2 weeks on Mon, Wed until 2024-06-01".
func describeRule(t *task.Task) string {
	r := t.Recurrence
	if r == nil {
		return "never"
	}

	unit := map[string]string{
		"daily": "day", "weekly": "week", "monthly": "month", "yearly": "year",
	}[string(r.Pattern)]
	if unit == "" {
		unit = string(r.Pattern)
	}

	var sb strings.Builder
	if r.Interval == 1 {
		sb.WriteString("every " + unit)
	} else {
		sb.WriteString(fmt.Sprintf("every %d %ss", r.Interval, unit))
	}

	if len(r.DaysOfWeek) > 0 {
		names := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
		var days []string
		for _, d := range r.DaysOfWeek {
			if d >= 0 && d < len(names) {
				days = append(days, names[d])
			}
		}
		sb.WriteString(" on " + strings.Join(days, ", "))
	}
	if r.EndDate != nil {
		sb.WriteString(" until " + r.EndDate.Format("2006-01-02"))
	}
	if r.MaxOccurrences != nil {
		sb.WriteString(fmt.Sprintf(" (max %d)", *r.MaxOccurrences))
	}
	return sb.String()
}
