package output

import (
	"taskflow/internal/comments"
	"taskflow/internal/series"
	"taskflow/internal/task"
)

// Formatter defines the interface for output formatting.
type Formatter interface {
	FormatTask(t *task.Task) string
	FormatTaskList(tasks []*task.Task) string
	FormatSeriesInfo(t *task.Task, info series.Info) string
	FormatCommentTree(roots []*comments.Comment) string
	FormatError(err error) string
	FormatMessage(msg string) string
}
