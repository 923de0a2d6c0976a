//nolint:revive // Package name intentionally matches stdlib for domain clarity
package errors

import "fmt"

// NotInitializedError indicates the taskflow data directory doesn't exist.
type NotInitializedError struct{}

func (e NotInitializedError) Error() string {
	return "taskflow not initialized: run 'taskflow init' first"
}

// AlreadyInitializedError indicates the data directory already exists.
type AlreadyInitializedError struct{}

func (e AlreadyInitializedError) Error() string {
	return "taskflow already initialized"
}

// TaskNotFoundError indicates the task ID doesn't match any stored task.
type TaskNotFoundError struct {
	ID string
}

func (e TaskNotFoundError) Error() string {
	return fmt.Sprintf("task not found: %s", e.ID)
}

// NotATemplateError indicates a series operation targeted a non-template task.
type NotATemplateError struct {
	ID string
}

func (e NotATemplateError) Error() string {
	return fmt.Sprintf("task %s is not a recurring template", e.ID)
}

// CommentNotFoundError indicates the comment ID doesn't exist in the task's tree.
type CommentNotFoundError struct {
	TaskID    string
	CommentID string
}

func (e CommentNotFoundError) Error() string {
	return fmt.Sprintf("comment %s not found on task %s", e.CommentID, e.TaskID)
}

// EmptyTitleError indicates a task or template was submitted without a title.
type EmptyTitleError struct{}

func (e EmptyTitleError) Error() string {
	return "task title is required"
}

// MissingStartDateError indicates a series was created without a start date.
type MissingStartDateError struct{}

func (e MissingStartDateError) Error() string {
	return "recurring series requires a start date"
}

// NoWeekdaysError indicates a weekly rule with an empty weekday set.
type NoWeekdaysError struct{}

func (e NoWeekdaysError) Error() string {
	return "weekly recurrence requires at least one weekday"
}

// EmptyCommentError indicates empty or whitespace-only comment text.
type EmptyCommentError struct{}

func (e EmptyCommentError) Error() string {
	return "comment text cannot be empty"
}

// ConfirmationRequiredError indicates a destructive operation was not confirmed.
type ConfirmationRequiredError struct {
	Action string
}

func (e ConfirmationRequiredError) Error() string {
	return fmt.Sprintf("%s is destructive: re-run with --yes to confirm", e.Action)
}

// InvalidPriorityError indicates an invalid priority value.
type InvalidPriorityError struct {
	Value string
}

func (e InvalidPriorityError) Error() string {
	return fmt.Sprintf("invalid priority: %s (valid: low, medium, high, urgent)", e.Value)
}

// InvalidStatusError indicates an invalid status value.
type InvalidStatusError struct {
	Value string
}

func (e InvalidStatusError) Error() string {
	return fmt.Sprintf("invalid status: %s (valid: pending, in-progress, completed)", e.Value)
}

// InvalidCategoryError indicates an invalid category value.
type InvalidCategoryError struct {
	Value string
}

func (e InvalidCategoryError) Error() string {
	return fmt.Sprintf("invalid category: %s (valid: personal, work, urgent, ideas)", e.Value)
}

// InvalidPatternError indicates an unknown recurrence pattern.
type InvalidPatternError struct {
	Value string
}

func (e InvalidPatternError) Error() string {
	return fmt.Sprintf("invalid recurrence pattern: %s (valid: daily, weekly, monthly, yearly)", e.Value)
}

// InvalidIntervalError indicates a recurrence interval below 1.
type InvalidIntervalError struct {
	Value int
}

func (e InvalidIntervalError) Error() string {
	return fmt.Sprintf("recurrence interval must be at least 1, got %d", e.Value)
}

// InvalidWeekdayError indicates a weekday number outside 0-6.
type InvalidWeekdayError struct {
	Value int
}

func (e InvalidWeekdayError) Error() string {
	return fmt.Sprintf("invalid weekday %d (valid: 0-6, Sunday-Saturday)", e.Value)
}

// InvalidTaskKindError indicates a task field combination violating the
// standalone/template/instance invariant.
type InvalidTaskKindError struct {
	Reason string
}

func (e InvalidTaskKindError) Error() string {
	return fmt.Sprintf("invalid task: %s", e.Reason)
}

// TemplateTaskError indicates a plain task operation targeted a recurring
// template.
type TemplateTaskError struct {
	ID string
}

func (e TemplateTaskError) Error() string {
	return fmt.Sprintf("task %s is a recurring template: manage it with 'taskflow recur'", e.ID)
}

// InvalidWeekdayNameError indicates an unrecognized weekday token.
type InvalidWeekdayNameError struct {
	Value string
}

func (e InvalidWeekdayNameError) Error() string {
	return fmt.Sprintf("invalid weekday %q (use sun-sat or 0-6)", e.Value)
}

// ReplyDepthError indicates a reply below the maximum thread depth.
type ReplyDepthError struct {
	Max int
}

func (e ReplyDepthError) Error() string {
	return fmt.Sprintf("replies are limited to %d levels: reply to a comment higher in the thread", e.Max)
}

// NotInRepoError indicates the command was run outside a git repository.
type NotInRepoError struct{}

func (e NotInRepoError) Error() string {
	return "not in a git repository (taskflow requires a project root, or set TASKFLOW_DATA_DIR)"
}
