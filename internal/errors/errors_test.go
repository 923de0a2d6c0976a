//nolint:testpackage // Tests require internal access for thorough testing
package errors

import (
	"testing"
)

func TestTaskNotFoundError(t *testing.T) {
	err := TaskNotFoundError{ID: "xyz789"}
	want := "task not found: xyz789"
	if got := err.Error(); got != want {
		t.Errorf("TaskNotFoundError.Error() = %q, want %q", got, want)
	}
}

func TestCommentNotFoundError(t *testing.T) {
	err := CommentNotFoundError{TaskID: "abc", CommentID: "c42"}
	want := "comment c42 not found on task abc"
	if got := err.Error(); got != want {
		t.Errorf("CommentNotFoundError.Error() = %q, want %q", got, want)
	}
}

func TestConfirmationRequiredError(t *testing.T) {
	err := ConfirmationRequiredError{Action: "deleting a recurring series"}
	want := "deleting a recurring series is destructive: re-run with --yes to confirm"
	if got := err.Error(); got != want {
		t.Errorf("ConfirmationRequiredError.Error() = %q, want %q", got, want)
	}
}

func TestInvalidWeekdayError(t *testing.T) {
	err := InvalidWeekdayError{Value: 9}
	want := "invalid weekday 9 (valid: 0-6, Sunday-Saturday)"
	if got := err.Error(); got != want {
		t.Errorf("InvalidWeekdayError.Error() = %q, want %q", got, want)
	}
}

func TestInvalidTaskKindError(t *testing.T) {
	err := InvalidTaskKindError{Reason: "template requires a recurrence rule"}
	want := "invalid task: template requires a recurrence rule"
	if got := err.Error(); got != want {
		t.Errorf("InvalidTaskKindError.Error() = %q, want %q", got, want)
	}
}
