// Package discussion binds the comment tree operations to tasks in the
// store, addressing every operation by (taskID, commentID).
package discussion

import (
	"time"

	"github.com/rs/zerolog"

	"taskflow/internal/comments"
	flowerrors "taskflow/internal/errors"
	"taskflow/internal/task"
)

// Store is the task collection contract the discussion manager requires.
type Store interface {
	LoadAll() ([]*task.Task, error)
	SaveAll(tasks []*task.Task) error
}

// Manager performs comment operations against the store. Each mutation loads
// the collection, rebuilds the one task's tree, and writes the collection
// back in a single call. Validation failures abort before any write.
type Manager struct {
	store Store
	log   zerolog.Logger
	now   func() time.Time
}

// NewManager creates a Manager over the given store.
func NewManager(store Store, log zerolog.Logger) *Manager {
	return &Manager{
		store: store,
		log:   log,
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// AddComment appends a comment to the task's tree: as a new root when
// parentID is empty, otherwise under the parent at whatever depth it sits.
// An unknown parent leaves the tree unchanged and reports not-found.
func (m *Manager) AddComment(taskID, text, author, parentID string) (*comments.Comment, error) {
	if comments.IsBlank(text) {
		return nil, flowerrors.EmptyCommentError{}
	}

	all, err := m.store.LoadAll()
	if err != nil {
		return nil, err
	}
	target := findTask(all, taskID)
	if target == nil {
		return nil, flowerrors.TaskNotFoundError{ID: taskID}
	}

	c := comments.New(text, author, parentID, m.now())
	tree, ok := comments.Insert(target.Comments, parentID, c)
	if !ok {
		return nil, flowerrors.CommentNotFoundError{TaskID: taskID, CommentID: parentID}
	}

	if err := m.saveTree(all, target, tree); err != nil {
		return nil, err
	}
	m.log.Debug().Str("task", taskID).Str("comment", c.ID).Msg("comment added")
	return c, nil
}

// EditComment replaces the text of an existing comment and bumps its updated
// timestamp.
func (m *Manager) EditComment(taskID, commentID, text string) error {
	if comments.IsBlank(text) {
		return flowerrors.EmptyCommentError{}
	}

	all, err := m.store.LoadAll()
	if err != nil {
		return err
	}
	target := findTask(all, taskID)
	if target == nil {
		return flowerrors.TaskNotFoundError{ID: taskID}
	}

	tree, ok := comments.Edit(target.Comments, commentID, text, m.now())
	if !ok {
		return flowerrors.CommentNotFoundError{TaskID: taskID, CommentID: commentID}
	}
	return m.saveTree(all, target, tree)
}

// DeleteComment removes a comment together with its entire reply subtree.
// The confirmed flag is the abstract confirmation gate for this destructive
// operation.
func (m *Manager) DeleteComment(taskID, commentID string, confirmed bool) error {
	if !confirmed {
		return flowerrors.ConfirmationRequiredError{Action: "deleting a comment thread"}
	}

	all, err := m.store.LoadAll()
	if err != nil {
		return err
	}
	target := findTask(all, taskID)
	if target == nil {
		return flowerrors.TaskNotFoundError{ID: taskID}
	}

	tree, ok := comments.Remove(target.Comments, commentID)
	if !ok {
		return flowerrors.CommentNotFoundError{TaskID: taskID, CommentID: commentID}
	}

	if err := m.saveTree(all, target, tree); err != nil {
		return err
	}
	m.log.Debug().Str("task", taskID).Str("comment", commentID).Msg("comment subtree deleted")
	return nil
}

// Count returns the total number of comments on a task, replies included.
func (m *Manager) Count(taskID string) (int, error) {
	all, err := m.store.LoadAll()
	if err != nil {
		return 0, err
	}
	target := findTask(all, taskID)
	if target == nil {
		return 0, flowerrors.TaskNotFoundError{ID: taskID}
	}
	return comments.Count(target.Comments), nil
}

// Tree returns the task's comment roots for display.
func (m *Manager) Tree(taskID string) ([]*comments.Comment, error) {
	all, err := m.store.LoadAll()
	if err != nil {
		return nil, err
	}
	target := findTask(all, taskID)
	if target == nil {
		return nil, flowerrors.TaskNotFoundError{ID: taskID}
	}
	return target.Comments, nil
}

// saveTree swaps the rebuilt tree onto a copy of the task and persists the
// whole collection in one write.
func (m *Manager) saveTree(all []*task.Task, target *task.Task, tree []*comments.Comment) error {
	updated := *target
	updated.Comments = tree
	updated.UpdatedAt = m.now()

	next := make([]*task.Task, len(all))
	for i, t := range all {
		if t.ID == target.ID {
			next[i] = &updated
		} else {
			next[i] = t
		}
	}
	return m.store.SaveAll(next)
}

func findTask(tasks []*task.Task, id string) *task.Task {
	for _, t := range tasks {
		if t.ID == id {
			return t
		}
	}
	return nil
}
