package series

import "taskflow/internal/task"

// Store is the task collection contract the series engine requires. The
// collection is the unit of atomic replacement: operations load the whole
// collection, compute the next one, and write it back in a single call.
type Store interface {
	LoadAll() ([]*task.Task, error)
	SaveAll(tasks []*task.Task) error
}
