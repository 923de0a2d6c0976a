// Package storage is the Task Store: a single YAML collection file holding
// every task (standalone, templates, and generated instances). The contract
// is deliberately small — load the whole collection, save the whole
// collection — because individual entries (template and its instances, a
// comment and its subtree) are not independently consistent.
package storage

import (
	"os"
	"path/filepath"

	flowerrors "taskflow/internal/errors"
	"taskflow/internal/task"
)

const (
	taskflowDir = ".taskflow"
	tasksFile   = "tasks.yaml"
)

// Store handles collection file operations.
type Store struct {
	basePath string
}

// NewStore creates a Store. When dataDir is non-empty it is used directly;
// otherwise the store is project-scoped (~/.taskflow/<sanitized-project-root>/).
func NewStore(dataDir string) (*Store, error) {
	if dataDir != "" {
		return &Store{basePath: dataDir}, nil
	}

	projectRoot, err := FindProjectRoot()
	if err != nil {
		return nil, err
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	sanitized := SanitizePath(projectRoot)
	basePath := filepath.Join(home, taskflowDir, sanitized)
	return &Store{basePath: basePath}, nil
}

// NewStoreWithPath creates a Store with a custom base path.
func NewStoreWithPath(path string) *Store {
	return &Store{basePath: path}
}

// BasePath returns the base path of the store.
func (s *Store) BasePath() string {
	return s.basePath
}

// IsInitialized checks if the taskflow directory exists.
func (s *Store) IsInitialized() bool {
	info, err := os.Stat(s.basePath)
	return err == nil && info.IsDir()
}

// Init creates the taskflow directory.
func (s *Store) Init(force bool) error {
	if s.IsInitialized() && !force {
		return flowerrors.AlreadyInitializedError{}
	}
	return os.MkdirAll(s.basePath, 0o755)
}

// tasksPath returns the full path of the collection file.
func (s *Store) tasksPath() string {
	return filepath.Join(s.basePath, tasksFile)
}

// LoadAll reads the whole task collection. A missing collection file is an
// empty collection, not an error.
func (s *Store) LoadAll() ([]*task.Task, error) {
	if !s.IsInitialized() {
		return nil, flowerrors.NotInitializedError{}
	}

	content, err := os.ReadFile(s.tasksPath())
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return UnmarshalCollection(content)
}

// SaveAll replaces the whole task collection in one atomic swap: the new
// collection is staged in a temp file and renamed over the old one, so a
// failed write never leaves a half-written store.
func (s *Store) SaveAll(tasks []*task.Task) error {
	if !s.IsInitialized() {
		return flowerrors.NotInitializedError{}
	}

	content, err := MarshalCollection(tasks)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(s.basePath, tasksFile+".tmp-*")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return err
	}
	return os.Rename(tmpPath, s.tasksPath())
}
