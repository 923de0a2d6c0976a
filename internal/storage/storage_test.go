//nolint:testpackage // Tests require internal access for thorough testing
package storage

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"taskflow/internal/comments"
	"taskflow/internal/recurrence"
	"taskflow/internal/task"
)

func testCollection() []*task.Task {
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)

	plain := task.NewStandalone("abc123", "Write report", task.PriorityHigh, task.CategoryWork, now)
	plain.Description = "quarterly numbers"
	plain.Comments = []*comments.Comment{
		{
			ID: "c1", Text: "draft is up", Author: "alice",
			CreatedAt: now, UpdatedAt: now,
			Replies: []*comments.Comment{
				{ID: "c2", Text: "reviewing now", Author: "bob", ParentID: "c1", CreatedAt: now, UpdatedAt: now},
			},
		},
	}

	maxOcc := 2
	tpl := task.NewTemplate("tpl1", "Standup notes", task.PriorityMedium, task.CategoryWork,
		&recurrence.Rule{
			Pattern:          recurrence.PatternWeekly,
			Interval:         1,
			DaysOfWeek:       []int{1, 3},
			MaxOccurrences:   &maxOcc,
			GeneratedTaskIDs: []string{"tpl1-20240205", "tpl1-20240207"},
		}, now)
	tpl.DueDate = &start

	inst := &task.Task{
		ID: "tpl1-20240205", Title: "Standup notes (2024-02-05)",
		Priority: task.PriorityMedium, Status: task.StatusPending, Category: task.CategoryWork,
		DueDate: &start, CreatedAt: now, UpdatedAt: now,
		Kind: task.KindInstance, RecurringParentID: "tpl1",
	}

	return []*task.Task{plain, tpl, inst}
}

func TestCollectionRoundTrip(t *testing.T) {
	original := testCollection()

	data, err := MarshalCollection(original)
	if err != nil {
		t.Fatalf("MarshalCollection failed: %v", err)
	}

	parsed, err := UnmarshalCollection(data)
	if err != nil {
		t.Fatalf("UnmarshalCollection failed: %v", err)
	}

	if len(parsed) != len(original) {
		t.Fatalf("round-trip length = %d, want %d", len(parsed), len(original))
	}

	plain := parsed[0]
	if plain.ID != "abc123" || plain.Title != "Write report" {
		t.Errorf("plain task = %q/%q, want abc123/Write report", plain.ID, plain.Title)
	}
	if got := comments.Count(plain.Comments); got != 2 {
		t.Errorf("comment count = %d, want 2", got)
	}
	if plain.Comments[0].Replies[0].ParentID != "c1" {
		t.Errorf("nested reply lost its parent reference")
	}

	tpl := parsed[1]
	if !tpl.IsTemplate() {
		t.Fatal("template lost its kind")
	}
	if tpl.Recurrence == nil || tpl.Recurrence.Pattern != recurrence.PatternWeekly {
		t.Fatalf("template rule = %+v, want weekly", tpl.Recurrence)
	}
	if len(tpl.Recurrence.GeneratedTaskIDs) != 2 {
		t.Errorf("generated IDs = %v, want 2 entries", tpl.Recurrence.GeneratedTaskIDs)
	}

	inst := parsed[2]
	if !inst.IsInstance() || inst.RecurringParentID != "tpl1" {
		t.Errorf("instance lost its template reference: %+v", inst)
	}
	if err := inst.Validate(); err != nil {
		t.Errorf("round-tripped instance fails validation: %v", err)
	}
}

func TestUnmarshalCollectionRejectsGarbage(t *testing.T) {
	if _, err := UnmarshalCollection([]byte("{not yaml:")); err == nil {
		t.Error("expected error for malformed YAML")
	}
}

func TestStoreOperations(t *testing.T) {
	tmpDir := t.TempDir()
	store := NewStoreWithPath(filepath.Join(tmpDir, ".taskflow"))

	if store.IsInitialized() {
		t.Error("Store should not be initialized yet")
	}
	if _, err := store.LoadAll(); err == nil {
		t.Error("LoadAll before init should fail")
	}

	if err := store.Init(false); err != nil {
		t.Fatalf("Init failed: %v", err)
	}
	if !store.IsInitialized() {
		t.Error("Store should be initialized")
	}
	if err := store.Init(false); err == nil {
		t.Error("second Init without force should fail")
	}
	if err := store.Init(true); err != nil {
		t.Errorf("forced Init failed: %v", err)
	}

	// Empty store reads as an empty collection.
	tasks, err := store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("fresh store has %d tasks, want 0", len(tasks))
	}

	if err := store.SaveAll(testCollection()); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}

	tasks, err = store.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("loaded %d tasks, want 3", len(tasks))
	}

	// Replace-all semantics: a save with fewer tasks removes the rest.
	if err := store.SaveAll(tasks[:1]); err != nil {
		t.Fatalf("SaveAll failed: %v", err)
	}
	tasks, _ = store.LoadAll()
	if len(tasks) != 1 {
		t.Errorf("after replace, loaded %d tasks, want 1", len(tasks))
	}

	// No temp files left behind.
	entries, err := os.ReadDir(store.BasePath())
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	for _, e := range entries {
		if e.Name() != "tasks.yaml" {
			t.Errorf("unexpected file in store dir: %s", e.Name())
		}
	}
}

func TestNewStoreWithDataDirOverride(t *testing.T) {
	tmpDir := t.TempDir()
	store, err := NewStore(tmpDir)
	if err != nil {
		t.Fatalf("NewStore failed: %v", err)
	}
	if store.BasePath() != tmpDir {
		t.Errorf("BasePath = %q, want %q", store.BasePath(), tmpDir)
	}
}

func TestSanitizePath(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"simple path", "/Users/alice/myproject", "Users-alice-myproject"},
		{"path with spaces", "/Users/john doe/my project", "Users-john-doe-my-project"},
		{"path with special chars", "/home/user/my.project-v2", "home-user-my-project-v2"},
		{"root path", "/", ""},
		{"nested path", "/a/b/c/d/e", "a-b-c-d-e"},
		{"trailing slash", "/Users/alice/project/", "Users-alice-project"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizePath(tt.input); got != tt.want {
				t.Errorf("SanitizePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory: %v", err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatalf("Failed to restore working directory: %v", err)
		}
	})
}

func TestFindProjectRoot(t *testing.T) {
	tmpDir := t.TempDir()

	// Resolve symlinks in temp dir (macOS /var -> /private/var)
	var err error
	tmpDir, err = filepath.EvalSymlinks(tmpDir)
	if err != nil {
		t.Fatalf("Failed to resolve symlinks: %v", err)
	}

	child := filepath.Join(tmpDir, "parent", "child")
	if err = os.MkdirAll(child, 0o755); err != nil {
		t.Fatalf("Failed to create directories: %v", err)
	}

	t.Run("finds .git in parent directory", func(t *testing.T) {
		parent := filepath.Join(tmpDir, "parent")
		if err := os.Mkdir(filepath.Join(parent, ".git"), 0o755); err != nil {
			t.Fatalf("Failed to create .git: %v", err)
		}
		defer os.RemoveAll(filepath.Join(parent, ".git"))

		chdir(t, child)

		root, err := FindProjectRoot()
		if err != nil {
			t.Fatalf("FindProjectRoot() error = %v", err)
		}
		if root != parent {
			t.Errorf("FindProjectRoot() = %q, want %q", root, parent)
		}
	})

	t.Run("returns error when no .git found", func(t *testing.T) {
		chdir(t, child)

		if _, err := FindProjectRoot(); err == nil {
			t.Error("FindProjectRoot() should return error when no .git found")
		}
	})
}
