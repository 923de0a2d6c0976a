// Package comments implements the nested discussion tree attached to a task:
// arbitrary-depth comment/reply nodes with insert, edit, subtree delete, and
// counting. Operations never mutate the input tree; each walk rebuilds the
// affected path and returns a new slice of roots.
package comments

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// MaxReplyDepth caps the reply affordance in the CLI. The tree itself has no
// depth limit; deletion and counting work at any depth.
const MaxReplyDepth = 3

// Comment is one node of a task's discussion tree.
type Comment struct {
	ID        string     `yaml:"id" json:"id"`
	Text      string     `yaml:"text" json:"text"`
	Author    string     `yaml:"author" json:"author"`
	CreatedAt time.Time  `yaml:"created_at" json:"createdAt"`
	UpdatedAt time.Time  `yaml:"updated_at" json:"updatedAt"`
	ParentID  string     `yaml:"parent_id,omitempty" json:"parentId,omitempty"`
	Replies   []*Comment `yaml:"replies,omitempty" json:"replies"`
}

// New creates a comment with a fresh ID and timestamps. Text must be
// validated by the caller before the comment reaches a tree.
func New(text, author, parentID string, now time.Time) *Comment {
	return &Comment{
		ID:        uuid.NewString(),
		Text:      text,
		Author:    author,
		CreatedAt: now,
		UpdatedAt: now,
		ParentID:  parentID,
	}
}

// IsBlank reports whether text is empty or whitespace-only.
func IsBlank(text string) bool {
	return strings.TrimSpace(text) == ""
}

// Insert appends c under the node with parentID, or as a new root when
// parentID is empty. Returns the new roots and whether the parent was found;
// an unknown parent leaves the tree unchanged.
func Insert(roots []*Comment, parentID string, c *Comment) ([]*Comment, bool) {
	if parentID == "" {
		return append(cloneSlice(roots), c), true
	}
	return insertUnder(roots, parentID, c)
}

func insertUnder(nodes []*Comment, parentID string, c *Comment) ([]*Comment, bool) {
	found := false
	out := make([]*Comment, len(nodes))
	for i, n := range nodes {
		if found {
			out[i] = n
			continue
		}
		if n.ID == parentID {
			clone := *n
			clone.Replies = append(cloneSlice(n.Replies), c)
			out[i] = &clone
			found = true
			continue
		}
		if replies, ok := insertUnder(n.Replies, parentID, c); ok {
			clone := *n
			clone.Replies = replies
			out[i] = &clone
			found = true
			continue
		}
		out[i] = n
	}
	if !found {
		return nodes, false
	}
	return out, true
}

// Edit replaces the text of the node with the given ID and bumps its updated
// timestamp. Returns the new roots and whether the node was found.
func Edit(roots []*Comment, id, text string, now time.Time) ([]*Comment, bool) {
	found := false
	out := make([]*Comment, len(roots))
	for i, n := range roots {
		if found {
			out[i] = n
			continue
		}
		if n.ID == id {
			clone := *n
			clone.Text = text
			clone.UpdatedAt = now
			out[i] = &clone
			found = true
			continue
		}
		if replies, ok := Edit(n.Replies, id, text, now); ok {
			clone := *n
			clone.Replies = replies
			out[i] = &clone
			found = true
			continue
		}
		out[i] = n
	}
	if !found {
		return roots, false
	}
	return out, true
}

// Remove deletes the node with the given ID together with its entire reply
// subtree. Orphaned replies are never re-parented. Returns the new roots and
// whether the node was found.
func Remove(roots []*Comment, id string) ([]*Comment, bool) {
	found := false
	out := make([]*Comment, 0, len(roots))
	for _, n := range roots {
		if !found && n.ID == id {
			found = true
			continue
		}
		if found {
			out = append(out, n)
			continue
		}
		if replies, ok := Remove(n.Replies, id); ok {
			clone := *n
			clone.Replies = replies
			out = append(out, &clone)
			found = true
			continue
		}
		out = append(out, n)
	}
	if !found {
		return roots, false
	}
	return out, true
}

// Find returns the node with the given ID, or nil.
func Find(roots []*Comment, id string) *Comment {
	for _, n := range roots {
		if n.ID == id {
			return n
		}
		if c := Find(n.Replies, id); c != nil {
			return c
		}
	}
	return nil
}

// Count returns the total number of comments in the tree: one per node plus
// all of its replies, recursively.
func Count(roots []*Comment) int {
	total := 0
	for _, n := range roots {
		total += 1 + Count(n.Replies)
	}
	return total
}

// Depth returns the 1-based depth of the node with the given ID, or 0 if the
// node is not in the tree. Roots are depth 1.
func Depth(roots []*Comment, id string) int {
	for _, n := range roots {
		if n.ID == id {
			return 1
		}
		if d := Depth(n.Replies, id); d > 0 {
			return d + 1
		}
	}
	return 0
}

// CanReply reports whether the CLI should offer a reply affordance on the
// node: the node exists and sits above the depth cap.
func CanReply(roots []*Comment, id string) bool {
	d := Depth(roots, id)
	return d > 0 && d < MaxReplyDepth
}

func cloneSlice(nodes []*Comment) []*Comment {
	out := make([]*Comment, len(nodes))
	copy(out, nodes)
	return out
}
