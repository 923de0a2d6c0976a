//nolint:testpackage // Tests require internal access for thorough testing
package comments

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testTime = time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)

// buildTree returns one root with two replies, one of which has one reply.
// Count over this tree is 4.
func buildTree() ([]*Comment, map[string]string) {
	ids := map[string]string{}
	root := New("root comment", "alice", "", testTime)
	r1 := New("first reply", "bob", root.ID, testTime)
	r2 := New("second reply", "carol", root.ID, testTime)
	nested := New("nested reply", "alice", r1.ID, testTime)
	r1.Replies = []*Comment{nested}
	root.Replies = []*Comment{r1, r2}
	ids["root"] = root.ID
	ids["r1"] = r1.ID
	ids["r2"] = r2.ID
	ids["nested"] = nested.ID
	return []*Comment{root}, ids
}

func TestInsertRoot(t *testing.T) {
	tree, _ := buildTree()
	c := New("another root", "dave", "", testTime)

	next, ok := Insert(tree, "", c)
	require.True(t, ok)
	require.Len(t, next, 2)
	assert.Equal(t, "another root", next[1].Text)
	assert.Len(t, tree, 1, "original tree must be unchanged")
}

func TestInsertReplyAtDepth(t *testing.T) {
	tree, ids := buildTree()
	c := New("deep reply", "dave", ids["nested"], testTime)

	next, ok := Insert(tree, ids["nested"], c)
	require.True(t, ok)

	got := Find(next, c.ID)
	require.NotNil(t, got)
	assert.Equal(t, ids["nested"], got.ParentID)
	assert.Equal(t, 4, Depth(next, c.ID))
	assert.Equal(t, 5, Count(next))

	// Source tree is untouched.
	assert.Nil(t, Find(tree, c.ID))
	assert.Equal(t, 4, Count(tree))
}

func TestInsertUnknownParentIsNoOp(t *testing.T) {
	tree, _ := buildTree()
	c := New("orphan", "dave", "nope", testTime)

	next, ok := Insert(tree, "nope", c)
	assert.False(t, ok)
	assert.Equal(t, 4, Count(next))
	assert.Nil(t, Find(next, c.ID))
}

func TestEdit(t *testing.T) {
	tree, ids := buildTree()
	later := testTime.Add(time.Hour)

	next, ok := Edit(tree, ids["nested"], "edited text", later)
	require.True(t, ok)

	got := Find(next, ids["nested"])
	require.NotNil(t, got)
	assert.Equal(t, "edited text", got.Text)
	assert.Equal(t, later, got.UpdatedAt)
	assert.Equal(t, testTime, got.CreatedAt)

	// Original node keeps its text.
	assert.Equal(t, "nested reply", Find(tree, ids["nested"]).Text)
}

func TestEditUnknownID(t *testing.T) {
	tree, _ := buildTree()
	_, ok := Edit(tree, "missing", "text", testTime)
	assert.False(t, ok)
}

func TestRemoveSubtree(t *testing.T) {
	tree, ids := buildTree()

	next, ok := Remove(tree, ids["r1"])
	require.True(t, ok)

	assert.Nil(t, Find(next, ids["r1"]))
	assert.Nil(t, Find(next, ids["nested"]), "reply subtree goes with its parent")
	assert.NotNil(t, Find(next, ids["r2"]), "siblings are unaffected")
	assert.Equal(t, 2, Count(next))
	assert.Equal(t, 4, Count(tree))
}

func TestRemoveRoot(t *testing.T) {
	tree, ids := buildTree()
	next, ok := Remove(tree, ids["root"])
	require.True(t, ok)
	assert.Empty(t, next)
}

func TestRemoveUnknownID(t *testing.T) {
	tree, _ := buildTree()
	next, ok := Remove(tree, "missing")
	assert.False(t, ok)
	assert.Equal(t, 4, Count(next))
}

func TestCount(t *testing.T) {
	tree, _ := buildTree()
	assert.Equal(t, 4, Count(tree))
	assert.Equal(t, 0, Count(nil))
}

func TestOperationsBeyondReplyDepthCap(t *testing.T) {
	// The depth cap gates the UI only; build a chain twice as deep and make
	// sure counting and deletion still work.
	depth := MaxReplyDepth * 2
	var roots []*Comment
	parent := ""
	var leafID string
	for i := 0; i < depth; i++ {
		c := New("level", "alice", parent, testTime)
		var ok bool
		roots, ok = Insert(roots, parent, c)
		require.True(t, ok)
		parent = c.ID
		leafID = c.ID
	}

	assert.Equal(t, depth, Count(roots))
	assert.Equal(t, depth, Depth(roots, leafID))
	assert.False(t, CanReply(roots, leafID))

	next, ok := Remove(roots, roots[0].ID)
	require.True(t, ok)
	assert.Empty(t, next)
}

func TestCanReply(t *testing.T) {
	tree, ids := buildTree()
	assert.True(t, CanReply(tree, ids["root"]))
	assert.True(t, CanReply(tree, ids["r1"]))
	assert.False(t, CanReply(tree, ids["nested"]), "depth 3 node is at the cap")
	assert.False(t, CanReply(tree, "missing"))
}

func TestIsBlank(t *testing.T) {
	assert.True(t, IsBlank(""))
	assert.True(t, IsBlank("   \t\n"))
	assert.False(t, IsBlank("hi"))
}
