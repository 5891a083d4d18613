package scenetrees

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"tinkervision.dev/tv/module"
)

func allManaged(module.ID) bool { return true }

// TestSharedPrefixTree reproduces the two-tree fixture from the original
// src/test/scenes/tfv_scenetrees.c: eight scenes collapsing onto two
// trees rooted at modules 0 and 1, sharing prefixes 0-1, 0-1-5 and 0-3.
func TestSharedPrefixTree(t *testing.T) {
	st := New()

	s1, err := st.SceneStart(0, allManaged)
	assert.NoError(t, err)
	s2, err := st.SceneStart(0, allManaged)
	assert.NoError(t, err)
	s3, err := st.SceneStart(0, allManaged)
	assert.NoError(t, err)
	s4, err := st.SceneStart(0, allManaged)
	assert.NoError(t, err)
	s5, err := st.SceneStart(0, allManaged)
	assert.NoError(t, err)
	s6, err := st.SceneStart(0, allManaged)
	assert.NoError(t, err)
	s7, err := st.SceneStart(1, allManaged)
	assert.NoError(t, err)
	s8, err := st.SceneStart(1, allManaged)
	assert.NoError(t, err)

	assert.NoError(t, st.SceneAddModule(s1, 1, allManaged))
	assert.NoError(t, st.SceneAddModule(s1, 4, allManaged))

	assert.NoError(t, st.SceneAddModule(s2, 1, allManaged))
	assert.NoError(t, st.SceneAddModule(s2, 5, allManaged))
	assert.NoError(t, st.SceneAddModule(s2, 6, allManaged))

	assert.NoError(t, st.SceneAddModule(s3, 1, allManaged))
	assert.NoError(t, st.SceneAddModule(s3, 5, allManaged))
	assert.NoError(t, st.SceneAddModule(s3, 7, allManaged))

	assert.NoError(t, st.SceneAddModule(s4, 2, allManaged))

	assert.NoError(t, st.SceneAddModule(s5, 3, allManaged))
	assert.NoError(t, st.SceneAddModule(s5, 8, allManaged))

	assert.NoError(t, st.SceneAddModule(s6, 3, allManaged))
	assert.NoError(t, st.SceneAddModule(s6, 9, allManaged))

	assert.NoError(t, st.SceneAddModule(s7, 2, allManaged))
	assert.NoError(t, st.SceneAddModule(s8, 3, allManaged))

	var visited []module.ID
	st.ExecAll(func(id module.ID) { visited = append(visited, id) })

	// Tree 0 holds each of 0..9 as one node, visited once despite 0 backing
	// six scenes and 1 backing three. Tree 1 holds its own nodes for 1, 2
	// and 3, so those three modules are visited once per tree.
	counts := make(map[module.ID]int)
	for _, id := range visited {
		counts[id]++
	}
	for id := module.ID(0); id <= 9; id++ {
		want := 1
		if id >= 1 && id <= 3 {
			want = 2
		}
		assert.Equal(t, want, counts[id], "module %d should be visited once per tree node", id)
	}

	leaf1, ok := st.Leaf(s1)
	assert.True(t, ok)
	assert.Equal(t, module.ID(4), leaf1)
}

func TestSceneRemoveStopsAtSharedNode(t *testing.T) {
	st := New()
	s1, _ := st.SceneStart(0, allManaged)
	s2, _ := st.SceneStart(0, allManaged)

	assert.NoError(t, st.SceneAddModule(s1, 1, allManaged))
	assert.NoError(t, st.SceneAddModule(s2, 1, allManaged))
	assert.NoError(t, st.SceneAddModule(s1, 2, allManaged))
	assert.NoError(t, st.SceneAddModule(s2, 3, allManaged))

	assert.NoError(t, st.SceneRemove(s1))

	// module 1 is still referenced by s2, so tree rooted at 0 must remain
	// and module 1, 3 must still execute; module 2 must not.
	var visited []module.ID
	st.ExecAll(func(id module.ID) { visited = append(visited, id) })
	assert.Contains(t, visited, module.ID(0))
	assert.Contains(t, visited, module.ID(1))
	assert.Contains(t, visited, module.ID(3))
	assert.NotContains(t, visited, module.ID(2))
}

// TestSceneRemoveTearsDownFullyUnsharedTree covers the case the previous
// test left unasserted: once every scene sharing a prefix is removed, the
// whole tree disappears, including the root, even though teardown must
// walk past an ancestor that is still shared by some other scene on the
// way.
func TestSceneRemoveTearsDownFullyUnsharedTree(t *testing.T) {
	st := New()
	s1, _ := st.SceneStart(0, allManaged)
	s2, _ := st.SceneStart(0, allManaged)

	assert.NoError(t, st.SceneAddModule(s1, 1, allManaged))
	assert.NoError(t, st.SceneAddModule(s2, 1, allManaged))

	assert.NoError(t, st.SceneRemove(s1))

	// Only s2 remains; root 0 must still be reported as refcount 1, not 2.
	assert.Equal(t, 1, st.trees[0].root.refcount)

	assert.NoError(t, st.SceneRemove(s2))

	// Nothing references module 0 or 1 anymore: the tree is gone entirely.
	_, stillThere := st.trees[0]
	assert.False(t, stillThere)

	var visited []module.ID
	st.ExecAll(func(id module.ID) { visited = append(visited, id) })
	assert.Empty(t, visited)
}

func TestSceneUnknown(t *testing.T) {
	st := New()
	err := st.SceneAddModule(ID(999), 1, allManaged)
	assert.Error(t, err)
}

func TestModuleUnknownRejected(t *testing.T) {
	st := New()
	_, err := st.SceneStart(0, func(module.ID) bool { return false })
	assert.Error(t, err)
}
