package tree

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrappybara.io/depparse/syntax"
)

// "Lost in Translation was fun": a FLAT chain under the subject.
func lostInTranslation(t *testing.T) *Tree {
	t.Helper()
	tr, err := FromArcs(3, 5, []Arc{
		{syntax.DepSUBJ, 3, 0},
		{syntax.DepFLAT, 0, 1},
		{syntax.DepFLAT, 1, 2},
		{syntax.DepPROP, 3, 4},
	})
	require.NoError(t, err)
	return tr
}

func TestRegisterChild(t *testing.T) {
	t.Run("self loop", func(t *testing.T) {
		tr, err := New(0, 3)
		require.NoError(t, err)
		err = tr.RegisterChild(syntax.DepOBJ, 1, 1)
		assert.True(t, errors.Is(err, ErrDuplicateOrCyclicEdge))
	})
	t.Run("second parent", func(t *testing.T) {
		tr, err := New(0, 3)
		require.NoError(t, err)
		require.NoError(t, tr.RegisterChild(syntax.DepOBJ, 0, 2))
		err = tr.RegisterChild(syntax.DepSUBJ, 1, 2)
		assert.True(t, errors.Is(err, ErrDuplicateOrCyclicEdge))
		label, parent, ok := tr.Parent(2)
		require.True(t, ok)
		assert.Equal(t, syntax.DepOBJ, label)
		assert.Equal(t, 0, parent)
	})
	t.Run("root as child", func(t *testing.T) {
		tr, err := New(0, 3)
		require.NoError(t, err)
		err = tr.RegisterChild(syntax.DepOBJ, 1, 0)
		assert.True(t, errors.Is(err, ErrDuplicateOrCyclicEdge))
	})
	t.Run("cycle", func(t *testing.T) {
		tr, err := New(0, 4)
		require.NoError(t, err)
		require.NoError(t, tr.RegisterChild(syntax.DepOBJ, 1, 2))
		require.NoError(t, tr.RegisterChild(syntax.DepOBJ, 2, 3))
		err = tr.RegisterChild(syntax.DepOBJ, 3, 1)
		assert.True(t, errors.Is(err, ErrDuplicateOrCyclicEdge))
		assert.Equal(t, 3, tr.Len())
	})
	t.Run("out of range", func(t *testing.T) {
		tr, err := New(0, 2)
		require.NoError(t, err)
		assert.True(t, errors.Is(tr.RegisterChild(syntax.DepOBJ, 0, 2), ErrNodeOutOfRange))
		_, err = New(2, 2)
		assert.True(t, errors.Is(err, ErrNodeOutOfRange))
	})
}

func TestQueries(t *testing.T) {
	tr := lostInTranslation(t)

	assert.Equal(t, 5, tr.Len())
	assert.Equal(t, []int{3, 0, 1, 2, 4}, tr.Nodes())
	assert.True(t, tr.HasNode(2))

	_, _, ok := tr.Parent(3)
	assert.False(t, ok)
	assert.True(t, tr.HasParentVia(1, syntax.DepFLAT))
	assert.True(t, tr.HasParentViaSet(4, syntax.PropDeps))
	assert.False(t, tr.HasParentViaSet(0, syntax.PropDeps))

	assert.ElementsMatch(t, []Edge{{syntax.DepSUBJ, 0}, {syntax.DepPROP, 4}}, tr.Children(3))
	assert.Equal(t, []int{4}, tr.ChildrenVia(3, syntax.DepPROP))
	assert.Nil(t, tr.ChildrenVia(3, syntax.DepOBJ))
	child, ok := tr.ChildVia(3, syntax.DepSUBJ)
	assert.True(t, ok)
	assert.Equal(t, 0, child)
	_, ok = tr.ChildVia(4, syntax.DepSUBJ)
	assert.False(t, ok)
	assert.True(t, tr.HasChildVia(0, syntax.DepFLAT))
	assert.True(t, tr.HasChildViaSet(3, syntax.VerbArgDeps))
	assert.False(t, tr.HasChildViaSet(2, syntax.VerbArgDeps))

	assert.Equal(t, []Edge{{syntax.DepPROP, 4}}, tr.Siblings(0))
	assert.Nil(t, tr.Siblings(3))

	assert.Equal(t, []int{3, 0, 1, -1, 3}, tr.Heads())
}

func TestAncestorsAndDescendants(t *testing.T) {
	tr := lostInTranslation(t)

	assert.Equal(t, []int{0, 1}, tr.AncestorsVia(2, syntax.DepFLAT))
	assert.Nil(t, tr.AncestorsVia(0, syntax.DepFLAT))
	assert.Equal(t, []int{3}, tr.AncestorsVia(0, syntax.DepSUBJ))

	assert.Equal(t, []int{1, 2}, tr.DescendantsVia(0, syntax.DepFLAT))
	assert.Nil(t, tr.DescendantsVia(3, syntax.DepFLAT))
}

func TestJSON(t *testing.T) {
	tr := lostInTranslation(t)
	buf, err := json.Marshal(tr)
	require.NoError(t, err)
	assert.JSONEq(t, `{"root":3,"size":5,"arcs":[
		{"label":"SUBJ","parent":3,"child":0},
		{"label":"FLAT","parent":0,"child":1},
		{"label":"FLAT","parent":1,"child":2},
		{"label":"PROP","parent":3,"child":4}]}`, string(buf))

	var back Tree
	require.NoError(t, json.Unmarshal(buf, &back))
	assert.True(t, tr.Equal(&back))
	if diff := cmp.Diff(tr.Arcs(), back.Arcs()); diff != "" {
		t.Errorf("arcs mismatch (-want +got):\n%s", diff)
	}
}

func TestEqual(t *testing.T) {
	a := lostInTranslation(t)
	b := lostInTranslation(t)
	assert.True(t, a.Equal(b))

	c, err := FromArcs(3, 5, []Arc{{syntax.DepSUBJ, 3, 0}})
	require.NoError(t, err)
	assert.False(t, a.Equal(c))
	assert.False(t, a.Equal(nil))
	var nilTree *Tree
	assert.True(t, nilTree.Equal(nil))
}
