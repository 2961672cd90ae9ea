// Package tree holds labeled dependency trees over token positions.
//
// Nodes are dense 0-based token indices, so a tree is an arena of slots sized
// to the sentence: slot i holds the incoming edge of node i, if any.
package tree

import (
	"encoding/json"
	"errors"
	"fmt"

	"scrappybara.io/depparse/syntax"
)

var (
	ErrDuplicateOrCyclicEdge = errors.New("duplicate or cyclic edge")
	ErrNodeOutOfRange        = errors.New("node out of range")
)

type Edge struct {
	Label syntax.Dep
	Node  int
}

type Arc struct {
	Label  syntax.Dep `json:"label"`
	Parent int        `json:"parent"`
	Child  int        `json:"child"`
}

type slot struct {
	label     syntax.Dep
	parent    int
	hasParent bool
	children  []Edge // registration order
}

type Tree struct {
	root  int
	slots []slot
	size  int // root + registered children
}

// New creates a tree over size token positions rooted at root.
func New(root, size int) (*Tree, error) {
	if root < 0 || root >= size {
		return nil, fmt.Errorf("%w: root %d, size %d", ErrNodeOutOfRange, root, size)
	}
	return &Tree{
		root:  root,
		slots: make([]slot, size),
		size:  1,
	}, nil
}

func (t *Tree) Root() int {
	return t.root
}

// Len counts the root and every node registered as a child.
func (t *Tree) Len() int {
	return t.size
}

// Size is the number of token positions the tree was built over.
func (t *Tree) Size() int {
	return len(t.slots)
}

func (t *Tree) inRange(node int) bool {
	return node >= 0 && node < len(t.slots)
}

func (t *Tree) RegisterChild(label syntax.Dep, parent, child int) error {
	if !t.inRange(parent) || !t.inRange(child) {
		return fmt.Errorf("%w: %d -> %d, size %d", ErrNodeOutOfRange, parent, child, len(t.slots))
	}
	switch {
	case parent == child:
		return fmt.Errorf("%w: self loop on %d", ErrDuplicateOrCyclicEdge, child)
	case child == t.root:
		return fmt.Errorf("%w: root %d cannot be a child", ErrDuplicateOrCyclicEdge, child)
	case t.slots[child].hasParent:
		return fmt.Errorf("%w: %d already has parent %d", ErrDuplicateOrCyclicEdge, child, t.slots[child].parent)
	}
	for anc := parent; t.slots[anc].hasParent; {
		anc = t.slots[anc].parent
		if anc == child {
			return fmt.Errorf("%w: %d is an ancestor of %d", ErrDuplicateOrCyclicEdge, child, parent)
		}
	}

	t.slots[child].label = label
	t.slots[child].parent = parent
	t.slots[child].hasParent = true
	t.slots[parent].children = append(t.slots[parent].children, Edge{Label: label, Node: child})
	t.size++
	return nil
}

// Nodes returns the root followed by the registered children in index order.
func (t *Tree) Nodes() []int {
	nodes := make([]int, 0, t.size)
	nodes = append(nodes, t.root)
	for i := range t.slots {
		if t.slots[i].hasParent {
			nodes = append(nodes, i)
		}
	}
	return nodes
}

func (t *Tree) HasNode(node int) bool {
	if !t.inRange(node) {
		return false
	}
	return node == t.root || t.slots[node].hasParent || len(t.slots[node].children) > 0
}

// Arcs iterates edges ordered by child index.
func (t *Tree) Arcs() []Arc {
	arcs := make([]Arc, 0, t.size-1)
	for i := range t.slots {
		if t.slots[i].hasParent {
			arcs = append(arcs, Arc{Label: t.slots[i].label, Parent: t.slots[i].parent, Child: i})
		}
	}
	return arcs
}

// Parent returns the label and parent of node; ok is false for the root and unknown nodes.
func (t *Tree) Parent(node int) (label syntax.Dep, parent int, ok bool) {
	if !t.inRange(node) || !t.slots[node].hasParent {
		return syntax.DepPAD, -1, false
	}
	s := t.slots[node]
	return s.label, s.parent, true
}

func (t *Tree) HasParentVia(node int, label syntax.Dep) bool {
	l, _, ok := t.Parent(node)
	return ok && l == label
}

func (t *Tree) HasParentViaSet(node int, labels syntax.DepSet) bool {
	l, _, ok := t.Parent(node)
	return ok && labels.Contains(l)
}

func (t *Tree) Children(node int) []Edge {
	if !t.inRange(node) {
		return nil
	}
	res := make([]Edge, len(t.slots[node].children))
	copy(res, t.slots[node].children)
	return res
}

func (t *Tree) ChildrenVia(node int, label syntax.Dep) []int {
	if !t.inRange(node) {
		return nil
	}
	var res []int
	for _, e := range t.slots[node].children {
		if e.Label == label {
			res = append(res, e.Node)
		}
	}
	return res
}

// ChildVia returns the first child registered via label.
func (t *Tree) ChildVia(node int, label syntax.Dep) (int, bool) {
	if !t.inRange(node) {
		return -1, false
	}
	for _, e := range t.slots[node].children {
		if e.Label == label {
			return e.Node, true
		}
	}
	return -1, false
}

func (t *Tree) HasChildVia(node int, label syntax.Dep) bool {
	_, ok := t.ChildVia(node, label)
	return ok
}

func (t *Tree) HasChildViaSet(node int, labels syntax.DepSet) bool {
	if !t.inRange(node) {
		return false
	}
	for _, e := range t.slots[node].children {
		if labels.Contains(e.Label) {
			return true
		}
	}
	return false
}

// AncestorsVia climbs from node through edges labeled label.
// The furthest ancestor comes first; node itself is excluded.
func (t *Tree) AncestorsVia(node int, label syntax.Dep) []int {
	var branch []int
	for cur := node; ; {
		l, parent, ok := t.Parent(cur)
		if !ok || l != label {
			break
		}
		branch = append(branch, parent)
		cur = parent
	}
	for i, j := 0, len(branch)-1; i < j; i, j = i+1, j-1 {
		branch[i], branch[j] = branch[j], branch[i]
	}
	return branch
}

// DescendantsVia flattens, depth first, every chain going down from node via label.
func (t *Tree) DescendantsVia(node int, label syntax.Dep) []int {
	var nodes []int
	var walk func(int)
	walk = func(parent int) {
		for _, child := range t.ChildrenVia(parent, label) {
			nodes = append(nodes, child)
			walk(child)
		}
	}
	walk(node)
	return nodes
}

func (t *Tree) Siblings(node int) []Edge {
	_, parent, ok := t.Parent(node)
	if !ok {
		return nil
	}
	var res []Edge
	for _, e := range t.slots[parent].children {
		if e.Node != node {
			res = append(res, e)
		}
	}
	return res
}

// Heads returns the parent of every token position, -1 for the root and nodes outside the tree.
func (t *Tree) Heads() []int {
	heads := make([]int, len(t.slots))
	for i := range t.slots {
		heads[i] = -1
		if t.slots[i].hasParent {
			heads[i] = t.slots[i].parent
		}
	}
	return heads
}

// Equal compares root, size and the arc set.
func (t *Tree) Equal(o *Tree) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.root != o.root || len(t.slots) != len(o.slots) || t.size != o.size {
		return false
	}
	for i := range t.slots {
		a, b := t.slots[i], o.slots[i]
		if a.hasParent != b.hasParent || (a.hasParent && (a.parent != b.parent || a.label != b.label)) {
			return false
		}
	}
	return true
}

type jsonTree struct {
	Root int   `json:"root"`
	Size int   `json:"size"`
	Arcs []Arc `json:"arcs"`
}

func (t *Tree) MarshalJSON() ([]byte, error) {
	return json.Marshal(jsonTree{Root: t.root, Size: len(t.slots), Arcs: t.Arcs()})
}

func (t *Tree) UnmarshalJSON(data []byte) error {
	var raw jsonTree
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	built, err := FromArcs(raw.Root, raw.Size, raw.Arcs)
	if err != nil {
		return err
	}
	*t = *built
	return nil
}

// FromArcs builds a tree registering arcs in the given order.
func FromArcs(root, size int, arcs []Arc) (*Tree, error) {
	t, err := New(root, size)
	if err != nil {
		return nil, err
	}
	for _, arc := range arcs {
		if err := t.RegisterChild(arc.Label, arc.Parent, arc.Child); err != nil {
			return nil, err
		}
	}
	return t, nil
}
