package oracle

import (
	"fmt"

	"scrappybara.io/depparse/syntax"
)

// Step is one oracle decision taken on the (stack top, buffer front) pair.
type Step struct {
	StackTop    int          `json:"stack_top"`
	BufferFront int          `json:"buffer_front"`
	Transition  syntax.Trans `json:"transition"`
}

// Transitions returns the arc-eager steps that rebuild the gold tree restricted to non NODEP tokens.
func (s *GoldSentence) Transitions() ([]Step, error) {
	if !s.IsProjective() {
		return nil, fmt.Errorf("sentence %d: %w", s.ID, ErrNonProjective)
	}

	buffer := s.ValidIdxs()
	if len(buffer) == 0 {
		return nil, nil
	}
	stack := []int{buffer[0]}
	buffer = buffer[1:]

	var steps []Step
	for len(buffer) > 0 {
		if len(stack) == 0 {
			stack = append(stack, buffer[0])
			buffer = buffer[1:]
			continue
		}
		s0, b0 := stack[len(stack)-1], buffer[0]
		switch {
		case s.isParent(b0, s0):
			steps = append(steps, Step{s0, b0, syntax.LEFT})
			stack = stack[:len(stack)-1]
		case s.isParent(s0, b0):
			steps = append(steps, Step{s0, b0, syntax.RIGHT})
			stack = append(stack, b0)
			buffer = buffer[1:]
		case s.hasArcBefore(b0, s0):
			steps = append(steps, Step{s0, b0, syntax.REDUCE})
			stack = stack[:len(stack)-1]
		default:
			steps = append(steps, Step{s0, b0, syntax.SHIFT})
			stack = append(stack, b0)
			buffer = buffer[1:]
		}
	}
	return steps, nil
}

// ArcsAreCrossing reports whether two arcs, given as (parent, child) pairs in any direction, cross.
func ArcsAreCrossing(a, b [2]int) bool {
	sortPair := func(p [2]int) [2]int {
		if p[0] > p[1] {
			return [2]int{p[1], p[0]}
		}
		return p
	}
	a, b = sortPair(a), sortPair(b)
	if b[0] < a[0] {
		a, b = b, a
	}
	return a[0] < b[0] && b[0] < a[1] && a[1] < b[1]
}

// HaveCrossingArcs reports whether the gold arcs above two children cross.
// It is false when either child is the root or has no parent.
func (s *GoldSentence) HaveCrossingArcs(childA, childB int) bool {
	root := s.Tree.Root()
	if childA == root || childB == root {
		return false
	}
	_, parentA, okA := s.Tree.Parent(childA)
	_, parentB, okB := s.Tree.Parent(childB)
	if !okA || !okB {
		return false
	}
	return ArcsAreCrossing([2]int{parentA, childA}, [2]int{parentB, childB})
}

// IsProjective checks every pair of gold arcs, and that no arc spans the root.
func (s *GoldSentence) IsProjective() bool {
	arcs := s.Tree.Arcs()
	root := s.Tree.Root()
	for i, a := range arcs {
		lo, hi := a.Parent, a.Child
		if lo > hi {
			lo, hi = hi, lo
		}
		if lo < root && root < hi {
			return false
		}
		for _, b := range arcs[i+1:] {
			if ArcsAreCrossing([2]int{a.Parent, a.Child}, [2]int{b.Parent, b.Child}) {
				return false
			}
		}
	}
	return true
}
