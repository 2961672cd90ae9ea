// Package parser runs the arc-eager transition system over tagged sentences.
package parser

import (
	"errors"
	"fmt"
	"sort"

	"scrappybara.io/depparse/syntax"
	"scrappybara.io/depparse/tree"
)

var (
	ErrNoCurrentFeatures = errors.New("parse is complete, no current features")
	ErrParseComplete     = errors.New("transition applied to a complete parse")
	ErrLengthMismatch    = errors.New("tags and deps must have one entry per token")
)

// Parse is the configuration of one sentence: stack, buffer and the arcs built so far.
// It is not safe for concurrent use.
type Parse struct {
	length  int
	tags    []syntax.Tag
	deps    []syntax.Dep
	payload interface{}

	stack  []int
	buffer []int
	arcs   []tree.Arc
	heads  []int
	steps  int
}

// NewParse creates the configuration of a sentence of length tokens. NODEP tokens never enter the buffer.
// The payload is handed back untouched in the features, for classifiers that need more than tags and deps.
func NewParse(length int, tags []syntax.Tag, deps []syntax.Dep, payload interface{}) (*Parse, error) {
	if length < 0 || len(tags) != length || len(deps) != length {
		return nil, fmt.Errorf("%w: length %d, %d tags, %d deps", ErrLengthMismatch, length, len(tags), len(deps))
	}
	p := &Parse{
		length:  length,
		tags:    tags,
		deps:    deps,
		payload: payload,
		heads:   make([]int, length),
	}
	for i, dep := range deps {
		p.heads[i] = -1
		if dep != syntax.DepNODEP {
			p.buffer = append(p.buffer, i)
		}
	}
	if len(p.buffer) > 0 {
		p.shift()
	}
	return p, nil
}

func (p *Parse) Len() int {
	return p.length
}

func (p *Parse) IsComplete() bool {
	return len(p.buffer) == 0
}

// Steps counts the transitions applied since construction.
func (p *Parse) Steps() int {
	return p.steps
}

func (p *Parse) Stack() []int {
	return append([]int(nil), p.stack...)
}

func (p *Parse) Buffer() []int {
	return append([]int(nil), p.buffer...)
}

func (p *Parse) Arcs() []tree.Arc {
	return append([]tree.Arc(nil), p.arcs...)
}

func (p *Parse) CurrentFeatures() (Features, error) {
	if p.IsComplete() {
		return Features{}, ErrNoCurrentFeatures
	}
	s0 := p.stack[len(p.stack)-1]
	return Features{
		StackTop:        s0,
		BufferFront:     p.buffer[0],
		Tags:            p.tags,
		Deps:            p.deps,
		Payload:         p.payload,
		StackDepth:      len(p.stack),
		StackTopHasHead: p.heads[s0] >= 0,
	}, nil
}

// Legal reports whether trans is a well formed arc-eager move in the current configuration.
// Apply accepts a headless REDUCE too; Legal is what a classifier should restrict itself to.
func (p *Parse) Legal(trans syntax.Trans) bool {
	if p.IsComplete() {
		return false
	}
	s0 := p.stack[len(p.stack)-1]
	switch trans {
	case syntax.LEFT:
		return p.heads[s0] < 0
	case syntax.REDUCE:
		return p.heads[s0] >= 0
	case syntax.RIGHT, syntax.SHIFT:
		return true
	}
	return false
}

func (p *Parse) Apply(trans syntax.Trans) error {
	if p.IsComplete() {
		return fmt.Errorf("%w: %s", ErrParseComplete, trans)
	}
	s0, b0 := p.stack[len(p.stack)-1], p.buffer[0]
	switch trans {
	case syntax.LEFT:
		if p.heads[s0] >= 0 {
			return fmt.Errorf("%w: %d already has head %d", tree.ErrDuplicateOrCyclicEdge, s0, p.heads[s0])
		}
		p.addArc(b0, s0)
		p.reduce()
	case syntax.RIGHT:
		p.addArc(s0, b0)
		p.shift()
	case syntax.REDUCE:
		p.reduce()
	case syntax.SHIFT:
		p.shift()
	default:
		return fmt.Errorf("%w: %d", syntax.ErrUnknownTransition, int(trans))
	}
	p.steps++
	return nil
}

func (p *Parse) shift() {
	p.stack = append(p.stack, p.buffer[0])
	p.buffer = p.buffer[1:]
}

// reduce pops the stack; an emptied stack pulls the next buffer token.
func (p *Parse) reduce() {
	p.stack = p.stack[:len(p.stack)-1]
	if len(p.stack) == 0 && len(p.buffer) > 0 {
		p.shift()
	}
}

func (p *Parse) addArc(parent, child int) {
	label := p.deps[child]
	if label == syntax.DepROOT {
		label = syntax.DepSPLIT
	}
	p.arcs = append(p.arcs, tree.Arc{Label: label, Parent: parent, Child: child})
	p.heads[child] = parent
}

// RootCandidates returns, ascending, the indexes that appear in arcs without ever being a child.
func (p *Parse) RootCandidates() []int {
	seen := map[int]bool{}
	for _, arc := range p.arcs {
		if _, ok := seen[arc.Parent]; !ok {
			seen[arc.Parent] = true
		}
		seen[arc.Child] = false
	}
	var res []int
	for node, candidate := range seen {
		if candidate {
			res = append(res, node)
		}
	}
	sort.Ints(res)
	return res
}

// Root returns the smallest root candidate.
func (p *Parse) Root() (int, bool) {
	candidates := p.RootCandidates()
	if len(candidates) == 0 {
		return -1, false
	}
	return candidates[0], true
}

// IntoTree builds a fresh tree from the arcs. It returns nil when the parse is not complete
// or when the arcs do not hang from exactly one root.
func (p *Parse) IntoTree() (*tree.Tree, error) {
	if !p.IsComplete() {
		return nil, nil
	}
	candidates := p.RootCandidates()
	if len(candidates) != 1 {
		return nil, nil
	}
	return tree.FromArcs(candidates[0], p.length, p.arcs)
}
