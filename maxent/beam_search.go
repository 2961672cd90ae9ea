package maxent

import (
	"container/heap"
	"sort"
)

const minSequenceScore = -100000

// ContextGenerator returns the predicates of position index given the outcomes already chosen before it.
type ContextGenerator interface {
	GetContext(index int, priorOutcomes []string) []string
}

// SequenceValidator can veto an outcome at a position.
type SequenceValidator interface {
	ValidSequence(index int, priorOutcomes []string, outcome string) bool
}

type BeamSearch struct {
	model *Model
	size  int
}

func NewBeamSearch(model *Model, size int) *BeamSearch {
	if size < 1 {
		size = 1
	}
	return &BeamSearch{model: model, size: size}
}

// Search labels n positions and returns the best full sequence, or false when every path was vetoed.
func (b *BeamSearch) Search(n int, contextGen ContextGenerator, validator SequenceValidator) (Sequence, bool) {
	prev := &sequenceHeap{}
	heap.Push(prev, Sequence{})

	for i := 0; i < n; i++ {
		next := &sequenceHeap{}
		for sc := 0; prev.Len() > 0 && sc < b.size; sc++ {
			top := heap.Pop(prev).(Sequence)
			scores := b.model.Eval(contextGen.GetContext(i, top.Outcomes))

			sorted := make([]float64, len(scores))
			copy(sorted, scores)
			sort.Float64s(sorted)
			cut := len(sorted) - b.size
			if cut < 0 {
				cut = 0
			}
			min := sorted[cut]

			pushed := b.expand(next, top, i, scores, min, validator)
			if !pushed {
				b.expand(next, top, i, scores, 0, validator)
			}
		}
		prev = next
	}

	if prev.Len() == 0 {
		return Sequence{}, false
	}
	return heap.Pop(prev).(Sequence), true
}

func (b *BeamSearch) expand(next *sequenceHeap, top Sequence, i int, scores []float64, min float64, validator SequenceValidator) bool {
	pushed := false
	for p, score := range scores {
		if score < min {
			continue
		}
		out := b.model.Outcomes[p]
		if validator != nil && !validator.ValidSequence(i, top.Outcomes, out) {
			continue
		}
		if ns := top.expand(out, score); ns.Score > minSequenceScore {
			heap.Push(next, ns)
			pushed = true
		}
	}
	return pushed
}
