package maxent

import "math"

// Sequence is a partial labelling kept on the beam.
type Sequence struct {
	Score    float64
	Outcomes []string
	Probs    []float64
}

func (seq Sequence) expand(out string, prob float64) Sequence {
	next := Sequence{
		Score:    seq.Score + math.Log(prob),
		Outcomes: make([]string, len(seq.Outcomes)+1),
		Probs:    make([]float64, len(seq.Probs)+1),
	}
	copy(next.Outcomes, seq.Outcomes)
	next.Outcomes[len(seq.Outcomes)] = out
	copy(next.Probs, seq.Probs)
	next.Probs[len(seq.Probs)] = prob
	return next
}

// sequenceHeap pops the best scored sequence first.
type sequenceHeap []Sequence

func (h sequenceHeap) Len() int            { return len(h) }
func (h sequenceHeap) Less(i, j int) bool  { return h[i].Score > h[j].Score }
func (h sequenceHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *sequenceHeap) Push(x interface{}) { *h = append(*h, x.(Sequence)) }
func (h *sequenceHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}
