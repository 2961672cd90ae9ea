package maxent

import (
	"context"
	"fmt"

	"scrappybara.io/depparse/syntax"
	"scrappybara.io/depparse/types"
)

// singleRoot lets at most one token of a sentence take ROOT and never predicts PAD.
type singleRoot struct{}

func (singleRoot) ValidSequence(_ int, prior []string, outcome string) bool {
	switch outcome {
	case syntax.DepPAD.String():
		return false
	case syntax.DepROOT.String():
		for _, out := range prior {
			if out == outcome {
				return false
			}
		}
	}
	return true
}

// Labeler predicts the governing dependency of every token of a tagged sentence.
type Labeler struct {
	search *BeamSearch
	deps   map[string]syntax.Dep
}

func NewLabeler(model *Model, beamSize int) (*Labeler, error) {
	deps := make(map[string]syntax.Dep, len(model.Outcomes))
	for _, out := range model.Outcomes {
		dep, err := syntax.ParseDep(out)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadModel, err)
		}
		deps[out] = dep
	}
	return &Labeler{search: NewBeamSearch(model, beamSize), deps: deps}, nil
}

// PredictDeps reads the tags from the tokens.
func (l *Labeler) PredictDeps(ctx context.Context, tokens []*types.Token) ([]syntax.Dep, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	seq, ok := l.search.Search(len(tokens), &depContext{tokens: tokens}, singleRoot{})
	if !ok {
		return nil, ErrNoSequence
	}
	res := make([]syntax.Dep, len(seq.Outcomes))
	for i, out := range seq.Outcomes {
		res[i] = l.deps[out]
	}
	return res, nil
}
