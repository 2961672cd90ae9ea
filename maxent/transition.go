package maxent

import (
	"context"
	"fmt"

	"scrappybara.io/depparse/parser"
	"scrappybara.io/depparse/syntax"
)

// TransitionClassifier picks, for every configuration, the most probable transition that is legal in it.
type TransitionClassifier struct {
	model       *Model
	transitions []syntax.Trans
}

func NewTransitionClassifier(model *Model) (*TransitionClassifier, error) {
	transitions := make([]syntax.Trans, len(model.Outcomes))
	seen := map[syntax.Trans]bool{}
	for i, out := range model.Outcomes {
		trans, err := syntax.ParseTrans(out)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadModel, err)
		}
		transitions[i] = trans
		seen[trans] = true
	}
	// RIGHT and SHIFT are legal in every configuration, so one of them keeps the argmax defined.
	if !seen[syntax.RIGHT] && !seen[syntax.SHIFT] {
		return nil, fmt.Errorf("%w: transition model predicts neither RIGHT nor SHIFT", ErrBadModel)
	}
	return &TransitionClassifier{model: model, transitions: transitions}, nil
}

func legal(f parser.Features, trans syntax.Trans) bool {
	switch trans {
	case syntax.LEFT:
		return !f.StackTopHasHead
	case syntax.REDUCE:
		return f.StackTopHasHead
	}
	return true
}

func (c *TransitionClassifier) PredictTransitions(ctx context.Context, batch []parser.Features) ([]syntax.Trans, error) {
	res := make([]syntax.Trans, len(batch))
	for i, f := range batch {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		scores := c.model.Eval(transitionContext(f))
		best := -1
		for oid, score := range scores {
			if !legal(f, c.transitions[oid]) {
				continue
			}
			if best < 0 || score > scores[best] {
				best = oid
			}
		}
		res[i] = c.transitions[best]
	}
	return res, nil
}
