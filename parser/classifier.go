package parser

import (
	"context"

	"scrappybara.io/depparse/syntax"
)

// TransitionClassifier predicts one transition per feature set, in the same order.
// Implementations must be safe for concurrent use.
type TransitionClassifier interface {
	PredictTransitions(ctx context.Context, batch []Features) ([]syntax.Trans, error)
}

type ClassifierFunc func(ctx context.Context, batch []Features) ([]syntax.Trans, error)

func (f ClassifierFunc) PredictTransitions(ctx context.Context, batch []Features) ([]syntax.Trans, error) {
	return f(ctx, batch)
}
