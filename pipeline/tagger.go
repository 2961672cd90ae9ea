package pipeline

import (
	"context"
	"fmt"
	"sync"

	"scrappybara.io/depparse/syntax"
	"scrappybara.io/depparse/types"
)

type TagClassifier interface {
	PredictTags(ctx context.Context, tokens []*types.Token) ([]syntax.Tag, error)
}

type DepClassifier interface {
	PredictDeps(ctx context.Context, tokens []*types.Token) ([]syntax.Dep, error)
}

// NewTaggerStage tags every sentence on its own goroutine. Output order is not preserved.
func NewTaggerStage(tagger TagClassifier) func(in <-chan *types.Sentence) <-chan *types.Sentence {
	return func(in <-chan *types.Sentence) <-chan *types.Sentence {
		out := make(chan *types.Sentence)
		go func() {
			defer close(out)
			var wg sync.WaitGroup
			for sent := range in {
				wg.Add(1)
				go func(sent *types.Sentence) {
					defer wg.Done()
					if sent.Err == nil && len(sent.Tokens) > 0 {
						tags, err := tagger.PredictTags(context.Background(), sent.Tokens)
						if err == nil && len(tags) != len(sent.Tokens) {
							err = fmt.Errorf("tagger returned %d tags for %d tokens", len(tags), len(sent.Tokens))
						}
						if err != nil {
							sent.Err = fmt.Errorf("tagging: %w", err)
						} else {
							for i, tag := range tags {
								sent.Tokens[i].Tag = tag
							}
						}
					}
					out <- sent
				}(sent)
			}
			wg.Wait()
		}()
		return out
	}
}

// NewLabelerStage predicts the governing dependency of every token of tagged sentences.
func NewLabelerStage(labeler DepClassifier) func(in <-chan *types.Sentence) <-chan *types.Sentence {
	return func(in <-chan *types.Sentence) <-chan *types.Sentence {
		out := make(chan *types.Sentence)
		go func() {
			defer close(out)
			var wg sync.WaitGroup
			for sent := range in {
				wg.Add(1)
				go func(sent *types.Sentence) {
					defer wg.Done()
					if sent.Err == nil && len(sent.Tokens) > 0 {
						deps, err := labeler.PredictDeps(context.Background(), sent.Tokens)
						if err == nil && len(deps) != len(sent.Tokens) {
							err = fmt.Errorf("labeler returned %d labels for %d tokens", len(deps), len(sent.Tokens))
						}
						if err != nil {
							sent.Err = fmt.Errorf("labelling: %w", err)
						} else {
							for i, dep := range deps {
								sent.Tokens[i].Dep = dep
							}
						}
					}
					out <- sent
				}(sent)
			}
			wg.Wait()
		}()
		return out
	}
}
