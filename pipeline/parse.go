package pipeline

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"scrappybara.io/depparse/parser"
	"scrappybara.io/depparse/types"
)

// NewParseStage waits for every sentence of the request, then decodes them in a single call.
// Sentences with the same tokens are parsed once.
func NewParseStage(decoder *parser.Decoder, log zerolog.Logger) func(in <-chan *types.Sentence) <-chan *types.Sentence {
	return func(in <-chan *types.Sentence) <-chan *types.Sentence {
		out := make(chan *types.Sentence)
		go func() {
			defer close(out)

			var sents []*types.Sentence
			for sent := range in {
				sents = append(sents, sent)
			}

			groups := make(map[uint64]int)
			owners := make([]int, len(sents))
			var parses []*parser.Parse
			for i, sent := range sents {
				owners[i] = -1
				if sent.Err != nil {
					continue
				}
				key := hashOf(sent)
				group, ok := groups[key]
				if !ok {
					p, err := parser.NewParse(len(sent.Tokens), sent.Tags(), sent.Deps(), sent.Tokens)
					if err != nil {
						sent.Err = err
						continue
					}
					group = len(parses)
					groups[key] = group
					parses = append(parses, p)
				}
				owners[i] = group
			}
			log.Debug().Int("sentences", len(sents)).Int("unique", len(parses)).Msg("Decoding sentences")

			results, err := decoder.Decode(context.Background(), parses)
			if err != nil {
				log.Error().Caller().Err(err).Msg("Decoding failed")
			}
			for i, sent := range sents {
				if owners[i] >= 0 {
					res := results[owners[i]]
					switch {
					case res.Err != nil:
						sent.Err = fmt.Errorf("parsing: %w", res.Err)
					case res.Tree == nil && err != nil:
						sent.Err = fmt.Errorf("parsing: %w", err)
					default:
						sent.SetTree(res.Tree)
					}
				}
				out <- sent
			}
		}()
		return out
	}
}

func hashOf(h types.Hashable) uint64 {
	return h.GetHashCode()
}
