package pipeline

import (
	"sort"

	"scrappybara.io/depparse/types"
)

// NewResponseBuilder gathers the sentences of a request back in request order.
func NewResponseBuilder() func(in <-chan *types.Sentence, request Request) <-chan types.ParseResponse {
	return func(in <-chan *types.Sentence, request Request) <-chan types.ParseResponse {
		out := make(chan types.ParseResponse, 1)
		go func() {
			defer close(out)
			var sents []*types.Sentence
			for sent := range in {
				sents = append(sents, sent)
			}
			sort.Slice(sents, func(i, j int) bool { return sents[i].Order < sents[j].Order })

			response := types.ParseResponse{
				Tid:       request.Tid,
				Sentences: make([]types.SentenceResponse, len(sents)),
			}
			for i, sent := range sents {
				response.Sentences[i] = types.NewSentenceResponse(sent)
			}
			out <- response
		}()
		return out
	}
}
