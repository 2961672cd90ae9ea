package maxent

import (
	"context"
	"errors"
	"fmt"

	"scrappybara.io/depparse/syntax"
	"scrappybara.io/depparse/types"
)

var ErrNoSequence = errors.New("beam search found no valid sequence")

// outcomeTags maps the model outcomes to tags so a model with foreign outcomes fails at load time.
func outcomeTags(model *Model) (map[string]syntax.Tag, error) {
	res := make(map[string]syntax.Tag, len(model.Outcomes))
	for _, out := range model.Outcomes {
		tag, err := syntax.ParseTag(out)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrBadModel, err)
		}
		res[out] = tag
	}
	return res, nil
}

// tagDictionary restricts known words to the tags they were seen with.
type tagDictionary struct {
	tokens []*types.Token
	tags   map[string]map[string]bool
}

func (v tagDictionary) ValidSequence(i int, _ []string, outcome string) bool {
	allowed, ok := v.tags[v.tokens[i].Text]
	if !ok {
		return true
	}
	return allowed[outcome]
}

type Tagger struct {
	search     *BeamSearch
	tags       map[string]syntax.Tag
	knownWords map[string]bool
	dictionary map[string]map[string]bool
}

// NewTagger wraps a part-of-speech model. knownWords and dictionary may be nil.
func NewTagger(model *Model, beamSize int, knownWords map[string]bool, dictionary map[string][]syntax.Tag) (*Tagger, error) {
	tags, err := outcomeTags(model)
	if err != nil {
		return nil, err
	}
	dict := make(map[string]map[string]bool, len(dictionary))
	for word, wordTags := range dictionary {
		dict[word] = make(map[string]bool, len(wordTags))
		for _, tag := range wordTags {
			dict[word][tag.String()] = true
		}
	}
	return &Tagger{
		search:     NewBeamSearch(model, beamSize),
		tags:       tags,
		knownWords: knownWords,
		dictionary: dict,
	}, nil
}

func (t *Tagger) PredictTags(ctx context.Context, tokens []*types.Token) ([]syntax.Tag, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	gen := &tagContext{tokens: tokens, knownWords: t.knownWords}
	seq, ok := t.search.Search(len(tokens), gen, tagDictionary{tokens: tokens, tags: t.dictionary})
	if !ok {
		return nil, ErrNoSequence
	}
	res := make([]syntax.Tag, len(seq.Outcomes))
	for i, out := range seq.Outcomes {
		res[i] = t.tags[out]
	}
	return res, nil
}
