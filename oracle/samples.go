package oracle

import (
	"errors"
	"fmt"
	"math/rand"

	"scrappybara.io/depparse/syntax"
)

var ErrSentenceTooLong = errors.New("sentence is too long")

const (
	wordStart     = '†'
	wordEnd       = '‡'
	sentStartWord = "ʃʃʃ"
	sentEndWord   = "ʄʄʄ"
)

// Charset maps characters to their input codes. Code 0 is padding.
type Charset map[rune]int32

// NewCharset assigns codes in order of first appearance, starting at 1.
func NewCharset(sents []*GoldSentence) Charset {
	cs := Charset{}
	add := func(r rune) {
		if _, ok := cs[r]; !ok {
			cs[r] = int32(len(cs) + 1)
		}
	}
	for _, r := range string(wordStart) + string(wordEnd) + sentStartWord + sentEndWord {
		add(r)
	}
	for _, sent := range sents {
		for _, token := range sent.Tokens {
			for _, r := range token {
				add(r)
			}
		}
	}
	return cs
}

// EncodeChars keeps the last MaxWordLength characters of token. Unknown characters encode as 0.
func (cs Charset) EncodeChars(token string) []int32 {
	runes := []rune(token)
	if len(runes) > syntax.MaxWordLength {
		runes = runes[len(runes)-syntax.MaxWordLength:]
	}
	ids := make([]int32, 0, len(runes)+2)
	ids = append(ids, cs[wordStart])
	for _, r := range runes {
		ids = append(ids, cs[r])
	}
	return append(ids, cs[wordEnd])
}

// CharIDs encodes the framed sentence as a PaddedSentLength x PaddedWordLength matrix.
func (cs Charset) CharIDs(tokens []string) ([][]int32, error) {
	if len(tokens) > syntax.MaxSentLength {
		return nil, fmt.Errorf("%w: %d tokens", ErrSentenceTooLong, len(tokens))
	}
	framed := make([]string, 0, len(tokens)+2)
	framed = append(framed, sentStartWord)
	framed = append(framed, tokens...)
	framed = append(framed, sentEndWord)

	mat := make([][]int32, syntax.PaddedSentLength)
	for i := range mat {
		if i < len(framed) {
			mat[i] = syntax.PadIDs(cs.EncodeChars(framed[i]), syntax.PaddedWordLength)
		} else {
			mat[i] = make([]int32, syntax.PaddedWordLength)
		}
	}
	return mat, nil
}

type PTagsSample struct {
	CharIDs [][]int32 `json:"char_ids"`
	TagIDs  []int32   `json:"tag_ids"`
}

type PDepsSample struct {
	TagIDs  []int32   `json:"tag_ids"`
	CharIDs [][]int32 `json:"char_ids"`
	DepIDs  []int32   `json:"dep_ids"`
}

type TransSample struct {
	TagIDs    []int32   `json:"tag_ids"`
	DepIDs    []int32   `json:"dep_ids"`
	CharIDs   [][]int32 `json:"char_ids"`
	Mask1     []bool    `json:"mask_1"`
	Mask2     []bool    `json:"mask_2"`
	TransCode int32     `json:"trans_code"`
}

type Samples struct {
	PTags []PTagsSample `json:"ptags"`
	PDeps []PDepsSample `json:"pdeps"`
	Trans []TransSample `json:"trans"`
}

// MakeSamples materializes every training sample of the sentences and shuffles each list with rng.
// A sentence whose tree is not projective fails the whole batch.
func MakeSamples(sents []*GoldSentence, charset Charset, rng *rand.Rand) (*Samples, error) {
	res := &Samples{}
	for _, sent := range sents {
		charIDs, err := charset.CharIDs(sent.Tokens)
		if err != nil {
			return nil, fmt.Errorf("sentence %d: %w", sent.ID, err)
		}
		steps, err := sent.Transitions()
		if err != nil {
			return nil, err
		}
		tagIDs := syntax.TagIDs(sent.Tags)
		depIDs := syntax.DepIDs(sent.Deps)

		res.PTags = append(res.PTags, PTagsSample{CharIDs: charIDs, TagIDs: tagIDs})
		res.PDeps = append(res.PDeps, PDepsSample{TagIDs: tagIDs, CharIDs: charIDs, DepIDs: depIDs})
		for _, step := range steps {
			mask1, mask2 := syntax.MakeMasks(step.StackTop, step.BufferFront)
			res.Trans = append(res.Trans, TransSample{
				TagIDs:    tagIDs,
				DepIDs:    depIDs,
				CharIDs:   charIDs,
				Mask1:     mask1,
				Mask2:     mask2,
				TransCode: int32(step.Transition),
			})
		}
	}
	if rng != nil {
		rng.Shuffle(len(res.PTags), func(i, j int) { res.PTags[i], res.PTags[j] = res.PTags[j], res.PTags[i] })
		rng.Shuffle(len(res.PDeps), func(i, j int) { res.PDeps[i], res.PDeps[j] = res.PDeps[j], res.PDeps[i] })
		rng.Shuffle(len(res.Trans), func(i, j int) { res.Trans[i], res.Trans[j] = res.Trans[j], res.Trans[i] })
	}
	return res, nil
}
