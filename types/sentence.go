package types

import (
	"scrappybara.io/depparse/syntax"
	"scrappybara.io/depparse/tree"
	"scrappybara.io/depparse/utils"
)

// Sentence is one unit of parsing. Order is its position among the sentences of a request after
// long sentences were re-split; SourceIndex points back to the sentence it came from.
type Sentence struct {
	Order       int
	SourceIndex int
	Tokens      []*Token
	Tree        *tree.Tree
	Err         error
}

func NewSentence(order, sourceIndex int, texts []string) *Sentence {
	tokens := make([]*Token, len(texts))
	for i, text := range texts {
		tokens[i] = NewToken(i, text)
	}
	return &Sentence{Order: order, SourceIndex: sourceIndex, Tokens: tokens}
}

func (sent *Sentence) Texts() []string {
	res := make([]string, len(sent.Tokens))
	for i, token := range sent.Tokens {
		res[i] = token.Text
	}
	return res
}

func (sent *Sentence) Tags() []syntax.Tag {
	res := make([]syntax.Tag, len(sent.Tokens))
	for i, token := range sent.Tokens {
		res[i] = token.Tag
	}
	return res
}

func (sent *Sentence) Deps() []syntax.Dep {
	res := make([]syntax.Dep, len(sent.Tokens))
	for i, token := range sent.Tokens {
		res[i] = token.Dep
	}
	return res
}

// GetHashCode identifies the token sequence; sentences with equal texts hash equally.
func (sent *Sentence) GetHashCode() uint64 {
	texts := make([][]byte, 0, 2*len(sent.Tokens))
	for _, token := range sent.Tokens {
		texts = append(texts, []byte(token.Text), []byte{0})
	}
	return utils.HashBytes(texts...)
}

// SetTree stores the tree and copies its heads onto the tokens. A nil tree resets every head to -1.
func (sent *Sentence) SetTree(t *tree.Tree) {
	sent.Tree = t
	for _, token := range sent.Tokens {
		token.Head = -1
	}
	if t == nil {
		return
	}
	for i, head := range t.Heads() {
		if i < len(sent.Tokens) {
			sent.Tokens[i].Head = head
		}
	}
}
