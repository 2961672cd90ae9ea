package maxent

import (
	"strconv"
	"strings"

	"scrappybara.io/depparse/parser"
	"scrappybara.io/depparse/types"
)

const (
	prefixLength = 4
	suffixLength = 4

	sentenceBegin = "*SB*"
	sentenceEnd   = "*SE*"
)

// tagContext generates tagger predicates. Words missing from knownWords get affix and shape predicates.
type tagContext struct {
	tokens     []*types.Token
	knownWords map[string]bool
}

func (g *tagContext) word(i int) string {
	switch {
	case i < 0:
		return sentenceBegin
	case i >= len(g.tokens):
		return sentenceEnd
	}
	return g.tokens[i].GetShapedText()
}

func (g *tagContext) GetContext(index int, tags []string) []string {
	token := g.tokens[index]
	lex := token.GetShapedText()

	contexts := []string{"default", "w=" + lex}
	if !g.knownWords[lex] {
		for _, suf := range getSuffixes(lex) {
			contexts = append(contexts, "suf="+suf)
		}
		for _, pref := range getPrefixes(lex) {
			contexts = append(contexts, "pre="+pref)
		}
		if strings.ContainsRune(lex, '-') {
			contexts = append(contexts, "h")
		}
		if token.IsCapitalized() {
			contexts = append(contexts, "c")
		}
		if token.HasDigit() {
			contexts = append(contexts, "d")
		}
	}

	contexts = append(contexts, "p="+g.word(index-1))
	if index > 0 {
		contexts = append(contexts, "t="+tags[index-1])
	}
	if index > 1 {
		contexts = append(contexts, "pp="+g.word(index-2), "t2="+tags[index-2]+","+tags[index-1])
	}
	contexts = append(contexts, "n="+g.word(index+1))
	if index+1 < len(g.tokens) {
		contexts = append(contexts, "nn="+g.word(index+2))
	}
	return contexts
}

func getPrefixes(lex string) []string {
	runes := []rune(lex)
	prefs := make([]string, prefixLength)
	for li := 0; li < prefixLength; li++ {
		idx := li + 1
		if idx > len(runes) {
			idx = len(runes)
		}
		prefs[li] = string(runes[:idx])
	}
	return prefs
}

func getSuffixes(lex string) []string {
	runes := []rune(lex)
	suffs := make([]string, suffixLength)
	for li := 0; li < suffixLength; li++ {
		idx := len(runes) - li - 1
		if idx < 0 {
			idx = 0
		}
		suffs[li] = string(runes[idx:])
	}
	return suffs
}

// depContext generates the predicates of the governing label model over an already tagged sentence.
type depContext struct {
	tokens []*types.Token
}

func (g *depContext) tag(i int) string {
	switch {
	case i < 0:
		return sentenceBegin
	case i >= len(g.tokens):
		return sentenceEnd
	}
	return g.tokens[i].Tag.String()
}

func (g *depContext) GetContext(index int, deps []string) []string {
	token := g.tokens[index]
	t, pt, nt := g.tag(index), g.tag(index-1), g.tag(index+1)

	contexts := []string{
		"default",
		"w=" + token.GetShapedText(),
		"t=" + t,
		"pt=" + pt,
		"nt=" + nt,
		"pt,t=" + pt + "," + t,
		"t,nt=" + t + "," + nt,
		"w,t=" + token.GetShapedText() + "," + t,
	}
	if index > 0 {
		contexts = append(contexts, "d="+deps[index-1], "d,t="+deps[index-1]+","+t)
	}
	if index > 1 {
		contexts = append(contexts, "d2="+deps[index-2]+","+deps[index-1])
	}
	return contexts
}

// transitionContext reads a parse configuration. The payload, when it carries the sentence tokens,
// adds word predicates.
func transitionContext(f parser.Features) []string {
	tag := func(i int) string {
		switch {
		case i < 0:
			return sentenceBegin
		case i >= len(f.Tags):
			return sentenceEnd
		}
		return f.Tags[i].String()
	}
	dep := func(i int) string { return f.Deps[i].String() }

	s0t, b0t := tag(f.StackTop), tag(f.BufferFront)
	s0d, b0d := dep(f.StackTop), dep(f.BufferFront)
	depth := f.StackDepth
	if depth > 3 {
		depth = 3
	}

	contexts := []string{
		"default",
		"s0t=" + s0t,
		"b0t=" + b0t,
		"s0d=" + s0d,
		"b0d=" + b0d,
		"s0t,b0t=" + s0t + "," + b0t,
		"s0d,b0d=" + s0d + "," + b0d,
		"s0t,s0d,b0t,b0d=" + s0t + "," + s0d + "," + b0t + "," + b0d,
		"b1t=" + tag(f.BufferFront+1),
		"s0pt=" + tag(f.StackTop-1),
		"dist=" + distanceBucket(f.Distance()),
		"s0h=" + strconv.FormatBool(f.StackTopHasHead),
		"depth=" + strconv.Itoa(depth),
	}
	if tokens, ok := f.Payload.([]*types.Token); ok && f.BufferFront < len(tokens) {
		s0w, b0w := tokens[f.StackTop].GetShapedText(), tokens[f.BufferFront].GetShapedText()
		contexts = append(contexts, "s0w="+s0w, "b0w="+b0w, "s0w,b0t="+s0w+","+b0t, "s0t,b0w="+s0t+","+b0w)
	}
	return contexts
}

func distanceBucket(d int) string {
	switch {
	case d <= 1:
		return "1"
	case d == 2:
		return "2"
	case d <= 5:
		return "3-5"
	}
	return "6+"
}
