package types

import (
	"strings"
	"unicode"

	"scrappybara.io/depparse/syntax"
)

// Token is one word of a sentence as it moves through the pipeline. Head is -1 until the sentence is parsed
// and stays -1 for the root and for tokens left out of the tree.
type Token struct {
	Index int        `json:"index"`
	Text  string     `json:"text"`
	Shape string     `json:"-"`
	Tag   syntax.Tag `json:"tag"`
	Dep   syntax.Dep `json:"dep"`
	Head  int        `json:"head"`
}

func NewToken(index int, text string) *Token {
	return &Token{
		Index: index,
		Text:  text,
		Shape: GetShape(text),
		Head:  -1,
	}
}

// GetShapedText upper-cases the letters the shape marks as capitals and lower-cases the rest.
func (token *Token) GetShapedText() string {
	runes := []rune(token.Text)
	if len(runes) > len(token.Shape) {
		return token.Text
	}
	var sb strings.Builder
	for i, ch := range runes {
		if token.Shape[i] == 'X' {
			sb.WriteRune(unicode.ToUpper(ch))
		} else {
			sb.WriteRune(unicode.ToLower(ch))
		}
	}
	return sb.String()
}

func (token *Token) IsCapitalized() bool {
	return strings.ContainsRune(token.Shape, 'X')
}

func (token *Token) HasDigit() bool {
	return strings.ContainsRune(token.Shape, 'd')
}

func GetShape(txt string) string {
	var sb strings.Builder
	for _, r := range txt {
		switch {
		case unicode.IsDigit(r):
			sb.WriteRune('d')
		case unicode.IsUpper(r):
			sb.WriteRune('X')
		default:
			sb.WriteRune('x')
		}
	}

	return sb.String()
}
