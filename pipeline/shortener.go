package pipeline

import "scrappybara.io/depparse/types"

var splitters = map[string]bool{
	":": true, "\"": true, ";": true, "(": true, ")": true,
	"[": true, "]": true, "{": true, "}": true, "—": true,
}

// ShortenSentences re-splits sentences longer than maxLength on splitter tokens, which are dropped.
// Pieces still longer than maxLength are left out.
func ShortenSentences(sentences [][]string, maxLength int) []*types.Sentence {
	var res []*types.Sentence
	add := func(source int, texts []string) {
		if len(texts) <= maxLength {
			res = append(res, types.NewSentence(len(res), source, texts))
		}
	}
	for source, texts := range sentences {
		if len(texts) <= maxLength {
			add(source, texts)
			continue
		}
		var piece []string
		for _, text := range texts {
			if splitters[text] {
				if len(piece) > 0 {
					add(source, piece)
				}
				piece = nil
				continue
			}
			piece = append(piece, text)
		}
		if len(piece) > 0 {
			add(source, piece)
		}
	}
	return res
}
