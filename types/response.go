package types

import "scrappybara.io/depparse/tree"

type SentenceResponse struct {
	SourceIndex int        `json:"source_index"`
	Tokens      []*Token   `json:"tokens"`
	Tree        *tree.Tree `json:"tree"`
	Error       string     `json:"error,omitempty"`
}

type ParseResponse struct {
	Tid       string             `json:"tid"`
	Sentences []SentenceResponse `json:"sentences"`
}

func NewSentenceResponse(sent *Sentence) SentenceResponse {
	res := SentenceResponse{
		SourceIndex: sent.SourceIndex,
		Tokens:      sent.Tokens,
		Tree:        sent.Tree,
	}
	if sent.Err != nil {
		res.Error = sent.Err.Error()
	}
	return res
}
