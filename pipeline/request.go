package pipeline

// Request carries already tokenized sentences.
type Request struct {
	Tid       string     `json:"tid"`
	Sentences [][]string `json:"sentences"`
}
