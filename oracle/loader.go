package oracle

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ParseLabelledData builds gold sentences from a list of token tuple lists. Sentence ids are list positions.
func ParseLabelledData(tupleLists [][]TokenTuple) ([]*GoldSentence, error) {
	sents := make([]*GoldSentence, 0, len(tupleLists))
	for id, tuples := range tupleLists {
		sent, err := NewGoldSentence(id, tuples)
		if err != nil {
			return nil, err
		}
		sents = append(sents, sent)
	}
	return sents, nil
}

// LoadLabelledData reads a JSON or YAML labelled data file, picked by extension.
func LoadLabelledData(path string) ([]*GoldSentence, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var tupleLists [][]TokenTuple
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &tupleLists)
	default:
		err = json.Unmarshal(data, &tupleLists)
	}
	if err != nil {
		return nil, fmt.Errorf("reading labelled data %s: %w", path, err)
	}
	return ParseLabelledData(tupleLists)
}
