package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"

	"github.com/rs/zerolog"

	"scrappybara.io/depparse/oracle"
	"scrappybara.io/depparse/syntax"
)

type oracleLine struct {
	ID       int           `json:"id"`
	Sentence string        `json:"sentence"`
	Steps    []oracle.Step `json:"steps"`
}

// extractOracle writes one JSON line of oracle steps per projective sentence and returns those sentences.
func extractOracle(path string, w io.Writer, log zerolog.Logger) ([]*oracle.GoldSentence, error) {
	sents, err := oracle.LoadLabelledData(path)
	if err != nil {
		return nil, err
	}
	enc := json.NewEncoder(w)
	kept := make([]*oracle.GoldSentence, 0, len(sents))
	for _, sent := range sents {
		steps, err := sent.Transitions()
		if errors.Is(err, oracle.ErrNonProjective) {
			log.Warn().Int("sentence_id", sent.ID).Str("sentence", sent.String()).Msg("Skipping non-projective sentence")
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("sentence %d: %w", sent.ID, err)
		}
		if err := enc.Encode(oracleLine{ID: sent.ID, Sentence: sent.String(), Steps: steps}); err != nil {
			return nil, err
		}
		kept = append(kept, sent)
	}
	log.Info().Int("sentences", len(sents)).Int("extracted", len(kept)).Msg("Extracted oracle transitions")
	return kept, nil
}

// writeSamples encodes the training samples of sents, shuffled with seed. Sentences too long for the
// padded encodings are left out.
func writeSamples(sents []*oracle.GoldSentence, seed int64, w io.Writer) error {
	var trainable []*oracle.GoldSentence
	for _, sent := range sents {
		if len(sent.Tokens) <= syntax.MaxSentLength {
			trainable = append(trainable, sent)
		}
	}
	samples, err := oracle.MakeSamples(trainable, oracle.NewCharset(trainable), rand.New(rand.NewSource(seed)))
	if err != nil {
		return err
	}
	return json.NewEncoder(w).Encode(samples)
}
