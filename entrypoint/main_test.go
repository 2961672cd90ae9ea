package main

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scrappybara.io/depparse/oracle"
	"scrappybara.io/depparse/syntax"
)

func TestExtractOracle(t *testing.T) {
	var out, logs bytes.Buffer
	sents, err := extractOracle("testdata/labelled.json", &out, zerolog.New(&logs))
	require.NoError(t, err)
	require.Len(t, sents, 1)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 1)
	var line oracleLine
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &line))
	want := oracleLine{
		ID:       0,
		Sentence: "I eat apples .",
		Steps: []oracle.Step{
			{StackTop: 0, BufferFront: 1, Transition: syntax.LEFT},
			{StackTop: 1, BufferFront: 2, Transition: syntax.RIGHT},
		},
	}
	if diff := cmp.Diff(want, line); diff != "" {
		t.Errorf("oracle line mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, logs.String(), "Skipping non-projective sentence")
	assert.Contains(t, logs.String(), `"sentence":"a b c d"`)

	_, err = extractOracle("testdata/missing.json", &out, zerolog.Nop())
	assert.Error(t, err)
}

func TestWriteSamples(t *testing.T) {
	sents, err := extractOracle("testdata/labelled.json", &bytes.Buffer{}, zerolog.Nop())
	require.NoError(t, err)

	var out bytes.Buffer
	require.NoError(t, writeSamples(sents, 7, &out))
	var samples oracle.Samples
	require.NoError(t, json.Unmarshal(out.Bytes(), &samples))
	assert.Len(t, samples.PTags, 1)
	assert.Len(t, samples.PDeps, 1)
	assert.Len(t, samples.Trans, 2)
	assert.Len(t, samples.Trans[0].CharIDs, syntax.PaddedSentLength)
}
