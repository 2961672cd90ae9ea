package syntax

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestDepCodes(t *testing.T) {
	assert.Equal(t, 0, int(DepPAD))
	assert.Equal(t, 1, int(DepNODEP))
	assert.Equal(t, 2, int(DepROOT))
	assert.Equal(t, 23, int(DepSPLIT))
	assert.Equal(t, 24, int(DepSUBJ))
	assert.Equal(t, 25, NumDeps)
	assert.Equal(t, 17, NumTags)
	assert.Equal(t, 3, int(SHIFT))
}

func TestParseNames(t *testing.T) {
	for code := 0; code < NumDeps; code++ {
		dep, err := ParseDep(Dep(code).String())
		require.NoError(t, err)
		assert.Equal(t, Dep(code), dep)
	}
	for code := 0; code < NumTags; code++ {
		tag, err := ParseTag(Tag(code).String())
		require.NoError(t, err)
		assert.Equal(t, Tag(code), tag)
	}

	_, err := ParseDep("nsubj")
	assert.True(t, errors.Is(err, ErrUnknownDep))
	_, err = ParseTag("VB")
	assert.True(t, errors.Is(err, ErrUnknownTag))
	_, err = ParseTrans("POPROOT")
	assert.True(t, errors.Is(err, ErrUnknownTransition))
}

func TestInTree(t *testing.T) {
	assert.False(t, DepPAD.InTree())
	assert.False(t, DepNODEP.InTree())
	assert.False(t, DepROOT.InTree())
	assert.True(t, DepSPLIT.InTree())
	assert.False(t, Dep(99).InTree())
}

func TestTextMarshaling(t *testing.T) {
	type labelled struct {
		Tag   Tag   `json:"tag" yaml:"tag"`
		Dep   Dep   `json:"dep" yaml:"dep"`
		Trans Trans `json:"trans" yaml:"trans"`
	}

	buf, err := json.Marshal(labelled{TagNOUN, DepSUBJ, RIGHT})
	require.NoError(t, err)
	assert.JSONEq(t, `{"tag":"NOUN","dep":"SUBJ","trans":"RIGHT"}`, string(buf))

	var fromYAML labelled
	require.NoError(t, yaml.Unmarshal([]byte("tag: VERB\ndep: ROOT\ntrans: REDUCE\n"), &fromYAML))
	assert.Equal(t, labelled{TagVERB, DepROOT, REDUCE}, fromYAML)

	var bad labelled
	assert.Error(t, json.Unmarshal([]byte(`{"dep":"nsubj"}`), &bad))
}

func TestDepSets(t *testing.T) {
	assert.False(t, VerbArg2Plus.Contains(DepSUBJ))
	assert.True(t, VerbArg2Plus.Contains(DepOBJ))
	assert.True(t, VerbChildDeps.Contains(DepMODAL))
	assert.True(t, VerbChildDeps.Contains(DepSUBJ))
	assert.True(t, VerbArgDeps.Contains(DepSUBJ), "Without must not mutate the source set")
	assert.True(t, PropTags.Contains(TagADJ))
	assert.False(t, NounTags.Contains(TagADJ))
}

func TestEncoding(t *testing.T) {
	ids := TagIDs([]Tag{TagNOUN, TagVERB})
	require.Len(t, ids, PaddedSentLength)
	assert.Equal(t, []int32{0, int32(TagNOUN), int32(TagVERB), 0, 0}, ids[:5])

	deps := DepIDs([]Dep{DepSUBJ})
	assert.Equal(t, []int32{0, int32(DepSUBJ), 0}, deps[:3])

	m1, m2 := MakeMasks(0, 3)
	require.Len(t, m1, PaddedSentLength)
	assert.True(t, m1[1])
	assert.False(t, m1[0])
	assert.True(t, m2[4])

	assert.Equal(t, []int32{3, 4}, PadIDs([]int32{1, 2, 3, 4}, 2))
}
