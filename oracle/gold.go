// Package oracle turns human-labelled sentences into the arc-eager transitions
// a transition classifier is trained to reproduce.
package oracle

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"scrappybara.io/depparse/syntax"
	"scrappybara.io/depparse/tree"
)

var (
	ErrNoRoot         = errors.New("labelled sentence has no ROOT token")
	ErrBadTokenTuple  = errors.New("malformed token tuple")
	ErrNonProjective  = errors.New("gold tree is not projective")
	ErrParentOutRange = errors.New("parent index out of range")
)

// TokenTuple is one labelled token: (token, tag name, dependency name, parent 0-idx).
// The parent is -1 when the token has no parent (NODEP or ROOT).
type TokenTuple struct {
	Token  string
	Tag    string
	Dep    string
	Parent int
}

func (tt TokenTuple) MarshalJSON() ([]byte, error) {
	return json.Marshal([]interface{}{tt.Token, tt.Tag, tt.Dep, tt.Parent})
}

func (tt *TokenTuple) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrBadTokenTuple, err)
	}
	if len(raw) != 4 {
		return fmt.Errorf("%w: expected 4 elements, got %d", ErrBadTokenTuple, len(raw))
	}
	if err := json.Unmarshal(raw[0], &tt.Token); err != nil {
		return fmt.Errorf("%w: token: %v", ErrBadTokenTuple, err)
	}
	if err := json.Unmarshal(raw[1], &tt.Tag); err != nil {
		return fmt.Errorf("%w: tag: %v", ErrBadTokenTuple, err)
	}
	if err := json.Unmarshal(raw[2], &tt.Dep); err != nil {
		return fmt.Errorf("%w: dep: %v", ErrBadTokenTuple, err)
	}
	if err := json.Unmarshal(raw[3], &tt.Parent); err != nil {
		return fmt.Errorf("%w: parent: %v", ErrBadTokenTuple, err)
	}
	return nil
}

func (tt *TokenTuple) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.SequenceNode || len(node.Content) != 4 {
		return fmt.Errorf("%w: line %d: expected a 4 element sequence", ErrBadTokenTuple, node.Line)
	}
	if err := node.Content[0].Decode(&tt.Token); err != nil {
		return err
	}
	if err := node.Content[1].Decode(&tt.Tag); err != nil {
		return err
	}
	if err := node.Content[2].Decode(&tt.Dep); err != nil {
		return err
	}
	return node.Content[3].Decode(&tt.Parent)
}

type warning struct {
	Comment   string `json:"comment"`
	FocusIdxs []int  `json:"focusIdxs"`
}

// GoldSentence is a sentence parsed by a human. Its tree does not contain NODEP tokens.
type GoldSentence struct {
	ID     int
	Tokens []string
	Tags   []syntax.Tag
	Deps   []syntax.Dep
	Tree   *tree.Tree

	warnings map[int][]warning
}

func NewGoldSentence(id int, tuples []TokenTuple) (*GoldSentence, error) {
	sent := &GoldSentence{
		ID:     id,
		Tokens: make([]string, 0, len(tuples)),
		Tags:   make([]syntax.Tag, 0, len(tuples)),
		Deps:   make([]syntax.Dep, 0, len(tuples)),
	}
	rootIdx := -1
	for i, tt := range tuples {
		tag, err := syntax.ParseTag(tt.Tag)
		if err != nil {
			return nil, fmt.Errorf("sentence %d, token %d: %w", id, i, err)
		}
		dep, err := syntax.ParseDep(tt.Dep)
		if err != nil {
			return nil, fmt.Errorf("sentence %d, token %d: %w", id, i, err)
		}
		if dep == syntax.DepROOT && rootIdx < 0 {
			rootIdx = i
		}
		sent.Tokens = append(sent.Tokens, tt.Token)
		sent.Tags = append(sent.Tags, tag)
		sent.Deps = append(sent.Deps, dep)
	}
	if rootIdx < 0 {
		return nil, fmt.Errorf("sentence %d: %w", id, ErrNoRoot)
	}

	t, err := tree.New(rootIdx, len(tuples))
	if err != nil {
		return nil, err
	}
	for child, tt := range tuples {
		dep := sent.Deps[child]
		if dep == syntax.DepROOT || dep == syntax.DepNODEP || tt.Parent < 0 {
			continue
		}
		if tt.Parent >= len(tuples) {
			return nil, fmt.Errorf("sentence %d, token %d: %w: %d", id, child, ErrParentOutRange, tt.Parent)
		}
		if err := t.RegisterChild(dep, tt.Parent, child); err != nil {
			return nil, fmt.Errorf("sentence %d: %w", id, err)
		}
	}
	sent.Tree = t
	return sent, nil
}

func (s *GoldSentence) Len() int {
	return len(s.Tokens)
}

func (s *GoldSentence) String() string {
	return strings.Join(s.Tokens, " ")
}

// ValidIdxs returns the indexes of tokens that are not NODEP.
func (s *GoldSentence) ValidIdxs() []int {
	res := make([]int, 0, len(s.Deps))
	for i, dep := range s.Deps {
		if dep != syntax.DepNODEP {
			res = append(res, i)
		}
	}
	return res
}

func (s *GoldSentence) IsLeaf(idx int) bool {
	return len(s.Tree.Children(idx)) == 0
}

func (s *GoldSentence) isParent(parentIdx, childIdx int) bool {
	_, parent, ok := s.Tree.Parent(childIdx)
	return ok && parent == parentIdx
}

// hasArcBefore reports whether the token has a parent or a child before maxIdx.
func (s *GoldSentence) hasArcBefore(tokenIdx, maxIdx int) bool {
	if _, parent, ok := s.Tree.Parent(tokenIdx); ok && parent < maxIdx {
		return true
	}
	for _, e := range s.Tree.Children(tokenIdx) {
		if e.Node < maxIdx {
			return true
		}
	}
	return false
}

func (s *GoldSentence) RegisterWarning(tokenIdx int, comment string, focusIdxs []int) {
	if s.warnings == nil {
		s.warnings = make(map[int][]warning)
	}
	s.warnings[tokenIdx] = append(s.warnings[tokenIdx], warning{Comment: comment, FocusIdxs: focusIdxs})
}

// WarningsJSON returns nil when no warning has been flagged.
func (s *GoldSentence) WarningsJSON() ([]byte, error) {
	if len(s.warnings) == 0 {
		return nil, nil
	}
	return json.Marshal(s.warnings)
}
