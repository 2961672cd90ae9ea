package syntax

import (
	"errors"
	"fmt"
)

var ErrUnknownTag = errors.New("unknown part-of-speech tag")

// Tag is a part-of-speech tag. Names never collide with dependency names except PAD.
type Tag int

const (
	TagPAD Tag = iota

	TagADJ
	TagPREP
	TagADV
	TagMAT // auxiliary or modal carrying mood, aspect or tense
	TagCONJ
	TagDET
	TagEXPR
	TagNOUN
	TagNUM
	TagFRAG // fragment of a verb, see DepPART
	TagPRON
	TagPROPN
	TagPUNCT
	TagVERB
	TagSYM
	TagTHERE // existential there/here
)

var tagNames = [...]string{
	TagPAD:   "PAD",
	TagADJ:   "ADJ",
	TagPREP:  "PREP",
	TagADV:   "ADV",
	TagMAT:   "MAT",
	TagCONJ:  "CONJ",
	TagDET:   "DET",
	TagEXPR:  "EXPR",
	TagNOUN:  "NOUN",
	TagNUM:   "NUM",
	TagFRAG:  "FRAG",
	TagPRON:  "PRON",
	TagPROPN: "PROPN",
	TagPUNCT: "PUNCT",
	TagVERB:  "VERB",
	TagSYM:   "SYM",
	TagTHERE: "THERE",
}

const NumTags = len(tagNames)

var tagsByName = func() map[string]Tag {
	m := make(map[string]Tag, NumTags)
	for code, name := range tagNames {
		m[name] = Tag(code)
	}
	return m
}()

var (
	NounTags = NewTagSet(TagNOUN, TagPROPN, TagPRON, TagSYM, TagNUM)
	PropTags = NewTagSet(TagNOUN, TagPROPN, TagPRON, TagSYM, TagNUM, TagADJ)
	LexTags  = NewTagSet(TagNOUN, TagPROPN, TagADJ, TagVERB)
)

func ParseTag(name string) (Tag, error) {
	tag, ok := tagsByName[name]
	if !ok {
		return TagPAD, fmt.Errorf("%w: %q", ErrUnknownTag, name)
	}
	return tag, nil
}

func (t Tag) Valid() bool {
	return t >= 0 && int(t) < NumTags
}

func (t Tag) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Tag(%d)", int(t))
	}
	return tagNames[t]
}

func (t Tag) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: code %d", ErrUnknownTag, int(t))
	}
	return []byte(tagNames[t]), nil
}

func (t *Tag) UnmarshalText(text []byte) error {
	tag, err := ParseTag(string(text))
	if err != nil {
		return err
	}
	*t = tag
	return nil
}

type TagSet map[Tag]struct{}

func NewTagSet(tags ...Tag) TagSet {
	set := make(TagSet, len(tags))
	for _, tag := range tags {
		set[tag] = struct{}{}
	}
	return set
}

func (s TagSet) Contains(tag Tag) bool {
	_, ok := s[tag]
	return ok
}
