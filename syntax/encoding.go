package syntax

const (
	MaxWordLength = 20
	MaxSentLength = 50

	// one pad slot on each side of the sentence
	PaddedSentLength = MaxSentLength + 2
	PaddedWordLength = MaxWordLength + 2
)

// PadIDs keeps the last dim ids and right-pads with zeros (the PAD code).
func PadIDs(ids []int32, dim int) []int32 {
	res := make([]int32, dim)
	if len(ids) > dim {
		ids = ids[len(ids)-dim:]
	}
	copy(res, ids)
	return res
}

// TagIDs frames the tags with PAD on both sides and pads to PaddedSentLength.
func TagIDs(tags []Tag) []int32 {
	ids := make([]int32, 0, len(tags)+2)
	ids = append(ids, int32(TagPAD))
	for _, tag := range tags {
		ids = append(ids, int32(tag))
	}
	ids = append(ids, int32(TagPAD))
	return PadIDs(ids, PaddedSentLength)
}

// DepIDs frames the labels with PAD on both sides and pads to PaddedSentLength.
func DepIDs(deps []Dep) []int32 {
	ids := make([]int32, 0, len(deps)+2)
	ids = append(ids, int32(DepPAD))
	for _, dep := range deps {
		ids = append(ids, int32(dep))
	}
	ids = append(ids, int32(DepPAD))
	return PadIDs(ids, PaddedSentLength)
}

// MakeMasks builds the one-hot position masks for two token indices.
// Indices are sentence positions; the shift for the leading pad happens here.
func MakeMasks(idx1, idx2 int) ([]bool, []bool) {
	return makeMask(idx1 + 1), makeMask(idx2 + 1)
}

func makeMask(idx int) []bool {
	mask := make([]bool, PaddedSentLength)
	if idx >= 0 && idx < PaddedSentLength {
		mask[idx] = true
	}
	return mask
}
