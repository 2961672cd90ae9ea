package syntax

import (
	"errors"
	"fmt"
)

var ErrUnknownTransition = errors.New("unknown transition")

// Trans is an arc-eager projective parsing transition.
type Trans int

const (
	LEFT   Trans = iota // left arc + reduce
	RIGHT               // right arc + shift
	REDUCE              // pop stack
	SHIFT               // push buffer front to stack
)

var transNames = [...]string{
	LEFT:   "LEFT",
	RIGHT:  "RIGHT",
	REDUCE: "REDUCE",
	SHIFT:  "SHIFT",
}

const NumTransitions = len(transNames)

func ParseTrans(name string) (Trans, error) {
	for code, n := range transNames {
		if n == name {
			return Trans(code), nil
		}
	}
	return SHIFT, fmt.Errorf("%w: %q", ErrUnknownTransition, name)
}

func (t Trans) Valid() bool {
	return t >= 0 && int(t) < NumTransitions
}

func (t Trans) String() string {
	if !t.Valid() {
		return fmt.Sprintf("Trans(%d)", int(t))
	}
	return transNames[t]
}

func (t Trans) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("%w: code %d", ErrUnknownTransition, int(t))
	}
	return []byte(transNames[t]), nil
}

func (t *Trans) UnmarshalText(text []byte) error {
	trans, err := ParseTrans(string(text))
	if err != nil {
		return err
	}
	*t = trans
	return nil
}
