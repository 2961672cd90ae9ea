package parser

import "scrappybara.io/depparse/syntax"

// Features is what a transition classifier sees of one configuration.
// Tags and Deps are shared with the parse and must not be modified.
type Features struct {
	StackTop        int
	BufferFront     int
	Tags            []syntax.Tag
	Deps            []syntax.Dep
	Payload         interface{}
	StackDepth      int
	StackTopHasHead bool
}

// Masks returns the one-hot positions of the stack top and the buffer front in the padded sentence.
func (f Features) Masks() ([]bool, []bool) {
	return syntax.MakeMasks(f.StackTop, f.BufferFront)
}

// Distance is the number of tokens between the buffer front and the stack top.
func (f Features) Distance() int {
	return f.BufferFront - f.StackTop
}
