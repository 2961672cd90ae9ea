// Package maxent evaluates maximum-entropy models exported as JSON and builds the tag, label
// and transition classifiers of the parser on top of them.
package maxent

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/ioutil"
	"math"
)

var ErrBadModel = errors.New("malformed maxent model")

type Context struct {
	Outcomes   []int     `json:"outcomes"`
	Parameters []float64 `json:"parameters"`
}

type EvalParameters struct {
	Params        []Context `json:"params"`
	NumOfOutcomes int       `json:"numOfOutcomes"`
}

// Model is read-only once loaded and may be shared between goroutines.
type Model struct {
	Probs      []float64      `json:"probs"`
	Outcomes   []string       `json:"outcomes"`
	PMap       map[string]int `json:"pmap"`
	EvalParams EvalParameters `json:"evalParams"`
}

// Eval returns the probability of every outcome given the active context predicates.
// Unknown predicates are ignored.
func (m *Model) Eval(contexts []string) []float64 {
	outsums := make([]float64, len(m.Probs))
	copy(outsums, m.Probs)

	for _, predicate := range contexts {
		ci, ok := m.PMap[predicate]
		if !ok {
			continue
		}
		param := m.EvalParams.Params[ci]
		for ai, oid := range param.Outcomes {
			outsums[oid] += param.Parameters[ai]
		}
	}

	normal := 0.0
	for oid := range outsums {
		outsums[oid] = math.Exp(outsums[oid])
		normal += outsums[oid]
	}
	for oid := range outsums {
		outsums[oid] /= normal
	}
	return outsums
}

func (m *Model) validate() error {
	n := m.EvalParams.NumOfOutcomes
	if n == 0 || len(m.Outcomes) != n || len(m.Probs) != n {
		return fmt.Errorf("%w: %d outcomes, %d priors, numOfOutcomes %d", ErrBadModel, len(m.Outcomes), len(m.Probs), n)
	}
	for predicate, ci := range m.PMap {
		if ci < 0 || ci >= len(m.EvalParams.Params) {
			return fmt.Errorf("%w: predicate %q points to missing parameters %d", ErrBadModel, predicate, ci)
		}
	}
	for ci, param := range m.EvalParams.Params {
		if len(param.Outcomes) != len(param.Parameters) {
			return fmt.Errorf("%w: parameters %d: %d outcomes, %d weights", ErrBadModel, ci, len(param.Outcomes), len(param.Parameters))
		}
		for _, oid := range param.Outcomes {
			if oid < 0 || oid >= n {
				return fmt.Errorf("%w: parameters %d: outcome %d out of range", ErrBadModel, ci, oid)
			}
		}
	}
	return nil
}

func ParseModel(buf []byte) (*Model, error) {
	var m Model
	if err := json.Unmarshal(buf, &m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadModel, err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func LoadModelFromFile(modelFilePath string) (*Model, error) {
	buf, err := ioutil.ReadFile(modelFilePath)
	if err != nil {
		return nil, err
	}
	m, err := ParseModel(buf)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", modelFilePath, err)
	}
	return m, nil
}
