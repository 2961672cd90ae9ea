package syntax

import (
	"errors"
	"fmt"
)

var ErrUnknownDep = errors.New("unknown dependency label")

// Dep is the syntactic label from a child word to its parent.
// Codes are stable: classifier outcome indices depend on them.
type Dep int

const (
	// out of tree
	DepPAD Dep = iota
	DepNODEP

	DepROOT

	// in tree
	DepAND
	DepART
	DepAUX
	DepCALLEE
	DepCMARK
	DepCPL
	DepEXIST
	DepFLAT
	DepIMARK
	DepINTJ
	DepIOBJ
	DepIPROP
	DepMARK
	DepMODAL
	DepNEG
	DepOBJ
	DepOR
	DepORPHAN
	DepPART
	DepPROP
	DepSPLIT
	DepSUBJ
)

var depNames = [...]string{
	DepPAD:    "PAD",
	DepNODEP:  "NODEP",
	DepROOT:   "ROOT",
	DepAND:    "AND",
	DepART:    "ART",
	DepAUX:    "AUX",
	DepCALLEE: "CALLEE",
	DepCMARK:  "CMARK",
	DepCPL:    "CPL",
	DepEXIST:  "EXIST",
	DepFLAT:   "FLAT",
	DepIMARK:  "IMARK",
	DepINTJ:   "INTJ",
	DepIOBJ:   "IOBJ",
	DepIPROP:  "IPROP",
	DepMARK:   "MARK",
	DepMODAL:  "MODAL",
	DepNEG:    "NEG",
	DepOBJ:    "OBJ",
	DepOR:     "OR",
	DepORPHAN: "ORPHAN",
	DepPART:   "PART",
	DepPROP:   "PROP",
	DepSPLIT:  "SPLIT",
	DepSUBJ:   "SUBJ",
}

const NumDeps = len(depNames)

var depsByName = func() map[string]Dep {
	m := make(map[string]Dep, NumDeps)
	for code, name := range depNames {
		m[name] = Dep(code)
	}
	return m
}()

var (
	MarkerDeps     = NewDepSet(DepMARK, DepCMARK, DepIMARK)
	PropDeps       = NewDepSet(DepPROP, DepIPROP)
	CConjDeps      = NewDepSet(DepAND, DepOR)
	VerbArgDeps    = NewDepSet(DepEXIST, DepSUBJ, DepOBJ, DepIOBJ, DepPROP, DepIPROP)
	VerbArg2Plus   = VerbArgDeps.Without(DepSUBJ)
	VerbChildDeps  = VerbArgDeps.Union(NewDepSet(DepAUX, DepMODAL))
	FunctionalDeps = NewDepSet(DepART, DepAUX, DepCMARK, DepNEG, DepINTJ, DepMARK, DepIMARK, DepPART, DepMODAL)
)

func ParseDep(name string) (Dep, error) {
	dep, ok := depsByName[name]
	if !ok {
		return DepPAD, fmt.Errorf("%w: %q", ErrUnknownDep, name)
	}
	return dep, nil
}

func (d Dep) Valid() bool {
	return d >= 0 && int(d) < NumDeps
}

// InTree reports whether the label can annotate an arc.
func (d Dep) InTree() bool {
	return d.Valid() && d > DepROOT
}

func (d Dep) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Dep(%d)", int(d))
	}
	return depNames[d]
}

func (d Dep) MarshalText() ([]byte, error) {
	if !d.Valid() {
		return nil, fmt.Errorf("%w: code %d", ErrUnknownDep, int(d))
	}
	return []byte(depNames[d]), nil
}

func (d *Dep) UnmarshalText(text []byte) error {
	dep, err := ParseDep(string(text))
	if err != nil {
		return err
	}
	*d = dep
	return nil
}

type DepSet map[Dep]struct{}

func NewDepSet(deps ...Dep) DepSet {
	set := make(DepSet, len(deps))
	for _, dep := range deps {
		set[dep] = struct{}{}
	}
	return set
}

func (s DepSet) Contains(dep Dep) bool {
	_, ok := s[dep]
	return ok
}

func (s DepSet) Union(o DepSet) DepSet {
	res := make(DepSet, len(s)+len(o))
	for dep := range s {
		res[dep] = struct{}{}
	}
	for dep := range o {
		res[dep] = struct{}{}
	}
	return res
}

func (s DepSet) Without(deps ...Dep) DepSet {
	res := make(DepSet, len(s))
	for dep := range s {
		res[dep] = struct{}{}
	}
	for _, dep := range deps {
		delete(res, dep)
	}
	return res
}
