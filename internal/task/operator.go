package task

import "regexp"

// detdupSuffix matches the determinizer's outcome-tagging convention:
// "<nondet_name>_detdup_<k>". Stripping it recovers the non-deterministic
// action name that produced this deterministic outcome.
var detdupSuffix = regexp.MustCompile(`_detdup_[0-9]+$`)

// Operator is a single deterministic ground operator: a precondition (atoms
// that must hold) and the add/delete effect that produces the successor
// state. Its Name encodes the non-deterministic action it was determinized
// from, per the `_detdup_<k>` convention documented in spec.md §3/§9.
type Operator struct {
	Name     string
	Precond  []string
	Add      []string
	Del      []string
	detdupOf string // cached non-deterministic action name
}

// NewOperator builds an Operator and precomputes its non-deterministic
// action name.
func NewOperator(name string, precond, add, del []string) Operator {
	return Operator{
		Name:     name,
		Precond:  precond,
		Add:      add,
		Del:      del,
		detdupOf: detdupSuffix.ReplaceAllString(name, ""),
	}
}

// Applicable reports whether every precondition atom holds in s.
func (o Operator) Applicable(s State) bool {
	for _, p := range o.Precond {
		if !s.Has(p) {
			return false
		}
	}
	return true
}

// Apply returns the successor state produced by this operator. The caller
// must have already checked Applicable; Apply does not re-check.
func (o Operator) Apply(s State) State {
	return s.Apply(o.Add, o.Del)
}

// NondetAction returns the non-deterministic action name this operator is
// an outcome of, i.e. o.Name with any `_detdup_<k>` suffix stripped. An
// operator whose name carries no such suffix is itself the sole outcome of
// a non-deterministic action with a single effect.
func (o Operator) NondetAction() string { return o.detdupOf }
