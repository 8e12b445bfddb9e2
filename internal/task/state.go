// Package task models the grounded, determinized planning task: states as
// sets of ground atoms, deterministic operators, and the non-deterministic
// action identity recovered from operator naming convention.
package task

import (
	"sort"
	"strings"
)

// State is an immutable, hashable world state: a set of ground atoms.
// Equality and map-keying both go through the precomputed key, so two
// States built from the same atom set (in any order) compare equal.
type State struct {
	atoms []string
	key   string
}

// NewState builds a State from a set of ground atoms. The input slice is
// copied and sorted; callers may reuse or mutate it afterwards.
func NewState(atoms []string) State {
	cp := make([]string, len(atoms))
	copy(cp, atoms)
	sort.Strings(cp)
	cp = dedup(cp)
	return State{atoms: cp, key: strings.Join(cp, "\x1f")}
}

func dedup(sorted []string) []string {
	if len(sorted) == 0 {
		return sorted
	}
	out := sorted[:1]
	for _, a := range sorted[1:] {
		if a != out[len(out)-1] {
			out = append(out, a)
		}
	}
	return out
}

// Key returns the canonical string key for this state, suitable for use as
// a map key or for equality comparison across States built independently.
func (s State) Key() string { return s.key }

// Atoms returns the sorted list of ground atoms held by this state. The
// returned slice must not be mutated by the caller.
func (s State) Atoms() []string { return s.atoms }

// Has reports whether the given atom holds in this state.
func (s State) Has(atom string) bool {
	i := sort.SearchStrings(s.atoms, atom)
	return i < len(s.atoms) && s.atoms[i] == atom
}

// Equal reports whether two states hold the same atoms.
func (s State) Equal(other State) bool { return s.key == other.key }

// String renders the state as its atoms joined with "/", matching the
// plain-text solution artifact convention from the result emitter.
func (s State) String() string {
	return strings.Join(s.atoms, "/")
}

// Apply returns the state produced by adding add and removing del from s.
// del is applied first, so an atom present in both add and del ends up
// present (add wins).
func (s State) Apply(add, del []string) State {
	removed := make(map[string]bool, len(del))
	for _, a := range del {
		removed[a] = true
	}
	next := make([]string, 0, len(s.atoms)+len(add))
	for _, a := range s.atoms {
		if !removed[a] {
			next = append(next, a)
		}
	}
	next = append(next, add...)
	return NewState(next)
}
