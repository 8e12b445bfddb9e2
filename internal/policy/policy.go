// Package policy implements the partial-policy data model of spec.md §3:
// a persistent mapping from reachable states to a chosen non-deterministic
// action, the pending/goal frontier, and the best-case/worst-case g-value
// engine (spec.md §4.1) that is maintained incrementally as the policy is
// extended (spec.md §4.2).
//
// The g-value engine is implemented in this package rather than a
// separate one: both it and Extend mutate the same structurally-shared
// ancestor maps, and splitting them across a package boundary would force
// those maps into the public API for no benefit.
package policy

import (
	"sort"

	"github.com/fond-planning/boand/internal/task"
)

// CycleCost is the large finite sentinel used as the worst-case cost of
// any state on or downstream of a cycle (spec.md §3's CYCLE_COST).
const CycleCost = 1_000_000.0

// StrategyEntry pins the state, the chosen non-deterministic action, and
// the full set of deterministic operators realizing it.
type StrategyEntry struct {
	State     task.State
	Action    string
	Operators []task.Operator
}

// Successors returns the deduplicated states this entry's action may
// reach from s, for callers (the policy graph exporter, the simulator)
// that need successor states without holding a live *task.Task.
func (e StrategyEntry) Successors(s task.State) []task.State {
	return successorsOf(s, e)
}

// Policy is a partial mapping from reachable states to actions, plus the
// pending/goal frontier and the ancestor maps the g-value engine
// maintains. The zero value is not valid; use Empty to construct the
// initial policy.
//
// Policy is an immutable value once built: Extend never mutates its
// receiver, it returns a new Policy that structurally shares unaffected
// parts of the parent's maps (spec.md §5, §9).
type Policy struct {
	initial task.State

	strategy *pmap[StrategyEntry]
	pending  pset
	goals    pset

	bestAncestors  *pmap[task.State]
	worstAncestors *pmap[task.State]

	// loopy holds every state reconvergence has proven to lie directly on
	// a detected cycle. WorstG consults it to tell a genuine cycle member
	// apart from the inert self-referencing dummy ancestor the initial
	// state starts with (see Empty).
	loopy pset

	cyclic bool
}

// Empty returns the starting policy for a search over a task whose
// initial state is initial: pending contains only that state, and the
// ancestor maps carry a dummy self-entry for the initial state (spec.md
// §3's lifecycle rule), so a policy where the initial state's own action
// loops back to itself is correctly recognized as "already present" and
// routed through reconvergence rather than treated as a fresh discovery.
// BestG always stops at the initial state before dereferencing this
// dummy entry. WorstG also stops there, unless reconvergence later
// proves the initial state itself lies on a cycle, in which case it (and
// everything downstream of it) reports CycleCost; see gvalue.go.
func Empty(initial task.State) *Policy {
	return &Policy{
		initial:        initial,
		pending:        newPSet().with(initial),
		bestAncestors:  newPMap[task.State]().with(initial.Key(), initial),
		worstAncestors: newPMap[task.State]().with(initial.Key(), initial),
	}
}

// Initial returns the task's initial state this policy was built from.
func (p *Policy) Initial() task.State { return p.initial }

// Strategy looks up the action assigned to s, if any.
func (p *Policy) Strategy(s task.State) (StrategyEntry, bool) {
	e, ok := p.strategy.get(s.Key())
	return e, ok
}

// StrategySize returns the number of assigned states.
func (p *Policy) StrategySize() int { return len(p.assignedEntries()) }

// Pending returns the pending states: reachable, unassigned, non-goal.
func (p *Policy) Pending() []task.State { return p.pending.states() }

// PendingHas reports whether s is currently pending.
func (p *Policy) PendingHas(s task.State) bool { return p.pending.has(s) }

// GoalStates returns the reachable states recognized as goals.
func (p *Policy) GoalStates() []task.State { return p.goals.states() }

// Cyclic reports whether the policy graph contains a cycle (I5).
func (p *Policy) Cyclic() bool { return p.cyclic }

// IsClosed reports whether every reachable state has been assigned an
// action or recognized as a goal (spec.md §4.2).
func (p *Policy) IsClosed() bool { return p.pending.len() == 0 }

// assignedEntries returns the most-recently-written StrategyEntry for
// each distinct assigned state.
func (p *Policy) assignedEntries() []StrategyEntry {
	var out []StrategyEntry
	p.strategy.each(func(_ string, e StrategyEntry) bool {
		out = append(out, e)
		return true
	})
	return out
}

// StrategyEntries returns every assigned StrategyEntry, ordered by state
// key, for callers (such as the result emitter) that need a stable
// iteration order over an otherwise unordered persistent map.
func (p *Policy) StrategyEntries() []StrategyEntry {
	out := p.assignedEntries()
	sort.Slice(out, func(i, j int) bool { return out[i].State.Key() < out[j].State.Key() })
	return out
}

// IsProper reports whether a closed policy has every leaf as a goal and
// every state able to reach a goal, i.e. no dead cycle (spec.md §4.2). A
// cyclic policy can still be proper if every cycle has an exit branch
// eventually reaching a goal.
//
// Properness is decided by a least-fixpoint relaxation, not a single
// depth-first pass: mark every goal state as goal-reaching, then repeat
// "a state is goal-reaching if any successor is" over the assigned
// states until nothing changes. A single DFS that treats a state still
// on the recursion stack as non-reaching gives the wrong answer whenever
// the only path to a goal loops back through that state first (e.g.
// A->{B,C}, B->goal, C->A: evaluating C while A is on the stack would
// wrongly conclude C is dead, when C->A->B->goal reaches one) and, since
// the wrong answer depends on which state the DFS starts from, makes the
// result depend on map iteration order. The fixpoint only ever flips a
// state from non-reaching to reaching, so it converges in at most one
// pass per assigned state regardless of visit order, and the result is
// independent of it.
func (p *Policy) IsProper() bool {
	if !p.IsClosed() {
		return false
	}

	entries := p.assignedEntries()
	successors := make(map[string][]string, len(entries))
	canReachGoal := make(map[string]bool, len(entries)+p.goals.len())

	for _, s := range p.goals.states() {
		canReachGoal[s.Key()] = true
	}
	for _, e := range entries {
		key := e.State.Key()
		succ := successorsOf(e.State, e)
		keys := make([]string, len(succ))
		for i, r := range succ {
			keys[i] = r.Key()
		}
		successors[key] = keys
	}

	for changed := true; changed; {
		changed = false
		for _, e := range entries {
			key := e.State.Key()
			if canReachGoal[key] {
				continue
			}
			for _, sk := range successors[key] {
				if canReachGoal[sk] {
					canReachGoal[key] = true
					changed = true
					break
				}
			}
		}
	}

	for _, e := range entries {
		if !canReachGoal[e.State.Key()] {
			return false
		}
	}
	return true
}

// successorsOf recomputes the (deduplicated) successor states of s under
// an already-recorded strategy entry, without depending on a live
// *task.Task: the operators were already pinned at extension time.
func successorsOf(s task.State, entry StrategyEntry) []task.State {
	seen := make(map[string]task.State, len(entry.Operators))
	for _, op := range entry.Operators {
		r := op.Apply(s)
		seen[r.Key()] = r
	}
	out := make([]task.State, 0, len(seen))
	for _, r := range seen {
		out = append(out, r)
	}
	return out
}
