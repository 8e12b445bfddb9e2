// Package heuristic implements the classical heuristic interface of
// spec.md §6 (hmax, lmcut) and the FOND heuristic family of spec.md §4.3
// (f_best, f_worst, f_size aggregators over a policy's pending/goal
// frontier).
package heuristic

import (
	"fmt"
	"math"

	"github.com/fond-planning/boand/internal/task"
)

// Classical maps a state to a non-negative relaxed-planning cost estimate,
// possibly +Inf for a state from which the goal is relaxed-unreachable
// (spec.md §6's classical heuristic interface, evaluated at depth 0 with
// no parent/action).
type Classical interface {
	Evaluate(s task.State) float64
}

// NewClassical builds the named classical heuristic, one of "hmax" or
// "lmcut" (spec.md §6).
func NewClassical(name string, t *task.Task) (Classical, error) {
	switch name {
	case "hmax":
		return &Hmax{task: t}, nil
	case "lmcut":
		return &LMCut{task: t}, nil
	default:
		return nil, fmt.Errorf("heuristic: unknown classical heuristic %q, must be one of: hmax, lmcut", name)
	}
}

// relaxedCosts computes the delete-relaxation h-max cost of every atom
// reachable from s, under a caller-supplied per-operator cost function,
// via fixpoint iteration over the relaxed planning graph: an atom's cost
// is the cheapest achiever's cost, where an achiever's cost is the
// maximum cost of its preconditions plus its own cost (h-max's additive
// step along the single hardest precondition, not the sum of all of
// them). Delete effects are ignored, as delete relaxation requires.
//
// It returns both the per-atom cost table and, for each atom, the
// operator that last improved its cost — the h-max justification used to
// extract landmarks in lmcut.go.
func relaxedCosts(t *task.Task, s task.State, opCost func(task.Operator) float64) (cost map[string]float64, achiever map[string]task.Operator) {
	cost = make(map[string]float64, len(s.Atoms()))
	for _, a := range s.Atoms() {
		cost[a] = 0
	}
	achiever = make(map[string]task.Operator)

	for {
		changed := false
		for _, op := range t.Operators {
			maxPre := 0.0
			known := true
			for _, p := range op.Precond {
				c, ok := cost[p]
				if !ok {
					known = false
					break
				}
				if c > maxPre {
					maxPre = c
				}
			}
			if !known {
				continue
			}
			candidate := maxPre + opCost(op)
			for _, add := range op.Add {
				if c, ok := cost[add]; !ok || candidate < c {
					cost[add] = candidate
					achiever[add] = op
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return cost, achiever
}

// goalCost returns the h-max aggregate (max) over the goal atoms' costs,
// or +Inf if any goal atom is relaxed-unreachable.
func goalCost(t *task.Task, cost map[string]float64) float64 {
	h := 0.0
	for _, g := range t.GoalAtoms {
		c, ok := cost[g]
		if !ok {
			return math.Inf(1)
		}
		if c > h {
			h = c
		}
	}
	return h
}
