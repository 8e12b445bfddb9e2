package heuristic

import (
	"math"

	"github.com/fond-planning/boand/internal/task"
)

// LMCut is a simplified landmark-cut heuristic (spec.md §6 requires
// "hmax" and "lmcut" as the two selectable classical heuristics). It
// follows the standard cost-sharing scheme of LM-cut — repeatedly cut a
// landmark of operators out of the h-max justification graph and charge
// its minimum residual cost once — but builds the justification graph
// from a single best-supporter edge per fact rather than the full
// bidirectional precondition-choice search of the research literature;
// see DESIGN.md.
//
// Each round:
//  1. Recompute h-max costs and each fact's best supporter (the
//     operator, and its own costliest precondition) under the current
//     residual operator costs.
//  2. If h-max is 0 the goal is free; return the accumulated total. If
//     it is +Inf the goal is unreachable.
//  3. Build the goal zone N*: facts reachable backward from a goal fact
//     through best-supporter edges, stopping at any fact already free
//     (cost 0).
//  4. The cut is every operator whose costliest precondition lies
//     outside N* (free, or simply not on the path) but that achieves a
//     fact inside N* — the landmark crossing the cut.
//  5. Charge the cut's minimum residual cost once, and subtract it from
//     every operator in the cut.
type LMCut struct {
	task *task.Task
}

// NewLMCut builds a simplified landmark-cut heuristic over t.
func NewLMCut(t *task.Task) *LMCut { return &LMCut{task: t} }

// maxLandmarkRounds bounds the cost-sharing loop. Each round drives at
// least one operator's residual cost to 0, so termination is expected
// long before this bound; it exists as a safety net, not a tuning knob.
const maxLandmarkRounds = 10000

// Evaluate returns the accumulated landmark cost estimate for s.
func (l *LMCut) Evaluate(s task.State) float64 {
	residual := make(map[string]float64, len(l.task.Operators))
	for _, op := range l.task.Operators {
		residual[op.Name] = 1
	}

	total := 0.0
	for round := 0; round < maxLandmarkRounds; round++ {
		cost, achiever := relaxedCosts(l.task, s, func(op task.Operator) float64 {
			return residual[op.Name]
		})
		h := goalCost(l.task, cost)
		if math.IsInf(h, 1) {
			return math.Inf(1)
		}
		if h == 0 {
			return total
		}

		goalZone := buildGoalZone(l.task.GoalAtoms, cost, achiever)
		cut := landmarkCut(l.task.Operators, cost, goalZone)
		if len(cut) == 0 {
			return total
		}

		m := math.Inf(1)
		for _, opName := range cut {
			if residual[opName] < m {
				m = residual[opName]
			}
		}
		total += m
		for _, opName := range cut {
			residual[opName] -= m
		}
	}
	return total
}

// buildGoalZone walks backward from every goal fact through the h-max
// best-supporter edge (the achiever's costliest precondition), stopping
// at any fact whose cost is already 0.
func buildGoalZone(goalAtoms []string, cost map[string]float64, achiever map[string]task.Operator) map[string]bool {
	inStar := make(map[string]bool)
	var visit func(atom string)
	visit = func(atom string) {
		if cost[atom] <= 0 || inStar[atom] {
			return
		}
		inStar[atom] = true
		op, ok := achiever[atom]
		if !ok {
			return
		}
		if next, ok := criticalPrecond(op, cost); ok && next != "" {
			visit(next)
		}
	}
	for _, g := range goalAtoms {
		visit(g)
	}
	return inStar
}

// criticalPrecond returns the precondition of op with the largest cost
// (the one h-max's max-aggregation blames for op's cost), and whether op
// is applicable at all under cost (every precondition known). An
// operator with no preconditions is applicable with an empty (always
// "free") critical precondition.
func criticalPrecond(op task.Operator, cost map[string]float64) (atom string, applicable bool) {
	maxCost := -1.0
	for _, p := range op.Precond {
		c, known := cost[p]
		if !known {
			return "", false
		}
		if c > maxCost {
			maxCost, atom = c, p
		}
	}
	return atom, true
}

// landmarkCut returns the operators whose critical precondition lies
// outside the goal zone but that achieve a fact inside it.
func landmarkCut(operators []task.Operator, cost map[string]float64, goalZone map[string]bool) []string {
	var cut []string
	for _, op := range operators {
		pstar, applicable := criticalPrecond(op, cost)
		if !applicable || (pstar != "" && goalZone[pstar]) {
			continue
		}
		for _, eff := range op.Add {
			if goalZone[eff] {
				cut = append(cut, op.Name)
				break
			}
		}
	}
	return cut
}
