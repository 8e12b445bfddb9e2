// Package search implements the policy-space search engine of spec.md
// §4.4-§4.6: the state selector and open-list comparator policies, and
// the Pareto-pruning best-first expansion loop over partial policies.
package search

import (
	"fmt"
	"sort"

	"github.com/fond-planning/boand/internal/heuristic"
	"github.com/fond-planning/boand/internal/policy"
	"github.com/fond-planning/boand/internal/task"
)

// Selector picks exactly one state out of a non-closed policy's pending
// set to expand next (spec.md §4.4).
type Selector interface {
	Select(p *policy.Policy, h heuristic.Classical) task.State
}

// NewSelector builds the named selector: "random", "best", "largestg", or
// "bounds" (spec.md §4.4/§6 -s).
func NewSelector(name string) (Selector, error) {
	switch name {
	case "random":
		return randomSelector{}, nil
	case "best":
		return bestSelector{}, nil
	case "largestg":
		return largestGSelector{}, nil
	case "bounds":
		return boundsFirstSelector{}, nil
	default:
		return nil, fmt.Errorf("search: unknown state selector %q, must be one of: random, best, largestg, bounds", name)
	}
}

// sortedPending returns p's pending states ordered by key, giving every
// selector a fixed iteration order so ties resolve the same way across
// runs (spec.md §8 P7).
func sortedPending(p *policy.Policy) []task.State {
	out := p.Pending()
	sort.Slice(out, func(i, j int) bool { return out[i].Key() < out[j].Key() })
	return out
}

// randomSelector picks an arbitrary pending state. "Arbitrary" still must
// be reproducible (spec.md §8 P7 requires identical frontiers across
// identical runs), so it takes the lexicographically smallest key rather
// than drawing from an actual RNG.
type randomSelector struct{}

func (randomSelector) Select(p *policy.Policy, _ heuristic.Classical) task.State {
	return sortedPending(p)[0]
}

// bestSelector minimizes best_g(s) + h(s).
type bestSelector struct{}

func (bestSelector) Select(p *policy.Policy, h heuristic.Classical) task.State {
	states := sortedPending(p)
	best, bestV := states[0], p.BestG(states[0])+h.Evaluate(states[0])
	for _, s := range states[1:] {
		if v := p.BestG(s) + h.Evaluate(s); v < bestV {
			best, bestV = s, v
		}
	}
	return best
}

// largestGSelector maximizes worst_g(s).
type largestGSelector struct{}

func (largestGSelector) Select(p *policy.Policy, _ heuristic.Classical) task.State {
	states := sortedPending(p)
	best, bestV := states[0], p.WorstG(states[0])
	for _, s := range states[1:] {
		if v := p.WorstG(s); v > bestV {
			best, bestV = s, v
		}
	}
	return best
}

// boundsFirstSelector drives toward a first goal fast (minimize
// best_g+h) until one is reached, then attacks the hardest remaining
// exit (maximize best_g+h) to tighten the bound (spec.md §4.4).
type boundsFirstSelector struct{}

func (boundsFirstSelector) Select(p *policy.Policy, h heuristic.Classical) task.State {
	states := sortedPending(p)
	minimize := len(p.GoalStates()) == 0

	best, bestV := states[0], p.BestG(states[0])+h.Evaluate(states[0])
	for _, s := range states[1:] {
		v := p.BestG(s) + h.Evaluate(s)
		if (minimize && v < bestV) || (!minimize && v > bestV) {
			best, bestV = s, v
		}
	}
	return best
}
