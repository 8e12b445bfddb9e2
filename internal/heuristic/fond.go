package heuristic

import (
	"fmt"
	"math"
	"sort"

	"github.com/fond-planning/boand/internal/policy"
	"github.com/fond-planning/boand/internal/task"
)

// BestCase computes f_best for a policy: an admissible lower bound on the
// best-case cost of any completion of the policy (spec.md §4.3).
type BestCase interface {
	Evaluate(p *policy.Policy) float64
}

// WorstCase computes f_worst for a policy: an admissible lower bound on
// the adversarial worst-case cost, or +Inf if the policy is a permanent
// deadlock (spec.md §4.3's deadlock rule).
type WorstCase interface {
	Evaluate(p *policy.Policy) float64
}

// Size computes f_size, the pending-set pressure tie-breaker (spec.md
// §4.3).
type Size interface {
	Evaluate(p *policy.Policy) float64
}

// outOf returns Out(P) = P.pending ∪ P.goal_states (spec.md §4.3).
func outOf(p *policy.Policy) []task.State {
	pending := p.Pending()
	goals := p.GoalStates()
	out := make([]task.State, 0, len(pending)+len(goals))
	out = append(out, pending...)
	out = append(out, goals...)
	return out
}

// NewBestCase builds the named f_best variant: "Blind", "MinSum", or
// "SumMin" (spec.md §4.3/§6 -bh).
func NewBestCase(name string, h Classical) (BestCase, error) {
	switch name {
	case "Blind":
		return blindBest{}, nil
	case "MinSum":
		return minSumBest{h}, nil
	case "SumMin":
		return sumMinBest{h}, nil
	default:
		return nil, fmt.Errorf("heuristic: unknown best-case heuristic %q, must be one of: Blind, SumMin, MinSum", name)
	}
}

// NewWorstCase builds the named f_worst variant: "Blind" or "MaxSum"
// (spec.md §4.3/§6 -wh).
func NewWorstCase(name string, h Classical) (WorstCase, error) {
	switch name {
	case "Blind":
		return blindWorst{}, nil
	case "MaxSum":
		return maxSumWorst{h}, nil
	default:
		return nil, fmt.Errorf("heuristic: unknown worst-case heuristic %q, must be one of: Blind, MaxSum", name)
	}
}

// NewSize builds the named f_size variant: "Zero" or "Delta" (spec.md
// §4.3/§6 -sh).
func NewSize(name string, h Classical) (Size, error) {
	switch name {
	case "Zero":
		return zeroSize{}, nil
	case "Delta":
		return deltaSize{h}, nil
	default:
		return nil, fmt.Errorf("heuristic: unknown size heuristic %q, must be one of: Zero, Delta", name)
	}
}

// blindBest is min_{s in Out} best_g(s).
type blindBest struct{}

func (blindBest) Evaluate(p *policy.Policy) float64 {
	out := outOf(p)
	if len(out) == 0 {
		return math.Inf(1)
	}
	m := math.Inf(1)
	for _, s := range out {
		if g := p.BestG(s); g < m {
			m = g
		}
	}
	return m
}

// minSumBest is min_{s in Out} (best_g(s) + h(s)).
type minSumBest struct{ h Classical }

func (b minSumBest) Evaluate(p *policy.Policy) float64 {
	out := outOf(p)
	if len(out) == 0 {
		return math.Inf(1)
	}
	m := math.Inf(1)
	for _, s := range out {
		if v := p.BestG(s) + b.h.Evaluate(s); v < m {
			m = v
		}
	}
	return m
}

// sumMinBest is min_{s} best_g(s) + min_{s} h(s): looser than MinSum but
// still admissible, since it under-estimates by decoupling the two
// minimizations.
type sumMinBest struct{ h Classical }

func (b sumMinBest) Evaluate(p *policy.Policy) float64 {
	out := outOf(p)
	if len(out) == 0 {
		return math.Inf(1)
	}
	minG, minH := math.Inf(1), math.Inf(1)
	for _, s := range out {
		if g := p.BestG(s); g < minG {
			minG = g
		}
		if hv := b.h.Evaluate(s); hv < minH {
			minH = hv
		}
	}
	return minG + minH
}

// blindWorst is max_{s in Out} worst_g(s).
type blindWorst struct{}

func (blindWorst) Evaluate(p *policy.Policy) float64 {
	out := outOf(p)
	if len(out) == 0 {
		return math.Inf(1)
	}
	m := math.Inf(-1)
	for _, s := range out {
		if g := p.WorstG(s); g > m {
			m = g
		}
	}
	return m
}

// maxSumWorst treats CycleCost as absorbing (max(CycleCost, h) rather
// than CycleCost + h, so a cyclic exit never looks more expensive than a
// genuinely unreachable one) and applies the deadlock rule: a cyclic
// policy whose worst case still comes out below CycleCost can never
// become proper, so it is forced to +Inf and pruned.
type maxSumWorst struct{ h Classical }

func (w maxSumWorst) Evaluate(p *policy.Policy) float64 {
	out := outOf(p)
	if len(out) == 0 {
		return math.Inf(1)
	}
	m := math.Inf(-1)
	for _, s := range out {
		g := p.WorstG(s)
		hv := w.h.Evaluate(s)
		var v float64
		if g == policy.CycleCost {
			v = math.Max(policy.CycleCost, hv)
		} else {
			v = g + hv
		}
		if v > m {
			m = v
		}
	}
	if p.Cyclic() && m < policy.CycleCost {
		return math.Inf(1)
	}
	return m
}

// zeroSize disables size-based tie-breaking.
type zeroSize struct{}

func (zeroSize) Evaluate(*policy.Policy) float64 { return 0 }

// deltaSize is a lower bound on the number of further expansions needed
// to close the policy: sort the pending states' h-values ascending and
// return max_i (h_i + i), since closing the pending set requires at
// least one expansion per state and the i-th cheapest state cannot be
// reached before i earlier expansions have happened.
type deltaSize struct{ h Classical }

func (d deltaSize) Evaluate(p *policy.Policy) float64 {
	pending := p.Pending()
	if len(pending) == 0 {
		return 0
	}
	hs := make([]float64, len(pending))
	for i, s := range pending {
		hs[i] = d.h.Evaluate(s)
	}
	sort.Float64s(hs)
	m := 0.0
	for i, hv := range hs {
		if v := hv + float64(i); v > m {
			m = v
		}
	}
	return m
}
