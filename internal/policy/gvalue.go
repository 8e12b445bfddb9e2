package policy

import (
	"fmt"

	"github.com/fond-planning/boand/internal/task"
)

// BestG returns the length of the best-ancestor chain from s back to the
// initial state (spec.md §4.1). It is 0 at the initial state. The walk
// always stops the moment it reaches the initial state: the initial
// state's own ancestor entry is a dummy self-reference (see Empty) that
// best-case reasoning never has a reason to chase.
func (p *Policy) BestG(s task.State) float64 {
	if s.Key() == p.initial.Key() {
		return 0
	}
	visited := map[string]bool{s.Key(): true}
	cost := 0.0
	cur := s
	for {
		anc, ok := p.bestAncestors.get(cur.Key())
		if !ok {
			panic(fmt.Sprintf("policy: missing best ancestor entry for state %q (invariant I3 violated)", cur.Key()))
		}
		cost++
		if anc.Key() == p.initial.Key() {
			return cost
		}
		if visited[anc.Key()] {
			return cost
		}
		visited[anc.Key()] = true
		cur = anc
	}
}

// WorstG returns the length of the worst-ancestor chain from s back to
// the initial state, or CycleCost if the chain reaches a state
// reconvergence has proven to lie on a cycle, or otherwise revisits any
// state (including s itself) before reaching the initial state (spec.md
// §4.1).
//
// Unlike BestG, reaching the initial state does not unconditionally end
// the walk: when the initial state is itself a cycle member (a
// non-deterministic action at the initial state can loop back to it),
// worst-case reasoning must keep treating every descendant of that loop
// as CYCLE_COST too, which the loopy membership check below provides.
func (p *Policy) WorstG(s task.State) float64 {
	if p.loopy.has(s) {
		return CycleCost
	}
	if s.Key() == p.initial.Key() {
		return 0
	}
	visited := map[string]bool{s.Key(): true}
	cost := 0.0
	cur := s
	for {
		anc, ok := p.worstAncestors.get(cur.Key())
		if !ok {
			panic(fmt.Sprintf("policy: missing worst ancestor entry for state %q (invariant I3 violated)", cur.Key()))
		}
		cost++
		if p.loopy.has(anc) {
			return CycleCost
		}
		if anc.Key() == p.initial.Key() {
			return cost
		}
		if visited[anc.Key()] {
			return CycleCost
		}
		visited[anc.Key()] = true
		cur = anc
	}
}

// Extend returns the policy produced by assigning the non-deterministic
// action group at state s, with R = group.States the set of successor
// states reached by its deterministic outcomes (spec.md §4.2). goalReached
// decides whether a reached state is a goal.
func Extend(p *Policy, s task.State, group *task.ActionGroup, goalReached func(task.State) bool) *Policy {
	np := &Policy{
		initial:        p.initial,
		strategy:       p.strategy,
		pending:        p.pending,
		goals:          p.goals,
		bestAncestors:  p.bestAncestors,
		worstAncestors: p.worstAncestors,
		loopy:          p.loopy,
		cyclic:         p.cyclic,
	}

	np.strategy = np.strategy.with(s.Key(), StrategyEntry{
		State:     s,
		Action:    group.Name,
		Operators: group.Operators,
	})

	np.updateGValues(s, group.States)

	np.pending = np.pending.without(s)
	for _, r := range group.States {
		if goalReached(r) {
			np.goals = np.goals.with(r)
			continue
		}
		if _, assigned := np.Strategy(r); !assigned {
			np.pending = np.pending.with(r)
		}
	}

	return np
}

// updateGValues implements spec.md §4.1's incremental update: states
// reached for the first time take s as both their best and worst
// ancestor (O(1) per state); if any reached state was already present in
// the graph, a full reconvergence pass restores I4/I5 over the whole
// graph, since a merge can invalidate the tree-shaped worst-case path
// built so far.
func (p *Policy) updateGValues(s task.State, reached []task.State) {
	allNew := true
	for _, r := range reached {
		if _, ok := p.bestAncestors.get(r.Key()); !ok {
			p.bestAncestors = p.bestAncestors.with(r.Key(), s)
			p.worstAncestors = p.worstAncestors.with(r.Key(), s)
		} else {
			allNew = false
		}
	}
	if !allNew {
		p.reconverge()
	}
}

type trajectoryFrame struct {
	state task.State
	path  []task.State
}

// reconverge is the brute-force reconvergence pass of spec.md §4.1: it
// enumerates every trajectory from the initial state forward under the
// strategy, relaxing best/worst ancestors at every merge and recording
// every cycle found, then propagates CycleCost to every descendant of a
// cycle by forcing worst ancestors along the closure of the cycles'
// exits.
func (p *Policy) reconverge() {
	frontier := map[string]trajectoryFrame{p.initial.Key(): {state: p.initial}}
	var cycles [][]task.State

	for len(frontier) > 0 {
		var key string
		for k := range frontier {
			key = k
			break
		}
		frame := frontier[key]
		delete(frontier, key)

		entry, ok := p.Strategy(frame.state)
		if !ok {
			continue // end of trajectory: pending or goal leaf
		}

		for _, r := range successorsOf(frame.state, entry) {
			if idx := indexOfState(frame.path, r); idx >= 0 {
				cycle := append(append([]task.State{}, frame.path[idx:]...), frame.state)
				cycles = append(cycles, cycle)
				continue
			}

			if ancestor, ok := p.worstAncestors.get(r.Key()); ok && p.WorstG(frame.state) > p.WorstG(ancestor) {
				p.worstAncestors = p.worstAncestors.with(r.Key(), frame.state)
			}
			if ancestor, ok := p.bestAncestors.get(r.Key()); ok && p.BestG(frame.state) < p.BestG(ancestor) {
				p.bestAncestors = p.bestAncestors.with(r.Key(), frame.state)
			}

			newPath := append(append([]task.State{}, frame.path...), frame.state)
			frontier[r.Key()] = trajectoryFrame{state: r, path: newPath}
		}
	}

	if len(cycles) == 0 {
		return
	}

	loopy := make(map[string]bool)
	for _, cycle := range cycles {
		for _, st := range cycle {
			loopy[st.Key()] = true
			p.loopy = p.loopy.with(st)
		}
	}

	extendedLoopy := make(map[string]task.State)
	for _, cycle := range cycles {
		for _, st := range cycle {
			entry, ok := p.Strategy(st)
			if !ok {
				continue
			}
			for _, r := range successorsOf(st, entry) {
				p.worstAncestors = p.worstAncestors.with(r.Key(), st)
				if !loopy[r.Key()] {
					extendedLoopy[r.Key()] = r
				}
			}
		}
	}

	alreadySeen := make(map[string]bool)
	for len(extendedLoopy) > 0 {
		var key string
		var st task.State
		for k, v := range extendedLoopy {
			key, st = k, v
			break
		}
		delete(extendedLoopy, key)
		if alreadySeen[key] {
			continue
		}
		alreadySeen[key] = true

		entry, ok := p.Strategy(st)
		if !ok {
			continue
		}
		for _, r := range successorsOf(st, entry) {
			p.worstAncestors = p.worstAncestors.with(r.Key(), st)
			if !alreadySeen[r.Key()] {
				extendedLoopy[r.Key()] = r
			}
		}
	}

	p.cyclic = true
}

func indexOfState(path []task.State, s task.State) int {
	for i, st := range path {
		if st.Key() == s.Key() {
			return i
		}
	}
	return -1
}
