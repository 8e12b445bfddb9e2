// Package simulate implements the supplementary policy-replay verification
// utility of SPEC_FULL.md §2 item 12: step an admitted policy forward
// against its task under an outcome oracle, confirming it terminates at a
// goal (or that a deliberately cyclic-but-proper policy loops as
// expected). Grounded loosely on the teacher's internal/goap.GraphExecutor
// step-by-step execution loop, replacing LLM-driven action execution with
// deterministic application of the policy's already-chosen operators.
package simulate

import (
	"fmt"
	"math/rand"

	"github.com/fond-planning/boand/internal/policy"
	"github.com/fond-planning/boand/internal/task"
)

// Oracle resolves which successor state execution actually lands on when
// a policy's chosen non-deterministic action has more than one possible
// outcome.
type Oracle interface {
	Pick(options []task.State) task.State
}

// AdversarialOracle always steps to whichever outcome the policy itself
// considers worst-case, the harshest test a proper policy can be put
// through: it still must reach a goal no matter which outcome occurs.
// Between outcomes with equal WorstG it prefers one that is not a goal
// state of the policy.
type AdversarialOracle struct {
	Policy *policy.Policy
}

func (o AdversarialOracle) Pick(options []task.State) task.State {
	goals := make(map[string]bool)
	for _, g := range o.Policy.GoalStates() {
		goals[g.Key()] = true
	}
	worst := options[0]
	for _, s := range options[1:] {
		ws, ww := o.Policy.WorstG(s), o.Policy.WorstG(worst)
		if ws > ww || (ws == ww && goals[worst.Key()] && !goals[s.Key()]) {
			worst = s
		}
	}
	return worst
}

// RandomOracle picks uniformly at random among the outcomes.
type RandomOracle struct {
	Rand *rand.Rand
}

func (o RandomOracle) Pick(options []task.State) task.State {
	return options[o.Rand.Intn(len(options))]
}

// Result reports the outcome of one simulated run.
type Result struct {
	Steps       []task.State
	ReachedGoal bool
	Looped      bool // maxSteps exhausted without reaching a goal
}

// Run replays p against t from the task's initial state, following the
// policy's chosen action at every step and resolving non-determinism via
// oracle, until a goal is reached or maxSteps is exhausted. maxSteps
// guards a legitimate cyclic-but-proper policy's loop from running the
// simulation forever.
func Run(t *task.Task, p *policy.Policy, oracle Oracle, maxSteps int) (Result, error) {
	state := t.InitialState
	result := Result{Steps: []task.State{state}}

	for i := 0; i < maxSteps; i++ {
		if t.GoalReached(state) {
			result.ReachedGoal = true
			return result, nil
		}

		entry, ok := p.Strategy(state)
		if !ok {
			return result, fmt.Errorf("simulate: state %q has no assigned action", state.String())
		}

		successors := entry.Successors(state)
		if len(successors) == 0 {
			return result, fmt.Errorf("simulate: action %q has no successors from %q", entry.Action, state.String())
		}

		next := oracle.Pick(successors)
		result.Steps = append(result.Steps, next)
		state = next
	}

	result.Looped = true
	return result, nil
}
