package heuristic

import (
	"math"
	"testing"

	"github.com/fond-planning/boand/internal/policy"
	"github.com/fond-planning/boand/internal/task"
	"github.com/stretchr/testify/require"
)

// zeroClassical always returns 0, isolating the g-value half of the f_best
// and f_worst aggregators from the classical heuristic.
type zeroClassical struct{}

func (zeroClassical) Evaluate(task.State) float64 { return 0 }

func TestBestCaseAggregatorsOnEmptyPolicy(t *testing.T) {
	r := require.New(t)
	tk := chainTask()
	p := policy.Empty(tk.InitialState)

	blind, err := NewBestCase("Blind", zeroClassical{})
	r.NoError(err)
	r.Equal(0.0, blind.Evaluate(p))

	minSum, err := NewBestCase("MinSum", NewHmax(tk))
	r.NoError(err)
	r.Equal(2.0, minSum.Evaluate(p)) // best_g(s0)=0 + hmax(s0)=2

	sumMin, err := NewBestCase("SumMin", NewHmax(tk))
	r.NoError(err)
	r.Equal(2.0, sumMin.Evaluate(p))
}

func TestBestCaseUnknownName(t *testing.T) {
	_, err := NewBestCase("bogus", zeroClassical{})
	require.Error(t, err)
}

func TestWorstCaseUnknownName(t *testing.T) {
	_, err := NewWorstCase("bogus", zeroClassical{})
	require.Error(t, err)
}

func TestSizeUnknownName(t *testing.T) {
	_, err := NewSize("bogus", zeroClassical{})
	require.Error(t, err)
}

func TestMaxSumWorstDeadlockRule(t *testing.T) {
	r := require.New(t)
	// s0 --loop--> s0, single outcome, never reaches a goal: cyclic and
	// improper. The extended policy is closed with no goal states, so
	// Out(P) is empty and MaxSum returns +Inf through its empty-Out
	// default; the loop state is never scored by the classical heuristic.
	tk := &task.Task{
		InitialState: state("s0"),
		GoalAtoms:    []string{"goal"},
		Operators: []task.Operator{
			op("loop", []string{"s0"}, nil, nil),
		},
	}
	p := policy.Empty(tk.InitialState)
	group := tk.GroupByNondetAction(tk.InitialState)["loop"]
	p = policy.Extend(p, tk.InitialState, group, tk.GoalReached)

	worst, err := NewWorstCase("MaxSum", zeroClassical{})
	r.NoError(err)
	r.True(p.Cyclic())
	r.True(math.IsInf(worst.Evaluate(p), 1))
}

func TestMaxSumWorstOnProperLoop(t *testing.T) {
	r := require.New(t)
	// s0 --flip--> {goal, s0}: cyclic but proper, since the non-loop
	// outcome reaches the goal. The loop exit's worst case is CycleCost,
	// but the policy as a whole is not a deadlock, so no +Inf forcing.
	tk := &task.Task{
		InitialState: state("s0"),
		GoalAtoms:    []string{"goal"},
		Operators: []task.Operator{
			op("flip_detdup_0", []string{"s0"}, []string{"goal"}, []string{"s0"}),
			op("flip_detdup_1", []string{"s0"}, nil, nil),
		},
	}
	p := policy.Empty(tk.InitialState)
	group := tk.GroupByNondetAction(tk.InitialState)["flip"]
	p = policy.Extend(p, tk.InitialState, group, tk.GoalReached)

	worst, err := NewWorstCase("MaxSum", zeroClassical{})
	r.NoError(err)
	r.True(p.Cyclic())
	r.True(p.IsProper())
	r.Equal(policy.CycleCost, worst.Evaluate(p))
}

func TestSizeVariantsOnSinglePendingState(t *testing.T) {
	r := require.New(t)
	tk := &task.Task{
		InitialState: state("s0"),
		GoalAtoms:    []string{"never"},
		Operators:    nil,
	}
	p := policy.Empty(tk.InitialState)

	zero, err := NewSize("Zero", zeroClassical{})
	r.NoError(err)
	r.Equal(0.0, zero.Evaluate(p))

	// Single pending state (the initial state itself): delta reduces to
	// its classical heuristic value.
	delta, err := NewSize("Delta", NewHmax(tk))
	r.NoError(err)
	r.True(math.IsInf(delta.Evaluate(p), 1))
}

func TestSumMinBestIsAdmissibleLowerBoundOnMinSum(t *testing.T) {
	r := require.New(t)
	tk := chainTask()
	p := policy.Empty(tk.InitialState)

	minSum, err := NewBestCase("MinSum", NewHmax(tk))
	r.NoError(err)
	sumMin, err := NewBestCase("SumMin", NewHmax(tk))
	r.NoError(err)

	// SumMin decouples the two minimizations and so never overestimates
	// what MinSum reports over the same frontier.
	r.LessOrEqual(sumMin.Evaluate(p), minSum.Evaluate(p))
}
