package policy

import (
	"testing"

	"github.com/fond-planning/boand/internal/task"
	"github.com/stretchr/testify/require"
)

func state(atoms ...string) task.State { return task.NewState(atoms) }

func op(name string, pre, add, del []string) task.Operator {
	return task.NewOperator(name, pre, add, del)
}

func linearTask() *task.Task {
	return &task.Task{
		InitialState: state("s0"),
		GoalAtoms:    []string{"s2"},
		Operators: []task.Operator{
			op("advance1", []string{"s0"}, []string{"s1"}, []string{"s0"}),
			op("advance2", []string{"s1"}, []string{"s2"}, []string{"s1"}),
		},
	}
}

func TestExtendInvariants(t *testing.T) {
	r := require.New(t)
	tk := linearTask()

	p0 := Empty(tk.InitialState)
	r.True(p0.PendingHas(tk.InitialState))
	r.Equal(0, p0.StrategySize())

	groups := tk.GroupByNondetAction(tk.InitialState)
	g := groups["advance1"]
	p1 := Extend(p0, tk.InitialState, g, tk.GoalReached)

	// P4: keys(strategy') = keys(strategy) ∪ {s}; s not in pending'.
	if _, ok := p1.Strategy(tk.InitialState); !ok {
		t.Fatal("expected initial state to be assigned after Extend")
	}
	r.False(p1.PendingHas(tk.InitialState))
	r.Equal(1, p1.StrategySize())

	// P1/P2: pending and goals disjoint from strategy keys.
	for _, s := range p1.Pending() {
		if _, ok := p1.Strategy(s); ok {
			t.Errorf("pending state %v must not be in strategy", s)
		}
		if p1.goals.has(s) {
			t.Errorf("pending state %v must not be a goal", s)
		}
	}

	// Parent must be unaffected (value semantics, spec.md §5).
	r.True(p0.PendingHas(tk.InitialState))
	r.Equal(0, p0.StrategySize())
}

func TestBestGWorstGLinearChain(t *testing.T) {
	r := require.New(t)
	tk := linearTask()

	p := Empty(tk.InitialState)
	s0 := tk.InitialState
	g1 := tk.GroupByNondetAction(s0)["advance1"]
	p = Extend(p, s0, g1, tk.GoalReached)

	s1 := g1.States[0]
	g2 := tk.GroupByNondetAction(s1)["advance2"]
	p = Extend(p, s1, g2, tk.GoalReached)

	r.Equal(0.0, p.BestG(s0))
	r.Equal(1.0, p.BestG(s1))
	r.Equal(0.0, p.WorstG(s0))
	r.Equal(1.0, p.WorstG(s1))

	goalStates := p.GoalStates()
	r.Len(goalStates, 1)
	r.Equal(2.0, p.BestG(goalStates[0]))
	r.Equal(2.0, p.WorstG(goalStates[0]))
	r.False(p.Cyclic())
	r.True(p.IsClosed())
	r.True(p.IsProper())
}

func TestSimpleLoopIsCyclicButProper(t *testing.T) {
	r := require.New(t)
	// s0 --flip--> {goal, s0} : proper despite the self-loop exit.
	tk := &task.Task{
		InitialState: state("s0"),
		GoalAtoms:    []string{"goal"},
		Operators: []task.Operator{
			op("flip_detdup_0", []string{"s0"}, []string{"goal"}, []string{"s0"}),
			op("flip_detdup_1", []string{"s0"}, nil, nil),
		},
	}

	p := Empty(tk.InitialState)
	group := tk.GroupByNondetAction(tk.InitialState)["flip"]
	p = Extend(p, tk.InitialState, group, tk.GoalReached)

	r.True(p.IsClosed())
	r.True(p.Cyclic())
	r.True(p.IsProper())
	r.Equal(CycleCost, p.WorstG(state("goal")))
}

func TestCyclicWithIndirectExitIsProper(t *testing.T) {
	r := require.New(t)
	// s0 --branch--> {s1, s2}, s1 --toGoal--> goal, s2 --backToA--> s0.
	// The only cycle is s0<->s2; it is proper because s0's other branch
	// reaches a goal through s1, a fact only visible one hop past the
	// state that is still on a naive DFS's recursion stack when s2 is
	// evaluated.
	tk := &task.Task{
		InitialState: state("s0"),
		GoalAtoms:    []string{"goal"},
		Operators: []task.Operator{
			op("branch_detdup_0", []string{"s0"}, []string{"s1"}, []string{"s0"}),
			op("branch_detdup_1", []string{"s0"}, []string{"s2"}, []string{"s0"}),
			op("toGoal", []string{"s1"}, []string{"goal"}, []string{"s1"}),
			op("backToA", []string{"s2"}, []string{"s0"}, []string{"s2"}),
		},
	}

	p := Empty(tk.InitialState)
	p = Extend(p, state("s0"), tk.GroupByNondetAction(state("s0"))["branch"], tk.GoalReached)
	p = Extend(p, state("s1"), tk.GroupByNondetAction(state("s1"))["toGoal"], tk.GoalReached)
	p = Extend(p, state("s2"), tk.GroupByNondetAction(state("s2"))["backToA"], tk.GoalReached)

	r.True(p.IsClosed())
	r.True(p.Cyclic())
	r.True(p.IsProper())
}

func TestPureDeadLoopIsNotProper(t *testing.T) {
	r := require.New(t)
	// s0 --loop--> s0, single outcome, never reaches a goal.
	tk := &task.Task{
		InitialState: state("s0"),
		GoalAtoms:    []string{"goal"},
		Operators: []task.Operator{
			op("loop", []string{"s0"}, nil, nil),
		},
	}

	p := Empty(tk.InitialState)
	group := tk.GroupByNondetAction(tk.InitialState)["loop"]
	p = Extend(p, tk.InitialState, group, tk.GoalReached)

	r.True(p.IsClosed())
	r.False(p.IsProper())
}
