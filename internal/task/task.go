package task

// Successor pairs a deterministic operator with the state it produces.
type Successor struct {
	Op    Operator
	State State
}

// Task is the grounded, determinized planning task: an initial state, a
// goal predicate, and operator-grounded successor generation. Operators
// are already determinized (one deterministic operator per non-det
// outcome, see Operator.NondetAction).
type Task struct {
	InitialState State
	GoalAtoms    []string
	Operators    []Operator
	Name         string
}

// GoalReached reports whether every goal atom holds in s.
func (t *Task) GoalReached(s State) bool {
	for _, g := range t.GoalAtoms {
		if !s.Has(g) {
			return false
		}
	}
	return true
}

// Successors enumerates every applicable operator at s together with the
// state it reaches. Operator cost is uniformly 1 per spec.md §3; a task
// with non-unit costs would carry them on Operator, which this grounded
// format does not need.
func (t *Task) Successors(s State) []Successor {
	var out []Successor
	for _, op := range t.Operators {
		if op.Applicable(s) {
			out = append(out, Successor{Op: op, State: op.Apply(s)})
		}
	}
	return out
}

// GroupByNondetAction groups the successors of s by non-deterministic
// action name, returning, for each action, the set of deterministic
// operators that realize it and the set of states it may reach. This is
// exactly the grouping step spec.md §4.6 performs before generating one
// child policy per action.
func (t *Task) GroupByNondetAction(s State) map[string]*ActionGroup {
	groups := make(map[string]*ActionGroup)
	for _, succ := range t.Successors(s) {
		name := succ.Op.NondetAction()
		g, ok := groups[name]
		if !ok {
			g = &ActionGroup{Name: name}
			groups[name] = g
		}
		g.addOperator(succ.Op)
		g.addState(succ.State)
	}
	return groups
}

// ActionGroup is the accumulated set of deterministic operators and
// reachable states for one non-deterministic action at a fixed source
// state.
type ActionGroup struct {
	Name      string
	Operators []Operator
	States    []State

	seenOps    map[string]bool
	seenStates map[string]bool
}

func (g *ActionGroup) addOperator(op Operator) {
	if g.seenOps == nil {
		g.seenOps = make(map[string]bool)
	}
	if !g.seenOps[op.Name] {
		g.seenOps[op.Name] = true
		g.Operators = append(g.Operators, op)
	}
}

func (g *ActionGroup) addState(s State) {
	if g.seenStates == nil {
		g.seenStates = make(map[string]bool)
	}
	if !g.seenStates[s.Key()] {
		g.seenStates[s.Key()] = true
		g.States = append(g.States, s)
	}
}
