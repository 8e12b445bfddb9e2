package heuristic

import "github.com/fond-planning/boand/internal/task"

// Hmax is the classical delete-relaxation max-cost heuristic: the cost of
// the goal under the relaxed planning graph where every operator costs 1
// and costs compose by max over preconditions rather than by sum.
type Hmax struct {
	task *task.Task
}

// NewHmax builds an Hmax heuristic over t.
func NewHmax(t *task.Task) *Hmax { return &Hmax{task: t} }

// Evaluate returns h-max(s).
func (h *Hmax) Evaluate(s task.State) float64 {
	cost, _ := relaxedCosts(h.task, s, unitCost)
	return goalCost(h.task, cost)
}

func unitCost(task.Operator) float64 { return 1 }
