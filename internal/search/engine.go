package search

import (
	"container/heap"
	"math"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/fond-planning/boand/internal/heuristic"
	"github.com/fond-planning/boand/internal/policy"
	"github.com/fond-planning/boand/internal/task"
)

// Stats is one record of spec.md §6's stats artifact: the admitted
// policy's scores plus the run's cumulative counters at that point.
type Stats struct {
	Best, Worst, Size float64
	Elapsed           time.Duration
	Iterations        int
	Expansions        int
	Generations       int
	MaxOpen           int
}

// Emitter receives each Pareto-admitted policy and the stats record that
// follows it, plus the terminal stats record on exhaustion (spec.md §6).
type Emitter interface {
	EmitPolicy(index int, p *policy.Policy) error
	EmitStats(s Stats) error
}

// Metrics observes the search loop's counters as they are incremented, so
// an external telemetry sink (Prometheus counters/gauges) can track a run
// without the engine itself depending on any metrics library
// (SPEC_FULL.md §4.6/§10).
type Metrics interface {
	IncIterations()
	IncExpansions()
	IncGenerations()
	SetOpenSize(n int)
}

// Engine runs the Pareto-pruning best-first search of spec.md §4.6 over a
// determinized task, using a fixed classical heuristic and heuristic
// family, state selector, and open-list comparator.
type Engine struct {
	Task       *task.Task
	Classical  heuristic.Classical
	BestCase   heuristic.BestCase
	WorstCase  heuristic.WorstCase
	Size       heuristic.Size
	Selector   Selector
	Comparator Comparator
	Emitter    Emitter
	Metrics    Metrics
}

// openItem is one entry of the open list: a scored candidate policy,
// ordered by the comparator's key with insertion order (seq) as the
// tie-break (spec.md §4.5: "ties... FIFO is acceptable").
type openItem struct {
	key                key
	seq                int
	fBest, fWorst, fSize float64
	policy             *policy.Policy
}

type openList []*openItem

func (l openList) Len() int { return len(l) }

func (l openList) Less(i, j int) bool {
	if l[i].key != l[j].key {
		return l[i].key.less(l[j].key)
	}
	return l[i].seq < l[j].seq
}

func (l openList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

func (l *openList) Push(x any) { *l = append(*l, x.(*openItem)) }

func (l *openList) Pop() any {
	old := *l
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*l = old[:n-1]
	return item
}

// Run executes the search loop to completion and returns the Pareto
// frontier (possibly empty; spec.md §7 "Empty frontier: not an error").
func (e *Engine) Run() []*policy.Policy {
	start := time.Now()
	open := &openList{}
	heap.Init(open)

	seq := 0
	push := func(fBest, fWorst, fSize float64, p *policy.Policy) {
		heap.Push(open, &openItem{
			key:    e.Comparator.key(fBest, fWorst, fSize),
			seq:    seq,
			fBest:  fBest,
			fWorst: fWorst,
			fSize:  fSize,
			policy: p,
		})
		seq++
	}

	empty := policy.Empty(e.Task.InitialState)
	push(0, 0, 0, empty)

	var frontier []*policy.Policy
	betaBest, betaWorst := math.Inf(1), math.Inf(1)
	var stats Stats

	for open.Len() > 0 {
		item := heap.Pop(open).(*openItem)
		stats.Iterations++
		if e.Metrics != nil {
			e.Metrics.IncIterations()
			e.Metrics.SetOpenSize(open.Len())
		}
		log.Debug("iteration", "iteration", stats.Iterations, "fBest", item.fBest, "fWorst", item.fWorst, "fSize", item.fSize, "open", open.Len())

		if item.key.a >= betaBest && item.key.b >= betaWorst {
			continue
		}

		p := item.policy
		if p.IsClosed() {
			if p.IsProper() {
				betaBest, betaWorst = item.key.a, item.key.b
				frontier = append(frontier, p)
				stats.Best, stats.Worst, stats.Size = item.fBest, item.fWorst, item.fSize
				stats.Elapsed = time.Since(start)
				if e.Emitter != nil {
					if err := e.Emitter.EmitPolicy(len(frontier), p); err != nil {
						log.Error("failed to write admitted policy", "index", len(frontier), "err", err)
					}
					if err := e.Emitter.EmitStats(stats); err != nil {
						log.Error("failed to write stats record", "err", err)
					}
				}
				log.Info("policy admitted to frontier", "best", item.fBest, "worst", item.fWorst, "iterations", stats.Iterations)
			}
			continue
		}

		stats.Expansions++
		if e.Metrics != nil {
			e.Metrics.IncExpansions()
		}
		s := e.Selector.Select(p, e.Classical)
		groups := e.Task.GroupByNondetAction(s)

		names := make([]string, 0, len(groups))
		for name := range groups {
			names = append(names, name)
		}
		sort.Strings(names)

		for _, name := range names {
			group := groups[name]
			child := policy.Extend(p, s, group, e.Task.GoalReached)
			stats.Generations++
			if e.Metrics != nil {
				e.Metrics.IncGenerations()
			}

			fBest := e.BestCase.Evaluate(child)
			fWorst := e.WorstCase.Evaluate(child)
			fSize := e.Size.Evaluate(child)
			if math.IsInf(fWorst, 1) || math.IsInf(fSize, 1) {
				continue
			}
			push(fBest, fWorst, fSize, child)
		}

		if open.Len() > stats.MaxOpen {
			stats.MaxOpen = open.Len()
		}
	}

	stats.Best, stats.Worst, stats.Size = -1, -1, -1
	stats.Elapsed = time.Since(start)
	if e.Emitter != nil {
		if err := e.Emitter.EmitStats(stats); err != nil {
			log.Error("failed to write terminal stats record", "err", err)
		}
	}
	log.Info("search complete", "frontier", len(frontier), "iterations", stats.Iterations, "expansions", stats.Expansions)

	return frontier
}
