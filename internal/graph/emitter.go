package graph

import (
	"github.com/fond-planning/boand/internal/policy"
	"github.com/fond-planning/boand/internal/search"
)

// Emitter implements search.Emitter, writing a `.graph.json` file for
// each admitted policy. It is meant to be composed alongside the
// mandatory file emitter (e.g. via telemetry.MultiEmitter), activated
// only when the CLI's `-graph` flag is set.
type Emitter struct {
	dir     string
	problem string

	index   int
	pending *policy.Policy
}

func NewEmitter(dir, problem string) *Emitter {
	return &Emitter{dir: dir, problem: problem}
}

// EmitPolicy records the admitted policy; the graph is written once the
// matching stats record (carrying its scores) arrives.
func (e *Emitter) EmitPolicy(index int, p *policy.Policy) error {
	e.index = index
	e.pending = p
	return nil
}

// EmitStats writes the graph for the most recently recorded policy. The
// terminal stats record (Best == -1) has no matching policy and is
// skipped.
func (e *Emitter) EmitStats(s search.Stats) error {
	if e.pending == nil || s.Best < 0 {
		return nil
	}
	g := Build(e.pending, s.Best, s.Worst, s.Size)
	err := Write(e.dir, e.problem, e.index, g)
	e.pending = nil
	return err
}
