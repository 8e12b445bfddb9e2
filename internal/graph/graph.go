// Package graph implements the supplementary policy-graph export of
// SPEC_FULL.md §2 item 11: a JSON rendering of an admitted policy for
// external visualization, written alongside (never instead of) the
// mandatory `.boand.NNN.out`/`.stats` artifacts. Grounded on the
// teacher's internal/goap.PlanGraph/GraphNode/GraphPersistence
// (internal/goap/persistence.go), adapted from a hierarchical LLM-plan
// tree to a policy's state graph.
package graph

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fond-planning/boand/internal/policy"
)

// PolicyGraph is the top-level JSON document for one admitted policy.
type PolicyGraph struct {
	InitialState string                 `json:"initial_state"`
	Best         float64                `json:"best"`
	Worst        float64                `json:"worst"`
	Size         float64                `json:"size"`
	Nodes        map[string]*PolicyNode `json:"nodes"`
}

// PolicyNode is one strategy-assigned or goal state in the graph.
type PolicyNode struct {
	State       string   `json:"state"`
	Action      string   `json:"action,omitempty"`
	Successors  []string `json:"successors,omitempty"`
	IsGoal      bool     `json:"is_goal"`
	BestG       float64  `json:"best_g"`
	WorstG      float64  `json:"worst_g"`
}

// Build renders p into a PolicyGraph, using fBest/fWorst/fSize as the
// whole-policy scores recorded alongside it (the same values the result
// emitter's stats record carries for this admission).
func Build(p *policy.Policy, fBest, fWorst, fSize float64) *PolicyGraph {
	g := &PolicyGraph{
		InitialState: p.Initial().String(),
		Best:         fBest,
		Worst:        fWorst,
		Size:         fSize,
		Nodes:        make(map[string]*PolicyNode),
	}

	for _, entry := range p.StrategyEntries() {
		successors := entry.Successors(entry.State)
		successorKeys := make([]string, 0, len(successors))
		for _, s := range successors {
			successorKeys = append(successorKeys, s.String())
		}
		g.Nodes[entry.State.String()] = &PolicyNode{
			State:      entry.State.String(),
			Action:     entry.Action,
			Successors: successorKeys,
			BestG:      p.BestG(entry.State),
			WorstG:     p.WorstG(entry.State),
		}
	}

	for _, s := range p.GoalStates() {
		g.Nodes[s.String()] = &PolicyNode{
			State:  s.String(),
			IsGoal: true,
			BestG:  p.BestG(s),
			WorstG: p.WorstG(s),
		}
	}

	return g
}

// Write serializes g to `<dir>/<problem>.boand.<index>.graph.json`,
// zero-padded to match the `.boand.NNN.out` naming the result emitter
// uses for the same admission index.
func Write(dir, problem string, index int, g *PolicyGraph) error {
	name := fmt.Sprintf("%s.boand.%03d.graph.json", problem, index)
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal policy graph: %w", err)
	}
	return os.WriteFile(filepath.Join(dir, name), data, 0644)
}
