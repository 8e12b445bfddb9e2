package search

import (
	"testing"

	"github.com/fond-planning/boand/internal/task"
	"github.com/stretchr/testify/require"
)

type countingMetrics struct {
	iterations, expansions, generations, maxOpenSeen int
}

func (m *countingMetrics) IncIterations()  { m.iterations++ }
func (m *countingMetrics) IncExpansions()  { m.expansions++ }
func (m *countingMetrics) IncGenerations() { m.generations++ }
func (m *countingMetrics) SetOpenSize(n int) {
	if n > m.maxOpenSeen {
		m.maxOpenSeen = n
	}
}

func TestEngineReportsMetrics(t *testing.T) {
	r := require.New(t)
	tk := &task.Task{
		InitialState: st("s0"),
		GoalAtoms:    []string{"s2"},
		Operators: []task.Operator{
			opr("a1", []string{"s0"}, []string{"s1"}, []string{"s0"}),
			opr("a2", []string{"s1"}, []string{"s2"}, []string{"s1"}),
		},
	}
	e := defaultEngine(t, tk)
	m := &countingMetrics{}
	e.Metrics = m
	frontier := e.Run()

	r.Len(frontier, 1)
	r.Greater(m.iterations, 0)
	r.Equal(2, m.expansions)
	r.Equal(2, m.generations)
}
