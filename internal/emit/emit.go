// Package emit implements the result emitter of spec.md §6: it serializes
// each Pareto-admitted policy to a plain-text solution file and keeps the
// run's statistics file up to date.
package emit

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/fond-planning/boand/internal/policy"
	"github.com/fond-planning/boand/internal/search"
)

// FileEmitter writes `<problem>.boand.<NNN>.out` and `<problem>.stats`
// into a solution folder, in the exact format spec.md §6 specifies.
type FileEmitter struct {
	dir     string
	problem string

	nextIndex int
	records   []string
}

// NewFileEmitter builds an Emitter that writes into dir, naming artifacts
// after problem (typically the problem file's base name, without
// extension).
func NewFileEmitter(dir, problem string) *FileEmitter {
	return &FileEmitter{dir: dir, problem: problem, nextIndex: 1}
}

// EmitPolicy writes the index-th admitted policy's solution file. index
// is the caller's 1-based admission count; the artifact's own `<NNN>`
// counter always reflects how many policies this emitter has written so
// far, so callers that skip indices still get a densely numbered
// sequence.
func (e *FileEmitter) EmitPolicy(index int, p *policy.Policy) error {
	_ = index
	name := fmt.Sprintf("%s.boand.%03d.out", e.problem, e.nextIndex)
	e.nextIndex++

	var b strings.Builder
	for _, entry := range p.StrategyEntries() {
		fmt.Fprintf(&b, "If holds: %s\nExecute: %s\n\n", entry.State.String(), entry.Action)
	}

	return os.WriteFile(filepath.Join(e.dir, name), []byte(b.String()), 0o644)
}

// EmitStats appends s as the next record and rewrites the whole stats
// file, so a run interrupted mid-search still leaves a complete,
// parseable file of every record written up to that point (spec.md §6:
// "Rewritten after each admission").
func (e *FileEmitter) EmitStats(s search.Stats) error {
	e.records = append(e.records, formatStats(s))
	name := fmt.Sprintf("%s.stats", e.problem)
	content := strings.Join(e.records, "")
	return os.WriteFile(filepath.Join(e.dir, name), []byte(content), 0o644)
}

func formatStats(s search.Stats) string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	return fmt.Sprintf("%s;%s;%s;%s;%d;%d;%d;%d\n",
		f(s.Best), f(s.Worst), f(s.Size), f(s.Elapsed.Seconds()),
		s.Iterations, s.Expansions, s.Generations, s.MaxOpen)
}
