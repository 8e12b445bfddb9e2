package task

import (
	"bufio"
	"fmt"
	"os"
	"strings"
)

// Loader is the external-collaborator boundary from spec.md §6: given a
// domain file and a problem file, it returns a grounded, determinized
// Task. Real PDDL grammar parsing and all-outcomes determinization are
// declared out of scope by spec.md §1 ("external parser" / external
// determinizer); FileLoader stands in for both with a ground fact/operator
// text format that is already determinized, so the two external stages
// collapse into one front end (see SPEC_FULL.md §1's Open Question
// resolution). The interface itself stays the seam a real PDDL front end
// would be swapped in behind.
type Loader interface {
	Load(domainFile, problemFile string) (*Task, error)
}

// FileLoader reads the domain file for operator definitions and the
// problem file for the initial state and goal, both in the format
// documented by parseDomain and parseProblem below.
type FileLoader struct{}

// NewFileLoader constructs the default Loader implementation.
func NewFileLoader() *FileLoader { return &FileLoader{} }

// Load implements Loader.
func (l *FileLoader) Load(domainFile, problemFile string) (*Task, error) {
	operators, err := parseDomain(domainFile)
	if err != nil {
		return nil, fmt.Errorf("task: parse domain %q: %w", domainFile, err)
	}

	init, goal, name, err := parseProblem(problemFile)
	if err != nil {
		return nil, fmt.Errorf("task: parse problem %q: %w", problemFile, err)
	}

	return &Task{
		InitialState: NewState(init),
		GoalAtoms:    goal,
		Operators:    operators,
		Name:         name,
	}, nil
}

// parseDomain reads a sequence of ground operator blocks:
//
//	operator: <name>
//	  pre: atom atom ...
//	  add: atom ...
//	  del: atom ...
//	end
//
// Outcome operators of the same non-deterministic action share the
// `<nondet>_detdup_<k>` naming convention; the loader does not enforce
// this, it is the responsibility of whatever produced the file (the
// out-of-scope determinizer, or a hand-written fixture).
func parseDomain(path string) ([]Operator, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var ops []Operator
	var name string
	var pre, add, del []string
	inBlock := false

	scan := bufio.NewScanner(f)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(line, "operator:"):
			if inBlock {
				return nil, fmt.Errorf("nested operator block before 'end'")
			}
			inBlock = true
			name = strings.TrimSpace(strings.TrimPrefix(line, "operator:"))
			pre, add, del = nil, nil, nil
		case line == "end":
			if !inBlock {
				return nil, fmt.Errorf("'end' with no open operator block")
			}
			ops = append(ops, NewOperator(name, pre, add, del))
			inBlock = false
		case strings.HasPrefix(line, "pre:"):
			pre = fields(strings.TrimPrefix(line, "pre:"))
		case strings.HasPrefix(line, "add:"):
			add = fields(strings.TrimPrefix(line, "add:"))
		case strings.HasPrefix(line, "del:"):
			del = fields(strings.TrimPrefix(line, "del:"))
		default:
			return nil, fmt.Errorf("unrecognized domain line: %q", line)
		}
	}
	if inBlock {
		return nil, fmt.Errorf("operator block %q missing 'end'", name)
	}
	if err := scan.Err(); err != nil {
		return nil, err
	}
	return ops, nil
}

// parseProblem reads:
//
//	name: <problem-name>
//	init: atom atom ...
//	goal: atom atom ...
func parseProblem(path string) (init, goal []string, name string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, "", err
	}
	defer f.Close()

	scan := bufio.NewScanner(f)
	for scan.Scan() {
		line := strings.TrimSpace(scan.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		switch {
		case strings.HasPrefix(line, "name:"):
			name = strings.TrimSpace(strings.TrimPrefix(line, "name:"))
		case strings.HasPrefix(line, "init:"):
			init = fields(strings.TrimPrefix(line, "init:"))
		case strings.HasPrefix(line, "goal:"):
			goal = fields(strings.TrimPrefix(line, "goal:"))
		default:
			return nil, nil, "", fmt.Errorf("unrecognized problem line: %q", line)
		}
	}
	if err := scan.Err(); err != nil {
		return nil, nil, "", err
	}
	if name == "" {
		name = "problem"
	}
	return init, goal, name, nil
}

func fields(s string) []string {
	f := strings.Fields(s)
	if len(f) == 0 {
		return nil
	}
	return f
}
