package task

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFixture(t *testing.T, dir, name, contents string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}

func TestFileLoaderLoad(t *testing.T) {
	dir := t.TempDir()

	domain := writeFixture(t, dir, "domain.txt", `
operator: advance
  pre: at-0
  add: at-1
  del: at-0
end

operator: advance2
  pre: at-1
  add: at-2
  del: at-1
end
`)

	problem := writeFixture(t, dir, "problem.txt", `
name: linear
init: at-0
goal: at-2
`)

	l := NewFileLoader()
	tk, err := l.Load(domain, problem)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if tk.Name != "linear" {
		t.Errorf("Name = %q, want linear", tk.Name)
	}
	if !tk.InitialState.Has("at-0") {
		t.Errorf("expected initial state to contain at-0")
	}
	if len(tk.Operators) != 2 {
		t.Fatalf("expected 2 operators, got %d", len(tk.Operators))
	}

	succ := tk.Successors(tk.InitialState)
	if len(succ) != 1 {
		t.Fatalf("expected 1 successor from initial state, got %d", len(succ))
	}
	if !tk.GoalReached(succ[0].State.Apply([]string{"at-2"}, []string{"at-1"})) {
		t.Error("expected goal atom to be reachable via the second operator")
	}
}

func TestFileLoaderMissingEnd(t *testing.T) {
	dir := t.TempDir()
	domain := writeFixture(t, dir, "domain.txt", "operator: broken\n  pre: a\n")
	problem := writeFixture(t, dir, "problem.txt", "init: a\ngoal: b\n")

	if _, err := NewFileLoader().Load(domain, problem); err == nil {
		t.Fatal("expected an error for a domain file missing 'end'")
	}
}

func TestGroupByNondetAction(t *testing.T) {
	tk := &Task{
		InitialState: NewState([]string{"s0"}),
		Operators: []Operator{
			NewOperator("flip_detdup_0", []string{"s0"}, []string{"heads"}, []string{"s0"}),
			NewOperator("flip_detdup_1", []string{"s0"}, []string{"tails"}, []string{"s0"}),
			NewOperator("stay", []string{"s0"}, []string{"waited"}, nil),
		},
	}

	groups := tk.GroupByNondetAction(tk.InitialState)
	if len(groups) != 2 {
		t.Fatalf("expected 2 non-det actions, got %d", len(groups))
	}
	flip, ok := groups["flip"]
	if !ok {
		t.Fatal("expected a 'flip' group")
	}
	if len(flip.Operators) != 2 || len(flip.States) != 2 {
		t.Errorf("expected flip to have 2 operators and 2 reachable states, got %d/%d", len(flip.Operators), len(flip.States))
	}
	if _, ok := groups["stay"]; !ok {
		t.Error("expected a 'stay' group with its bare name preserved")
	}
}
