// Package commands implements the `validate` and `doctor` diagnostics
// subcommands from SPEC_FULL.md §2 item 10, in the teacher's
// kong-subcommand-as-struct-with-Run style (see
// internal/commands/{validate,doctor}.go in the teacher repository).
package commands

import (
	"fmt"

	"github.com/fond-planning/boand/internal/task"
	"github.com/fond-planning/boand/internal/validation"
)

// ValidateCommand loads a domain/problem pair and reports grounded
// operator and non-deterministic-action counts without searching.
type ValidateCommand struct {
	DomainFile  string `arg:"" name:"domain" help:"Domain file to load" type:"path"`
	ProblemFile string `arg:"" name:"problem" help:"Problem file to load" type:"path"`
}

// Run executes the validate command.
func (cmd *ValidateCommand) Run() error {
	fmt.Printf("validating %s / %s\n\n", cmd.DomainFile, cmd.ProblemFile)

	domainResult := validation.ValidateTaskFile("domain_file", cmd.DomainFile)
	problemResult := validation.ValidateTaskFile("problem_file", cmd.ProblemFile)
	validation.PrintValidationResult(domainResult)
	validation.PrintValidationResult(problemResult)
	if !domainResult.IsValid() || !problemResult.IsValid() {
		return fmt.Errorf("validation failed")
	}

	loader := task.NewFileLoader()
	t, err := loader.Load(cmd.DomainFile, cmd.ProblemFile)
	if err != nil {
		return fmt.Errorf("load task: %w", err)
	}

	actions := make(map[string]int)
	for _, op := range t.Operators {
		actions[op.NondetAction()]++
	}

	fmt.Printf("problem: %s\n", t.Name)
	fmt.Printf("initial state atoms: %d\n", len(t.InitialState.Atoms()))
	fmt.Printf("goal atoms: %d\n", len(t.GoalAtoms))
	fmt.Printf("grounded operators: %d\n", len(t.Operators))
	fmt.Printf("non-deterministic actions: %d\n", len(actions))
	for name, outcomes := range actions {
		if outcomes > 1 {
			fmt.Printf("  - %s (%d outcomes)\n", name, outcomes)
		}
	}

	return nil
}
