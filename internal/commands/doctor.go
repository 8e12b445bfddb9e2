package commands

import (
	"fmt"

	"github.com/fond-planning/boand/internal/config"
	"github.com/fond-planning/boand/internal/validation"
)

// DoctorCommand checks that the solution folder is writable and that the
// configured engine option combination is internally consistent before a
// long search begins.
type DoctorCommand struct {
	Config         string `name:"config" help:"Configuration file path" type:"path"`
	SolutionFolder string `name:"solution-folder" help:"Solution folder to check" type:"path"`
}

// Run executes the doctor command.
func (cmd *DoctorCommand) Run() error {
	fmt.Println("running boand diagnostics")
	fmt.Println()

	cfg, err := config.LoadConfig(cmd.Config)
	if err != nil {
		fmt.Printf("config: %v\n", err)
		return err
	}
	if cmd.SolutionFolder != "" {
		cfg.Output.SolutionFolder = cmd.SolutionFolder
	}

	result := validation.ValidateConfig(cfg)
	validation.PrintValidationResult(result)

	if !result.IsValid() {
		return fmt.Errorf("diagnostics failed")
	}
	fmt.Println("all systems ready")
	return nil
}
