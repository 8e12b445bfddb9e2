package commands

import (
	"fmt"
	"os"

	"github.com/fond-planning/boand/internal/config"
)

// ConfigCommand manages the engine-option/telemetry config file.
type ConfigCommand struct {
	Init ConfigInitCommand `cmd:"" help:"Create a new configuration file"`
}

// ConfigInitCommand writes an example config file to disk.
type ConfigInitCommand struct {
	Output string `name:"output" help:"Output path for config file" default:"boand.yaml"`
	Force  bool   `name:"force" help:"Overwrite existing file"`
}

// Run executes the config init command.
func (cmd *ConfigInitCommand) Run() error {
	if _, err := os.Stat(cmd.Output); err == nil && !cmd.Force {
		return fmt.Errorf("config file already exists: %s (use --force to overwrite)", cmd.Output)
	}

	if err := os.WriteFile(cmd.Output, []byte(config.ExampleConfig()), 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	fmt.Printf("created configuration file: %s\n", cmd.Output)
	fmt.Println()
	fmt.Println("next steps:")
	fmt.Println("  1. edit the config file to set engine option defaults")
	fmt.Println("  2. run 'boand doctor' to verify the solution folder and option combination")
	fmt.Println("  3. run 'boand <domain_file> <problem_file> <solution_folder>' to search")

	return nil
}
