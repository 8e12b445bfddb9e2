package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/fond-planning/boand/internal/commands"
)

var CLI struct {
	Search   commands.SearchCommand   `cmd:"" help:"Search for a FOND policy over a domain/problem pair" default:"withargs"`
	Validate commands.ValidateCommand `cmd:"" help:"Validate a domain/problem file pair"`
	Doctor   commands.DoctorCommand   `cmd:"" help:"Run configuration diagnostics"`
	Config   commands.ConfigCommand   `cmd:"" help:"Manage configuration"`
}

const banner = `
 _                           _
| |__   ___   __ _ _ __   __| |
| '_ \ / _ \ / _' | '_ \ / _' |
| |_) | (_) | (_| | | | | (_| |
|_.__/ \___/ \__,_|_| |_|\__,_|

Pareto-optimal FOND planning
`

func main() {
	log.SetLevel(log.InfoLevel)

	ctx := kong.Parse(&CLI,
		kong.Name("boand"),
		kong.Description("boand - best-first search for Pareto-optimal FOND policies"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: false,
			Summary: true,
		}),
	)

	if ctx.Command() == "" {
		fmt.Println(banner)
		fmt.Println("Quick start:")
		fmt.Println("  $ boand config init                       # Create config file")
		fmt.Println("  $ boand doctor                             # Verify setup")
		fmt.Println("  $ boand validate domain.in problem.in      # Check a domain/problem pair")
		fmt.Println("  $ boand search domain.in problem.in out/   # Search for a policy")
		fmt.Println()
		fmt.Println("Run 'boand --help' for all commands")
		os.Exit(0)
	}

	err := ctx.Run()
	if err != nil {
		var cliErr *commands.CLIError
		if errors.As(err, &cliErr) {
			log.Error("configuration error", "error", cliErr)
			os.Exit(2)
		}
		log.Error("command failed", "error", err)
		os.Exit(1)
	}
}
