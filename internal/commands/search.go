package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fond-planning/boand/internal/config"
	"github.com/fond-planning/boand/internal/emit"
	"github.com/fond-planning/boand/internal/graph"
	"github.com/fond-planning/boand/internal/heuristic"
	"github.com/fond-planning/boand/internal/progress"
	"github.com/fond-planning/boand/internal/search"
	"github.com/fond-planning/boand/internal/simulate"
	"github.com/fond-planning/boand/internal/task"
	"github.com/fond-planning/boand/internal/telemetry"
	"github.com/fond-planning/boand/internal/validation"
)

// SearchCommand is boand's default command: load a domain/problem pair,
// run the Pareto-pruning best-first search of spec.md §4.6, and write the
// admitted policies and stats record. Positionals and options match
// spec.md §6 plus the ambient additions of SPEC_FULL.md §2 items 8-11.
type SearchCommand struct {
	DomainFile     string `arg:"" name:"domain_file" help:"Domain file" type:"path"`
	ProblemFile    string `arg:"" name:"problem_file" help:"Problem file" type:"path"`
	SolutionFolder string `arg:"" name:"solution_folder" help:"Folder to write solution artifacts into" type:"path"`

	Config string `name:"config" help:"Configuration file path" type:"path"`

	Comparator string `name:"m" help:"Open-list comparator: b, w, bw, wb"`
	Classical  string `name:"ch" help:"Classical heuristic: hmax, lmcut"`
	BestCase   string `name:"bh" help:"Best-case aggregator: Blind, SumMin, MinSum"`
	WorstCase  string `name:"wh" help:"Worst-case aggregator: Blind, MaxSum"`
	Size       string `name:"sh" help:"Policy-size aggregator: Zero, Delta"`
	Selector   string `name:"s" help:"State selector: random, best, largestg, bounds"`

	ServeMetrics string `name:"serve-metrics" help:"Serve /metrics and /healthz on this address"`
	Graph        bool   `name:"graph" help:"Also write a .boand.NNN.graph.json per admitted policy"`
	Replay       bool   `name:"replay" help:"Replay the first admitted policy against an adversarial oracle after searching"`
}

func (cmd *SearchCommand) Run() error {
	runID := uuid.NewString()
	log.SetLevel(log.InfoLevel)
	log.Info("starting search", "run", runID, "domain", cmd.DomainFile, "problem", cmd.ProblemFile)

	cfg, err := config.LoadConfig(cmd.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	cmd.applyOverrides(cfg)

	if cliErr := validateEngineOptions(cfg); cliErr != nil {
		return cliErr
	}

	prog := progress.NewIndicator(true)
	prog.Phase("Parsing and determinizing")

	domainResult := validation.ValidateTaskFile("domain_file", cmd.DomainFile)
	problemResult := validation.ValidateTaskFile("problem_file", cmd.ProblemFile)
	if !domainResult.IsValid() || !problemResult.IsValid() {
		validation.PrintValidationResult(domainResult)
		validation.PrintValidationResult(problemResult)
		return fmt.Errorf("invalid domain or problem file")
	}

	loader := task.NewFileLoader()
	tk, err := loader.Load(cmd.DomainFile, cmd.ProblemFile)
	if err != nil {
		return fmt.Errorf("load task: %w", err)
	}
	prog.Success(fmt.Sprintf("grounded %d operators", len(tk.Operators)))

	if err := validation.ValidateOutputDirectory(cmd.SolutionFolder); err != nil {
		return fmt.Errorf("solution folder: %w", err)
	}

	engine, err := buildEngine(tk, cfg)
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	emitters := telemetry.MultiEmitter{emit.NewFileEmitter(cmd.SolutionFolder, tk.Name)}
	if cmd.Graph || cfg.Output.WriteGraph {
		emitters = append(emitters, graph.NewEmitter(cmd.SolutionFolder, tk.Name))
	}

	reg := prometheus.NewRegistry()
	metrics := telemetry.NewPrometheusMetrics(reg, runID)
	engine.Metrics = metrics

	if cfg.Telemetry.InfluxEnabled() {
		sink := telemetry.NewInfluxSink(telemetry.InfluxConfig{
			URL:    cfg.Telemetry.InfluxURL,
			Token:  cfg.Telemetry.InfluxToken,
			Org:    cfg.Telemetry.InfluxOrg,
			Bucket: cfg.Telemetry.InfluxBucket,
		})
		defer sink.Close()
		emitters = append(emitters, sink)
	}
	engine.Emitter = emitters

	addr := cmd.ServeMetrics
	if addr == "" {
		addr = cfg.Telemetry.ServeMetricsAddr
	}
	if addr != "" {
		srv := telemetry.NewServer(addr, reg)
		srv.Start()
		defer func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = srv.Shutdown(ctx)
		}()
		log.Info("serving telemetry", "addr", addr)
	}

	prog.Phase("Searching")
	frontier := engine.Run()
	prog.Summary(true, fmt.Sprintf("%d policies admitted", len(frontier)))

	if cmd.Replay && len(frontier) > 0 {
		p := frontier[0]
		result, err := simulate.Run(tk, p, simulate.AdversarialOracle{Policy: p}, 10_000)
		if err != nil {
			log.Error("replay failed", "err", err)
		} else {
			log.Info("replay complete", "reached_goal", result.ReachedGoal, "looped", result.Looped, "steps", len(result.Steps))
		}
	}

	return nil
}

func (cmd *SearchCommand) applyOverrides(cfg *config.Config) {
	if cmd.Comparator != "" {
		cfg.Engine.Comparator = cmd.Comparator
	}
	if cmd.Classical != "" {
		cfg.Engine.Classical = cmd.Classical
	}
	if cmd.BestCase != "" {
		cfg.Engine.BestCase = cmd.BestCase
	}
	if cmd.WorstCase != "" {
		cfg.Engine.WorstCase = cmd.WorstCase
	}
	if cmd.Size != "" {
		cfg.Engine.Size = cmd.Size
	}
	if cmd.Selector != "" {
		cfg.Engine.Selector = cmd.Selector
	}
}

func validateEngineOptions(cfg *config.Config) *CLIError {
	checks := []struct {
		flag, value string
	}{
		{"m", cfg.Engine.Comparator},
		{"ch", cfg.Engine.Classical},
		{"bh", cfg.Engine.BestCase},
		{"wh", cfg.Engine.WorstCase},
		{"sh", cfg.Engine.Size},
		{"s", cfg.Engine.Selector},
	}
	for _, c := range checks {
		if allowed, ok := validation.EngineOptionAllowed(c.flag, c.value); !ok {
			return &CLIError{Flag: c.flag, Value: c.value, Allowed: allowed}
		}
	}
	return nil
}

func buildEngine(tk *task.Task, cfg *config.Config) (*search.Engine, error) {
	ch, err := heuristic.NewClassical(cfg.Engine.Classical, tk)
	if err != nil {
		return nil, err
	}
	bh, err := heuristic.NewBestCase(cfg.Engine.BestCase, ch)
	if err != nil {
		return nil, err
	}
	wh, err := heuristic.NewWorstCase(cfg.Engine.WorstCase, ch)
	if err != nil {
		return nil, err
	}
	sh, err := heuristic.NewSize(cfg.Engine.Size, ch)
	if err != nil {
		return nil, err
	}
	sel, err := search.NewSelector(cfg.Engine.Selector)
	if err != nil {
		return nil, err
	}
	cmp, err := search.NewComparator(cfg.Engine.Comparator)
	if err != nil {
		return nil, err
	}

	return &search.Engine{
		Task:       tk,
		Classical:  ch,
		BestCase:   bh,
		WorstCase:  wh,
		Size:       sh,
		Selector:   sel,
		Comparator: cmp,
	}, nil
}
