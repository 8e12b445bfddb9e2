package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds defaults for the engine option combination and the
// optional telemetry endpoints, layered under CLI flags per
// SPEC_FULL.md §2 item 8 and §6 ("CLI flags always win over the config file").
// Structure and load/save behavior are grounded on the teacher's
// internal/config/config.go (DefaultConfig/LoadConfig/SaveConfig,
// ${ENV_VAR} interpolation via os.ExpandEnv, yaml.v3 tags).
type Config struct {
	Engine    EngineConfig    `yaml:"engine"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
	Output    OutputConfig    `yaml:"output"`
}

// EngineConfig holds the six named strategy choices from spec.md §6,
// one field per CLI flag.
type EngineConfig struct {
	Comparator string `yaml:"comparator"` // -m {b,w,bw,wb}
	Classical  string `yaml:"classical"`  // -ch {hmax,lmcut}
	BestCase   string `yaml:"best_case"`  // -bh {Blind,SumMin,MinSum}
	WorstCase  string `yaml:"worst_case"` // -wh {Blind,MaxSum}
	Size       string `yaml:"size"`       // -sh {Zero,Delta}
	Selector   string `yaml:"selector"`   // -s {random,best,largestg,bounds}
}

// TelemetryConfig holds the optional Prometheus/InfluxDB wiring from
// SPEC_FULL.md §9/§10. Every field is optional; zero values disable the
// corresponding sink.
type TelemetryConfig struct {
	ServeMetricsAddr string `yaml:"serve_metrics_addr"` // -serve-metrics
	InfluxURL        string `yaml:"influx_url"`
	InfluxToken      string `yaml:"influx_token"` // supports ${ENV_VAR} interpolation
	InfluxOrg        string `yaml:"influx_org"`
	InfluxBucket     string `yaml:"influx_bucket"`
}

// InfluxEnabled reports whether an InfluxDB sink should be constructed.
func (t TelemetryConfig) InfluxEnabled() bool {
	return t.InfluxURL != "" && t.InfluxBucket != ""
}

// OutputConfig holds solution-folder settings.
type OutputConfig struct {
	SolutionFolder string `yaml:"solution_folder"`
	WriteGraph     bool   `yaml:"write_graph"`
}

// DefaultConfig returns a config matching spec.md §6's stated defaults.
func DefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Comparator: "bw",
			Classical:  "hmax",
			BestCase:   "MinSum",
			WorstCase:  "MaxSum",
			Size:       "Delta",
			Selector:   "bounds",
		},
	}
}

// LoadConfig loads configuration from a YAML file, falling back to
// DefaultConfig if path is empty or the file does not exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	expanded := os.ExpandEnv(string(data))

	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return cfg, nil
}

// SaveConfig saves configuration to a YAML file, creating parent
// directories as needed.
func SaveConfig(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// ExampleConfig returns a commented example config for `boand config init`.
func ExampleConfig() string {
	return `# boand configuration file
# Priority: CLI flags > config file > defaults
# ${VAR} placeholders in values are expanded from the environment.

engine:
  # Open-list comparator: b, w, bw, wb
  comparator: bw

  # Classical heuristic: hmax, lmcut
  classical: hmax

  # Best-case aggregator: Blind, SumMin, MinSum
  best_case: MinSum

  # Worst-case aggregator: Blind, MaxSum
  worst_case: MaxSum

  # Policy-size aggregator: Zero, Delta
  size: Delta

  # State selector: random, best, largestg, bounds
  selector: bounds

telemetry:
  # Address to serve /metrics and /healthz on, e.g. :9090. Empty disables it.
  serve_metrics_addr: ""

  # Optional InfluxDB sink for per-admission points. Empty URL disables it.
  influx_url: ""
  influx_token: ${INFLUXDB_TOKEN}
  influx_org: ""
  influx_bucket: ""

output:
  # Folder that 'boand doctor' checks for writability. The search command
  # takes its solution folder as a positional argument instead.
  solution_folder: ./solutions

  # Also write a .boand.NNN.graph.json per admitted policy.
  write_graph: false
`
}
