package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fond-planning/boand/internal/config"
)

func validConfig(t *testing.T, solutionFolder string) *config.Config {
	t.Helper()
	cfg := config.DefaultConfig()
	cfg.Output.SolutionFolder = solutionFolder
	return cfg
}

func TestValidateConfigAcceptsDefaults(t *testing.T) {
	cfg := validConfig(t, t.TempDir())
	result := ValidateConfig(cfg)
	if !result.IsValid() {
		t.Fatalf("expected default config to be valid, got errors: %v", result.Errors)
	}
}

func TestValidateConfigRejectsUnknownComparator(t *testing.T) {
	cfg := validConfig(t, t.TempDir())
	cfg.Engine.Comparator = "bogus"
	result := ValidateConfig(cfg)
	if result.IsValid() {
		t.Fatal("expected an error for an unknown comparator")
	}
}

func TestValidateConfigWarnsOnBlindWorstCase(t *testing.T) {
	cfg := validConfig(t, t.TempDir())
	cfg.Engine.WorstCase = "Blind"
	result := ValidateConfig(cfg)
	if !result.IsValid() {
		t.Fatalf("Blind worst-case heuristic should only warn, got errors: %v", result.Errors)
	}
	if len(result.Warnings) == 0 {
		t.Fatal("expected a warning about the Blind worst-case heuristic")
	}
}

func TestValidateConfigRequiresInfluxOrgWhenURLSet(t *testing.T) {
	cfg := validConfig(t, t.TempDir())
	cfg.Telemetry.InfluxURL = "http://localhost:8086"
	cfg.Telemetry.InfluxBucket = "boand"
	result := ValidateConfig(cfg)
	if result.IsValid() {
		t.Fatal("expected an error for a missing influx_org")
	}
}

func TestEngineOptionAllowed(t *testing.T) {
	if _, ok := EngineOptionAllowed("m", "bw"); !ok {
		t.Fatal("expected 'bw' to be a valid comparator")
	}
	allowed, ok := EngineOptionAllowed("ch", "bogus")
	if ok {
		t.Fatal("expected 'bogus' to be rejected as a classical heuristic")
	}
	if len(allowed) != 2 {
		t.Fatalf("expected 2 allowed classical heuristics, got %v", allowed)
	}
}

func TestValidateTaskFileMissing(t *testing.T) {
	result := ValidateTaskFile("domain_file", filepath.Join(t.TempDir(), "missing.txt"))
	if result.IsValid() {
		t.Fatal("expected an error for a missing file")
	}
}

func TestValidateTaskFileEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "empty.txt")
	if err := os.WriteFile(path, nil, 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	result := ValidateTaskFile("problem_file", path)
	if result.IsValid() {
		t.Fatal("expected an error for an empty file")
	}
}

func TestValidateTaskFileOK(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "domain.txt")
	if err := os.WriteFile(path, []byte("operator: a\nend\n"), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	result := ValidateTaskFile("domain_file", path)
	if !result.IsValid() {
		t.Fatalf("expected a readable non-empty file to validate, got: %v", result.Errors)
	}
}

func TestValidateOutputDirectoryCreatesAndWrites(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "solutions")
	if err := ValidateOutputDirectory(dir); err != nil {
		t.Fatalf("ValidateOutputDirectory: %v", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Fatalf("expected directory to exist: %v", err)
	}
}
