package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigMatchesSpecDefaults(t *testing.T) {
	cfg := DefaultConfig()
	want := EngineConfig{
		Comparator: "bw",
		Classical:  "hmax",
		BestCase:   "MinSum",
		WorstCase:  "MaxSum",
		Size:       "Delta",
		Selector:   "bounds",
	}
	if cfg.Engine != want {
		t.Fatalf("DefaultConfig().Engine = %+v, want %+v", cfg.Engine, want)
	}
}

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Engine.Classical != "hmax" {
		t.Fatalf("expected default classical heuristic, got %q", cfg.Engine.Classical)
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "boand.yaml")
	contents := `
engine:
  comparator: wb
  classical: lmcut
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Engine.Comparator != "wb" {
		t.Fatalf("expected comparator override, got %q", cfg.Engine.Comparator)
	}
	if cfg.Engine.Classical != "lmcut" {
		t.Fatalf("expected classical override, got %q", cfg.Engine.Classical)
	}
	// Fields not present in the file keep their defaults.
	if cfg.Engine.Selector != "bounds" {
		t.Fatalf("expected default selector to survive partial override, got %q", cfg.Engine.Selector)
	}
}

func TestLoadConfigExpandsEnvVars(t *testing.T) {
	t.Setenv("BOAND_TEST_TOKEN", "secret-value")
	dir := t.TempDir()
	path := filepath.Join(dir, "boand.yaml")
	contents := "telemetry:\n  influx_token: ${BOAND_TEST_TOKEN}\n"
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Telemetry.InfluxToken != "secret-value" {
		t.Fatalf("expected interpolated token, got %q", cfg.Telemetry.InfluxToken)
	}
}

func TestSaveAndReloadRoundTrips(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "boand.yaml")

	cfg := DefaultConfig()
	cfg.Engine.Selector = "largestg"

	if err := SaveConfig(cfg, path); err != nil {
		t.Fatalf("SaveConfig: %v", err)
	}

	reloaded, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if reloaded.Engine.Selector != "largestg" {
		t.Fatalf("expected round-tripped selector, got %q", reloaded.Engine.Selector)
	}
}
