package validation

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fond-planning/boand/internal/config"
)

// ValidationError represents a single validation error or warning,
// with an optional suggested fix. Grounded on the teacher's
// internal/validation.ValidationError.
type ValidationError struct {
	Field   string
	Message string
	Fix     string
}

func (e ValidationError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Field, e.Message)
	if e.Fix != "" {
		msg += fmt.Sprintf("\n  Fix: %s", e.Fix)
	}
	return msg
}

// ValidationResult holds validation results
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// IsValid returns true if there are no errors
func (v *ValidationResult) IsValid() bool {
	return len(v.Errors) == 0
}

// AddError adds a validation error
func (v *ValidationResult) AddError(field, message, fix string) {
	v.Errors = append(v.Errors, ValidationError{Field: field, Message: message, Fix: fix})
}

// AddWarning adds a validation warning
func (v *ValidationResult) AddWarning(field, message, fix string) {
	v.Warnings = append(v.Warnings, ValidationError{Field: field, Message: message, Fix: fix})
}

var (
	validComparators = map[string]bool{"b": true, "w": true, "bw": true, "wb": true}
	validClassicals  = map[string]bool{"hmax": true, "lmcut": true}
	validBestCase    = map[string]bool{"Blind": true, "SumMin": true, "MinSum": true}
	validWorstCase   = map[string]bool{"Blind": true, "MaxSum": true}
	validSize        = map[string]bool{"Zero": true, "Delta": true}
	validSelector    = map[string]bool{"random": true, "best": true, "largestg": true, "bounds": true}
)

// EngineOptionAllowed reports whether value is a recognized setting for
// the named CLI flag (m, ch, bh, wh, sh, s), returning the allowed set
// either way so a caller building a configuration-error message (spec.md
// §7) has it on hand.
func EngineOptionAllowed(flag, value string) (allowed []string, ok bool) {
	var set map[string]bool
	switch flag {
	case "m":
		set = validComparators
	case "ch":
		set = validClassicals
	case "bh":
		set = validBestCase
	case "wh":
		set = validWorstCase
	case "sh":
		set = validSize
	case "s":
		set = validSelector
	default:
		return nil, false
	}
	for k := range set {
		allowed = append(allowed, k)
	}
	return allowed, set[value]
}

// ValidateConfig validates an engine option combination plus the
// telemetry/output settings layered around it, the spec.md §7
// "configuration error" check for `-m/-ch/-bh/-wh/-sh/-s`.
func ValidateConfig(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}

	checkEnum(result, "engine.comparator", cfg.Engine.Comparator, validComparators)
	checkEnum(result, "engine.classical", cfg.Engine.Classical, validClassicals)
	checkEnum(result, "engine.best_case", cfg.Engine.BestCase, validBestCase)
	checkEnum(result, "engine.worst_case", cfg.Engine.WorstCase, validWorstCase)
	checkEnum(result, "engine.size", cfg.Engine.Size, validSize)
	checkEnum(result, "engine.selector", cfg.Engine.Selector, validSelector)

	if cfg.Engine.WorstCase == "Blind" {
		result.AddWarning("engine.worst_case",
			"Blind cannot apply the deadlock rule as sharply as MaxSum",
			"prefer MaxSum unless the domain is known to be acyclic")
	}

	if cfg.Output.SolutionFolder != "" {
		if err := ValidateOutputDirectory(cfg.Output.SolutionFolder); err != nil {
			result.AddError("output.solution_folder", err.Error(),
				fmt.Sprintf("ensure %s is writable", cfg.Output.SolutionFolder))
		}
	}

	if cfg.Telemetry.InfluxEnabled() {
		if cfg.Telemetry.InfluxOrg == "" {
			result.AddError("telemetry.influx_org", "influx_org is required when influx_url is set",
				"set telemetry.influx_org in the config file")
		}
		if cfg.Telemetry.InfluxToken == "" {
			result.AddWarning("telemetry.influx_token", "no Influx token configured",
				"set telemetry.influx_token or export the variable it interpolates")
		}
	}

	return result
}

func checkEnum(result *ValidationResult, field, value string, allowed map[string]bool) {
	if !allowed[value] {
		names := make([]string, 0, len(allowed))
		for k := range allowed {
			names = append(names, k)
		}
		result.AddError(field, fmt.Sprintf("invalid value %q", value),
			fmt.Sprintf("use one of: %v", names))
	}
}

// ValidateTaskFile checks that a domain or problem file path is usable
// before handing it to the loader. Grounded on the teacher's
// internal/validation.ValidateSpecFile, narrowed from "is this a
// reasonable natural-language spec" checks (size heuristics) to plain
// existence/readability checks appropriate for a ground fact/operator
// file.
func ValidateTaskFile(field, path string) *ValidationResult {
	result := &ValidationResult{}

	if path == "" {
		result.AddError(field, "no file provided", "pass a path on the command line")
		return result
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			result.AddError(field, fmt.Sprintf("file not found: %s", path), "check the file path and try again")
		} else {
			result.AddError(field, fmt.Sprintf("cannot access file: %v", err), "check file permissions")
		}
		return result
	}

	if info.IsDir() {
		result.AddError(field, fmt.Sprintf("%s is a directory", path), "provide a file, not a directory")
		return result
	}

	if info.Size() == 0 {
		result.AddError(field, "file is empty", "add operator/problem definitions to the file")
	}

	return result
}

// ValidateOutputDirectory checks if a solution folder is usable: it
// must exist or be creatable, and be writable.
func ValidateOutputDirectory(path string) error {
	if err := os.MkdirAll(path, 0755); err != nil {
		return fmt.Errorf("cannot create solution folder: %w", err)
	}

	testFile := filepath.Join(path, ".boand-write-test")
	if err := os.WriteFile(testFile, []byte("test"), 0644); err != nil {
		return fmt.Errorf("cannot write to solution folder: %w", err)
	}
	os.Remove(testFile)

	return nil
}

// PrintValidationResult prints validation results to stdout, grounded
// on the teacher's internal/validation.PrintValidationResult.
func PrintValidationResult(result *ValidationResult) {
	if len(result.Errors) > 0 {
		fmt.Println("Validation errors:")
		for _, err := range result.Errors {
			fmt.Printf("  - %s\n", err.Error())
		}
		fmt.Println()
	}

	if len(result.Warnings) > 0 {
		fmt.Println("Warnings:")
		for _, warn := range result.Warnings {
			fmt.Printf("  - %s: %s\n", warn.Field, warn.Message)
			if warn.Fix != "" {
				fmt.Printf("    suggestion: %s\n", warn.Fix)
			}
		}
		fmt.Println()
	}

	if result.IsValid() && len(result.Warnings) == 0 {
		fmt.Println("All validations passed")
	}
}
