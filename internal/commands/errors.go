package commands

import "fmt"

// CLIError is the spec.md §7 "configuration error": an unrecognized
// value for one of the engine option flags. main.go type-asserts for
// this to choose exit status 2, kong's convention for a usage error,
// over the generic exit status 1 used for parse/determinization
// failures.
type CLIError struct {
	Flag    string
	Value   string
	Allowed []string
}

func (e *CLIError) Error() string {
	return fmt.Sprintf("%s: unrecognized value %q, allowed: %v", e.Flag, e.Value, e.Allowed)
}
