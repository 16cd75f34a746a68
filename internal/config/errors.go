package config

import (
	"fmt"
	"strings"

	"github.com/Travis-Prall/court-listener-mcp/internal/api"
)

// Sources a setting can come from, lowest precedence first.
const (
	SourceDefault = "default"
	SourceYAML    = "yaml"
	SourceDotenv  = "dotenv"
	SourceEnv     = "env"
	SourceFlag    = "flag"
)

// LoadError is returned by Load for malformed settings or unreadable settings
// files. It is fatal: the process must not start with it.
type LoadError struct {
	Key         string   // Setting key, upper-cased; empty for file-level errors
	Value       string   // Offending raw value
	Source      string   // One of the Source* constants
	FilePath    string   // Settings file, when the value came from one
	Message     string   // Human-readable reason
	Suggestions []string // Actionable hints
	Err         error
}

// Error implements the error interface
func (e *LoadError) Error() string {
	if e.Key == "" {
		return fmt.Sprintf("configuration error in %s: %s", e.location(), e.Message)
	}
	return fmt.Sprintf("invalid value %q for %s (from %s): %s", e.Value, e.Key, e.location(), e.Message)
}

// Unwrap returns the underlying parse error.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is match a LoadError against &api.Error{Kind: api.KindConfigLoad}.
func (e *LoadError) Is(target error) bool {
	t, ok := target.(*api.Error)
	return ok && t.Kind == api.KindConfigLoad
}

// DetailedError returns a multi-line message with all context, for CLI output.
func (e *LoadError) DetailedError() string {
	var parts []string
	parts = append(parts, "Configuration Error")
	if e.Key != "" {
		parts = append(parts, fmt.Sprintf("  Key: %s", e.Key))
		parts = append(parts, fmt.Sprintf("  Value: %q", e.Value))
	}
	parts = append(parts, fmt.Sprintf("  Source: %s", e.location()))
	parts = append(parts, fmt.Sprintf("  Error: %s", e.Message))

	if len(e.Suggestions) > 0 {
		parts = append(parts, "  Suggestions:")
		for _, suggestion := range e.Suggestions {
			parts = append(parts, fmt.Sprintf("    - %s", suggestion))
		}
	}

	return strings.Join(parts, "\n")
}

func (e *LoadError) location() string {
	if e.FilePath != "" {
		return fmt.Sprintf("%s file %s", e.Source, e.FilePath)
	}
	return e.Source
}
