package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/gobiome/pkg/analysis"
	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the reporter.
	Format config.OutputFormat

	// Color controls colorized output.
	// Values: "auto" (default), "always", "never"
	Color string

	// Command names the subcommand in machine-readable output.
	Command string

	// MaxDiagnostics caps the diagnostics printed for the whole run.
	// Zero or less prints all of them.
	MaxDiagnostics int

	// Level hides diagnostics less severe than it.
	Level diagnostic.Severity

	// Verbose also prints diagnostics tagged verbose.
	Verbose bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// ShowContext includes the source line under each diagnostic.
	ShowContext bool

	// PerFile outputs a separate table for each file (table reporter only).
	PerFile bool

	// WorkingDir is the directory that paths of failed files are made
	// relative to.
	WorkingDir string

	// Version is the tool version reported by the SARIF reporter.
	Version string
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:         os.Stdout,
		Format:         config.FormatDefault,
		Color:          "auto",
		MaxDiagnostics: config.DefaultMaxDiagnostics,
		Level:          diagnostic.SeverityInformation,
		ShowSummary:    true,
		ShowContext:    true,
	}
}

// OptionsFromConfig returns DefaultOptions with the reporter settings of cfg
// applied.
func OptionsFromConfig(cfg *config.Config) Options {
	opts := DefaultOptions()
	if cfg == nil {
		return opts
	}
	if cfg.Format != "" {
		opts.Format = cfg.Format
	}
	opts.MaxDiagnostics = cfg.MaxDiagnostics
	if level, ok := cfg.DiagnosticLevel.Severity(diagnostic.SeverityInformation); ok {
		opts.Level = level
	}
	return opts
}

func (o Options) analysisOptions() analysis.Options {
	return analysis.Options{
		Level:          o.Level,
		MaxDiagnostics: o.MaxDiagnostics,
		Verbose:        o.Verbose,
		SortBy:         analysis.SortByCount,
		SortDesc:       true,
		WorkingDir:     o.WorkingDir,
	}
}
