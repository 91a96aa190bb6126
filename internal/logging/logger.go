// Package logging configures the charmbracelet/log loggers used by the CLI
// and carries them through contexts to the runner and the workspace.
package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

//nolint:gochecknoglobals // Package-level logger is intentional for convenience
var defaultLogger = New("warn")

// Kind selects how log records are written.
type Kind string

// Log kinds.
const (
	// KindPretty writes styled, human readable records.
	KindPretty Kind = "pretty"
	// KindCompact writes logfmt records.
	KindCompact Kind = "compact"
	// KindJSON writes one JSON object per record.
	KindJSON Kind = "json"
)

// ParseKind parses a --log-kind value. The empty string is pretty.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(s)) {
	case "", KindPretty:
		return KindPretty, nil
	case KindCompact:
		return KindCompact, nil
	case KindJSON:
		return KindJSON, nil
	default:
		return "", fmt.Errorf("invalid log kind %q; must be one of: pretty, compact, json", s)
	}
}

func (k Kind) formatter() log.Formatter {
	switch k {
	case KindCompact:
		return log.LogfmtFormatter
	case KindJSON:
		return log.JSONFormatter
	default:
		return log.TextFormatter
	}
}

// Options configures NewWithOptions.
type Options struct {
	// Level is one of debug, info, warn or error. Anything else is info.
	Level string
	Kind  Kind
	// Writer receives the records. Nil means stderr.
	Writer io.Writer
	Prefix string
}

// NewWithOptions creates a logger.
func NewWithOptions(opts Options) *log.Logger {
	w := opts.Writer
	if w == nil {
		w = os.Stderr
	}
	return log.NewWithOptions(w, log.Options{
		Level:     parseLevel(opts.Level),
		Formatter: opts.Kind.formatter(),
		Prefix:    opts.Prefix,
	})
}

// New creates a pretty logger writing to stderr at level.
func New(level string) *log.Logger {
	return NewWithOptions(Options{Level: level})
}

// NewInteractive creates a logger for messages addressed to the user of an
// interactive command such as init or migrate. It always logs at info level.
func NewInteractive(w io.Writer) *log.Logger {
	return NewWithOptions(Options{Level: "info", Writer: w, Prefix: "gobiome"})
}

func parseLevel(level string) log.Level {
	switch strings.ToLower(level) {
	case "debug":
		return log.DebugLevel
	case "warn", "warning":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

// Default returns the logger used without a context logger. It logs
// warnings and errors to stderr.
func Default() *log.Logger {
	return defaultLogger
}
