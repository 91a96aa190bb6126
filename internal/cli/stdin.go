package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/gobiome/internal/logging"
	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/reporter"
	"github.com/yaklabco/gobiome/pkg/runner"
	"github.com/yaklabco/gobiome/pkg/workspace"
)

// ErrStdinTerminal is returned when --stdin-file-path is given but stdin is
// an interactive terminal.
var ErrStdinTerminal = errors.New("--stdin-file-path requires content piped to stdin")

// runStdin processes the content of stdin as if it were the file at path.
//
// format always prints the formatted content. check and lint print the
// fixed content with --write and the diagnostics otherwise. When content is
// printed, remaining diagnostics go to stderr.
func runStdin(cmd *cobra.Command, path string, mode workspace.Mode, cfg *config.Config, repOpts reporter.Options) error {
	ctx := logging.WithFields(cmd.Context(), logging.FieldPath, path)

	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return usageError(ErrStdinTerminal)
	}
	content, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read stdin: %w", err)
	}

	opts := workspace.Options{
		Mode:   mode,
		Write:  cfg.Write || mode == workspace.ModeFormat,
		Unsafe: cfg.Unsafe,
	}
	res, err := workspace.Process(ctx, path, string(content), cfg, opts)
	if errors.Is(err, workspace.ErrUnknownLanguage) {
		return usageError(err)
	}
	if err != nil {
		return fmt.Errorf("process %s: %w", path, err)
	}

	printsContent := opts.Write || opts.Unsafe
	if printsContent {
		if _, err := io.WriteString(cmd.OutOrStdout(), res.Output); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		repOpts.Writer = cmd.ErrOrStderr()
		repOpts.ShowSummary = false
	}

	result := runner.NewResult(runner.FileOutcome{Path: path, Result: res})
	if !printsContent || len(res.Diagnostics) > 0 {
		rep, err := reporter.New(repOpts)
		if err != nil {
			return usageError(err)
		}
		if _, err := rep.Report(ctx, result); err != nil {
			return fmt.Errorf("report results: %w", err)
		}
	}

	if code := ExitCodeFromResult(result, cfg.ErrorOnWarnings); code != ExitSuccess {
		return &ExitError{Code: code, Err: ErrDiagnosticsFound}
	}
	return nil
}
