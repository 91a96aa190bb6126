package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gobiome/internal/configloader"
	"github.com/yaklabco/gobiome/internal/logging"
	_ "github.com/yaklabco/gobiome/pkg/analyzer/rules" // Register built-in rules
	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/fsutil"
	"github.com/yaklabco/gobiome/pkg/reporter"
	"github.com/yaklabco/gobiome/pkg/runner"
	"github.com/yaklabco/gobiome/pkg/workspace"
)

// processFlags holds the flags of check, lint and format.
type processFlags struct {
	write               bool
	fix                 bool
	unsafe              bool
	reporter            string
	maxDiagnostics      string
	diagnosticLevel     string
	errorOnWarnings     bool
	noErrorsOnUnmatched bool
	stdinFilePath       string
	filesMaxSize        string
	threads             int
	backup              bool

	only []string
	skip []string

	changed bool
	staged  bool
	since   string

	vcsEnabled       bool
	vcsClientKind    string
	vcsUseIgnoreFile bool
	vcsRoot          string

	formatterEnabled bool
	linterEnabled    bool
	assistEnabled    bool

	indentStyle string
	indentWidth int
	lineWidth   int
	lineEnding  string
}

func newCheckCommand(globals *globalFlags, info BuildInfo) *cobra.Command {
	flags := &processFlags{}
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Run formatter, linter and assists on the requested files",
		Long: `Run the formatter, the linter and the assists on the requested files.

Without --write, files are left untouched and every fix or formatting change
is reported. With --write, safe fixes and formatting are applied in place.

Examples:
  gobiome check                       # Check the current directory
  gobiome check --write src/          # Apply safe fixes and format src/
  gobiome check --write --unsafe      # Also apply unsafe fixes
  gobiome check --reporter json       # Machine-readable output
  gobiome check --changed             # Only files changed from the default branch`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, args, workspace.ModeCheck, globals, flags, info)
		},
	}
	addProcessFlags(cmd, flags)
	addFixFlags(cmd, flags)
	addRuleSelectionFlags(cmd, flags)
	addToggleFlags(cmd, flags, true, true, true)
	return cmd
}

func newLintCommand(globals *globalFlags, info BuildInfo) *cobra.Command {
	flags := &processFlags{}
	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Run the linter on the requested files",
		Long: `Run only the lint rules and assists on the requested files.

Examples:
  gobiome lint
  gobiome lint --only suspicious --skip suspicious/noConsole
  gobiome lint --write --unsafe app.js`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, args, workspace.ModeLint, globals, flags, info)
		},
	}
	addProcessFlags(cmd, flags)
	addFixFlags(cmd, flags)
	addRuleSelectionFlags(cmd, flags)
	addToggleFlags(cmd, flags, false, true, true)
	return cmd
}

func newFormatCommand(globals *globalFlags, info BuildInfo) *cobra.Command {
	flags := &processFlags{}
	cmd := &cobra.Command{
		Use:   "format [paths...]",
		Short: "Run the formatter on the requested files",
		Long: `Format the requested files.

Without --write, files that are not formatted are reported with a diff of the
expected output. With --stdin-file-path the formatted content is printed.

Examples:
  gobiome format --write .
  gobiome format --indent-style space --line-width 100 src/
  cat app.js | gobiome format --stdin-file-path app.js`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProcess(cmd, args, workspace.ModeFormat, globals, flags, info)
		},
	}
	addProcessFlags(cmd, flags)
	cmd.Flags().BoolVar(&flags.write, "write", false, "write formatted files")
	cmd.Flags().BoolVar(&flags.fix, "fix", false, "alias of --write")
	cmd.Flags().StringVar(&flags.indentStyle, "indent-style", "", "indentation: tab or space")
	cmd.Flags().IntVar(&flags.indentWidth, "indent-width", 0, "spaces per indentation level")
	cmd.Flags().IntVar(&flags.lineWidth, "line-width", 0, "preferred maximum line width")
	cmd.Flags().StringVar(&flags.lineEnding, "line-ending", "", "line ending: lf, crlf or cr")
	addToggleFlags(cmd, flags, true, false, false)
	return cmd
}

func addProcessFlags(cmd *cobra.Command, flags *processFlags) {
	f := cmd.Flags()
	f.StringVar(&flags.reporter, "reporter", "default",
		"reporter: default, table, json, json-pretty, sarif, diff, summary")
	f.StringVar(&flags.maxDiagnostics, "max-diagnostics", strconv.Itoa(config.DefaultMaxDiagnostics),
		"diagnostics printed for the whole run; a number or none")
	f.StringVar(&flags.diagnosticLevel, "diagnostic-level", "info", "lowest level printed: info, warn, error")
	f.BoolVar(&flags.errorOnWarnings, "error-on-warnings", false, "exit with an error when warnings are emitted")
	f.BoolVar(&flags.noErrorsOnUnmatched, "no-errors-on-unmatched", false,
		"do not fail when no file matches the given paths")
	f.StringVar(&flags.stdinFilePath, "stdin-file-path", "",
		"read content from stdin; the path selects the language and configuration")
	f.StringVar(&flags.filesMaxSize, "files-max-size", "", "largest file processed, e.g. 1MiB (default 1MiB)")
	f.IntVar(&flags.threads, "threads", 0, "number of parallel workers (0 = auto)")
	f.BoolVar(&flags.backup, "backup", false, "keep a copy of rewritten files next to them")

	f.BoolVar(&flags.changed, "changed", false, "only process files changed from vcs.defaultBranch")
	f.BoolVar(&flags.staged, "staged", false, "only process files staged for commit")
	f.StringVar(&flags.since, "since", "", "with --changed, the reference to compare against")

	f.BoolVar(&flags.vcsEnabled, "vcs-enabled", false, "enable the VCS integration")
	f.StringVar(&flags.vcsClientKind, "vcs-client-kind", "", "VCS client: git")
	f.BoolVar(&flags.vcsUseIgnoreFile, "vcs-use-ignore-file", false, "honor the ignore files of the VCS")
	f.StringVar(&flags.vcsRoot, "vcs-root", "", "root of the repository")
}

func addFixFlags(cmd *cobra.Command, flags *processFlags) {
	cmd.Flags().BoolVar(&flags.write, "write", false, "apply safe fixes and formatting")
	cmd.Flags().BoolVar(&flags.fix, "fix", false, "alias of --write")
	cmd.Flags().BoolVar(&flags.unsafe, "unsafe", false, "also apply unsafe fixes; implies --write")
}

func addRuleSelectionFlags(cmd *cobra.Command, flags *processFlags) {
	cmd.Flags().StringSliceVar(&flags.only, "only", nil, "run only these rules or groups")
	cmd.Flags().StringSliceVar(&flags.skip, "skip", nil, "skip these rules or groups")
}

func addToggleFlags(cmd *cobra.Command, flags *processFlags, formatter, linter, assist bool) {
	if formatter {
		cmd.Flags().BoolVar(&flags.formatterEnabled, "formatter-enabled", true, "enable the formatter")
	}
	if linter {
		cmd.Flags().BoolVar(&flags.linterEnabled, "linter-enabled", true, "enable the linter")
	}
	if assist {
		cmd.Flags().BoolVar(&flags.assistEnabled, "assist-enabled", true, "enable the assists")
	}
}

// cliConfig builds the configuration layer given on the command line. Only
// flags that were set take part, so that files and the environment keep
// their values otherwise.
func cliConfig(cmd *cobra.Command, flags *processFlags) (*config.Config, error) {
	set := cmd.Flags().Changed
	cfg := &config.Config{
		Write:           flags.write || flags.fix,
		Unsafe:          flags.unsafe,
		ErrorOnWarnings: flags.errorOnWarnings,
		Jobs:            flags.threads,
		Only:            flags.only,
		Skip:            flags.skip,
		Changed:         flags.changed || flags.since != "",
		Staged:          flags.staged,
		Since:           flags.since,
	}

	if set("reporter") {
		format, err := reporter.ParseFormat(flags.reporter)
		if err != nil {
			return nil, err
		}
		cfg.Format = format
	}
	if set("diagnostic-level") {
		cfg.DiagnosticLevel = config.RulePlainConfiguration(flags.diagnosticLevel)
	}
	if set("files-max-size") {
		size, err := humanize.ParseBytes(flags.filesMaxSize)
		if err != nil {
			return nil, fmt.Errorf("invalid --files-max-size %q: %w", flags.filesMaxSize, err)
		}
		if size == 0 {
			return nil, fmt.Errorf("invalid --files-max-size %q: must be positive", flags.filesMaxSize)
		}
		cfg.Files.MaxSize = int64(size) //nolint:gosec // Sizes above MaxInt64 are not meaningful.
	}

	if set("vcs-enabled") {
		cfg.VCS.Enabled = config.Bool(flags.vcsEnabled)
	}
	cfg.VCS.ClientKind = flags.vcsClientKind
	if set("vcs-use-ignore-file") {
		cfg.VCS.UseIgnoreFile = config.Bool(flags.vcsUseIgnoreFile)
	}
	cfg.VCS.Root = flags.vcsRoot

	if set("formatter-enabled") {
		cfg.Formatter.Enabled = config.Bool(flags.formatterEnabled)
	}
	if set("linter-enabled") {
		cfg.Linter.Enabled = config.Bool(flags.linterEnabled)
	}
	if set("assist-enabled") {
		cfg.Assist.Enabled = config.Bool(flags.assistEnabled)
	}

	cfg.Formatter.IndentStyle = config.IndentStyle(flags.indentStyle)
	cfg.Formatter.IndentWidth = flags.indentWidth
	cfg.Formatter.LineWidth = flags.lineWidth
	cfg.Formatter.LineEnding = flags.lineEnding
	return cfg, nil
}

// parseMaxDiagnostics parses --max-diagnostics. "none" and 0 print every
// diagnostic.
func parseMaxDiagnostics(value string) (int, error) {
	if value == "none" {
		return 0, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0, fmt.Errorf("invalid --max-diagnostics %q: must be a non-negative number or none", value)
	}
	return n, nil
}

// loadConfig resolves the configuration of a run: files, environment and
// the flags of cmd.
func loadConfig(cmd *cobra.Command, globals *globalFlags, cli *config.Config) (*config.Config, string, error) {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	workDir, err := globals.workingDir()
	if err != nil {
		return nil, "", err
	}

	loaded, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: globals.configPath,
		CLIConfig:    cli,
	})
	if err != nil {
		return nil, "", usageError(fmt.Errorf("load configuration: %w", err))
	}
	for _, warning := range loaded.Warnings {
		logger.Warn(warning)
	}
	if len(loaded.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldConfig, loaded.LoadedFrom)
	}
	return loaded.Config, workDir, nil
}

func runProcess(cmd *cobra.Command, args []string, mode workspace.Mode, globals *globalFlags, flags *processFlags,
	info BuildInfo,
) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	cli, err := cliConfig(cmd, flags)
	if err != nil {
		return usageError(err)
	}
	cfg, workDir, err := loadConfig(cmd, globals, cli)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("max-diagnostics") {
		if cfg.MaxDiagnostics, err = parseMaxDiagnostics(flags.maxDiagnostics); err != nil {
			return usageError(err)
		}
	}

	logger.Debug("configuration loaded",
		logging.FieldVersion, info.Version,
		logging.FieldMode, mode.String(),
		logging.FieldWrite, cfg.Write,
		logging.FieldUnsafe, cfg.Unsafe,
		logging.FieldJobs, cfg.Jobs,
	)

	repOpts := reporter.OptionsFromConfig(cfg)
	repOpts.Writer = cmd.OutOrStdout()
	repOpts.Color = globals.color
	repOpts.Command = mode.String()
	repOpts.Verbose = globals.verbose
	repOpts.WorkingDir = workDir
	repOpts.Version = info.Version

	if flags.stdinFilePath != "" {
		if len(args) > 0 {
			return usageError(errors.New("paths cannot be combined with --stdin-file-path"))
		}
		return runStdin(cmd, flags.stdinFilePath, mode, cfg, repOpts)
	}

	backup := fsutil.DefaultBackupConfig()
	backup.Enabled = flags.backup

	runOpts := runner.Options{
		Paths:      args,
		WorkingDir: workDir,
		Mode:       mode,
		Jobs:       cfg.Jobs,
		Backup:     backup,
		Config:     cfg,
	}
	logger.Debug("starting run", logging.FieldPaths, runOpts.Paths, logging.FieldWorkingDir, workDir)

	result, err := runner.New().Run(ctx, runOpts)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("%s run: %w", mode, err)
		}
		return usageError(err)
	}

	if result.Stats.FilesDiscovered == 0 && !flags.noErrorsOnUnmatched {
		return usageError(ErrNoFilesMatched)
	}

	rep, err := reporter.New(repOpts)
	if err != nil {
		return usageError(err)
	}
	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	logger.Debug("run finished",
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldDiagnosticsTotal, result.Stats.DiagnosticsTotal,
		logging.FieldFilesModified, result.Stats.FilesModified,
	)

	if code := ExitCodeFromResult(result, cfg.ErrorOnWarnings); code != ExitSuccess {
		return &ExitError{Code: code, Err: ErrDiagnosticsFound}
	}
	return nil
}
