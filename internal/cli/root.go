// Package cli provides the Cobra command structure for gobiome.
package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gobiome/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	color      string
	logLevel   string
	logKind    string
	verbose    bool
	workDir    string
}

// workingDir returns the directory paths are resolved against.
func (g *globalFlags) workingDir() (string, error) {
	if g.workDir != "" {
		return filepath.Abs(g.workDir)
	}
	dir, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	return dir, nil
}

// NewRootCommand creates the root gobiome command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	globals := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:   "gobiome",
		Short: "A toolchain for web projects: formatter and linter",
		Long: `gobiome formats and lints JavaScript, TypeScript, JSX, JSON, CSS and GraphQL.

It parses every file into a lossless syntax tree, runs lint rules and assists
over it, applies safe fixes on request and prints the formatted result. Files
are configured with biome.json or biome.jsonc.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			switch globals.logLevel {
			case "debug", "info", "warn", "error":
			default:
				return usageError(fmt.Errorf("invalid log level %q; must be one of: debug, info, warn, error", globals.logLevel))
			}
			switch globals.color {
			case "auto", "always", "never":
			default:
				return usageError(fmt.Errorf("invalid color mode %q; must be one of: auto, always, never", globals.color))
			}

			kind, err := logging.ParseKind(globals.logKind)
			if err != nil {
				return usageError(err)
			}

			logger := logging.NewWithOptions(logging.Options{
				Level:  globals.logLevel,
				Kind:   kind,
				Writer: cmd.ErrOrStderr(),
			})
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			cmd.SetContext(logging.WithLogger(ctx, logger))
			return nil
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&globals.configPath, "config-path", "",
		"path to biome.json or the directory containing it (env: BIOME_CONFIG_PATH)")
	flags.StringVar(&globals.color, "color", "auto", "colorize output: auto, always, never")
	flags.StringVar(&globals.logLevel, "log-level", "warn", "log level: debug, info, warn, error")
	flags.StringVar(&globals.logKind, "log-kind", "pretty", "log format: pretty, compact, json")
	flags.BoolVar(&globals.verbose, "verbose", false, "print diagnostics tagged verbose and more details")
	flags.StringVar(&globals.workDir, "working-directory", "", "directory that paths are resolved against")
	_ = flags.MarkHidden("working-directory")

	addCommandGroups(rootCmd)
	rootCmd.AddCommand(
		inGroup(groupProcess, newCheckCommand(globals, info)),
		inGroup(groupProcess, newLintCommand(globals, info)),
		inGroup(groupProcess, newFormatCommand(globals, info)),
		inGroup(groupRules, newRulesCommand()),
		inGroup(groupRules, newExplainCommand(globals)),
		inGroup(groupConfig, newInitCommand(globals)),
		inGroup(groupConfig, newMigrateCommand(globals)),
		newVersionCommand(info),
	)
	setHelp(rootCmd, globals)

	return rootCmd
}
