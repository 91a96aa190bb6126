package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gobiome/internal/configloader"
	"github.com/yaklabco/gobiome/internal/logging"
	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/fix"
	"github.com/yaklabco/gobiome/pkg/migrate"
)

// migrateFlags holds the flags for the migrate eslint command.
type migrateFlags struct {
	write           bool
	includeInspired bool
	includeNursery  bool
}

func newMigrateCommand(globals *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Update the configuration from the configuration of other tools",
		Args:  cobra.NoArgs,
	}
	cmd.AddCommand(newMigrateESLintCommand(globals))
	return cmd
}

func newMigrateESLintCommand(globals *globalFlags) *cobra.Command {
	flags := &migrateFlags{}

	cmd := &cobra.Command{
		Use:   "eslint [eslint-config]",
		Short: "Migrate the rules of an ESLint configuration",
		Long: `Enable the rules equivalent to the ones configured in an ESLint configuration
file (.eslintrc.json, .eslintrc.yaml, .eslintrc or package.json).

If no file is given, the working directory is searched. JavaScript
configuration files cannot be migrated. Rules that are only inspired by their
ESLint counterpart, and rules that are not stable yet, are skipped unless
requested.

Without --write, the changes to biome.json are printed as a diff.

Examples:
  gobiome migrate eslint
  gobiome migrate eslint --write --include-inspired
  gobiome migrate eslint config/.eslintrc.yaml --write`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			return runMigrateESLint(cmd, globals, flags, input)
		},
	}

	cmd.Flags().BoolVar(&flags.write, "write", false, "write the updated configuration")
	cmd.Flags().BoolVar(&flags.includeInspired, "include-inspired", false,
		"also migrate rules that only approximate the ESLint rule")
	cmd.Flags().BoolVar(&flags.includeNursery, "include-nursery", false, "also migrate rules that are not stable yet")

	return cmd
}

func runMigrateESLint(cmd *cobra.Command, globals *globalFlags, flags *migrateFlags, input string) error {
	logger := logging.NewInteractive(cmd.ErrOrStderr())

	workDir, err := globals.workingDir()
	if err != nil {
		return err
	}

	inputPath, err := findESLintConfig(workDir, input)
	if err != nil {
		return usageError(err)
	}

	target, cfg, original, err := migrationTarget(cmd, globals, workDir)
	if err != nil {
		return usageError(err)
	}

	migration, err := migrate.FromESLintConfig(inputPath, cfg, migrate.Options{
		IncludeNursery:  flags.includeNursery,
		IncludeInspired: flags.includeInspired,
	})
	if err != nil {
		return usageError(fmt.Errorf("convert %s: %w", inputPath, err))
	}
	for _, warning := range migration.Warnings {
		logger.Warn(warning)
	}
	if len(migration.Unsupported) > 0 {
		logger.Info("rules without an equivalent", logging.FieldRules, migration.Unsupported)
	}

	content, err := configloader.MarshalConfig(migration.Config)
	if err != nil {
		return err
	}

	relTarget := target
	if rel, err := filepath.Rel(workDir, target); err == nil {
		relTarget = rel
	}

	if !flags.write {
		diff := fix.GenerateDiff(relTarget, original, string(content))
		if diff == nil {
			logger.Info("configuration is already up to date", logging.FieldPath, relTarget)
			return nil
		}
		if _, err := io.WriteString(cmd.OutOrStdout(), diff.String()); err != nil {
			return fmt.Errorf("write diff: %w", err)
		}
		logger.Info("run with --write to apply the changes", logging.FieldRules, migration.Applied)
		return nil
	}

	if err := configloader.WriteConfig(migration.Config, target); err != nil {
		return fmt.Errorf("write %s: %w", relTarget, err)
	}
	logger.Info("migration complete",
		logging.FieldInput, inputPath,
		logging.FieldOutput, relTarget,
		logging.FieldRules, migration.Applied,
	)
	return nil
}

// findESLintConfig returns the ESLint configuration to migrate: input when
// given, otherwise the one found in workDir.
func findESLintConfig(workDir, input string) (string, error) {
	if input != "" {
		if !filepath.IsAbs(input) {
			input = filepath.Join(workDir, input)
		}
		if _, err := os.Stat(input); err != nil {
			return "", fmt.Errorf("ESLint configuration: %w", err)
		}
		return input, nil
	}

	found, err := migrate.Discover(workDir)
	switch {
	case errors.Is(err, migrate.ErrJavaScriptConfig):
		return "", fmt.Errorf("%w; export it as .eslintrc.json first", err)
	case err != nil:
		return "", fmt.Errorf("%w in %s", err, workDir)
	}
	return found, nil
}

// migrationTarget returns the configuration file to update, its decoded
// configuration and its current content. Without a configuration file, a
// new biome.json in workDir starts from the defaults.
func migrationTarget(cmd *cobra.Command, globals *globalFlags, workDir string) (string, *config.Config, string, error) {
	paths, err := configloader.DiscoverPaths(cmd.Context(), workDir)
	if err != nil {
		return "", nil, "", err
	}
	target := paths.Project
	if globals.configPath != "" {
		target = globals.configPath
		if !filepath.IsAbs(target) {
			target = filepath.Join(workDir, target)
		}
		if info, err := os.Stat(target); err == nil && info.IsDir() {
			target = filepath.Join(target, configloader.ConfigFileNames[0])
		}
	}
	if target == "" {
		target = filepath.Join(workDir, configloader.ConfigFileNames[0])
	}

	original, err := os.ReadFile(target)
	if errors.Is(err, os.ErrNotExist) {
		return target, config.DefaultConfig(), "", nil
	}
	if err != nil {
		return "", nil, "", fmt.Errorf("read %s: %w", target, err)
	}
	cfg, err := configloader.LoadFile(target)
	if err != nil {
		return "", nil, "", err
	}
	return target, cfg, string(original), nil
}
