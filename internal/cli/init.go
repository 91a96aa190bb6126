package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/gobiome/internal/logging"
	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/fsutil"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

// initFlags holds the flags for the init command.
type initFlags struct {
	force bool
	full  bool
	jsonc bool
}

func newInitCommand(globals *globalFlags) *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a biome.json configuration file",
		Long: `Create a biome.json configuration file in the working directory with the
recommended rules enabled, formatting with tabs and imports organized.

Examples:
  gobiome init                Create biome.json
  gobiome init --jsonc        Create biome.jsonc instead
  gobiome init --full         List every rule with its level`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, globals, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "list every rule with its default level")
	cmd.Flags().BoolVar(&flags.jsonc, "jsonc", false, "create biome.jsonc instead of biome.json")

	return cmd
}

func runInit(cmd *cobra.Command, globals *globalFlags, flags *initFlags) error {
	logger := logging.NewInteractive(cmd.ErrOrStderr())

	workDir, err := globals.workingDir()
	if err != nil {
		return err
	}

	name := "biome.json"
	if flags.jsonc {
		name = "biome.jsonc"
	}
	path := filepath.Join(workDir, name)

	if _, err := os.Stat(path); err == nil {
		if !flags.force {
			return usageError(fmt.Errorf("file %q already exists; use --force to overwrite", name))
		}
		logger.Warn("overwriting existing file", logging.FieldPath, name)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{Full: flags.full})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(cmd.Context(), path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, name)
	logger.Info("run 'gobiome rules' to see all available rules")

	return nil
}
