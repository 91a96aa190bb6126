package configloader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/yaklabco/gobiome/pkg/migrate"
)

// ConfigPaths represents discovered configuration file paths.
type ConfigPaths struct {
	// User is the user-level config path (e.g., ~/.config/biome/biome.json).
	User string

	// Project is the nearest biome.json or biome.jsonc above the working
	// directory.
	Project string

	// Explicit is a config path provided via --config-path or
	// BIOME_CONFIG_PATH.
	Explicit string

	// ESLint is an ESLint configuration in the working directory, detected
	// so that a migration can be suggested.
	ESLint string
}

// ConfigFileNames are the configuration file names searched for, in order
// of preference.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ConfigFileNames = []string{"biome.json", "biome.jsonc"}

// vcsRootMarkers are directories that indicate a VCS root.
//
//nolint:gochecknoglobals // Read-only lookup table.
var vcsRootMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths finds configuration files in standard locations.
// It searches for:
//   - User config at $XDG_CONFIG_HOME/biome/biome.{json,jsonc}
//   - Project config by searching upward from workDir to the VCS root
//   - An ESLint config in workDir for migration hints
//
// Missing files are represented as empty strings (not errors).
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("context cancelled: %w", ctx.Err())
	default:
	}

	paths := &ConfigPaths{User: findUserConfig()}

	projectConfig, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	paths.Project = projectConfig

	// A JavaScript ESLint config is still worth mentioning.
	if eslint, err := migrate.Discover(workDir); err == nil || errors.Is(err, migrate.ErrJavaScriptConfig) {
		paths.ESLint = eslint
	}

	return paths, nil
}

// findUserConfig returns the path to the user-level config file, if it exists.
func findUserConfig() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}

	return findConfigInDir(filepath.Join(configHome, "biome"))
}

// findConfigInDir looks for config files in the given directory.
// Returns the path to the first found file, or empty string if none.
func findConfigInDir(dir string) string {
	for _, name := range ConfigFileNames {
		path := filepath.Join(dir, name)
		if fileExists(path) {
			return path
		}
	}
	return ""
}

// FindProjectConfig searches upward from startDir for biome.json or
// biome.jsonc. Returns the path to the first config file found, or empty
// string if none. The search stops at VCS roots, the home directory and the
// filesystem root.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	if startDir == "" {
		var err error
		startDir, err = os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
	}

	absDir, err := filepath.Abs(startDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	homeDir, homeErr := os.UserHomeDir()
	if homeErr != nil {
		homeDir = ""
	}

	currentDir := absDir
	for {
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("context cancelled: %w", ctx.Err())
		default:
		}

		if path := findConfigInDir(currentDir); path != "" {
			return path, nil
		}

		if isVCSRoot(currentDir) {
			return "", nil
		}

		if homeDir != "" && currentDir == homeDir {
			return "", nil
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return "", nil
		}
		currentDir = parentDir
	}
}

// resolveExplicit turns a --config-path value into a file path. A directory
// is searched for biome.json and biome.jsonc.
func resolveExplicit(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("config path: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}
	if found := findConfigInDir(path); found != "" {
		return found, nil
	}
	return "", fmt.Errorf("%w in %s", ErrConfigNotFound, path)
}

// isVCSRoot returns true if the directory contains a VCS root marker.
func isVCSRoot(dir string) bool {
	for _, marker := range vcsRootMarkers {
		path := filepath.Join(dir, marker)
		info, err := os.Stat(path)
		if err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
