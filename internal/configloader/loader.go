// Package configloader provides configuration loading and resolution.
// It discovers biome.json files, decodes them as JSONC, validates them
// against an embedded JSON schema and layers the environment and
// command-line settings on top.
package configloader

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/yaklabco/gobiome/pkg/analyzer"
	"github.com/yaklabco/gobiome/pkg/config"
	jsonc "github.com/yaklabco/gobiome/pkg/lang/json"
	"github.com/yaklabco/gobiome/pkg/text"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0o644

var (
	// ErrConfigNotFound is returned when an explicit configuration path
	// names a directory without a configuration file.
	ErrConfigNotFound = errors.New("no biome.json or biome.jsonc found")

	// ErrExtendsCycle is returned when configuration files extend each other.
	ErrExtendsCycle = errors.New("configuration extends itself")
)

// LoadOptions controls configuration loading behavior.
type LoadOptions struct {
	// WorkingDir is the directory to search from for project config.
	// Defaults to current working directory if empty.
	WorkingDir string

	// ExplicitPath is an explicit config file or directory (from
	// --config-path). If set, project config discovery is skipped.
	ExplicitPath string

	// IgnoreUserConfig skips loading user-level configuration.
	IgnoreUserConfig bool

	// IgnoreProjectConfig skips loading project-level configuration.
	IgnoreProjectConfig bool

	// IgnoreEnv skips loading environment variables.
	IgnoreEnv bool

	// Registry holds the rules configured rules are checked against.
	// Nil means analyzer.DefaultRegistry.
	Registry *analyzer.Registry

	// CLIConfig contains configuration from CLI flags.
	// These take highest precedence.
	CLIConfig *config.Config
}

// LoadResult contains the resolved configuration and metadata.
type LoadResult struct {
	// Config is the final merged configuration.
	Config *config.Config

	// Paths contains the discovered configuration file paths.
	Paths *ConfigPaths

	// LoadedFrom lists the files that were actually loaded (in order),
	// including the files they extend.
	LoadedFrom []string

	// Warnings contains non-fatal issues encountered during loading.
	Warnings []string
}

// Load resolves the final configuration by merging all sources.
// Precedence (highest to lowest):
//  1. CLI flags (opts.CLIConfig)
//  2. Environment variables (BIOME_*)
//  3. Explicit config (opts.ExplicitPath or BIOME_CONFIG_PATH), or else the
//     project config (biome.json upward search to the VCS root)
//  4. User config ($XDG_CONFIG_HOME/biome/biome.json)
//  5. Defaults
//
// Each file is merged after the files it extends.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	result := &LoadResult{Paths: paths}

	explicit := opts.ExplicitPath
	if explicit == "" && !opts.IgnoreEnv {
		explicit = os.Getenv(EnvConfigPath)
	}
	if explicit != "" {
		if !filepath.IsAbs(explicit) {
			explicit = filepath.Join(workDir, explicit)
		}
		paths.Explicit, err = resolveExplicit(explicit)
		if err != nil {
			return nil, err
		}
	}

	var sources []string
	if !opts.IgnoreUserConfig && paths.User != "" {
		sources = append(sources, paths.User)
	}
	switch {
	case paths.Explicit != "":
		sources = append(sources, paths.Explicit)
	case !opts.IgnoreProjectConfig && paths.Project != "":
		sources = append(sources, paths.Project)
	default:
		suggestMigration(paths, result)
	}

	doc := map[string]any{}
	for _, path := range sources {
		fileDoc, err := loadDocument(path, nil, result)
		if err != nil {
			return nil, err
		}
		doc = mergeDocuments(doc, fileDoc)
	}

	cfg, err := decode(doc)
	if err != nil {
		return nil, err
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg, opts.Registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	for _, w := range validation.Warnings {
		result.Warnings = append(result.Warnings, w.Error())
	}

	result.Config = cfg
	return result, nil
}

// LoadFile reads, validates and decodes a single configuration file and
// the files it extends, without defaults from other sources.
func LoadFile(path string) (*config.Config, error) {
	doc, err := loadDocument(path, nil, &LoadResult{})
	if err != nil {
		return nil, err
	}
	return decode(doc)
}

// loadDocument reads the configuration at path, validates it against the
// schema and returns it merged over the files it extends. chain holds the
// files being loaded, to detect cycles.
func loadDocument(path string, chain []string, result *LoadResult) (map[string]any, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	if slices.Contains(chain, abs) {
		return nil, fmt.Errorf("%w: %s", ErrExtendsCycle, abs)
	}
	chain = append(chain, abs)

	content, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	src := string(content)
	parse := jsonc.Parse(src, jsonc.JSONC)
	lines := text.NewLineIndex(src)
	if parse.HasErrors() {
		d := parse.Diagnostics[0]
		return nil, &ValidationError{
			FilePath: path,
			Line:     lines.Position(d.Location.Range.Start).Line,
			Message:  d.Message,
		}
	}

	strict, err := jsonc.Strict(parse)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	schemaErrs, err := validateSchema(path, strict, parse.Root(), lines)
	if err != nil {
		return nil, err
	}
	if len(schemaErrs) > 0 {
		return nil, &schemaErrs[0]
	}

	var doc map[string]any
	if err := json.Unmarshal(strict, &doc); err != nil {
		return nil, fmt.Errorf("%s: decode: %w", path, err)
	}

	base := map[string]any{}
	extends, _ := doc["extends"].([]any)
	for _, entry := range extends {
		name, _ := entry.(string)
		if !filepath.IsAbs(name) {
			name = filepath.Join(filepath.Dir(abs), name)
		}
		extended, err := loadDocument(name, chain, result)
		if err != nil {
			return nil, fmt.Errorf("extends %s: %w", entry, err)
		}
		base = mergeDocuments(base, extended)
	}
	delete(doc, "extends")

	result.LoadedFrom = append(result.LoadedFrom, abs)
	return mergeDocuments(base, doc), nil
}

// decode turns a merged configuration document into a Config holding the
// CLI-level defaults.
func decode(doc map[string]any) (*config.Config, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	cfg := config.NewConfig()
	if err := json.Unmarshal(raw, cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return cfg, nil
}

// suggestMigration points at `migrate eslint` when a project has an ESLint
// configuration but no configuration of its own.
func suggestMigration(paths *ConfigPaths, result *LoadResult) {
	if paths.ESLint == "" {
		return
	}
	result.Warnings = append(result.Warnings,
		fmt.Sprintf("found %s but no biome.json; run 'gobiome migrate eslint --write' to convert it",
			filepath.Base(paths.ESLint)))
}

// MarshalConfig encodes cfg as an indented biome.json document.
func MarshalConfig(cfg *config.Config) ([]byte, error) {
	content, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal config: %w", err)
	}
	return append(content, '\n'), nil
}

// WriteConfig writes cfg as an indented biome.json document.
func WriteConfig(cfg *config.Config, path string) error {
	content, err := MarshalConfig(cfg)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, content, configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	return nil
}
