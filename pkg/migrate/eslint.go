package migrate

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yaklabco/gobiome/pkg/config"
	jsonc "github.com/yaklabco/gobiome/pkg/lang/json"
)

var (
	// ErrJavaScriptConfig is returned for configuration files that need a
	// JavaScript runtime to evaluate.
	ErrJavaScriptConfig = errors.New("JavaScript configuration files cannot be migrated")
	// ErrNoESLintConfig is returned when no ESLint configuration is found.
	ErrNoESLintConfig = errors.New("no ESLint configuration found")
)

// eslintConfigFiles are the legacy configuration files, in ESLint's order of
// precedence.
//
//nolint:gochecknoglobals // Read-only lookup table.
var eslintConfigFiles = []string{
	".eslintrc.json",
	".eslintrc.yaml",
	".eslintrc.yml",
	".eslintrc",
	"package.json",
}

//nolint:gochecknoglobals // Read-only lookup table.
var eslintJSConfigFiles = []string{
	"eslint.config.js",
	"eslint.config.mjs",
	"eslint.config.cjs",
	"eslint.config.ts",
	".eslintrc.js",
	".eslintrc.cjs",
}

// ignoredKeys are top-level keys that have no gobiome counterpart and need
// no warning.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ignoredKeys = map[string]bool{
	"$schema":                       true,
	"root":                          true,
	"parser":                        true,
	"parserOptions":                 true,
	"plugins":                       true,
	"settings":                      true,
	"noInlineConfig":                true,
	"reportUnusedDisableDirectives": true,
}

// Migration is the outcome of migrating an ESLint configuration file.
type Migration struct {
	// Config is the updated configuration.
	Config *config.Config
	// SourcePath is the ESLint configuration that was read.
	SourcePath string
	// Applied counts the rules written to Config.
	Applied int
	// Unsupported lists foreign rules without a native counterpart.
	Unsupported []string
	// Warnings contains non-fatal issues encountered during conversion.
	Warnings []string
}

// Discover returns the ESLint configuration file in dir. JavaScript
// configurations are reported with ErrJavaScriptConfig.
func Discover(dir string) (string, error) {
	for _, name := range eslintConfigFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if name == "package.json" {
			if _, err := readESLintConfig(path); err != nil {
				continue
			}
		}
		return path, nil
	}
	for _, name := range eslintJSConfigFiles {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			return path, fmt.Errorf("%w: %s", ErrJavaScriptConfig, name)
		}
	}
	return "", ErrNoESLintConfig
}

// FromESLintConfig reads the ESLint configuration at path and migrates it
// into cfg. A nil cfg starts from an empty configuration.
func FromESLintConfig(path string, cfg *config.Config, opts Options) (*Migration, error) {
	raw, err := readESLintConfig(path)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		cfg = &config.Config{}
	}
	m := &Migration{Config: cfg, SourcePath: path}

	for _, key := range slices.Sorted(maps.Keys(raw)) {
		value := raw[key]
		switch key {
		case "rules":
			m.rules(cfg, asMap(value), opts)
		case "overrides":
			m.overrides(cfg, value, opts)
		case "ignorePatterns":
			m.ignorePatterns(cfg, stringList(value))
		case "globals":
			m.globals(cfg, asMap(value))
		case "extends":
			for _, ext := range stringList(value) {
				m.warnf("extends %q is not migrated; migrate the rules of the shared configuration manually", ext)
			}
		case "env":
			m.warnf("env is not migrated; list the globals of the environment in javascript.globals")
		default:
			if !ignoredKeys[key] {
				m.warnf("unknown key %q; skipping", key)
			}
		}
	}
	return m, nil
}

func readESLintConfig(path string) (map[string]any, error) {
	base := filepath.Base(path)
	if slices.Contains(eslintJSConfigFiles, base) || isJavaScript(base) {
		return nil, fmt.Errorf("%w: %s", ErrJavaScriptConfig, base)
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	var raw map[string]any
	switch strings.ToLower(filepath.Ext(base)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(content, &raw); err != nil {
			return nil, fmt.Errorf("parse YAML: %w", err)
		}
	case ".json":
		if err := jsonc.Unmarshal(content, jsonc.JSONC, &raw); err != nil {
			return nil, fmt.Errorf("parse JSON: %w", err)
		}
	default:
		// .eslintrc holds either JSON or YAML.
		if jsonErr := jsonc.Unmarshal(content, jsonc.JSONC, &raw); jsonErr != nil {
			raw = nil
			if err := yaml.Unmarshal(content, &raw); err != nil {
				return nil, fmt.Errorf("parse %s: %w", base, errors.Join(jsonErr, err))
			}
		}
	}

	if base == "package.json" {
		nested, ok := raw["eslintConfig"].(map[string]any)
		if !ok {
			return nil, fmt.Errorf("%w: package.json has no eslintConfig", ErrNoESLintConfig)
		}
		raw = nested
	}
	return raw, nil
}

func isJavaScript(name string) bool {
	switch filepath.Ext(name) {
	case ".js", ".cjs", ".mjs", ".ts", ".cts", ".mts":
		return true
	default:
		return false
	}
}

func (m *Migration) warnf(format string, args ...any) {
	m.Warnings = append(m.Warnings, fmt.Sprintf(format, args...))
}

func (m *Migration) rules(cfg *config.Config, rules map[string]any, opts Options) {
	for _, name := range slices.Sorted(maps.Keys(rules)) {
		level, withOptions, ok := ParseLevel(rules[name])
		if !ok {
			m.warnf("rule %s: unrecognized severity %v; skipping", name, rules[name])
			continue
		}
		res := Migrate(cfg, name, level, opts)
		switch {
		case res.Applied:
			m.Applied++
			if withOptions {
				m.warnf("rule %s: options are not migrated", name)
			}
		case !res.Known:
			m.Unsupported = append(m.Unsupported, name)
		case res.HasInspired:
			m.warnf("rule %s maps to %s/%s which only approximates it; pass --include-inspired to migrate it",
				name, res.Group, res.Rule)
		default:
			m.warnf("rule %s maps to the nursery rule %s; pass --include-nursery to migrate it", name, res.Rule)
		}
	}
}

func (m *Migration) overrides(cfg *config.Config, value any, opts Options) {
	list, _ := value.([]any)
	for i, item := range list {
		entry := asMap(item)
		includes := stringList(entry["files"])
		if len(includes) == 0 {
			m.warnf("overrides[%d] has no files; skipping", i)
			continue
		}
		for _, excluded := range stringList(entry["excludedFiles"]) {
			includes = append(includes, "!"+excluded)
		}

		scoped := &config.Config{}
		m.rules(scoped, asMap(entry["rules"]), opts)
		if scoped.Linter.Rules.IsZero() {
			continue
		}
		cfg.Overrides = append(cfg.Overrides, config.Override{
			Includes: includes,
			Linter:   &config.Linter{Rules: scoped.Linter.Rules},
		})
	}
}

// ignorePatterns turns ignore patterns into negated includes. A negated
// ESLint pattern re-includes files and is kept positive.
func (m *Migration) ignorePatterns(cfg *config.Config, patterns []string) {
	if len(patterns) == 0 {
		return
	}
	if len(cfg.Files.Includes) == 0 {
		cfg.Files.Includes = []string{"**"}
	}
	for _, p := range patterns {
		if rest, ok := strings.CutPrefix(p, "!"); ok {
			cfg.Files.Includes = append(cfg.Files.Includes, strings.TrimPrefix(rest, "/"))
			continue
		}
		p = strings.TrimPrefix(p, "/")
		if !strings.Contains(strings.TrimSuffix(p, "/"), "/") && !strings.HasPrefix(p, "**") {
			p = "**/" + p
		}
		cfg.Files.Includes = append(cfg.Files.Includes, "!"+strings.TrimSuffix(p, "/"))
	}
}

func (m *Migration) globals(cfg *config.Config, globals map[string]any) {
	seen := make(map[string]bool, len(cfg.JavaScript.Globals))
	for _, g := range cfg.JavaScript.Globals {
		seen[g] = true
	}
	for _, name := range slices.Sorted(maps.Keys(globals)) {
		switch v := globals[name].(type) {
		case bool:
			// true and false both declare the global; false only makes it read-only.
		case string:
			if v == "off" {
				continue
			}
		}
		if !seen[name] {
			seen[name] = true
			cfg.JavaScript.Globals = append(cfg.JavaScript.Globals, name)
		}
	}
}

// ParseLevel converts an ESLint rule severity: 0, 1 or 2, "off", "warn" or
// "error", or an array whose first element is one of those. withOptions is
// set when the array carries rule options.
func ParseLevel(value any) (level config.RulePlainConfiguration, withOptions, ok bool) {
	switch v := value.(type) {
	case []any:
		if len(v) == 0 {
			return "", false, false
		}
		level, _, ok = ParseLevel(v[0])
		return level, len(v) > 1, ok
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "off", "0":
			return config.RuleOff, false, true
		case "warn", "1":
			return config.RuleWarn, false, true
		case "error", "2":
			return config.RuleError, false, true
		}
	case int:
		return numericLevel(float64(v))
	case uint64:
		return numericLevel(float64(v))
	case float64:
		return numericLevel(v)
	}
	return "", false, false
}

func numericLevel(n float64) (config.RulePlainConfiguration, bool, bool) {
	switch n {
	case 0:
		return config.RuleOff, false, true
	case 1:
		return config.RuleWarn, false, true
	case 2:
		return config.RuleError, false, true
	}
	return "", false, false
}

func asMap(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

func stringList(v any) []string {
	switch x := v.(type) {
	case string:
		return []string{x}
	case []any:
		out := make([]string, 0, len(x))
		for _, item := range x {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}
