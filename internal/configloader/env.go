package configloader

import (
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/yaklabco/gobiome/pkg/config"
)

// envVarPrefix is the prefix for all gobiome environment variables.
const envVarPrefix = "BIOME_"

// EnvConfigPath names the variable holding the configuration path used
// when --config-path is not given.
const EnvConfigPath = envVarPrefix + "CONFIG_PATH"

// envFieldType represents the type of a configuration field.
type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSize
	envTypeSlice
)

// envMapping defines environment variable to config field mappings.
type envMapping struct {
	field string
	typ   envFieldType
	help  string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"REPORTER":            {field: "reporter", typ: envTypeString, help: "Reporter: default, table, json, json-pretty, sarif, diff or summary"},
	"DIAGNOSTIC_LEVEL":    {field: "diagnostic_level", typ: envTypeString, help: "Lowest level printed: info, warn or error"},
	"MAX_DIAGNOSTICS":     {field: "max_diagnostics", typ: envTypeInt, help: "Diagnostics printed per run (0 = unlimited)"},
	"ERROR_ON_WARNINGS":   {field: "error_on_warnings", typ: envTypeBool, help: "Fail the run on warnings: true or false"},
	"THREADS":             {field: "threads", typ: envTypeInt, help: "Number of parallel workers (0 = auto)"},
	"FILES_MAX_SIZE":      {field: "files.maxSize", typ: envTypeSize, help: "Largest file processed, e.g. 1MiB or 500kB"},
	"VCS_ENABLED":         {field: "vcs.enabled", typ: envTypeBool, help: "Enable the VCS integration: true or false"},
	"VCS_USE_IGNORE_FILE": {field: "vcs.useIgnoreFile", typ: envTypeBool, help: "Honor .gitignore files: true or false"},
	"VCS_ROOT":            {field: "vcs.root", typ: envTypeString, help: "Root of the repository"},
	"VCS_DEFAULT_BRANCH":  {field: "vcs.defaultBranch", typ: envTypeString, help: "Base branch for --changed"},
	"INDENT_STYLE":        {field: "formatter.indentStyle", typ: envTypeString, help: "Indentation: tab or space"},
	"INDENT_WIDTH":        {field: "formatter.indentWidth", typ: envTypeInt, help: "Spaces per indentation level"},
	"LINE_WIDTH":          {field: "formatter.lineWidth", typ: envTypeInt, help: "Preferred maximum line width"},
	"ONLY":                {field: "only", typ: envTypeSlice, help: "Comma-separated rules or groups to run exclusively"},
	"SKIP":                {field: "skip", typ: envTypeSlice, help: "Comma-separated rules or groups to skip"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with BIOME_ (e.g., BIOME_REPORTER).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for _, envSuffix := range slices.Sorted(maps.Keys(envMappings)) {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, envMappings[envSuffix], value, envVar); err != nil {
			return err
		}
	}

	return nil
}

// applyEnvValue applies a single environment variable value to the config.
func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		return setIntField(cfg, mapping.field, i)
	case envTypeSize:
		size, err := humanize.ParseBytes(value)
		if err != nil {
			return fmt.Errorf("invalid size for %s: %q: %w", envVar, value, err)
		}
		cfg.Files.MaxSize = int64(size) //nolint:gosec // Sizes above MaxInt64 are not meaningful.
		return nil
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	if value == "" {
		return nil
	}

	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// setStringField sets a string field on the config by field path.
func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "reporter":
		cfg.Format = config.OutputFormat(value)
	case "diagnostic_level":
		cfg.DiagnosticLevel = config.RulePlainConfiguration(value)
	case "vcs.root":
		cfg.VCS.Root = value
	case "vcs.defaultBranch":
		cfg.VCS.DefaultBranch = value
	case "formatter.indentStyle":
		cfg.Formatter.IndentStyle = config.IndentStyle(value)
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

// setBoolField sets a boolean field on the config by field path.
func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "error_on_warnings":
		cfg.ErrorOnWarnings = value
	case "vcs.enabled":
		cfg.VCS.Enabled = config.Bool(value)
	case "vcs.useIgnoreFile":
		cfg.VCS.UseIgnoreFile = config.Bool(value)
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

// setIntField sets an integer field on the config by field path.
func setIntField(cfg *config.Config, field string, value int) error {
	switch field {
	case "max_diagnostics":
		cfg.MaxDiagnostics = value
	case "threads":
		cfg.Jobs = value
	case "formatter.indentWidth":
		cfg.Formatter.IndentWidth = value
	case "formatter.lineWidth":
		cfg.Formatter.LineWidth = value
	default:
		return fmt.Errorf("unknown integer field: %s", field)
	}
	return nil
}

// setSliceField sets a slice field on the config by field path.
func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "only":
		cfg.Only = value
	case "skip":
		cfg.Skip = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// GetEnvVarName returns the full environment variable name for a config field.
func GetEnvVarName(field string) string {
	for suffix, mapping := range envMappings {
		if mapping.field == field {
			return envVarPrefix + suffix
		}
	}
	return ""
}

// ListEnvVars returns all supported environment variables with their
// descriptions.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envMappings)+1)
	for suffix, mapping := range envMappings {
		out[envVarPrefix+suffix] = mapping.help
	}
	out[EnvConfigPath] = "Path to biome.json or the directory containing it"
	return out
}
