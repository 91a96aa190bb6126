package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/yaklabco/gobiome/pkg/analyzer"
	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/vcs"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "linter.rules.style.noVar").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Line is the line number in the config file (if known).
	Line int
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string

	if e.FilePath != "" {
		if e.Line > 0 {
			parts = append(parts, fmt.Sprintf("%s:%d", e.FilePath, e.Line))
		} else {
			parts = append(parts, e.FilePath)
		}
	}

	if e.Field != "" {
		parts = append(parts, e.Field)
	}

	parts = append(parts, e.Message)

	return strings.Join(parts, ": ")
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues (e.g., unknown rules).
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

func (r *ValidationResult) errorf(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warnf(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// Validate checks a resolved configuration for errors and warnings. The
// shape of configuration files is checked against the schema when they are
// read; Validate covers what the schema cannot know, such as the rules in
// registry and the values set from flags and the environment.
func Validate(cfg *config.Config, registry *analyzer.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}
	if registry == nil {
		registry = analyzer.DefaultRegistry
	}

	if cfg.Format != "" && !cfg.Format.IsValid() {
		result.errorf("reporter", cfg.Format,
			"invalid reporter %q; must be one of: default, table, json, json-pretty, sarif, diff, summary", cfg.Format)
	}

	switch cfg.DiagnosticLevel {
	case "", config.RuleInfo, config.RuleWarn, config.RuleError:
	default:
		result.errorf("diagnostic-level", cfg.DiagnosticLevel,
			"invalid diagnostic level %q; must be one of: info, warn, error", cfg.DiagnosticLevel)
	}

	if cfg.Jobs < 0 {
		result.errorf("threads", cfg.Jobs, "threads must be >= 0 (0 means auto)")
	}
	if cfg.MaxDiagnostics < 0 {
		result.errorf("max-diagnostics", cfg.MaxDiagnostics, "max-diagnostics must be >= 0 (0 means unlimited)")
	}
	if cfg.Files.MaxSize < 0 {
		result.errorf("files.maxSize", cfg.Files.MaxSize, "maxSize must be positive")
	}

	if kind := cfg.VCS.ClientKind; kind != "" && kind != vcs.ClientGit {
		result.errorf("vcs.clientKind", kind, "unsupported VCS client %q; must be %q", kind, vcs.ClientGit)
	}
	if cfg.Changed && cfg.Staged {
		result.errorf("staged", true, "--changed and --staged cannot be used together")
	}

	switch cfg.Formatter.IndentStyle {
	case "", config.IndentTab, config.IndentSpace:
	default:
		result.errorf("formatter.indentStyle", cfg.Formatter.IndentStyle,
			"invalid indent style %q; must be one of: tab, space", cfg.Formatter.IndentStyle)
	}

	validatePatterns(result, "files.includes", cfg.Files.Includes)
	validatePatterns(result, "linter.includes", cfg.Linter.Includes)
	validatePatterns(result, "formatter.includes", cfg.Formatter.Includes)

	validateRules(result, "linter.rules", cfg.Linter.Rules, registry)
	validateAssist(result, cfg.Assist, registry)
	validateSelectors(result, "only", cfg.Only, registry)
	validateSelectors(result, "skip", cfg.Skip, registry)

	for i, o := range cfg.Overrides {
		prefix := fmt.Sprintf("overrides[%d]", i)
		if len(o.Includes) == 0 {
			result.warnf(prefix+".includes", nil, "override has no includes and applies to no file")
		}
		validatePatterns(result, prefix+".includes", o.Includes)
		if o.Linter != nil {
			validateRules(result, prefix+".linter.rules", o.Linter.Rules, registry)
		}
	}

	return result
}

// validatePatterns checks that include patterns are valid globs.
func validatePatterns(result *ValidationResult, field string, patterns []string) {
	if bad, ok := config.ValidatePatterns(patterns); !ok {
		result.errorf(field, bad, "invalid glob pattern %q", bad)
	}
}

// validateRules warns about unknown groups and rules, and about rules
// configured under the wrong group.
func validateRules(result *ValidationResult, field string, rules config.Rules, registry *analyzer.Registry) {
	for _, group := range slices.Sorted(maps.Keys(rules.Groups)) {
		g := rules.Groups[group]
		if !analyzer.IsLintGroup(group) {
			result.warnf(field+"."+group, group, "unknown rule group %q; it will be ignored", group)
			continue
		}
		if g == nil {
			continue
		}
		for _, name := range slices.Sorted(maps.Keys(g.Rules)) {
			ruleField := field + "." + group + "." + name
			rule, ok := registry.Get(group + "/" + name)
			if !ok {
				rule, ok = registry.Get(name)
			}
			if !ok {
				result.warnf(ruleField, name, "unknown rule %q; it will be ignored", name)
				continue
			}
			if meta := rule.Metadata(); meta.Group != group || meta.Kind != analyzer.KindLint {
				result.warnf(ruleField, name, "rule %q belongs to group %q; it will be ignored here", name, meta.Group)
			}
		}
	}
}

// validateAssist warns about unknown assist actions.
func validateAssist(result *ValidationResult, assist config.Assist, registry *analyzer.Registry) {
	for _, name := range slices.Sorted(maps.Keys(assist.Actions.Source)) {
		rule, ok := registry.Get(analyzer.GroupSource + "/" + name)
		if !ok || rule.Metadata().Kind != analyzer.KindAssist {
			result.warnf("assist.actions.source."+name, name, "unknown assist action %q; it will be ignored", name)
		}
	}
}

// validateSelectors checks --only and --skip values: a group, a rule name
// or group/rule.
func validateSelectors(result *ValidationResult, field string, selectors []string, registry *analyzer.Registry) {
	for _, sel := range selectors {
		trimmed := strings.TrimPrefix(strings.TrimPrefix(sel, "lint/"), "assist/")
		if registry.HasGroup(trimmed) {
			continue
		}
		if _, ok := registry.Get(trimmed); !ok {
			result.errorf(field, sel, "unknown rule or group %q", sel)
		}
	}
}
