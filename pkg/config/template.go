package config

import (
	"encoding/json"
	"fmt"
	"slices"
)

// SchemaURL is written to the $schema field of generated configurations.
const SchemaURL = "https://github.com/yaklabco/gobiome/schema.json"

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full lists every rule with its default level.
	// If false, generates a minimal template.
	Full bool

	// IncludeRules is a list of rule names to include in a full template.
	// If empty, all rules are included.
	IncludeRules []string
}

// RuleSummary contains rule metadata for template generation.
type RuleSummary struct {
	Group       string
	Name        string
	Description string
	Recommended bool
	Level       RulePlainConfiguration
	Fixable     bool
}

// RuleSummaryProvider is a function that returns rule information.
// This allows decoupling from the analyzer package to avoid circular imports.
type RuleSummaryProvider func() []RuleSummary

// DefaultRuleSummaryProvider is set by the rules package during init.
//
//nolint:gochecknoglobals // Intentional extension point for rule info.
var DefaultRuleSummaryProvider RuleSummaryProvider

// DefaultConfig returns the configuration written by `init`.
func DefaultConfig() *Config {
	return &Config{
		Schema: SchemaURL,
		VCS: VCS{
			Enabled:       Bool(false),
			ClientKind:    "git",
			UseIgnoreFile: Bool(false),
		},
		Files: Files{IgnoreUnknown: Bool(false)},
		Formatter: Formatter{
			FormatterSettings: FormatterSettings{Enabled: Bool(true), IndentStyle: IndentTab},
		},
		Linter: Linter{
			Enabled: Bool(true),
			Rules:   Rules{Recommended: Bool(true)},
		},
		Assist: Assist{
			Enabled: Bool(true),
			Actions: AssistActions{Source: map[string]RuleConfiguration{
				"organizeImports": {Level: RuleOn},
			}},
		},
		JavaScript: JavaScript{Formatter: JSFormatter{QuoteStyle: "double"}},
	}
}

// GenerateTemplate creates a biome.json document.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	cfg := DefaultConfig()
	if opts.Full {
		for _, r := range ruleSummaries(opts.IncludeRules) {
			level := r.Level
			if level == "" {
				level = RuleOn
			}
			if !r.Recommended {
				level = RuleOff
			}
			cfg.Linter.Rules.SetLevel(r.Group, r.Name, level)
		}
	}

	out, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal JSON: %w", err)
	}
	return append(out, '\n'), nil
}

// ruleSummaries returns the registered rules, filtered by name when include is set.
func ruleSummaries(include []string) []RuleSummary {
	if DefaultRuleSummaryProvider == nil {
		return nil
	}
	rules := DefaultRuleSummaryProvider()
	if len(include) == 0 {
		return rules
	}
	return slices.DeleteFunc(slices.Clone(rules), func(r RuleSummary) bool {
		return !slices.Contains(include, r.Name) && !slices.Contains(include, r.Group+"/"+r.Name)
	})
}
