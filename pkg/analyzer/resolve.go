package analyzer

import (
	"strings"

	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
)

// ResolvedRule pairs a Rule with its resolved configuration.
type ResolvedRule struct {
	// Rule is the underlying rule implementation.
	Rule Rule

	// Meta caches Rule.Metadata().
	Meta RuleMetadata

	// Severity is the resolved severity for diagnostics from this rule.
	Severity diagnostic.Severity

	// Fix is the applicability of the rule's actions after configuration.
	Fix Applicability

	// Options holds the rule-specific options (may be nil).
	Options map[string]any
}

// ResolveRules determines which rules run on a file of the given language
// family. The order of the result is registration order.
//
// The level of a rule is decided from its default, then the top-level and
// group `recommended` and `all` flags, then the rule entry. Only and Skip
// from the configuration override all of them.
func ResolveRules(registry *Registry, cfg *config.Config, family string) []ResolvedRule {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	var resolved []ResolvedRule
	for _, rule := range registry.Rules() {
		meta := rule.Metadata()
		if meta.Language != "" && meta.Language != family {
			continue
		}
		if rr, ok := resolveRule(rule, meta, cfg); ok {
			resolved = append(resolved, rr)
		}
	}
	return resolved
}

// resolveRule resolves the configuration for a single rule.
func resolveRule(rule Rule, meta RuleMetadata, cfg *config.Config) (ResolvedRule, bool) {
	rr := ResolvedRule{
		Rule:     rule,
		Meta:     meta,
		Severity: meta.Severity,
		Fix:      meta.Fix,
	}

	var (
		rc      config.RuleConfiguration
		hasRC   bool
		enabled bool
	)
	switch meta.Kind {
	case KindAssist:
		if !cfg.AssistEnabled() {
			return rr, false
		}
		rc, hasRC = cfg.Assist.Actions.Source[meta.Name]
		enabled = meta.Recommended
	default:
		if !cfg.LinterEnabled() {
			return rr, false
		}
		rc, hasRC = cfg.Linter.Rules.Rule(meta.Group, meta.Name)
		enabled = lintEnabledByFlags(meta, cfg.Linter.Rules)
	}

	if hasRC {
		sev, on := rc.Level.Severity(meta.Severity)
		enabled = on
		if on {
			rr.Severity = sev
		}
		rr.Options = rc.Options
		rr.Fix = fixOverride(meta.Fix, rc.Fix)
	}

	if len(cfg.Only) > 0 {
		enabled = matchesAny(meta, cfg.Only)
	}
	if matchesAny(meta, cfg.Skip) {
		enabled = false
	}
	return rr, enabled
}

// lintEnabledByFlags applies the recommended and all flags.
func lintEnabledByFlags(meta RuleMetadata, rules config.Rules) bool {
	enabled := meta.Recommended
	if rules.Recommended != nil && !*rules.Recommended {
		enabled = false
	}
	if rules.All != nil {
		enabled = *rules.All && meta.Group != GroupNursery
	}
	g := rules.Group(meta.Group)
	if g == nil {
		return enabled
	}
	if g.Recommended != nil {
		enabled = *g.Recommended && meta.Recommended
	}
	if g.All != nil {
		enabled = *g.All
	}
	return enabled
}

func fixOverride(def Applicability, kind config.FixKind) Applicability {
	if def == FixNone {
		return FixNone
	}
	switch kind {
	case config.FixNone:
		return FixNone
	case config.FixSafe:
		return FixSafe
	case config.FixUnsafe:
		return FixUnsafe
	}
	return def
}

// matchesAny reports whether a selector names the rule or its group. A
// selector is "group", "group/name", "lint/group/name" or a bare rule name.
func matchesAny(meta RuleMetadata, selectors []string) bool {
	for _, sel := range selectors {
		sel = strings.TrimPrefix(strings.TrimPrefix(sel, "lint/"), "assist/")
		if sel == meta.Group || sel == meta.Key() || sel == meta.Name {
			return true
		}
	}
	return false
}
