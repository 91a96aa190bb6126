// Package migrate converts the rule configuration of other linters into
// gobiome configuration.
package migrate

import (
	"github.com/yaklabco/gobiome/pkg/config"
)

const nursery = "nursery"

// Options control which mappings are applied.
type Options struct {
	// IncludeNursery applies mappings to rules that are not stable yet.
	IncludeNursery bool
	// IncludeInspired applies mappings to rules that only approximate the
	// foreign rule.
	IncludeInspired bool
}

// Result reports what Migrate did with one foreign rule.
type Result struct {
	// Applied is set when the configuration was updated.
	Applied bool
	// HasInspired is set when the mapping was skipped because the native
	// rule is only inspired by the foreign one.
	HasInspired bool
	// Known is set when the foreign rule has a native counterpart.
	Known bool
	Group string
	Rule  string
}

// Migrate enables the native equivalent of foreignRule in cfg with the
// given level. Unknown rules and skipped mappings leave cfg unchanged.
func Migrate(cfg *config.Config, foreignRule string, level config.RulePlainConfiguration, opts Options) Result {
	target, ok := Lookup(foreignRule)
	if !ok {
		return Result{}
	}
	res := Result{Known: true, Group: target.Group, Rule: target.Rule}
	if target.Group == nursery && !opts.IncludeNursery {
		return res
	}
	if target.Inspired && !opts.IncludeInspired {
		res.HasInspired = true
		return res
	}
	cfg.Linter.Rules.SetLevel(target.Group, target.Rule, level)
	res.Applied = true
	return res
}
