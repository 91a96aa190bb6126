package rules

import (
	"github.com/yaklabco/gobiome/pkg/analyzer"
	"github.com/yaklabco/gobiome/pkg/config"
)

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *analyzer.Registry) {
	// a11y
	registry.Register(NewUseAltTextRule())

	// correctness
	registry.Register(NewNoUnreachableRule())
	registry.Register(NewNoUnusedVariablesRule())
	registry.Register(NewNoUndeclaredVariablesRule())
	registry.Register(NewNoConstAssignRule())

	// suspicious
	registry.Register(NewNoDebuggerRule())
	registry.Register(NewNoCompareNegZeroRule())
	registry.Register(NewNoDoubleEqualsRule())
	registry.Register(NewNoExplicitAnyRule())
	registry.Register(NewNoConsoleRule())
	registry.Register(NewNoDuplicateObjectKeysRule())
	registry.Register(NewNoDuplicatePropertiesRule())
	registry.Register(NewNoImportantInKeyframeRule())
	registry.Register(NewNoEmptyBlockRule())

	// style
	registry.Register(NewNoVarRule())
	registry.Register(NewUseConstRule())
	registry.Register(NewUseDeprecatedReasonRule())

	// nursery
	registry.Register(NewNoImgElementRule())

	// assists
	registry.Register(NewOrganizeImportsAssist())
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(analyzer.DefaultRegistry)
	config.DefaultRuleSummaryProvider = analyzer.DefaultRegistry.RuleSummaries
}
