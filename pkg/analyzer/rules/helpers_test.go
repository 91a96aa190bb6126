package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/analyzer"
	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/lang"
	"github.com/yaklabco/gobiome/pkg/mutation"
)

// ruleCase runs a handful of rules over one source.
type ruleCase struct {
	language lang.Language
	src      string
	options  map[string]any
}

// analyzeWith enables exactly the given rules and analyzes src.
func analyzeWith(t *testing.T, tc ruleCase, rules ...analyzer.Rule) (*analyzer.File, *analyzer.Result) {
	t.Helper()

	registry := analyzer.NewRegistry()
	cfg := config.NewConfig()
	for _, rule := range rules {
		registry.Register(rule)
		meta := rule.Metadata()
		rc := config.RuleConfiguration{Level: config.RuleOn, Options: tc.options}
		if meta.Kind == analyzer.KindAssist {
			if cfg.Assist.Actions.Source == nil {
				cfg.Assist.Actions.Source = make(map[string]config.RuleConfiguration)
			}
			cfg.Assist.Actions.Source[meta.Name] = rc
			continue
		}
		cfg.Linter.Rules.EnsureGroup(meta.Group).Rules[meta.Name] = rc
	}

	language := tc.language
	if language == lang.Unknown {
		language = lang.JavaScript
	}
	parse, err := lang.Parse(language, "", tc.src)
	require.NoError(t, err)

	file := analyzer.NewFile("test", language, tc.src, parse)
	result, err := analyzer.Analyze(context.Background(), file, analyzer.Options{Config: cfg, Registry: registry})
	require.NoError(t, err)
	return file, result
}

// lintDiagnostics drops the suppression bookkeeping diagnostics.
func lintDiagnostics(result *analyzer.Result) []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	for _, d := range result.Diagnostics {
		if d.Category != analyzer.CategorySuppressionUnused && d.Category != analyzer.CategorySuppressionParse {
			out = append(out, d)
		}
	}
	return out
}

// applyActions commits every action up to limit in one batch.
func applyActions(t *testing.T, file *analyzer.File, result *analyzer.Result, limit analyzer.Applicability) string {
	t.Helper()

	batch := mutation.NewBatch(file.Root())
	for _, a := range result.FixableActions(limit) {
		batch.Merge(a.Mutation)
	}
	green, err := batch.Commit()
	require.NoError(t, err)
	return green.Text()
}
