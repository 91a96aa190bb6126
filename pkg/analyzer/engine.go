package analyzer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/syntax"
	"github.com/yaklabco/gobiome/pkg/text"
)

// CategoryPanic is the category of the diagnostic emitted when a rule panics.
const CategoryPanic = "internalError/panic"

// Errors returned by the analyzer.
var (
	ErrSemanticModel = errors.New("semantic model could not be built")
	ErrCancelled     = errors.New("analysis cancelled")
)

// Options configures an analysis run.
type Options struct {
	// Config is the configuration resolved for the file. Nil means defaults.
	Config *config.Config

	// Registry holds the candidate rules. Nil means DefaultRegistry.
	Registry *Registry

	// Filter restricts the resolved rules, for example to assists only.
	// Nil keeps every rule.
	Filter func(ResolvedRule) bool

	// SkipSuppressionDiagnostics omits the malformed and unused suppression
	// diagnostics. The fix loop sets it on intermediate passes.
	SkipSuppressionDiagnostics bool
}

// RuleAction is an action together with the finding it fixes.
type RuleAction struct {
	Action

	// Category of the diagnostic the action belongs to.
	Category string

	// Range of the diagnostic the action belongs to.
	Range text.Range
}

// Result contains the findings of one analysis run.
type Result struct {
	// Diagnostics in emission order. Category and severity are resolved.
	Diagnostics []diagnostic.Diagnostic

	// Actions attached to unsuppressed diagnostics.
	Actions []RuleAction

	// Suppressions is the suppression map of the file.
	Suppressions *SuppressionMap
}

// HasActions reports whether any action of at least the given
// applicability is available. FixUnsafe accepts safe actions too.
func (r *Result) HasActions(limit Applicability) bool {
	for _, a := range r.Actions {
		if a.Applicability != FixNone && a.Applicability <= limit {
			return true
		}
	}
	return false
}

// FixableActions returns the actions whose applicability is at most limit,
// in emission order.
func (r *Result) FixableActions(limit Applicability) []RuleAction {
	var out []RuleAction
	for _, a := range r.Actions {
		if a.Applicability != FixNone && a.Applicability <= limit {
			out = append(out, a)
		}
	}
	return out
}

// Analyze runs the rules that apply to file in a single walk over its tree.
//
// Every node is dispatched to the rules whose query matches, in
// registration order. A panicking rule is disabled for the rest of the file
// and reported with an internal diagnostic. Findings covered by a
// suppression comment are dropped together with their actions.
func Analyze(ctx context.Context, file *File, opts Options) (*Result, error) {
	registry := opts.Registry
	if registry == nil {
		registry = DefaultRegistry
	}
	cfg := opts.Config
	if cfg == nil {
		cfg = config.NewConfig()
	}

	resolved := ResolveRules(registry, cfg, file.Language.Family())
	if opts.Filter != nil {
		kept := resolved[:0]
		for _, rr := range resolved {
			if opts.Filter(rr) {
				kept = append(kept, rr)
			}
		}
		resolved = kept
	}

	root := file.Root()
	suppressions := BuildSuppressions(root, knownCategories(registry))
	result := &Result{Suppressions: suppressions}
	run := &runState{
		file:     file,
		root:     root,
		cfg:      cfg,
		registry: registry,
		model:    &fileModel{},
		result:   result,
		supp:     suppressions,
		disabled: make([]bool, len(resolved)),
	}

	if file.Language.IsJS() && needsModel(resolved) {
		if _, err := run.model.get(root); err != nil {
			run.modelFailed(resolved, err)
		}
	}

	var walkErr error
	syntax.Walk(root, func(ev syntax.WalkEvent) syntax.WalkAction {
		if ev.Leave {
			return syntax.WalkContinue
		}
		if err := ctx.Err(); err != nil {
			walkErr = fmt.Errorf("%w: %w", ErrCancelled, err)
			return syntax.WalkStop
		}
		for i := range resolved {
			if run.disabled[i] || !resolved[i].Rule.Query().Matches(ev.Node) {
				continue
			}
			run.dispatch(ctx, &resolved[i], i, ev.Node)
		}
		return syntax.WalkContinue
	})
	if walkErr != nil {
		return result, walkErr
	}

	if !opts.SkipSuppressionDiagnostics {
		result.Diagnostics = append(result.Diagnostics, suppressions.Diagnostics...)
		result.Diagnostics = append(result.Diagnostics, suppressions.Unused()...)
	}
	for i := range result.Diagnostics {
		result.Diagnostics[i].Location.Path = file.Path
		result.Diagnostics[i].Resolve(file.Lines())
	}
	return result, nil
}

// runState is the per-file bookkeeping of a single Analyze call.
type runState struct {
	file     *File
	root     *syntax.Node
	cfg      *config.Config
	registry *Registry
	model    *fileModel
	result   *Result
	supp     *SuppressionMap
	disabled []bool
}

func (s *runState) dispatch(ctx context.Context, rr *ResolvedRule, index int, node *syntax.Node) {
	rc := &RuleContext{
		Ctx:      ctx,
		File:     s.file,
		Root:     s.root,
		Config:   s.cfg,
		Rule:     rr,
		Registry: s.registry,
		model:    s.model,
	}

	signals, panicked := runRule(rc, rr.Rule, node)
	if panicked != nil {
		s.disabled[index] = true
		s.result.Diagnostics = append(s.result.Diagnostics,
			diagnostic.New(CategoryPanic, diagnostic.SeverityFatal, node.TextRange(),
				fmt.Sprintf("rule %s panicked: %v", rr.Meta.Key(), panicked)).
				WithTag(diagnostic.TagInternal))
		return
	}

	category := rr.Meta.Category()
	for _, sig := range signals {
		d := sig.Diagnostic
		d.Category = category
		d.Severity = rr.Severity
		if s.supp.Suppressed(category, d.Location.Range) {
			continue
		}
		if sig.Action != nil && rr.Fix != FixNone {
			action := *sig.Action
			action.Applicability = rr.Fix
			d = d.WithTag(diagnostic.TagFixable)
			if rr.Fix == FixUnsafe {
				d = d.WithTag(diagnostic.TagUnsafeFix)
			}
			s.result.Actions = append(s.result.Actions, RuleAction{
				Action:   action,
				Category: category,
				Range:    d.Location.Range,
			})
		}
		s.result.Diagnostics = append(s.result.Diagnostics, d)
	}
}

// runRule invokes the rule and converts a panic into a returned value.
func runRule(rc *RuleContext, rule Rule, node *syntax.Node) (signals []Signal, panicked any) {
	defer func() {
		if r := recover(); r != nil {
			signals, panicked = nil, r
		}
	}()
	return rule.Run(rc, node), nil
}

// modelFailed disables the rules that need the semantic model.
func (s *runState) modelFailed(resolved []ResolvedRule, err error) {
	skipped := false
	for i := range resolved {
		if resolved[i].Meta.Semantic {
			s.disabled[i] = true
			skipped = true
		}
	}
	if skipped {
		s.result.Diagnostics = append(s.result.Diagnostics,
			diagnostic.New(CategoryPanic, diagnostic.SeverityWarning, text.At(0),
				"semantic rules were skipped for this file").
				WithAdvice(err.Error()).
				WithTag(diagnostic.TagInternal))
	}
}

func needsModel(resolved []ResolvedRule) bool {
	for _, rr := range resolved {
		if rr.Meta.Semantic {
			return true
		}
	}
	return false
}

// knownCategories validates suppression categories against the registry.
func knownCategories(registry *Registry) KnownCategory {
	return func(category string) error {
		parts := strings.Split(category, "/")
		switch parts[0] {
		case "format", "syntax":
			if len(parts) == 1 {
				return nil
			}
		case "lint":
			switch len(parts) {
			case 1:
				return nil
			case 2:
				if IsLintGroup(parts[1]) {
					return nil
				}
			case 3:
				rule, ok := registry.Get(parts[1] + "/" + parts[2])
				if ok && rule.Metadata().Kind == KindLint {
					return nil
				}
				if IsLintGroup(parts[1]) {
					return fmt.Errorf("%w: %s", ErrUnknownRule, category)
				}
			}
		case "assist":
			switch len(parts) {
			case 1:
				return nil
			case 2:
				if parts[1] == GroupSource {
					return nil
				}
			case 3:
				if rule, ok := registry.Get(parts[1] + "/" + parts[2]); ok && rule.Metadata().Kind == KindAssist {
					return nil
				}
			}
		}
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
}
