package analyzer

import (
	"context"
	"fmt"

	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/lang"
	"github.com/yaklabco/gobiome/pkg/mutation"
	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/semantic"
	"github.com/yaklabco/gobiome/pkg/syntax"
	"github.com/yaklabco/gobiome/pkg/text"
)

// File is a parsed document handed to the analyzer.
type File struct {
	Path     string
	Language lang.Language
	Source   string
	Parse    *parser.Parse

	root  *syntax.Node
	lines *text.LineIndex
}

// NewFile wraps a parse result.
func NewFile(path string, language lang.Language, src string, parse *parser.Parse) *File {
	return &File{Path: path, Language: language, Source: src, Parse: parse}
}

// Root returns the red root of the file. The same root is returned on every
// call so that actions built by different rules can be committed together.
func (f *File) Root() *syntax.Node {
	if f.root == nil {
		f.root = f.Parse.Root()
	}
	return f.root
}

// Lines returns the line index of the source.
func (f *File) Lines() *text.LineIndex {
	if f.lines == nil {
		f.lines = text.NewLineIndex(f.Source)
	}
	return f.lines
}

// fileModel is the lazily built semantic model shared by the rules of a file.
type fileModel struct {
	built  bool
	model  *semantic.Model
	failed error
}

func (m *fileModel) get(root *syntax.Node) (model *semantic.Model, err error) {
	if m.built {
		return m.model, m.failed
	}
	m.built = true
	defer func() {
		if r := recover(); r != nil {
			m.model = nil
			m.failed = fmt.Errorf("%w: %v", ErrSemanticModel, r)
			model, err = nil, m.failed
		}
	}()
	m.model = semantic.Build(root)
	return m.model, nil
}

// RuleContext provides all context needed by a rule to inspect a node.
//
// RuleContext stores context.Context as a field (Ctx) rather than passing it
// to Run: it is a short-lived parameter object created per file and rule,
// and Cancelled exposes the cancellation state.
type RuleContext struct {
	// Ctx is the context for cancellation and timeouts.
	Ctx context.Context

	// File is the document being analyzed.
	File *File

	// Root is the red root (convenience alias for File.Root()).
	Root *syntax.Node

	// Config is the configuration resolved for the file.
	Config *config.Config

	// Rule is the resolved rule being run.
	Rule *ResolvedRule

	// Registry provides access to the rule registry.
	Registry *Registry

	model *fileModel
}

// Cancelled returns true if the context has been cancelled.
func (rc *RuleContext) Cancelled() bool {
	select {
	case <-rc.Ctx.Done():
		return true
	default:
		return false
	}
}

// Model returns the semantic model of the file, building it on first use.
// It returns nil when the file is not JavaScript or the model failed.
func (rc *RuleContext) Model() *semantic.Model {
	if rc.model == nil || !rc.File.Language.IsJS() {
		return nil
	}
	model, err := rc.model.get(rc.Root)
	if err != nil {
		return nil
	}
	return model
}

// Globals returns the configured global names for JavaScript files.
func (rc *RuleContext) Globals() []string {
	if rc.Config == nil {
		return nil
	}
	return rc.Config.JavaScript.Globals
}

// NewBatch starts a mutation against the file root.
func (rc *RuleContext) NewBatch() *mutation.Batch {
	return mutation.NewBatch(rc.Root)
}

// Diagnostic starts a finding at r. Category and severity are filled by the
// engine from the resolved rule.
func (rc *RuleContext) Diagnostic(r text.Range, message string) *DiagnosticBuilder {
	return NewDiagnostic(r, message)
}

// Option returns a rule-specific option value, or the default if not set.
func (rc *RuleContext) Option(key string, defaultValue any) any {
	if rc.Rule == nil || rc.Rule.Options == nil {
		return defaultValue
	}
	if v, ok := rc.Rule.Options[key]; ok {
		return v
	}
	return defaultValue
}

// OptionInt returns a rule-specific integer option, or the default.
func (rc *RuleContext) OptionInt(key string, defaultValue int) int {
	v := rc.Option(key, defaultValue)
	switch val := v.(type) {
	case int:
		return val
	case float64:
		return int(val)
	default:
		return defaultValue
	}
}

// OptionString returns a rule-specific string option, or the default.
func (rc *RuleContext) OptionString(key string, defaultValue string) string {
	v := rc.Option(key, defaultValue)
	if s, ok := v.(string); ok {
		return s
	}
	return defaultValue
}

// OptionBool returns a rule-specific boolean option, or the default.
func (rc *RuleContext) OptionBool(key string, defaultValue bool) bool {
	v := rc.Option(key, defaultValue)
	if b, ok := v.(bool); ok {
		return b
	}
	return defaultValue
}

// OptionStringSlice returns a rule-specific string slice option, or the default.
func (rc *RuleContext) OptionStringSlice(key string, defaultValue []string) []string {
	v := rc.Option(key, defaultValue)
	if slice, ok := v.([]string); ok {
		return slice
	}
	// JSON decoding produces []any.
	if iface, ok := v.([]any); ok {
		result := make([]string, 0, len(iface))
		for _, item := range iface {
			if s, ok := item.(string); ok {
				result = append(result, s)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return defaultValue
}
