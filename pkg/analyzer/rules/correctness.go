package rules

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yaklabco/gobiome/pkg/analyzer"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/semantic"
	"github.com/yaklabco/gobiome/pkg/syntax"
	"github.com/yaklabco/gobiome/pkg/text"
)

// NoUnreachableRule reports statements that can never run.
type NoUnreachableRule struct {
	analyzer.BaseRule
}

// NewNoUnreachableRule creates the noUnreachable rule.
func NewNoUnreachableRule() *NoUnreachableRule {
	return &NoUnreachableRule{
		BaseRule: analyzer.NewBaseRule(analyzer.RuleMetadata{
			Name:        "noUnreachable",
			Group:       analyzer.GroupCorrectness,
			Language:    "javascript",
			Recommended: true,
			Severity:    diagnostic.SeverityError,
			Semantic:    true,
			Sources:     []analyzer.RuleSource{{Plugin: "eslint", Name: "no-unreachable"}},
			Description: "Disallow unreachable code.",
			Docs: "Disallow unreachable code.\n\n" +
				"Statements after `return`, `throw`, `break` or `continue` never run.\n\n" +
				"## Examples\n\n### Invalid\n\n```js\nfunction f() {\n  return 1;\n  g();\n}\n```\n",
		}, analyzer.QueryKinds(
			syntax.JsModule, syntax.JsFunctionDeclaration, syntax.JsFunctionExpression,
			syntax.JsArrowFunctionExpression, syntax.JsMethodClassMember, syntax.JsMethodObjectMember,
			syntax.JsGetterClassMember, syntax.JsSetterClassMember, syntax.JsGetterObjectMember,
			syntax.JsSetterObjectMember, syntax.JsConstructorClassMember,
		)),
	}
}

// Run reports each run of consecutive unreachable statements once.
func (r *NoUnreachableRule) Run(ctx *analyzer.RuleContext, node *syntax.Node) []analyzer.Signal {
	model := ctx.Model()
	if model == nil {
		return nil
	}
	if node.Kind() == syntax.JsArrowFunctionExpression && node.FindNode(syntax.JsFunctionBody) == nil {
		return nil
	}

	var (
		signals []analyzer.Signal
		start   *syntax.Node
		last    *syntax.Node
	)
	flush := func() {
		if start == nil {
			return
		}
		span := start.TextRange().Cover(last.TextRange())
		signals = append(signals, ctx.Diagnostic(span, "This code will never be reached ...").
			WithTag(diagnostic.TagUnnecessary).
			Build())
		start, last = nil, nil
	}

	for _, stmt := range model.ControlFlowOf(node).UnreachableStatements() {
		if hoisted(stmt) {
			continue
		}
		if last != nil && last.Parent() != nil && stmt.Parent() != nil &&
			last.Parent().Same(stmt.Parent()) && last.Index()+1 == stmt.Index() {
			last = stmt
			continue
		}
		flush()
		start, last = stmt, stmt
	}
	flush()
	return signals
}

// hoisted reports declarations that take effect without being executed.
func hoisted(stmt *syntax.Node) bool {
	switch stmt.Kind() {
	case syntax.JsFunctionDeclaration, syntax.TsTypeAliasDeclaration, syntax.TsInterfaceDeclaration,
		syntax.JsEmptyStatement:
		return true
	}
	return false
}

// NoUnusedVariablesRule reports bindings that are never read.
type NoUnusedVariablesRule struct {
	analyzer.BaseRule
}

// NewNoUnusedVariablesRule creates the noUnusedVariables rule.
func NewNoUnusedVariablesRule() *NoUnusedVariablesRule {
	return &NoUnusedVariablesRule{
		BaseRule: analyzer.NewBaseRule(analyzer.RuleMetadata{
			Name:        "noUnusedVariables",
			Group:       analyzer.GroupCorrectness,
			Language:    "javascript",
			Severity:    diagnostic.SeverityWarning,
			Fix:         analyzer.FixUnsafe,
			Semantic:    true,
			Sources:     []analyzer.RuleSource{{Plugin: "eslint", Name: "no-unused-vars"}},
			Description: "Disallow unused variables.",
			Docs: "Disallow unused variables.\n\n" +
				"Bindings whose name starts with an underscore, exported bindings and imports are ignored.\n\n" +
				"## Examples\n\n### Invalid\n\n```js\nlet a = 4;\na++;\n```\n\n### Valid\n\n```js\nfunction f(_unused) {}\n```\n",
		}, analyzer.QueryKinds(syntax.JsIdentifierBinding)),
	}
}

// Run reports the declaration of an unused binding.
func (r *NoUnusedVariablesRule) Run(ctx *analyzer.RuleContext, node *syntax.Node) []analyzer.Signal {
	model := ctx.Model()
	if model == nil {
		return nil
	}
	b, ok := model.BindingOf(node)
	if !ok || !b.Decl.Same(node) || !b.IsUnused() || b.Exported || strings.HasPrefix(b.Name, "_") {
		return nil
	}
	switch b.Kind {
	case semantic.BindingImport, semantic.BindingTypeParameter:
		return nil
	case semantic.BindingParameter:
		if ctx.OptionBool("ignoreParameters", false) {
			return nil
		}
	}

	kind := "variable"
	switch b.Kind {
	case semantic.BindingFunction:
		kind = "function"
	case semantic.BindingClass:
		kind = "class"
	case semantic.BindingParameter:
		kind = "parameter"
	case semantic.BindingTypeAlias, semantic.BindingInterface:
		kind = "type"
	}

	builder := ctx.Diagnostic(node.TextRange(), fmt.Sprintf("This %s is unused.", kind)).
		WithNote("Unused variables usually are result of incomplete refactoring, typos and other source of bugs.").
		WithTag(diagnostic.TagUnnecessary)
	if len(b.References) == 0 {
		tok := b.Token()
		batch := ctx.NewBatch()
		batch.ReplaceToken(tok, replaceKeyword(tok, tok.Kind(), "_"+b.Name))
		builder.WithAction(fmt.Sprintf("If this is intentional, prepend %s with an underscore.", b.Name), batch)
	}
	return builder.Signals()
}

// NoUndeclaredVariablesRule reports references to names declared nowhere.
type NoUndeclaredVariablesRule struct {
	analyzer.BaseRule
}

// NewNoUndeclaredVariablesRule creates the noUndeclaredVariables rule.
func NewNoUndeclaredVariablesRule() *NoUndeclaredVariablesRule {
	return &NoUndeclaredVariablesRule{
		BaseRule: analyzer.NewBaseRule(analyzer.RuleMetadata{
			Name:        "noUndeclaredVariables",
			Group:       analyzer.GroupCorrectness,
			Language:    "javascript",
			Severity:    diagnostic.SeverityError,
			Semantic:    true,
			Sources:     []analyzer.RuleSource{{Plugin: "eslint", Name: "no-undef"}},
			Description: "Prevents the usage of variables that haven't been declared inside the document.",
			Docs: "Prevents the usage of variables that haven't been declared inside the document.\n\n" +
				"Names listed in `javascript.globals` and the standard globals of browsers and Node.js are allowed. " +
				"Operands of `typeof` are not reported.\n\n" +
				"## Examples\n\n### Invalid\n\n```js\nfoobar;\n```\n",
		}, analyzer.QueryKinds(syntax.JsModule)),
	}
}

// Run reports every unresolved reference of the module.
func (r *NoUndeclaredVariablesRule) Run(ctx *analyzer.RuleContext, _ *syntax.Node) []analyzer.Signal {
	model := ctx.Model()
	if model == nil {
		return nil
	}
	configured := ctx.Globals()

	var signals []analyzer.Signal
	for _, ref := range model.Unresolved() {
		name := ref.Token.Text()
		if isBuiltinGlobal(name) || slices.Contains(configured, name) || underTypeof(ref.Token) {
			continue
		}
		signals = append(signals,
			ctx.Diagnostic(ref.Token.TextRange(), fmt.Sprintf("The %s variable is undeclared.", name)).
				WithNote("Browser and Node.js globals are recognized by default.\n"+
					"You can declare more globals in the javascript.globals configuration.").
				Build())
	}
	return signals
}

func underTypeof(tok *syntax.Token) bool {
	for n := range tok.Ancestors() {
		switch n.Kind() {
		case syntax.JsReferenceIdentifier, syntax.JsIdentifierExpression, syntax.JsParenthesizedExpression:
			continue
		case syntax.JsUnaryExpression:
			op := n.FirstToken()
			return op != nil && op.Kind() == syntax.TypeofKw
		}
		return false
	}
	return false
}

// NoConstAssignRule reports writes to const bindings.
type NoConstAssignRule struct {
	analyzer.BaseRule
}

// NewNoConstAssignRule creates the noConstAssign rule.
func NewNoConstAssignRule() *NoConstAssignRule {
	return &NoConstAssignRule{
		BaseRule: analyzer.NewBaseRule(analyzer.RuleMetadata{
			Name:        "noConstAssign",
			Group:       analyzer.GroupCorrectness,
			Language:    "javascript",
			Recommended: true,
			Severity:    diagnostic.SeverityError,
			Semantic:    true,
			Sources:     []analyzer.RuleSource{{Plugin: "eslint", Name: "no-const-assign"}},
			Description: "Prevents from having const variables being re-assigned.",
			Docs: "Prevents from having `const` variables being re-assigned.\n\n" +
				"Assigning to a constant throws a `TypeError` at runtime.\n\n" +
				"## Examples\n\n### Invalid\n\n```js\nconst a = 1;\na = 2;\n```\n",
		}, analyzer.QueryKinds(syntax.JsIdentifierBinding)),
	}
}

// Run reports each write to a const binding, labelling the declaration.
func (r *NoConstAssignRule) Run(ctx *analyzer.RuleContext, node *syntax.Node) []analyzer.Signal {
	model := ctx.Model()
	if model == nil {
		return nil
	}
	b, ok := model.BindingOf(node)
	if !ok || b.Kind != semantic.BindingConst || !b.Decl.Same(node) {
		return nil
	}
	var signals []analyzer.Signal
	for _, w := range b.Writes() {
		signals = append(signals,
			ctx.Diagnostic(w.Token.TextRange(), "Can't assign "+b.Name+" because it's a constant.").
				WithLabel(node.TextRange(), "This is where the variable is defined as constant.").
				Build())
	}
	return signals
}

// isBuiltinGlobal reports the names provided by ECMAScript, browsers and
// Node.js.
func isBuiltinGlobal(name string) bool {
	_, ok := builtinGlobals[name]
	return ok
}

//nolint:gochecknoglobals // Static lookup table
var builtinGlobals = setOf(
	// ECMAScript
	"Array", "ArrayBuffer", "AggregateError", "Atomics", "BigInt", "BigInt64Array", "BigUint64Array",
	"Boolean", "DataView", "Date", "Error", "EvalError", "FinalizationRegistry", "Float32Array",
	"Float64Array", "Function", "Infinity", "Int16Array", "Int32Array", "Int8Array", "Intl", "JSON",
	"Map", "Math", "NaN", "Number", "Object", "Promise", "Proxy", "RangeError", "ReferenceError",
	"Reflect", "RegExp", "Set", "SharedArrayBuffer", "String", "Symbol", "SyntaxError", "TypeError",
	"URIError", "Uint16Array", "Uint32Array", "Uint8Array", "Uint8ClampedArray", "WeakMap", "WeakRef",
	"WeakSet", "decodeURI", "decodeURIComponent", "encodeURI", "encodeURIComponent", "escape", "eval",
	"globalThis", "isFinite", "isNaN", "parseFloat", "parseInt", "undefined", "unescape", "arguments",
	// TypeScript utility types
	"Partial", "Required", "Readonly", "Record", "Pick", "Omit", "Exclude", "Extract", "NonNullable",
	"Parameters", "ReturnType", "InstanceType", "Awaited", "PropertyKey", "ReadonlyArray",
	"PromiseLike", "ArrayLike", "Iterable", "Iterator", "IterableIterator", "AsyncIterable",
	"TemplateStringsArray", "ThisType", "Uppercase", "Lowercase", "Capitalize", "Uncapitalize",
	// Browser
	"window", "self", "document", "navigator", "location", "history", "localStorage", "sessionStorage",
	"console", "fetch", "Request", "Response", "Headers", "URL", "URLSearchParams", "FormData", "Blob",
	"File", "FileReader", "Event", "EventTarget", "CustomEvent", "AbortController", "AbortSignal",
	"HTMLElement", "Element", "Node", "NodeList", "MutationObserver", "IntersectionObserver",
	"ResizeObserver", "WebSocket", "Worker", "XMLHttpRequest", "alert", "confirm", "prompt",
	"setTimeout", "clearTimeout", "setInterval", "clearInterval", "requestAnimationFrame",
	"cancelAnimationFrame", "queueMicrotask", "structuredClone", "atob", "btoa", "crypto",
	"performance", "TextEncoder", "TextDecoder", "ReadableStream", "WritableStream",
	"TransformStream", "BroadcastChannel", "MessageChannel", "caches", "indexedDB",
	// Node.js
	"process", "Buffer", "global", "require", "module", "exports", "__dirname", "__filename",
	"setImmediate", "clearImmediate",
)

func setOf(names ...string) map[string]struct{} {
	out := make(map[string]struct{}, len(names))
	for _, n := range names {
		out[n] = struct{}{}
	}
	return out
}

// coverAll returns the smallest range covering every node.
func coverAll(nodes []*syntax.Node) text.Range {
	r := nodes[0].TextRange()
	for _, n := range nodes[1:] {
		r = r.Cover(n.TextRange())
	}
	return r
}
