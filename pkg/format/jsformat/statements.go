package jsformat

import (
	"strings"

	"github.com/yaklabco/gobiome/pkg/format"
	"github.com/yaklabco/gobiome/pkg/lang/js"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

func isStatement(k syntax.Kind) bool {
	return js.AnyStatement.Has(k) || k == syntax.JsBogusStatement
}

// statements prints a statement list, one statement per line, keeping at
// most one blank line between statements. Empty statements are dropped.
func (f *formatter) statements(list *syntax.Node) format.List {
	if list == nil {
		return nil
	}
	var out format.List
	for _, s := range list.ChildNodeList() {
		if s.Kind() == syntax.JsEmptyStatement && !f.comments.HasComments(s) {
			continue
		}
		if len(out) > 0 {
			if format.BlankLineBefore(s.FirstToken()) {
				out = append(out, format.EmptyLine)
			} else {
				out = append(out, format.HardLine)
			}
		}
		out = append(out, f.node(s))
	}
	return out
}

// block prints `{ statements }` with the body on its own indented lines.
// An empty block prints `{}`.
func (f *formatter) block(n *syntax.Node) format.Element {
	if f.ctx.Suppressed(n) {
		return f.verbatim(n)
	}
	open, close := n.FindToken(syntax.LBrace), n.FindToken(syntax.RBrace)
	body := f.statements(n.FindNode(syntax.JsStatementList))
	return f.braced(open, body, close)
}

func (f *formatter) braced(open *syntax.Token, body format.List, close *syntax.Token) format.Element {
	dangling := f.dangling(close, len(body) > 0)
	if len(body) == 0 && len(dangling) == 0 {
		return format.Concat(f.tok(open), f.tok(close))
	}
	return format.Concat(f.tok(open), format.Indent{Contents: format.Concat(format.HardLine, body, dangling)},
		format.HardLine, f.tok(close))
}

//nolint:gocyclo,cyclop // Statement dispatch
func (f *formatter) statement(n *syntax.Node) format.Element {
	switch n.Kind() {
	case syntax.JsExpressionStatement:
		return f.expressionStatement(n)
	case syntax.JsVariableStatement:
		return format.Concat(f.node(n.FindNode(syntax.JsVariableDeclaration)), f.semicolon(n.FindToken(syntax.Semicolon)))
	case syntax.JsBlockStatement:
		return f.block(n)
	case syntax.JsEmptyStatement:
		return f.tok(n.FindToken(syntax.Semicolon))
	case syntax.JsDirective:
		return f.directive(n)
	case syntax.JsIfStatement:
		return f.ifStatement(n)
	case syntax.JsForStatement:
		return f.forStatement(n)
	case syntax.JsForInStatement, syntax.JsForOfStatement:
		return f.forInOf(n)
	case syntax.JsWhileStatement, syntax.JsWithStatement:
		return f.headed(n)
	case syntax.JsDoWhileStatement:
		return f.doWhile(n)
	case syntax.JsSwitchStatement:
		return f.switchStatement(n)
	case syntax.JsTryStatement:
		return f.tryStatement(n)
	case syntax.JsReturnStatement, syntax.JsThrowStatement:
		return f.returnStatement(n)
	case syntax.JsBreakStatement, syntax.JsContinueStatement, syntax.JsDebuggerStatement:
		return f.spaced(n)
	case syntax.JsLabeledStatement:
		return f.labeled(n)
	case syntax.JsFunctionDeclaration:
		return f.function(n)
	case syntax.JsClassDeclaration:
		return f.class(n)
	case syntax.JsImport:
		return f.importDeclaration(n)
	case syntax.JsExport:
		return f.export(n)
	case syntax.TsTypeAliasDeclaration:
		return f.typeAlias(n)
	case syntax.TsInterfaceDeclaration:
		return f.interfaceDeclaration(n)
	case syntax.TsEnumDeclaration:
		return f.enumDeclaration(n)
	}
	return f.verbatim(n)
}

func (f *formatter) expressionStatement(n *syntax.Node) format.Element {
	expr := firstExpr(n)
	first := n.FirstToken()
	lead := f.leading(first)
	body := format.Concat(f.node(expr), f.semicolon(n.FindToken(syntax.Semicolon)))
	if f.opts.Semicolons == format.SemicolonsAsNeeded && needsASIGuard(body) {
		body = format.Concat(format.Str(";"), body)
	}
	return format.Concat(lead, body)
}

// needsASIGuard reports whether a statement printed without a preceding
// semicolon could continue the previous one.
func needsASIGuard(el format.Element) bool {
	s, ok := firstText(el)
	if !ok {
		return false
	}
	return strings.ContainsAny(s[:1], "([`+-/")
}

// firstText returns the first non-empty text printed by el.
//
//nolint:gocyclo,cyclop // Element dispatch
func firstText(el format.Element) (string, bool) {
	switch v := el.(type) {
	case format.List:
		for _, c := range v {
			if s, ok := firstText(c); ok {
				return s, true
			}
		}
	case format.Text:
		return v.Value, v.Value != ""
	case format.Token:
		return v.Value, v.Value != ""
	case format.Verbatim:
		return v.Text, v.Text != ""
	case *format.Group:
		return firstText(v.Contents)
	case format.Indent:
		return firstText(v.Contents)
	case format.Dedent:
		return firstText(v.Contents)
	case format.Align:
		return firstText(v.Contents)
	case format.IndentIfGroupBreaks:
		return firstText(v.Contents)
	case format.IfBreak:
		return firstText(v.Flat)
	case *format.Fill:
		return firstText(v.Items)
	case *format.ConditionalGroup:
		if len(v.Variants) > 0 {
			return firstText(v.Variants[0])
		}
	case *format.BestFitting:
		if len(v.Variants) > 0 {
			return firstText(v.Variants[0])
		}
	}
	return "", false
}

func (f *formatter) directive(n *syntax.Node) format.Element {
	lit := n.FindToken(syntax.StringLit)
	value := lit.Text()
	inner := value[1 : len(value)-1]
	// Directives are compared by their raw text, so only quote-free ones
	// are requoted.
	if !strings.ContainsAny(inner, `"'`) {
		value = f.quote() + inner + f.quote()
	}
	return format.Concat(f.tokText(lit, value), f.semicolon(n.FindToken(syntax.Semicolon)))
}

// clause prints the body of a control statement: blocks stay on the
// header line, other statements are indented on the next line when the
// header does not fit.
func (f *formatter) clause(body *syntax.Node) format.Element {
	if body == nil {
		return nil
	}
	if body.Kind() == syntax.JsBlockStatement {
		return format.Concat(format.Space{}, f.node(body))
	}
	if body.Kind() == syntax.JsEmptyStatement {
		return f.node(body)
	}
	return format.NewGroup(format.Indent{Contents: format.Concat(format.SoftLineOrSpace, f.node(body))})
}

// head prints `(expression)` after a keyword.
func (f *formatter) head(n *syntax.Node) format.Element {
	open, close := n.FindToken(syntax.LParen), n.FindToken(syntax.RParen)
	return format.NewGroup(f.tok(open), format.Indent{Contents: format.Concat(format.SoftLine,
		f.node(firstExpr(n)))}, format.SoftLine, f.tok(close))
}

func (f *formatter) ifStatement(n *syntax.Node) format.Element {
	stmts := statementChildren(n)
	var body *syntax.Node
	if len(stmts) > 0 {
		body = stmts[0]
	}
	out := format.Concat(f.tok(n.FindToken(syntax.IfKw)), format.Space{}, f.head(n), f.clause(body))
	if elseClause := n.FindNode(syntax.JsElseClause); elseClause != nil {
		elseTok := elseClause.FindToken(syntax.ElseKw)
		if body != nil && body.Kind() == syntax.JsBlockStatement && len(f.comments.Leading(elseTok)) == 0 {
			out = append(out, format.Space{})
		} else {
			out = append(out, format.HardLine)
		}
		out = append(out, f.tok(elseTok))
		alt := firstStatement(elseClause)
		if alt != nil && alt.Kind() == syntax.JsIfStatement {
			out = append(out, format.Space{}, f.node(alt))
		} else {
			out = append(out, f.clause(alt))
		}
	}
	return out
}

func statementChildren(n *syntax.Node) []*syntax.Node {
	var out []*syntax.Node
	for c := range n.ChildNodes() {
		if isStatement(c.Kind()) {
			out = append(out, c)
		}
	}
	return out
}

func firstStatement(n *syntax.Node) *syntax.Node {
	if stmts := statementChildren(n); len(stmts) > 0 {
		return stmts[0]
	}
	return nil
}

func (f *formatter) headed(n *syntax.Node) format.Element {
	return format.Concat(f.tok(n.FirstToken()), format.Space{}, f.head(n), f.clause(firstStatement(n)))
}

func (f *formatter) doWhile(n *syntax.Node) format.Element {
	body := firstStatement(n)
	out := format.Concat(f.tok(n.FindToken(syntax.DoKw)))
	if body != nil && body.Kind() == syntax.JsBlockStatement {
		out = append(out, format.Space{}, f.node(body), format.Space{})
	} else {
		out = append(out, f.clause(body), format.HardLine)
	}
	return format.Concat(out, f.tok(n.FindToken(syntax.WhileKw)), format.Space{}, f.head(n),
		f.semicolon(n.FindToken(syntax.Semicolon)))
}

// forStatement prints `for (init; test; update) body`. Empty parts keep
// their separators.
func (f *formatter) forStatement(n *syntax.Node) format.Element {
	var parts [3]*syntax.Node
	var semis []*syntax.Token
	var open, close, await *syntax.Token
	var body *syntax.Node
	for el := range n.Children() {
		switch c := el.(type) {
		case *syntax.Token:
			switch c.Kind() {
			case syntax.LParen:
				open = c
			case syntax.RParen:
				close = c
			case syntax.Semicolon:
				semis = append(semis, c)
			case syntax.AwaitKw:
				await = c
			}
		case *syntax.Node:
			if close != nil {
				body = c
			} else if len(semis) < len(parts) {
				parts[len(semis)] = c
			}
		}
	}

	out := format.Concat(f.tok(n.FindToken(syntax.ForKw)))
	if await != nil {
		out = append(out, format.Space{}, f.tok(await))
	}
	out = append(out, format.Space{})
	if parts[0] == nil && parts[1] == nil && parts[2] == nil {
		out = append(out, f.tok(open))
		for _, s := range semis {
			out = append(out, f.tok(s))
		}
		return format.Concat(out, f.tok(close), f.clause(body))
	}

	var head format.List
	for i, part := range parts {
		if part != nil {
			head = append(head, f.node(part))
		}
		if i < len(semis) {
			head = append(head, f.tok(semis[i]))
			if i < len(parts)-1 && parts[i+1] != nil {
				head = append(head, format.SoftLineOrSpace)
			}
		}
	}
	return format.Concat(out, format.NewGroup(f.tok(open), format.Indent{Contents: format.Concat(format.SoftLine, head)},
		format.SoftLine, f.tok(close)), f.clause(body))
}

func (f *formatter) forInOf(n *syntax.Node) format.Element {
	out := format.Concat(f.tok(n.FindToken(syntax.ForKw)))
	var body *syntax.Node
	var parts format.List
	var close *syntax.Token
	for el := range n.Children() {
		switch c := el.(type) {
		case *syntax.Token:
			switch c.Kind() {
			case syntax.ForKw:
			case syntax.AwaitKw:
				out = append(out, format.Space{}, f.tok(c))
			case syntax.LParen:
				out = append(out, format.Space{}, f.tok(c))
			case syntax.RParen:
				close = c
			default:
				parts = append(parts, f.tok(c))
			}
		case *syntax.Node:
			if close != nil {
				body = c
			} else {
				parts = append(parts, f.node(c))
			}
		}
	}
	return format.Concat(out, format.Join(format.Space{}, parts), f.tok(close), f.clause(body))
}

func (f *formatter) switchStatement(n *syntax.Node) format.Element {
	var cases format.List
	for _, c := range n.FindNode(syntax.JsSwitchCaseList).ChildNodeList() {
		if len(cases) > 0 {
			if format.BlankLineBefore(c.FirstToken()) {
				cases = append(cases, format.EmptyLine)
			} else {
				cases = append(cases, format.HardLine)
			}
		}
		cases = append(cases, f.switchCase(c))
	}
	header := format.Concat(f.tok(n.FindToken(syntax.SwitchKw)), format.Space{}, f.head(n), format.Space{})
	return format.Concat(header, f.braced(n.FindToken(syntax.LBrace), cases, n.FindToken(syntax.RBrace)))
}

func (f *formatter) switchCase(n *syntax.Node) format.Element {
	if n.Kind() == syntax.JsBogus || f.ctx.Suppressed(n) {
		return f.verbatim(n)
	}
	out := format.Concat(f.tok(n.FirstToken()))
	if test := firstExpr(n); test != nil {
		out = append(out, format.Space{}, f.node(test))
	}
	out = append(out, f.tok(n.FindToken(syntax.Colon)))

	list := n.FindNode(syntax.JsStatementList)
	stmts := f.statements(list)
	if len(stmts) == 0 {
		return out
	}
	children := list.ChildNodeList()
	if len(children) == 1 && children[0].Kind() == syntax.JsBlockStatement {
		return format.Concat(out, format.Space{}, stmts)
	}
	return format.Concat(out, format.Indent{Contents: format.Concat(format.HardLine, stmts)})
}

func (f *formatter) tryStatement(n *syntax.Node) format.Element {
	out := format.Concat(f.tok(n.FindToken(syntax.TryKw)), format.Space{}, f.node(n.FindNode(syntax.JsBlockStatement)))
	if c := n.FindNode(syntax.JsCatchClause); c != nil {
		out = append(out, format.Space{}, f.tok(c.FindToken(syntax.CatchKw)))
		if decl := c.FindNode(syntax.JsCatchDeclaration); decl != nil {
			out = append(out, format.Space{}, f.tok(decl.FindToken(syntax.LParen)),
				f.binding(decl.FindNode(js.AnyBinding.Kinds()...)),
				f.typeAnnotation(decl.FindNode(syntax.TsTypeAnnotation)),
				f.tok(decl.FindToken(syntax.RParen)))
		}
		out = append(out, format.Space{}, f.node(c.FindNode(syntax.JsBlockStatement)))
	}
	if fin := n.FindNode(syntax.JsFinallyClause); fin != nil {
		out = append(out, format.Space{}, f.tok(fin.FindToken(syntax.FinallyKw)), format.Space{},
			f.node(fin.FindNode(syntax.JsBlockStatement)))
	}
	return out
}

// returnStatement prints `return argument;`. Binary and sequence
// arguments that break are wrapped in parentheses so that the value
// still starts on the keyword line.
func (f *formatter) returnStatement(n *syntax.Node) format.Element {
	out := format.Concat(f.tok(n.FirstToken()))
	if arg := firstExpr(n); arg != nil {
		out = append(out, format.Space{})
		inner := js.Unparenthesize(arg)
		if returnNeedsParens(inner) && !f.comments.HasComments(arg) {
			out = append(out, format.NewGroup(
				format.IfBreak{Break: format.List{format.Str("(")}},
				format.Indent{Contents: format.Concat(format.SoftLine, f.node(arg))},
				format.SoftLine,
				format.IfBreak{Break: format.List{format.Str(")")}},
			))
		} else {
			out = append(out, f.node(arg))
		}
	}
	return format.Concat(out, f.semicolon(n.FindToken(syntax.Semicolon)))
}

func returnNeedsParens(n *syntax.Node) bool {
	return js.AnyBinaryLike.Has(n.Kind()) || n.Kind() == syntax.JsSequenceExpression
}

func (f *formatter) labeled(n *syntax.Node) format.Element {
	body := firstStatement(n)
	out := format.Concat(f.tok(n.FirstToken()), f.tok(n.FindToken(syntax.Colon)))
	if body == nil || body.Kind() == syntax.JsEmptyStatement {
		return format.Concat(out, f.node(body))
	}
	return format.Concat(out, format.Space{}, f.node(body))
}
