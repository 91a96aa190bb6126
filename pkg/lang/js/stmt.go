package js

import (
	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
	"github.com/yaklabco/gobiome/pkg/text"
)

func rangeFrom(p *jsParser, start int) text.Range {
	end := p.LastTokenEnd()
	if end < start {
		end = start
	}
	return text.NewRange(start, end)
}

// atDirective reports a leading "use strict"-style string statement. Directives
// are kept in the statement list as JsDirective nodes.
func (p *jsParser) atDirective() bool {
	if !p.At(syntax.StringLit) {
		return false
	}
	next := p.Nth(1)
	return next == syntax.Semicolon || next == syntax.RBrace || next == syntax.EOF || p.NthHasPrecedingLineBreak(1)
}

func (p *jsParser) parseDirective() {
	m := p.Start()
	p.Bump(syntax.StringLit)
	p.semicolon()
	m.Complete(p.Parser, syntax.JsDirective)
}

func (p *jsParser) parseModuleItems() {
	directives := true
	for !p.At(syntax.EOF) {
		if directives && p.atDirective() {
			p.parseDirective()
			continue
		}
		directives = false
		p.parseStatementWithRecovery(false)
	}
}

// parseStatementList parses statements until `}` (or a case clause when inSwitch).
func (p *jsParser) parseStatementList(inSwitch, allowDirectives bool) {
	list := p.Start()
	for !p.At(syntax.EOF) && !p.At(syntax.RBrace) {
		if inSwitch && (p.At(syntax.CaseKw) || p.At(syntax.DefaultKw)) {
			break
		}
		if allowDirectives && p.atDirective() {
			p.parseDirective()
			continue
		}
		allowDirectives = false
		p.parseStatementWithRecovery(true)
	}
	list.Complete(p.Parser, syntax.JsStatementList)
}

// parseStatementWithRecovery guarantees progress: a statement that consumed
// nothing is replaced by a bogus statement holding at least one token.
func (p *jsParser) parseStatementWithRecovery(nested bool) {
	start := p.CurRange().Start
	before := p.Checkpoint()
	if p.parseStatement(nested) {
		return
	}
	if p.CurRange().Start != start {
		return
	}
	p.Rewind(before)
	p.ErrorHere("expected a statement but instead found `" + p.CurText() + "`")
	recovery := parser.NewRecovery(syntax.JsBogusStatement, statementRecovery).WithLineBreak()
	if _, err := recovery.Recover(p.Parser); err != nil {
		m := p.Start()
		p.BumpAny()
		m.Complete(p.Parser, syntax.JsBogusStatement)
	}
}

// parseStatement returns false when no statement starts at the current token.
//
//nolint:gocyclo,cyclop,funlen // Statement dispatch
func (p *jsParser) parseStatement(nested bool) bool {
	switch p.Cur() {
	case syntax.Semicolon:
		m := p.Start()
		p.Bump(syntax.Semicolon)
		m.Complete(p.Parser, syntax.JsEmptyStatement)
	case syntax.LBrace:
		p.parseBlock()
	case syntax.VarKw, syntax.ConstKw:
		if p.At(syntax.ConstKw) && p.NthAt(1, syntax.EnumKw) {
			p.parseEnum()
			return true
		}
		p.parseVariableStatement()
	case syntax.IfKw:
		p.parseIf()
	case syntax.ForKw:
		p.parseFor()
	case syntax.WhileKw:
		p.parseWhile()
	case syntax.DoKw:
		p.parseDoWhile()
	case syntax.SwitchKw:
		p.parseSwitch()
	case syntax.TryKw:
		p.parseTry()
	case syntax.ReturnKw:
		p.parseReturn()
	case syntax.ThrowKw:
		p.parseThrow()
	case syntax.BreakKw, syntax.ContinueKw:
		p.parseBreakContinue()
	case syntax.DebuggerKw:
		m := p.Start()
		p.Bump(syntax.DebuggerKw)
		p.semicolon()
		m.Complete(p.Parser, syntax.JsDebuggerStatement)
	case syntax.WithKw:
		p.parseWith()
	case syntax.FunctionKw:
		p.parseFunction(syntax.JsFunctionDeclaration, false)
	case syntax.ClassKw:
		p.parseClass(syntax.JsClassDeclaration, false)
	case syntax.EnumKw:
		p.parseEnum()
	case syntax.ImportKw:
		if p.NthAt(1, syntax.LParen) || p.NthAt(1, syntax.Dot) {
			return p.parseExpressionStatement()
		}
		if nested {
			p.ErrorHere("`import` declarations may only appear at the top level of a module")
		}
		p.parseImport()
	case syntax.ExportKw:
		if nested {
			p.ErrorHere("`export` declarations may only appear at the top level of a module")
		}
		p.parseExport()
	case syntax.Ident:
		return p.parseIdentStatement()
	default:
		return p.parseExpressionStatement()
	}
	return true
}

func (p *jsParser) parseIdentStatement() bool {
	text := p.CurText()
	switch {
	case p.NthAt(1, syntax.Colon):
		m := p.Start()
		p.BumpAny()
		p.Bump(syntax.Colon)
		if p.At(syntax.FunctionKw) {
			p.parseFunction(syntax.JsFunctionDeclaration, false)
		} else if !p.parseStatement(true) {
			p.ErrorExpected("a statement")
			p.Missing()
		}
		m.Complete(p.Parser, syntax.JsLabeledStatement)
		return true
	case text == "let" && p.atLetDeclaration():
		p.parseVariableStatement()
		return true
	case text == "async" && p.NthAt(1, syntax.FunctionKw) && !p.NthHasPrecedingLineBreak(1):
		p.parseFunction(syntax.JsFunctionDeclaration, false)
		return true
	case text == "type" && p.NthAt(1, syntax.Ident) && !p.NthHasPrecedingLineBreak(1):
		p.parseTypeAlias()
		return true
	case text == "interface" && p.NthAt(1, syntax.Ident) && !p.NthHasPrecedingLineBreak(1):
		p.parseInterface()
		return true
	case text == "abstract" && p.NthAt(1, syntax.ClassKw):
		p.parseClass(syntax.JsClassDeclaration, false)
		return true
	}
	return p.parseExpressionStatement()
}

func (p *jsParser) atLetDeclaration() bool {
	next := p.Nth(1)
	return next == syntax.Ident || next == syntax.LBrack || next == syntax.LBrace
}

func (p *jsParser) parseExpressionStatement() bool {
	m := p.Start()
	if !p.parseExpression() {
		m.Abandon(p.Parser)
		return false
	}
	p.semicolon()
	m.Complete(p.Parser, syntax.JsExpressionStatement)
	return true
}

func (p *jsParser) parseBlock() parser.CompletedMarker {
	m := p.Start()
	p.Bump(syntax.LBrace)
	p.parseStatementList(false, false)
	p.Expect(syntax.RBrace)
	return m.Complete(p.Parser, syntax.JsBlockStatement)
}

func (p *jsParser) parseVariableStatement() {
	m := p.Start()
	p.parseVariableDeclaration(false)
	p.semicolon()
	m.Complete(p.Parser, syntax.JsVariableStatement)
}

// parseVariableDeclaration parses `var|let|const` and its declarators. In a
// for-statement head with a single declarator followed by `in` or `of`, the
// declaration is completed as a JsForVariableDeclaration instead.
func (p *jsParser) parseVariableDeclaration(forHead bool) parser.CompletedMarker {
	m := p.Start()
	kindStart := p.CurRange().Start
	isConst := p.At(syntax.ConstKw)
	switch {
	case p.At(syntax.VarKw), p.At(syntax.ConstKw):
		p.BumpAny()
	default:
		p.bumpContextual(syntax.LetKw)
	}

	list := p.Start()
	count := 0
	for {
		hasInit := p.parseVariableDeclarator(forHead)
		count++
		if !hasInit && isConst && !forHead {
			p.Error("const declarations must have an initialized value", rangeFrom(p, kindStart))
		}
		if !p.Eat(syntax.Comma) {
			break
		}
	}

	if forHead && count == 1 && (p.At(syntax.InKw) || p.atContextual("of")) {
		list.Abandon(p.Parser)
		return m.Complete(p.Parser, syntax.JsForVariableDeclaration)
	}
	list.Complete(p.Parser, syntax.JsVariableDeclaratorList)
	return m.Complete(p.Parser, syntax.JsVariableDeclaration)
}

// parseVariableDeclarator returns whether an initializer was present.
func (p *jsParser) parseVariableDeclarator(forHead bool) bool {
	m := p.Start()
	if !p.parseBinding() {
		p.ErrorExpected("an identifier, an array pattern or an object pattern")
		p.Missing()
		if p.AtSet(bindingRecovery) || p.At(syntax.EOF) {
			m.Complete(p.Parser, syntax.JsVariableDeclarator)
			return false
		}
	}
	if p.At(syntax.Bang) && p.opts.TypeScript {
		p.Bump(syntax.Bang)
	}
	if p.At(syntax.Colon) {
		p.parseTypeAnnotation(syntax.TsTypeAnnotation)
	}
	hasInit := false
	if p.At(syntax.Eq) {
		hasInit = true
		p.withState(func(s *state) { s.noIn = forHead }, func() {
			p.parseInitializer()
		})
	}
	m.Complete(p.Parser, syntax.JsVariableDeclarator)
	return hasInit
}

func (p *jsParser) parseInitializer() {
	m := p.Start()
	p.Bump(syntax.Eq)
	p.expectAssignment()
	m.Complete(p.Parser, syntax.JsInitializerClause)
}

// parseParenthesizedHead parses `( expression )` as used by if, while, switch and with.
func (p *jsParser) parseParenthesizedHead() {
	p.Expect(syntax.LParen)
	p.expectExpression()
	p.Expect(syntax.RParen)
}

func (p *jsParser) expectStatement() {
	if p.At(syntax.EOF) || p.At(syntax.RBrace) {
		p.ErrorExpected("a statement")
		p.Missing()
		return
	}
	p.parseStatementWithRecovery(true)
}

func (p *jsParser) parseIf() {
	m := p.Start()
	p.Bump(syntax.IfKw)
	p.parseParenthesizedHead()
	p.expectStatement()
	if p.At(syntax.ElseKw) {
		e := p.Start()
		p.Bump(syntax.ElseKw)
		p.expectStatement()
		e.Complete(p.Parser, syntax.JsElseClause)
	}
	m.Complete(p.Parser, syntax.JsIfStatement)
}

func (p *jsParser) parseFor() {
	m := p.Start()
	p.Bump(syntax.ForKw)
	if p.atContextual("await") {
		p.bumpContextual(syntax.AwaitKw)
	}
	p.Expect(syntax.LParen)

	kind := syntax.JsForStatement
	switch {
	case p.At(syntax.Semicolon):
		p.Missing()
	case p.At(syntax.VarKw) || p.At(syntax.ConstKw) || (p.atContextual("let") && p.atLetDeclaration()):
		p.parseVariableDeclaration(true)
	default:
		p.withState(func(s *state) { s.noIn = true }, func() {
			cm, ok := p.parseExpressionMarker()
			if ok && (p.At(syntax.InKw) || p.atContextual("of")) {
				p.toAssignmentTarget(cm)
			}
			if !ok {
				p.Missing()
			}
		})
	}

	switch {
	case p.At(syntax.InKw):
		kind = syntax.JsForInStatement
		p.Bump(syntax.InKw)
		p.expectExpression()
	case p.atContextual("of"):
		kind = syntax.JsForOfStatement
		p.bumpContextual(syntax.OfKw)
		p.expectAssignment()
	default:
		p.Expect(syntax.Semicolon)
		if p.At(syntax.Semicolon) {
			p.Missing()
		} else {
			p.expectExpression()
		}
		p.Expect(syntax.Semicolon)
		if p.At(syntax.RParen) {
			p.Missing()
		} else {
			p.expectExpression()
		}
	}
	p.Expect(syntax.RParen)
	p.expectStatement()
	m.Complete(p.Parser, kind)
}

func (p *jsParser) parseWhile() {
	m := p.Start()
	p.Bump(syntax.WhileKw)
	p.parseParenthesizedHead()
	p.expectStatement()
	m.Complete(p.Parser, syntax.JsWhileStatement)
}

func (p *jsParser) parseDoWhile() {
	m := p.Start()
	p.Bump(syntax.DoKw)
	p.expectStatement()
	p.Expect(syntax.WhileKw)
	p.parseParenthesizedHead()
	if !p.Eat(syntax.Semicolon) {
		p.VirtualToken(syntax.Semicolon)
	}
	m.Complete(p.Parser, syntax.JsDoWhileStatement)
}

func (p *jsParser) parseSwitch() {
	m := p.Start()
	p.Bump(syntax.SwitchKw)
	p.parseParenthesizedHead()
	p.Expect(syntax.LBrace)
	list := p.Start()
	for !p.At(syntax.EOF) && !p.At(syntax.RBrace) {
		c := p.Start()
		switch {
		case p.At(syntax.CaseKw):
			p.Bump(syntax.CaseKw)
			p.expectExpression()
			p.Expect(syntax.Colon)
			p.parseStatementList(true, false)
			c.Complete(p.Parser, syntax.JsCaseClause)
		case p.At(syntax.DefaultKw):
			p.Bump(syntax.DefaultKw)
			p.Expect(syntax.Colon)
			p.parseStatementList(true, false)
			c.Complete(p.Parser, syntax.JsDefaultClause)
		default:
			p.ErrorExpected("a `case` or `default` clause")
			recovery := parser.NewRecovery(syntax.JsBogus, syntax.KindSetOf(syntax.CaseKw, syntax.DefaultKw, syntax.RBrace))
			if _, err := recovery.Recover(p.Parser); err != nil {
				p.BumpAny()
			}
			c.Complete(p.Parser, syntax.JsBogus)
		}
	}
	list.Complete(p.Parser, syntax.JsSwitchCaseList)
	p.Expect(syntax.RBrace)
	m.Complete(p.Parser, syntax.JsSwitchStatement)
}

func (p *jsParser) parseTry() {
	m := p.Start()
	p.Bump(syntax.TryKw)
	p.expectBlock()

	hasHandler := false
	if p.At(syntax.CatchKw) {
		hasHandler = true
		c := p.Start()
		p.Bump(syntax.CatchKw)
		if p.At(syntax.LParen) {
			d := p.Start()
			p.Bump(syntax.LParen)
			if !p.parseBinding() {
				p.Missing()
			}
			if p.At(syntax.Colon) {
				p.parseTypeAnnotation(syntax.TsTypeAnnotation)
			}
			p.Expect(syntax.RParen)
			d.Complete(p.Parser, syntax.JsCatchDeclaration)
		}
		p.expectBlock()
		c.Complete(p.Parser, syntax.JsCatchClause)
	}
	if p.At(syntax.FinallyKw) {
		hasHandler = true
		f := p.Start()
		p.Bump(syntax.FinallyKw)
		p.expectBlock()
		f.Complete(p.Parser, syntax.JsFinallyClause)
	}
	if !hasHandler {
		p.ErrorExpected("a `catch` or `finally` clause")
	}
	m.Complete(p.Parser, syntax.JsTryStatement)
}

func (p *jsParser) expectBlock() {
	if p.At(syntax.LBrace) {
		p.parseBlock()
		return
	}
	p.ErrorExpected("a block statement")
	p.Missing()
}

func (p *jsParser) parseReturn() {
	m := p.Start()
	start := p.CurRange().Start
	p.Bump(syntax.ReturnKw)
	if !p.state.inFunction {
		p.Error("illegal return statement outside of a function", rangeFrom(p, start))
	}
	if !p.At(syntax.Semicolon) && !p.At(syntax.RBrace) && !p.At(syntax.EOF) && !p.HasPrecedingLineBreak() {
		p.expectExpression()
	}
	p.semicolon()
	m.Complete(p.Parser, syntax.JsReturnStatement)
}

func (p *jsParser) parseThrow() {
	m := p.Start()
	p.Bump(syntax.ThrowKw)
	if p.HasPrecedingLineBreak() {
		p.ErrorHere("a line break is not allowed after `throw`")
	}
	p.expectExpression()
	p.semicolon()
	m.Complete(p.Parser, syntax.JsThrowStatement)
}

func (p *jsParser) parseBreakContinue() {
	m := p.Start()
	kind := syntax.JsBreakStatement
	if p.At(syntax.ContinueKw) {
		kind = syntax.JsContinueStatement
	}
	p.BumpAny()
	if p.At(syntax.Ident) && !p.HasPrecedingLineBreak() {
		p.BumpAny()
	}
	p.semicolon()
	m.Complete(p.Parser, kind)
}

func (p *jsParser) parseWith() {
	m := p.Start()
	p.Bump(syntax.WithKw)
	p.parseParenthesizedHead()
	p.expectStatement()
	m.Complete(p.Parser, syntax.JsWithStatement)
}
