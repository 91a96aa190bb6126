package js

import (
	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// parseExpression parses a comma expression. It returns false, without
// consuming anything, when no expression starts at the current token.
func (p *jsParser) parseExpression() bool {
	_, ok := p.parseExpressionMarker()
	return ok
}

func (p *jsParser) parseExpressionMarker() (parser.CompletedMarker, bool) {
	lhs, ok := p.parseAssignment()
	if !ok {
		return lhs, false
	}
	for p.At(syntax.Comma) {
		m := lhs.Precede(p.Parser)
		p.Bump(syntax.Comma)
		p.expectAssignment()
		lhs = m.Complete(p.Parser, syntax.JsSequenceExpression)
	}
	return lhs, true
}

// expectExpression parses an expression or records an error and an empty slot.
func (p *jsParser) expectExpression() {
	if !p.parseExpression() {
		p.ErrorExpected("an expression")
		p.Missing()
	}
}

func (p *jsParser) parseExpressionOrRecover() bool {
	if p.parseExpression() {
		return true
	}
	p.ErrorExpected("an expression")
	recovery := parser.NewRecovery(syntax.JsBogusExpression, syntax.KindSetOf(syntax.EOF))
	_, err := recovery.Recover(p.Parser)
	return err == nil
}

func (p *jsParser) expectAssignment() {
	if _, ok := p.parseAssignment(); !ok {
		p.ErrorExpected("an expression")
		p.Missing()
	}
}

//nolint:gocyclo,cyclop // Arrow function detection
func (p *jsParser) parseAssignment() (parser.CompletedMarker, bool) {
	if p.atContextual("yield") && p.state.inGenerator {
		return p.parseYield(), true
	}

	// Arrow functions: `x =>`, `async x =>`, `(...) =>`, `async (...) =>`, `<T>(...) =>`.
	if p.atBindingIdentifier() && p.NthAt(1, syntax.FatArrow) && !p.NthHasPrecedingLineBreak(1) {
		return p.parseSimpleArrow(false), true
	}
	if p.atContextual("async") && !p.NthHasPrecedingLineBreak(1) {
		if p.NthAt(1, syntax.Ident) && p.NthAt(2, syntax.FatArrow) {
			return p.parseSimpleArrow(true), true
		}
		if p.NthAt(1, syntax.LParen) || p.NthAt(1, syntax.Lt) {
			if cm, ok := p.tryParenthesizedArrow(true); ok {
				return cm, true
			}
		}
	}
	if p.At(syntax.LParen) || (p.At(syntax.Lt) && p.opts.TypeScript) {
		if cm, ok := p.tryParenthesizedArrow(false); ok {
			return cm, true
		}
	}

	lhs, ok := p.parseConditional()
	if !ok {
		return lhs, false
	}
	if p.AtSet(assignmentOperators) {
		if p.At(syntax.Eq) {
			p.toAssignmentTarget(lhs)
		} else {
			p.toSimpleAssignmentTarget(lhs)
		}
		m := lhs.Precede(p.Parser)
		p.BumpAny()
		p.expectAssignment()
		return m.Complete(p.Parser, syntax.JsAssignmentExpression), true
	}
	return lhs, true
}

// toAssignmentTarget retags an expression that appears on the left of `=`.
// Array and object literals are kept as destructuring patterns.
func (p *jsParser) toAssignmentTarget(cm parser.CompletedMarker) {
	switch cm.Kind() {
	case syntax.JsArrayExpression, syntax.JsObjectExpression:
		return
	default:
		p.toSimpleAssignmentTarget(cm)
	}
}

func (p *jsParser) toSimpleAssignmentTarget(cm parser.CompletedMarker) {
	switch cm.Kind() {
	case syntax.JsIdentifierExpression:
		cm.ChangeKind(p.Parser, syntax.JsIdentifierAssignment)
	case syntax.JsStaticMemberExpression:
		cm.ChangeKind(p.Parser, syntax.JsStaticMemberAssignment)
	case syntax.JsComputedMemberExpression:
		cm.ChangeKind(p.Parser, syntax.JsComputedMemberAssignment)
	case syntax.JsParenthesizedExpression, syntax.TsNonNullAssertionExpression, syntax.TsAsExpression,
		syntax.TsSatisfiesExpression, syntax.JsIdentifierAssignment, syntax.JsStaticMemberAssignment,
		syntax.JsComputedMemberAssignment:
	default:
		p.Error("invalid assignment target", rangeFrom(p, cm.Offset()))
	}
}

func (p *jsParser) parseYield() parser.CompletedMarker {
	m := p.Start()
	p.bumpContextual(syntax.YieldKw)
	if p.Eat(syntax.Star) {
		p.expectAssignment()
	} else if !p.HasPrecedingLineBreak() && p.atExpressionStart() {
		p.expectAssignment()
	}
	return m.Complete(p.Parser, syntax.JsYieldExpression)
}

//nolint:gochecknoglobals // Static token set
var expressionStart = syntax.KindSetOf(
	syntax.Ident, syntax.NumberLit, syntax.StringLit, syntax.BigintLit, syntax.Backtick, syntax.LParen,
	syntax.LBrack, syntax.LBrace, syntax.Slash, syntax.SlashEq, syntax.Plus, syntax.Minus, syntax.Bang,
	syntax.Tilde, syntax.Plus2, syntax.Minus2, syntax.Lt, syntax.Hash, syntax.ThisKw, syntax.SuperKw,
	syntax.NullKw, syntax.TrueKw, syntax.FalseKw, syntax.FunctionKw, syntax.ClassKw, syntax.NewKw,
	syntax.TypeofKw, syntax.VoidKw, syntax.DeleteKw, syntax.ImportKw,
)

func (p *jsParser) atExpressionStart() bool {
	return p.AtSet(expressionStart)
}

func (p *jsParser) parseSimpleArrow(async bool) parser.CompletedMarker {
	m := p.Start()
	if async {
		p.bumpContextual(syntax.AsyncKw)
	}
	b := p.Start()
	p.BumpRemap(syntax.Ident)
	b.Complete(p.Parser, syntax.JsIdentifierBinding)
	p.Bump(syntax.FatArrow)
	p.parseArrowBody(async)
	return m.Complete(p.Parser, syntax.JsArrowFunctionExpression)
}

// tryParenthesizedArrow speculatively parses `(params) =>`. On failure the
// parser is rewound and the caller parses a regular expression.
func (p *jsParser) tryParenthesizedArrow(async bool) (parser.CompletedMarker, bool) {
	var result parser.CompletedMarker
	cp := p.Checkpoint()
	ok := p.Speculate(func() bool {
		m := p.Start()
		if async {
			p.bumpContextual(syntax.AsyncKw)
		}
		if p.At(syntax.Lt) {
			if !p.opts.TypeScript || (p.opts.JSX && !p.NthAt(2, syntax.ExtendsKw) && !p.NthAt(2, syntax.Comma)) {
				return false
			}
			p.parseTypeParameters()
		}
		if !p.At(syntax.LParen) {
			return false
		}
		p.withState(func(s *state) { s.inAsync = async }, func() {
			p.parseParameters()
		})
		if p.At(syntax.Colon) {
			p.parseTypeAnnotation(syntax.TsReturnTypeAnnotation)
		}
		if !p.At(syntax.FatArrow) || p.HasPrecedingLineBreak() || p.HasErrorsSince(cp) {
			return false
		}
		p.Bump(syntax.FatArrow)
		p.parseArrowBody(async)
		result = m.Complete(p.Parser, syntax.JsArrowFunctionExpression)
		return true
	})
	return result, ok
}

func (p *jsParser) parseArrowBody(async bool) {
	p.withState(func(s *state) {
		s.inFunction = true
		s.inAsync = async
		s.inGenerator = false
	}, func() {
		if p.At(syntax.LBrace) {
			p.parseFunctionBody()
			return
		}
		p.expectAssignment()
	})
}

func (p *jsParser) parseConditional() (parser.CompletedMarker, bool) {
	test, ok := p.parseBinary(0)
	if !ok || !p.At(syntax.Question) {
		return test, ok
	}
	m := test.Precede(p.Parser)
	p.Bump(syntax.Question)
	p.withState(func(s *state) { s.noIn = false }, p.expectAssignment)
	p.Expect(syntax.Colon)
	p.expectAssignment()
	return m.Complete(p.Parser, syntax.JsConditionalExpression), true
}

// binaryPrecedence returns the binding power of a binary operator, or 0.
func (p *jsParser) binaryPrecedence() int {
	switch p.Cur() {
	case syntax.QuestionQuestion:
		return 1
	case syntax.Pipe2:
		return 2
	case syntax.Amp2:
		return 3
	case syntax.Pipe:
		return 4
	case syntax.Caret:
		return 5
	case syntax.Amp:
		return 6
	case syntax.Eq2, syntax.Neq, syntax.Eq3, syntax.Neq2:
		return 7
	case syntax.Lt, syntax.Gt, syntax.LtEq, syntax.GtEq, syntax.InstanceofKw:
		return 8
	case syntax.InKw:
		if p.state.noIn {
			return 0
		}
		return 8
	case syntax.Ident:
		if (p.CurText() == "as" || p.CurText() == "satisfies") && !p.HasPrecedingLineBreak() {
			return 8
		}
		return 0
	case syntax.Shl, syntax.Shr, syntax.UShr:
		return 9
	case syntax.Plus, syntax.Minus:
		return 10
	case syntax.Star, syntax.Slash, syntax.Percent:
		return 11
	case syntax.Star2:
		return 12
	default:
		return 0
	}
}

func (p *jsParser) parseBinary(minPrec int) (parser.CompletedMarker, bool) {
	lhs, ok := p.parseUnary()
	if !ok {
		return lhs, false
	}
	for {
		prec := p.binaryPrecedence()
		if prec == 0 || prec <= minPrec {
			return lhs, true
		}

		m := lhs.Precede(p.Parser)
		if p.At(syntax.Ident) {
			kind := syntax.TsAsExpression
			kw := syntax.AsKw
			if p.CurText() == "satisfies" {
				kind, kw = syntax.TsSatisfiesExpression, syntax.SatisfiesKw
			}
			start := p.CurRange().Start
			p.bumpContextual(kw)
			p.tsOnly("type assertion expressions", start)
			if p.atContextual("const") || p.At(syntax.ConstKw) {
				t := p.Start()
				p.BumpRemap(syntax.Ident)
				t.Complete(p.Parser, syntax.TsReferenceType)
			} else {
				p.expectType()
			}
			lhs = m.Complete(p.Parser, kind)
			continue
		}

		kind := syntax.JsBinaryExpression
		switch p.Cur() {
		case syntax.Amp2, syntax.Pipe2, syntax.QuestionQuestion:
			kind = syntax.JsLogicalExpression
		case syntax.InKw:
			kind = syntax.JsInExpression
		case syntax.InstanceofKw:
			kind = syntax.JsInstanceofExpression
		}
		p.BumpAny()

		// `**` is right associative.
		next := prec
		if prec == 12 {
			next = prec - 1
		}
		if _, ok := p.parseBinary(next); !ok {
			p.ErrorExpected("an expression")
			p.Missing()
		}
		lhs = m.Complete(p.Parser, kind)
	}
}

//nolint:gochecknoglobals // Static token set
var unaryOperators = syntax.KindSetOf(
	syntax.DeleteKw, syntax.VoidKw, syntax.TypeofKw, syntax.Plus, syntax.Minus, syntax.Tilde, syntax.Bang,
)

func (p *jsParser) parseUnary() (parser.CompletedMarker, bool) {
	switch {
	case p.AtSet(unaryOperators):
		m := p.Start()
		p.BumpAny()
		if _, ok := p.parseUnary(); !ok {
			p.ErrorExpected("an expression")
			p.Missing()
		}
		return m.Complete(p.Parser, syntax.JsUnaryExpression), true
	case p.At(syntax.Plus2) || p.At(syntax.Minus2):
		m := p.Start()
		p.BumpAny()
		operand, ok := p.parseUnary()
		if ok {
			p.toSimpleAssignmentTarget(operand)
		} else {
			p.ErrorExpected("an expression")
			p.Missing()
		}
		return m.Complete(p.Parser, syntax.JsPreUpdateExpression), true
	case p.atContextual("await") && (p.state.inAsync || !p.state.inFunction) && p.awaitIsExpression():
		m := p.Start()
		p.bumpContextual(syntax.AwaitKw)
		if _, ok := p.parseUnary(); !ok {
			p.ErrorExpected("an expression")
			p.Missing()
		}
		return m.Complete(p.Parser, syntax.JsAwaitExpression), true
	}
	return p.parsePostfix()
}

// awaitIsExpression distinguishes top-level `await x` from an identifier named await.
func (p *jsParser) awaitIsExpression() bool {
	if p.state.inAsync {
		return true
	}
	next := p.Nth(1)
	if p.NthHasPrecedingLineBreak(1) {
		return false
	}
	return expressionStart.Has(next) && next != syntax.LParen && next != syntax.LBrack &&
		next != syntax.Plus && next != syntax.Minus && next != syntax.Slash && next != syntax.Lt
}

func (p *jsParser) parsePostfix() (parser.CompletedMarker, bool) {
	lhs, ok := p.parseLeftHandSide()
	if !ok {
		return lhs, false
	}
	if (p.At(syntax.Plus2) || p.At(syntax.Minus2)) && !p.HasPrecedingLineBreak() {
		p.toSimpleAssignmentTarget(lhs)
		m := lhs.Precede(p.Parser)
		p.BumpAny()
		return m.Complete(p.Parser, syntax.JsPostUpdateExpression), true
	}
	return lhs, true
}

func (p *jsParser) parseLeftHandSide() (parser.CompletedMarker, bool) {
	var lhs parser.CompletedMarker
	var ok bool
	if p.At(syntax.NewKw) {
		lhs, ok = p.parseNew(), true
	} else {
		lhs, ok = p.parsePrimary()
	}
	if !ok {
		return lhs, false
	}
	return p.parseSuffixes(lhs, true), true
}

// parseSuffixes parses member accesses, calls, tagged templates and
// non-null assertions following lhs.
//
//nolint:gocyclo,cyclop,funlen // Suffix loop
func (p *jsParser) parseSuffixes(lhs parser.CompletedMarker, allowCall bool) parser.CompletedMarker {
	for {
		switch {
		case p.At(syntax.Dot):
			m := lhs.Precede(p.Parser)
			p.Bump(syntax.Dot)
			p.parseMemberName()
			lhs = m.Complete(p.Parser, syntax.JsStaticMemberExpression)
		case p.At(syntax.QuestionDot):
			if !allowCall {
				return lhs
			}
			m := lhs.Precede(p.Parser)
			p.Bump(syntax.QuestionDot)
			switch {
			case p.At(syntax.LParen):
				p.parseArguments()
				lhs = m.Complete(p.Parser, syntax.JsCallExpression)
			case p.At(syntax.LBrack):
				p.Bump(syntax.LBrack)
				p.withState(func(s *state) { s.noIn = false }, p.expectExpression)
				p.Expect(syntax.RBrack)
				lhs = m.Complete(p.Parser, syntax.JsComputedMemberExpression)
			default:
				p.parseMemberName()
				lhs = m.Complete(p.Parser, syntax.JsStaticMemberExpression)
			}
		case p.At(syntax.LBrack):
			m := lhs.Precede(p.Parser)
			p.Bump(syntax.LBrack)
			p.withState(func(s *state) { s.noIn = false }, p.expectExpression)
			p.Expect(syntax.RBrack)
			lhs = m.Complete(p.Parser, syntax.JsComputedMemberExpression)
		case p.At(syntax.LParen) && allowCall:
			m := lhs.Precede(p.Parser)
			p.parseArguments()
			lhs = m.Complete(p.Parser, syntax.JsCallExpression)
		case p.At(syntax.Backtick):
			m := lhs.Precede(p.Parser)
			p.parseTemplateBody()
			lhs = m.Complete(p.Parser, syntax.JsTemplateExpression)
		case p.At(syntax.Bang) && p.opts.TypeScript && !p.HasPrecedingLineBreak():
			m := lhs.Precede(p.Parser)
			p.Bump(syntax.Bang)
			lhs = m.Complete(p.Parser, syntax.TsNonNullAssertionExpression)
		case p.At(syntax.Lt) && p.opts.TypeScript && allowCall:
			next, ok := p.tryTypeArgumentsCall(lhs)
			if !ok {
				return lhs
			}
			lhs = next
		default:
			return lhs
		}
	}
}

// tryTypeArgumentsCall parses `f<T>(...)` or a tagged template with type arguments.
func (p *jsParser) tryTypeArgumentsCall(lhs parser.CompletedMarker) (parser.CompletedMarker, bool) {
	var result parser.CompletedMarker
	cp := p.Checkpoint()
	ok := p.Speculate(func() bool {
		m := lhs.Precede(p.Parser)
		p.parseTypeArguments()
		if p.HasErrorsSince(cp) {
			return false
		}
		switch {
		case p.At(syntax.LParen):
			p.parseArguments()
			result = m.Complete(p.Parser, syntax.JsCallExpression)
		case p.At(syntax.Backtick):
			p.parseTemplateBody()
			result = m.Complete(p.Parser, syntax.JsTemplateExpression)
		default:
			return false
		}
		return true
	})
	return result, ok
}

func (p *jsParser) parseMemberName() {
	switch {
	case p.At(syntax.Hash):
		p.parsePrivateName()
	case p.atIdentifierName():
		m := p.Start()
		p.BumpRemap(syntax.Ident)
		m.Complete(p.Parser, syntax.JsName)
	default:
		p.ErrorExpected("an identifier")
		p.Missing()
	}
}

func (p *jsParser) parsePrivateName() parser.CompletedMarker {
	m := p.Start()
	p.Bump(syntax.Hash)
	if p.atIdentifierName() {
		p.BumpRemap(syntax.Ident)
	} else {
		p.ErrorExpected("an identifier")
		p.Missing()
	}
	return m.Complete(p.Parser, syntax.JsPrivateName)
}

func (p *jsParser) parseArguments() {
	m := p.Start()
	p.Bump(syntax.LParen)
	list := p.Start()
	p.withState(func(s *state) { s.noIn = false }, func() {
		for !p.At(syntax.RParen) && !p.At(syntax.EOF) {
			if p.At(syntax.DotDotDot) {
				p.parseSpread()
			} else if _, ok := p.parseAssignment(); !ok {
				p.ErrorExpected("an expression")
				recovery := parser.NewRecovery(syntax.JsBogusExpression, syntax.KindSetOf(syntax.Comma, syntax.RParen, syntax.Semicolon))
				if _, err := recovery.Recover(p.Parser); err != nil {
					break
				}
			}
			if !p.At(syntax.RParen) {
				if !p.Expect(syntax.Comma) && !p.atExpressionStart() {
					break
				}
			}
		}
	})
	list.Complete(p.Parser, syntax.JsCallArgumentList)
	p.Expect(syntax.RParen)
	m.Complete(p.Parser, syntax.JsCallArguments)
}

func (p *jsParser) parseSpread() {
	m := p.Start()
	p.Bump(syntax.DotDotDot)
	p.expectAssignment()
	m.Complete(p.Parser, syntax.JsSpread)
}

func (p *jsParser) parseNew() parser.CompletedMarker {
	m := p.Start()
	p.Bump(syntax.NewKw)
	if p.At(syntax.Dot) {
		p.Bump(syntax.Dot)
		if p.atContextual("target") {
			p.BumpAny()
		} else {
			p.ErrorExpected("`target`")
			p.Missing()
		}
		return m.Complete(p.Parser, syntax.JsNewTargetExpression)
	}

	var callee parser.CompletedMarker
	var ok bool
	if p.At(syntax.NewKw) {
		callee, ok = p.parseNew(), true
	} else {
		callee, ok = p.parsePrimary()
	}
	if ok {
		p.parseSuffixes(callee, false)
	} else {
		p.ErrorExpected("an expression")
		p.Missing()
	}
	if p.At(syntax.Lt) && p.opts.TypeScript {
		p.parseTypeArguments()
	}
	if p.At(syntax.LParen) {
		p.parseArguments()
	}
	return m.Complete(p.Parser, syntax.JsNewExpression)
}

//nolint:gocyclo,cyclop,funlen // Primary expression dispatch
func (p *jsParser) parsePrimary() (parser.CompletedMarker, bool) {
	m := p.Start()
	switch p.Cur() {
	case syntax.ThisKw:
		p.BumpAny()
		return m.Complete(p.Parser, syntax.JsThisExpression), true
	case syntax.SuperKw:
		p.BumpAny()
		return m.Complete(p.Parser, syntax.JsSuperExpression), true
	case syntax.NullKw:
		p.BumpAny()
		return m.Complete(p.Parser, syntax.JsNullLiteralExpression), true
	case syntax.TrueKw, syntax.FalseKw:
		p.BumpAny()
		return m.Complete(p.Parser, syntax.JsBooleanLiteralExpression), true
	case syntax.NumberLit:
		p.BumpAny()
		return m.Complete(p.Parser, syntax.JsNumberLiteralExpression), true
	case syntax.BigintLit:
		p.BumpAny()
		return m.Complete(p.Parser, syntax.JsBigintLiteralExpression), true
	case syntax.StringLit:
		p.BumpAny()
		return m.Complete(p.Parser, syntax.JsStringLiteralExpression), true
	case syntax.Slash, syntax.SlashEq:
		p.Relex(contextRegex)
		p.BumpAny()
		return m.Complete(p.Parser, syntax.JsRegexLiteralExpression), true
	case syntax.Backtick:
		p.parseTemplateBody()
		return m.Complete(p.Parser, syntax.JsTemplateExpression), true
	case syntax.LParen:
		p.Bump(syntax.LParen)
		p.withState(func(s *state) { s.noIn = false }, p.expectExpression)
		p.Expect(syntax.RParen)
		return m.Complete(p.Parser, syntax.JsParenthesizedExpression), true
	case syntax.LBrack:
		m.Abandon(p.Parser)
		return p.parseArray(), true
	case syntax.LBrace:
		m.Abandon(p.Parser)
		return p.parseObject(), true
	case syntax.FunctionKw:
		m.Abandon(p.Parser)
		return p.parseFunction(syntax.JsFunctionExpression, true), true
	case syntax.ClassKw:
		m.Abandon(p.Parser)
		return p.parseClass(syntax.JsClassExpression, true), true
	case syntax.ImportKw:
		p.Bump(syntax.ImportKw)
		if p.At(syntax.Dot) {
			p.Bump(syntax.Dot)
			if p.atContextual("meta") {
				p.BumpAny()
			} else {
				p.ErrorExpected("`meta`")
				p.Missing()
			}
			return m.Complete(p.Parser, syntax.JsImportMetaExpression), true
		}
		if p.At(syntax.LParen) {
			p.parseArguments()
		} else {
			p.ErrorExpected("`(`")
			p.Missing()
		}
		return m.Complete(p.Parser, syntax.JsImportCallExpression), true
	case syntax.Lt:
		if p.opts.JSX {
			m.Abandon(p.Parser)
			return p.parseJsxTagExpression(), true
		}
	case syntax.Ident:
		if p.CurText() == "async" && p.NthAt(1, syntax.FunctionKw) && !p.NthHasPrecedingLineBreak(1) {
			m.Abandon(p.Parser)
			return p.parseFunction(syntax.JsFunctionExpression, true), true
		}
		r := p.Start()
		p.BumpAny()
		r.Complete(p.Parser, syntax.JsReferenceIdentifier)
		return m.Complete(p.Parser, syntax.JsIdentifierExpression), true
	case syntax.Hash:
		// `#x in obj`
		if p.NthAt(1, syntax.Ident) {
			m.Abandon(p.Parser)
			return p.parsePrivateName(), true
		}
	}
	m.Abandon(p.Parser)
	return parser.CompletedMarker{}, false
}
