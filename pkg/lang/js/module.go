package js

import (
	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// parseImport parses every import declaration form:
//
//	import "mod";
//	import a from "mod";
//	import * as ns from "mod";
//	import { a, b as c } from "mod";
//	import a, { b } from "mod";
//	import type { T } from "mod";
func (p *jsParser) parseImport() {
	m := p.Start()
	p.Bump(syntax.ImportKw)

	if p.At(syntax.StringLit) {
		c := p.Start()
		p.parseModuleSource()
		p.parseImportAttributes()
		c.Complete(p.Parser, syntax.JsImportBareClause)
		p.semicolon()
		m.Complete(p.Parser, syntax.JsImport)
		return
	}

	c := p.Start()
	if p.atContextual("type") && !p.nthContextual(1, "from") &&
		(p.NthAt(1, syntax.Ident) || p.NthAt(1, syntax.LBrace) || p.NthAt(1, syntax.Star)) {
		start := p.CurRange().Start
		p.bumpContextual(syntax.TypeKw)
		p.tsOnly("type imports", start)
	}

	var kind syntax.Kind
	switch {
	case p.At(syntax.Star):
		p.parseNamespaceImportSpecifier()
		kind = syntax.JsImportNamespaceClause
	case p.At(syntax.LBrace):
		p.parseNamedImportSpecifiers()
		kind = syntax.JsImportNamedClause
	case p.At(syntax.Ident):
		d := p.Start()
		b := p.Start()
		p.BumpAny()
		b.Complete(p.Parser, syntax.JsIdentifierBinding)
		d.Complete(p.Parser, syntax.JsDefaultImportSpecifier)
		kind = syntax.JsImportDefaultClause
		if p.Eat(syntax.Comma) {
			kind = syntax.JsImportCombinedClause
			switch {
			case p.At(syntax.Star):
				p.parseNamespaceImportSpecifier()
			case p.At(syntax.LBrace):
				p.parseNamedImportSpecifiers()
			default:
				p.ErrorExpected("a namespace import or named imports")
				p.Missing()
			}
		}
	default:
		p.ErrorExpected("an import clause")
		c.Abandon(p.Parser)
		recovery := parser.NewRecovery(syntax.JsBogus, statementRecovery).WithLineBreak()
		if _, err := recovery.Recover(p.Parser); err != nil {
			p.Missing()
		}
		p.semicolon()
		m.Complete(p.Parser, syntax.JsImport)
		return
	}

	if p.atContextual("from") {
		p.bumpContextual(syntax.FromKw)
	} else {
		p.ErrorExpected("`from`")
		p.Missing()
	}
	p.expectModuleSource()
	p.parseImportAttributes()
	c.Complete(p.Parser, kind)
	p.semicolon()
	m.Complete(p.Parser, syntax.JsImport)
}

func (p *jsParser) parseNamespaceImportSpecifier() {
	m := p.Start()
	p.Bump(syntax.Star)
	if p.atContextual("as") {
		p.bumpContextual(syntax.AsKw)
	} else {
		p.ErrorExpected("`as`")
		p.Missing()
	}
	p.expectBinding()
	m.Complete(p.Parser, syntax.JsNamespaceImportSpecifier)
}

func (p *jsParser) parseNamedImportSpecifiers() {
	m := p.Start()
	p.Bump(syntax.LBrace)
	list := p.Start()
	for !p.At(syntax.RBrace) && !p.At(syntax.EOF) {
		if !p.parseNamedImportSpecifier() {
			p.ErrorExpected("an import specifier")
			recovery := parser.NewRecovery(syntax.JsBogus, memberRecovery)
			if _, err := recovery.Recover(p.Parser); err != nil {
				break
			}
		}
		if p.At(syntax.RBrace) || !p.Expect(syntax.Comma) {
			break
		}
	}
	list.Complete(p.Parser, syntax.JsNamedImportSpecifierList)
	p.Expect(syntax.RBrace)
	m.Complete(p.Parser, syntax.JsNamedImportSpecifiers)
}

func (p *jsParser) parseNamedImportSpecifier() bool {
	if !p.atIdentifierName() && !p.At(syntax.StringLit) {
		return false
	}
	m := p.Start()
	if p.atContextual("type") && (p.atIdentifierNameAt(1) || p.NthAt(1, syntax.StringLit)) &&
		!(p.nthContextual(1, "as") && !p.atIdentifierNameAt(2)) {
		start := p.CurRange().Start
		p.bumpContextual(syntax.TypeKw)
		p.tsOnly("type imports", start)
	}

	if p.nthContextual(1, "as") || p.At(syntax.StringLit) || (p.Cur().IsKeyword() && syntax.ReservedKeyword(p.Cur())) {
		n := p.Start()
		if p.At(syntax.StringLit) {
			p.BumpAny()
		} else {
			p.BumpRemap(syntax.Ident)
		}
		n.Complete(p.Parser, syntax.JsLiteralMemberName)
		if p.atContextual("as") {
			p.bumpContextual(syntax.AsKw)
		} else {
			p.ErrorExpected("`as`")
			p.Missing()
		}
		p.expectBinding()
		m.Complete(p.Parser, syntax.JsNamedImportSpecifier)
		return true
	}

	p.expectBinding()
	m.Complete(p.Parser, syntax.JsShorthandNamedImportSpecifier)
	return true
}

func (p *jsParser) atIdentifierNameAt(n int) bool {
	k := p.Nth(n)
	return k == syntax.Ident || k.IsKeyword()
}

func (p *jsParser) parseModuleSource() {
	m := p.Start()
	p.Bump(syntax.StringLit)
	m.Complete(p.Parser, syntax.JsModuleSource)
}

func (p *jsParser) expectModuleSource() {
	if p.At(syntax.StringLit) {
		p.parseModuleSource()
		return
	}
	p.ErrorExpected("a module source string")
	p.Missing()
}

// parseImportAttributes consumes `with { type: "json" }` as an object
// expression attached to the clause.
func (p *jsParser) parseImportAttributes() {
	if (p.At(syntax.WithKw) || p.atContextual("assert")) && p.NthAt(1, syntax.LBrace) && !p.HasPrecedingLineBreak() {
		p.BumpRemap(syntax.WithKw)
		p.parseObject()
	}
}

// parseExport parses declarations, default exports, named clauses and
// re-exports.
//
//nolint:gocyclo,cyclop,funlen // Export form dispatch
func (p *jsParser) parseExport() {
	m := p.Start()
	p.Bump(syntax.ExportKw)

	switch {
	case p.At(syntax.DefaultKw):
		p.parseExportDefault()
	case p.At(syntax.Star):
		c := p.Start()
		p.Bump(syntax.Star)
		if p.atContextual("as") {
			p.bumpContextual(syntax.AsKw)
			n := p.Start()
			if p.atIdentifierName() {
				p.BumpRemap(syntax.Ident)
			} else if p.At(syntax.StringLit) {
				p.BumpAny()
			} else {
				p.ErrorExpected("an export name")
			}
			n.Complete(p.Parser, syntax.JsName)
		}
		p.expectFrom()
		p.expectModuleSource()
		p.parseImportAttributes()
		p.semicolon()
		c.Complete(p.Parser, syntax.JsExportFromClause)
	case p.At(syntax.LBrace) || (p.atContextual("type") && p.NthAt(1, syntax.LBrace)):
		c := p.Start()
		if p.atContextual("type") {
			start := p.CurRange().Start
			p.bumpContextual(syntax.TypeKw)
			p.tsOnly("type exports", start)
		}
		p.Bump(syntax.LBrace)
		list := p.Start()
		for !p.At(syntax.RBrace) && !p.At(syntax.EOF) {
			if !p.parseExportNamedSpecifier() {
				p.ErrorExpected("an export specifier")
				recovery := parser.NewRecovery(syntax.JsBogus, memberRecovery)
				if _, err := recovery.Recover(p.Parser); err != nil {
					break
				}
			}
			if p.At(syntax.RBrace) || !p.Expect(syntax.Comma) {
				break
			}
		}
		list.Complete(p.Parser, syntax.JsExportNamedSpecifierList)
		p.Expect(syntax.RBrace)
		kind := syntax.JsExportNamedClause
		if p.atContextual("from") {
			p.bumpContextual(syntax.FromKw)
			p.expectModuleSource()
			p.parseImportAttributes()
			kind = syntax.JsExportNamedFromClause
		}
		p.semicolon()
		c.Complete(p.Parser, kind)
	case p.At(syntax.VarKw), p.At(syntax.ConstKw) && !p.NthAt(1, syntax.EnumKw), p.atContextual("let"):
		p.parseVariableStatement()
	case p.At(syntax.FunctionKw), p.atContextual("async") && p.NthAt(1, syntax.FunctionKw):
		p.parseFunction(syntax.JsFunctionDeclaration, false)
	case p.At(syntax.ClassKw), p.atContextual("abstract") && p.NthAt(1, syntax.ClassKw):
		p.parseClass(syntax.JsClassDeclaration, false)
	case p.At(syntax.EnumKw), p.At(syntax.ConstKw):
		p.parseEnum()
	case p.atContextual("type") && p.NthAt(1, syntax.Ident):
		p.parseTypeAlias()
	case p.atContextual("interface") && p.NthAt(1, syntax.Ident):
		p.parseInterface()
	default:
		p.ErrorExpected("a declaration, `default`, `*` or named exports")
		recovery := parser.NewRecovery(syntax.JsBogus, statementRecovery).WithLineBreak()
		if _, err := recovery.Recover(p.Parser); err != nil {
			p.Missing()
		}
	}
	m.Complete(p.Parser, syntax.JsExport)
}

func (p *jsParser) parseExportDefault() {
	m := p.Start()
	p.Bump(syntax.DefaultKw)
	saved := p.exportDefault
	p.exportDefault = true
	defer func() { p.exportDefault = saved }()

	switch {
	case p.At(syntax.FunctionKw), p.atContextual("async") && p.NthAt(1, syntax.FunctionKw) && !p.NthHasPrecedingLineBreak(1):
		p.parseFunction(syntax.JsFunctionDeclaration, false)
		m.Complete(p.Parser, syntax.JsExportDefaultDeclarationClause)
	case p.At(syntax.ClassKw), p.atContextual("abstract") && p.NthAt(1, syntax.ClassKw):
		p.parseClass(syntax.JsClassDeclaration, false)
		m.Complete(p.Parser, syntax.JsExportDefaultDeclarationClause)
	case p.atContextual("interface") && p.NthAt(1, syntax.Ident):
		p.parseInterface()
		m.Complete(p.Parser, syntax.JsExportDefaultDeclarationClause)
	default:
		p.exportDefault = saved
		p.expectAssignment()
		p.semicolon()
		m.Complete(p.Parser, syntax.JsExportDefaultExpressionClause)
	}
}

func (p *jsParser) parseExportNamedSpecifier() bool {
	if !p.atIdentifierName() && !p.At(syntax.StringLit) {
		return false
	}
	m := p.Start()
	if p.atContextual("type") && p.atIdentifierNameAt(1) && !p.nthContextual(1, "as") {
		start := p.CurRange().Start
		p.bumpContextual(syntax.TypeKw)
		p.tsOnly("type exports", start)
	}
	r := p.Start()
	if p.At(syntax.StringLit) {
		p.BumpAny()
		r.Complete(p.Parser, syntax.JsLiteralMemberName)
	} else {
		p.BumpRemap(syntax.Ident)
		r.Complete(p.Parser, syntax.JsReferenceIdentifier)
	}
	if p.atContextual("as") {
		p.bumpContextual(syntax.AsKw)
		n := p.Start()
		switch {
		case p.atIdentifierName():
			p.BumpRemap(syntax.Ident)
		case p.At(syntax.StringLit):
			p.BumpAny()
		default:
			p.ErrorExpected("an export name")
		}
		n.Complete(p.Parser, syntax.JsName)
	}
	m.Complete(p.Parser, syntax.JsExportNamedSpecifier)
	return true
}

func (p *jsParser) expectFrom() {
	if p.atContextual("from") {
		p.bumpContextual(syntax.FromKw)
		return
	}
	p.ErrorExpected("`from`")
	p.Missing()
}
