package jsformat

import (
	"github.com/yaklabco/gobiome/pkg/format"
	"github.com/yaklabco/gobiome/pkg/lang/js"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// typeNode prints TypeScript type syntax.
//
//nolint:gocyclo,cyclop // Type dispatch
func (f *formatter) typeNode(n *syntax.Node) format.Element {
	if n == nil {
		return nil
	}
	if f.ctx.Suppressed(n) {
		return f.verbatim(n)
	}
	switch n.Kind() {
	case syntax.TsPredefinedType, syntax.TsParenthesizedType, syntax.TsArrayType, syntax.TsIndexedAccessType:
		return f.adjacentType(n)
	case syntax.TsLiteralType:
		return f.literalType(n)
	case syntax.TsReferenceType, syntax.TsTypeofType:
		return f.referenceType(n)
	case syntax.TsTypeArguments, syntax.TsTypeParameters:
		return f.typeList(n)
	case syntax.TsTypeParameter, syntax.TsConditionalType:
		return f.spacedType(n)
	case syntax.TsUnionType:
		return f.unionType(n)
	case syntax.TsIntersectionType:
		return f.intersectionType(n)
	case syntax.TsTypeOperatorType:
		return f.typeOperator(n)
	case syntax.TsObjectType:
		return f.objectType(n)
	case syntax.TsTupleType:
		return f.tupleType(n)
	case syntax.TsFunctionType:
		return f.signature(n)
	}
	return f.verbatim(n)
}

// typeAnnotation prints `: Type`, and `: asserts x is Type` for return
// types.
func (f *formatter) typeAnnotation(n *syntax.Node) format.Element {
	if n == nil {
		return nil
	}
	var out format.List
	for el := range n.Children() {
		switch c := el.(type) {
		case *syntax.Token:
			if c.Kind() == syntax.Colon {
				out = append(out, f.tok(c))
				continue
			}
			out = append(out, format.Space{}, f.tok(c))
		case *syntax.Node:
			out = append(out, format.Space{}, f.typeNode(c))
		}
	}
	return out
}

func (f *formatter) adjacentType(n *syntax.Node) format.Element {
	var out format.List
	for el := range n.Children() {
		switch c := el.(type) {
		case *syntax.Token:
			out = append(out, f.tok(c))
		case *syntax.Node:
			out = append(out, f.typeNode(c))
		}
	}
	return out
}

func (f *formatter) literalType(n *syntax.Node) format.Element {
	if n.FindToken(syntax.Backtick) != nil {
		return f.verbatim(n)
	}
	var out format.List
	for t := range n.Tokens() {
		switch t.Kind() {
		case syntax.StringLit:
			out = append(out, f.stringToken(t))
		case syntax.NumberLit:
			out = append(out, f.numberToken(t, false))
		default:
			out = append(out, f.tok(t))
		}
	}
	return out
}

// referenceType prints `Name<Args>` and `typeof name<Args>`.
func (f *formatter) referenceType(n *syntax.Node) format.Element {
	var out format.List
	for el := range n.Children() {
		switch c := el.(type) {
		case *syntax.Token:
			out = append(out, f.tok(c))
			if c.Kind() == syntax.TypeofKw {
				out = append(out, format.Space{})
			}
		case *syntax.Node:
			if c.Kind() == syntax.TsTypeArguments {
				out = append(out, f.typeList(c))
				continue
			}
			out = append(out, f.tokens(c))
		}
	}
	return out
}

// typeList prints type arguments and type parameters. A trailing comma
// in the source is kept, since `<T,>` disambiguates generic arrows from
// JSX.
func (f *formatter) typeList(n *syntax.Node) format.Element {
	list := n.FindNode(syntax.TsTypeArgumentList, syntax.TsTypeParameterList)
	its := items(list)
	printed := f.printItems(its, f.typeNode)
	o := delimitedOptions{}
	if len(its) > 0 && its[len(its)-1].comma != nil {
		o.forceTrailing = true
	}
	return f.delimited(n.FindToken(syntax.Lt), printed, n.FindToken(syntax.Gt), o)
}

// spacedType prints type parameters and conditional types, whose parts
// are separated by single spaces.
func (f *formatter) spacedType(n *syntax.Node) format.Element {
	var parts []format.Element
	for el := range n.Children() {
		switch c := el.(type) {
		case *syntax.Token:
			parts = append(parts, f.tok(c))
		case *syntax.Node:
			switch c.Kind() {
			case syntax.JsIdentifierBinding:
				parts = append(parts, f.tokens(c))
			case syntax.TsExtendsClause:
				parts = append(parts, format.Concat(f.tok(c.FindToken(syntax.ExtendsKw)), format.Space{},
					f.typeNode(firstChildNode(c))))
			default:
				parts = append(parts, f.typeNode(c))
			}
		}
	}
	return format.Join(format.Space{}, parts)
}

// separatedTypes prints the operands of a union or intersection, each
// followed by the comments of the operator after it.
func (f *formatter) separatedTypes(list *syntax.Node) []format.Element {
	if list == nil {
		return nil
	}
	var parts []format.Element
	for el := range list.Children() {
		switch c := el.(type) {
		case *syntax.Node:
			parts = append(parts, f.typeNode(c))
		case *syntax.Token:
			if len(parts) > 0 {
				parts[len(parts)-1] = format.Concat(parts[len(parts)-1], f.commentsOf(c))
			}
		}
	}
	return parts
}

// unionType prints `A | B`. A union that does not fit puts each variant
// on its own line behind a leading `|`.
func (f *formatter) unionType(n *syntax.Node) format.Element {
	parts := f.separatedTypes(n.FindNode(syntax.TsUnionTypeVariantList))
	lead := f.commentsOf(n.FindToken(syntax.Pipe))
	if len(parts) < 2 {
		return format.Concat(lead, format.List(parts))
	}
	body := format.List{format.SoftLine, format.IfBreak{Break: format.List{format.Str("| ")}}}
	for i, p := range parts {
		if i > 0 {
			body = append(body, format.SoftLineOrSpace, format.Str("| "))
		}
		body = append(body, p)
	}
	return format.Concat(lead, &format.Group{Contents: format.List{format.Indent{Contents: body}}})
}

func (f *formatter) intersectionType(n *syntax.Node) format.Element {
	lead := f.commentsOf(n.FindToken(syntax.Amp))
	return format.Concat(lead, format.Join(format.Str(" & "),
		f.separatedTypes(n.FindNode(syntax.TsIntersectionTypeElementList))))
}

// typeOperator prints `keyof T`, `readonly T[]`, `infer U` and the rest
// element `...T` of a tuple.
func (f *formatter) typeOperator(n *syntax.Node) format.Element {
	op := n.FirstToken()
	operand := f.typeNode(firstChildNode(n))
	if op.Kind() == syntax.DotDotDot {
		return format.Concat(f.tok(op), operand)
	}
	return format.Concat(f.tok(op), format.Space{}, operand)
}

// typeMember prints a member of an object type or interface without its
// separator, which is returned for the caller to print.
func (f *formatter) typeMember(n *syntax.Node) (format.Element, *syntax.Token) {
	if n.Kind() == syntax.JsBogusMember {
		return f.verbatim(n), nil
	}
	var out format.List
	var sep *syntax.Token
	for el := range n.Children() {
		switch c := el.(type) {
		case *syntax.Token:
			switch c.Kind() {
			case syntax.Semicolon, syntax.Comma:
				sep = c
			case syntax.ReadonlyKw, syntax.GetKw, syntax.SetKw, syntax.NewKw:
				out = append(out, f.tok(c), format.Space{})
			default:
				out = append(out, f.tok(c))
			}
		case *syntax.Node:
			out = append(out, f.signaturePart(c))
		}
	}
	return out, sep
}

func (f *formatter) signaturePart(n *syntax.Node) format.Element {
	switch n.Kind() {
	case syntax.TsTypeAnnotation, syntax.TsReturnTypeAnnotation:
		return f.typeAnnotation(n)
	case syntax.JsParameters:
		return f.parameters(n)
	case syntax.TsTypeParameters:
		return f.typeList(n)
	case syntax.TsIndexSignatureParameter:
		return format.Concat(f.tokens(n.FindNode(syntax.JsIdentifierBinding)),
			f.typeAnnotation(n.FindNode(syntax.TsTypeAnnotation)))
	}
	if js.AnyType.Has(n.Kind()) {
		return f.typeNode(n)
	}
	return f.node(n)
}

// typeMembers prints the members of list. The separator of each member is
// printed by sep, which receives nil when the source has none.
func (f *formatter) typeMembers(list *syntax.Node, sep func(*syntax.Token) format.Element) []format.Element {
	if list == nil {
		return nil
	}
	var out []format.Element
	for el := range list.Children() {
		switch c := el.(type) {
		case *syntax.Node:
			printed, s := f.typeMember(c)
			out = append(out, format.Concat(printed, sep(s)))
		case *syntax.Token:
			if len(out) > 0 {
				out[len(out)-1] = format.Concat(out[len(out)-1], f.commentsOf(c))
			}
		}
	}
	return out
}

// objectType prints `{ a: string; b: number }`, breaking one member per
// line when it does not fit or when the first member starts a new line.
func (f *formatter) objectType(n *syntax.Node) format.Element {
	list := n.FindNode(syntax.TsTypeMemberList)
	members := f.typeMembers(list, f.commentsOf)
	o := delimitedOptions{spaced: f.opts.BracketSpacing, trailing: true, separator: ";"}
	if list != nil {
		if first := list.FirstToken(); first != nil && first.HasLeadingNewline() {
			o.expand = true
		}
	}
	return f.delimited(n.FindToken(syntax.LBrace), members, n.FindToken(syntax.RBrace), o)
}

func (f *formatter) tupleType(n *syntax.Node) format.Element {
	var elems []format.Element
	rest := false
	if list := n.FindNode(syntax.TsTupleTypeElementList); list != nil {
		for el := range list.Children() {
			switch c := el.(type) {
			case *syntax.Node:
				elems = append(elems, f.typeNode(c))
				rest = c.Kind() == syntax.TsTypeOperatorType && c.FirstToken().Kind() == syntax.DotDotDot
			case *syntax.Token:
				if len(elems) == 0 {
					continue
				}
				last := len(elems) - 1
				if c.Kind() == syntax.Question {
					elems[last] = format.Concat(elems[last], f.tok(c))
				} else {
					elems[last] = format.Concat(elems[last], f.commentsOf(c))
				}
			}
		}
	}
	return f.delimited(n.FindToken(syntax.LBrack), elems, n.FindToken(syntax.RBrack),
		delimitedOptions{trailing: f.trailingComma(true) && !rest})
}

// signature prints function and constructor types:
// `new <T>(a: T) => U`.
func (f *formatter) signature(n *syntax.Node) format.Element {
	var out format.List
	for el := range n.Children() {
		switch c := el.(type) {
		case *syntax.Token:
			switch c.Kind() {
			case syntax.NewKw:
				out = append(out, f.tok(c), format.Space{})
			case syntax.FatArrow:
				out = append(out, format.Space{}, f.tok(c), format.Space{})
			default:
				out = append(out, f.tok(c))
			}
		case *syntax.Node:
			out = append(out, f.signaturePart(c))
		}
	}
	return out
}

// typeAlias prints `type Name<T> = Type;`.
func (f *formatter) typeAlias(n *syntax.Node) format.Element {
	return format.Concat(
		f.tok(n.FindToken(syntax.TypeKw)), format.Space{}, f.tokens(n.FindNode(syntax.JsIdentifierBinding)),
		f.typeNode(n.FindNode(syntax.TsTypeParameters)), format.Space{}, f.tok(n.FindToken(syntax.Eq)), format.Space{},
		f.typeNode(n.FindNode(js.AnyType.Kinds()...)), f.semicolon(n.FindToken(syntax.Semicolon)),
	)
}

// interfaceDeclaration prints an interface with one member per line, each
// terminated by a semicolon.
func (f *formatter) interfaceDeclaration(n *syntax.Node) format.Element {
	head := format.Concat(f.tok(n.FindToken(syntax.InterfaceKw)), format.Space{},
		f.tokens(n.FindNode(syntax.JsIdentifierBinding)), f.typeNode(n.FindNode(syntax.TsTypeParameters)))
	if ext := n.FindNode(syntax.TsExtendsClause); ext != nil {
		heritage := f.printItems(items(ext.FindNode(syntax.TsTypeList)), f.typeNode)
		head = append(head, format.Space{}, f.tok(ext.FindToken(syntax.ExtendsKw)), format.Space{},
			format.Join(format.Str(", "), heritage))
	}

	list := n.FindNode(syntax.TsTypeMemberList)
	members := f.typeMembers(list, func(t *syntax.Token) format.Element { return f.tokText(t, ";") })
	var body format.List
	if list != nil {
		for i, m := range list.ChildNodeList() {
			if i >= len(members) {
				break
			}
			if i > 0 {
				if format.BlankLineBefore(m.FirstToken()) {
					body = append(body, format.EmptyLine)
				} else {
					body = append(body, format.HardLine)
				}
			}
			body = append(body, members[i])
		}
	}
	return format.Concat(head, format.Space{},
		f.braced(n.FindToken(syntax.LBrace), body, n.FindToken(syntax.RBrace)))
}

// enumDeclaration prints an enum with one member per line.
func (f *formatter) enumDeclaration(n *syntax.Node) format.Element {
	var head format.List
	if c := n.FindToken(syntax.ConstKw); c != nil {
		head = append(head, f.tok(c), format.Space{})
	}
	head = append(head, f.tok(n.FindToken(syntax.EnumKw)), format.Space{},
		f.tokens(n.FindNode(syntax.JsIdentifierBinding)), format.Space{})

	members := f.printItems(items(n.FindNode(syntax.TsEnumMemberList)), f.enumMember)
	return format.Concat(head, f.delimited(n.FindToken(syntax.LBrace), members, n.FindToken(syntax.RBrace),
		delimitedOptions{spaced: true, trailing: f.trailingComma(true), expand: true}))
}

func (f *formatter) enumMember(n *syntax.Node) format.Element {
	if n.Kind() != syntax.TsEnumMember {
		return f.verbatim(n)
	}
	out := format.Concat(f.node(firstChildNode(n)))
	if init := n.FindNode(syntax.JsInitializerClause); init != nil {
		out = append(out, format.Space{}, f.tok(init.FindToken(syntax.Eq)), format.Space{}, f.node(firstExpr(init)))
	}
	return out
}
