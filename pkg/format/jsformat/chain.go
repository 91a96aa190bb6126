package jsformat

import (
	"strings"

	"github.com/yaklabco/gobiome/pkg/format"
	"github.com/yaklabco/gobiome/pkg/lang/js"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// chain prints member accesses and calls. Calls on member lookups are
// printed as member chains that break one call per line.
func (f *formatter) chain(n *syntax.Node) format.Element {
	callee := firstExpr(n)
	if callee == nil {
		return f.verbatim(n)
	}
	if n.Kind() != syntax.JsCallExpression {
		return format.Concat(f.node(callee), f.suffix(n))
	}
	if isMemberish(callee.Kind()) && !f.ctx.Suppressed(callee) {
		return f.memberChain(n)
	}
	out := format.Concat(f.node(callee), f.suffix(n))
	if callee.Kind() == syntax.JsCallExpression {
		return format.NewGroup(out)
	}
	return out
}

func isMemberish(k syntax.Kind) bool {
	switch k {
	case syntax.JsStaticMemberExpression, syntax.JsComputedMemberExpression, syntax.TsNonNullAssertionExpression:
		return true
	}
	return false
}

// suffix prints the part of a chain link after its object or callee.
func (f *formatter) suffix(n *syntax.Node) format.Element {
	switch n.Kind() {
	case syntax.JsCallExpression:
		return format.Concat(f.tok(n.FindToken(syntax.QuestionDot)), f.typeNode(n.FindNode(syntax.TsTypeArguments)),
			f.arguments(n.FindNode(syntax.JsCallArguments)))
	case syntax.JsStaticMemberExpression, syntax.JsStaticMemberAssignment:
		return format.Concat(f.tok(n.FindToken(syntax.Dot, syntax.QuestionDot)),
			f.node(n.FindNode(syntax.JsName, syntax.JsPrivateName)))
	case syntax.JsComputedMemberExpression, syntax.JsComputedMemberAssignment:
		exprs := js.Expressions(n)
		if len(exprs) < 2 {
			return f.verbatim(n)
		}
		return format.Concat(f.tok(n.FindToken(syntax.QuestionDot)), f.tok(n.FindToken(syntax.LBrack)),
			f.node(exprs[1]), f.tok(n.FindToken(syntax.RBrack)))
	case syntax.TsNonNullAssertionExpression:
		return f.tok(n.FindToken(syntax.Bang))
	}
	return nil
}

// link is a printed element of a member chain.
type link struct {
	node *syntax.Node
	doc  format.Element
}

// memberChain prints `a.b().c()` either on one line or with every call
// group on its own indented line.
//
//nolint:gocyclo,cyclop,funlen // Chain grouping
func (f *formatter) memberChain(n *syntax.Node) format.Element {
	var spine []*syntax.Node
	head := n
walk:
	for {
		if head != n && f.ctx.Suppressed(head) {
			break
		}
		next := firstExpr(head)
		if next == nil {
			break
		}
		switch {
		case head.Kind() == syntax.JsCallExpression:
			if !isMemberish(next.Kind()) && next.Kind() != syntax.JsCallExpression {
				break walk
			}
		case !isMemberish(head.Kind()):
			break walk
		}
		spine = append(spine, head)
		head = next
	}
	links := []link{{node: head, doc: f.node(head)}}
	for i := len(spine) - 1; i >= 0; i-- {
		links = append(links, link{node: spine[i], doc: f.suffix(spine[i])})
	}

	// The first group is the head followed by calls, literal index
	// accesses and, unless the head is a call, all but the last lookup
	// before the first call.
	i := 1
	for ; i < len(links); i++ {
		k := links[i].node.Kind()
		if k == syntax.TsNonNullAssertionExpression || k == syntax.JsCallExpression || isLiteralIndex(links[i].node) {
			continue
		}
		break
	}
	if head.Kind() != syntax.JsCallExpression {
		for ; i+1 < len(links); i++ {
			if !isMemberish(links[i].node.Kind()) || !isMemberish(links[i+1].node.Kind()) {
				break
			}
		}
	}
	groups := [][]link{links[:i]}

	var current []link
	seenCall := false
	for ; i < len(links); i++ {
		l := links[i]
		if seenCall && isMemberish(l.node.Kind()) {
			if l.node.Kind() == syntax.JsComputedMemberExpression && !isLiteralIndex(l.node) {
				current = append(current, l)
				continue
			}
			groups = append(groups, current)
			current = nil
			seenCall = false
		}
		if l.node.Kind() == syntax.JsCallExpression {
			seenCall = true
		}
		current = append(current, l)
		if len(f.comments.Trailing(l.node.LastToken())) > 0 {
			groups = append(groups, current)
			current = nil
			seenCall = false
		}
	}
	if len(current) > 0 {
		groups = append(groups, current)
	}

	printGroup := func(g []link) format.Element {
		docs := make(format.List, 0, len(g))
		for _, l := range g {
			docs = append(docs, l.doc)
		}
		return docs
	}
	printed := make([]format.Element, len(groups))
	for j, g := range groups {
		printed[j] = printGroup(g)
	}
	oneLine := format.Concat(printed...)

	merge := len(groups) >= 2 && len(groups[1]) > 0 && f.shouldMergeFirstGroup(n, groups)
	cutoff := 2
	if merge {
		cutoff = 3
	}
	comments := f.chainHasComments(spine)
	if len(groups) <= cutoff && !comments {
		return format.NewGroup(oneLine)
	}

	restStart := 1
	expanded := format.Concat(printed[0])
	if merge {
		expanded = append(expanded, printed[1])
		restStart = 2
	}
	if rest := printed[restStart:]; len(rest) > 0 {
		expanded = append(expanded, format.Indent{Contents: format.Concat(format.HardLine, format.Join(format.HardLine, rest))})
	}

	calls := 0
	complexArgs := false
	for _, l := range links[1:] {
		if l.node.Kind() != syntax.JsCallExpression {
			continue
		}
		calls++
		for _, arg := range items(l.node.FindNode(syntax.JsCallArgumentList)) {
			if !isSimpleArgument(arg.node, 0) {
				complexArgs = true
			}
		}
	}
	breaks := false
	for _, p := range printed[:len(printed)-1] {
		if format.WillBreak(p) {
			breaks = true
		}
	}
	if comments || (calls > 2 && complexArgs) || breaks {
		return &format.Group{Contents: expanded, Break: true}
	}
	return &format.ConditionalGroup{Variants: []format.List{oneLine, expanded}}
}

// shouldMergeFirstGroup reports whether the first call group stays on the
// line of a short or factory-like head such as `this`, `$` or `z`.
func (f *formatter) shouldMergeFirstGroup(n *syntax.Node, groups [][]link) bool {
	literalIndex := isLiteralIndex(groups[1][0].node)
	if len(groups[0]) == 1 {
		first := groups[0][0].node
		switch first.Kind() {
		case syntax.JsThisExpression:
			return true
		case syntax.JsIdentifierExpression:
			name := first.FirstToken().Text()
			parent := effectiveParent(n)
			statement := parent != nil && parent.Kind() == syntax.JsExpressionStatement
			return isFactory(name) || (statement && len(name) <= f.opts.IndentWidth) || literalIndex
		}
		return false
	}
	last := groups[0][len(groups[0])-1].node
	if last.Kind() != syntax.JsStaticMemberExpression {
		return false
	}
	name := last.FindNode(syntax.JsName)
	return name != nil && (isFactory(name.FirstToken().Text()) || literalIndex)
}

func isFactory(name string) bool {
	if name == "" {
		return false
	}
	if name[0] >= 'A' && name[0] <= 'Z' {
		return true
	}
	return strings.Trim(name, "$_") == ""
}

func isLiteralIndex(n *syntax.Node) bool {
	if n.Kind() != syntax.JsComputedMemberExpression {
		return false
	}
	exprs := js.Expressions(n)
	if len(exprs) < 2 {
		return false
	}
	switch exprs[1].Kind() {
	case syntax.JsNumberLiteralExpression, syntax.JsStringLiteralExpression:
		return true
	case syntax.JsTemplateExpression:
		return exprs[1].FindNode(syntax.JsTemplateElement) == nil
	}
	return false
}

// chainHasComments reports whether a link token of the chain carries a
// comment.
func (f *formatter) chainHasComments(spine []*syntax.Node) bool {
	for _, n := range spine {
		for el := range n.Children() {
			if t, ok := el.(*syntax.Token); ok && f.comments.TokenHasComments(t) {
				return true
			}
		}
		if name := n.FindNode(syntax.JsName, syntax.JsPrivateName); name != nil && f.comments.HasComments(name) {
			return true
		}
	}
	return false
}

// isSimpleArgument reports whether arg is short enough to keep a chain
// with many calls on one line.
func isSimpleArgument(arg *syntax.Node, depth int) bool {
	switch arg.Kind() {
	case syntax.JsIdentifierExpression, syntax.JsThisExpression, syntax.JsNullLiteralExpression,
		syntax.JsBooleanLiteralExpression, syntax.JsNumberLiteralExpression, syntax.JsStringLiteralExpression,
		syntax.JsBigintLiteralExpression, syntax.JsRegexLiteralExpression:
		return true
	case syntax.JsTemplateExpression:
		return arg.FindNode(syntax.JsTemplateElement) == nil
	case syntax.JsObjectExpression:
		for _, m := range items(arg.FindNode(syntax.JsObjectMemberList)) {
			switch m.node.Kind() {
			case syntax.JsShorthandPropertyObjectMember:
			case syntax.JsPropertyObjectMember:
				exprs := js.Expressions(m.node)
				if len(exprs) == 0 || !isSimpleArgument(exprs[len(exprs)-1], depth) {
					return false
				}
			default:
				return false
			}
		}
		return true
	case syntax.JsArrayExpression:
		for _, el := range items(arg.FindNode(syntax.JsArrayElementList)) {
			if !isSimpleArgument(el.node, depth) {
				return false
			}
		}
		return true
	case syntax.JsUnaryExpression:
		return isSimpleArgument(firstExpr(arg), depth)
	case syntax.JsCallExpression, syntax.JsNewExpression:
		if depth >= 2 {
			return false
		}
		callee := firstExpr(arg)
		if callee == nil || !isSimpleArgument(callee, depth) {
			return false
		}
		for _, a := range items(arg.FindNode(syntax.JsCallArgumentList)) {
			if !isSimpleArgument(a.node, depth+1) {
				return false
			}
		}
		return true
	case syntax.JsStaticMemberExpression:
		return isSimpleArgument(firstExpr(arg), depth)
	case syntax.JsComputedMemberExpression:
		exprs := js.Expressions(arg)
		return len(exprs) == 2 && isSimpleArgument(exprs[0], depth) && isSimpleArgument(exprs[1], depth)
	}
	return false
}

// arguments prints call arguments. A trailing function, object or array
// argument hugs the parentheses when the others fit on the line.
func (f *formatter) arguments(n *syntax.Node) format.Element {
	if n == nil {
		return format.Str("()")
	}
	open, close := n.FindToken(syntax.LParen), n.FindToken(syntax.RParen)
	its := items(n.FindNode(syntax.JsCallArgumentList))
	o := delimitedOptions{trailing: f.trailingComma(false)}
	if len(its) == 0 || !f.shouldHugLast(open, close, its) {
		return f.delimited(open, f.printItems(its, f.node), close, o)
	}

	printed := f.printItems(its, f.node)
	openDoc, closeDoc := f.tok(open), f.tok(close)
	sep := format.Concat(format.Str(","), format.Space{})

	head := printed[:len(printed)-1]
	last := printed[len(printed)-1]
	for _, p := range head {
		if format.WillBreak(p) {
			return f.expandedArguments(openDoc, printed, closeDoc, o)
		}
	}

	allFlat := format.Concat(openDoc, format.Join(sep, printed), closeDoc)
	var prefix format.List
	if len(head) > 0 {
		prefix = format.Concat(format.Join(sep, head), sep)
	}
	hugged := format.Concat(openDoc, prefix, &format.Group{Contents: format.Concat(last), Break: true}, closeDoc)
	return &format.ConditionalGroup{Variants: []format.List{
		allFlat,
		hugged,
		format.Concat(f.expandedArguments(openDoc, printed, closeDoc, o)),
	}}
}

func (f *formatter) expandedArguments(open format.Element, printed []format.Element, close format.Element,
	o delimitedOptions,
) format.Element {
	body := format.Join(format.Concat(format.Str(","), format.SoftLineOrSpace), printed)
	if o.trailing {
		body = append(body, format.IfBreak{Break: format.List{format.Str(",")}})
	}
	return &format.Group{
		Contents: format.Concat(open, format.Indent{Contents: format.Concat(format.SoftLine, body)}, format.SoftLine, close),
		Break:    true,
	}
}

func (f *formatter) shouldHugLast(open, close *syntax.Token, its []listItem) bool {
	// A line comment after the closing parenthesis is deferred to the end of
	// the line and does not change how the arguments break.
	if f.comments.TokenHasComments(open) || len(f.comments.Leading(close)) > 0 ||
		!onlyLineComments(f.comments.Trailing(close)) {
		return false
	}
	for _, it := range its {
		if f.comments.TokenHasComments(it.comma) || len(f.comments.Leading(it.node.FirstToken())) > 0 ||
			len(f.comments.Trailing(it.node.LastToken())) > 0 {
			return false
		}
	}
	last := its[len(its)-1].node
	if len(its) > 1 && its[len(its)-2].node.Kind() == last.Kind() {
		return false
	}
	return isHuggable(last)
}

func onlyLineComments(comments []format.Comment) bool {
	for _, c := range comments {
		if !c.IsLine() {
			return false
		}
	}
	return true
}

func isHuggable(n *syntax.Node) bool {
	switch n.Kind() {
	case syntax.JsObjectExpression:
		return len(items(n.FindNode(syntax.JsObjectMemberList))) > 0
	case syntax.JsArrayExpression:
		return len(items(n.FindNode(syntax.JsArrayElementList))) > 0
	case syntax.JsFunctionExpression:
		return true
	case syntax.JsArrowFunctionExpression:
		body := js.Function{Node: n}.Body()
		if body == nil {
			return false
		}
		switch body.Kind() {
		case syntax.JsFunctionBody, syntax.JsBlockStatement:
			return true
		case syntax.JsObjectExpression, syntax.JsArrayExpression:
			return isHuggable(body)
		}
	}
	return false
}
