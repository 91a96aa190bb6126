package semantic

import (
	"slices"

	"github.com/yaklabco/gobiome/pkg/lang/js"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// EdgeKind labels a control-flow edge.
type EdgeKind uint8

// Edge kinds.
const (
	EdgeUnconditional EdgeKind = iota
	EdgeTrue
	EdgeFalse
	EdgeThrow
	EdgeReturn
	EdgeBreak
	EdgeContinue
)

var edgeKindNames = [...]string{"unconditional", "true", "false", "throw", "return", "break", "continue"}

func (k EdgeKind) String() string {
	if int(k) < len(edgeKindNames) {
		return edgeKindNames[k]
	}
	return "unknown"
}

// Edge leaves a block. Label is set for labeled break and continue.
type Edge struct {
	Kind  EdgeKind
	Label string
	To    int
}

// Block is a basic block. Compound statements appear in the block that
// evaluates their head: an if statement sits in the block ending with its
// condition, a while or for loop in its condition block and a do-while in
// the block that enters it.
type Block struct {
	ID         int
	Statements []*syntax.Node
	Edges      []Edge
}

// Graph is the control-flow graph of one function body or module.
type Graph struct {
	Root   *syntax.Node
	Blocks []*Block
	Entry  int
	// Exit is the synthetic block reached by returns and uncaught throws.
	Exit int
}

// Reachable returns, indexed by block ID, whether each block can be reached
// from the entry.
func (g *Graph) Reachable() []bool {
	seen := make([]bool, len(g.Blocks))
	stack := []int{g.Entry}
	seen[g.Entry] = true
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, e := range g.Blocks[id].Edges {
			if !seen[e.To] {
				seen[e.To] = true
				stack = append(stack, e.To)
			}
		}
	}
	return seen
}

// UnreachableStatements returns the outermost statements held by
// unreachable blocks, in source order.
func (g *Graph) UnreachableStatements() []*syntax.Node {
	reachable := g.Reachable()
	var found []*syntax.Node
	for _, blk := range g.Blocks {
		if reachable[blk.ID] {
			continue
		}
		found = append(found, blk.Statements...)
	}
	slices.SortFunc(found, func(a, b *syntax.Node) int { return a.Offset() - b.Offset() })

	var out []*syntax.Node
	for _, n := range found {
		if len(out) > 0 && out[len(out)-1].TextRange().ContainsRange(n.TextRange()) {
			continue
		}
		out = append(out, n)
	}
	return out
}

// Predecessors returns the IDs of the blocks with an edge into id.
func (g *Graph) Predecessors(id int) []int {
	var out []int
	for _, blk := range g.Blocks {
		for _, e := range blk.Edges {
			if e.To == id {
				out = append(out, blk.ID)
				break
			}
		}
	}
	return out
}

type jumpTarget struct {
	label string
	brk   *Block
	// cont is nil for switch statements and labeled blocks.
	cont *Block
	// labelOnly targets accept only labeled breaks.
	labelOnly bool
}

type tryFrame struct {
	catch   *Block
	finally *Block
	inBody  bool
	blocks  []*Block
	returns bool
	throws  bool
}

type graphBuilder struct {
	g       *Graph
	cur     *Block
	exit    *Block
	jumps   []jumpTarget
	frames  []*tryFrame
	pending string
	// incoming counts the edges into each block so far.
	incoming map[int]int
}

// BuildGraph builds the control-flow graph of a function-like node, an
// arrow function with an expression body, or a module root.
func BuildGraph(fn *syntax.Node) *Graph {
	b := &graphBuilder{g: &Graph{Root: fn}, incoming: make(map[int]int)}
	entry := b.newBlock()
	b.exit = b.newBlock()
	b.g.Entry, b.g.Exit = entry.ID, b.exit.ID
	b.cur = entry

	switch body := bodyOf(fn); {
	case body == nil:
	case body.Kind() == syntax.JsStatementList || body.Kind() == syntax.JsModuleItemList:
		b.list(body)
	default:
		b.add(body)
	}
	b.edge(b.cur, b.exit, EdgeUnconditional, "")
	return b.g
}

func bodyOf(fn *syntax.Node) *syntax.Node {
	switch fn.Kind() {
	case syntax.JsModule:
		return fn.FindNode(syntax.JsModuleItemList)
	case syntax.JsStatementList, syntax.JsModuleItemList:
		return fn
	}
	if body := fn.FindNode(syntax.JsFunctionBody); body != nil {
		return body.FindNode(syntax.JsStatementList)
	}
	if fn.Kind() == syntax.JsArrowFunctionExpression {
		exprs := js.Expressions(fn)
		if len(exprs) > 0 {
			return exprs[len(exprs)-1]
		}
	}
	return nil
}

func (b *graphBuilder) newBlock() *Block {
	blk := &Block{ID: len(b.g.Blocks)}
	b.g.Blocks = append(b.g.Blocks, blk)
	for i := len(b.frames) - 1; i >= 0; i-- {
		if b.frames[i].inBody {
			b.frames[i].blocks = append(b.frames[i].blocks, blk)
			break
		}
	}
	return blk
}

func (b *graphBuilder) edge(from, to *Block, kind EdgeKind, label string) {
	if from == nil || to == nil {
		return
	}
	from.Edges = append(from.Edges, Edge{Kind: kind, Label: label, To: to.ID})
	b.incoming[to.ID]++
}

// live reports whether control can fall into blk as far as the graph built
// so far shows. Blocks started after a jump have no incoming edges.
func (b *graphBuilder) live(blk *Block) bool {
	return blk.ID == b.g.Entry || b.incoming[blk.ID] > 0
}

func (b *graphBuilder) add(n *syntax.Node) {
	b.cur.Statements = append(b.cur.Statements, n)
}

// terminate starts a fresh block with no predecessors after a jump.
func (b *graphBuilder) terminate() {
	b.cur = b.newBlock()
}

func (b *graphBuilder) takeLabel() string {
	label := b.pending
	b.pending = ""
	return label
}

func (b *graphBuilder) list(list *syntax.Node) {
	if list == nil {
		return
	}
	for stmt := range list.ChildNodes() {
		b.stmt(stmt)
	}
}

func childStatements(n *syntax.Node) []*syntax.Node {
	var out []*syntax.Node
	for c := range n.ChildNodes() {
		if js.AnyStatement.Has(c.Kind()) {
			out = append(out, c)
		}
	}
	return out
}

func firstStatement(n *syntax.Node) *syntax.Node {
	if stmts := childStatements(n); len(stmts) > 0 {
		return stmts[0]
	}
	return nil
}

//nolint:gocyclo,cyclop // Statement dispatch
func (b *graphBuilder) stmt(n *syntax.Node) {
	if n == nil {
		return
	}
	switch n.Kind() {
	case syntax.JsBlockStatement:
		b.list(n.FindNode(syntax.JsStatementList))
	case syntax.JsIfStatement:
		b.ifStmt(n)
	case syntax.JsWhileStatement, syntax.JsForStatement, syntax.JsForInStatement, syntax.JsForOfStatement:
		b.loop(n)
	case syntax.JsDoWhileStatement:
		b.doWhile(n)
	case syntax.JsSwitchStatement:
		b.switchStmt(n)
	case syntax.JsLabeledStatement:
		b.labeled(n)
	case syntax.JsTryStatement:
		b.tryStmt(n)
	case syntax.JsWithStatement:
		b.add(n)
		b.stmt(firstStatement(n))
	case syntax.JsReturnStatement:
		b.add(n)
		b.edge(b.cur, b.returnTarget(), EdgeReturn, "")
		b.terminate()
	case syntax.JsThrowStatement:
		b.add(n)
		b.edge(b.cur, b.throwTarget(), EdgeThrow, "")
		b.terminate()
	case syntax.JsBreakStatement:
		b.add(n)
		label := jumpLabel(n)
		if t := b.findJump(label, false); t != nil {
			b.edge(b.cur, t.brk, EdgeBreak, label)
		}
		b.terminate()
	case syntax.JsContinueStatement:
		b.add(n)
		label := jumpLabel(n)
		if t := b.findJump(label, true); t != nil {
			b.edge(b.cur, t.cont, EdgeContinue, label)
		}
		b.terminate()
	default:
		b.add(n)
	}
}

func jumpLabel(n *syntax.Node) string {
	if tok := n.FindToken(syntax.Ident); tok != nil {
		return tok.Text()
	}
	return ""
}

func (b *graphBuilder) findJump(label string, isContinue bool) *jumpTarget {
	for i := len(b.jumps) - 1; i >= 0; i-- {
		t := &b.jumps[i]
		switch {
		case label != "" && t.label != label:
			continue
		case isContinue && t.cont == nil:
			if label != "" {
				return nil
			}
			continue
		case label == "" && t.labelOnly:
			continue
		}
		return t
	}
	return nil
}

func (b *graphBuilder) returnTarget() *Block {
	for i := len(b.frames) - 1; i >= 0; i-- {
		if f := b.frames[i]; f.finally != nil {
			f.returns = true
			return f.finally
		}
	}
	return b.exit
}

func (b *graphBuilder) throwTarget() *Block {
	for i := len(b.frames) - 1; i >= 0; i-- {
		f := b.frames[i]
		if f.inBody && f.catch != nil {
			return f.catch
		}
		if f.finally != nil {
			f.throws = true
			return f.finally
		}
	}
	return b.exit
}

func (b *graphBuilder) ifStmt(n *syntax.Node) {
	b.add(n)
	cond := b.cur
	stmts := childStatements(n)

	then := b.newBlock()
	b.edge(cond, then, EdgeTrue, "")
	b.cur = then
	if len(stmts) > 0 {
		b.stmt(stmts[0])
	}
	thenEnd := b.cur

	after := b.newBlock()
	if elseClause := n.FindNode(syntax.JsElseClause); elseClause != nil {
		alt := b.newBlock()
		b.edge(cond, alt, EdgeFalse, "")
		b.cur = alt
		b.stmt(firstStatement(elseClause))
		b.edge(b.cur, after, EdgeUnconditional, "")
	} else {
		b.edge(cond, after, EdgeFalse, "")
	}
	b.edge(thenEnd, after, EdgeUnconditional, "")
	b.cur = after
}

func (b *graphBuilder) loop(n *syntax.Node) {
	label := b.takeLabel()
	cond := b.newBlock()
	b.edge(b.cur, cond, EdgeUnconditional, "")
	cond.Statements = append(cond.Statements, n)

	body := b.newBlock()
	after := b.newBlock()
	b.edge(cond, body, EdgeTrue, "")
	if !loopRunsForever(n) {
		b.edge(cond, after, EdgeFalse, "")
	}

	b.jumps = append(b.jumps, jumpTarget{label: label, brk: after, cont: cond})
	b.cur = body
	b.stmt(firstStatement(n))
	b.edge(b.cur, cond, EdgeUnconditional, "")
	b.jumps = b.jumps[:len(b.jumps)-1]
	b.cur = after
}

func (b *graphBuilder) doWhile(n *syntax.Node) {
	label := b.takeLabel()
	b.add(n)
	body := b.newBlock()
	cond := b.newBlock()
	after := b.newBlock()
	b.edge(b.cur, body, EdgeUnconditional, "")

	b.jumps = append(b.jumps, jumpTarget{label: label, brk: after, cont: cond})
	b.cur = body
	b.stmt(firstStatement(n))
	b.edge(b.cur, cond, EdgeUnconditional, "")
	b.jumps = b.jumps[:len(b.jumps)-1]

	b.edge(cond, body, EdgeTrue, "")
	if !isTrueLiteral(firstExpression(n)) {
		b.edge(cond, after, EdgeFalse, "")
	}
	b.cur = after
}

// loopRunsForever reports `while (true)` and `for (;;)` style loops, whose
// only exits are jumps.
func loopRunsForever(n *syntax.Node) bool {
	switch n.Kind() {
	case syntax.JsWhileStatement:
		return isTrueLiteral(firstExpression(n))
	case syntax.JsForStatement:
		test, ok := forTest(n)
		return !ok || isTrueLiteral(test)
	}
	return false
}

func firstExpression(n *syntax.Node) *syntax.Node {
	if exprs := js.Expressions(n); len(exprs) > 0 {
		return exprs[0]
	}
	return nil
}

// forTest returns the test expression of a classic for statement: the
// expression between the two semicolons of its head.
func forTest(n *syntax.Node) (*syntax.Node, bool) {
	semis := 0
	for el := range n.Children() {
		switch c := el.(type) {
		case *syntax.Token:
			switch c.Kind() {
			case syntax.Semicolon:
				semis++
			case syntax.RParen:
				return nil, false
			}
		case *syntax.Node:
			if semis == 1 && js.AnyExpression.Has(c.Kind()) {
				return c, true
			}
		}
	}
	return nil, false
}

func isTrueLiteral(n *syntax.Node) bool {
	n = js.Unparenthesize(n)
	return n != nil && n.Kind() == syntax.JsBooleanLiteralExpression && n.TrimmedText() == "true"
}

func (b *graphBuilder) switchStmt(n *syntax.Node) {
	label := b.takeLabel()
	b.add(n)
	dispatch := b.cur
	after := b.newBlock()
	b.jumps = append(b.jumps, jumpTarget{label: label, brk: after})

	var prevEnd *Block
	hasDefault := false
	if cases := n.FindNode(syntax.JsSwitchCaseList); cases != nil {
		for clause := range cases.ChildNodes() {
			blk := b.newBlock()
			kind := EdgeTrue
			if clause.Kind() == syntax.JsDefaultClause {
				kind = EdgeFalse
				hasDefault = true
			}
			b.edge(dispatch, blk, kind, "")
			b.edge(prevEnd, blk, EdgeUnconditional, "")
			b.cur = blk
			b.list(clause.FindNode(syntax.JsStatementList))
			prevEnd = b.cur
		}
	}
	b.edge(prevEnd, after, EdgeUnconditional, "")
	if !hasDefault {
		b.edge(dispatch, after, EdgeFalse, "")
	}
	b.jumps = b.jumps[:len(b.jumps)-1]
	b.cur = after
}

func (b *graphBuilder) labeled(n *syntax.Node) {
	label := jumpLabel(n)
	body := firstStatement(n)
	if body == nil {
		b.add(n)
		return
	}
	switch body.Kind() {
	case syntax.JsWhileStatement, syntax.JsForStatement, syntax.JsForInStatement, syntax.JsForOfStatement,
		syntax.JsDoWhileStatement, syntax.JsSwitchStatement:
		b.pending = label
		b.stmt(body)
		return
	}
	after := b.newBlock()
	b.jumps = append(b.jumps, jumpTarget{label: label, brk: after, labelOnly: true})
	b.stmt(body)
	b.jumps = b.jumps[:len(b.jumps)-1]
	b.edge(b.cur, after, EdgeUnconditional, "")
	b.cur = after
}

// tryStmt lowers try/catch/finally. Every block of the protected body gets a
// throw edge to the handler; the finally block joins the normal and the
// exceptional paths and forwards pending returns and throws outward.
func (b *graphBuilder) tryStmt(n *syntax.Node) {
	b.add(n)
	catchClause := n.FindNode(syntax.JsCatchClause)
	finallyClause := n.FindNode(syntax.JsFinallyClause)

	after := b.newBlock()
	frame := &tryFrame{}
	if catchClause != nil {
		frame.catch = b.newBlock()
	}
	if finallyClause != nil {
		frame.finally = b.newBlock()
	}
	next := after
	if frame.finally != nil {
		next = frame.finally
	}

	frame.inBody = true
	b.frames = append(b.frames, frame)
	entry := b.newBlock()
	b.edge(b.cur, entry, EdgeUnconditional, "")
	b.cur = entry
	b.stmt(n.FindNode(syntax.JsBlockStatement))
	completes := b.live(b.cur)
	b.edge(b.cur, next, EdgeUnconditional, "")
	frame.inBody = false

	handler := frame.catch
	if handler == nil {
		handler = frame.finally
		frame.throws = handler != nil
	}
	for _, blk := range frame.blocks {
		if blk == entry || len(blk.Statements) > 0 {
			b.edge(blk, handler, EdgeThrow, "")
		}
	}

	if frame.catch != nil {
		b.cur = frame.catch
		b.stmt(catchClause.FindNode(syntax.JsBlockStatement))
		completes = completes || b.live(b.cur)
		b.edge(b.cur, next, EdgeUnconditional, "")
	}
	b.frames = b.frames[:len(b.frames)-1]

	if frame.finally != nil {
		b.cur = frame.finally
		b.stmt(finallyClause.FindNode(syntax.JsBlockStatement))
		end := b.cur
		if completes {
			b.edge(end, after, EdgeUnconditional, "")
		}
		if frame.returns {
			b.edge(end, b.returnTarget(), EdgeReturn, "")
		}
		if frame.throws {
			b.edge(end, b.throwTarget(), EdgeThrow, "")
		}
	}
	b.cur = after
}
