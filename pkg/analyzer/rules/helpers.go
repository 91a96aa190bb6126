package rules

import (
	"github.com/yaklabco/gobiome/pkg/analyzer"
	"github.com/yaklabco/gobiome/pkg/mutation"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// removeStatement removes a statement from its list. A statement in a
// fixed slot, such as the body of an `if`, becomes an empty statement so the
// parent stays well formed.
func removeStatement(ctx *analyzer.RuleContext, stmt *syntax.Node) *mutation.Batch {
	batch := ctx.NewBatch()
	parent := stmt.Parent()
	if parent != nil && parent.Kind().IsList() {
		batch.Remove(stmt)
		return batch
	}
	semi := mutation.Token(syntax.Semicolon, ";")
	if first := stmt.FirstToken(); first != nil {
		semi = mutation.WithLeadingTrivia(semi, first.Green())
	}
	if last := stmt.LastToken(); last != nil {
		semi = mutation.WithTrailingTrivia(semi, last.Green())
	}
	batch.ReplaceNode(stmt, mutation.Node(syntax.JsEmptyStatement, semi))
	return batch
}

// replaceKeyword builds a token of another kind that keeps the trivia of old.
func replaceKeyword(old *syntax.Token, kind syntax.Kind, text string) *syntax.GreenToken {
	tok := mutation.Token(kind, text)
	tok = mutation.WithLeadingTrivia(tok, old.Green())
	return mutation.WithTrailingTrivia(tok, old.Green())
}

// hasComment reports whether any trivia piece is a comment.
func hasComment(pieces []syntax.TriviaPiece) bool {
	for _, p := range pieces {
		if p.Kind.IsComment() {
			return true
		}
	}
	return false
}

// identifierBindings returns every JsIdentifierBinding inside a binding
// pattern, the pattern itself included.
func identifierBindings(pattern *syntax.Node) []*syntax.Node {
	if pattern == nil {
		return nil
	}
	var out []*syntax.Node
	for n := range pattern.Descendants() {
		if n.Kind() == syntax.JsIdentifierBinding {
			out = append(out, n)
		}
	}
	return out
}

// enclosingStatement returns the closest ancestor of n that is a direct
// child of a statement list, or nil.
func enclosingStatement(n *syntax.Node) *syntax.Node {
	for cur := n; cur != nil; cur = cur.Parent() {
		parent := cur.Parent()
		if parent == nil {
			return nil
		}
		if parent.Kind() == syntax.JsStatementList || parent.Kind() == syntax.JsModuleItemList {
			return cur
		}
	}
	return nil
}
