package rules

import (
	"cmp"
	"slices"
	"strings"

	"github.com/yaklabco/gobiome/pkg/analyzer"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/lang/js"
	"github.com/yaklabco/gobiome/pkg/mutation"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// OrganizeImportsAssist sorts import declarations and their named
// specifiers.
//
// Imports are sorted inside chunks. A chunk is a run of adjacent import
// declarations; a blank line, a side-effect import or any other statement
// ends it. Each position keeps its own leading and trailing trivia, so
// blank lines and line breaks stay where they were. Comments attached to an
// import move with it.
type OrganizeImportsAssist struct {
	analyzer.BaseRule
}

// NewOrganizeImportsAssist creates the organizeImports source action.
func NewOrganizeImportsAssist() *OrganizeImportsAssist {
	return &OrganizeImportsAssist{
		BaseRule: analyzer.NewBaseRule(analyzer.RuleMetadata{
			Name:        "organizeImports",
			Group:       analyzer.GroupSource,
			Kind:        analyzer.KindAssist,
			Language:    "javascript",
			Recommended: true,
			Severity:    diagnostic.SeverityInformation,
			Fix:         analyzer.FixSafe,
			Description: "Provides a code action to sort the imports and exports in the file using a built-in or custom order.",
			Docs: "Sort imports and their named specifiers.\n\n" +
				"Sources are ordered by distance: URLs, runtime protocols such as `node:`, packages, " +
				"aliases such as `@/` or `#`, absolute paths and finally relative paths, farthest first.\n\n" +
				"## Examples\n\n```js\nimport * as s from \"../s\";\nimport { b, a } from \"x\";\n```\n\n" +
				"becomes\n\n```js\nimport { a, b } from \"x\";\nimport * as s from \"../s\";\n```\n",
		}, analyzer.QueryKinds(syntax.JsModuleItemList)),
	}
}

// Run reports each chunk whose order differs from the sorted one.
func (r *OrganizeImportsAssist) Run(ctx *analyzer.RuleContext, node *syntax.Node) []analyzer.Signal {
	var signals []analyzer.Signal
	for _, chunk := range importChunks(node) {
		batch := ctx.NewBatch()
		if !organizeChunk(batch, chunk) {
			continue
		}
		signals = append(signals,
			ctx.Diagnostic(coverAll(chunk), "The imports and exports are not sorted.").
				WithAction("Organize Imports", batch).
				Build())
	}
	return signals
}

// importChunks splits the import declarations of a module item list into
// sortable runs.
func importChunks(list *syntax.Node) [][]*syntax.Node {
	var chunks [][]*syntax.Node
	var cur []*syntax.Node
	flush := func() {
		if len(cur) > 0 {
			chunks = append(chunks, cur)
		}
		cur = nil
	}
	for item := range list.ChildNodes() {
		imp, ok := js.AsImport(item)
		if !ok || !sortable(imp) {
			flush()
			continue
		}
		if len(cur) > 0 && startsAfterBlankLine(item) {
			flush()
		}
		cur = append(cur, item)
	}
	flush()
	return chunks
}

// sortable rejects side-effect imports, whose order matters, and imports
// that failed to parse.
func sortable(imp js.Import) bool {
	clause := imp.Clause()
	if clause == nil || clause.Kind() == syntax.JsImportBareClause {
		return false
	}
	for n := range imp.Descendants() {
		if n.Kind() == syntax.JsBogus {
			return false
		}
	}
	return imp.Source() != ""
}

func startsAfterBlankLine(n *syntax.Node) bool {
	first := n.FirstToken()
	if first == nil {
		return false
	}
	newlines := 0
	for _, p := range first.Green().Leading() {
		if p.Kind == syntax.TriviaNewline {
			newlines++
		}
	}
	return newlines > 1
}

// organizeChunk records in batch the replacements that sort chunk and
// reports whether anything changed.
func organizeChunk(batch *mutation.Batch, chunk []*syntax.Node) bool {
	greens := make([]*syntax.GreenNode, len(chunk))
	for i, n := range chunk {
		greens[i] = sortSpecifiers(n)
	}

	order := make([]int, len(chunk))
	for i := range order {
		order[i] = i
	}
	slices.SortStableFunc(order, func(a, b int) int {
		sa, _ := js.AsImport(chunk[a])
		sb, _ := js.AsImport(chunk[b])
		return compareSources(sa.Source(), sb.Source())
	})

	changed := false
	for pos, from := range order {
		placed := greens[from]
		if from != pos {
			placed = placeAt(placed, chunk[pos].Green())
		}
		if !placed.Equal(chunk[pos].Green()) {
			batch.ReplaceNode(chunk[pos], placed)
			changed = true
		}
	}
	return changed
}

// sortSpecifiers returns the import with its named specifiers sorted.
func sortSpecifiers(n *syntax.Node) *syntax.GreenNode {
	imp, _ := js.AsImport(n)
	list := imp.NamedSpecifiers()
	if list == nil {
		return n.Green()
	}
	specs := list.ChildNodeList()
	if len(specs) < 2 {
		return n.Green()
	}
	sorted := slices.Clone(specs)
	slices.SortStableFunc(sorted, func(a, b *syntax.Node) int {
		return compareNatural(js.ImportedName(a), js.ImportedName(b))
	})

	updated := list.Green()
	for pos, spec := range sorted {
		target := specs[pos]
		if spec.Same(target) {
			continue
		}
		updated = updated.ReplaceSlot(target.Index(), placeAt(spec.Green(), target.Green()))
	}
	if updated == list.Green() {
		return n.Green()
	}
	return rebuildAncestors(list, n, updated)
}

// rebuildAncestors replaces node by green and rebuilds every node on the
// path up to and including top.
func rebuildAncestors(node, top *syntax.Node, green *syntax.GreenNode) *syntax.GreenNode {
	for cur := node; !cur.Same(top); cur = cur.Parent() {
		green = cur.Parent().Green().ReplaceSlot(cur.Index(), green)
	}
	return green
}

// placeAt moves element into the position held by target. The element takes
// the target's leading and trailing trivia unless it carries its own
// comments.
func placeAt(element, target *syntax.GreenNode) *syntax.GreenNode {
	targetFirst, targetLast := mutation.FirstToken(target), mutation.LastToken(target)
	first, last := mutation.FirstToken(element), mutation.LastToken(element)
	if first == nil || targetFirst == nil {
		return element
	}
	if !hasComment(first.Leading()) {
		element = mutation.MapFirstToken(element, func(tok *syntax.GreenToken) *syntax.GreenToken {
			return mutation.WithLeadingTrivia(tok, targetFirst)
		})
	}
	if !hasComment(last.Trailing()) {
		element = mutation.MapLastToken(element, func(tok *syntax.GreenToken) *syntax.GreenToken {
			return mutation.WithTrailingTrivia(tok, targetLast)
		})
	}
	return element
}

// Source categories in sort order.
const (
	sourceURL = iota
	sourceProtocol
	sourcePackage
	sourceAlias
	sourceAbsolute
	sourceRelative
)

func sourceCategory(src string) int {
	switch {
	case strings.Contains(src, "://"):
		return sourceURL
	case strings.HasPrefix(src, "node:"), strings.HasPrefix(src, "bun:"),
		strings.HasPrefix(src, "npm:"), strings.HasPrefix(src, "jsr:"):
		return sourceProtocol
	case strings.HasPrefix(src, "#"), strings.HasPrefix(src, "@/"), strings.HasPrefix(src, "~"):
		return sourceAlias
	case strings.HasPrefix(src, "/"):
		return sourceAbsolute
	case strings.HasPrefix(src, "."):
		return sourceRelative
	default:
		return sourcePackage
	}
}

// parentDepth counts the leading "../" segments of a relative source.
func parentDepth(src string) int {
	depth := 0
	for strings.HasPrefix(src, "../") || src == ".." {
		depth++
		src = strings.TrimPrefix(strings.TrimPrefix(src, ".."), "/")
	}
	return depth
}

// compareSources orders module sources by category, then places farther
// relative paths first, then compares the text.
func compareSources(a, b string) int {
	if c := cmp.Compare(sourceCategory(a), sourceCategory(b)); c != 0 {
		return c
	}
	if sourceCategory(a) == sourceRelative {
		if c := cmp.Compare(parentDepth(b), parentDepth(a)); c != 0 {
			return c
		}
	}
	return compareNatural(a, b)
}

// compareNatural compares case-insensitively and breaks ties so that
// uppercase sorts before lowercase.
func compareNatural(a, b string) int {
	if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}
