// Package format implements the document IR shared by the language
// formatters and the printer that lays it out within a line width.
//
// Language packages lower a syntax tree into Elements; Print measures
// groups in flat mode and breaks the ones that do not fit.
package format

import (
	"strings"

	"github.com/yaklabco/gobiome/pkg/text"
)

// Element is one node of the format IR.
type Element interface {
	element()
}

// GroupID names a group so that IfBreak and IndentIfGroupBreaks can refer
// to its printed mode. The zero ID is anonymous.
type GroupID int

// LineMode selects how a Line prints.
type LineMode uint8

const (
	// ModeSoft prints nothing in flat mode and a newline when broken.
	ModeSoft LineMode = iota
	// ModeSoftOrSpace prints a space in flat mode and a newline when broken.
	ModeSoftOrSpace
	// ModeHard always prints a newline and breaks the enclosing groups.
	ModeHard
	// ModeEmpty always prints an empty line.
	ModeEmpty
)

type (
	// List is a sequence of elements printed in order.
	List []Element

	// Text is literal output. It must not contain tabs used for indentation.
	Text struct {
		Value string
	}

	// Token is the text of a source token, normalized by the lowering.
	Token struct {
		Value  string
		Source text.Range
	}

	// Space prints a single space.
	Space struct{}

	// Line is a possible line break.
	Line struct {
		Mode LineMode
	}

	// Group prints its contents flat when they fit on the rest of the line.
	Group struct {
		Contents List
		ID       GroupID
		// Break forces broken mode. The printer also sets it for groups
		// containing a hard line.
		Break bool
	}

	// Indent increases the indentation of lines broken inside Contents.
	Indent struct {
		Contents List
	}

	// Dedent removes one indentation level.
	Dedent struct {
		Contents List
	}

	// Align indents by N spaces regardless of the indent style.
	Align struct {
		N        int
		Contents List
	}

	// IfBreak prints Break when the group GroupID (or the enclosing group
	// when zero) is broken and Flat otherwise.
	IfBreak struct {
		Break   List
		Flat    List
		GroupID GroupID
	}

	// LineSuffix is deferred to the end of the current line.
	LineSuffix struct {
		Contents List
	}

	// LineSuffixBoundary flushes pending line suffixes with a line break.
	LineSuffixBoundary struct{}

	// Fill prints as many Items per line as fit, breaking Separator only
	// where needed.
	Fill struct {
		Items     List
		Separator Element
	}

	// ConditionalGroup prints the first variant that fits. The last
	// variant prints broken when none does.
	ConditionalGroup struct {
		Variants []List
	}

	// BestFitting prints the first variant that fits entirely in flat
	// mode, falling back to the last variant printed broken.
	BestFitting struct {
		Variants []List
	}

	// IndentIfGroupBreaks indents Contents only when GroupID broke.
	IndentIfGroupBreaks struct {
		Contents List
		GroupID  GroupID
	}

	// Verbatim copies source text unchanged.
	Verbatim struct {
		Text  string
		Range text.Range
	}
)

func (List) element()                {}
func (Text) element()                {}
func (Token) element()               {}
func (Space) element()               {}
func (Line) element()                {}
func (*Group) element()              {}
func (Indent) element()              {}
func (Dedent) element()              {}
func (Align) element()               {}
func (IfBreak) element()             {}
func (LineSuffix) element()          {}
func (LineSuffixBoundary) element()  {}
func (*Fill) element()               {}
func (*ConditionalGroup) element()   {}
func (*BestFitting) element()        {}
func (IndentIfGroupBreaks) element() {}
func (Verbatim) element()            {}

// Shared line elements.
//
//nolint:gochecknoglobals // Immutable IR constants
var (
	SoftLine        Element = Line{Mode: ModeSoft}
	SoftLineOrSpace Element = Line{Mode: ModeSoftOrSpace}
	HardLine        Element = Line{Mode: ModeHard}
	EmptyLine       Element = Line{Mode: ModeEmpty}
)

// Str returns a Text element.
func Str(s string) Element { return Text{Value: s} }

// Concat flattens its arguments into a List, dropping nil elements and
// splicing nested lists.
func Concat(els ...Element) List {
	out := make(List, 0, len(els))
	for _, el := range els {
		switch v := el.(type) {
		case nil:
		case List:
			out = append(out, v...)
		default:
			out = append(out, el)
		}
	}
	return out
}

// NewGroup returns an anonymous group.
func NewGroup(els ...Element) *Group { return &Group{Contents: Concat(els...)} }

// Join interleaves items with sep.
func Join(sep Element, items []Element) List {
	out := make(List, 0, 2*len(items))
	for i, item := range items {
		if i > 0 {
			out = append(out, sep)
		}
		out = append(out, item)
	}
	return out
}

// IDs hands out unique group ids for one document.
type IDs struct {
	next GroupID
}

// New returns a fresh id.
func (g *IDs) New() GroupID {
	g.next++
	return g.next
}

// WillBreak reports whether el contains a forced line break or a group
// already marked broken.
func WillBreak(el Element) bool {
	switch v := el.(type) {
	case List:
		for _, c := range v {
			if WillBreak(c) {
				return true
			}
		}
	case Line:
		return v.Mode == ModeHard || v.Mode == ModeEmpty
	case *Group:
		return v.Break || WillBreak(v.Contents)
	case Indent:
		return WillBreak(v.Contents)
	case Dedent:
		return WillBreak(v.Contents)
	case Align:
		return WillBreak(v.Contents)
	case IndentIfGroupBreaks:
		return WillBreak(v.Contents)
	case *Fill:
		return WillBreak(v.Items)
	case *ConditionalGroup:
		return len(v.Variants) > 0 && WillBreak(v.Variants[0])
	case Verbatim:
		return strings.Contains(v.Text, "\n")
	}
	return false
}
