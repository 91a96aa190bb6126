package format

import (
	"errors"
	"fmt"
	"sync"

	"github.com/yaklabco/gobiome/pkg/analyzer"
	"github.com/yaklabco/gobiome/pkg/lang"
	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

// Errors returned by Format.
var (
	ErrSyntax      = errors.New("code contains syntax errors")
	ErrUnsupported = errors.New("no formatter for language")
)

// Context is the read-only state shared by a lowering pass.
type Context struct {
	Options      Options
	Language     lang.Language
	Source       string
	Comments     *CommentMap
	Suppressions *analyzer.SuppressionMap
	IDs          IDs
}

// Suppressed reports whether n is excluded from formatting by a
// `biome-ignore format` comment.
func (c *Context) Suppressed(n *syntax.Node) bool {
	return c.Suppressions != nil && c.Suppressions.FormatSuppressed(n.TextRange())
}

// Verbatim returns the source text of n without its outer trivia.
func (c *Context) Verbatim(n *syntax.Node) Element {
	return Verbatim{Text: n.TrimmedText(), Range: n.TextRange()}
}

// Lowerer turns a syntax tree into IR.
type Lowerer interface {
	Lower(ctx *Context, root *syntax.Node) (Element, error)
}

// LowerFunc adapts a function to Lowerer.
type LowerFunc func(ctx *Context, root *syntax.Node) (Element, error)

// Lower implements Lowerer.
func (f LowerFunc) Lower(ctx *Context, root *syntax.Node) (Element, error) { return f(ctx, root) }

//nolint:gochecknoglobals // Language formatter registry
var (
	lowerersMu sync.RWMutex
	lowerers   = make(map[string]Lowerer)
)

// Register installs the lowering for a language family such as
// "javascript" or "json".
func Register(family string, l Lowerer) {
	lowerersMu.Lock()
	defer lowerersMu.Unlock()
	lowerers[family] = l
}

func lowererFor(l lang.Language) (Lowerer, bool) {
	lowerersMu.RLock()
	defer lowerersMu.RUnlock()
	lw, ok := lowerers[l.Family()]
	return lw, ok
}

// Supports reports whether a formatter is registered for l.
func Supports(l lang.Language) bool {
	_, ok := lowererFor(l)
	return ok
}

// Format parses src as l and prints it with opts. Documents with syntax
// errors are not formatted.
func Format(l lang.Language, path, src string, opts Options) (string, error) {
	parse, err := lang.Parse(l, path, src)
	if err != nil {
		return "", err
	}
	return FormatParse(l, src, parse, opts)
}

// FormatParse prints an existing parse of src.
func FormatParse(l lang.Language, src string, parse *parser.Parse, opts Options) (string, error) {
	if parse.HasErrors() {
		return "", fmt.Errorf("%w: %s", ErrSyntax, firstError(parse))
	}
	lw, ok := lowererFor(l)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupported, l)
	}

	root := parse.Root()
	ctx := &Context{
		Options:      opts,
		Language:     l,
		Source:       src,
		Comments:     BuildComments(root),
		Suppressions: analyzer.BuildSuppressions(root, nil),
	}
	doc, err := lw.Lower(ctx, root)
	if err != nil {
		return "", fmt.Errorf("lowering %s: %w", l, err)
	}
	printed, err := NewPrinter(opts).Print(doc)
	if err != nil {
		return "", err
	}
	return printed.Code, nil
}

func firstError(parse *parser.Parse) string {
	if len(parse.Diagnostics) == 0 {
		return "unknown error"
	}
	return parse.Diagnostics[0].Message
}
