package format

import (
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

// ErrInvalidElement is returned for IR the printer cannot lay out.
var ErrInvalidElement = errors.New("invalid format element")

type printMode uint8

const (
	modeBreak printMode = iota
	modeFlat
)

// indentation is a linked stack of indentation prefixes.
type indentation struct {
	parent *indentation
	prefix string
	width  int
}

func (ind *indentation) indent(opts Options) *indentation {
	return &indentation{parent: ind, prefix: ind.prefix + opts.indentUnit(), width: ind.width + opts.unitWidth()}
}

func (ind *indentation) align(n int) *indentation {
	return &indentation{parent: ind, prefix: ind.prefix + strings.Repeat(" ", n), width: ind.width + n}
}

func (ind *indentation) dedent() *indentation {
	if ind.parent == nil {
		return ind
	}
	return ind.parent
}

type command struct {
	ind  *indentation
	mode printMode
	el   Element
}

// Printed is the laid out document.
type Printed struct {
	Code string
}

// Printer lays out IR within the configured line width.
type Printer struct {
	opts Options
}

// NewPrinter returns a printer for opts.
func NewPrinter(opts Options) *Printer {
	if opts.LineWidth <= 0 {
		opts.LineWidth = DefaultOptions().LineWidth
	}
	return &Printer{opts: opts}
}

type printState struct {
	opts       Options
	out        []byte
	pos        int
	cmds       []command
	suffixes   []command
	groupModes map[GroupID]printMode
	// remeasure is set when a hard line prints in flat mode; the next
	// group is measured again instead of inheriting flat mode.
	remeasure bool
}

// Print lays out root. Groups are printed flat when their contents fit in
// the remaining width and broken otherwise.
func (p *Printer) Print(root Element) (Printed, error) {
	propagateBreaks(root)

	st := &printState{
		opts:       p.opts,
		groupModes: make(map[GroupID]printMode),
		cmds:       []command{{ind: &indentation{}, mode: modeBreak, el: root}},
	}
	for len(st.cmds) > 0 {
		cmd := st.pop()
		if err := st.step(cmd); err != nil {
			return Printed{}, err
		}
		if len(st.cmds) == 0 && len(st.suffixes) > 0 {
			st.flushSuffixes()
		}
	}

	code := string(st.out)
	if nl := newline(p.opts.LineEnding); nl != "\n" || strings.Contains(code, "\r") {
		code = strings.ReplaceAll(code, "\r\n", "\n")
		code = strings.ReplaceAll(code, "\n", nl)
	}
	return Printed{Code: code}, nil
}

func (st *printState) pop() command {
	cmd := st.cmds[len(st.cmds)-1]
	st.cmds = st.cmds[:len(st.cmds)-1]
	return cmd
}

func (st *printState) push(ind *indentation, mode printMode, el Element) {
	st.cmds = append(st.cmds, command{ind: ind, mode: mode, el: el})
}

func (st *printState) flushSuffixes() {
	for i := len(st.suffixes) - 1; i >= 0; i-- {
		st.cmds = append(st.cmds, st.suffixes[i])
	}
	st.suffixes = st.suffixes[:0]
}

//nolint:gocyclo,cyclop,funlen // Element dispatch
func (st *printState) step(cmd command) error {
	switch el := cmd.el.(type) {
	case nil:
	case List:
		for i := len(el) - 1; i >= 0; i-- {
			st.push(cmd.ind, cmd.mode, el[i])
		}
	case Text:
		st.write(el.Value)
	case Token:
		st.write(el.Value)
	case Verbatim:
		st.write(el.Text)
	case Space:
		st.write(" ")
	case Line:
		st.line(cmd, el)
	case *Group:
		mode := modeBreak
		switch {
		case el.Break:
		case cmd.mode == modeFlat && !st.remeasure:
			mode = modeFlat
		case st.fits(command{ind: cmd.ind, mode: modeFlat, el: el.Contents}, false):
			mode = modeFlat
		}
		if cmd.mode == modeBreak || st.remeasure {
			st.remeasure = false
		}
		if el.ID != 0 {
			st.groupModes[el.ID] = mode
		}
		st.push(cmd.ind, mode, el.Contents)
	case Indent:
		st.push(cmd.ind.indent(st.opts), cmd.mode, el.Contents)
	case Dedent:
		st.push(cmd.ind.dedent(), cmd.mode, el.Contents)
	case Align:
		if el.N < 0 {
			return fmt.Errorf("%w: negative alignment %d", ErrInvalidElement, el.N)
		}
		st.push(cmd.ind.align(el.N), cmd.mode, el.Contents)
	case IfBreak:
		if st.modeOf(el.GroupID, cmd.mode) == modeBreak {
			st.push(cmd.ind, cmd.mode, el.Break)
		} else {
			st.push(cmd.ind, cmd.mode, el.Flat)
		}
	case IndentIfGroupBreaks:
		if st.modeOf(el.GroupID, modeFlat) == modeBreak {
			st.push(cmd.ind.indent(st.opts), cmd.mode, el.Contents)
		} else {
			st.push(cmd.ind, cmd.mode, el.Contents)
		}
	case LineSuffix:
		st.suffixes = append(st.suffixes, command{ind: cmd.ind, mode: cmd.mode, el: el.Contents})
	case LineSuffixBoundary:
		if len(st.suffixes) > 0 {
			st.push(cmd.ind, modeBreak, HardLine)
		}
	case *Fill:
		st.fill(cmd, el)
	case *ConditionalGroup:
		st.conditional(cmd, el.Variants)
	case *BestFitting:
		st.bestFitting(cmd, el.Variants)
	default:
		return fmt.Errorf("%w: %T", ErrInvalidElement, el)
	}
	return nil
}

// modeOf returns the printed mode of group id, or def for anonymous
// references. Groups not printed yet count as flat.
func (st *printState) modeOf(id GroupID, def printMode) printMode {
	if id == 0 {
		return def
	}
	if mode, ok := st.groupModes[id]; ok {
		return mode
	}
	return modeFlat
}

func (st *printState) line(cmd command, l Line) {
	if cmd.mode == modeFlat {
		switch l.Mode {
		case ModeSoft:
			return
		case ModeSoftOrSpace:
			st.write(" ")
			return
		}
		st.remeasure = true
	}
	if len(st.suffixes) > 0 {
		st.cmds = append(st.cmds, cmd)
		st.flushSuffixes()
		return
	}
	st.trimTrailing()
	if l.Mode == ModeEmpty {
		st.out = append(st.out, '\n')
	}
	st.out = append(st.out, '\n')
	st.out = append(st.out, cmd.ind.prefix...)
	st.pos = cmd.ind.width
}

func (st *printState) write(s string) {
	st.out = append(st.out, s...)
	if i := strings.LastIndexByte(s, '\n'); i >= 0 {
		st.pos = runewidth.StringWidth(s[i+1:])
		return
	}
	st.pos += runewidth.StringWidth(s)
}

func (st *printState) trimTrailing() {
	n := len(st.out)
	for n > 0 && (st.out[n-1] == ' ' || st.out[n-1] == '\t') {
		n--
	}
	st.out = st.out[:n]
}

func (st *printState) fill(cmd command, f *Fill) {
	items := f.Items
	if len(items) == 0 {
		return
	}
	content := command{ind: cmd.ind, mode: modeFlat, el: items[0]}
	contentFits := st.fits(content, true)
	if !contentFits {
		content.mode = modeBreak
	}
	if len(items) == 1 {
		st.cmds = append(st.cmds, content)
		return
	}

	pair := command{ind: cmd.ind, mode: modeFlat, el: List{items[0], f.Separator, items[1]}}
	sepMode := modeBreak
	if st.fits(pair, true) {
		sepMode = modeFlat
	}
	st.push(cmd.ind, cmd.mode, &Fill{Items: items[1:], Separator: f.Separator})
	st.push(cmd.ind, sepMode, f.Separator)
	st.cmds = append(st.cmds, content)
}

func (st *printState) conditional(cmd command, variants []List) {
	if len(variants) == 0 {
		return
	}
	if cmd.mode == modeFlat && !st.remeasure {
		st.push(cmd.ind, modeFlat, variants[0])
		return
	}
	st.remeasure = false
	if st.fits(command{ind: cmd.ind, mode: modeFlat, el: variants[0]}, false) {
		st.push(cmd.ind, modeFlat, variants[0])
		return
	}
	for _, v := range variants[1:] {
		if st.fits(command{ind: cmd.ind, mode: modeBreak, el: v}, false) {
			st.push(cmd.ind, modeBreak, v)
			return
		}
	}
	st.push(cmd.ind, modeBreak, variants[len(variants)-1])
}

func (st *printState) bestFitting(cmd command, variants []List) {
	if len(variants) == 0 {
		return
	}
	if cmd.mode == modeFlat {
		st.push(cmd.ind, modeFlat, variants[0])
		return
	}
	for _, v := range variants[:len(variants)-1] {
		if st.fits(command{ind: cmd.ind, mode: modeFlat, el: v}, true) {
			st.push(cmd.ind, modeFlat, v)
			return
		}
	}
	st.push(cmd.ind, modeBreak, variants[len(variants)-1])
}

// fits reports whether next, followed by the pending commands up to the
// first line break, fits in the remaining width. With mustBeFlat the
// pending commands are ignored and forced breaks fail the check.
//
//nolint:gocyclo,cyclop,funlen // Element dispatch
func (st *printState) fits(next command, mustBeFlat bool) bool {
	remaining := st.opts.LineWidth - st.pos
	hasSuffix := len(st.suffixes) > 0
	restIdx := len(st.cmds)
	stack := []command{next}

	measure := func(s string) bool {
		if i := strings.IndexByte(s, '\n'); i >= 0 {
			remaining -= runewidth.StringWidth(s[:i])
			return true
		}
		remaining -= runewidth.StringWidth(s)
		return false
	}

	for remaining >= 0 {
		if len(stack) == 0 {
			if restIdx == 0 || mustBeFlat {
				return true
			}
			restIdx--
			stack = append(stack, st.cmds[restIdx])
			continue
		}
		cmd := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		push := func(mode printMode, el Element) {
			stack = append(stack, command{ind: cmd.ind, mode: mode, el: el})
		}

		switch el := cmd.el.(type) {
		case nil:
		case List:
			for i := len(el) - 1; i >= 0; i-- {
				push(cmd.mode, el[i])
			}
		case Text:
			if measure(el.Value) {
				return remaining >= 0
			}
		case Token:
			if measure(el.Value) {
				return remaining >= 0
			}
		case Verbatim:
			if measure(el.Text) {
				return remaining >= 0
			}
		case Space:
			remaining--
		case Line:
			if cmd.mode == modeBreak || el.Mode == ModeHard || el.Mode == ModeEmpty {
				return true
			}
			if el.Mode == ModeSoftOrSpace {
				remaining--
			}
		case *Group:
			if mustBeFlat && el.Break {
				return false
			}
			mode := cmd.mode
			if el.Break {
				mode = modeBreak
			}
			push(mode, el.Contents)
		case Indent:
			push(cmd.mode, el.Contents)
		case Dedent:
			push(cmd.mode, el.Contents)
		case Align:
			push(cmd.mode, el.Contents)
		case IndentIfGroupBreaks:
			push(cmd.mode, el.Contents)
		case IfBreak:
			if st.modeOf(el.GroupID, cmd.mode) == modeBreak {
				push(cmd.mode, el.Break)
			} else {
				push(cmd.mode, el.Flat)
			}
		case LineSuffix:
			hasSuffix = true
		case LineSuffixBoundary:
			if hasSuffix {
				return false
			}
		case *Fill:
			for i := len(el.Items) - 1; i >= 0; i-- {
				push(cmd.mode, el.Items[i])
				if i > 0 {
					push(cmd.mode, el.Separator)
				}
			}
		case *ConditionalGroup:
			if v := pickVariant(el.Variants, cmd.mode); v != nil {
				push(cmd.mode, v)
			}
		case *BestFitting:
			if v := pickVariant(el.Variants, cmd.mode); v != nil {
				push(cmd.mode, v)
			}
		}
	}
	return false
}

// pickVariant is the variant measured for a pending conditional element:
// the most expanded one in broken mode and the flattest otherwise.
func pickVariant(variants []List, mode printMode) List {
	if len(variants) == 0 {
		return nil
	}
	if mode == modeBreak {
		return variants[len(variants)-1]
	}
	return variants[0]
}

// propagateBreaks marks every group containing a forced line break as
// broken and reports whether el contains one.
func propagateBreaks(el Element) bool {
	switch v := el.(type) {
	case List:
		found := false
		for _, c := range v {
			if propagateBreaks(c) {
				found = true
			}
		}
		return found
	case Line:
		return v.Mode == ModeHard || v.Mode == ModeEmpty
	case Text:
		return strings.Contains(v.Value, "\n")
	case Token:
		return strings.Contains(v.Value, "\n")
	case Verbatim:
		return strings.Contains(v.Text, "\n")
	case *Group:
		if propagateBreaks(v.Contents) {
			v.Break = true
		}
		return v.Break
	case Indent:
		return propagateBreaks(v.Contents)
	case Dedent:
		return propagateBreaks(v.Contents)
	case Align:
		return propagateBreaks(v.Contents)
	case IndentIfGroupBreaks:
		return propagateBreaks(v.Contents)
	case IfBreak:
		b := propagateBreaks(v.Break)
		f := propagateBreaks(v.Flat)
		return b || f
	case LineSuffix:
		propagateBreaks(v.Contents)
		return false
	case *Fill:
		found := propagateBreaks(v.Items)
		if propagateBreaks(v.Separator) {
			found = true
		}
		return found
	case *ConditionalGroup:
		found := false
		for i, variant := range v.Variants {
			if propagateBreaks(variant) && i == 0 {
				found = true
			}
		}
		return found
	case *BestFitting:
		for _, variant := range v.Variants {
			propagateBreaks(variant)
		}
		return false
	}
	return false
}
