package analyzer

import (
	"errors"
	"strings"

	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/syntax"
	"github.com/yaklabco/gobiome/pkg/text"
)

// Suppression diagnostic categories.
const (
	CategorySuppressionParse  = "suppressions/parse"
	CategorySuppressionUnused = "suppressions/unused"
)

const directivePrefix = "biome-ignore"

// Errors returned by ParseDirective.
var (
	ErrMissingCategory    = errors.New("expected a suppression category")
	ErrMissingColon       = errors.New("expected `:` followed by an explanation")
	ErrMissingExplanation = errors.New("suppression is missing an explanation")
	ErrUnknownCategory    = errors.New("unknown suppression category")
	ErrUnknownRule        = errors.New("unknown lint rule")
)

// SuppressionKind is the span a directive applies to.
type SuppressionKind uint8

const (
	// SuppressNext covers the syntax node that follows the comment.
	SuppressNext SuppressionKind = iota
	// SuppressAll covers the whole file.
	SuppressAll
	// SuppressRangeStart opens a range closed by a SuppressRangeEnd.
	SuppressRangeStart
	SuppressRangeEnd
)

// Directive is a parsed suppression comment.
type Directive struct {
	Kind SuppressionKind
	// Categories such as "lint", "lint/suspicious",
	// "lint/suspicious/noDebugger" or "format".
	Categories []string
	Reason     string
}

// ParseDirective parses the text of a comment, markers included. It returns
// (nil, nil) for comments that are not suppression directives.
func ParseDirective(comment string) (*Directive, error) {
	body, ok := commentBody(comment)
	if !ok || !strings.HasPrefix(body, directivePrefix) {
		return nil, nil
	}
	rest := body[len(directivePrefix):]

	d := &Directive{Kind: SuppressNext}
	switch {
	case strings.HasPrefix(rest, "-all"):
		d.Kind, rest = SuppressAll, rest[len("-all"):]
	case strings.HasPrefix(rest, "-start"):
		d.Kind, rest = SuppressRangeStart, rest[len("-start"):]
	case strings.HasPrefix(rest, "-end"):
		d.Kind, rest = SuppressRangeEnd, rest[len("-end"):]
	}
	if rest != "" && rest[0] != ' ' && rest[0] != '\t' && rest[0] != ':' {
		// biome-ignored, biome-ignore-foo and similar words.
		return nil, nil
	}

	head, reason, found := strings.Cut(rest, ":")
	for _, field := range strings.Fields(head) {
		category, _, _ := strings.Cut(field, "(")
		d.Categories = append(d.Categories, category)
	}
	switch {
	case len(d.Categories) == 0:
		return nil, ErrMissingCategory
	case !found:
		return nil, ErrMissingColon
	}
	d.Reason = strings.TrimSpace(reason)
	if d.Reason == "" {
		return nil, ErrMissingExplanation
	}
	return d, nil
}

// commentBody strips the comment markers of a line or block comment.
func commentBody(comment string) (string, bool) {
	switch {
	case strings.HasPrefix(comment, "//"):
		comment = comment[2:]
	case strings.HasPrefix(comment, "/*"):
		comment = strings.TrimSuffix(comment[2:], "*/")
		comment = strings.TrimLeft(comment, "*")
	case strings.HasPrefix(comment, "#"):
		comment = comment[1:]
	default:
		return "", false
	}
	return strings.TrimSpace(comment), true
}

// Suppression is one category of a directive with the span it covers.
type Suppression struct {
	Kind     SuppressionKind
	Category string
	Reason   string
	// Comment is the range of the directive comment.
	Comment text.Range
	// Range is the suppressed span.
	Range text.Range

	used bool
}

// Matches reports whether the suppression applies to a diagnostic category.
func (s *Suppression) Matches(category string) bool {
	return category == s.Category || strings.HasPrefix(category, s.Category+"/")
}

// Covers reports whether the suppression applies to a diagnostic starting in r.
func (s *Suppression) Covers(r text.Range) bool {
	return s.Range.Contains(r.Start) || (r.Start == s.Range.Start)
}

// SuppressionMap holds the suppressions of one file.
type SuppressionMap struct {
	entries []*Suppression
	// Diagnostics holds the malformed directives.
	Diagnostics []diagnostic.Diagnostic
}

// KnownCategory validates the category of a directive.
type KnownCategory func(category string) error

// BuildSuppressions collects the directives in the trivia of root. Unknown
// categories are reported through known, which may be nil.
func BuildSuppressions(root *syntax.Node, known KnownCategory) *SuppressionMap {
	m := &SuppressionMap{}
	fileRange := root.Range()
	var open []*Suppression

	for tok := range root.Tokens() {
		for _, trivia := range tok.LeadingTrivia() {
			m.collect(trivia, tok, fileRange, known, &open)
		}
		for _, trivia := range tok.TrailingTrivia() {
			m.collect(trivia, tok.NextToken(), fileRange, known, &open)
		}
	}
	for _, s := range open {
		s.Range = text.NewRange(s.Comment.End, fileRange.End)
	}
	return m
}

func (m *SuppressionMap) collect(
	trivia syntax.SyntaxTrivia,
	host *syntax.Token,
	fileRange text.Range,
	known KnownCategory,
	open *[]*Suppression,
) {
	if !trivia.Kind.IsComment() {
		return
	}
	comment := text.NewRange(trivia.Offset, trivia.End())
	d, err := ParseDirective(trivia.Text)
	if err != nil {
		m.malformed(comment, err)
		return
	}
	if d == nil {
		return
	}
	for _, category := range d.Categories {
		if known != nil {
			if err := known(category); err != nil {
				m.malformed(comment, err)
				return
			}
		}
	}

	for _, category := range d.Categories {
		s := &Suppression{Kind: d.Kind, Category: category, Reason: d.Reason, Comment: comment}
		switch d.Kind {
		case SuppressAll:
			s.Range = fileRange
		case SuppressNext:
			s.Range = dominatedRange(host, comment)
		case SuppressRangeStart:
			*open = append(*open, s)
		case SuppressRangeEnd:
			if !closeRange(open, category, comment) {
				m.malformed(comment, errors.New("no matching `biome-ignore-start` for "+category))
			}
			continue
		}
		m.entries = append(m.entries, s)
	}
}

func closeRange(open *[]*Suppression, category string, end text.Range) bool {
	for i := len(*open) - 1; i >= 0; i-- {
		s := (*open)[i]
		if s.Category == category {
			s.Range = text.NewRange(s.Comment.End, end.Start)
			*open = append((*open)[:i], (*open)[i+1:]...)
			return true
		}
	}
	return false
}

// dominatedRange returns the range of the outermost node that starts with
// host, excluding lists and the root. A comment without a following token
// covers nothing.
func dominatedRange(host *syntax.Token, comment text.Range) text.Range {
	if host == nil || host.Kind() == syntax.EOF {
		return text.At(comment.End)
	}
	start := host.TextRange().Start
	covered := host.TextRange()
	for n := host.Parent(); n != nil && n.Parent() != nil; n = n.Parent() {
		r := n.TextRange()
		if r.Start != start {
			break
		}
		if !n.Kind().IsList() {
			covered = r
		}
	}
	return covered
}

func (m *SuppressionMap) malformed(r text.Range, err error) {
	m.Diagnostics = append(m.Diagnostics,
		diagnostic.New(CategorySuppressionParse, diagnostic.SeverityError, r, err.Error()))
}

// Entries returns the well-formed suppressions in source order.
func (m *SuppressionMap) Entries() []*Suppression { return m.entries }

// Suppressed reports whether a diagnostic of category starting in r is
// withheld, and marks the matching suppressions as used.
func (m *SuppressionMap) Suppressed(category string, r text.Range) bool {
	hit := false
	for _, s := range m.entries {
		if s.Matches(category) && s.Covers(r) {
			s.used = true
			hit = true
		}
	}
	return hit
}

// FormatSuppressed reports whether a `biome-ignore format` directive covers
// exactly the node range r.
func (m *SuppressionMap) FormatSuppressed(r text.Range) bool {
	for _, s := range m.entries {
		if s.Category == "format" && s.Kind == SuppressNext && s.Range == r {
			s.used = true
			return true
		}
	}
	return false
}

// Unused returns a diagnostic for every lint or assist suppression that did
// not withhold anything.
func (m *SuppressionMap) Unused() []diagnostic.Diagnostic {
	var out []diagnostic.Diagnostic
	reported := make(map[text.Range]bool)
	for _, s := range m.entries {
		if s.used || s.Category == "format" || reported[s.Comment] {
			continue
		}
		reported[s.Comment] = true
		out = append(out, diagnostic.New(CategorySuppressionUnused, diagnostic.SeverityWarning, s.Comment,
			"Suppression comment has no effect. Remove the suppression or make sure you are suppressing the correct rule.").
			WithTag(diagnostic.TagUnnecessary))
	}
	return out
}
