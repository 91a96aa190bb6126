package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/gobiome/internal/ui/pretty"
	"github.com/yaklabco/gobiome/pkg/analyzer"
)

func newExplainCommand(globals *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "explain <rule>",
		Short: "Show the documentation of a rule",
		Long: `Show the documentation of a lint rule or assist action, with examples of
code it reports.

The rule can be given by name, as group/name or by its diagnostic category.

Examples:
  gobiome explain noDebugger
  gobiome explain style/useConst
  gobiome explain lint/suspicious/noDoubleEquals`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rule, ok := analyzer.DefaultRegistry.Get(args[0])
			if !ok {
				return usageError(fmt.Errorf("unknown rule %q; run 'gobiome rules' to list the rules", args[0]))
			}
			out := cmd.OutOrStdout()
			styles := newDocStyles(pretty.IsColorEnabled(globals.color, out))
			_, err := io.WriteString(out, explainRule(rule.Metadata(), styles))
			return err
		},
	}
}

// docStyles are the styles of rendered rule documentation.
type docStyles struct {
	title   lipgloss.Style
	heading lipgloss.Style
	label   lipgloss.Style
	code    lipgloss.Style
	block   lipgloss.Style
	strong  lipgloss.Style
}

func newDocStyles(colorEnabled bool) docStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return docStyles{title: plain, heading: plain, label: plain, code: plain, block: plain, strong: plain}
	}
	return docStyles{
		title:   lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		label:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		code:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		block:   lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
		strong:  lipgloss.NewStyle().Bold(true),
	}
}

// explainRule renders the metadata and documentation of a rule.
func explainRule(meta analyzer.RuleMetadata, styles docStyles) string {
	var b strings.Builder
	b.WriteString(styles.title.Render(meta.Category()))
	b.WriteString("\n\n")

	field := func(name, value string) {
		fmt.Fprintf(&b, "  %s %s\n", styles.label.Render(fmt.Sprintf("%-12s", name+":")), value)
	}
	recommended := "no"
	if meta.Recommended {
		recommended = "yes"
	}
	field("Group", meta.Group)
	field("Recommended", recommended)
	field("Severity", string(meta.Severity))
	field("Fix", meta.Fix.String())
	if meta.Language != "" {
		field("Language", meta.Language)
	}
	if len(meta.Sources) > 0 {
		sources := make([]string, 0, len(meta.Sources))
		for _, src := range meta.Sources {
			name := src.Plugin + "/" + src.Name
			if src.Kind == analyzer.SourceInspired {
				name += " (inspired)"
			}
			sources = append(sources, name)
		}
		field("Sources", strings.Join(sources, ", "))
	}
	b.WriteString("\n")

	docs := meta.Docs
	if docs == "" {
		docs = meta.Description
	}
	b.WriteString(renderMarkdown([]byte(docs), styles))
	return b.String()
}

// renderMarkdown renders Markdown for the terminal. Headings, paragraphs,
// lists and code blocks are supported; other blocks are rendered as their
// text.
func renderMarkdown(src []byte, styles docStyles) string {
	doc := goldmark.New().Parser().Parse(text.NewReader(src))
	r := &markdownRenderer{src: src, styles: styles}
	for block := doc.FirstChild(); block != nil; block = block.NextSibling() {
		r.block(block, "")
	}
	return strings.TrimRight(r.b.String(), "\n") + "\n"
}

type markdownRenderer struct {
	src    []byte
	styles docStyles
	b      strings.Builder
}

func (r *markdownRenderer) block(node ast.Node, indent string) {
	switch n := node.(type) {
	case *ast.Heading:
		r.b.WriteString(indent + r.styles.heading.Render(strings.Repeat("#", n.Level)+" "+r.inline(n)))
		r.b.WriteString("\n\n")
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		lines := node.Lines()
		for i := range lines.Len() {
			line := lines.At(i)
			content := strings.TrimRight(string(line.Value(r.src)), "\n")
			r.b.WriteString(indent + "    " + r.styles.block.Render(content) + "\n")
		}
		r.b.WriteString("\n")
	case *ast.List:
		for item := n.FirstChild(); item != nil; item = item.NextSibling() {
			r.listItem(item, indent)
		}
		r.b.WriteString("\n")
	case *ast.Paragraph, *ast.TextBlock:
		r.b.WriteString(indent + r.inline(node))
		r.b.WriteString("\n\n")
	default:
		for child := node.FirstChild(); child != nil; child = child.NextSibling() {
			r.block(child, indent)
		}
	}
}

func (r *markdownRenderer) listItem(item ast.Node, indent string) {
	r.b.WriteString(indent + "  - ")
	for child := item.FirstChild(); child != nil; child = child.NextSibling() {
		switch child.(type) {
		case *ast.Paragraph, *ast.TextBlock:
			r.b.WriteString(r.inline(child) + "\n")
		default:
			r.block(child, indent+"    ")
		}
	}
}

// inline returns the text of the inline children of node.
func (r *markdownRenderer) inline(node ast.Node) string {
	var b strings.Builder
	for child := node.FirstChild(); child != nil; child = child.NextSibling() {
		switch n := child.(type) {
		case *ast.Text:
			b.Write(n.Segment.Value(r.src))
			switch {
			case n.HardLineBreak():
				b.WriteString("\n")
			case n.SoftLineBreak():
				b.WriteString(" ")
			}
		case *ast.String:
			b.Write(n.Value)
		case *ast.CodeSpan:
			b.WriteString(r.styles.code.Render("`" + r.inline(n) + "`"))
		case *ast.Emphasis:
			b.WriteString(r.styles.strong.Render(r.inline(n)))
		default:
			b.WriteString(r.inline(n))
		}
	}
	return b.String()
}
