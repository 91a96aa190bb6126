package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gobiome/internal/ui/pretty"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/text"
)

func debuggerDiagnostic() diagnostic.Diagnostic {
	d := diagnostic.New("lint/suspicious/noDebugger", diagnostic.SeverityError, text.NewRange(7, 15),
		"This is an unexpected use of the debugger statement.").WithPath("src/a.js")
	d.Location.Start = text.Position{Line: 2, Column: 1}
	d.Location.End = text.Position{Line: 2, Column: 9}
	return d
}

func TestFormatDiagnostic(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	got := styles.FormatDiagnostic(debuggerDiagnostic(), "")

	assert.Equal(t, "src/a.js:2:1 lint/suspicious/noDebugger\n\n"+
		"  × This is an unexpected use of the debugger statement.\n\n", got)
}

func TestFormatDiagnostic_SourceContext(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	got := styles.FormatDiagnostic(debuggerDiagnostic(), "let a;\ndebugger;\n")

	assert.Contains(t, got, "  > 2 │ debugger;\n")
	assert.Contains(t, got, "      │ ^^^^^^^^\n")
}

func TestFormatDiagnostic_AdvicesAndTags(t *testing.T) {
	t.Parallel()

	d := debuggerDiagnostic().WithTag(diagnostic.TagFixable).WithAdvice("Remove the debugger statement.")
	d.Advices = append(d.Advices,
		diagnostic.Advice{Kind: diagnostic.AdviceDiff, Message: "Unsafe fix", Diff: "--- a\n+++ b\n@@ -1 +1 @@\n-debugger;\n"},
		diagnostic.Advice{Kind: diagnostic.AdviceList, Message: "Globals", Items: []string{"window"}},
	)

	got := pretty.NewStyles(false).FormatDiagnostic(d, "")

	assert.Contains(t, got, "noDebugger FIXABLE\n")
	assert.Contains(t, got, "  i Remove the debugger statement.\n")
	assert.Contains(t, got, "  i Unsafe fix\n    @@ -1 +1 @@\n    -debugger;\n")
	assert.NotContains(t, got, "+++")
	assert.Contains(t, got, "  i Globals\n    - window\n")
}

func TestFormatSeverity(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	tests := map[diagnostic.Severity]string{
		diagnostic.SeverityFatal:       "×",
		diagnostic.SeverityError:       "×",
		diagnostic.SeverityWarning:     "!",
		diagnostic.SeverityInformation: "i",
		diagnostic.SeverityHint:        "ℹ",
	}
	for sev, want := range tests {
		assert.Equal(t, want, styles.FormatSeverity(sev), sev)
	}
}

func TestFormatSourceContext_WideCharacters(t *testing.T) {
	t.Parallel()

	// "日本" is two double-width runes of three bytes each.
	src := `a = "日本" + b;`
	loc := diagnostic.Location{
		Start: text.Position{Line: 1, Column: 14},
		End:   text.Position{Line: 1, Column: 15},
	}
	got := pretty.NewStyles(false).FormatSourceContext(src, loc)

	assert.Contains(t, got, "      │ "+"           ^\n")
}

func TestFormatFileHeader(t *testing.T) {
	t.Parallel()

	styles := pretty.NewStyles(false)
	assert.Equal(t, "a.js (3 issues)", styles.FormatFileHeader("a.js", 3))
	assert.Equal(t, "a.js", styles.FormatFileHeader("a.js", 0))
}
