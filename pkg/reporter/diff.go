package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/gobiome/internal/ui/pretty"
	"github.com/yaklabco/gobiome/pkg/analysis"
	"github.com/yaklabco/gobiome/pkg/fix"
)

// DiffRenderer formats the changes of a run as git-style unified diffs.
// Files written to disk are listed as well, showing what was changed.
type DiffRenderer struct {
	opts   Options
	styles *pretty.Styles
	out    io.Writer
}

// NewDiffRenderer creates a new diff renderer.
func NewDiffRenderer(opts Options) *DiffRenderer {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	return &DiffRenderer{
		opts:   opts,
		styles: pretty.NewStyles(colorEnabled),
		out:    opts.Writer,
	}
}

// Render implements Renderer.
func (r *DiffRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.out, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	for _, failure := range report.Failures {
		fmt.Fprintf(bw, "%s: %s\n",
			r.styles.FilePath.Render(failure.Path),
			r.styles.Error.Render(fmt.Sprintf("error: %v", failure.Error)),
		)
	}

	var files, additions, deletions int
	for _, change := range report.Changes {
		diff := fix.GenerateDiff(change.Path, change.Original, change.Output)
		if diff == nil || !diff.HasChanges() {
			continue
		}
		files++
		additions += diff.Additions
		deletions += diff.Deletions
		r.writeDiff(bw, diff)
	}

	if files > 0 && r.opts.ShowSummary {
		r.writeSummary(bw, files, additions, deletions)
	}
	return nil
}

// writeDiff outputs a single file's diff with formatting.
func (r *DiffRenderer) writeDiff(w io.Writer, diff *fix.Diff) {
	header := fmt.Sprintf("diff --git a/%s b/%s", diff.Path, diff.Path)
	fmt.Fprintln(w, r.styles.DiffHeader.Render(header))
	fmt.Fprintln(w, r.styles.DiffRemove.Render("--- a/"+diff.Path))
	fmt.Fprintln(w, r.styles.DiffAdd.Render("+++ b/"+diff.Path))

	for _, line := range diff.Lines() {
		if strings.HasPrefix(line, "---") || strings.HasPrefix(line, "+++") {
			continue
		}
		fmt.Fprintln(w, r.styles.FormatDiffLine(line))
	}
	fmt.Fprintln(w)
}

// writeSummary writes a summary line at the end.
func (r *DiffRenderer) writeSummary(w io.Writer, files, additions, deletions int) {
	fileWord := "files"
	if files == 1 {
		fileWord = "file"
	}
	parts := []string{fmt.Sprintf("%d %s changed", files, fileWord)}

	if additions > 0 {
		insertionWord := "insertions"
		if additions == 1 {
			insertionWord = "insertion"
		}
		parts = append(parts, r.styles.DiffAdd.Render(fmt.Sprintf("%d %s(+)", additions, insertionWord)))
	}
	if deletions > 0 {
		deletionWord := "deletions"
		if deletions == 1 {
			deletionWord = "deletion"
		}
		parts = append(parts, r.styles.DiffRemove.Render(fmt.Sprintf("%d %s(-)", deletions, deletionWord)))
	}

	fmt.Fprintln(w, strings.Join(parts, ", "))
}
