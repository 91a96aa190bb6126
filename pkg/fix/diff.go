package fix

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
)

// contextLines is the number of context lines to show around changes.
const contextLines = 3

// Diff is a unified diff between two versions of a file.
type Diff struct {
	Path      string
	Original  string
	Modified  string
	Additions int
	Deletions int

	unified string
}

// GenerateDiff computes the diff of original and modified. It returns nil
// when they are equal.
func GenerateDiff(path, original, modified string) *Diff {
	if original == modified {
		return nil
	}

	a, b := difflib.SplitLines(original), difflib.SplitLines(modified)
	d := &Diff{Path: path, Original: original, Modified: modified}
	for _, op := range difflib.NewMatcher(a, b).GetOpCodes() {
		switch op.Tag {
		case 'r':
			d.Deletions += op.I2 - op.I1
			d.Additions += op.J2 - op.J1
		case 'd':
			d.Deletions += op.I2 - op.I1
		case 'i':
			d.Additions += op.J2 - op.J1
		}
	}

	name := strings.TrimPrefix(path, "/")
	unified, err := difflib.GetUnifiedDiffString(difflib.UnifiedDiff{
		A:        a,
		B:        b,
		FromFile: "a/" + name,
		ToFile:   "b/" + name,
		Context:  contextLines,
	})
	if err == nil {
		d.unified = unified
	}
	return d
}

// HasChanges reports whether the diff contains any changes.
func (d *Diff) HasChanges() bool {
	return d != nil && (d.Additions > 0 || d.Deletions > 0)
}

// String returns the diff in unified format.
func (d *Diff) String() string {
	if d == nil {
		return ""
	}
	return d.unified
}

// Lines splits the unified diff into its lines without line terminators.
func (d *Diff) Lines() []string {
	if d == nil || d.unified == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(d.unified, "\n"), "\n")
}
