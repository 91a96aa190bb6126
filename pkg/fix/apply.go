package fix

import "strings"

// ApplyEdits applies a sorted, validated slice of edits to content.
// Edits must be prepared with PrepareEdits before calling.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	return []byte(applySorted(string(content), edits))
}

// Apply validates edits against src, rejects overlaps and returns the
// edited text.
func Apply(src string, edits []TextEdit) (string, error) {
	prepared, err := PrepareEdits(edits, len(src))
	if err != nil {
		return "", err
	}
	return applySorted(src, prepared), nil
}

func applySorted(src string, edits []TextEdit) string {
	if len(edits) == 0 {
		return src
	}
	delta := 0
	for _, e := range edits {
		delta += e.Delta()
	}

	var out strings.Builder
	out.Grow(max(0, len(src)+delta))
	cursor := 0
	for _, e := range edits {
		out.WriteString(src[cursor:e.StartOffset])
		out.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	out.WriteString(src[cursor:])
	return out.String()
}
