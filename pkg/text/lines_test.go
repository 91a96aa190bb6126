package text_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/gobiome/pkg/text"
)

func TestLineIndex_Position(t *testing.T) {
	t.Parallel()

	idx := text.NewLineIndex("let a;\r\nb\nc")

	tests := []struct {
		name   string
		offset int
		want   text.Position
	}{
		{"start", 0, text.Position{Line: 1, Column: 1}},
		{"before crlf", 6, text.Position{Line: 1, Column: 7}},
		{"second line", 8, text.Position{Line: 2, Column: 1}},
		{"third line", 10, text.Position{Line: 3, Column: 1}},
		{"past end clamps", 99, text.Position{Line: 3, Column: 2}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, idx.Position(tc.offset))
		})
	}
}

func TestLineIndex_LineContent(t *testing.T) {
	t.Parallel()

	idx := text.NewLineIndex("one\r\ntwo\nthree")
	assert.Equal(t, 3, idx.LineCount())
	assert.Equal(t, "one", idx.LineContent(1))
	assert.Equal(t, "two", idx.LineContent(2))
	assert.Equal(t, "three", idx.LineContent(3))
	assert.Empty(t, idx.LineContent(4))

	off, ok := idx.Offset(text.Position{Line: 2, Column: 2})
	assert.True(t, ok)
	assert.Equal(t, 6, off)
}

func TestRange(t *testing.T) {
	t.Parallel()

	r := text.NewRange(2, 6)
	assert.Equal(t, 4, r.Len())
	assert.True(t, r.Contains(2))
	assert.False(t, r.Contains(6))
	assert.True(t, r.ContainsRange(text.NewRange(3, 6)))
	assert.True(t, r.Intersects(text.NewRange(5, 9)))
	assert.False(t, r.Intersects(text.NewRange(6, 9)))
	assert.Equal(t, text.NewRange(1, 6), r.Cover(text.NewRange(1, 3)))
	assert.Equal(t, "cd", text.NewRange(2, 4).Slice("abcdef"))
	assert.Equal(t, "", text.NewRange(10, 12).Slice("abc"))
}
