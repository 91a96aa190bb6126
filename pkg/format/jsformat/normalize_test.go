package jsformat

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeNumber(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw    string
		member bool
		want   string
	}{
		{raw: "1", want: "1"},
		{raw: "1.50", want: "1.5"},
		{raw: "1.00", want: "1.0"},
		{raw: ".5", want: "0.5"},
		{raw: "5.", want: "5"},
		{raw: "5.", member: true, want: "5."},
		{raw: "1E+5", want: "1e5"},
		{raw: "1e-05", want: "1e-5"},
		{raw: "2e0", want: "2"},
		{raw: "0XFF", want: "0xFF"},
		{raw: "0B101", want: "0b101"},
		{raw: "1_000.50", want: "1_000.50"},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalizeNumber(tt.raw, tt.member))
		})
	}
}

func TestNormalizeString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		raw       string
		preferred byte
		want      string
	}{
		{raw: `'a'`, preferred: '"', want: `"a"`},
		{raw: `"a"`, preferred: '\'', want: `'a'`},
		{raw: `'it\'s'`, preferred: '"', want: `"it's"`},
		{raw: `'say "hi"'`, preferred: '"', want: `'say "hi"'`},
		{raw: `"\n"`, preferred: '"', want: `"\n"`},
		{raw: `'a"b'`, preferred: '"', want: `'a"b'`},
		{raw: `'a"b\''`, preferred: '"', want: `"a\"b'"`},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, normalizeString(tt.raw, tt.preferred))
		})
	}
}
