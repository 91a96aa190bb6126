package tailwind_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/lang/tailwind"
	"github.com/yaklabco/gobiome/pkg/text"
)

func TestCandidates(t *testing.T) {
	t.Parallel()

	src := "flex hover:md:bg-red-500/50 -mt-4 !font-bold [mask-type:luminance] bg-[#fff] group-hover/item:underline p-4!"
	parse := tailwind.Parse(src, tailwind.Options{})
	require.Empty(t, parse.Diagnostics)
	require.Equal(t, src, parse.Root().Text())

	got := tailwind.Candidates(parse.Root())
	want := []tailwind.Candidate{
		{Text: "flex", Utility: "flex"},
		{Text: "hover:md:bg-red-500/50", Variants: []string{"hover", "md"}, Utility: "bg", Value: "red-500", Modifier: "50"},
		{Text: "-mt-4", Negative: true, Utility: "mt", Value: "4"},
		{Text: "!font-bold", Important: true, Utility: "font", Value: "bold"},
		{Text: "[mask-type:luminance]", Utility: "[mask-type:luminance]"},
		{Text: "bg-[#fff]", Utility: "bg", Value: "[#fff]"},
		{Text: "group-hover/item:underline", Variants: []string{"group-hover/item"}, Utility: "underline"},
		{Text: "p-4!", Important: true, Utility: "p", Value: "4"},
	}
	if diff := cmp.Diff(want, got, cmpopts.IgnoreTypes(text.Range{})); diff != "" {
		t.Errorf("Candidates() mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ErrorRecovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		src        string
		wantSubstr string
	}{
		{"dangling dash", "bg-", "expected a value"},
		{"empty variant", ":flex", "expected a variant"},
		{"unterminated arbitrary", "bg-[#fff", "unterminated arbitrary value"},
		{"whitespace in arbitrary", "w-[1px 2px]", "cannot contain whitespace"},
		{"stray bracket", "] flex", "unexpected `]`"},
		{"double modifier", "bg-red/50/20", "unexpected `/`"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			parse := tailwind.Parse(tt.src, tailwind.Options{})
			assert.Equal(t, tt.src, parse.Root().Text())
			require.NotEmpty(t, parse.Diagnostics)
			var msgs []string
			for _, d := range parse.Diagnostics {
				msgs = append(msgs, d.Message)
			}
			assert.Contains(t, strings.Join(msgs, "\n"), tt.wantSubstr)
		})
	}
}

func FuzzParseRoundTrip(f *testing.F) {
	for _, seed := range []string{"a b", "x:[y", "-", "!!", "a/[b]", "::", "[[]]"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, src string) {
		if got := tailwind.Parse(src, tailwind.Options{}).Root().Text(); got != src {
			t.Fatalf("round trip mismatch: %q != %q", got, src)
		}
	})
}
