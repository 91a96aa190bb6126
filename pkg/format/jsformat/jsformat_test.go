package jsformat_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/format"
	_ "github.com/yaklabco/gobiome/pkg/format/jsformat"
	"github.com/yaklabco/gobiome/pkg/lang"
)

func formatJS(t *testing.T, src string, opts format.Options) string {
	t.Helper()
	return formatAs(t, lang.JavaScript, "test.js", src, opts)
}

func formatAs(t *testing.T, l lang.Language, path, src string, opts format.Options) string {
	t.Helper()
	got, err := format.Format(l, path, src, opts)
	require.NoError(t, err)

	again, err := format.Format(l, path, got, opts)
	require.NoError(t, err)
	if diff := cmp.Diff(got, again); diff != "" {
		t.Errorf("formatting is not idempotent (-first +second):\n%s", diff)
	}
	return got
}

func TestFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{name: "formatted input", src: "let a = 1;\n", want: "let a = 1;\n"},
		{name: "redundant parentheses", src: "(1 >= 0)\n", want: "1 >= 0;\n"},
		{name: "spacing", src: "let   x=  5\n", want: "let x = 5;\n"},
		{name: "quotes", src: "const s = 'a';\n", want: "const s = \"a\";\n"},
		{name: "quotes kept to avoid escapes", src: "const s = 'say \"hi\"';\n", want: "const s = 'say \"hi\"';\n"},
		{name: "empty file", src: "", want: ""},
		{name: "if without block", src: "if (a) b()\n", want: "if (a) b();\n"},
		{
			name: "function",
			src:  "function foo(a,b){return a+b}\n",
			want: "function foo(a, b) {\n\treturn a + b;\n}\n",
		},
		{
			name: "blank lines collapse",
			src:  "a();\n\n\n\nb();\n",
			want: "a();\n\nb();\n",
		},
		{
			name: "object stays expanded",
			src:  "const o = {\n  a: 1, b: 2 }\n",
			want: "const o = {\n\ta: 1,\n\tb: 2,\n};\n",
		},
		{
			name: "object collapses",
			src:  "const o = {a:1,'b':2}\n",
			want: "const o = { a: 1, b: 2 };\n",
		},
		{
			name: "hugged function argument",
			src:  "foo(function () {\n  return 1;\n});\n",
			want: "foo(function () {\n\treturn 1;\n});\n",
		},
		{
			name: "hugged arrow argument before line comment",
			src:  "foo(() => { return 1 }) // c\n",
			want: "foo(() => {\n\treturn 1;\n}); // c\n",
		},
		{
			name: "hugged function argument before line comment",
			src:  "foo(function() { return 1 }) // trailing\n",
			want: "foo(function () {\n\treturn 1;\n}); // trailing\n",
		},
		{
			name: "block comment after comma stays before the argument",
			src:  "foo(a,   /* b */ c)\n",
			want: "foo(a, /* b */ c);\n",
		},
		{
			name: "short member chain",
			src:  "z.object().shape();\n",
			want: "z.object().shape();\n",
		},
		{
			name: "long member chain",
			src:  "someObject.methodNumberOne(argumentOne).methodNumberTwo(argumentTwo).methodNumberThree(argumentThree);\n",
			want: "someObject\n\t.methodNumberOne(argumentOne)\n\t.methodNumberTwo(argumentTwo)\n\t.methodNumberThree(argumentThree);\n",
		},
		{
			name: "break after operator",
			src:  "const x = someCondition && anotherCondition && yetAnotherCondition && finalCondition;\n",
			want: "const x =\n\tsomeCondition && anotherCondition && yetAnotherCondition && finalCondition;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := formatJS(t, tt.src, format.DefaultOptions())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormat_Comments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{name: "leading and trailing", src: "// lead\nlet a = 1; // trail\n"},
		{name: "after separator", src: "const o = {\n\ta: 1, // one\n\tb: 2,\n};\n"},
		{name: "dangling in block", src: "function f() {\n\t// todo\n}\n"},
		{name: "end of file", src: "a();\n\n// done\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := formatJS(t, tt.src, format.DefaultOptions())
			if diff := cmp.Diff(tt.src, got); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormat_Options(t *testing.T) {
	t.Parallel()

	asNeeded := format.DefaultOptions()
	asNeeded.Semicolons = format.SemicolonsAsNeeded

	single := format.DefaultOptions()
	single.QuoteStyle = format.QuoteSingle

	spaces := format.DefaultOptions()
	spaces.IndentStyle = config.IndentSpace
	spaces.IndentWidth = 4

	tests := []struct {
		name string
		opts format.Options
		src  string
		want string
	}{
		{name: "semicolons as needed", opts: asNeeded, src: "let a = 1;\n-b;\n", want: "let a = 1\n;-b\n"},
		{name: "single quotes", opts: single, src: "const s = \"a\";\n", want: "const s = 'a';\n"},
		{name: "single quotes avoid escapes", opts: single, src: "const s = \"it's\";\n", want: "const s = \"it's\";\n"},
		{name: "space indentation", opts: spaces, src: "if (a) {\nb();\n}\n", want: "if (a) {\n    b();\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := formatJS(t, tt.src, tt.opts)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormat_TypeScript(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "type alias with object type",
			src:  "type   A={a:string,b:number}\n",
			want: "type A = { a: string; b: number };\n",
		},
		{
			name: "object type starting on a new line",
			src:  "type P = {\n  x: number, y: number\n}\n",
			want: "type P = {\n\tx: number;\n\ty: number;\n};\n",
		},
		{
			name: "union of literals",
			src:  "type U='a'|\"b\"|null\n",
			want: "type U = \"a\" | \"b\" | null;\n",
		},
		{
			name: "long union",
			src: "type Long = \"aaaaaaaaaaaaaaa\" | \"bbbbbbbbbbbbbbbbbb\" | \"cccccccccccccccccc\" | " +
				"\"dddddddddddddddd\";\n",
			want: "type Long =\n\t| \"aaaaaaaaaaaaaaa\"\n\t| \"bbbbbbbbbbbbbbbbbb\"\n\t| \"cccccccccccccccccc\"\n" +
				"\t| \"dddddddddddddddd\";\n",
		},
		{
			name: "function type",
			src:  "type F=(a:number,b?:string)=>void\n",
			want: "type F = (a: number, b?: string) => void;\n",
		},
		{
			name: "operators and tuples",
			src:  "type K=keyof  T[ \"a\" ]\ntype Tu=[string,number?,...boolean[]]\n",
			want: "type K = keyof T[\"a\"];\ntype Tu = [string, number?, ...boolean[]];\n",
		},
		{
			name: "conditional type",
			src:  "type C<T>=T extends string?\"s\":never\n",
			want: "type C<T> = T extends string ? \"s\" : never;\n",
		},
		{
			name: "interface",
			src:  "interface  Foo<T>extends Bar,Baz{a?:T,readonly b:string[];m(x:number):void}\n",
			want: "interface Foo<T> extends Bar, Baz {\n\ta?: T;\n\treadonly b: string[];\n\tm(x: number): void;\n}\n",
		},
		{
			name: "interface keeps blank lines between members",
			src:  "interface I {\n  a: string\n\n  b: number\n}\n",
			want: "interface I {\n\ta: string;\n\n\tb: number;\n}\n",
		},
		{
			name: "enum",
			src:  "const enum  E{A,B=2}\n",
			want: "const enum E {\n\tA,\n\tB = 2,\n}\n",
		},
		{
			name: "exported alias",
			src:  "export type   Id=string|number\n",
			want: "export type Id = string | number;\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := formatAs(t, lang.TypeScript, "test.ts", tt.src, format.DefaultOptions())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormat_JSX(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
		want string
	}{
		{
			name: "attribute and child spacing",
			src:  "<div   a='1'   >{  y  }</div>\n",
			want: "<div a=\"1\">{y}</div>;\n",
		},
		{
			name: "self closing with spread",
			src:  "<Foo.Bar   x={ 1 }   {...rest}/>\n",
			want: "<Foo.Bar x={1} {...rest} />;\n",
		},
		{
			name: "string containing a double quote",
			src:  "<a title='say \"hi\"' />\n",
			want: "<a title='say \"hi\"' />;\n",
		},
		{
			name: "fragment keeps text",
			src:  "<>\n  text <b  >bold</b>\n</>\n",
			want: "<>\n  text <b>bold</b>\n</>;\n",
		},
		{
			name: "long attribute list",
			src: "<Component firstAttribute=\"aaaaaaaaaaaaaaaa\" secondAttribute=\"bbbbbbbbbbbbbbbb\" " +
				"third={value} />\n",
			want: "<Component\n\tfirstAttribute=\"aaaaaaaaaaaaaaaa\"\n\tsecondAttribute=\"bbbbbbbbbbbbbbbb\"\n" +
				"\tthird={value}\n/>;\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := formatAs(t, lang.JSX, "test.jsx", tt.src, format.DefaultOptions())
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Format() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestFormat_TSX(t *testing.T) {
	t.Parallel()

	got := formatAs(t, lang.TSX, "test.tsx", "const f = <T,>(x: T) => <Item<T>   value={x} />\n",
		format.DefaultOptions())
	require.Equal(t, "const f = <T,>(x: T) => <Item<T> value={x} />;\n", got)
}

func TestFormat_Suppressed(t *testing.T) {
	t.Parallel()

	src := "// biome-ignore format: aligned\nconst   x   =   1;\nlet   y = 2;\n"
	got := formatJS(t, src, format.DefaultOptions())
	require.Equal(t, "// biome-ignore format: aligned\nconst   x   =   1;\nlet y = 2;\n", got)
}

func TestFormat_SyntaxError(t *testing.T) {
	t.Parallel()

	_, err := format.Format(lang.JavaScript, "broken.js", "let = ;\n", format.DefaultOptions())
	require.ErrorIs(t, err, format.ErrSyntax)
}
