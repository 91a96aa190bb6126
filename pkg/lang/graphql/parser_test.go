package graphql_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/lang/graphql"
	"github.com/yaklabco/gobiome/pkg/syntax"
)

func kindsOf(root *syntax.Node) map[syntax.Kind]int {
	out := make(map[syntax.Kind]int)
	for n := range root.Descendants() {
		out[n.Kind()]++
	}
	return out
}

func TestParse_Valid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		src   string
		kinds []syntax.Kind
	}{
		{"shorthand query", "{ me { name } }", []syntax.Kind{syntax.GraphqlOperationDefinition, syntax.GraphqlField}},
		{
			"named query with variables",
			"query Hero($episode: Episode = JEDI, $ids: [ID!]!) @cached { hero(episode: $episode) { name } }",
			[]syntax.Kind{
				syntax.GraphqlVariableDefinition, syntax.GraphqlDefaultValue, syntax.GraphqlNonNullType,
				syntax.GraphqlListType, syntax.GraphqlDirective, syntax.GraphqlArgument, syntax.GraphqlVariable,
			},
		},
		{"alias", "{ small: picture(size: 64) }", []syntax.Kind{syntax.GraphqlAlias}},
		{
			"fragments",
			"query { ...F ... on User { id } ... @include(if: true) { x } } fragment F on Query { a }",
			[]syntax.Kind{syntax.GraphqlFragmentSpread, syntax.GraphqlInlineFragment, syntax.GraphqlFragmentDefinition, syntax.GraphqlTypeCondition},
		},
		{
			"values",
			`mutation { m(a: 1, b: -2.5e3, c: "s", d: """block""", e: null, f: [1, 2], g: {x: RED}) }`,
			[]syntax.Kind{
				syntax.GraphqlNumberValue, syntax.GraphqlStringValue, syntax.GraphqlNullValue,
				syntax.GraphqlListValue, syntax.GraphqlObjectValue, syntax.GraphqlEnumValue,
			},
		},
		{
			"object type",
			"\"\"\"A user\"\"\"\ntype User implements Node & Entity @key(fields: \"id\") {\n  \"the id\" id: ID!\n  friends(first: Int = 10): [User]\n}",
			[]syntax.Kind{
				syntax.GraphqlTypeSystemDefinition, syntax.GraphqlDescription, syntax.GraphqlImplementsInterfaces,
				syntax.GraphqlFieldDefinition, syntax.GraphqlArgumentsDefinition, syntax.GraphqlInputValueDefinition,
			},
		},
		{"enum", "enum Color { RED GREEN @deprecated BLUE }", []syntax.Kind{syntax.GraphqlEnumValuesDefinition, syntax.GraphqlEnumValue}},
		{"union", "union SearchResult = | Photo | Person", []syntax.Kind{syntax.GraphqlUnionMemberTypes}},
		{"input", "input Point { x: Float! = 0, y: Float! }", []syntax.Kind{syntax.GraphqlInputValueDefinitionList}},
		{"scalar and schema", "scalar Date\nschema { query: Query mutation: Mutation }", []syntax.Kind{syntax.GraphqlFieldDefinition}},
		{"directive", "directive @auth(role: String) repeatable on FIELD_DEFINITION | OBJECT", []syntax.Kind{syntax.GraphqlDirectiveLocationList}},
		{"extension", "extend type Query { extra: Int }", []syntax.Kind{syntax.GraphqlTypeSystemDefinition}},
		{"comments", "# leading\n{ a # trailing\n}", []syntax.Kind{syntax.GraphqlField}},
		{"keyword field names", "{ query type on fragment }", []syntax.Kind{syntax.GraphqlField}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			parse := graphql.Parse(tt.src, graphql.Options{})
			assert.Empty(t, parse.Diagnostics)
			assert.Equal(t, tt.src, parse.Root().Text())
			kinds := kindsOf(parse.Root())
			for _, k := range tt.kinds {
				assert.Positive(t, kinds[k], "missing %s", k)
			}
		})
	}
}

func TestParse_ErrorRecovery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		src        string
		wantSubstr string
	}{
		{"garbage definition", "foo bar\n{ a }", "expected a definition"},
		{"missing selection set", "query Q", "expected a selection set"},
		{"missing type condition", "fragment F { a }", "expected `on`"},
		{"fragment named on", "fragment on on T { a }", "not allowed as a fragment name"},
		{"bad selection", "{ a, 1 }", "expected a selection"},
		{"missing value", "{ a(x: ) }", "expected a value"},
		{"unterminated string", "{ a(x: \"y) }", "unterminated string"},
		{"single dot", "{ .a }", "did you mean `...`"},
		{"unclosed", "{ a { b }", "expected `}`"},
		{"enum true", "enum E { true }", "not allowed as an enum value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			parse := graphql.Parse(tt.src, graphql.Options{})
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

func TestParse_RemapsKeywords(t *testing.T) {
	t.Parallel()

	root := graphql.Parse("query Q { a } fragment F on T { b }", graphql.Options{}).Root()
	var kinds []syntax.Kind
	for tok := range root.Tokens() {
		kinds = append(kinds, tok.Kind())
	}
	assert.Contains(t, kinds, syntax.GraphqlQueryKw)
	assert.Contains(t, kinds, syntax.GraphqlFragmentKw)
	assert.Contains(t, kinds, syntax.GraphqlOnKw)
}

func FuzzParseRoundTrip(f *testing.F) {
	for _, seed := range []string{"{a}", "query($", "type T {", `"""`, "... on", "{a(b:[{c:1}])}"} {
		f.Add(seed)
	}
	f.Fuzz(func(t *testing.T, src string) {
		if got := graphql.Parse(src, graphql.Options{}).Root().Text(); got != src {
			t.Fatalf("round trip mismatch: %q != %q", got, src)
		}
	})
}
