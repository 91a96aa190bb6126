package json

import (
	stdjson "encoding/json"
	"errors"
	"fmt"
	"iter"
	"strings"

	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
	"github.com/yaklabco/gobiome/pkg/text"
)

// ErrSyntax is wrapped by errors returned for documents with syntax errors.
var ErrSyntax = errors.New("invalid JSON")

// Strict renders a parsed document as strict JSON: trivia is dropped and
// trailing commas are removed. It fails when the parse has errors.
func Strict(parse *parser.Parse) ([]byte, error) {
	if parse.HasErrors() {
		d := parse.Diagnostics[0]
		return nil, fmt.Errorf("%w: %s at offset %d", ErrSyntax, d.Message, d.Location.Range.Start)
	}

	var sb strings.Builder
	for tok := range parse.Root().Tokens() {
		if tok.Kind() == syntax.EOF {
			continue
		}
		if tok.Kind() == syntax.Comma {
			if next := tok.NextToken(); next != nil && (next.Kind() == syntax.RBrace || next.Kind() == syntax.RBrack) {
				continue
			}
		}
		sb.WriteString(tok.Text())
	}
	return []byte(sb.String()), nil
}

// Unmarshal parses src with opts and decodes it into v.
func Unmarshal(src []byte, opts Options, v any) error {
	strict, err := Strict(Parse(string(src), opts))
	if err != nil {
		return err
	}
	if err := stdjson.Unmarshal(strict, v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	return nil
}

// MemberValue returns the value node of the member named name in an
// object value node.
func MemberValue(object *syntax.Node, name string) *syntax.Node {
	for member := range Members(object) {
		if MemberName(member) == name {
			return member.FindNode(valueKinds.Kinds()...)
		}
	}
	return nil
}

//nolint:gochecknoglobals // Static kind set
var valueKinds = syntax.KindSetOf(
	syntax.JsonObjectValue, syntax.JsonArrayValue, syntax.JsonStringValue, syntax.JsonNumberValue,
	syntax.JsonBooleanValue, syntax.JsonNullValue, syntax.JsonBogusValue,
)

// Members iterates the members of an object value node.
func Members(object *syntax.Node) iter.Seq[*syntax.Node] {
	return func(yield func(*syntax.Node) bool) {
		if object == nil || object.Kind() != syntax.JsonObjectValue {
			return
		}
		list := object.FindNode(syntax.JsonMemberList)
		if list == nil {
			return
		}
		for member := range list.ChildNodes() {
			if member.Kind() == syntax.JsonMember && !yield(member) {
				return
			}
		}
	}
}

// MemberName returns the unquoted name of a member node.
func MemberName(member *syntax.Node) string {
	name := member.FindNode(syntax.JsonMemberName)
	if name == nil || name.FirstToken() == nil {
		return ""
	}
	return Unquote(name.FirstToken().Text())
}

// MemberNameRange returns the range of the member's name token.
func MemberNameRange(member *syntax.Node) text.Range {
	name := member.FindNode(syntax.JsonMemberName)
	if name == nil {
		return member.TextRange()
	}
	return name.TextRange()
}

// Unquote decodes a JSON string token. Malformed tokens are returned
// without their quotes.
func Unquote(tok string) string {
	var s string
	if err := stdjson.Unmarshal([]byte(tok), &s); err == nil {
		return s
	}
	return strings.Trim(tok, `"'`)
}
