package syntax

import (
	"fmt"
	"strings"
)

// String returns the kind name.
func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", uint16(k))
}

// IsToken returns true for token kinds.
func (k Kind) IsToken() bool {
	return k < firstNode
}

// IsNode returns true for node kinds.
func (k Kind) IsNode() bool {
	return k >= firstNode && k < kindCount
}

// IsKeyword returns true for keyword tokens of any language.
func (k Kind) IsKeyword() bool {
	return k.IsToken() && strings.HasSuffix(kindNames[k], "Kw")
}

// IsPunct returns true for punctuation tokens.
func (k Kind) IsPunct() bool {
	return k >= LParen && k <= LtSlash
}

// IsBogus returns true for the error-recovery wrapper kinds.
func (k Kind) IsBogus() bool {
	return k.IsNode() && strings.Contains(kindNames[k], "Bogus")
}

// IsList returns true for list node kinds.
func (k Kind) IsList() bool {
	return k.IsNode() && strings.HasSuffix(kindNames[k], "List")
}

// Text returns the fixed source text of a punctuation or keyword kind,
// or the empty string for kinds whose text comes from the lexer.
func (k Kind) Text() string {
	if int(k) < len(kindText) {
		return kindText[k]
	}
	return ""
}

// KeywordKind maps an identifier text to its JavaScript keyword kind.
func KeywordKind(text string) (Kind, bool) {
	k, ok := jsKeywords[text]
	return k, ok
}

// jsKeywords is built from kindText for the JavaScript and TypeScript keyword block.
//
//nolint:gochecknoglobals // Static lookup table
var jsKeywords = func() map[string]Kind {
	m := make(map[string]Kind)
	for k := BreakKw; k <= IsKw; k++ {
		m[kindText[k]] = k
	}
	return m
}()

// ReservedKeyword reports whether k can never be used as an identifier in JavaScript.
func ReservedKeyword(k Kind) bool {
	return k >= BreakKw && k <= WithKw
}

// KindCount returns the number of kinds.
func KindCount() int {
	return int(kindCount)
}
