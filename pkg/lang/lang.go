// Package lang identifies the language of a document and dispatches to the
// language specific parsers.
package lang

import (
	"fmt"

	"github.com/yaklabco/gobiome/pkg/lang/css"
	"github.com/yaklabco/gobiome/pkg/lang/graphql"
	"github.com/yaklabco/gobiome/pkg/lang/grit"
	"github.com/yaklabco/gobiome/pkg/lang/js"
	"github.com/yaklabco/gobiome/pkg/lang/json"
	"github.com/yaklabco/gobiome/pkg/lang/tailwind"
	"github.com/yaklabco/gobiome/pkg/parser"
)

// Language identifies a supported source language.
type Language string

// Supported languages.
const (
	Unknown    Language = ""
	JavaScript Language = "javascript"
	TypeScript Language = "typescript"
	JSX        Language = "jsx"
	TSX        Language = "tsx"
	JSON       Language = "json"
	JSONC      Language = "jsonc"
	CSS        Language = "css"
	GraphQL    Language = "graphql"
	Grit       Language = "grit"
	Tailwind   Language = "tailwind"
)

// All returns the supported languages in a stable order.
func All() []Language {
	return []Language{JavaScript, TypeScript, JSX, TSX, JSON, JSONC, CSS, GraphQL, Grit, Tailwind}
}

// IsJS reports whether l is parsed by the JavaScript parser.
func (l Language) IsJS() bool {
	switch l {
	case JavaScript, TypeScript, JSX, TSX:
		return true
	}
	return false
}

// IsJSON reports whether l is a JSON dialect.
func (l Language) IsJSON() bool {
	return l == JSON || l == JSONC
}

// Family groups dialects under the name used by configuration sections
// and rule metadata: javascript, json, css, graphql, grit or tailwind.
func (l Language) Family() string {
	switch {
	case l.IsJS():
		return "javascript"
	case l.IsJSON():
		return "json"
	}
	return string(l)
}

// String implements fmt.Stringer.
func (l Language) String() string {
	if l == Unknown {
		return "unknown"
	}
	return string(l)
}

// Parse parses src as l. Paths refine dialect options such as JSONC file
// names; an empty path is allowed.
func Parse(l Language, path, src string) (*parser.Parse, error) {
	switch l {
	case JavaScript:
		return js.Parse(src, js.Options{}), nil
	case JSX:
		return js.Parse(src, js.Options{JSX: true}), nil
	case TypeScript:
		return js.Parse(src, js.Options{TypeScript: true}), nil
	case TSX:
		return js.Parse(src, js.Options{TypeScript: true, JSX: true}), nil
	case JSON:
		opts := json.Options{}
		if path != "" {
			opts = json.OptionsForPath(path)
		}
		return json.Parse(src, opts), nil
	case JSONC:
		return json.Parse(src, json.JSONC), nil
	case CSS:
		return css.Parse(src, css.Options{}), nil
	case GraphQL:
		return graphql.Parse(src, graphql.Options{}), nil
	case Grit:
		return grit.Parse(src, grit.Options{}), nil
	case Tailwind:
		return tailwind.Parse(src, tailwind.Options{}), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnsupported, l)
}
