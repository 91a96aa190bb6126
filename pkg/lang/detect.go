package lang

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// ErrUnsupported is returned for documents in no supported language.
var ErrUnsupported = errors.New("unsupported language")

//nolint:gochecknoglobals // Static lookup table
var extensions = map[string]Language{
	".js":      JavaScript,
	".mjs":     JavaScript,
	".cjs":     JavaScript,
	".jsx":     JSX,
	".ts":      TypeScript,
	".mts":     TypeScript,
	".cts":     TypeScript,
	".tsx":     TSX,
	".json":    JSON,
	".jsonc":   JSONC,
	".css":     CSS,
	".graphql": GraphQL,
	".gql":     GraphQL,
	".grit":    Grit,
}

// enryNames maps linguist language names to supported languages.
//
//nolint:gochecknoglobals // Static lookup table
var enryNames = map[string]Language{
	"JavaScript":         JavaScript,
	"TypeScript":         TypeScript,
	"TSX":                TSX,
	"JSON":               JSON,
	"JSON with Comments": JSONC,
	"CSS":                CSS,
	"GraphQL":            GraphQL,
}

// FromPath returns the language of a file from its name. The extension
// table is consulted first, then linguist filename and extension data.
func FromPath(path string) (Language, bool) {
	base := filepath.Base(path)
	if l, ok := extensions[strings.ToLower(filepath.Ext(base))]; ok {
		if l == JSON && strings.HasSuffix(strings.ToLower(base), ".json") && isJSONCName(base) {
			return JSONC, true
		}
		return l, true
	}
	if name, ok := enry.GetLanguageByFilename(base); ok {
		if l, ok := enryNames[name]; ok {
			return l, true
		}
	}
	if name, ok := enry.GetLanguageByExtension(base); ok {
		if l, ok := enryNames[name]; ok {
			return l, true
		}
	}
	return Unknown, false
}

func isJSONCName(base string) bool {
	name, ok := enry.GetLanguageByFilename(base)
	if ok && name == "JSON with Comments" {
		return true
	}
	switch strings.ToLower(base) {
	case "tsconfig.json", "jsconfig.json", "biome.json", ".eslintrc.json":
		return true
	}
	return false
}

// Detect returns the language of a document, using its path when known
// and its content otherwise: a shebang first, then distinctive patterns,
// then the linguist classifier restricted to supported languages.
func Detect(path string, content []byte) (Language, bool) {
	if path != "" {
		if l, ok := FromPath(path); ok {
			return l, true
		}
	}
	if len(bytes.TrimSpace(content)) == 0 {
		return Unknown, false
	}

	if name, safe := enry.GetLanguageByShebang(content); safe {
		if l, ok := enryNames[name]; ok {
			return l, true
		}
		return Unknown, false
	}

	if l := detectByPattern(content); l != Unknown {
		return l, true
	}

	candidates := []string{"JavaScript", "TypeScript", "JSON", "CSS", "GraphQL"}
	if name, safe := enry.GetLanguageByClassifier(content, candidates); safe && name != "" {
		if l, ok := enryNames[name]; ok {
			return l, true
		}
	}
	return Unknown, false
}

// detectByPattern checks for patterns that are highly indicative.
func detectByPattern(content []byte) Language {
	trimmed := bytes.TrimSpace(content)
	str := string(trimmed)

	switch {
	case (bytes.HasPrefix(trimmed, []byte("{")) || bytes.HasPrefix(trimmed, []byte("["))) &&
		bytes.Contains(trimmed, []byte(`"`)) && !strings.Contains(str, "=>") && !strings.Contains(str, "function"):
		return JSON
	case strings.HasPrefix(str, "query ") || strings.HasPrefix(str, "mutation ") ||
		strings.HasPrefix(str, "fragment ") || strings.HasPrefix(str, "type ") && strings.Contains(str, "{") && !strings.Contains(str, "="):
		return GraphQL
	case strings.Contains(str, "interface ") && strings.Contains(str, ": ") || strings.Contains(str, ": string") ||
		strings.Contains(str, ": number"):
		return TypeScript
	case strings.Contains(str, "=>") || strings.Contains(str, "const ") || strings.Contains(str, "let ") ||
		strings.Contains(str, "console.log") || strings.Contains(str, "function "):
		return JavaScript
	}
	return Unknown
}
