package configloader

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"

	jsonc "github.com/yaklabco/gobiome/pkg/lang/json"
	"github.com/yaklabco/gobiome/pkg/syntax"
	"github.com/yaklabco/gobiome/pkg/text"
)

//go:embed schema.json
var schemaJSON []byte

// rootField is the field gojsonschema reports for the document itself.
const rootField = "(root)"

//nolint:gochecknoglobals // Compiled once on first use.
var (
	schemaOnce     sync.Once
	compiledSchema *gojsonschema.Schema
	errSchema      error
)

// Schema returns the JSON schema configuration files are validated against.
func Schema() []byte {
	return schemaJSON
}

func loadSchema() (*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiledSchema, errSchema = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(schemaJSON))
	})
	return compiledSchema, errSchema
}

// validateSchema checks the strict JSON form of a configuration file.
// Errors are located in the file through its syntax tree when possible.
func validateSchema(path string, doc []byte, root *syntax.Node, lines *text.LineIndex) ([]ValidationError, error) {
	schema, err := loadSchema()
	if err != nil {
		return nil, fmt.Errorf("compile schema: %w", err)
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(doc))
	if err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}
	if result.Valid() {
		return nil, nil
	}

	errs := make([]ValidationError, 0, len(result.Errors()))
	for _, re := range result.Errors() {
		field := re.Field()
		if field == rootField {
			field = ""
		}
		verr := ValidationError{
			Field:    field,
			Value:    re.Value(),
			Message:  re.Description(),
			FilePath: path,
		}
		if r, ok := locate(root, schemaFieldPath(re)); ok {
			verr.Line = lines.Position(r.Start).Line
		}
		errs = append(errs, verr)
	}
	return errs, nil
}

// schemaFieldPath returns the member path of a schema error. Errors about
// an unexpected property name the property itself.
func schemaFieldPath(re gojsonschema.ResultError) string {
	field := re.Field()
	if field == rootField {
		field = ""
	}
	if re.Type() == "additional_property_not_allowed" {
		if prop, ok := re.Details()["property"].(string); ok {
			if field == "" {
				return prop
			}
			return field + "." + prop
		}
	}
	return field
}

// locate returns the range of the name of the member at a dotted path, or
// of the deepest member of the path that exists.
func locate(root *syntax.Node, field string) (text.Range, bool) {
	if root == nil || field == "" {
		return text.Range{}, false
	}
	node := root.FindNode(syntax.JsonObjectValue)
	var (
		found text.Range
		ok    bool
	)
	for _, name := range strings.Split(field, ".") {
		var next *syntax.Node
		for member := range jsonc.Members(node) {
			if jsonc.MemberName(member) == name {
				found, ok = jsonc.MemberNameRange(member), true
				next = jsonc.MemberValue(node, name)
				break
			}
		}
		if next == nil {
			break
		}
		node = next
	}
	return found, ok
}
