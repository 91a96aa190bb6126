package reporter

import (
	"fmt"

	"github.com/yaklabco/gobiome/pkg/config"
)

// ParseFormat parses a --reporter value, returning an error for unknown
// reporters. "text" is accepted as an alias of the default reporter.
func ParseFormat(formatStr string) (config.OutputFormat, error) {
	switch formatStr {
	case "", "text":
		return config.FormatDefault, nil
	}
	format := config.OutputFormat(formatStr)
	if !format.IsValid() {
		return "", fmt.Errorf("unknown reporter %q; valid reporters: default, table, json, json-pretty, sarif, diff, summary",
			formatStr)
	}
	return format, nil
}
