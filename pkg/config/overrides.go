package config

import (
	"path"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// MatchIncludes reports whether file is selected by an includes list.
// Patterns starting with `!` exclude; later patterns win over earlier ones.
// An empty list selects every file. Patterns without a slash also match the
// base name.
func MatchIncludes(patterns []string, file string) bool {
	if len(patterns) == 0 {
		return true
	}
	file = strings.TrimPrefix(path.Clean(strings.ReplaceAll(file, "\\", "/")), "./")

	selected := false
	onlyNegations := true
	for _, pattern := range patterns {
		negate := strings.HasPrefix(pattern, "!")
		if negate {
			pattern = strings.TrimLeft(pattern, "!")
		} else {
			onlyNegations = false
		}
		if matchGlob(pattern, file) {
			selected = !negate
		}
	}
	if onlyNegations {
		for _, pattern := range patterns {
			if matchGlob(strings.TrimLeft(pattern, "!"), file) {
				return false
			}
		}
		return true
	}
	return selected
}

func matchGlob(pattern, file string) bool {
	pattern = strings.TrimPrefix(pattern, "./")
	if ok, err := doublestar.Match(pattern, file); err == nil && ok {
		return true
	}
	if strings.HasSuffix(pattern, "/**") {
		if ok, _ := doublestar.Match(strings.TrimSuffix(pattern, "/**"), file); ok {
			return true
		}
	}
	if !strings.Contains(pattern, "/") {
		ok, err := doublestar.Match(pattern, path.Base(file))
		return err == nil && ok
	}
	return false
}

// ValidatePatterns returns the first malformed glob in patterns.
func ValidatePatterns(patterns []string) (string, bool) {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(strings.TrimLeft(p, "!")) {
			return p, false
		}
	}
	return "", true
}

// ForPath returns the configuration in effect for file: c with every
// matching override applied in declaration order. c is not modified.
func (c *Config) ForPath(file string) *Config {
	out := *c
	out.Linter.Rules = c.Linter.Rules.Clone()
	for _, o := range c.Overrides {
		if !MatchIncludes(o.Includes, file) {
			continue
		}
		out.applyOverride(o)
	}
	return &out
}

func (c *Config) applyOverride(o Override) {
	if f := o.Formatter; f != nil {
		overlaySettings(&c.Formatter.FormatterSettings, f.FormatterSettings)
		if f.FormatWithErrors != nil {
			c.Formatter.FormatWithErrors = f.FormatWithErrors
		}
	}
	if l := o.Linter; l != nil {
		if l.Enabled != nil {
			c.Linter.Enabled = l.Enabled
		}
		c.Linter.Rules.Merge(l.Rules)
	}
	if js := o.JavaScript; js != nil {
		dst := &c.JavaScript.Formatter
		overlaySettings(&dst.FormatterSettings, js.Formatter.FormatterSettings)
		dst.QuoteStyle = pick(js.Formatter.QuoteStyle, dst.QuoteStyle)
		dst.JSXQuoteStyle = pick(js.Formatter.JSXQuoteStyle, dst.JSXQuoteStyle)
		dst.TrailingCommas = pick(js.Formatter.TrailingCommas, dst.TrailingCommas)
		dst.Semicolons = pick(js.Formatter.Semicolons, dst.Semicolons)
		dst.ArrowParentheses = pick(js.Formatter.ArrowParentheses, dst.ArrowParentheses)
		if js.Formatter.BracketSpacing != nil {
			dst.BracketSpacing = js.Formatter.BracketSpacing
		}
		if js.Linter.Enabled != nil {
			c.JavaScript.Linter.Enabled = js.Linter.Enabled
		}
		if len(js.Globals) > 0 {
			c.JavaScript.Globals = append(append([]string(nil), c.JavaScript.Globals...), js.Globals...)
		}
	}
	if j := o.JSON; j != nil {
		if j.Parser.AllowComments != nil {
			c.JSON.Parser.AllowComments = j.Parser.AllowComments
		}
		if j.Parser.AllowTrailingCommas != nil {
			c.JSON.Parser.AllowTrailingCommas = j.Parser.AllowTrailingCommas
		}
		overlaySettings(&c.JSON.Formatter.FormatterSettings, j.Formatter.FormatterSettings)
		c.JSON.Formatter.TrailingCommas = pick(j.Formatter.TrailingCommas, c.JSON.Formatter.TrailingCommas)
		if j.Linter.Enabled != nil {
			c.JSON.Linter.Enabled = j.Linter.Enabled
		}
	}
	if css := o.CSS; css != nil {
		if css.Parser.AllowWrongLineComments != nil {
			c.CSS.Parser.AllowWrongLineComments = css.Parser.AllowWrongLineComments
		}
		overlaySettings(&c.CSS.Formatter.FormatterSettings, css.Formatter.FormatterSettings)
		c.CSS.Formatter.QuoteStyle = pick(css.Formatter.QuoteStyle, c.CSS.Formatter.QuoteStyle)
		if css.Linter.Enabled != nil {
			c.CSS.Linter.Enabled = css.Linter.Enabled
		}
	}
}

func overlaySettings(dst *FormatterSettings, src FormatterSettings) {
	if src.Enabled != nil {
		dst.Enabled = src.Enabled
	}
	if src.IndentStyle != "" {
		dst.IndentStyle = src.IndentStyle
	}
	if src.IndentWidth > 0 {
		dst.IndentWidth = src.IndentWidth
	}
	if src.LineEnding != "" {
		dst.LineEnding = src.LineEnding
	}
	if src.LineWidth > 0 {
		dst.LineWidth = src.LineWidth
	}
}

func pick(override, current string) string {
	if override != "" {
		return override
	}
	return current
}
