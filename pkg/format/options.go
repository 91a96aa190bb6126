package format

import (
	"strings"

	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/lang"
)

// QuoteStyle is the preferred string delimiter.
type QuoteStyle string

const (
	QuoteDouble QuoteStyle = "double"
	QuoteSingle QuoteStyle = "single"
)

// TrailingCommas controls commas after the last element of broken lists.
type TrailingCommas string

const (
	TrailingAll  TrailingCommas = "all"
	TrailingES5  TrailingCommas = "es5"
	TrailingNone TrailingCommas = "none"
)

// Semicolons controls statement terminators.
type Semicolons string

const (
	SemicolonsAlways   Semicolons = "always"
	SemicolonsAsNeeded Semicolons = "asNeeded"
)

// Options are the print options of one document.
type Options struct {
	LineWidth      int
	IndentStyle    config.IndentStyle
	IndentWidth    int
	QuoteStyle     QuoteStyle
	TrailingCommas TrailingCommas
	LineEnding     string
	Semicolons     Semicolons
	BracketSpacing bool
}

// DefaultOptions returns the options used without configuration.
func DefaultOptions() Options {
	return Options{
		LineWidth:      config.DefaultLineWidth,
		IndentStyle:    config.IndentTab,
		IndentWidth:    config.DefaultIndentWidth,
		QuoteStyle:     QuoteDouble,
		TrailingCommas: TrailingAll,
		LineEnding:     "lf",
		Semicolons:     SemicolonsAlways,
		BracketSpacing: true,
	}
}

// FromConfig resolves the options for l from cfg, applying the language
// section over the global formatter section.
func FromConfig(cfg *config.Config, l lang.Language) Options {
	opts := DefaultOptions()
	if l.IsJSON() {
		opts.TrailingCommas = TrailingNone
	}
	if cfg == nil {
		return opts
	}

	var settings config.FormatterSettings
	switch {
	case l.IsJS():
		js := cfg.JavaScript.Formatter
		settings = js.FormatterSettings
		if js.QuoteStyle != "" {
			opts.QuoteStyle = QuoteStyle(js.QuoteStyle)
		}
		if js.TrailingCommas != "" {
			opts.TrailingCommas = TrailingCommas(js.TrailingCommas)
		}
		if js.Semicolons != "" {
			opts.Semicolons = Semicolons(js.Semicolons)
		}
		opts.BracketSpacing = config.BoolOr(js.BracketSpacing, true)
	case l.IsJSON():
		settings = cfg.JSON.Formatter.FormatterSettings
		if tc := cfg.JSON.Formatter.TrailingCommas; tc != "" {
			opts.TrailingCommas = TrailingCommas(tc)
		}
	case l == lang.CSS:
		settings = cfg.CSS.Formatter.FormatterSettings
		if q := cfg.CSS.Formatter.QuoteStyle; q != "" {
			opts.QuoteStyle = QuoteStyle(q)
		}
	case l == lang.GraphQL:
		settings = cfg.GraphQL.Formatter
	}

	opts.LineWidth = cfg.LineWidth(settings)
	opts.IndentWidth = cfg.IndentWidth(settings)
	opts.IndentStyle = cfg.IndentStyle(settings)
	opts.LineEnding = cfg.LineEnding(settings)
	return opts
}

// Enabled reports whether formatting is on for l.
func Enabled(cfg *config.Config, l lang.Language) bool {
	if cfg == nil {
		return true
	}
	if !cfg.FormatterEnabled() {
		return false
	}
	switch {
	case l.IsJS():
		return config.BoolOr(cfg.JavaScript.Formatter.Enabled, true)
	case l.IsJSON():
		return config.BoolOr(cfg.JSON.Formatter.Enabled, true)
	case l == lang.CSS:
		return config.BoolOr(cfg.CSS.Formatter.Enabled, true)
	case l == lang.GraphQL:
		return config.BoolOr(cfg.GraphQL.Formatter.Enabled, true)
	}
	return true
}

// newline returns the line terminator for ending.
func newline(ending string) string {
	switch strings.ToLower(ending) {
	case "crlf":
		return "\r\n"
	case "cr":
		return "\r"
	default:
		return "\n"
	}
}

// indentUnit returns one level of indentation.
func (o Options) indentUnit() string {
	if o.IndentStyle == config.IndentSpace {
		return strings.Repeat(" ", max(o.IndentWidth, 1))
	}
	return "\t"
}

// unitWidth is the column width of one indentation level.
func (o Options) unitWidth() int {
	return max(o.IndentWidth, 1)
}
