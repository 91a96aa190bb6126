// Package config defines the configuration model of gobiome. These types are
// plain data with JSON tags mirroring biome.json; loading, schema validation
// and environment handling live in internal/configloader.
package config

// Default values applied when a setting is absent.
const (
	DefaultMaxSize        int64 = 1 << 20
	DefaultLineWidth            = 80
	DefaultIndentWidth          = 2
	DefaultMaxDiagnostics       = 20
)

// OutputFormat specifies the reporter used for diagnostics.
type OutputFormat string

const (
	FormatDefault    OutputFormat = "default"
	FormatTable      OutputFormat = "table"
	FormatJSON       OutputFormat = "json"
	FormatJSONPretty OutputFormat = "json-pretty"
	FormatSARIF      OutputFormat = "sarif"
	FormatDiff       OutputFormat = "diff"
	FormatSummary    OutputFormat = "summary"
)

// IsValid reports whether f names a known reporter.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatDefault, FormatTable, FormatJSON, FormatJSONPretty, FormatSARIF, FormatDiff, FormatSummary:
		return true
	default:
		return false
	}
}

// IndentStyle selects tabs or spaces.
type IndentStyle string

const (
	IndentTab   IndentStyle = "tab"
	IndentSpace IndentStyle = "space"
)

// Files controls which files are processed.
type Files struct {
	// MaxSize is the largest file size in bytes that is processed.
	MaxSize int64 `json:"maxSize,omitempty" yaml:"maxSize,omitempty"`
	// Includes lists glob patterns; patterns starting with `!` exclude.
	Includes      []string `json:"includes,omitempty" yaml:"includes,omitempty"`
	IgnoreUnknown *bool    `json:"ignoreUnknown,omitempty" yaml:"ignoreUnknown,omitempty"`
}

// VCS configures the version control integration.
type VCS struct {
	Enabled       *bool  `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	ClientKind    string `json:"clientKind,omitempty" yaml:"clientKind,omitempty"`
	UseIgnoreFile *bool  `json:"useIgnoreFile,omitempty" yaml:"useIgnoreFile,omitempty"`
	DefaultBranch string `json:"defaultBranch,omitempty" yaml:"defaultBranch,omitempty"`
	Root          string `json:"root,omitempty" yaml:"root,omitempty"`
}

// FormatterSettings are the layout options shared by every language.
type FormatterSettings struct {
	Enabled     *bool       `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	IndentStyle IndentStyle `json:"indentStyle,omitempty" yaml:"indentStyle,omitempty"`
	IndentWidth int         `json:"indentWidth,omitempty" yaml:"indentWidth,omitempty"`
	LineEnding  string      `json:"lineEnding,omitempty" yaml:"lineEnding,omitempty"`
	LineWidth   int         `json:"lineWidth,omitempty" yaml:"lineWidth,omitempty"`
}

// Formatter is the top-level formatter section.
type Formatter struct {
	FormatterSettings

	FormatWithErrors *bool    `json:"formatWithErrors,omitempty" yaml:"formatWithErrors,omitempty"`
	Includes         []string `json:"includes,omitempty" yaml:"includes,omitempty"`
}

// Linter is the top-level linter section.
type Linter struct {
	Enabled  *bool    `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Rules    Rules    `json:"rules,omitzero" yaml:"rules,omitempty"`
	Includes []string `json:"includes,omitempty" yaml:"includes,omitempty"`
}

// Assist configures code actions applied without a diagnostic.
type Assist struct {
	Enabled *bool         `json:"enabled,omitempty" yaml:"enabled,omitempty"`
	Actions AssistActions `json:"actions,omitzero" yaml:"actions,omitempty"`
}

// AssistActions groups assist actions by kind.
type AssistActions struct {
	Source map[string]RuleConfiguration `json:"source,omitempty" yaml:"source,omitempty"`
}

// LanguageLinter toggles linting for one language.
type LanguageLinter struct {
	Enabled *bool `json:"enabled,omitempty" yaml:"enabled,omitempty"`
}

// JSFormatter holds the JavaScript formatting options.
type JSFormatter struct {
	FormatterSettings

	QuoteStyle       string `json:"quoteStyle,omitempty" yaml:"quoteStyle,omitempty"`
	JSXQuoteStyle    string `json:"jsxQuoteStyle,omitempty" yaml:"jsxQuoteStyle,omitempty"`
	TrailingCommas   string `json:"trailingCommas,omitempty" yaml:"trailingCommas,omitempty"`
	Semicolons       string `json:"semicolons,omitempty" yaml:"semicolons,omitempty"`
	ArrowParentheses string `json:"arrowParentheses,omitempty" yaml:"arrowParentheses,omitempty"`
	BracketSpacing   *bool  `json:"bracketSpacing,omitempty" yaml:"bracketSpacing,omitempty"`
}

// JavaScript is the javascript section.
type JavaScript struct {
	Formatter JSFormatter    `json:"formatter,omitzero" yaml:"formatter,omitempty"`
	Linter    LanguageLinter `json:"linter,omitzero" yaml:"linter,omitempty"`
	// Globals names variables provided by the environment.
	Globals []string `json:"globals,omitempty" yaml:"globals,omitempty"`
}

// JSONParser configures the JSON dialect.
type JSONParser struct {
	AllowComments       *bool `json:"allowComments,omitempty" yaml:"allowComments,omitempty"`
	AllowTrailingCommas *bool `json:"allowTrailingCommas,omitempty" yaml:"allowTrailingCommas,omitempty"`
}

// JSONFormatter holds the JSON formatting options.
type JSONFormatter struct {
	FormatterSettings

	TrailingCommas string `json:"trailingCommas,omitempty" yaml:"trailingCommas,omitempty"`
}

// JSON is the json section.
type JSON struct {
	Parser    JSONParser     `json:"parser,omitzero" yaml:"parser,omitempty"`
	Formatter JSONFormatter  `json:"formatter,omitzero" yaml:"formatter,omitempty"`
	Linter    LanguageLinter `json:"linter,omitzero" yaml:"linter,omitempty"`
}

// CSSParser configures the CSS dialect.
type CSSParser struct {
	AllowWrongLineComments *bool `json:"allowWrongLineComments,omitempty" yaml:"allowWrongLineComments,omitempty"`
}

// CSSFormatter holds the CSS formatting options.
type CSSFormatter struct {
	FormatterSettings

	QuoteStyle string `json:"quoteStyle,omitempty" yaml:"quoteStyle,omitempty"`
}

// CSS is the css section.
type CSS struct {
	Parser    CSSParser      `json:"parser,omitzero" yaml:"parser,omitempty"`
	Formatter CSSFormatter   `json:"formatter,omitzero" yaml:"formatter,omitempty"`
	Linter    LanguageLinter `json:"linter,omitzero" yaml:"linter,omitempty"`
}

// GraphQL is the graphql section.
type GraphQL struct {
	Formatter FormatterSettings `json:"formatter,omitzero" yaml:"formatter,omitempty"`
	Linter    LanguageLinter    `json:"linter,omitzero" yaml:"linter,omitempty"`
}

// Override applies settings to the files matching Includes. Only the fields
// that are set take effect.
type Override struct {
	Includes   []string    `json:"includes,omitempty" yaml:"includes,omitempty"`
	Formatter  *Formatter  `json:"formatter,omitempty" yaml:"formatter,omitempty"`
	Linter     *Linter     `json:"linter,omitempty" yaml:"linter,omitempty"`
	JavaScript *JavaScript `json:"javascript,omitempty" yaml:"javascript,omitempty"`
	JSON       *JSON       `json:"json,omitempty" yaml:"json,omitempty"`
	CSS        *CSS        `json:"css,omitempty" yaml:"css,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	Schema     string     `json:"$schema,omitempty" yaml:"$schema,omitempty"`
	Root       *bool      `json:"root,omitempty" yaml:"root,omitempty"`
	Extends    []string   `json:"extends,omitempty" yaml:"extends,omitempty"`
	Files      Files      `json:"files,omitzero" yaml:"files,omitempty"`
	VCS        VCS        `json:"vcs,omitzero" yaml:"vcs,omitempty"`
	Formatter  Formatter  `json:"formatter,omitzero" yaml:"formatter,omitempty"`
	Linter     Linter     `json:"linter,omitzero" yaml:"linter,omitempty"`
	Assist     Assist     `json:"assist,omitzero" yaml:"assist,omitempty"`
	JavaScript JavaScript `json:"javascript,omitzero" yaml:"javascript,omitempty"`
	JSON       JSON       `json:"json,omitzero" yaml:"json,omitempty"`
	CSS        CSS        `json:"css,omitzero" yaml:"css,omitempty"`
	GraphQL    GraphQL    `json:"graphql,omitzero" yaml:"graphql,omitempty"`
	Overrides  []Override `json:"overrides,omitempty" yaml:"overrides,omitempty"`

	// CLI-level options (not persisted to config files).

	// Write applies safe fixes and formatting to disk.
	Write bool `json:"-" yaml:"-"`

	// Unsafe also applies unsafe fixes.
	Unsafe bool `json:"-" yaml:"-"`

	// Format specifies the reporter.
	Format OutputFormat `json:"-" yaml:"-"`

	// MaxDiagnostics caps the diagnostics printed for the whole run.
	MaxDiagnostics int `json:"-" yaml:"-"`

	// DiagnosticLevel hides diagnostics below this level.
	DiagnosticLevel RulePlainConfiguration `json:"-" yaml:"-"`

	// ErrorOnWarnings makes warnings fail the run.
	ErrorOnWarnings bool `json:"-" yaml:"-"`

	// Jobs specifies the number of parallel workers.
	Jobs int `json:"-" yaml:"-"`

	// Only restricts linting to these rules or groups.
	Only []string `json:"-" yaml:"-"`

	// Skip disables these rules or groups.
	Skip []string `json:"-" yaml:"-"`

	// Changed, Staged and Since restrict the run to files reported by the VCS.
	Changed bool   `json:"-" yaml:"-"`
	Staged  bool   `json:"-" yaml:"-"`
	Since   string `json:"-" yaml:"-"`
}

// NewConfig returns a Config with the CLI-level defaults.
func NewConfig() *Config {
	return &Config{
		Format:          FormatDefault,
		MaxDiagnostics:  DefaultMaxDiagnostics,
		DiagnosticLevel: RuleInfo,
	}
}

// BoolOr dereferences p, falling back to def when p is nil.
func BoolOr(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}

// Bool returns a pointer to v.
func Bool(v bool) *bool { return &v }

// MaxFileSize returns files.maxSize or its default.
func (c *Config) MaxFileSize() int64 {
	if c.Files.MaxSize > 0 {
		return c.Files.MaxSize
	}
	return DefaultMaxSize
}

// LinterEnabled reports whether linting is on.
func (c *Config) LinterEnabled() bool { return BoolOr(c.Linter.Enabled, true) }

// FormatterEnabled reports whether formatting is on.
func (c *Config) FormatterEnabled() bool { return BoolOr(c.Formatter.Enabled, true) }

// AssistEnabled reports whether assist actions run.
func (c *Config) AssistEnabled() bool { return BoolOr(c.Assist.Enabled, true) }

// VCSEnabled reports whether the VCS integration is on.
func (c *Config) VCSEnabled() bool { return BoolOr(c.VCS.Enabled, false) }

// UseIgnoreFile reports whether .gitignore files are honored.
func (c *Config) UseIgnoreFile() bool { return c.VCSEnabled() && BoolOr(c.VCS.UseIgnoreFile, false) }

// LineWidth returns the configured line width for a language formatter.
func (c *Config) LineWidth(lang FormatterSettings) int {
	switch {
	case lang.LineWidth > 0:
		return lang.LineWidth
	case c.Formatter.LineWidth > 0:
		return c.Formatter.LineWidth
	default:
		return DefaultLineWidth
	}
}

// IndentWidth returns the configured indent width for a language formatter.
func (c *Config) IndentWidth(lang FormatterSettings) int {
	switch {
	case lang.IndentWidth > 0:
		return lang.IndentWidth
	case c.Formatter.IndentWidth > 0:
		return c.Formatter.IndentWidth
	default:
		return DefaultIndentWidth
	}
}

// IndentStyle returns the configured indent style for a language formatter.
func (c *Config) IndentStyle(lang FormatterSettings) IndentStyle {
	switch {
	case lang.IndentStyle != "":
		return lang.IndentStyle
	case c.Formatter.IndentStyle != "":
		return c.Formatter.IndentStyle
	default:
		return IndentTab
	}
}

// LineEnding returns the configured line ending for a language formatter.
func (c *Config) LineEnding(lang FormatterSettings) string {
	switch {
	case lang.LineEnding != "":
		return lang.LineEnding
	case c.Formatter.LineEnding != "":
		return c.Formatter.LineEnding
	default:
		return "lf"
	}
}
