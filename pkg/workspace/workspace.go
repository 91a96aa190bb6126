// Package workspace runs the per-file pipeline: parse, analyze, apply fixes
// until the file is stable, organize imports and format.
//
// The pipeline never touches the file system. It receives the content of a
// file and returns the diagnostics together with the content it would
// write; pkg/runner decides what to do with it.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"

	"github.com/yaklabco/gobiome/internal/logging"
	"github.com/yaklabco/gobiome/pkg/analyzer"
	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/fix"
	"github.com/yaklabco/gobiome/pkg/format"
	"github.com/yaklabco/gobiome/pkg/lang"
	"github.com/yaklabco/gobiome/pkg/mutation"
	"github.com/yaklabco/gobiome/pkg/parser"
	"github.com/yaklabco/gobiome/pkg/syntax"
	"github.com/yaklabco/gobiome/pkg/text"

	// Formatters register themselves.
	_ "github.com/yaklabco/gobiome/pkg/format/cssformat"
	_ "github.com/yaklabco/gobiome/pkg/format/jsformat"
	_ "github.com/yaklabco/gobiome/pkg/format/jsonformat"
)

// DefaultMaxFixPasses caps the analyze and fix iterations on one file.
const DefaultMaxFixPasses = 16

// Diagnostic categories emitted by the pipeline.
const (
	CategoryTooLarge     = "files/tooLarge"
	CategoryFormat       = "format"
	CategoryFixDiverged  = "internalError/fix"
	CategoryFixSyntax    = "internalError/fixSyntax"
	CategoryFixConflict  = "internalError/fixConflict"
	CategoryFormatFailed = "internalError/format"
)

// ErrUnknownLanguage is returned for paths without a supported language.
var ErrUnknownLanguage = errors.New("no language support for file")

// Mode selects the phases of the pipeline.
type Mode uint8

const (
	// ModeCheck lints, runs assists and checks formatting.
	ModeCheck Mode = iota
	// ModeLint lints only.
	ModeLint
	// ModeFormat formats only.
	ModeFormat
)

func (m Mode) String() string {
	switch m {
	case ModeLint:
		return "lint"
	case ModeFormat:
		return "format"
	default:
		return "check"
	}
}

func (m Mode) lints() bool   { return m != ModeFormat }
func (m Mode) formats() bool { return m != ModeLint }

// Options configures Process.
type Options struct {
	Mode Mode

	// Write applies safe fixes, assists and formatting to the output.
	Write bool

	// Unsafe also applies unsafe fixes. It implies Write.
	Unsafe bool

	// Registry holds the rules. Nil means analyzer.DefaultRegistry.
	Registry *analyzer.Registry

	// MaxFixPasses caps the fix loop. Zero means DefaultMaxFixPasses.
	MaxFixPasses int
}

func (o Options) fixLimit() (analyzer.Applicability, bool) {
	switch {
	case o.Unsafe:
		return analyzer.FixUnsafe, true
	case o.Write:
		return analyzer.FixSafe, true
	default:
		return analyzer.FixNone, false
	}
}

// FileResult is the outcome of processing one file.
type FileResult struct {
	Path     string
	Language lang.Language

	// Diagnostics left after fixing, sorted by range.
	Diagnostics []diagnostic.Diagnostic

	// Original is the input content and Output the content to write.
	Original string
	Output   string

	// Changed is set when Output differs from Original.
	Changed bool

	// Cancelled is set when the context was cancelled. A cancelled file
	// carries no diagnostics.
	Cancelled bool

	// Skipped is set when the file was not processed, with the reason.
	Skipped    bool
	SkipReason string

	// FixPasses counts the passes that applied at least one action and
	// FixesApplied the actions applied over all passes.
	FixPasses    int
	FixesApplied int

	// Formatted is set when formatting changed the content, or would have
	// when not writing.
	Formatted bool
}

// Diff returns the unified diff between Original and Output, or nil.
func (r *FileResult) Diff() *fix.Diff {
	return fix.GenerateDiff(r.Path, r.Original, r.Output)
}

// Process runs the pipeline on content. Only unexpected failures are
// returned as errors; problems with the file itself are diagnostics.
func Process(ctx context.Context, path, content string, cfg *config.Config, opts Options) (*FileResult, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	cfg = cfg.ForPath(path)
	res := &FileResult{Path: path, Original: content, Output: content}
	if ctx.Err() != nil {
		return cancelled(res), nil
	}

	l, ok := lang.Detect(path, []byte(content))
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownLanguage, path)
	}
	res.Language = l
	logger := logging.FromContext(ctx).With(logging.FieldLanguage, l.String())

	if size := int64(len(content)); size > cfg.MaxFileSize() {
		tooLarge := TooLarge(path, size, cfg.MaxFileSize())
		tooLarge.Language = l
		tooLarge.Original, tooLarge.Output = content, content
		return tooLarge, nil
	}

	p := &pipeline{
		ctx:    ctx,
		path:   path,
		lang:   l,
		cfg:    cfg,
		opts:   opts,
		res:    res,
		logger: logger,
	}
	if err := p.run(content); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return cancelled(res), nil
		}
		return nil, err
	}
	res.Changed = res.Output != res.Original
	slices.SortStableFunc(res.Diagnostics, diagnostic.Compare)
	return res, nil
}

// TooLarge returns the result of a file that was not processed because its
// size exceeds limit. The runner uses it for files it does not read.
func TooLarge(path string, size, limit int64) *FileResult {
	d := diagnostic.New(CategoryTooLarge, diagnostic.SeverityWarning, text.Range{},
		fmt.Sprintf("Size of %s is %s which exceeds configured maximum of %s for this project.",
			path, humanize.IBytes(uint64(size)), humanize.IBytes(uint64(limit)))).
		WithAdvice("Set files.maxSize or pass --files-max-size to process larger files.").
		WithPath(path)
	return &FileResult{
		Path:        path,
		Diagnostics: []diagnostic.Diagnostic{d},
		Skipped:     true,
		SkipReason:  "file too large",
	}
}

func cancelled(res *FileResult) *FileResult {
	res.Cancelled = true
	res.Diagnostics = nil
	res.Output = res.Original
	return res
}

// pipeline is the state of one Process call.
type pipeline struct {
	ctx    context.Context //nolint:containedctx // Scoped to one Process call
	path   string
	lang   lang.Language
	cfg    *config.Config
	opts   Options
	res    *FileResult
	logger *log.Logger
}

func (p *pipeline) run(src string) error {
	parse, err := lang.Parse(p.lang, p.path, src)
	if err != nil {
		return fmt.Errorf("parse %s: %w", p.path, err)
	}
	if err := p.ctx.Err(); err != nil {
		return err
	}

	p.res.Diagnostics = p.resolve(parse.Diagnostics, src)
	if parse.HasErrors() {
		// Fixes and formatting need a well-formed tree.
		return nil
	}

	if p.opts.Mode.lints() && p.analyzes() {
		src, parse, err = p.fixLoop(src, parse)
		if err != nil {
			return err
		}
	}

	if p.opts.Mode.formats() && format.Enabled(p.cfg, p.lang) && format.Supports(p.lang) {
		if err := p.ctx.Err(); err != nil {
			return err
		}
		src = p.format(src, parse)
	}

	p.res.Output = src
	return nil
}

// analyzes reports whether any analyzer phase applies to the file.
func (p *pipeline) analyzes() bool {
	return p.cfg.LinterEnabled() || (p.opts.Mode == ModeCheck && p.cfg.AssistEnabled())
}

func (p *pipeline) filter() func(analyzer.ResolvedRule) bool {
	mode := p.opts.Mode
	return func(rr analyzer.ResolvedRule) bool {
		if rr.Meta.Kind == analyzer.KindAssist {
			return mode == ModeCheck
		}
		return true
	}
}

// fixLoop analyzes src and, when writing, applies the fixable actions and
// analyzes again until no action is left. The diagnostics of the last pass
// are kept.
func (p *pipeline) fixLoop(src string, parse *parser.Parse) (string, *parser.Parse, error) {
	limit, fixing := p.opts.fixLimit()
	maxPasses := p.opts.MaxFixPasses
	if maxPasses <= 0 {
		maxPasses = DefaultMaxFixPasses
	}
	parseDiags := p.res.Diagnostics
	var deferred []analyzer.RuleAction

	for pass := 0; ; pass++ {
		file := analyzer.NewFile(p.path, p.lang, src, parse)
		result, err := analyzer.Analyze(p.ctx, file, analyzer.Options{
			Config:   p.cfg,
			Registry: p.opts.Registry,
			Filter:   p.filter(),
		})
		if err != nil {
			if errors.Is(err, analyzer.ErrCancelled) {
				return src, parse, p.ctx.Err()
			}
			return src, parse, fmt.Errorf("analyze %s: %w", p.path, err)
		}
		p.res.Diagnostics = append(slices.Clone(parseDiags), result.Diagnostics...)

		if !fixing {
			return src, parse, nil
		}
		actions := result.FixableActions(limit)
		if len(actions) == 0 {
			return src, parse, nil
		}
		if pass >= maxPasses {
			p.res.Diagnostics = append(p.res.Diagnostics, diagnostic.New(CategoryFixDiverged,
				diagnostic.SeverityWarning, text.Range{},
				fmt.Sprintf("Fixes applied to %s did not converge after %d passes.", p.path, maxPasses)).
				WithAdvice("Two rules are probably undoing each other's changes. Run without --write to inspect them.").
				WithPath(p.path))
			p.reportConflicts(pendingDeferred(deferred, actions))
			return src, parse, nil
		}
		if err := p.ctx.Err(); err != nil {
			return src, parse, err
		}

		next, applied, skipped, err := applyActions(file.Root(), actions)
		if err != nil {
			return src, parse, fmt.Errorf("apply fixes to %s: %w", p.path, err)
		}
		deferred = skipped
		if applied == 0 {
			p.reportConflicts(deferred)
			return src, parse, nil
		}
		nextParse, err := lang.Parse(p.lang, p.path, next)
		if err != nil {
			return src, parse, fmt.Errorf("parse %s: %w", p.path, err)
		}
		if nextParse.HasErrors() {
			p.res.Diagnostics = append(p.res.Diagnostics, diagnostic.New(CategoryFixSyntax,
				diagnostic.SeverityError, text.Range{},
				"A code fix produced invalid syntax and was not applied.").
				WithAdvice(nextParse.Diagnostics[0].Message).
				WithPath(p.path))
			return src, parse, nil
		}

		p.logger.Debug("applied fixes", logging.FieldPass, pass+1, logging.FieldActions, applied)
		p.res.FixPasses++
		p.res.FixesApplied += applied
		src, parse = next, nextParse
	}
}

// applyActions commits the actions that do not conflict with an action
// accepted before them. Skipped actions are returned; the next pass picks
// them up again.
func applyActions(root *syntax.Node, actions []analyzer.RuleAction) (string, int, []analyzer.RuleAction, error) {
	combined := mutation.NewBatch(root)
	applied := 0
	var skipped []analyzer.RuleAction
	for _, a := range actions {
		if a.Mutation.IsEmpty() {
			continue
		}
		trial := mutation.NewBatch(root)
		trial.Merge(combined)
		trial.Merge(a.Mutation)
		if len(trial.Conflicts()) > 0 {
			skipped = append(skipped, a)
			continue
		}
		combined = trial
		applied++
	}
	if applied == 0 {
		return root.Text(), 0, skipped, nil
	}
	green, err := combined.Commit()
	if err != nil {
		return "", 0, nil, fmt.Errorf("commit: %w", err)
	}
	return green.Text(), applied, skipped, nil
}

// pendingDeferred returns the actions deferred by the last pass whose
// finding is still reported.
func pendingDeferred(deferred, pending []analyzer.RuleAction) []analyzer.RuleAction {
	var out []analyzer.RuleAction
	for _, d := range deferred {
		if slices.ContainsFunc(pending, func(a analyzer.RuleAction) bool { return a.Category == d.Category }) {
			out = append(out, d)
		}
	}
	return out
}

// reportConflicts adds an advisory for each fix that overlapped another
// fix and was left unapplied.
func (p *pipeline) reportConflicts(actions []analyzer.RuleAction) {
	for _, a := range actions {
		p.logger.Debug("fix not applied", logging.FieldRule, a.Category)
		p.res.Diagnostics = append(p.res.Diagnostics, diagnostic.New(CategoryFixConflict,
			diagnostic.SeverityInformation, a.Range,
			fmt.Sprintf("The fix for %s could not be applied (conflict).", a.Category)).
			WithAdvice("It overlaps the change of another fix. Apply the remaining fixes in a second run.").
			WithPath(p.path))
	}
}

// format formats src. Outside write mode a difference is reported as a
// diagnostic carrying the diff, and src is returned unchanged.
func (p *pipeline) format(src string, parse *parser.Parse) string {
	out, err := format.FormatParse(p.lang, src, parse, format.FromConfig(p.cfg, p.lang))
	switch {
	case errors.Is(err, format.ErrSyntax), errors.Is(err, format.ErrUnsupported):
		return src
	case err != nil:
		p.res.Diagnostics = append(p.res.Diagnostics, diagnostic.New(CategoryFormatFailed,
			diagnostic.SeverityError, text.Range{}, "The formatter could not format this file: "+err.Error()).
			WithTag(diagnostic.TagInternal).
			WithPath(p.path))
		return src
	case out == src:
		return src
	}

	p.res.Formatted = true
	if p.opts.Write || p.opts.Unsafe {
		return out
	}
	d := diagnostic.New(CategoryFormat, diagnostic.SeverityError, text.Range{},
		"File content differs from formatting output").WithPath(p.path).WithTag(diagnostic.TagFixable)
	if diff := fix.GenerateDiff(p.path, src, out); diff != nil {
		d.Advices = append(d.Advices, diagnostic.Advice{
			Kind:    diagnostic.AdviceDiff,
			Message: "Formatter would have printed the following content:",
			Diff:    diff.String(),
		})
	}
	p.res.Diagnostics = append(p.res.Diagnostics, d)
	return src
}

func (p *pipeline) resolve(diags []diagnostic.Diagnostic, src string) []diagnostic.Diagnostic {
	if len(diags) == 0 {
		return nil
	}
	idx := text.NewLineIndex(src)
	out := make([]diagnostic.Diagnostic, len(diags))
	for i, d := range diags {
		d.Location.Path = p.path
		d.Resolve(idx)
		out[i] = d
	}
	return out
}
