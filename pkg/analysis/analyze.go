package analysis

import (
	"cmp"
	"path/filepath"
	"slices"

	"github.com/yaklabco/gobiome/pkg/diagnostic"
	"github.com/yaklabco/gobiome/pkg/runner"
)

// makeRelativePath converts an absolute path to a relative path from workDir.
// If workDir is empty or conversion fails, returns the original path.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	relPath, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return filepath.ToSlash(relPath)
}

// analysisContext holds temporary state during analysis.
type analysisContext struct {
	categoryMap   map[string]*CategoryAnalysis
	fileMap       map[string]*FileAnalysis
	categoryFiles map[string]map[string]bool
	fileRules     map[string]map[string]bool
}

func newAnalysisContext() *analysisContext {
	return &analysisContext{
		categoryMap:   make(map[string]*CategoryAnalysis),
		fileMap:       make(map[string]*FileAnalysis),
		categoryFiles: make(map[string]map[string]bool),
		fileRules:     make(map[string]map[string]bool),
	}
}

// counts points at the error, warning and info counters of one aggregate.
type counts struct {
	errors, warnings, infos *int
}

func (c counts) add(sev diagnostic.Severity) {
	switch sev {
	case diagnostic.SeverityFatal, diagnostic.SeverityError:
		*c.errors++
	case diagnostic.SeverityWarning:
		*c.warnings++
	default:
		*c.infos++
	}
}

func (ctx *analysisContext) file(path string) *FileAnalysis {
	if _, ok := ctx.fileMap[path]; !ok {
		ctx.fileMap[path] = &FileAnalysis{Path: path}
		ctx.fileRules[path] = make(map[string]bool)
	}
	return ctx.fileMap[path]
}

func (ctx *analysisContext) category(name string) *CategoryAnalysis {
	if _, ok := ctx.categoryMap[name]; !ok {
		ctx.categoryMap[name] = &CategoryAnalysis{Category: name}
		ctx.categoryFiles[name] = make(map[string]bool)
	}
	return ctx.categoryMap[name]
}

// visible reports whether d passes the level and tag filters.
func visible(d diagnostic.Diagnostic, opts Options) bool {
	if d.HasTag(diagnostic.TagVerbose) && !opts.Verbose {
		return false
	}
	return opts.Level == "" || d.Severity.AtLeast(opts.Level)
}

func (ctx *analysisContext) buildByCategory(opts Options) []CategoryAnalysis {
	result := make([]CategoryAnalysis, 0, len(ctx.categoryMap))
	for name, ca := range ctx.categoryMap {
		for f := range ctx.categoryFiles[name] {
			ca.Files = append(ca.Files, f)
		}
		slices.Sort(ca.Files)
		result = append(result, *ca)
	}
	sortAggregates(result, opts, func(c CategoryAnalysis) aggregate {
		return aggregate{c.Category, c.Issues, c.Errors, c.Warnings}
	})
	return result
}

func (ctx *analysisContext) buildByFile(opts Options) []FileAnalysis {
	result := make([]FileAnalysis, 0, len(ctx.fileMap))
	for path, fa := range ctx.fileMap {
		for r := range ctx.fileRules[path] {
			fa.Categories = append(fa.Categories, r)
		}
		slices.Sort(fa.Categories)
		result = append(result, *fa)
	}
	sortAggregates(result, opts, func(f FileAnalysis) aggregate {
		return aggregate{f.Path, f.Issues, f.Errors, f.Warnings}
	})
	return result
}

// Analyze transforms a runner.Result into a Report.
// It performs a single pass through diagnostics to compute all views.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{Sources: make(map[string]string)}
	if result == nil {
		return report
	}
	report.Stats = result.Stats

	ctx := newAnalysisContext()
	var shown []diagnostic.Diagnostic

	for _, file := range result.Files {
		report.Totals.Files++
		if file.Error != nil {
			report.Failures = append(report.Failures, Failure{
				Path:  makeRelativePath(file.Path, opts.WorkingDir),
				Error: file.Error,
			})
			continue
		}
		res := file.Result
		if res == nil {
			continue
		}
		if res.Changed {
			report.Changes = append(report.Changes, Change{
				Path:     res.Path,
				Original: res.Original,
				Output:   res.Output,
				Written:  file.Written,
			})
		}

		var fileHasIssues bool
		for _, diag := range res.Diagnostics {
			if !visible(diag, opts) {
				report.Filtered++
				continue
			}
			fileHasIssues = true
			shown = append(shown, diag)
			fixable := diag.HasTag(diagnostic.TagFixable)

			report.Totals.Issues++
			counts{&report.Totals.Errors, &report.Totals.Warnings, &report.Totals.Infos}.add(diag.Severity)
			if fixable {
				report.Totals.Fixable++
				if diag.HasTag(diagnostic.TagUnsafeFix) {
					report.Totals.UnsafeFixable++
				}
			}

			path := diag.Location.Path
			fa := ctx.file(path)
			fa.Issues++
			counts{&fa.Errors, &fa.Warnings, &fa.Infos}.add(diag.Severity)
			ctx.fileRules[path][diag.Category] = true

			ca := ctx.category(diag.Category)
			ca.Issues++
			counts{&ca.Errors, &ca.Warnings, &ca.Infos}.add(diag.Severity)
			if fixable {
				ca.Fixable = true
			}
			ctx.categoryFiles[diag.Category][path] = true
		}
		if fileHasIssues {
			report.Totals.FilesWithIssues++
			if !res.Changed {
				report.Sources[res.Path] = res.Original
			}
		}
	}

	slices.SortStableFunc(shown, diagnostic.Compare)
	if opts.MaxDiagnostics > 0 && len(shown) > opts.MaxDiagnostics {
		report.Omitted = len(shown) - opts.MaxDiagnostics
		shown = shown[:opts.MaxDiagnostics]
		report.Limit = opts.MaxDiagnostics
	}
	report.Diagnostics = shown

	report.ByCategory = ctx.buildByCategory(opts)
	report.ByFile = ctx.buildByFile(opts)
	return report
}

// aggregate is the sortable projection of a FileAnalysis or CategoryAnalysis.
type aggregate struct {
	key                      string
	issues, errors, warnings int
}

func sortAggregates[T any](items []T, opts Options, project func(T) aggregate) {
	slices.SortFunc(items, func(left, right T) int {
		l, r := project(left), project(right)
		var result int
		switch opts.SortBy {
		case SortByAlpha:
			// Alphabetical sorting is always ascending (A-Z).
			return cmp.Compare(l.key, r.key)
		case SortBySeverity:
			result = cmp.Or(
				cmp.Compare(r.errors, l.errors),
				cmp.Compare(r.warnings, l.warnings),
				cmp.Compare(r.issues, l.issues),
			)
		default: // SortByCount
			result = cmp.Compare(l.issues, r.issues)
			if opts.SortDesc {
				result = -result
			}
		}
		return cmp.Or(result, cmp.Compare(l.key, r.key))
	})
}
