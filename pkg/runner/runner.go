package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gobiome/internal/logging"
	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/fsutil"
	"github.com/yaklabco/gobiome/pkg/workspace"
)

// ErrProcessPanic wraps a panic raised while processing a single file.
var ErrProcessPanic = errors.New("internal error while processing file")

// ProcessFunc runs the per-file pipeline. workspace.Process is the default.
type ProcessFunc func(ctx context.Context, path, content string, cfg *config.Config, opts workspace.Options) (*workspace.FileResult, error)

// Runner processes the files of a run concurrently.
type Runner struct {
	// Process handles one file.
	Process ProcessFunc
}

// New creates a Runner that uses workspace.Process.
func New() *Runner {
	return &Runner{Process: workspace.Process}
}

// Run discovers files under opts.Paths and processes them concurrently.
// Outcomes are ordered by path regardless of completion order. Failures of
// single files are recorded in their outcome; only discovery errors and
// cancellation are returned.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}
	return r.RunFiles(ctx, files, opts)
}

// RunFiles processes files, which must be absolute paths, without discovery.
func (r *Runner) RunFiles(ctx context.Context, files []string, opts Options) (*Result, error) {
	result := &Result{
		Files: make([]FileOutcome, 0, len(files)),
		Stats: newStats(),
	}
	result.Stats.FilesDiscovered = len(files)
	if len(files) == 0 {
		return result, nil
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logger := logging.FromContext(ctx)
	logger.Debug("processing files", logging.FieldFiles, len(files), logging.FieldJobs, jobs,
		logging.FieldMode, opts.Mode.String())

	outcomes := make([]FileOutcome, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, path := range files {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			outcomes[i] = r.processFile(gctx, workDir, path, opts)
			// Per-file failures never stop the run.
			return nil
		})
	}
	_ = g.Wait()

	for i, outcome := range outcomes {
		if outcome.Path == "" {
			// Never scheduled because the run was cancelled.
			outcome = FileOutcome{Path: files[i], Result: &workspace.FileResult{Path: relPath(workDir, files[i]), Cancelled: true}}
		}
		result.accumulate(outcome)
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) processFile(ctx context.Context, workDir, path string, opts Options) FileOutcome {
	outcome := FileOutcome{Path: path}
	cfg := opts.config()
	display := relPath(workDir, path)
	ctx = logging.WithFields(ctx, logging.FieldPath, display)
	logger := logging.FromContext(ctx)

	content, info, err := fsutil.ReadFile(ctx, path, cfg.MaxFileSize())
	switch {
	case errors.Is(err, fsutil.ErrTooLarge):
		outcome.Result = workspace.TooLarge(display, info.Size, cfg.MaxFileSize())
		return outcome
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		outcome.Result = &workspace.FileResult{Path: display, Cancelled: true}
		return outcome
	case err != nil:
		outcome.Error = err
		return outcome
	}

	process := r.Process
	if process == nil {
		process = workspace.Process
	}
	res, err := guard(ctx, process, display, string(content), cfg, opts.workspaceOptions())
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.Result = res
	logger.Debug("processed file", logging.FieldDiagnosticsTotal, len(res.Diagnostics), logging.FieldPass, res.FixPasses)

	if !res.Changed || res.Cancelled || !(cfg.Write || cfg.Unsafe) {
		return outcome
	}

	modified, err := fsutil.CheckModified(ctx, info)
	if err != nil {
		outcome.Error = fmt.Errorf("check modified: %w", err)
		return outcome
	}
	if modified {
		res.Skipped = true
		res.SkipReason = "file modified during processing"
		logger.Warn("file changed on disk; not writing")
		return outcome
	}

	if outcome.BackupCreated, err = fsutil.CreateBackup(ctx, path, opts.Backup); err != nil {
		outcome.Error = fmt.Errorf("create backup: %w", err)
		return outcome
	}
	if err := fsutil.WriteAtomic(ctx, path, []byte(res.Output), info.Mode); err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", display, err)
		return outcome
	}
	outcome.Written = true
	logger.Debug("wrote file", logging.FieldActions, res.FixesApplied, logging.FieldSize, len(res.Output))
	return outcome
}

// guard runs process and turns a panic into an error so one file cannot take
// down the rest of the run.
func guard(ctx context.Context, process ProcessFunc, path, content string, cfg *config.Config,
	opts workspace.Options,
) (res *workspace.FileResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			logging.FromContext(ctx).Error("panic while processing file", logging.FieldError, r)
			res, err = nil, fmt.Errorf("%w: %v", ErrProcessPanic, r)
		}
	}()
	return process(ctx, path, content, cfg, opts)
}
