package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/lang"
)

// alwaysSkippedDirs are never descended into.
//
//nolint:gochecknoglobals // Read-only lookup table.
var alwaysSkippedDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".svn":         true,
	"node_modules": true,
}

// Discover finds the files selected by opts. It returns a deterministically
// sorted list of absolute file paths.
//
// Walked directories contribute files with a supported language that match
// files.includes and are not ignored by the VCS. A file named explicitly is
// kept even without a supported language unless files.ignoreUnknown is set,
// so that the run can report it.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}
	cfg := opts.config()

	sel, err := selectFromVCS(ctx, cfg, workDir)
	if err != nil {
		return nil, err
	}

	d := &discoverer{ctx: ctx, workDir: workDir, cfg: cfg, opts: opts, sel: sel, seen: map[string]bool{}}
	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = resolveSymlinks(filepath.Clean(absPath))

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}
		if info.IsDir() {
			if err := d.walk(absPath); err != nil {
				return nil, err
			}
			continue
		}
		if d.selects(absPath, true) {
			d.add(absPath)
		}
	}

	slices.Sort(d.files)
	return d.files, nil
}

type discoverer struct {
	ctx     context.Context //nolint:containedctx // Scoped to one Discover call
	workDir string
	cfg     *config.Config
	opts    Options
	sel     *selection
	seen    map[string]bool
	files   []string
}

func (d *discoverer) add(path string) {
	if !d.seen[path] {
		d.seen[path] = true
		d.files = append(d.files, path)
	}
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return resolveSymlinks(wd), nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return resolveSymlinks(absPath), nil
}

// resolveSymlinks returns path with symlinks evaluated, matching the paths
// git reports, or path itself when it cannot be resolved.
func resolveSymlinks(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	return path
}

// relPath returns path relative to the working directory with forward
// slashes, the form includes and overrides are matched against.
func relPath(workDir, path string) string {
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func (d *discoverer) walk(root string) error {
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := d.ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if os.IsPermission(walkErr) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if path == root {
				return nil
			}
			if d.skipDir(path, entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			realPath, err := filepath.EvalSymlinks(path)
			if err != nil {
				return nil //nolint:nilerr // Broken symlinks are skipped
			}
			info, err := os.Stat(realPath)
			if err != nil {
				return nil //nolint:nilerr // Inaccessible targets are skipped
			}
			if info.IsDir() {
				if !d.opts.FollowSymlinks || d.skipDir(path, entry.Name()) {
					return nil
				}
				// Walk the target: WalkDir does not follow a symlinked root.
				return d.walk(realPath)
			}
		}

		if strings.HasPrefix(entry.Name(), ".") && !isDotConfig(entry.Name()) {
			return nil
		}
		if d.selects(path, false) {
			d.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

func (d *discoverer) skipDir(path, name string) bool {
	if alwaysSkippedDirs[name] || strings.HasPrefix(name, ".") {
		return true
	}
	if d.sel.ignored.Contains(path) {
		return true
	}
	return excludedDir(d.cfg.Files.Includes, relPath(d.workDir, path))
}

// selects reports whether the file at path is part of the run.
func (d *discoverer) selects(path string, explicit bool) bool {
	if _, ok := lang.FromPath(path); !ok {
		if !explicit || config.BoolOr(d.cfg.Files.IgnoreUnknown, false) {
			return false
		}
	}
	if !config.MatchIncludes(d.cfg.Files.Includes, relPath(d.workDir, path)) {
		return false
	}
	if d.sel.ignored.Contains(path) {
		return false
	}
	return d.sel.allows(path)
}

// excludedDir reports whether a negated include pattern matches dir with no
// positive pattern after it that could select something below dir again.
func excludedDir(patterns []string, dir string) bool {
	excluded := false
	for _, p := range patterns {
		if !strings.HasPrefix(p, "!") {
			excluded = false
			continue
		}
		if !config.MatchIncludes([]string{p}, dir) {
			excluded = true
		}
	}
	return excluded
}

// isDotConfig reports whether a hidden file is a configuration file the
// tools read, such as .eslintrc.json or .babelrc.
func isDotConfig(name string) bool {
	l, ok := lang.FromPath(name)
	return ok && l.IsJSON()
}
