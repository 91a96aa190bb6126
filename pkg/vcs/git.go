// Package vcs queries git for the files a run should be restricted to and for
// the paths excluded by ignore files.
package vcs

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// ClientGit is the only supported vcs.clientKind.
const ClientGit = "git"

var (
	// ErrNotRepository is returned when the directory is not inside a git
	// work tree.
	ErrNotRepository = errors.New("not a git repository")
	// ErrNoBase is returned by Changed without a base reference.
	ErrNoBase = errors.New("no base reference: set vcs.defaultBranch or pass --since")
	// ErrUnsupportedClient is returned for a clientKind other than git.
	ErrUnsupportedClient = errors.New("unsupported VCS client")
)

// Git runs git in a work tree. It is safe for concurrent use.
type Git struct {
	root string
}

// Open returns a client for the work tree containing dir.
func Open(ctx context.Context, kind, dir string) (*Git, error) {
	if kind != "" && kind != ClientGit {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedClient, kind)
	}
	out, err := run(ctx, dir, "rev-parse", "--show-toplevel")
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrNotRepository, dir, err)
	}
	return &Git{root: filepath.Clean(strings.TrimSpace(string(out)))}, nil
}

// Root returns the absolute path of the work tree.
func (g *Git) Root() string { return g.root }

// Changed returns the files that differ from base, including uncommitted
// changes. Deleted files are omitted. Paths are absolute.
func (g *Git) Changed(ctx context.Context, base string) ([]string, error) {
	if base == "" {
		return nil, ErrNoBase
	}
	if _, err := run(ctx, g.root, "rev-parse", "--verify", "--quiet", base+"^{commit}"); err != nil {
		return nil, fmt.Errorf("base %q not found: %w", base, err)
	}
	return g.names(ctx, "diff", "--name-only", "--diff-filter=d", "--merge-base", base)
}

// Staged returns the files in the index that differ from HEAD.
func (g *Git) Staged(ctx context.Context) ([]string, error) {
	return g.names(ctx, "diff", "--name-only", "--diff-filter=d", "--cached")
}

// Ignored returns the untracked paths matched by .gitignore, .git/info/exclude
// and the global excludes file. Directories are reported once with a
// trailing slash and cover everything below them.
func (g *Git) Ignored(ctx context.Context) (*IgnoreSet, error) {
	out, err := run(ctx, g.root, "ls-files", "-z", "--others", "--ignored", "--exclude-standard", "--directory")
	if err != nil {
		return nil, fmt.Errorf("list ignored files: %w", err)
	}
	set := &IgnoreSet{root: g.root, files: map[string]bool{}}
	for entry := range bytes.SplitSeq(out, []byte{0}) {
		if len(entry) == 0 {
			continue
		}
		name := string(entry)
		if dir, ok := strings.CutSuffix(name, "/"); ok {
			set.dirs = append(set.dirs, dir)
			continue
		}
		set.files[name] = true
	}
	return set, nil
}

func (g *Git) names(ctx context.Context, args ...string) ([]string, error) {
	out, err := run(ctx, g.root, args...)
	if err != nil {
		return nil, err
	}
	var files []string
	scanner := bufio.NewScanner(bytes.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		files = append(files, filepath.Join(g.root, filepath.FromSlash(line)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("parse git output: %w", err)
	}
	return files, nil
}

// IgnoreSet answers whether a path is ignored by git.
type IgnoreSet struct {
	root  string
	files map[string]bool
	dirs  []string
}

// Contains reports whether the absolute path p is ignored.
func (s *IgnoreSet) Contains(p string) bool {
	if s == nil {
		return false
	}
	rel, err := filepath.Rel(s.root, p)
	if err != nil || strings.HasPrefix(rel, "..") {
		return false
	}
	rel = filepath.ToSlash(rel)
	if s.files[rel] {
		return true
	}
	for _, dir := range s.dirs {
		if rel == dir || strings.HasPrefix(rel, dir+"/") {
			return true
		}
	}
	return false
}

// Len returns the number of ignored entries.
func (s *IgnoreSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.files) + len(s.dirs)
}

func run(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return nil, fmt.Errorf("git %s: %w: %s", args[0], err, msg)
		}
		return nil, fmt.Errorf("git %s: %w", args[0], err)
	}
	return stdout.Bytes(), nil
}
