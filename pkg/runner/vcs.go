package runner

import (
	"context"
	"errors"
	"fmt"

	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/vcs"
)

var (
	// ErrVCSDisabled is returned when a VCS selection flag is used without
	// vcs.enabled.
	ErrVCSDisabled = errors.New("--changed, --staged and --since require vcs.enabled")
	// ErrConflictingSelection is returned for --changed together with --staged.
	ErrConflictingSelection = errors.New("--changed and --staged cannot be combined")
)

// selection restricts discovery to what the VCS reports.
type selection struct {
	ignored *vcs.IgnoreSet
	// only holds the selected files; nil selects everything.
	only map[string]bool
}

func (s *selection) allows(path string) bool {
	return s.only == nil || s.only[path]
}

func selectFromVCS(ctx context.Context, cfg *config.Config, workDir string) (*selection, error) {
	sel := &selection{}
	changed := cfg.Changed || cfg.Since != ""
	if changed && cfg.Staged {
		return nil, ErrConflictingSelection
	}
	if !changed && !cfg.Staged && !cfg.UseIgnoreFile() {
		return sel, nil
	}
	if !cfg.VCSEnabled() {
		return nil, ErrVCSDisabled
	}

	dir := workDir
	if cfg.VCS.Root != "" {
		dir = cfg.VCS.Root
	}
	git, err := vcs.Open(ctx, cfg.VCS.ClientKind, dir)
	if err != nil {
		return nil, fmt.Errorf("open repository: %w", err)
	}

	if cfg.UseIgnoreFile() {
		if sel.ignored, err = git.Ignored(ctx); err != nil {
			return nil, err
		}
	}

	var files []string
	switch {
	case changed:
		base := cfg.Since
		if base == "" {
			base = cfg.VCS.DefaultBranch
		}
		files, err = git.Changed(ctx, base)
	case cfg.Staged:
		files, err = git.Staged(ctx)
	default:
		return sel, nil
	}
	if err != nil {
		return nil, err
	}
	sel.only = make(map[string]bool, len(files))
	for _, f := range files {
		sel.only[f] = true
	}
	return sel, nil
}
