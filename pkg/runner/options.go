// Package runner processes every file selected for a check, lint or format
// run and writes the results back when asked to.
package runner

import (
	"github.com/yaklabco/gobiome/pkg/analyzer"
	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/fsutil"
	"github.com/yaklabco/gobiome/pkg/workspace"
)

// Options controls a run.
type Options struct {
	// Paths are the user-specified paths (files or directories) to process.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths and
	// to match files.includes. If empty, the process working directory is used.
	WorkingDir string

	// Mode selects check, lint or format.
	Mode workspace.Mode

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of files processed at once.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// Backup configures backups of rewritten files.
	Backup fsutil.BackupConfig

	// Registry holds the rules. Nil means analyzer.DefaultRegistry.
	Registry *analyzer.Registry

	// Config is the resolved configuration for this run. Write, Unsafe and
	// the VCS selection flags are read from it.
	Config *config.Config
}

// effectivePaths returns the paths to process, defaulting to "." if empty.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) config() *config.Config {
	if o.Config == nil {
		return config.NewConfig()
	}
	return o.Config
}

func (o Options) workspaceOptions() workspace.Options {
	cfg := o.config()
	return workspace.Options{
		Mode:     o.Mode,
		Write:    cfg.Write,
		Unsafe:   cfg.Unsafe,
		Registry: o.Registry,
	}
}
