package runner_test

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/config"
	"github.com/yaklabco/gobiome/pkg/runner"
)

// tree creates files under a fresh directory and returns the directory with
// symlinks resolved, the form Discover reports.
func tree(t *testing.T, files map[string]string) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)
	for name, content := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return dir
}

func rel(t *testing.T, dir string, files []string) []string {
	t.Helper()
	out := make([]string, 0, len(files))
	for _, f := range files {
		r, err := filepath.Rel(dir, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(r))
	}
	return out
}

func TestDiscover(t *testing.T) {
	t.Parallel()

	files := map[string]string{
		"index.js":                  "",
		"src/app.tsx":               "",
		"src/styles.css":            "",
		"src/schema.graphql":        "",
		"data.json":                 "",
		".eslintrc.json":            "",
		".hidden.js":                "",
		".cache/x.js":               "",
		"node_modules/pkg/index.js": "",
		"README.md":                 "",
		"notes.txt":                 "",
		"dist/bundle.js":            "",
		"dist/keep/keep.js":         "",
	}

	tests := []struct {
		name     string
		includes []string
		paths    []string
		want     []string
	}{
		{
			name: "everything supported",
			want: []string{
				".eslintrc.json", "data.json", "dist/bundle.js", "dist/keep/keep.js",
				"index.js", "src/app.tsx", "src/schema.graphql", "src/styles.css",
			},
		},
		{
			name:     "negated includes",
			includes: []string{"**", "!dist"},
			want: []string{
				".eslintrc.json", "data.json", "index.js", "src/app.tsx", "src/schema.graphql", "src/styles.css",
			},
		},
		{
			name:     "re-included below an excluded directory",
			includes: []string{"**", "!dist/**", "dist/keep/**"},
			want: []string{
				".eslintrc.json", "data.json", "dist/keep/keep.js",
				"index.js", "src/app.tsx", "src/schema.graphql", "src/styles.css",
			},
		},
		{
			name:     "positive includes",
			includes: []string{"src/**/*.css", "*.json"},
			want:     []string{".eslintrc.json", "data.json", "src/styles.css"},
		},
		{
			name:  "paths",
			paths: []string{"src", "index.js", "src/app.tsx"},
			want:  []string{"index.js", "src/app.tsx", "src/schema.graphql", "src/styles.css"},
		},
		{
			name:  "explicit unknown file is kept",
			paths: []string{"notes.txt"},
			want:  []string{"notes.txt"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			dir := tree(t, files)
			cfg := config.NewConfig()
			cfg.Files.Includes = tt.includes

			got, err := runner.Discover(context.Background(), runner.Options{
				Paths:      tt.paths,
				WorkingDir: dir,
				Config:     cfg,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, rel(t, dir, got))
		})
	}
}

func TestDiscover_IgnoreUnknown(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"notes.txt": ""})
	cfg := config.NewConfig()
	cfg.Files.IgnoreUnknown = config.Bool(true)

	got, err := runner.Discover(context.Background(), runner.Options{
		Paths:      []string{"notes.txt"},
		WorkingDir: dir,
		Config:     cfg,
	})
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestDiscover_Errors(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"a.js": ""})

	_, err := runner.Discover(context.Background(), runner.Options{Paths: []string{"missing"}, WorkingDir: dir})
	require.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = runner.Discover(ctx, runner.Options{WorkingDir: dir})
	require.ErrorIs(t, err, context.Canceled)

	cfg := config.NewConfig()
	cfg.Changed = true
	_, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.ErrorIs(t, err, runner.ErrVCSDisabled)

	cfg.Staged = true
	_, err = runner.Discover(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
	require.ErrorIs(t, err, runner.ErrConflictingSelection)
}

func TestDiscover_Symlinks(t *testing.T) {
	t.Parallel()

	dir := tree(t, map[string]string{"real/a.js": "", "src/b.js": ""})
	if err := os.Symlink(filepath.Join(dir, "real"), filepath.Join(dir, "src", "linked")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}

	for _, follow := range []bool{false, true} {
		got, err := runner.Discover(context.Background(), runner.Options{
			Paths:          []string{"src"},
			WorkingDir:     dir,
			FollowSymlinks: follow,
		})
		require.NoError(t, err)
		if follow {
			assert.Equal(t, []string{"real/a.js", "src/b.js"}, rel(t, dir, got))
		} else {
			assert.Equal(t, []string{"src/b.js"}, rel(t, dir, got))
		}
	}
}

func git(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
}

func TestDiscover_VCS(t *testing.T) {
	t.Parallel()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := tree(t, map[string]string{
		".gitignore":  "build/\n",
		"a.js":        "a;\n",
		"b.js":        "b;\n",
		"build/x.js":  "x;\n",
		"src/main.js": "main;\n",
	})
	git(t, dir, "init", "--quiet", "--initial-branch=main")
	git(t, dir, "config", "user.email", "test@example.com")
	git(t, dir, "config", "user.name", "test")
	git(t, dir, "config", "commit.gpgsign", "false")
	git(t, dir, "add", ".")
	git(t, dir, "commit", "--quiet", "-m", "init")

	require.NoError(t, os.WriteFile(filepath.Join(dir, "a.js"), []byte("a();\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "src", "main.js"), []byte("main();\n"), 0o644))
	git(t, dir, "add", "src/main.js")

	base := func() *config.Config {
		cfg := config.NewConfig()
		cfg.VCS.Enabled = config.Bool(true)
		cfg.VCS.UseIgnoreFile = config.Bool(true)
		cfg.VCS.DefaultBranch = "main"
		return cfg
	}

	t.Run("ignore file", func(t *testing.T) {
		got, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, Config: base()})
		require.NoError(t, err)
		assert.Equal(t, []string{"a.js", "b.js", "src/main.js"}, rel(t, dir, got))
	})

	t.Run("changed", func(t *testing.T) {
		cfg := base()
		cfg.Changed = true
		got, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
		require.NoError(t, err)
		assert.Equal(t, []string{"a.js", "src/main.js"}, rel(t, dir, got))
	})

	t.Run("staged", func(t *testing.T) {
		cfg := base()
		cfg.Staged = true
		got, err := runner.Discover(context.Background(), runner.Options{WorkingDir: dir, Config: cfg})
		require.NoError(t, err)
		assert.Equal(t, []string{"src/main.js"}, rel(t, dir, got))
	})
}
