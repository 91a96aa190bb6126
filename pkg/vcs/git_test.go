package vcs

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIgnoreSet_Contains(t *testing.T) {
	t.Parallel()

	set := &IgnoreSet{
		root:  "/repo",
		files: map[string]bool{"debug.log": true},
		dirs:  []string{"dist", "packages/a/node_modules"},
	}

	tests := []struct {
		path string
		want bool
	}{
		{"/repo/debug.log", true},
		{"/repo/dist", true},
		{"/repo/dist/index.js", true},
		{"/repo/distribution/index.js", false},
		{"/repo/packages/a/node_modules/x/index.js", true},
		{"/repo/packages/a/src/index.js", false},
		{"/elsewhere/debug.log", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, set.Contains(tt.path), tt.path)
	}
	assert.Equal(t, 3, set.Len())

	var none *IgnoreSet
	assert.False(t, none.Contains("/repo/debug.log"))
	assert.Zero(t, none.Len())
}

func TestOpen_UnsupportedClient(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), "svn", t.TempDir())
	require.ErrorIs(t, err, ErrUnsupportedClient)
}

// gitRepo creates a repository with one commit on main.
func gitRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	dir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	gitCmd(t, dir, "init", "--quiet", "--initial-branch=main")
	gitCmd(t, dir, "config", "user.email", "test@example.com")
	gitCmd(t, dir, "config", "user.name", "test")
	gitCmd(t, dir, "config", "commit.gpgsign", "false")
	writeFile(t, dir, "a.js", "a;\n")
	writeFile(t, dir, "b.js", "b;\n")
	writeFile(t, dir, ".gitignore", "dist/\n*.log\n")
	gitCmd(t, dir, "add", ".")
	gitCmd(t, dir, "commit", "--quiet", "-m", "init")
	return dir
}

func gitCmd(t *testing.T, dir string, args ...string) {
	t.Helper()
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
}

func TestGit(t *testing.T) {
	t.Parallel()

	dir := gitRepo(t)
	ctx := context.Background()

	g, err := Open(ctx, "", dir)
	require.NoError(t, err)
	assert.Equal(t, dir, g.Root())

	writeFile(t, dir, "a.js", "a();\n")
	writeFile(t, dir, "c.js", "c;\n")
	gitCmd(t, dir, "add", "c.js")

	staged, err := g.Staged(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(dir, "c.js")}, staged)

	changed, err := g.Changed(ctx, "main")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{filepath.Join(dir, "a.js"), filepath.Join(dir, "c.js")}, changed)

	_, err = g.Changed(ctx, "")
	require.ErrorIs(t, err, ErrNoBase)
	_, err = g.Changed(ctx, "no-such-branch")
	require.Error(t, err)

	writeFile(t, dir, "dist/out.js", "x;\n")
	writeFile(t, dir, "debug.log", "x\n")
	ignored, err := g.Ignored(ctx)
	require.NoError(t, err)
	assert.True(t, ignored.Contains(filepath.Join(dir, "dist", "out.js")))
	assert.True(t, ignored.Contains(filepath.Join(dir, "debug.log")))
	assert.False(t, ignored.Contains(filepath.Join(dir, "a.js")))
}

func TestOpen_NotRepository(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	t.Setenv("GIT_CEILING_DIRECTORIES", filepath.Dir(dir))
	_, err := Open(context.Background(), ClientGit, dir)
	require.ErrorIs(t, err, ErrNotRepository)
}
