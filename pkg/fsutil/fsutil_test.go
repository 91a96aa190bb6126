package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/gobiome/pkg/fsutil"
)

func write(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "a.js")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("content and metadata", func(t *testing.T) {
		t.Parallel()

		path := write(t, "let a = 1;\n")
		got, info, err := fsutil.ReadFile(context.Background(), path, 0)
		require.NoError(t, err)
		assert.Equal(t, "let a = 1;\n", string(got))
		assert.Equal(t, path, info.Path)
		assert.Equal(t, int64(11), info.Size)
		assert.Equal(t, os.FileMode(0o644), info.Mode.Perm())
		assert.NotZero(t, info.Hash)
	})

	t.Run("too large", func(t *testing.T) {
		t.Parallel()

		path := write(t, "0123456789")
		got, info, err := fsutil.ReadFile(context.Background(), path, 4)
		require.ErrorIs(t, err, fsutil.ErrTooLarge)
		assert.Nil(t, got)
		require.NotNil(t, info)
		assert.Equal(t, int64(10), info.Size)
	})

	t.Run("at the limit", func(t *testing.T) {
		t.Parallel()

		path := write(t, "0123")
		got, _, err := fsutil.ReadFile(context.Background(), path, 4)
		require.NoError(t, err)
		assert.Equal(t, "0123", string(got))
	})

	t.Run("missing", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "nope.js"), 0)
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, _, err := fsutil.ReadFile(context.Background(), t.TempDir(), 0)
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, _, err := fsutil.ReadFile(ctx, write(t, "x"), 0)
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("unchanged", func(t *testing.T) {
		t.Parallel()

		path := write(t, "a;\n")
		_, info, err := fsutil.ReadFile(ctx, path, 0)
		require.NoError(t, err)
		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.False(t, modified)
	})

	t.Run("rewritten with the same size", func(t *testing.T) {
		t.Parallel()

		path := write(t, "a;\n")
		_, info, err := fsutil.ReadFile(ctx, path, 0)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, []byte("b;\n"), 0o644))
		// Pin the modification time so only the hash can tell.
		require.NoError(t, os.Chtimes(path, time.Time{}, info.ModTime))

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := write(t, "a;\n")
		_, info, err := fsutil.ReadFile(ctx, path, 0)
		require.NoError(t, err)
		require.NoError(t, os.Remove(path))

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("nil info", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.CheckModified(ctx, nil)
		require.ErrorIs(t, err, fsutil.ErrNilFileInfo)
	})
}

func TestWriteAtomic(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("replaces content and keeps mode", func(t *testing.T) {
		t.Parallel()

		path := write(t, "old\n")
		require.NoError(t, os.Chmod(path, 0o600))
		require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("new\n"), 0o600))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "new\n", string(got))
		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), stat.Mode().Perm())

		entries, err := os.ReadDir(filepath.Dir(path))
		require.NoError(t, err)
		assert.Len(t, entries, 1, "temporary file left behind")
	})

	t.Run("default mode", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "new.js")
		require.NoError(t, fsutil.WriteAtomic(ctx, path, []byte("x"), 0))
		stat, err := os.Stat(path)
		require.NoError(t, err)
		assert.Equal(t, fsutil.DefaultFileMode, stat.Mode().Perm())
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		err := fsutil.WriteAtomic(ctx, filepath.Join(t.TempDir(), "no", "dir.js"), []byte("x"), 0)
		require.Error(t, err)
	})
}

func TestCreateBackup(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	enabled := fsutil.BackupConfig{Enabled: true, Mode: fsutil.BackupModeSidecar}

	t.Run("writes once", func(t *testing.T) {
		t.Parallel()

		path := write(t, "v1\n")
		created, err := fsutil.CreateBackup(ctx, path, enabled)
		require.NoError(t, err)
		assert.True(t, created)

		require.NoError(t, os.WriteFile(path, []byte("v2\n"), 0o644))
		created, err = fsutil.CreateBackup(ctx, path, enabled)
		require.NoError(t, err)
		assert.False(t, created, "existing backup is kept")

		got, err := os.ReadFile(path + fsutil.BackupSuffix)
		require.NoError(t, err)
		assert.Equal(t, "v1\n", string(got))
	})

	t.Run("disabled", func(t *testing.T) {
		t.Parallel()

		path := write(t, "v1\n")
		for _, cfg := range []fsutil.BackupConfig{
			fsutil.DefaultBackupConfig(),
			{Enabled: true, Mode: fsutil.BackupModeNone},
		} {
			created, err := fsutil.CreateBackup(ctx, path, cfg)
			require.NoError(t, err)
			assert.False(t, created)
		}
		_, err := os.Stat(path + fsutil.BackupSuffix)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("missing original", func(t *testing.T) {
		t.Parallel()

		created, err := fsutil.CreateBackup(ctx, filepath.Join(t.TempDir(), "gone.js"), enabled)
		require.NoError(t, err)
		assert.False(t, created)
	})
}

func TestBackupPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "/src/a.js.gobiome.bak", fsutil.BackupPath("/src/a.js", fsutil.BackupModeSidecar))
	assert.Equal(t, "/src/a.js.gobiome.bak", fsutil.BackupPath("/src/a.js", "unknown"))
	assert.Empty(t, fsutil.BackupPath("/src/a.js", fsutil.BackupModeNone))
}

func FuzzWriteAtomic(f *testing.F) {
	f.Add([]byte(""))
	f.Add([]byte("let a = 1;\n"))
	f.Add([]byte("\x00\x01\x02\x03"))

	f.Fuzz(func(t *testing.T, content []byte) {
		path := filepath.Join(t.TempDir(), "a.js")
		ctx := context.Background()
		require.NoError(t, fsutil.WriteAtomic(ctx, path, content, 0o644))

		got, info, err := fsutil.ReadFile(ctx, path, 0)
		require.NoError(t, err)
		assert.Equal(t, string(content), string(got))

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.False(t, modified)
	})
}
