package fsutil_test

import (
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lexstyle/pkg/fsutil"
)

func writeSource(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	const content = "Search \"x\" (1 hit in 1 file)\n"
	path := writeSource(t, "hits.txt", content)

	got, info, err := fsutil.ReadFile(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, content, string(got))
	assert.Equal(t, path, info.Path)
	assert.Equal(t, int64(len(content)), info.Size)
	assert.Equal(t, sha256.Sum256([]byte(content)), info.Hash)
	assert.False(t, info.ModTime.IsZero())
}

func TestReadFile_Errors(t *testing.T) {
	t.Parallel()

	cancelled, cancel := context.WithCancel(context.Background())
	cancel()

	tests := []struct {
		name    string
		ctx     context.Context
		path    string
		wantErr error
	}{
		{name: "missing file", ctx: context.Background(), path: "/nonexistent/lexstyle/a.md", wantErr: fsutil.ErrNotFound},
		{name: "directory", ctx: context.Background(), path: t.TempDir(), wantErr: fsutil.ErrIsDirectory},
		{name: "cancelled", ctx: cancelled, path: "any.md", wantErr: context.Canceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := fsutil.ReadFile(tt.ctx, tt.path)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestReadFileMax(t *testing.T) {
	t.Parallel()

	path := writeSource(t, "big.md", "0123456789")
	ctx := context.Background()

	_, _, err := fsutil.ReadFileMax(ctx, path, 4)
	require.ErrorIs(t, err, fsutil.ErrTooLarge)

	got, info, err := fsutil.ReadFileMax(ctx, path, 10)
	require.NoError(t, err, "a file exactly at the limit is read")
	assert.Equal(t, "0123456789", string(got))
	assert.Equal(t, int64(10), info.Size)

	_, _, err = fsutil.ReadFileMax(ctx, path, 0)
	require.NoError(t, err, "zero limit does not cap")
}

func TestCheckModified(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("untouched", func(t *testing.T) {
		t.Parallel()

		path := writeSource(t, "a.md", "# A\n")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.False(t, modified)
	})

	t.Run("rewritten with the same size and mod time", func(t *testing.T) {
		t.Parallel()

		path := writeSource(t, "a.md", "# A\n")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		require.NoError(t, os.WriteFile(path, []byte("# B\n"), 0o644))
		require.NoError(t, os.Chtimes(path, info.ModTime, info.ModTime))

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.True(t, modified, "content hash catches same-size edits")
	})

	t.Run("mod time changed", func(t *testing.T) {
		t.Parallel()

		path := writeSource(t, "a.md", "# A\n")
		_, info, err := fsutil.ReadFile(ctx, path)
		require.NoError(t, err)

		later := info.ModTime.Add(time.Minute)
		require.NoError(t, os.Chtimes(path, later, later))

		modified, err := fsutil.CheckModified(ctx, info)
		require.NoError(t, err)
		assert.True(t, modified)
	})

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		path := writeSource(t, "a.md", "# A\n")
		_, info, err := fsutil.ReadFile(ctx, path)
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
