// Package fsutil reads source files with enough metadata to notice later
// changes, and writes styled output atomically.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"
)

// FileInfo is a snapshot of a source file taken when it was read. The
// watcher compares it with the disk to drop events that changed nothing.
type FileInfo struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	Hash    [sha256.Size]byte
}

// ReadFile returns the content of path and a snapshot for CheckModified.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	return ReadFileMax(ctx, path, 0)
}

// ReadFileMax is ReadFile with a size cap. Files larger than limit bytes
// fail with ErrTooLarge before any content is read. A limit of zero or less
// means no cap.
func ReadFileMax(ctx context.Context, path string, limit int64) ([]byte, *FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}
	if limit > 0 && stat.Size() > limit {
		return nil, nil, fmt.Errorf("%w: %s is %d bytes, limit %d", ErrTooLarge, path, stat.Size(), limit)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, classify(path, err)
	}

	return content, &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

// Errors reported by this package, for errors.Is.
var (
	ErrNilFileInfo      = errors.New("nil FileInfo")
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
	ErrTooLarge         = errors.New("file too large")
)

// classify wraps an os error with the matching sentinel.
func classify(path string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return fmt.Errorf("read %s: %w", path, err)
	}
}

// CheckModified reports whether the file differs from info. Mod time and
// size are compared first; when they match the content is re-hashed, since
// editors can rewrite a file within the timestamp resolution.
func CheckModified(ctx context.Context, info *FileInfo) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}

	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("check %s: %w", info.Path, err)
	}

	stat, err := os.Stat(info.Path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		// A deleted file counts as modified.
		return true, nil
	case err != nil:
		return false, fmt.Errorf("stat %s: %w", info.Path, err)
	case !stat.ModTime().Equal(info.ModTime) || stat.Size() != info.Size:
		return true, nil
	}

	content, err := os.ReadFile(info.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", info.Path, err)
	}

	return sha256.Sum256(content) != info.Hash, nil
}
