package fsutil

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// DefaultFileMode is the mode of output files that do not exist yet.
const DefaultFileMode os.FileMode = 0o644

// WriteAtomic replaces path with content through a temp file in the same
// directory and a rename, so a reader never sees half-written output.
// A zero mode keeps the mode of the file being replaced, or DefaultFileMode
// for a new file. On failure the temp file is removed and path is untouched.
func WriteAtomic(ctx context.Context, path string, content []byte, mode os.FileMode) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if mode == 0 {
		mode = existingMode(path)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file for %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	if err := fill(tmp, content, mode); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename into %s: %w", path, err)
	}
	return nil
}

// fill writes and syncs tmp, then closes it whatever happened.
func fill(tmp *os.File, content []byte, mode os.FileMode) error {
	err := func() error {
		if _, err := tmp.Write(content); err != nil {
			return err
		}
		if err := tmp.Sync(); err != nil {
			return err
		}
		return tmp.Chmod(mode)
	}()
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	return err
}

func existingMode(path string) os.FileMode {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return DefaultFileMode
	}
	return info.Mode().Perm()
}

// WriteAtomicIfChanged writes content unless path already holds exactly
// that content, and reports whether it wrote. An unchanged file keeps its
// mod time.
func WriteAtomicIfChanged(ctx context.Context, path string, content []byte, mode os.FileMode) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, fmt.Errorf("write %s: %w", path, err)
	}

	existing, err := os.ReadFile(path)
	switch {
	case err == nil && bytes.Equal(existing, content):
		return false, nil
	case err != nil && !errors.Is(err, fs.ErrNotExist):
		return false, classify(path, err)
	}

	if err := WriteAtomic(ctx, path, content, mode); err != nil {
		return false, err
	}
	return true, nil
}
