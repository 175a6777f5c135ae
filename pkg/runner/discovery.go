package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// Discover finds the files to style under opts.Paths.
// It returns a deterministically sorted list of absolute file paths.
// Directories are walked for files with a known extension; files named
// directly are kept whatever their extension, unless an exclude glob matches.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	w, err := newWalker(workDir, opts)
	if err != nil {
		return nil, err
	}

	for _, input := range opts.effectivePaths() {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", ctxErr)
		}

		absPath := input
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", input, err)
		}

		if info.IsDir() {
			if err := w.walk(ctx, absPath); err != nil {
				return nil, err
			}
			continue
		}
		if !w.exclude.match(w.rel(absPath), false) {
			w.add(absPath)
		}
	}

	sort.Strings(w.files)
	return w.files, nil
}

// resolveWorkDir resolves the working directory, defaulting to os.Getwd().
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// walker collects files across every input path of one Discover call.
type walker struct {
	workDir    string
	opts       Options
	extensions map[string]struct{}
	include    patternSet
	exclude    patternSet

	seen    map[string]struct{}
	visited map[string]struct{}
	files   []string
}

func newWalker(workDir string, opts Options) (*walker, error) {
	include, err := compilePatterns(opts.IncludeGlobs)
	if err != nil {
		return nil, err
	}
	exclude, err := compilePatterns(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	extensions := make(map[string]struct{})
	for _, ext := range opts.effectiveExtensions() {
		extensions[strings.ToLower(ext)] = struct{}{}
	}

	return &walker{
		workDir:    workDir,
		opts:       opts,
		extensions: extensions,
		include:    include,
		exclude:    exclude,
		seen:       make(map[string]struct{}),
		visited:    make(map[string]struct{}),
	}, nil
}

func (w *walker) rel(path string) string {
	relPath, err := filepath.Rel(w.workDir, path)
	if err != nil {
		return path
	}
	return relPath
}

func (w *walker) add(path string) {
	if _, ok := w.seen[path]; ok {
		return
	}
	w.seen[path] = struct{}{}
	w.files = append(w.files, path)
}

// walk adds the wanted files under root. Each real directory is walked at
// most once, so followed symlinks cannot loop.
func (w *walker) walk(ctx context.Context, root string) error {
	if real, err := filepath.EvalSymlinks(root); err == nil {
		if _, done := w.visited[real]; done {
			return nil
		}
		w.visited[real] = struct{}{}
	}

	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if w.skipDir(path, entry.Name(), path == root) {
				return filepath.SkipDir
			}
			return nil
		}

		if strings.HasPrefix(entry.Name(), ".") {
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			target, err := os.Stat(path)
			if err != nil {
				return nil //nolint:nilerr // broken symlinks are skipped
			}
			if target.IsDir() {
				if !w.opts.FollowSymlinks || w.skipDir(path, entry.Name(), false) {
					return nil
				}
				realPath, err := filepath.EvalSymlinks(path)
				if err != nil {
					return nil //nolint:nilerr // unreadable targets are skipped
				}
				return w.walk(ctx, realPath)
			}
		}

		if w.wants(path) {
			w.add(path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("walk directory %s: %w", root, err)
	}
	return nil
}

// skipDir prunes hidden, vendored and excluded directories. The walk root
// is only pruned by the exclude globs.
func (w *walker) skipDir(path, name string, isRoot bool) bool {
	if !isRoot {
		if strings.HasPrefix(name, ".") {
			return true
		}
		// enry's vendor patterns expect a trailing slash on directories.
		if !w.opts.IncludeVendored && enry.IsVendor(name+"/") {
			return true
		}
	}
	return w.exclude.match(w.rel(path), true)
}

// wants reports whether a file found while walking should be styled.
func (w *walker) wants(path string) bool {
	if _, ok := w.extensions[strings.ToLower(filepath.Ext(path))]; !ok {
		return false
	}
	relPath := w.rel(path)
	if w.exclude.match(relPath, false) {
		return false
	}
	return len(w.include) == 0 || w.include.match(relPath, false)
}
