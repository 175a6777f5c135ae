package configloader

import (
	"cmp"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// ConfigPaths lists the config files found for each layer. A layer with no
// file has an empty path.
type ConfigPaths struct {
	System   string // /etc/lexstyle/config.yaml or %ProgramData%\lexstyle
	User     string // $XDG_CONFIG_HOME/lexstyle/config.yaml
	Project  string // nearest .lexstyle.yml above the working directory
	Explicit string // --config
}

const appName = "lexstyle"

// ProjectConfigFiles are the project config names, most preferred first.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ProjectConfigFiles = []string{
	".lexstyle.yml",
	".lexstyle.yaml",
	"lexstyle.yml",
	"lexstyle.yaml",
}

// layerConfigFiles are the names looked for in system and user config dirs.
//
//nolint:gochecknoglobals // Read-only lookup table.
var layerConfigFiles = []string{"config.yaml", "config.yml"}

// repoMarkers end the upward project search.
//
//nolint:gochecknoglobals // Read-only lookup table.
var repoMarkers = []string{".git", ".hg", ".svn"}

// DiscoverPaths locates the system, user and project config files for
// workDir. Missing files are not errors.
func DiscoverPaths(ctx context.Context, workDir string) (*ConfigPaths, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("discover config: %w", err)
	}

	project, err := FindProjectConfig(ctx, workDir)
	if err != nil {
		return nil, err
	}
	return &ConfigPaths{
		System:  firstFile(systemConfigDir(), layerConfigFiles),
		User:    firstFile(userConfigDir(), layerConfigFiles),
		Project: project,
	}, nil
}

func systemConfigDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(cmp.Or(os.Getenv("ProgramData"), `C:\ProgramData`), appName)
	}
	return filepath.Join("/etc", appName)
}

// userConfigDir honours XDG_CONFIG_HOME on every platform, falling back to
// ~/.config. It returns "" when no home directory is known.
func userConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, appName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appName)
}

// FindProjectConfig walks up from startDir (the working directory when
// empty) and returns the first project config file it meets. The walk stops
// after a repository root, the home directory, or the filesystem root, and
// returns "" when nothing was found.
func FindProjectConfig(ctx context.Context, startDir string) (string, error) {
	dir, err := filepath.Abs(cmp.Or(startDir, "."))
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", startDir, err)
	}
	home, _ := os.UserHomeDir()

	for {
		if err := ctx.Err(); err != nil {
			return "", fmt.Errorf("find project config: %w", err)
		}
		if found := firstFile(dir, ProjectConfigFiles); found != "" {
			return found, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir || dir == home || isRepoRoot(dir) {
			return "", nil
		}
		dir = parent
	}
}

func isRepoRoot(dir string) bool {
	for _, marker := range repoMarkers {
		if info, err := os.Stat(filepath.Join(dir, marker)); err == nil && info.IsDir() {
			return true
		}
	}
	return false
}

// firstFile returns the first of names that exists in dir as a file.
func firstFile(dir string, names []string) string {
	if dir == "" {
		return ""
	}
	for _, name := range names {
		path := filepath.Join(dir, name)
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}
