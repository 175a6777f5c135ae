//go:build stave

package main

import (
	"bytes"
	"cmp"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/yaklabco/stave/pkg/sh"
	"github.com/yaklabco/stave/pkg/st"
	"github.com/yaklabco/stave/pkg/target"
)

const (
	binary  = "bin/lexstyle"
	mainPkg = "./cmd/lexstyle"
)

// Default target runs build.
var Default = Build

// Aliases for common targets.
var Aliases = map[string]any{
	"b":   Build,
	"t":   Test.Default,
	"tp":  Test.Properties,
	"l":   Lint.Default,
	"c":   Check,
	"i":   Install,
	"s":   Smoke,
	"fmt": Lint.Fmt,
	"bl":  Bench.Lexers,
}

// Namespace types group related targets.
type (
	Test  st.Namespace
	Lint  st.Namespace
	CI    st.Namespace
	Bench st.Namespace
)

// Build compiles the lexstyle binary with version info.
// Skips recompilation when source files have not changed.
func Build() error {
	rebuild, err := target.Dir(binary, "cmd/", "pkg/", "internal/", "go.mod", "go.sum")
	if err != nil {
		return err
	}
	if !rebuild {
		fmt.Println(binary, "is up to date")
		return nil
	}
	fmt.Println("Building lexstyle...")
	return sh.RunV("go", "build", "-ldflags", ldflags(), "-o", binary, mainPkg)
}

// Check runs format, lint, and test sequentially.
func Check() {
	st.SerialDeps(Lint.Fmt, Lint.Default, Test.Default)
}

// Clean removes build artifacts.
func Clean() error {
	fmt.Println("Cleaning build artifacts...")
	for _, path := range []string{"bin", "coverage.out", "coverage.html"} {
		if err := sh.Rm(path); err != nil {
			return err
		}
	}
	return nil
}

// Install installs lexstyle to $GOBIN or $GOPATH/bin.
func Install() error {
	fmt.Println("Installing lexstyle...")
	return sh.RunV("go", "install", "-ldflags", ldflags(), mainPkg)
}

// Smoke builds the binary and runs it over this repository: the lexer
// listing, the runs of a Go file, and the folds of a generated search
// result with markings.
func Smoke() error {
	st.Deps(Build)
	fmt.Println("Running smoke checks...")

	if err := sh.RunV(binary, "lexers"); err != nil {
		return err
	}
	if err := sh.RunV(binary, "style", "--color", "never", "--format", "runs", "stavefile.go"); err != nil {
		return err
	}

	dir, err := os.MkdirTemp("", "lexstyle-smoke-")
	if err != nil {
		return fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	results := dir + "/hits.txt"
	marks := dir + "/hits.yml"
	if err := os.WriteFile(results, []byte(smokeResults), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", results, err)
	}
	if err := os.WriteFile(marks, []byte(smokeMarkings), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", marks, err)
	}

	out, err := sh.Output(binary, "fold", "--markings", marks, results)
	if err != nil {
		return err
	}
	fmt.Println(out)
	if !strings.Contains(out, "header") {
		return errors.New("fold output has no header lines")
	}
	fmt.Println("✓ Smoke checks passed")
	return nil
}

const smokeResults = `Search "needle" (2 hits in 1 file)
  /src/a.txt (2 hits)
	Line 3: a needle here
	Line 9: needle again
`

const smokeMarkings = `lines:
  2: {start: 11, end: 17}
  3: {start: 9, end: 15}
`

// Deps ensures all dependencies are downloaded.
func Deps() error {
	fmt.Println("Downloading dependencies...")
	if err := sh.RunV("go", "mod", "download"); err != nil {
		return err
	}
	return sh.RunV("go", "mod", "tidy")
}

// Coverage generates an HTML test coverage report.
func Coverage() error {
	st.Deps(Test.Default)
	fmt.Println("Generating coverage report...")
	return sh.RunV("go", "tool", "cover", "-html=coverage.out", "-o", "coverage.html")
}

// Default runs all tests using gotestsum with race detection and coverage.
func (Test) Default() error {
	fmt.Println("Running tests...")
	return gotestsum("pkgname-and-test-fails")
}

// Verbose runs all tests with standard-verbose output.
func (Test) Verbose() error {
	fmt.Println("Running tests (verbose)...")
	return gotestsum("standard-verbose")
}

// Properties runs the rapid property tests with many more cases than the
// default suite. RAPID_CHECKS sets the case count.
func (Test) Properties() error {
	fmt.Println("Running property tests...")
	checks := cmp.Or(os.Getenv("RAPID_CHECKS"), "5000")
	return sh.RunV("go",
		"test",
		"-race",
		"-run", "Propert|Incremental|Goldmark",
		"./pkg/lexer/markdown", "./pkg/lexer/searchresult", "./pkg/watch",
		"-rapid.checks="+checks,
	)
}

// Default runs golangci-lint with auto-fix.
func (Lint) Default() error {
	fmt.Println("Running linters...")
	return sh.RunV("golangci-lint", "run", "--fix", "./...")
}

// CI runs golangci-lint without auto-fix.
func (Lint) CI() error {
	fmt.Println("Running linters (CI mode)...")
	return sh.RunV("golangci-lint", "run", "./...")
}

// Fmt formats all Go code.
func (Lint) Fmt() error {
	fmt.Println("Formatting code...")
	return sh.RunV("gofmt", "-w", ".")
}

// FmtCheck verifies code formatting without modifying files.
func (Lint) FmtCheck() error {
	out, err := sh.Output("gofmt", "-l", ".")
	if err != nil {
		return fmt.Errorf("gofmt check failed: %w", err)
	}
	if out != "" {
		return fmt.Errorf("unformatted files:\n%s\nRun 'stave lint:fmt' to fix", out)
	}
	fmt.Println("✓ Code formatting OK")
	return nil
}

// Vet runs go vet.
func (Lint) Vet() error {
	fmt.Println("Running go vet...")
	return sh.RunV("go", "vet", "./...")
}

// Gate runs every CI check in order.
func (CI) Gate() error {
	fmt.Println("Running CI gate checks...")
	st.SerialDeps(
		Lint.FmtCheck,
		Lint.Vet,
		Lint.CI,
		Build,
		Test.Default,
		Smoke,
		CI.ModTidy,
		CI.Cross,
	)
	fmt.Println("\n✓ All CI gate checks passed!")
	return nil
}

// ModTidy checks that go.mod and go.sum are tidy.
func (CI) ModTidy() error {
	fmt.Println("Checking go.mod/go.sum are tidy...")
	files := []string{"go.mod", "go.sum"}

	before := make([][]byte, len(files))
	for i, name := range files {
		content, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s: %w", name, err)
		}
		before[i] = content
	}

	if err := sh.RunV("go", "mod", "tidy"); err != nil {
		return err
	}

	for i, name := range files {
		after, err := os.ReadFile(name)
		if err != nil {
			return fmt.Errorf("read %s after tidy: %w", name, err)
		}
		if !bytes.Equal(before[i], after) {
			return fmt.Errorf("%s changed after 'go mod tidy' - please commit the changes", name)
		}
	}
	fmt.Println("✓ go.mod/go.sum are tidy")
	return nil
}

// Cross builds for the release platforms. The watcher leans on fsnotify's
// per-platform backends, so each one gets compiled.
func (CI) Cross() error {
	fmt.Println("Cross-compiling for release platforms...")
	platforms := []string{
		"linux/amd64", "linux/arm64",
		"darwin/amd64", "darwin/arm64",
		"windows/amd64",
		"freebsd/amd64",
	}
	for _, platform := range platforms {
		goos, goarch, _ := strings.Cut(platform, "/")
		fmt.Printf("  Building %s...\n", platform)
		env := map[string]string{"GOOS": goos, "GOARCH": goarch, "CGO_ENABLED": "0"}
		if err := sh.RunWith(env, "go", "build", "-o", os.DevNull, mainPkg); err != nil {
			return fmt.Errorf("build failed for %s: %w", platform, err)
		}
	}
	fmt.Println("✓ All platforms build successfully")
	return nil
}

// Default runs every Go benchmark.
func (Bench) Default() error {
	fmt.Println("Running benchmarks...")
	return sh.RunV("go", "test", "-run=^$", "-bench=.", "-benchmem", "./...")
}

// Lexers benchmarks only the lexer and document packages. BENCH_COUNT sets
// the repetition count for benchstat.
func (Bench) Lexers() error {
	fmt.Println("Running lexer benchmarks...")
	return sh.RunV("go",
		"test",
		"-run=^$",
		"-bench=.", "-benchmem",
		"-count", cmp.Or(os.Getenv("BENCH_COUNT"), "5"),
		"./pkg/lexer/...", "./pkg/document/...",
	)
}

// gotestsum runs the whole suite with race detection and coverage.
func gotestsum(format string) error {
	nCores := cmp.Or(os.Getenv("STAVE_NUM_PROCESSORS"), "4")
	return sh.RunV("go",
		"tool", "gotestsum",
		"-f", format,
		"--",
		"-race",
		"-p", nCores,
		"-parallel", nCores,
		"./...",
		"-coverprofile=coverage.out",
		"-covermode=atomic",
	)
}

// gitOutput runs a git command and returns trimmed stdout, or empty on error.
func gitOutput(args ...string) string {
	out, err := sh.Output("git", args...)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(out)
}

// ldflags returns the linker flags for version injection.
func ldflags() string {
	version := cmp.Or(gitOutput("describe", "--tags", "--always", "--dirty"), "dev")
	commit := cmp.Or(gitOutput("rev-parse", "--short", "HEAD"), "none")
	date := time.Now().UTC().Format(time.RFC3339)
	return fmt.Sprintf(
		"-X main.version=%s -X main.commit=%s -X main.date=%s",
		version, commit, date,
	)
}
