package watch

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/fsnotify/fsnotify"

	"github.com/yaklabco/lexstyle/internal/logging"
	"github.com/yaklabco/lexstyle/pkg/fsutil"
)

// DefaultDebounce is the quiet period after the last write before a change
// is reported.
const DefaultDebounce = 100 * time.Millisecond

// Config holds watcher configuration options.
type Config struct {
	// Path is the file to watch.
	Path string

	// Debounce coalesces bursts of writes. Zero means DefaultDebounce.
	Debounce time.Duration

	// Logger receives watch errors. Nil means the default logger.
	Logger *log.Logger
}

// Watcher reports changes to one file.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	path      string
	debounce  time.Duration
	logger    *log.Logger
	onChange  chan struct{}
	done      chan struct{}
}

// New creates a watcher for cfg.Path.
func New(cfg Config) (*Watcher, error) {
	path, err := filepath.Abs(cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("resolve %s: %w", cfg.Path, err)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating fsnotify watcher: %w", err)
	}

	debounce := cfg.Debounce
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	logger := cfg.Logger
	if logger == nil {
		logger = logging.Default()
	}

	return &Watcher{
		fsWatcher: fsw,
		path:      path,
		debounce:  debounce,
		logger:    logger,
		onChange:  make(chan struct{}, 1),
		done:      make(chan struct{}),
	}, nil
}

// Start begins watching. The returned channel receives a signal after each
// burst of writes settles.
func (w *Watcher) Start() (<-chan struct{}, error) {
	// Editors often replace the file, so watch its directory.
	dir := filepath.Dir(w.path)
	if err := w.fsWatcher.Add(dir); err != nil {
		return nil, fmt.Errorf("watching directory %s: %w", dir, err)
	}

	go w.loop()

	return w.onChange, nil
}

// Stop terminates the watcher and releases resources.
func (w *Watcher) Stop() error {
	close(w.done)
	if err := w.fsWatcher.Close(); err != nil {
		return fmt.Errorf("close watcher: %w", err)
	}
	return nil
}

func (w *Watcher) loop() {
	var (
		timer   *time.Timer
		timerCh <-chan time.Time
	)

	for {
		select {
		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return
			}
			if !w.isRelevantEvent(event) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(w.debounce)
			} else {
				timer.Reset(w.debounce)
			}
			timerCh = timer.C

		case <-timerCh:
			timerCh = nil
			// Drop the signal if the previous one is still unread.
			select {
			case w.onChange <- struct{}{}:
			default:
			}

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return
			}
			w.logger.Warn("watch error", logging.FieldPath, w.path, logging.FieldError, err)

		case <-w.done:
			if timer != nil {
				timer.Stop()
			}
			return
		}
	}
}

func (w *Watcher) isRelevantEvent(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
		return false
	}
	name, err := filepath.Abs(event.Name)
	if err != nil {
		return false
	}
	return name == w.path
}

// Follow re-reads path after every signal on changes, applies the contents
// to sess, and passes each update to fn. Signals that leave the file
// unchanged are skipped. It returns when ctx is done, changes is closed, or
// fn fails.
func Follow(
	ctx context.Context,
	path string,
	sess *Session,
	changes <-chan struct{},
	fn func(Update) error,
) error {
	var last *fsutil.FileInfo

	for {
		select {
		case <-ctx.Done():
			if errors.Is(ctx.Err(), context.Canceled) {
				return nil
			}
			return fmt.Errorf("follow %s: %w", path, ctx.Err())
		case _, ok := <-changes:
			if !ok {
				return nil
			}
		}

		if last != nil {
			modified, err := fsutil.CheckModified(ctx, last)
			if err != nil {
				return fmt.Errorf("follow %s: %w", path, err)
			}
			if !modified {
				continue
			}
		}

		content, info, err := fsutil.ReadFile(ctx, path)
		if err != nil {
			if errors.Is(err, fsutil.ErrNotFound) {
				// Mid-replace; the Create event will follow.
				continue
			}
			return fmt.Errorf("follow %s: %w", path, err)
		}
		last = info

		update, err := sess.Apply(content)
		if err != nil {
			return fmt.Errorf("follow %s: %w", path, err)
		}
		if err := fn(update); err != nil {
			return err
		}
	}
}
