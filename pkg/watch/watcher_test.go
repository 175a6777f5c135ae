package watch_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/lexstyle/pkg/lexer/markdown"
	"github.com/yaklabco/lexstyle/pkg/watch"
)

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# start\n"), 0o600))

	w, err := watch.New(watch.Config{Path: path, Debounce: 50 * time.Millisecond})
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	require.NoError(t, err)

	// Rapid writes should coalesce into a single notification.
	for i := range 10 {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("# v%d\n", i)), 0o600))
		time.Sleep(10 * time.Millisecond)
	}

	select {
	case <-onChange:
	case <-time.After(time.Second):
		t.Fatal("expected notification but got timeout")
	}

	select {
	case <-onChange:
		t.Fatal("unexpected second notification")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	other := filepath.Join(dir, "other.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(other, []byte("initial"), 0o600))

	w, err := watch.New(watch.Config{Path: path, Debounce: 20 * time.Millisecond})
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	onChange, err := w.Start()
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(other, []byte("changed"), 0o600))

	select {
	case <-onChange:
		t.Fatal("notified for an unrelated file")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestWatcher_StartMissingDirectory(t *testing.T) {
	t.Parallel()

	w, err := watch.New(watch.Config{Path: filepath.Join(t.TempDir(), "gone", "notes.md")})
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	_, err = w.Start()
	require.Error(t, err)
}

func TestFollow(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("text\n"), 0o600))

	sess := watch.NewSession(markdown.New(), []byte("text\n"), nil)
	changes := make(chan struct{}, 1)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	updates := make(chan watch.Update, 4)
	done := make(chan error, 1)
	go func() {
		done <- watch.Follow(ctx, path, sess, changes, func(u watch.Update) error {
			updates <- u
			return nil
		})
	}()

	require.NoError(t, os.WriteFile(path, []byte("# text\n"), 0o600))
	changes <- struct{}{}

	select {
	case u := <-updates:
		assert.True(t, u.Changed())
		assert.Equal(t, 0, u.FirstLine)
	case <-time.After(time.Second):
		t.Fatal("no update")
	}
	assert.Equal(t, markdown.StyleHeader1, sess.Document().StyleAt(0))

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Follow did not return after cancel")
	}
}

func TestFollow_CallbackErrorStops(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("a\n"), 0o600))

	sess := watch.NewSession(markdown.New(), nil, nil)
	changes := make(chan struct{}, 1)
	changes <- struct{}{}

	errStop := errors.New("stop")
	err := watch.Follow(context.Background(), path, sess, changes, func(watch.Update) error {
		return errStop
	})
	require.ErrorIs(t, err, errStop)
}

func TestFollow_ClosedChannel(t *testing.T) {
	t.Parallel()

	sess := watch.NewSession(markdown.New(), nil, nil)
	changes := make(chan struct{})
	close(changes)

	err := watch.Follow(context.Background(), "unused", sess, changes, func(watch.Update) error {
		t.Fatal("no update expected")
		return nil
	})
	require.NoError(t, err)
}
