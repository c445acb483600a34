package promptgen

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsPromptEvent(t *testing.T) {
	cases := []struct {
		name string
		op   fsnotify.Op
		want bool
	}{
		{"R.1.1.md", fsnotify.Write, true},
		{"R.1.1.md", fsnotify.Create, true},
		{"R.1.1.md", fsnotify.Remove, true},
		{"R.1.1.md", fsnotify.Rename, true},
		{"R.1.1.md", fsnotify.Chmod, false},
		{"notes.txt", fsnotify.Write, false},
		{".R.1.1.md.swp", fsnotify.Write, false},
	}
	for _, tc := range cases {
		got := isPromptEvent(fsnotify.Event{Name: "/prompts/" + tc.name, Op: tc.op})
		assert.Equal(t, tc.want, got, "%s %v", tc.name, tc.op)
	}
}

func TestWatcherDebouncesBurst(t *testing.T) {
	dir := t.TempDir()

	var fires atomic.Int32
	w, err := NewWatcher(dir, func() { fires.Add(1) }, nil)
	require.NoError(t, err)
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	// Give the watcher time to register the directory.
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 3; i++ {
		path := filepath.Join(dir, "R.1.1.md")
		require.NoError(t, os.WriteFile(path, []byte("rev"), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	assert.Eventually(t, func() bool { return fires.Load() >= 1 },
		2*time.Second, 20*time.Millisecond)

	// The burst coalesces into a single callback.
	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), fires.Load())

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}

func TestWatcherIgnoresNonMarkdown(t *testing.T) {
	dir := t.TempDir()

	var fires atomic.Int32
	w, err := NewWatcher(dir, func() { fires.Add(1) }, nil)
	require.NoError(t, err)
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(100 * time.Millisecond)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))
	time.Sleep(200 * time.Millisecond)

	assert.Equal(t, int32(0), fires.Load())

	cancel()
	<-done
}

func TestWatcherMissingDir(t *testing.T) {
	w, err := NewWatcher(filepath.Join(t.TempDir(), "nope"), func() {}, nil)
	require.NoError(t, err)

	assert.Error(t, w.Run(context.Background()))
}
