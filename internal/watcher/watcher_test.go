package watcher

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startWatcher(t *testing.T, root string, exclude []string) (*Watcher, <-chan Event) {
	t.Helper()
	w, err := New(root, exclude, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	events := make(chan Event, 16)
	done := make(chan struct{})
	go func() {
		defer close(done)
		_ = w.Run(ctx, func(ev Event) { events <- ev })
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		w.Close()
	})
	return w, events
}

func waitFor(t *testing.T, events <-chan Event, want Event) {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case ev := <-events:
			if ev == want {
				return
			}
		case <-timeout:
			t.Fatalf("timed out waiting for %v %s", want.Op, want.Path)
		}
	}
}

func TestNew_SkipsExcludedAndDotDirs(t *testing.T) {
	root := t.TempDir()
	for _, d := range []string{"components", "node_modules/pkg", ".cache", "utils/deep"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, d), 0755))
	}

	w, _ := startWatcher(t, root, []string{"node_modules"})
	// root, components, utils, utils/deep
	assert.Equal(t, 4, w.Watched())
}

func TestWatcher_ReportsDirectoryAddAndRemove(t *testing.T) {
	root := t.TempDir()
	w, events := startWatcher(t, root, nil)

	dir := filepath.Join(root, "hooks")
	require.NoError(t, os.Mkdir(dir, 0755))
	waitFor(t, events, Event{Op: DirAdded, Path: dir})
	assert.Eventually(t, func() bool { return w.Watched() == 2 }, time.Second, 10*time.Millisecond)

	require.NoError(t, os.Remove(dir))
	waitFor(t, events, Event{Op: DirRemoved, Path: dir})
	assert.Equal(t, 1, w.Watched())
}

func TestWatcher_IgnoresFilesAndDotDirs(t *testing.T) {
	root := t.TempDir()
	_, events := startWatcher(t, root, nil)

	require.NoError(t, os.WriteFile(filepath.Join(root, "index.ts"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(root, ".tmp"), 0755))
	marker := filepath.Join(root, "marker")
	require.NoError(t, os.Mkdir(marker, 0755))

	select {
	case ev := <-events:
		assert.Equal(t, Event{Op: DirAdded, Path: marker}, ev)
	case <-time.After(3 * time.Second):
		t.Fatal("no event received")
	}
}

func TestOpString(t *testing.T) {
	assert.Equal(t, "added", DirAdded.String())
	assert.Equal(t, "removed", DirRemoved.String())
}
