package aliaser

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aliasync/aliasync/internal/logger"
	"github.com/aliasync/aliasync/internal/scanner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWatch_MissingSource(t *testing.T) {
	err := New(Options{RootDir: t.TempDir()}).Watch(context.Background(), DefaultWatchOptions())
	assert.True(t, errors.Is(err, scanner.ErrSourceNotFound))
}

func TestWatch_InitialSyncOnly(t *testing.T) {
	root := newProject(t, "utils")
	a := New(Options{RootDir: root})

	err := a.Watch(context.Background(), WatchOptions{Debounce: 10 * time.Millisecond, Persistent: false})
	require.NoError(t, err)
	assert.Contains(t, readFile(t, filepath.Join(root, "tsconfig.json")), `"@utils"`)
}

func TestWatch_SyncsAfterDirectoryAdded(t *testing.T) {
	root := newProject(t)
	a := New(Options{RootDir: root})

	done := make(chan error, 1)
	go func() {
		done <- a.Watch(context.Background(), WatchOptions{
			Debounce:      20 * time.Millisecond,
			IgnoreInitial: true,
			Persistent:    false,
		})
	}()

	// The watcher registers before the first event can be seen, so retry
	// creating directories until one is picked up.
	deadline := time.After(5 * time.Second)
	for i := 0; ; i++ {
		require.NoError(t, os.MkdirAll(filepath.Join(root, "src", "feature"+string(rune('a'+i%26))), 0755))
		select {
		case err := <-done:
			require.NoError(t, err)
			content := readFile(t, filepath.Join(root, "tsconfig.json"))
			assert.True(t, strings.Contains(content, `"@feature`), content)
			return
		case <-time.After(200 * time.Millisecond):
		case <-deadline:
			t.Fatal("watch did not sync")
		}
	}
}

func TestWatch_StopsOnCancel(t *testing.T) {
	root := newProject(t)
	a := New(Options{RootDir: root})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- a.Watch(ctx, DefaultWatchOptions()) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.NoFileExists(t, filepath.Join(root, "tsconfig.json"))
}

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestWatch_ReportsWatchedDirsAndFailedSync(t *testing.T) {
	root := newProject(t, "utils", "hooks")
	writeFile(t, filepath.Join(root, "tsconfig.json"), `{"compilerOptions": {"paths": "oops"}}`)

	var out syncBuffer
	a := New(Options{RootDir: root, Log: logger.New(logger.Options{Out: &out, Err: &out, NoColor: true})})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- a.Watch(ctx, WatchOptions{Debounce: 10 * time.Millisecond, Persistent: true})
	}()

	// src, src/hooks and src/utils
	assert.Eventually(t, func() bool {
		return strings.Contains(out.String(), "(3 directories) for directory changes")
	}, 3*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("watch did not stop")
	}
	assert.Contains(t, out.String(), "Sync failed, retrying on the next directory change")
	assert.Equal(t, Failed, a.Phase())
}
