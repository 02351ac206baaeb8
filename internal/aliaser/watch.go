package aliaser

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/aliasync/aliasync/internal/alias"
	"github.com/aliasync/aliasync/internal/scanner"
	"github.com/aliasync/aliasync/internal/watcher"
)

// WatchOptions controls Watch.
type WatchOptions struct {
	// Debounce is the quiet period before a sync runs.
	Debounce time.Duration
	// IgnoreInitial skips the sync at startup.
	IgnoreInitial bool
	// Persistent keeps watching after the first cycle.
	Persistent bool
}

// DefaultWatchOptions returns a one second debounce, no initial sync, and
// persistent watching.
func DefaultWatchOptions() WatchOptions {
	return WatchOptions{Debounce: time.Second, IgnoreInitial: true, Persistent: true}
}

// Watch syncs whenever a directory is added to or removed from the source
// tree. It returns nil when ctx is cancelled, or after the first cycle when
// opts.Persistent is false.
func (a *Aliaser) Watch(ctx context.Context, opts WatchOptions) error {
	src := filepath.Join(a.root, a.settings.SrcDir)
	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		return fmt.Errorf("%w: %s", scanner.ErrSourceNotFound, src)
	}
	if opts.Debounce <= 0 {
		opts.Debounce = time.Second
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cycle := func() {
		a.Report(a.Sync(ctx))
		if !opts.Persistent {
			cancel()
			return
		}
		if a.Phase() == Failed {
			a.log.Warn("Sync failed, retrying on the next directory change")
		}
	}

	if !opts.IgnoreInitial {
		cycle()
		if !opts.Persistent {
			return nil
		}
	}

	w, err := watcher.New(src, a.excludeDirs(), a.log)
	if err != nil {
		return err
	}
	defer w.Close()

	d := watcher.NewDebouncer(opts.Debounce, cycle)

	a.log.Info("Watching %s (%d directories) for directory changes", src, w.Watched())
	a.log.Info("Press Ctrl+C to stop watching")

	err = w.Run(ctx, func(ev watcher.Event) {
		rel, relErr := filepath.Rel(a.root, ev.Path)
		if relErr != nil {
			rel = ev.Path
		}
		a.log.Info("Directory %s: %s", ev.Op, rel)
		d.Trigger()
	})

	d.Stop()

	a.log.Info("Stopped watching")
	return err
}

func (a *Aliaser) excludeDirs() []string {
	if a.settings.ExcludeDirs == nil {
		return scanner.DefaultExcludeDirs
	}
	return a.settings.ExcludeDirs
}

// Report logs an outcome's message followed by its errors.
func (a *Aliaser) Report(out *alias.Outcome) {
	if out.Success {
		a.log.Success("%s", out.Message)
	} else {
		a.log.Error("%s", out.Message)
	}
	for _, e := range out.Errors {
		a.log.Error("  %s", e)
	}
}
