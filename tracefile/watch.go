package tracefile

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/cenkalti/backoff/v5"
	"github.com/fsnotify/fsnotify"
	"github.com/oklog/ulid/v2"
	"go.ntppool.org/common/logger"
)

// Handler is called with every successfully loaded version of the file.
// id identifies the evaluation in logs.
type Handler func(ctx context.Context, id ulid.ULID, f *File)

// Watcher reloads a trace file when it changes.
type Watcher struct {
	Path string

	// ReloadInterval forces a reload even without file events.
	// Zero means five minutes.
	ReloadInterval time.Duration

	// Debounce collapses bursts of events from a single write.
	// Zero means 100ms.
	Debounce time.Duration

	// StartupTimeout bounds how long Run waits for the file to appear.
	// Zero means wait until the context is done.
	StartupTimeout time.Duration
}

const (
	defaultReloadInterval = 5 * time.Minute
	defaultDebounce       = 100 * time.Millisecond
)

// Run loads the file once, then again on every change, calling fn each time
// the file decodes. Decode errors are logged and the watcher waits for the
// next change. Run returns when ctx is done, or with an error if the file
// never shows up within StartupTimeout.
func (w *Watcher) Run(ctx context.Context, fn Handler) error {
	log := logger.FromContext(ctx).WithGroup("tracefile-watcher")

	reloadInterval := w.ReloadInterval
	if reloadInterval <= 0 {
		reloadInterval = defaultReloadInterval
	}
	debounceInterval := w.Debounce
	if debounceInterval <= 0 {
		debounceInterval = defaultDebounce
	}

	if err := w.waitForFile(ctx); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		return err
	}

	dir, name := filepath.Dir(w.Path), filepath.Base(w.Path)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.WarnContext(ctx, "failed to create file watcher, falling back to timer-only reloading", "err", err)
		watcher = nil
	} else {
		err = watcher.Add(dir)
		if err != nil {
			log.WarnContext(ctx, "failed to watch trace directory, falling back to timer-only reloading", "dir", dir, "err", err)
			watcher.Close()
			watcher = nil
		} else {
			log.InfoContext(ctx, "watching trace directory for changes", "dir", dir, "file", name)
		}
	}
	defer func() {
		if watcher != nil {
			watcher.Close()
		}
	}()

	w.reload(ctx, fn)

	timer := time.NewTimer(reloadInterval)
	defer timer.Stop()

	var debounceTimer *time.Timer

	for {
		var events <-chan fsnotify.Event
		var errs <-chan error
		if watcher != nil {
			events, errs = watcher.Events, watcher.Errors
		}
		var debounceC <-chan time.Time
		if debounceTimer != nil {
			debounceC = debounceTimer.C
		}

		select {
		case <-debounceC:
			log.DebugContext(ctx, "debounce timer fired, triggering reload")
			debounceTimer = nil

		case event, ok := <-events:
			if !ok {
				log.WarnContext(ctx, "file watcher events channel closed")
				watcher = nil
				continue
			}
			base := filepath.Base(event.Name)
			if base != name && base != name+".tmp" {
				continue
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			log.DebugContext(ctx, "trace file changed", "event", event.String())
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.NewTimer(debounceInterval)
			continue

		case err, ok := <-errs:
			if !ok {
				log.WarnContext(ctx, "file watcher error channel closed")
				watcher = nil
				continue
			}
			log.WarnContext(ctx, "file watcher error", "err", err)
			continue

		case <-timer.C:
			log.DebugContext(ctx, "timer triggered reload")

		case <-ctx.Done():
			log.InfoContext(ctx, "trace watcher shutting down")
			return nil
		}

		w.reload(ctx, fn)

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(reloadInterval)
	}
}

func (w *Watcher) reload(ctx context.Context, fn Handler) {
	id := ulid.Make()
	log := logger.FromContext(ctx).With("evaluation", id.String())

	f, err := Load(ctx, w.Path)
	if err != nil {
		log.WarnContext(ctx, "could not load trace file", "path", w.Path, "err", err)
		return
	}
	log.DebugContext(ctx, "loaded trace file", "path", w.Path, "iterations", len(f.Trace))

	fn(logger.NewContext(ctx, log), id, f)
}

// waitForFile retries with exponential backoff until the file exists.
func (w *Watcher) waitForFile(ctx context.Context) error {
	log := logger.FromContext(ctx)

	expback := backoff.NewExponentialBackOff()
	expback.InitialInterval = 200 * time.Millisecond
	expback.MaxInterval = 10 * time.Second

	opts := []backoff.RetryOption{
		backoff.WithBackOff(expback),
		backoff.WithNotify(func(err error, next time.Duration) {
			log.InfoContext(ctx, "waiting for trace file", "path", w.Path, "retry", next, "err", err)
		}),
	}
	if w.StartupTimeout > 0 {
		opts = append(opts, backoff.WithMaxElapsedTime(w.StartupTimeout))
	} else {
		opts = append(opts, backoff.WithMaxElapsedTime(0))
	}

	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		_, err := os.Stat(w.Path)
		if err == nil {
			return struct{}{}, nil
		}
		if errors.Is(err, fs.ErrNotExist) {
			return struct{}{}, err
		}
		return struct{}{}, backoff.Permanent(err)
	}, opts...)
	return err
}
