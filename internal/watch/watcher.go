// Package watch turns filesystem notifications under a root directory into
// reconcile events.
//
// The Watcher registers every non-ignored directory below the root with
// fsnotify, follows directories as they are created, and passes raw events
// through a Coalescer before publishing them. File content changes are not
// reported.
package watch

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/danieljhkim/filescope/internal/clock"
	"github.com/danieljhkim/filescope/internal/reconcile"
)

// Options configures a Watcher.
type Options struct {
	// Ignore holds glob patterns for paths that are not watched.
	Ignore []string

	// Debounce is the coalescing window. Zero uses DefaultWindow.
	Debounce time.Duration

	// Clock drives the coalescer. Nil uses the real clock.
	Clock clock.Clock

	// Logger receives diagnostics. Nil discards them.
	Logger *slog.Logger
}

// Watcher publishes coalesced filesystem events for a directory tree.
type Watcher struct {
	root    string
	matcher *Matcher
	fsw     *fsnotify.Watcher
	co      *Coalescer
	logger  *slog.Logger

	events chan reconcile.Event
	errors chan error

	done      chan struct{}
	wg        sync.WaitGroup
	closeOnce sync.Once
}

// New starts watching root.
func New(root string, opts Options) (*Watcher, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve watch root: %w", err)
	}

	matcher, err := NewMatcher(opts.Ignore)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}

	w := &Watcher{
		root:    absRoot,
		matcher: matcher,
		fsw:     fsw,
		co:      NewCoalescer(opts.Debounce, opts.Clock),
		logger:  logger.With("component", "watch"),
		events:  make(chan reconcile.Event, 64),
		errors:  make(chan error, 8),
		done:    make(chan struct{}),
	}

	if _, err := w.addTree(absRoot); err != nil {
		_ = fsw.Close()
		return nil, err
	}

	w.wg.Add(1)
	go w.run()

	return w, nil
}

// Root returns the absolute watched directory.
func (w *Watcher) Root() string {
	return w.root
}

// Events returns the channel of coalesced events. It is closed by Close.
func (w *Watcher) Events() <-chan reconcile.Event {
	return w.events
}

// Errors returns the channel of watcher errors. It is closed by Close.
func (w *Watcher) Errors() <-chan error {
	return w.errors
}

// Close stops the watcher and closes both channels. Events still being
// coalesced are released first and remain readable from Events.
func (w *Watcher) Close() error {
	var err error
	w.closeOnce.Do(func() {
		close(w.done)
		err = w.fsw.Close()
		w.wg.Wait()
	})
	return err
}

// ignored reports whether path is excluded by the ignore patterns.
func (w *Watcher) ignored(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	return w.matcher.Match(rel)
}

// addTree registers dir and every non-ignored directory below it. It returns
// the paths found below dir so callers can report entries created before the
// watch was in place.
func (w *Watcher) addTree(dir string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}
			w.logger.Debug("skipping unreadable path", "path", path, "error", err)
			return nil
		}
		if path != dir && w.ignored(path) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path != dir {
			found = append(found, path)
		}
		if !d.IsDir() {
			return nil
		}
		if err := w.fsw.Add(path); err != nil {
			return fmt.Errorf("failed to watch %s: %w", path, err)
		}
		return nil
	})
	return found, err
}

func (w *Watcher) run() {
	defer w.wg.Done()
	defer close(w.errors)
	defer close(w.events)

	var unsent []reconcile.Event
	defer func() {
		w.release(append(unsent, w.co.Drain()...))
	}()

	timer := time.NewTimer(time.Hour)
	timer.Stop()
	defer timer.Stop()

	for {
		var tick <-chan time.Time
		if deadline, ok := w.co.NextDeadline(); ok {
			wait := time.Until(deadline)
			if wait < 0 {
				wait = 0
			}
			timer.Reset(wait)
			tick = timer.C
		}

		select {
		case <-w.done:
			return

		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.handle(ev)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			w.reportError(err)

		case <-tick:
		}

		if tick != nil && !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}

		ready := w.co.Flush()
		for i, ev := range ready {
			select {
			case w.events <- ev:
			case <-w.done:
				unsent = ready[i:]
				return
			}
		}
	}
}

// handle translates one fsnotify event into coalescer input.
func (w *Watcher) handle(ev fsnotify.Event) {
	path := filepath.Clean(ev.Name)
	if w.ignored(path) {
		return
	}

	if ev.Op&fsnotify.Create == fsnotify.Create {
		renamed := w.co.Push(reconcile.Event{Op: reconcile.OpCreate, Path: path})
		w.followDir(path, !renamed)
	}
	if ev.Op&fsnotify.Remove == fsnotify.Remove {
		_ = w.fsw.Remove(path)
		w.co.Push(reconcile.Event{Op: reconcile.OpDelete, Path: path})
	}
	if ev.Op&fsnotify.Rename == fsnotify.Rename {
		_ = w.fsw.Remove(path)
		w.co.Push(reconcile.Event{Op: reconcile.OpRename, OldPath: path})
	}
}

// followDir starts watching a newly created directory. When report is set it
// also reports whatever was created inside it before the watch was
// registered. A directory that arrived by rename brings existing entries,
// not new ones, so its contents are not reported.
func (w *Watcher) followDir(path string, report bool) {
	found, err := w.addTree(path)
	if err != nil {
		var pathErr *fs.PathError
		if errors.As(err, &pathErr) {
			// not a directory, or already gone
			return
		}
		w.reportError(err)
		return
	}
	if !report {
		return
	}
	for _, p := range found {
		w.co.Push(reconcile.Event{Op: reconcile.OpCreate, Path: p})
	}
}

// release hands events still held at shutdown to the events channel, so a
// reader draining it after Close sees them. Events that do not fit in the
// buffer are dropped.
func (w *Watcher) release(events []reconcile.Event) {
	for _, ev := range events {
		select {
		case w.events <- ev:
		default:
			w.logger.Warn("dropping event at shutdown", "op", ev.Op.String(), "path", ev.Path)
		}
	}
}

func (w *Watcher) reportError(err error) {
	w.logger.Warn("watch error", "error", err)
	select {
	case w.errors <- err:
	default:
	}
}
