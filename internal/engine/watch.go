package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/filescope/internal/reconcile"
	"github.com/danieljhkim/filescope/internal/watch"
)

// Watch keeps scope membership in sync with filesystem changes under the
// workspace root until ctx is cancelled. onChange, when non-nil, is called
// after every membership change.
func (e *Engine) Watch(ctx context.Context, onChange func()) error {
	w, err := watch.New(e.root, watch.Options{
		Ignore:   e.cfg.Watch.Ignore,
		Debounce: e.cfg.Watch.Debounce(),
		Clock:    e.clock,
		Logger:   e.logger,
	})
	if err != nil {
		return fmt.Errorf("failed to start watcher: %w", err)
	}
	defer w.Close()

	if onChange != nil {
		unsubscribe := e.registry.Subscribe(onChange)
		defer unsubscribe()
	}

	e.logger.Info("watching workspace", "root", w.Root())

	for {
		select {
		case <-ctx.Done():
			_ = w.Close()
			for ev := range w.Events() {
				e.apply(ev)
			}
			return nil

		case ev, ok := <-w.Events():
			if !ok {
				return nil
			}
			e.apply(ev)

		case err, ok := <-w.Errors():
			if !ok {
				return nil
			}
			e.logger.Warn("watcher error", "error", err)
		}
	}
}

func (e *Engine) apply(ev reconcile.Event) {
	e.logger.Debug("filesystem event", "op", ev.Op.String(), "path", ev.Path, "old_path", ev.OldPath)
	e.reconciler.Apply(ev)
}
