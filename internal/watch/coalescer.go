package watch

import (
	"path/filepath"
	"time"

	"github.com/danieljhkim/filescope/internal/clock"
	"github.com/danieljhkim/filescope/internal/reconcile"
	"github.com/danieljhkim/filescope/internal/scope"
)

// DefaultWindow is the debounce window used when none is configured.
const DefaultWindow = 100 * time.Millisecond

type pending struct {
	ev reconcile.Event
	at time.Time
}

// half reports whether the entry is the source side of a rename whose
// destination has not been seen yet.
func (p *pending) half() bool {
	return p.ev.Op == reconcile.OpRename && p.ev.Path == ""
}

// subject is the path an entry is about: the destination for renames.
func (p *pending) subject() string {
	if p.ev.Path != "" {
		return p.ev.Path
	}
	return p.ev.OldPath
}

// Coalescer holds raw filesystem events for a short window so that rapid
// sequences on the same path settle before they reach the reconciler.
//
// Rules, applied as events are pushed:
//   - create then delete of the same path cancel out
//   - a repeat of the latest pending event for a path is dropped
//   - a create pairs with a rename source still inside the window into one
//     rename: any source with the same base name, otherwise the newest
//     pending entry when it is a source in the same directory
//
// Flush releases events older than the window in arrival order. A rename
// source still unpaired at that point is released as a delete, which is how
// a move out of the watched tree is reported.
//
// A Coalescer is not safe for concurrent use.
type Coalescer struct {
	window  time.Duration
	clock   clock.Clock
	pending []*pending
}

// NewCoalescer creates a Coalescer. A non-positive window uses DefaultWindow.
func NewCoalescer(window time.Duration, clk clock.Clock) *Coalescer {
	if window <= 0 {
		window = DefaultWindow
	}
	if clk == nil {
		clk = &clock.RealClock{}
	}
	return &Coalescer{window: window, clock: clk}
}

// Len returns the number of held events.
func (c *Coalescer) Len() int {
	return len(c.pending)
}

// Push records an event and reports whether it completed a pending rename.
// A rename source is pushed as Event{Op: OpRename, OldPath: old} with Path
// left empty.
func (c *Coalescer) Push(ev reconcile.Event) bool {
	ev.Path = scope.CleanPath(ev.Path)
	ev.OldPath = scope.CleanPath(ev.OldPath)
	now := c.clock.Now()
	entry := &pending{ev: ev, at: now}

	switch {
	case ev.Op == reconcile.OpCreate:
		if c.pairRename(ev.Path, now) {
			return true
		}
	case ev.Op == reconcile.OpDelete:
		if last := c.last(ev.Path); last >= 0 && c.pending[last].ev.Op == reconcile.OpCreate {
			c.pending = append(c.pending[:last], c.pending[last+1:]...)
			return false
		}
	}

	if last := c.last(entry.subject()); last >= 0 && c.pending[last].ev == ev {
		return false
	}
	c.pending = append(c.pending, entry)
	return false
}

// pairRename turns a pending rename source into a rename to path.
func (c *Coalescer) pairRename(path string, now time.Time) bool {
	open := func(p *pending) bool {
		return p.half() && now.Sub(p.at) < c.window
	}

	match := -1
	for i, p := range c.pending {
		if open(p) && scope.SamePath(filepath.Base(p.ev.OldPath), filepath.Base(path)) {
			match = i
			break
		}
	}
	if match < 0 && len(c.pending) > 0 {
		newest := len(c.pending) - 1
		p := c.pending[newest]
		if open(p) && scope.SamePath(filepath.Dir(p.ev.OldPath), filepath.Dir(path)) {
			match = newest
		}
	}
	if match < 0 {
		return false
	}

	c.pending[match].ev.Path = path
	return true
}

// last returns the index of the newest pending entry about path, or -1.
func (c *Coalescer) last(path string) int {
	for i := len(c.pending) - 1; i >= 0; i-- {
		if scope.SamePath(c.pending[i].subject(), path) {
			return i
		}
	}
	return -1
}

// Flush returns the events whose window has elapsed, oldest first.
func (c *Coalescer) Flush() []reconcile.Event {
	now := c.clock.Now()

	var out []reconcile.Event
	n := 0
	for _, p := range c.pending {
		if now.Sub(p.at) < c.window {
			break
		}
		ev := p.ev
		if p.half() {
			ev = reconcile.Event{Op: reconcile.OpDelete, Path: ev.OldPath}
		}
		out = append(out, ev)
		n++
	}
	c.pending = c.pending[n:]
	return out
}

// Drain returns every held event regardless of age.
func (c *Coalescer) Drain() []reconcile.Event {
	out := make([]reconcile.Event, 0, len(c.pending))
	for _, p := range c.pending {
		ev := p.ev
		if p.half() {
			ev = reconcile.Event{Op: reconcile.OpDelete, Path: ev.OldPath}
		}
		out = append(out, ev)
	}
	c.pending = nil
	return out
}

// NextDeadline reports when the oldest held event becomes due.
func (c *Coalescer) NextDeadline() (time.Time, bool) {
	if len(c.pending) == 0 {
		return time.Time{}, false
	}
	return c.pending[0].at.Add(c.window), true
}
