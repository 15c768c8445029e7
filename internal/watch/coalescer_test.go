package watch

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/danieljhkim/filescope/internal/clock"
	"github.com/danieljhkim/filescope/internal/reconcile"
)

var epoch = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

func create(p string) reconcile.Event { return reconcile.Event{Op: reconcile.OpCreate, Path: p} }
func del(p string) reconcile.Event { return reconcile.Event{Op: reconcile.OpDelete, Path: p} }
func renameFrom(p string) reconcile.Event {
	return reconcile.Event{Op: reconcile.OpRename, OldPath: p}
}
func rename(oldPath, newPath string) reconcile.Event {
	return reconcile.Event{Op: reconcile.OpRename, OldPath: oldPath, Path: newPath}
}

func TestCoalescer(t *testing.T) {
	tests := []struct {
		name string
		push []reconcile.Event
		want []reconcile.Event
	}{
		{
			name: "create then delete cancels out",
			push: []reconcile.Event{create("/p/a"), del("/p/a")},
			want: nil,
		},
		{
			name: "delete then create keeps both",
			push: []reconcile.Event{del("/p/a"), create("/p/a")},
			want: []reconcile.Event{del("/p/a"), create("/p/a")},
		},
		{
			name: "duplicate creates collapse",
			push: []reconcile.Event{create("/p/a"), create("/p/a"), create("/p/b")},
			want: []reconcile.Event{create("/p/a"), create("/p/b")},
		},
		{
			name: "duplicate deletes collapse",
			push: []reconcile.Event{del("/p/a"), del("/p/a")},
			want: []reconcile.Event{del("/p/a")},
		},
		{
			name: "rename source pairs with next create",
			push: []reconcile.Event{renameFrom("/p/old"), create("/p/new")},
			want: []reconcile.Event{rename("/p/old", "/p/new")},
		},
		{
			name: "rename pairing prefers same base name",
			push: []reconcile.Event{
				renameFrom("/p/a.txt"),
				renameFrom("/p/b.txt"),
				create("/q/b.txt"),
				create("/q/a.txt"),
			},
			want: []reconcile.Event{rename("/p/a.txt", "/q/a.txt"), rename("/p/b.txt", "/q/b.txt")},
		},
		{
			name: "move into another directory keeps base name",
			push: []reconcile.Event{renameFrom("/p/a.txt"), create("/q/a.txt")},
			want: []reconcile.Event{rename("/p/a.txt", "/q/a.txt")},
		},
		{
			name: "unrelated create elsewhere does not pair",
			push: []reconcile.Event{renameFrom("/p/a.txt"), create("/q/other.log")},
			want: []reconcile.Event{del("/p/a.txt"), create("/q/other.log")},
		},
		{
			name: "same directory pairs only with the newest source",
			push: []reconcile.Event{renameFrom("/p/a.txt"), create("/r/x"), create("/p/b.txt")},
			want: []reconcile.Event{del("/p/a.txt"), create("/r/x"), create("/p/b.txt")},
		},
		{
			name: "unpaired rename source becomes delete",
			push: []reconcile.Event{renameFrom("/p/gone")},
			want: []reconcile.Event{del("/p/gone")},
		},
		{
			name: "arrival order preserved",
			push: []reconcile.Event{create("/p/1"), del("/p/2"), create("/p/3")},
			want: []reconcile.Event{create("/p/1"), del("/p/2"), create("/p/3")},
		},
		{
			name: "complete rename passes through",
			push: []reconcile.Event{rename("/p/x", "/p/y")},
			want: []reconcile.Event{rename("/p/x", "/p/y")},
		},
		{
			name: "paths are cleaned",
			push: []reconcile.Event{create("/p/./a/"), del("/p/a")},
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clk := clock.NewFakeClock(epoch)
			c := NewCoalescer(50*time.Millisecond, clk)

			for _, ev := range tt.push {
				c.Push(ev)
				clk.Advance(time.Millisecond)
			}

			if got := c.Flush(); len(got) != 0 {
				t.Fatalf("Flush() before window elapsed = %v, want nothing", got)
			}

			clk.Advance(time.Second)
			if diff := cmp.Diff(tt.want, c.Flush()); diff != "" {
				t.Errorf("Flush() mismatch (-want +got):\n%s", diff)
			}
			if c.Len() != 0 {
				t.Errorf("Len() = %d after full flush", c.Len())
			}
		})
	}
}

func TestCoalescer_ReleasesOnlyExpired(t *testing.T) {
	clk := clock.NewFakeClock(epoch)
	c := NewCoalescer(100*time.Millisecond, clk)

	c.Push(create("/p/a"))
	clk.Advance(60 * time.Millisecond)
	c.Push(create("/p/b"))

	deadline, ok := c.NextDeadline()
	if !ok || !deadline.Equal(epoch.Add(100*time.Millisecond)) {
		t.Errorf("NextDeadline() = %v, %v", deadline, ok)
	}

	clk.Advance(40 * time.Millisecond)
	if diff := cmp.Diff([]reconcile.Event{create("/p/a")}, c.Flush()); diff != "" {
		t.Errorf("first Flush() mismatch (-want +got):\n%s", diff)
	}

	// /p/a was already released, so this delete is not cancelled against it
	c.Push(del("/p/a"))

	clk.Advance(100 * time.Millisecond)
	want := []reconcile.Event{create("/p/b"), del("/p/a")}
	if diff := cmp.Diff(want, c.Flush()); diff != "" {
		t.Errorf("second Flush() mismatch (-want +got):\n%s", diff)
	}

	if _, ok := c.NextDeadline(); ok {
		t.Error("NextDeadline() should report nothing pending")
	}
}

func TestCoalescer_RenameAfterWindowIsDelete(t *testing.T) {
	clk := clock.NewFakeClock(epoch)
	c := NewCoalescer(0, clk)

	c.Push(renameFrom("/p/old"))
	clk.Advance(DefaultWindow)
	got := c.Flush()
	c.Push(create("/p/new"))
	clk.Advance(DefaultWindow)
	got = append(got, c.Flush()...)

	want := []reconcile.Event{del("/p/old"), create("/p/new")}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestCoalescer_ExpiredSourceDoesNotPair(t *testing.T) {
	clk := clock.NewFakeClock(epoch)
	c := NewCoalescer(50*time.Millisecond, clk)

	c.Push(renameFrom("/p/a.txt"))
	clk.Advance(50 * time.Millisecond)
	if c.Push(create("/q/a.txt")) {
		t.Error("Push() paired with a source outside the window")
	}

	clk.Advance(time.Second)
	want := []reconcile.Event{del("/p/a.txt"), create("/q/a.txt")}
	if diff := cmp.Diff(want, c.Flush()); diff != "" {
		t.Errorf("Flush() mismatch (-want +got):\n%s", diff)
	}
}

func TestCoalescer_PushReportsPairing(t *testing.T) {
	c := NewCoalescer(time.Hour, clock.NewFakeClock(epoch))

	if c.Push(renameFrom("/p/src")) {
		t.Error("a rename source alone should not report pairing")
	}
	if !c.Push(create("/p/lib")) {
		t.Error("create completing a rename should report pairing")
	}
	if c.Push(create("/p/other")) {
		t.Error("plain create should not report pairing")
	}
}

func TestCoalescer_Drain(t *testing.T) {
	clk := clock.NewFakeClock(epoch)
	c := NewCoalescer(time.Hour, clk)

	c.Push(create("/p/a"))
	c.Push(renameFrom("/p/b"))

	want := []reconcile.Event{create("/p/a"), del("/p/b")}
	if diff := cmp.Diff(want, c.Drain()); diff != "" {
		t.Errorf("Drain() mismatch (-want +got):\n%s", diff)
	}
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Drain", c.Len())
	}
}
