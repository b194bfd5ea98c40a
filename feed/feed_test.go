package feed

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func ts(sec int) *time.Time {
	t := time.Date(2024, 3, 1, 12, 0, sec, 0, time.UTC)
	return &t
}

// liveHandle builds a handle as if Open had completed its initial load,
// without the feed goroutine, so snapshot delivery can be driven directly.
func liveHandle() *Handle {
	return &Handle{state: StateConnecting, cancel: func() {}}
}

func TestSortByCreation(t *testing.T) {
	t.Run("ascending with pending timestamps last", func(t *testing.T) {
		t.Parallel()
		items := []Item{
			{ID: "pending", CreatedAt: nil},
			{ID: "b", CreatedAt: ts(2)},
			{ID: "a", CreatedAt: ts(1)},
		}
		sortByCreation(items)

		want := []string{"a", "b", "pending"}
		for i, id := range want {
			if items[i].ID != id {
				t.Fatalf("order[%d] = %s, want %s", i, items[i].ID, id)
			}
		}
	})

	t.Run("stable for equal and all-pending timestamps", func(t *testing.T) {
		t.Parallel()
		items := []Item{
			{ID: "x", CreatedAt: nil},
			{ID: "y", CreatedAt: nil},
		}
		sortByCreation(items)
		if items[0].ID != "x" || items[1].ID != "y" {
			t.Errorf("pending items reordered: %s, %s", items[0].ID, items[1].ID)
		}
	})
}

func TestHandle_Apply(t *testing.T) {
	t.Run("snapshot wholly replaces prior items", func(t *testing.T) {
		t.Parallel()
		h := liveHandle()

		h.apply([]Item{{ID: "a", Text: "hi", CreatedAt: ts(1)}}, nil)
		if h.State() != StateLive {
			t.Fatalf("state = %s, want live", h.State())
		}

		h.apply([]Item{
			{ID: "b", Text: "yo", CreatedAt: ts(2)},
			{ID: "a", Text: "hi", CreatedAt: ts(1)},
		}, nil)

		items := h.Items()
		if len(items) != 2 || items[0].ID != "a" || items[1].ID != "b" {
			t.Fatalf("items = %+v, want [a b]", items)
		}
	})

	t.Run("error freezes last-known items and is terminal", func(t *testing.T) {
		t.Parallel()
		var reported []error
		h := liveHandle()
		h.onError = func(err error) { reported = append(reported, err) }

		h.apply([]Item{{ID: "a", CreatedAt: ts(1)}}, nil)
		if ok := h.apply(nil, errors.New("stream broke")); ok {
			t.Fatal("apply(err) should stop the feed loop")
		}

		if h.State() != StateError || h.Err() == nil {
			t.Fatalf("state=%s err=%v", h.State(), h.Err())
		}
		if items := h.Items(); len(items) != 1 || items[0].ID != "a" {
			t.Fatalf("frozen items = %+v", items)
		}
		if len(reported) != 1 {
			t.Fatalf("OnError called %d times, want 1", len(reported))
		}

		// No retry, no further mutation
		h.apply([]Item{{ID: "b", CreatedAt: ts(2)}}, nil)
		if items := h.Items(); len(items) != 1 || items[0].ID != "a" {
			t.Errorf("errored handle accepted a snapshot: %+v", items)
		}
	})

	t.Run("late snapshot after close is a no-op", func(t *testing.T) {
		t.Parallel()
		h := liveHandle()
		h.apply([]Item{{ID: "a", CreatedAt: ts(1)}}, nil)

		h.Close()
		h.Close() // double close must be a no-op too

		if ok := h.apply([]Item{{ID: "b", CreatedAt: ts(2)}}, nil); ok {
			t.Fatal("apply() accepted a snapshot after close")
		}
		if h.State() != StateClosed {
			t.Fatalf("state = %s, want closed", h.State())
		}
		if items := h.Items(); len(items) != 1 || items[0].ID != "a" {
			t.Errorf("closed handle mutated: %+v", items)
		}
	})
}

func TestOpen(t *testing.T) {
	t.Run("initial load then reload per tick", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		current := []Item{{ID: "a", Text: "hi", CreatedAt: ts(1)}}
		src := SourceFunc(func(ctx context.Context) ([]Item, error) {
			mu.Lock()
			defer mu.Unlock()
			out := make([]Item, len(current))
			copy(out, current)
			return out, nil
		})

		notify := make(chan struct{})
		snapshots := make(chan []Item, 4)
		h := Open(context.Background(), Options{
			Source:     src,
			Notify:     notify,
			OnSnapshot: func(items []Item) { snapshots <- items },
		})
		defer h.Close()

		first := <-snapshots
		if len(first) != 1 || first[0].ID != "a" {
			t.Fatalf("first snapshot = %+v", first)
		}

		mu.Lock()
		current = append(current, Item{ID: "b", Text: "yo", CreatedAt: ts(2)})
		mu.Unlock()
		notify <- struct{}{}

		second := <-snapshots
		if len(second) != 2 || second[0].ID != "a" || second[1].ID != "b" {
			t.Fatalf("second snapshot = %+v, want [a b]", second)
		}
	})

	t.Run("release runs exactly once on close", func(t *testing.T) {
		t.Parallel()
		released := 0
		h := Open(context.Background(), Options{
			Source:  SourceFunc(func(ctx context.Context) ([]Item, error) { return nil, nil }),
			Notify:  make(chan struct{}),
			Release: func() { released++ },
		})
		h.Close()
		h.Close()
		if released != 1 {
			t.Errorf("release ran %d times, want 1", released)
		}
	})

	t.Run("release runs when the context is cancelled", func(t *testing.T) {
		t.Parallel()
		released := make(chan struct{})
		ctx, cancel := context.WithCancel(context.Background())
		Open(ctx, Options{
			Source:  SourceFunc(func(ctx context.Context) ([]Item, error) { return nil, nil }),
			Notify:  make(chan struct{}),
			Release: func() { close(released) },
		})

		cancel()
		select {
		case <-released:
		case <-time.After(2 * time.Second):
			t.Fatal("release did not run after context cancellation")
		}
	})

	t.Run("failed initial load lands in error state and releases", func(t *testing.T) {
		t.Parallel()
		errs := make(chan error, 1)
		released := make(chan struct{})
		h := Open(context.Background(), Options{
			Source:  SourceFunc(func(ctx context.Context) ([]Item, error) { return nil, errors.New("no store") }),
			Notify:  make(chan struct{}),
			OnError: func(err error) { errs <- err },
			Release: func() { close(released) },
		})
		defer h.Close()

		if err := <-errs; err == nil {
			t.Fatal("expected load error")
		}
		if h.State() != StateError {
			t.Errorf("state = %s, want error", h.State())
		}
		select {
		case <-released:
		case <-time.After(2 * time.Second):
			t.Fatal("release did not run after terminal load error")
		}
	})
}
