package feed

import (
	"context"
	"sort"
	"sync"
	"time"
)

// State is the lifecycle state of one live feed subscription.
type State int

const (
	StateConnecting State = iota
	StateLive
	StateError
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateLive:
		return "live"
	case StateError:
		return "error"
	case StateClosed:
		return "closed"
	}
	return "unknown"
}

// Item is one entry of a feed snapshot. CreatedAt is nil while the server
// timestamp is still pending.
type Item struct {
	ID        string     `json:"id"`
	Text      string     `json:"text"`
	CreatedAt *time.Time `json:"created_at"`
}

// Source loads a complete ordered snapshot of a collection.
type Source interface {
	Load(ctx context.Context) ([]Item, error)
}

// SourceFunc adapts a plain function to the Source interface.
type SourceFunc func(ctx context.Context) ([]Item, error)

func (f SourceFunc) Load(ctx context.Context) ([]Item, error) { return f(ctx) }

// Options configures one live subscription.
type Options struct {
	// Source loads the full snapshot, once at open and once per notify tick.
	Source Source
	// Notify delivers change ticks. A closed channel ends the feed loop.
	Notify <-chan struct{}
	// OnSnapshot runs after each accepted snapshot. May be nil.
	OnSnapshot func([]Item)
	// OnError runs once when the feed enters StateError. May be nil.
	OnError func(error)
	// Release runs exactly once when the handle is closed, for tearing down
	// whatever backs Notify. May be nil.
	Release func()
}

// Handle is a cancellable reference to an active live subscription.
//
// Every delivered snapshot wholly replaces the in-memory item slice; the
// handle never merges or patches. A load failure moves the handle to
// StateError, freezing the last-known items with no automatic retry: the
// owner must open a fresh handle. Close is idempotent, and any snapshot still
// in flight when Close runs is discarded without touching observable state.
type Handle struct {
	mu    sync.Mutex
	state State
	items []Item
	err   error

	onSnapshot func([]Item)
	onError    func(error)

	cancel  context.CancelFunc
	release sync.Once
	opts    Options
}

// Open starts a live subscription: one initial load, then one full reload per
// tick on Notify.
func Open(ctx context.Context, opts Options) *Handle {
	ctx, cancel := context.WithCancel(ctx)
	h := &Handle{
		state:      StateConnecting,
		onSnapshot: opts.OnSnapshot,
		onError:    opts.OnError,
		cancel:     cancel,
		opts:       opts,
	}
	go h.run(ctx)
	return h
}

func (h *Handle) run(ctx context.Context) {
	// The notify resources must not outlive the loop consuming them, whether
	// it ends by Close, context cancellation or a terminal load error.
	if h.opts.Release != nil {
		defer h.release.Do(h.opts.Release)
	}

	if !h.reload(ctx) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-h.opts.Notify:
			if !ok {
				return
			}
			if !h.reload(ctx) {
				return
			}
		}
	}
}

func (h *Handle) reload(ctx context.Context) bool {
	items, err := h.opts.Source.Load(ctx)
	return h.apply(items, err)
}

// apply installs one snapshot (or an error) and reports whether the handle
// should keep consuming notifications. A closed or errored handle ignores
// everything that arrives afterwards.
func (h *Handle) apply(items []Item, err error) bool {
	h.mu.Lock()
	if h.state == StateClosed || h.state == StateError {
		h.mu.Unlock()
		return false
	}
	if err != nil {
		h.state = StateError
		h.err = err
		cb := h.onError
		h.mu.Unlock()
		if cb != nil {
			cb(err)
		}
		return false
	}
	sortByCreation(items)
	h.state = StateLive
	h.items = items
	cb := h.onSnapshot
	h.mu.Unlock()

	if cb != nil {
		cb(items)
	}
	return true
}

// Close releases the subscription. Safe to call any number of times.
func (h *Handle) Close() {
	h.cancel()
	h.mu.Lock()
	h.state = StateClosed
	h.mu.Unlock()
	if h.opts.Release != nil {
		h.release.Do(h.opts.Release)
	}
}

func (h *Handle) State() State {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.state
}

// Items returns a copy of the last delivered snapshot. When the handle is in
// StateError this is the last-known state before the failure.
func (h *Handle) Items() []Item {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Item, len(h.items))
	copy(out, h.items)
	return out
}

// Err returns the failure that moved the handle to StateError, if any.
func (h *Handle) Err() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.err
}

// sortByCreation orders items ascending by creation time. Items whose
// timestamp is still pending sort as most recent. The sort is stable so that
// store order is preserved among equal timestamps.
func sortByCreation(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i].CreatedAt, items[j].CreatedAt
		switch {
		case a == nil:
			return false
		case b == nil:
			return true
		default:
			return a.Before(*b)
		}
	})
}
