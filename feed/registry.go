package feed

import "sync"

// Registry tracks one reply-feed handle per visible post. Sync reconciles the
// open set against the ids the view currently shows: new ids get a handle,
// vanished ids get theirs closed. A handle is never shared between ids, and
// every open has exactly one matching close.
type Registry struct {
	mu      sync.Mutex
	closed  bool
	handles map[string]*Handle
}

func NewRegistry() *Registry {
	return &Registry{handles: map[string]*Handle{}}
}

// Sync diffs the desired id set against the currently open handles, calling
// open for each new id and closing handles whose id is no longer desired.
// A closed registry refuses to open: the owning view is tearing down and a
// handle opened now would have nobody left to close it.
func (r *Registry) Sync(desired []string, open func(id string) *Handle) {
	want := make(map[string]bool, len(desired))
	for _, id := range desired {
		want[id] = true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return
	}

	for id, h := range r.handles {
		if !want[id] {
			h.Close()
			delete(r.handles, id)
		}
	}
	for id := range want {
		if _, ok := r.handles[id]; !ok {
			r.handles[id] = open(id)
		}
	}
}

// Close releases every open handle and marks the registry closed, so that a
// Sync racing with view teardown cannot open handles nothing will release.
func (r *Registry) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	for id, h := range r.handles {
		h.Close()
		delete(r.handles, id)
	}
}

// Len reports the number of open handles.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handles)
}
