package border

import (
	"sort"
	"sync"
)

// Registry maps tracked windows to their live border actors. At most one
// actor exists per window; actors remove themselves when they terminate.
type Registry struct {
	mu      sync.Mutex
	borders map[WindowID]*Border
}

func NewRegistry() *Registry {
	return &Registry{borders: make(map[WindowID]*Border)}
}

// UpsertIfAbsent returns the border for id, creating it with newFn when
// none exists. newFn runs under the registry lock and must only allocate;
// the caller starts the returned border when created is true.
func (r *Registry) UpsertIfAbsent(id WindowID, newFn func() *Border) (b *Border, created bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.borders[id]; ok {
		return existing, false
	}
	b = newFn()
	b.registry = r
	r.borders[id] = b
	return b, true
}

// Lookup returns the live border for id.
func (r *Registry) Lookup(id WindowID) (*Border, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.borders[id]
	return b, ok
}

// Remove drops the entry for id regardless of which actor owns it.
func (r *Registry) Remove(id WindowID) (*Border, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.borders[id]
	if ok {
		delete(r.borders, id)
	}
	return b, ok
}

// Evict sends Destroy to b and drops its entry at once, so the window can
// get a new border before the old actor has finished tearing down.
func (r *Registry) Evict(b *Border) {
	b.Send(Destroy())
	r.release(b.id, b)
}

// release removes id only while it still maps to b, so a late teardown
// never evicts a newer actor for the same window.
func (r *Registry) release(id WindowID, b *Border) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.borders[id] == b {
		delete(r.borders, id)
	}
}

// Len returns the number of live borders.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.borders)
}

// Borders returns the live borders ordered by window id.
func (r *Registry) Borders() []*Border {
	r.mu.Lock()
	out := make([]*Border, 0, len(r.borders))
	for _, b := range r.borders {
		out = append(out, b)
	}
	r.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].id < out[j].id })
	return out
}

// Snapshots returns the published state of every live border.
func (r *Registry) Snapshots() []Snapshot {
	borders := r.Borders()
	out := make([]Snapshot, len(borders))
	for i, b := range borders {
		out[i] = b.Snapshot()
	}
	return out
}

// Broadcast sends c to every live border.
func (r *Registry) Broadcast(c Command) {
	for _, b := range r.Borders() {
		b.Send(c)
	}
}

// EvictAll evicts every live border and returns them.
func (r *Registry) EvictAll() []*Border {
	borders := r.Borders()
	for _, b := range borders {
		r.Evict(b)
	}
	return borders
}
