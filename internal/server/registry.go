package server

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/abhisek/wondershelf/internal/story"
)

// entry owns one flow. Its mutex is held for the whole request, including
// any generator call, so a second request for the same flow is turned away
// instead of queued. Readers use snap, which is republished after every
// change and never waits on mu.
type entry struct {
	mu   sync.Mutex
	flow *story.Flow
	snap atomic.Pointer[story.Snapshot]
}

// publish stores the current snapshot and returns it. Callers hold mu.
func (e *entry) publish() story.Snapshot {
	s := e.flow.Snapshot()
	e.snap.Store(&s)
	return s
}

func (e *entry) snapshot() story.Snapshot {
	return *e.snap.Load()
}

// Registry keeps the live story flows of this process.
type Registry struct {
	mu    sync.RWMutex
	flows map[uuid.UUID]*entry
}

func NewRegistry() *Registry {
	return &Registry{flows: make(map[uuid.UUID]*entry)}
}

func (r *Registry) add(f *story.Flow) *entry {
	e := &entry{flow: f}
	e.publish()
	r.mu.Lock()
	r.flows[f.ID()] = e
	r.mu.Unlock()
	return e
}

func (r *Registry) get(id uuid.UUID) (*entry, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.flows[id]
	return e, ok
}

func (r *Registry) remove(id uuid.UUID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.flows[id]
	delete(r.flows, id)
	return ok
}

// Len returns the number of live flows.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.flows)
}
