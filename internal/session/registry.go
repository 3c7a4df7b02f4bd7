package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// Registry holds the live browser sessions in memory, keyed by an opaque id
// carried in the session cookie. Sessions expire after the configured TTL of
// inactivity and are never persisted.
type Registry struct {
	ttl time.Duration
	now func() time.Time

	mu       sync.Mutex
	sessions map[string]*registryEntry
}

type registryEntry struct {
	state     State
	expiresAt time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	return &Registry{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*registryEntry),
	}
}

// Create registers a fresh session and returns its id and initial state.
func (r *Registry) Create() (string, State) {
	id := uuid.NewString()
	st := New()

	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune()
	r.sessions[id] = &registryEntry{state: st, expiresAt: r.now().Add(r.ttl)}
	return id, st
}

// Get returns the current state of a session, if it exists and has not
// expired.
func (r *Registry) Get(id string) (State, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return State{}, false
	}
	if r.now().After(e.expiresAt) {
		delete(r.sessions, id)
		return State{}, false
	}
	return e.state, true
}

// Put stores the next state for a session and refreshes its expiry. Unknown
// ids are ignored; the caller's cookie has been superseded.
func (r *Registry) Put(id string, st State) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e, ok := r.sessions[id]
	if !ok {
		return
	}
	e.state = st
	e.expiresAt = r.now().Add(r.ttl)
}

func (r *Registry) Delete(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
}

// prune drops expired sessions. Caller holds r.mu.
func (r *Registry) prune() {
	now := r.now()
	for id, e := range r.sessions {
		if now.After(e.expiresAt) {
			delete(r.sessions, id)
		}
	}
}
