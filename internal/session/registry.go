package session

import (
	"sync"

	"github.com/google/uuid"
)

// Registry guarda las sesiones vivas por ID.
type Registry struct {
	mu   sync.RWMutex
	byID map[string]*Session

	loader Loader
	opts   Options
}

func NewRegistry(loader Loader, opts Options) *Registry {
	return &Registry{
		byID:   make(map[string]*Session),
		loader: loader,
		opts:   opts,
	}
}

func (r *Registry) Create() (string, *Session) {
	id := uuid.NewString()
	s := New(r.loader, r.opts)

	r.mu.Lock()
	r.byID[id] = s
	r.mu.Unlock()
	return id, s
}

func (r *Registry) Get(id string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byID[id]
	return s, ok
}

func (r *Registry) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return false
	}
	delete(r.byID, id)
	return true
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}
