package attach

import (
	"sync"

	"github.com/slotkit/slotkit/slot"
)

// Store is the per-owner attachment surface: one mutex, one slot.List, one
// shared registry. All methods are safe for concurrent use; the Store's own
// mutex is the external lock the List contract requires.
type Store struct {
	reg *slot.Allocator

	mu     sync.Mutex
	data   slot.List
	closed bool
}

// NewStore creates an empty store whose slot IDs come from reg.
func NewStore(reg *slot.Allocator) *Store {
	return &Store{reg: reg}
}

// Set attaches v under id, replacing anything previously attached there. The
// replaced payload's destructor, if any, runs after the Store's lock has been
// dropped, so it may call back into this Store freely.
//
// id must be currently allocated in the store's registry; anything else is a
// caller bug and panics.
func (s *Store) Set(id int, v any, destroy slot.DestroyFunc) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrStoreClosed
	}
	old := s.data.Set(s.reg, id, v, destroy)
	s.mu.Unlock()

	old.Release()
	return nil
}

// Get returns the payload attached under id, or nil if nothing is attached
// on this store (or the store is closed). id must be currently allocated in
// the registry.
func (s *Store) Get(id int) any {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	return s.data.Get(s.reg, id)
}

// Close tears the store down, firing every attached payload's destructor in
// increasing slot order. The destructors run after the Store's lock has been
// dropped. Close is idempotent; Set after Close reports ErrStoreClosed.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	list := s.data
	s.data = slot.List{}
	s.mu.Unlock()

	list.Destroy()
}
