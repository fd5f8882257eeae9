package attach

import (
	"sync"

	"github.com/slotkit/slotkit/slot"
)

// Key is one subsystem's cached slot ID. The ID is allocated from the
// registry on first use and kept for the subsystem's lifetime, so the
// allocator is only ever consulted once per kind of attached data.
//
// ID may be called from any goroutine. Release belongs to the subsystem's
// teardown path and must not race with ID.
type Key struct {
	reg *slot.Allocator

	once     sync.Once
	id       int
	err      error
	released bool
}

// NewKey binds a key to the registry it will allocate from.
func NewKey(reg *slot.Allocator) *Key {
	return &Key{reg: reg, id: -1}
}

// ID returns the key's slot ID, allocating it on first call. Every later
// call returns the same ID. After Release it returns ErrKeyReleased.
func (k *Key) ID() (int, error) {
	k.once.Do(func() {
		k.id, k.err = k.reg.Alloc()
	})
	if k.released {
		return -1, ErrKeyReleased
	}
	return k.id, k.err
}

// Release returns the key's slot ID to the registry. The caller must ensure
// no Store still holds data under the ID first; the registry cannot detect
// that (see slot.Allocator). Releasing a key that never allocated, or
// releasing twice, is a no-op.
func (k *Key) Release() {
	// Fire the Once so a concurrent-free ID() cannot allocate afterwards.
	k.once.Do(func() {
		k.id, k.err = -1, ErrKeyReleased
	})
	if k.released || k.err != nil {
		return
	}
	k.reg.Free(k.id)
	k.id = -1
	k.released = true
}
