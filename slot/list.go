package slot

// DestroyFunc releases a payload previously stored in a List.
type DestroyFunc func(payload any)

// Entry is one (payload, destructor) pair. List.Set hands the previous entry
// back instead of destroying it, so the caller decides when and where the old
// payload is released - typically after dropping whatever lock it was holding
// around the Set call.
type Entry struct {
	Payload any

	destroy DestroyFunc
}

// Release invokes the entry's destructor with its payload. No-op when the
// entry has no destructor (including the zero Entry).
func (e Entry) Release() {
	if e.destroy != nil {
		e.destroy(e.Payload)
	}
}

// IsZero reports whether the entry holds neither a payload nor a destructor,
// i.e. nothing was ever stored under its slot.
func (e Entry) IsZero() bool {
	return e.Payload == nil && e.destroy == nil
}

// List is a per-owner container mapping slot IDs to stored payloads. The zero
// value is ready to use. Its length is the high-water mark of the largest ID
// ever set on this particular instance; entries below the mark that were
// never set read as nil.
//
// A List performs no locking of its own. It is meant to live inside a larger
// owner object that is already synchronized, and callers of Set, Get and
// Destroy must hold whatever lock protects that owner. A second lock here
// would be redundant and would invite lock-order inversions with the owner's
// own lock, so the asymmetry with Allocator is the contract, not an omission.
type List struct {
	entries   []Entry
	destroyed bool
}

// Set stores payload and an optional destructor under id, which must
// currently be allocated in a (anything else panics). The previous entry for
// the slot is returned, not destroyed: call Release on it once it is safe to
// run the old destructor, i.e. after the caller has dropped its own lock.
// Running it inline would invite re-entrancy into the owner while locked.
//
// If id is beyond the list's high-water mark, storage grows to id+1 entries
// with the gap zero-filled.
func (l *List) Set(a *Allocator, id int, payload any, destroy DestroyFunc) Entry {
	a.assertAllocated(id)
	l.ensureLive()

	if id >= len(l.entries) {
		grown := make([]Entry, id+1)
		copy(grown, l.entries)
		l.entries = grown
	}

	old := l.entries[id]
	l.entries[id] = Entry{Payload: payload, destroy: destroy}
	return old
}

// Get returns the payload stored under id, which must currently be allocated
// in a (anything else panics). Returns nil when nothing was ever set under id
// on this particular list.
func (l *List) Get(a *Allocator, id int) any {
	a.assertAllocated(id)
	l.ensureLive()

	if id >= len(l.entries) {
		return nil
	}
	return l.entries[id].Payload
}

// Len returns the list's current high-water mark: one past the largest slot
// ID ever set on it.
func (l *List) Len() int {
	return len(l.entries)
}

// Destroy invokes every stored destructor in increasing slot order with the
// payload last stored under that slot, then releases the backing storage.
// No lock of this package's is held while destructors run; the caller's
// external lock, if any, still is.
//
// Destroy must be called exactly once per list. Any operation on a destroyed
// list, including a second Destroy, panics.
func (l *List) Destroy() {
	l.ensureLive()
	l.destroyed = true

	for i := range l.entries {
		l.entries[i].Release()
		l.entries[i] = Entry{}
	}
	l.entries = nil
}

func (l *List) ensureLive() {
	if l.destroyed {
		panic("slot: use of a destroyed List")
	}
}
