package slot

import "sync"

// freeSlot marks a table entry whose ID was handed out before and has since
// been returned. It is never a valid slot ID.
const freeSlot = -1

// Allocator hands out dense, non-negative integer slot IDs. It is the only
// internally synchronized type in this package: Alloc and Free may be called
// concurrently from any goroutine, under a single per-allocator mutex. The
// lock is never held across anything but a table scan and, occasionally, a
// one-element growth.
//
// One allocator serves many Lists, and holds no reference to any of them.
// Freeing an ID while some List still holds data under it is therefore
// invisible to the allocator: the stale data is released when that List is
// destroyed but can no longer be retrieved, and a later Alloc may hand the
// same ID to an unrelated subsystem. Never free an ID until every List has
// dropped its data for it.
type Allocator struct {
	mu sync.Mutex

	// table[i] == i when slot i is currently allocated, freeSlot when slot i
	// was allocated before and is now free. Released outright (nil) whenever
	// occupancy returns to zero.
	table []int
	used  int

	limit  int
	closed bool

	stats AllocatorStats
}

// Option configures an Allocator.
type Option func(*Allocator)

// WithLimit caps the number of distinct slot IDs the allocator will hand out
// at once. Alloc returns ErrExhausted when the cap is reached. n <= 0 means
// unlimited (the default).
func WithLimit(n int) Option {
	return func(a *Allocator) {
		a.limit = n
	}
}

// New creates an allocator with an empty table.
func New(opts ...Option) *Allocator {
	a := &Allocator{}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Alloc returns a slot ID for use with List.Set and List.Get. A previously
// freed ID is always reused before the table grows, lowest ID first; with no
// frees outstanding, IDs come out as 0, 1, 2, ...
//
// The only failure is ErrExhausted when a WithLimit cap is reached, in which
// case no state changed.
func (a *Allocator) Alloc() (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ensureOpen()

	a.stats.AllocCalls++

	if a.used < len(a.table) {
		for id, v := range a.table {
			if v == freeSlot {
				a.table[id] = id
				a.used++
				a.stats.Reused++
				return id, nil
			}
		}
		panic("slot: occupancy below table length but no free entry")
	}

	if a.limit > 0 && len(a.table) >= a.limit {
		return freeSlot, ErrExhausted
	}

	// Grow by exactly one entry. Allocation is rare and long-lived, so a
	// minimal footprint beats amortized append growth.
	id := len(a.table)
	a.table = append(a.table, id)
	a.used++
	a.stats.Grown++
	return id, nil
}

// Free returns id to the allocator. The ID must currently be allocated;
// freeing anything else (never allocated, already freed, negative) is a
// caller bug and panics.
//
// Free knows nothing about Lists still holding data under id - see the type
// comment for the caller obligation this implies.
func (a *Allocator) Free(id int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ensureOpen()

	if id < 0 || id >= len(a.table) || a.table[id] != id {
		panic("slot: Free of a slot ID that is not currently allocated")
	}

	a.table[id] = freeSlot
	a.used--
	a.stats.FreeCalls++

	if a.used == 0 {
		// Last ID returned: drop the whole table. The next Alloc behaves
		// exactly like one on a fresh allocator.
		a.table = nil
	}
}

// Close tears the allocator down. Every ID must have been freed first;
// closing with IDs still allocated, closing twice, or using the allocator
// after Close panics.
func (a *Allocator) Close() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ensureOpen()

	if a.used != 0 {
		panic("slot: Close with slot IDs still allocated")
	}
	a.table = nil
	a.closed = true
}

// Stats returns a snapshot of the allocator's bookkeeping. Like every other
// operation, it panics on a closed allocator.
func (a *Allocator) Stats() AllocatorStats {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ensureOpen()

	s := a.stats
	s.TableLen = len(a.table)
	s.InUse = a.used
	return s
}

// assertAllocated panics unless id is currently allocated. List.Set and
// List.Get validate their IDs through this; the lock order is always
// owner lock -> allocator lock, and the allocator never calls out while
// holding its own.
func (a *Allocator) assertAllocated(id int) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.ensureOpen()

	if id < 0 || id >= len(a.table) || a.table[id] != id {
		panic("slot: use of a slot ID that is not currently allocated")
	}
}

func (a *Allocator) ensureOpen() {
	if a.closed {
		panic("slot: use of a closed Allocator")
	}
}
