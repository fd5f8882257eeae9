// Package attach is the owner-side facade over the slot package: it wraps one
// shared slot.Allocator and one slot.List per owner behind a synchronized
// "attach arbitrary keyed data" surface, the way connection- or server-like
// handles expose it to their own callers.
//
// # Key
//
// A subsystem holds one Key per kind of data it attaches. The Key allocates
// its slot ID from the registry on first use and caches it for the
// subsystem's lifetime; Release returns the ID once no Store holds data under
// it anymore.
//
// # Store
//
// A Store belongs to one owner object. Its mutex is exactly the external lock
// the slot.List contract requires, and destructors never run while that mutex
// is held: a replaced payload's destructor runs after Set drops the lock, and
// Close moves the list out before tearing it down. A destructor may therefore
// call back into the same Store without deadlocking.
package attach
