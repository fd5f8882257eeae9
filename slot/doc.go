// Package slot implements dynamically allocated data slots: dense integer IDs
// handed out by a shared Allocator, under which unrelated subsystems attach
// per-owner payloads to a per-owner List.
//
// # Overview
//
// Owner objects (connections, servers, sessions) often need to carry data for
// subsystems they know nothing about. This package splits that problem in two:
//
//   - Allocator: a registry that hands out, reuses and invalidates small
//     non-negative slot IDs. One allocator serves many owners; the ID
//     namespace is shared across all of them.
//   - List: a per-owner container mapping a slot ID to a payload and an
//     optional destructor. Every owner carries its own List; storage under
//     the same ID is independent between owners.
//
// A subsystem allocates one slot ID at startup, caches it for its lifetime,
// and then uses that ID against the List of whichever owner it wants to
// attach data to.
//
// # Allocation Policy
//
// IDs are allocated densely from 0 upward. A freed ID is always reused before
// the table grows, and the lowest free ID wins (first-fit). The table grows
// by exactly one entry at a time: slot allocation happens roughly once per
// subsystem per process, so footprint beats amortized growth speed here. When
// the last ID is freed the backing table is released outright, and the
// allocator behaves like a freshly constructed one.
//
// # Thread Safety
//
// The Allocator is internally synchronized; Alloc and Free are safe to call
// from any goroutine. A List performs no locking whatsoever: it is meant to
// be embedded in a larger owner object that already has a lock, and callers
// of Set, Get and Destroy must hold that lock. See the List documentation for
// why this asymmetry is part of the contract.
//
// # Error Policy
//
// Recoverable failures (the allocator's optional slot cap) are reported as
// errors and leave all bookkeeping untouched. Contract violations - freeing
// an ID that is not allocated, using an ID that was never allocated, touching
// a destroyed List or a closed Allocator - panic: continuing would corrupt
// the occupied/free bookkeeping, so they are made loud instead.
//
// # Usage Example
//
//	reg := slot.New()
//
//	// Once, at subsystem startup:
//	id, err := reg.Alloc()
//	if err != nil {
//	    return err
//	}
//
//	// Per owner, under the owner's own lock:
//	old := owner.data.Set(reg, id, payload, releasePayload)
//	// ... drop the owner's lock, then:
//	old.Release()
//
//	v := owner.data.Get(reg, id)
//
//	// When the owner goes away, still under its lock:
//	owner.data.Destroy()
//
// # Related Packages
//
//   - github.com/slotkit/slotkit/pkg/attach: a synchronized owner-side facade
//     over one Allocator and one List per owner.
package slot
