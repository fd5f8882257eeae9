package slot

import "fmt"

// selfTestSlots is how many slots the self-test drives through a full
// allocate / set / replace / destroy / free cycle.
const selfTestSlots = 100

// SelfTest exercises one allocator and one list together and reports the
// first violated expectation. It is not part of the production contract; the
// package tests and the slotctl selftest command both run it.
func SelfTest() error {
	a := New()
	var list List

	// With no frees outstanding, allocation must be dense and ordered.
	for i := 0; i < selfTestSlots; i++ {
		id, err := a.Alloc()
		if err != nil {
			return fmt.Errorf("alloc slot %d: %w", i, err)
		}
		if id != i {
			return fmt.Errorf("alloc returned %d, want %d: fresh IDs must be dense from 0", id, i)
		}
	}

	// Ordered counter: each destructor checks it fires in slot order with the
	// payload stored under its slot.
	next := 0
	var orderErr error
	destroy := func(p any) {
		i, ok := p.(int)
		if !ok {
			i = -1
		}
		if i != next && orderErr == nil {
			orderErr = fmt.Errorf("destructor fired with payload %v, want %d", p, next)
		}
		next++
	}

	// First store: nothing was there before.
	for i := 0; i < selfTestSlots; i++ {
		old := list.Set(a, i, i, destroy)
		if !old.IsZero() {
			return fmt.Errorf("first Set on slot %d returned non-zero previous entry %v", i, old.Payload)
		}
		if got := list.Get(a, i); got != i {
			return fmt.Errorf("Get(%d) = %v after Set, want %d", i, got, i)
		}
	}

	// Replace every entry: the exact previous pair must come back, and
	// releasing it must fire the old destructor with the old payload.
	for i := 0; i < selfTestSlots; i++ {
		next = i
		old := list.Set(a, i, i, destroy)
		if old.Payload != i {
			return fmt.Errorf("Set on slot %d returned previous payload %v, want %d", i, old.Payload, i)
		}
		old.Release()
		if next != i+1 {
			return fmt.Errorf("old destructor for slot %d did not run exactly once", i)
		}
		if orderErr != nil {
			return orderErr
		}
		if got := list.Get(a, i); got != i {
			return fmt.Errorf("Get(%d) = %v after replacement, want %d", i, got, i)
		}
	}

	// Teardown must fire every destructor once, in increasing slot order.
	next = 0
	list.Destroy()
	if orderErr != nil {
		return orderErr
	}
	if next != selfTestSlots {
		return fmt.Errorf("Destroy fired %d destructors, want %d", next, selfTestSlots)
	}

	// Drain the allocator; the table must be fully released.
	for i := 0; i < selfTestSlots; i++ {
		a.Free(i)
	}
	if s := a.Stats(); s.TableLen != 0 || s.InUse != 0 {
		return fmt.Errorf("allocator not empty after draining: table=%d in_use=%d", s.TableLen, s.InUse)
	}

	a.Close()
	return nil
}
