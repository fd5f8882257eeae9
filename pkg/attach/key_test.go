package attach

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/slotkit/slotkit/slot"
)

// Test_KeyAllocatesOnce verifies concurrent ID calls all observe the same
// lazily allocated slot ID.
func Test_KeyAllocatesOnce(t *testing.T) {
	reg := slot.New()
	k := NewKey(reg)

	const callers = 16

	ids := make([]int, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			id, err := k.ID()
			require.NoError(t, err)
			ids[i] = id
		}()
	}
	wg.Wait()

	for _, id := range ids {
		require.Equal(t, ids[0], id)
	}
	require.Equal(t, 1, reg.Stats().AllocCalls, "exactly one allocation for any number of callers")
}

// Test_KeyRelease verifies the ID goes back to the registry and the key
// refuses further use.
func Test_KeyRelease(t *testing.T) {
	reg := slot.New()
	k := NewKey(reg)

	id, err := k.ID()
	require.NoError(t, err)

	k.Release()
	k.Release() // no-op

	_, err = k.ID()
	require.ErrorIs(t, err, ErrKeyReleased)

	// The registry hands the freed ID out again.
	again, err := reg.Alloc()
	require.NoError(t, err)
	require.Equal(t, id, again)
}

// Test_KeyReleaseBeforeUse verifies releasing an idle key pins it without
// ever touching the registry.
func Test_KeyReleaseBeforeUse(t *testing.T) {
	reg := slot.New()
	k := NewKey(reg)

	k.Release()

	_, err := k.ID()
	require.ErrorIs(t, err, ErrKeyReleased)
	require.Zero(t, reg.Stats().AllocCalls)
}

// Test_KeyExhaustedRegistry verifies allocator exhaustion surfaces through
// the key as the allocator's own error.
func Test_KeyExhaustedRegistry(t *testing.T) {
	reg := slot.New(slot.WithLimit(1))

	first := NewKey(reg)
	_, err := first.ID()
	require.NoError(t, err)

	second := NewKey(reg)
	_, err = second.ID()
	require.ErrorIs(t, err, slot.ErrExhausted)

	// An exhausted key never got an ID, so releasing it is a no-op.
	second.Release()
	require.Equal(t, 1, reg.Stats().InUse)
}
