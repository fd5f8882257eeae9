package slot

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

// Test_ConcurrentAllocFree hammers one allocator from many goroutines and
// verifies no two goroutines ever hold the same ID at the same time.
func Test_ConcurrentAllocFree(t *testing.T) {
	const (
		goroutines = 16
		iterations = 500
	)

	a := New()

	var held sync.Map // id -> struct{}, present while a goroutine holds it
	var wg sync.WaitGroup
	errs := make(chan error, goroutines)

	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for it := 0; it < iterations; it++ {
				id, err := a.Alloc()
				if err != nil {
					errs <- err
					return
				}
				if _, loaded := held.LoadOrStore(id, struct{}{}); loaded {
					errs <- errDuplicateID(id)
					return
				}
				held.Delete(id)
				a.Free(id)
			}
		}()
	}

	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	s := a.Stats()
	require.Zero(t, s.InUse)
	require.Zero(t, s.TableLen, "everything freed, so the table must be gone")
	require.Equal(t, goroutines*iterations, s.AllocCalls)
	require.LessOrEqual(t, s.Grown+s.Reused, s.AllocCalls)
}

type errDuplicateID int

func (e errDuplicateID) Error() string {
	return fmt.Sprintf("slot ID %d handed out twice while still held", int(e))
}

// Test_ConcurrentAllocStaysDense verifies that with at most G concurrent
// holders the table never grows past G entries: reuse must win over growth.
// An anchor ID keeps occupancy above zero for the duration, so the table is
// never released and regrown from scratch between iterations.
func Test_ConcurrentAllocStaysDense(t *testing.T) {
	const (
		goroutines = 8
		iterations = 200
	)

	a := New()

	anchor, err := a.Alloc()
	require.NoError(t, err)

	var wg sync.WaitGroup
	for g := 0; g < goroutines; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for it := 0; it < iterations; it++ {
				id, allocErr := a.Alloc()
				if allocErr != nil {
					return
				}
				a.Free(id)
			}
		}()
	}
	wg.Wait()

	s := a.Stats()
	require.LessOrEqual(t, s.TableLen, goroutines+1,
		"table may never grow past the maximum number of concurrent holders")
	require.Equal(t, s.TableLen, s.Grown,
		"table never drained, so every grow event is exactly one surviving entry")

	a.Free(anchor)
	require.Zero(t, a.Stats().TableLen)
}
